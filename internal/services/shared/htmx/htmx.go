// Package htmx renders templ components for full page loads and HTMX
// partial updates from the same component tree.
package htmx

import (
	"bytes"
	"html"
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

// RequestHeader is the HTMX request header used to detect partial updates.
const RequestHeader = "HX-Request"

// IsHTMXRequest reports whether the request was initiated by HTMX.
func IsHTMXRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(r.Header.Get(RequestHeader), "true")
}

// captureWriter buffers a component render so the body can be trimmed
// before it reaches the client.
type captureWriter struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func (w *captureWriter) Header() http.Header { return w.header }

func (w *captureWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
}

func (w *captureWriter) Write(body []byte) (int, error) {
	return w.body.Write(body)
}

// RenderPage serves page for the request. HTMX requests receive only the
// contents of the page's <main> element, prefixed with a <title> tag so
// HTMX updates the document title on navigation.
func RenderPage(w http.ResponseWriter, r *http.Request, page templ.Component, title string) {
	if page == nil {
		return
	}
	if !IsHTMXRequest(r) {
		templ.Handler(page).ServeHTTP(w, r)
		return
	}

	capture := &captureWriter{header: make(http.Header)}
	templ.Handler(page).ServeHTTP(capture, r)

	body := capture.body.Bytes()
	if main, ok := mainContent(body); ok {
		body = main
	}
	if title = strings.TrimSpace(title); title != "" && !bytes.Contains(bytes.ToLower(body), []byte("<title")) {
		body = append([]byte("<title>"+html.EscapeString(title)+"</title>"), body...)
	}

	copyHeaders(w.Header(), capture.header)
	if capture.status != 0 && capture.status != http.StatusOK {
		w.WriteHeader(capture.status)
	}
	_, _ = w.Write(body)
}

// copyHeaders appends every captured value so multi-valued headers such as
// Set-Cookie survive the copy.
func copyHeaders(dst, src http.Header) {
	for key, values := range src {
		for _, value := range values {
			dst.Add(key, value)
		}
	}
}

func mainContent(body []byte) ([]byte, bool) {
	start := bytes.Index(body, []byte("<main"))
	if start < 0 {
		return nil, false
	}
	open := bytes.Index(body[start:], []byte(">"))
	if open < 0 {
		return nil, false
	}
	content := start + open + 1
	end := bytes.Index(body[content:], []byte("</main>"))
	if end < 0 {
		return nil, false
	}
	return body[content : content+end], true
}
