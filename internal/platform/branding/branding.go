// Package branding centralizes product naming used across surfaces.
package branding

// AppName is the user-facing product name.
const AppName = "Pioneer Market Analytics"
