// Package main starts the analytics dashboard server.
//
// This process owns HTTP route wiring and report rendering over the shared
// transaction store.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	dashboardcmd "github.com/imeldamrgrth/PioneerMarketAnalytics/internal/cmd/dashboard"
	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/platform/config"
	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/platform/otel"
)

func main() {
	config.LoadDotEnv()
	cfg, err := dashboardcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[DASHBOARD] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := otel.Setup(ctx, "dashboard")
	if err != nil {
		log.Printf("otel setup: %v", err)
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Printf("otel shutdown: %v", err)
			}
		}()
	}

	if err := dashboardcmd.Run(ctx, cfg); err != nil {
		config.Exitf("failed to serve: %v", err)
	}
}
