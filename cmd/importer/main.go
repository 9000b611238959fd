// Package main imports transaction CSV files into the analytics store.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	importercmd "github.com/imeldamrgrth/PioneerMarketAnalytics/internal/cmd/importer"
	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/platform/config"
)

func main() {
	config.LoadDotEnv()
	cfg, err := importercmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[IMPORTER] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := importercmd.Run(ctx, cfg); err != nil {
		config.Exitf("import failed: %v", err)
	}
}
