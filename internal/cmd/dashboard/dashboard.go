// Package dashboard wires configuration and lifecycle for the dashboard
// server process.
package dashboard

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/analytics/rfm"
	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/analytics/service"
	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/platform/config"
	dashboardsvc "github.com/imeldamrgrth/PioneerMarketAnalytics/internal/services/dashboard"
	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/storage/sqlite"
)

// Config holds the dashboard command configuration.
type Config struct {
	HTTPAddr  string `env:"PIONEER_HTTP_ADDR" envDefault:"localhost:8080"`
	DBPath    string `env:"PIONEER_DB_PATH" envDefault:"data/analytics.db"`
	RulesPath string `env:"PIONEER_SEGMENT_RULES_PATH"`
}

// ParseConfig parses environment and flags into a Config. Flags override
// environment values, which override defaults.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.RulesPath, "segment-rules", cfg.RulesPath, "segment rules YAML path (embedded defaults when empty)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the dashboard server.
func Run(ctx context.Context, cfg Config) error {
	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open transaction store: %w", err)
	}
	defer func() {
		_ = store.Close()
	}()

	var rules *rfm.RuleTable
	if strings.TrimSpace(cfg.RulesPath) != "" {
		rules, err = rfm.LoadRules(cfg.RulesPath)
		if err != nil {
			return fmt.Errorf("load segment rules: %w", err)
		}
	}

	server, err := dashboardsvc.NewServer(dashboardsvc.Config{
		HTTPAddr: cfg.HTTPAddr,
		Reports:  service.New(store, rules),
	})
	if err != nil {
		return fmt.Errorf("init dashboard server: %w", err)
	}
	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve dashboard: %w", err)
	}
	return nil
}
