// Package importer wires configuration and lifecycle for the CSV import
// process.
package importer

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/ingest"
	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/platform/config"
	"github.com/imeldamrgrth/PioneerMarketAnalytics/internal/storage/sqlite"
)

// Config holds the importer command configuration.
type Config struct {
	DBPath  string `env:"PIONEER_DB_PATH" envDefault:"data/analytics.db"`
	CSVPath string
	Policy  string
}

// ParseConfig parses environment and flags into a Config. Flags override
// environment values, which override defaults.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.CSVPath, "csv", "", "transaction CSV file to import")
	fs.StringVar(&cfg.Policy, "policy", string(ingest.PolicySkip), "malformed row policy: skip or fail")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.CSVPath) == "" {
		return Config{}, errors.New("csv path is required")
	}
	return cfg, nil
}

// Run imports the CSV file into the transaction store and logs a summary.
func Run(ctx context.Context, cfg Config) error {
	policy, err := ingest.ParsePolicy(cfg.Policy)
	if err != nil {
		return err
	}

	transactions, loadReport, err := ingest.LoadFile(cfg.CSVPath, policy)
	if err != nil {
		return fmt.Errorf("load csv: %w", err)
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open transaction store: %w", err)
	}
	defer func() {
		_ = store.Close()
	}()

	if err := store.AppendTransactions(ctx, transactions); err != nil {
		return fmt.Errorf("append transactions: %w", err)
	}

	log.Printf("imported %d transactions from %s (%d skipped)", loadReport.Loaded, cfg.CSVPath, loadReport.Skipped)
	for _, rowErr := range loadReport.Errors {
		log.Printf("row %d skipped: %v", rowErr.Row, rowErr.Err)
	}
	count, err := store.CountTransactions(ctx)
	if err != nil {
		return fmt.Errorf("count transactions: %w", err)
	}
	log.Printf("dataset now holds %d transactions", count)
	return nil
}
