package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"mock-crm/internal/config"
	"mock-crm/internal/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the configured seed sources and print the resulting customers",
	Long: `Builds the customer store exactly as "serve" would and writes the records
to stdout as JSON. Use it to check a seed file or CSV export before starting the API.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	defer func() { _ = log.Sync() }()

	svc, err := buildService(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	customers, err := svc.List(cmd.Context())
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"schema":    cfg.Schema,
		"count":     len(customers),
		"customers": customers,
	})
}
