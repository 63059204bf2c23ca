package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"mock-crm/internal/config"
	"mock-crm/internal/importer"
	custrepo "mock-crm/internal/repository/customer"
	"mock-crm/internal/seed"
	customersvc "mock-crm/internal/service/customer"
)

// buildService creates the customer store from the configured seed sources.
func buildService(ctx context.Context, cfg config.Config, logger *zap.Logger) (*customersvc.Service, error) {
	var inputs []customersvc.CreateInput
	if cfg.SeedDefaults {
		defaults, err := seed.Default()
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, defaults...)
	}
	if cfg.SeedFile != "" {
		extra, err := seed.LoadFile(cfg.SeedFile)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, extra...)
	}

	records, err := seed.Records(cfg.Schema, inputs, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	repo, err := custrepo.NewMemory(logger.Named("repo"), records...)
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}
	svc := customersvc.New(repo, cfg.Schema, customersvc.WithLogger(logger.Named("customers")))

	if cfg.SeedCSV != "" {
		f, err := os.Open(cfg.SeedCSV)
		if err != nil {
			return nil, fmt.Errorf("open seed csv: %w", err)
		}
		defer f.Close()

		res, err := importer.NewCSVImporter(f, svc).Run(ctx)
		if err != nil {
			return nil, fmt.Errorf("import seed csv: %w", err)
		}
		logger.Info("csv import finished",
			zap.String("file", cfg.SeedCSV),
			zap.Int("imported", res.Imported),
			zap.Strings("skipped", res.Skipped),
		)
	}

	logger.Info("customer store ready",
		zap.String("schema", string(cfg.Schema)),
		zap.Int("seeded", len(records)),
	)
	return svc, nil
}
