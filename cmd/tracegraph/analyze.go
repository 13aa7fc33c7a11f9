package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"proposalScope/internal/config"
	"proposalScope/internal/describe"
	"proposalScope/internal/graph"
	"proposalScope/internal/semantics"
	"proposalScope/internal/storage"
	"proposalScope/internal/storage/postgres"
	"proposalScope/internal/trace"
	"proposalScope/internal/viz"
)

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadAnalyze(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.In == "" {
		return fmt.Errorf("input path is required")
	}
	if cfg.Out == "" {
		return fmt.Errorf("output path is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	raw, err := os.ReadFile(cfg.In)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	doc, err := trace.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse trace: %w", err)
	}

	tables := semantics.DefaultTables()
	for addr, name := range cfg.KnownContracts {
		tables.KnownContracts[addr] = name
	}
	registry := semantics.NewRegistry(tables)

	logger.Info("analyze start",
		zap.String("in", cfg.In),
		zap.String("out", cfg.Out),
		zap.Int("extra_known_contracts", len(cfg.KnownContracts)),
	)

	result := trace.Normalize(doc, trace.Options{Resolver: registry, Logger: logger})

	g := graph.Build(result.Records)
	metrics := graph.ComputeMetrics(g, result.MaxTracerDepth)
	description := describe.Describe(g, metrics, result.Origin, registry)

	traceID := cfg.TraceID
	if traceID == "" && doc.Transaction != nil {
		traceID = strings.ToLower(strings.TrimSpace(doc.Transaction.Hash))
	}

	artifact := storage.BuildArtifact(traceID, g, metrics, result.Origin, description, result.Warnings, registry)

	fileStore := storage.NewFileStore(cfg.Out)
	if err := fileStore.SaveArtifact(artifact); err != nil {
		return err
	}

	if cfg.Dot != "" {
		if err := viz.WriteDOTFile(cfg.Dot, artifact); err != nil {
			return err
		}
	}

	if cfg.PGDSN != "" {
		if traceID == "" {
			return fmt.Errorf("trace id is required for postgres persistence (set --trace-id)")
		}
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()

		if err := store.SaveGraph(ctx, artifact); err != nil {
			return fmt.Errorf("save graph: %w", err)
		}
		logger.Info("graph persisted",
			zap.String("pg_dsn", redactDSN(cfg.PGDSN)),
			zap.String("trace_id", traceID),
		)
	}

	logger.Info("analyze complete",
		zap.Int("records", len(result.Records)),
		zap.Int("nodes", metrics.Nodes),
		zap.Int("edges", metrics.Edges),
		zap.Int("depth", metrics.Depth),
		zap.Int("breadth", metrics.Breadth),
		zap.Int("warnings", len(result.Warnings)),
		zap.String("out", cfg.Out),
	)

	return nil
}

func redactDSN(dsn string) string {
	if dsn == "" {
		return dsn
	}
	return "***"
}
