package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"proposalScope/internal/config"
	"proposalScope/internal/graph"
	"proposalScope/internal/model"
	"proposalScope/internal/storage"
	"proposalScope/internal/storage/postgres"
	"proposalScope/internal/viz"
)

func runRender(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadRender(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Dot == "" {
		return fmt.Errorf("dot output path is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var artifact *model.GraphArtifact
	if cfg.PGDSN != "" {
		if cfg.TraceID == "" {
			return fmt.Errorf("trace id is required when loading from postgres (set --trace-id)")
		}
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()

		loaded, found, err := store.LoadGraph(ctx, cfg.TraceID)
		if err != nil {
			return fmt.Errorf("load graph: %w", err)
		}
		if !found {
			return fmt.Errorf("trace %s not found", cfg.TraceID)
		}
		artifact = loaded

		logger.Info("graph loaded",
			zap.String("pg_dsn", redactDSN(cfg.PGDSN)),
			zap.String("trace_id", cfg.TraceID),
		)
	} else {
		if cfg.In == "" {
			return fmt.Errorf("input path is required")
		}
		loaded, err := storage.LoadArtifact(cfg.In)
		if err != nil {
			return err
		}
		artifact = loaded
	}

	// Rebuilding the graph validates the artifact's edge list against
	// its stored node set before anything is rendered from it.
	if _, err := graph.FromArtifact(*artifact); err != nil {
		return fmt.Errorf("validate artifact: %w", err)
	}

	if err := viz.WriteDOTFile(cfg.Dot, artifact); err != nil {
		return err
	}
	logger.Info("dot written",
		zap.String("path", cfg.Dot),
		zap.Int("nodes", len(artifact.Nodes)),
		zap.Int("edges", len(artifact.Edges)),
	)

	if cfg.Image != "" {
		viz.Render(ctx, cfg.Dot, cfg.Image, cfg.Format, logger)
	}

	return nil
}
