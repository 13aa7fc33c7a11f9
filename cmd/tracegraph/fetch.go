package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"proposalScope/internal/chain"
	"proposalScope/internal/config"
	"proposalScope/internal/model"
	"proposalScope/internal/semantics"
	"proposalScope/internal/storage"
	"proposalScope/internal/trace"
)

func runFetch(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadFetch(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.RPCURL == "" {
		return fmt.Errorf("rpc url is required")
	}
	if cfg.TxHash == "" {
		return fmt.Errorf("transaction hash is required")
	}
	if cfg.Out == "" {
		return fmt.Errorf("output path is required")
	}

	txHash, err := chain.ParseTxHash(cfg.TxHash)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	logger.Info("fetch start",
		zap.String("rpc", cfg.RPCURL),
		zap.String("tx", txHash.Hex()),
		zap.String("out", cfg.Out),
	)

	var header *model.TraceHeader
	err = chain.WithRetry(ctx, "transaction origin", cfg.MaxRetries, cfg.RetryBackoff, logger, func(ctx context.Context) error {
		var err error
		header, err = chainClient.TransactionOrigin(ctx, txHash)
		return err
	})
	if err != nil {
		return err
	}

	var rawTrace json.RawMessage
	err = chain.WithRetry(ctx, "trace transaction", cfg.MaxRetries, cfg.RetryBackoff, logger, func(ctx context.Context) error {
		var err error
		rawTrace, err = chainClient.TraceTransaction(ctx, txHash)
		return err
	})
	if err != nil {
		return err
	}

	// Keep the callTracer tree verbatim and derive the flat summary
	// from it, so the document carries both the raw node output and
	// the processed call list.
	doc := &model.TraceDocument{
		Transaction: header,
		NestedCalls: []json.RawMessage{rawTrace},
	}
	if err := attachSummary(doc, logger); err != nil {
		return err
	}

	if err := storage.WriteJSONFile(cfg.Out, doc); err != nil {
		return fmt.Errorf("write trace document: %w", err)
	}

	logger.Info("fetch complete",
		zap.String("tx", txHash.Hex()),
		zap.String("from", header.From),
		zap.Int("calls", doc.Summary.TotalCalls),
		zap.String("out", cfg.Out),
	)

	return nil
}

// attachSummary flattens the tracer tree into the processed call list
// the report layout expects alongside the raw frames.
func attachSummary(doc *model.TraceDocument, logger *zap.Logger) error {
	result := trace.Normalize(doc, trace.Options{
		Resolver: semantics.DefaultRegistry(),
		Logger:   logger,
	})

	calls := make([]json.RawMessage, 0, len(result.Records))
	for _, record := range result.Records {
		depth := record.Depth
		entry := model.TraceCallEntry{
			Type:              record.Kind.String(),
			From:              record.From,
			To:                record.To,
			Value:             model.Quantity{Int: record.Value},
			Gas:               model.Quantity{Int: new(big.Int).SetUint64(record.Gas)},
			GasUsed:           model.Quantity{Int: new(big.Int).SetUint64(record.GasUsed)},
			Depth:             &depth,
			FunctionSelector:  record.FunctionSelector,
			FunctionSignature: record.FunctionSignature,
			Error:             record.Error,
		}
		raw, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("marshal call entry: %w", err)
		}
		calls = append(calls, raw)
	}

	doc.Summary = &model.TraceSummary{
		TotalCalls: len(calls),
		MaxDepth:   result.MaxTracerDepth,
		Calls:      calls,
	}
	return nil
}
