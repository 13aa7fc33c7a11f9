package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "tracegraph",
		Short:        "Governance proposal trace analyzer",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Build, measure, and describe a call graph from a trace document",
		RunE:  runAnalyze,
	}

	analyzeCmd.Flags().String("in", "", "input trace JSON path")
	analyzeCmd.Flags().String("out", "./data/graph.json", "output graph artifact path")
	analyzeCmd.Flags().String("dot", "", "optional Graphviz DOT output path")
	analyzeCmd.Flags().String("trace-id", "", "trace id override (defaults to the transaction hash in the document)")
	analyzeCmd.Flags().String("pg-dsn", "", "optional Postgres DSN for graph persistence")
	analyzeCmd.Flags().String("known-contracts", "", "extra address=name annotations (comma-separated key=value)")
	analyzeCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(analyzeCmd)

	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch a transaction call trace from an RPC node",
		RunE:  runFetch,
	}

	fetchCmd.Flags().String("rpc", "", "Ethereum RPC URL (debug namespace required)")
	fetchCmd.Flags().String("tx", "", "transaction hash to trace")
	fetchCmd.Flags().String("out", "./data/trace.json", "output trace JSON path")
	fetchCmd.Flags().Int("max-retries", 5, "maximum retry attempts")
	fetchCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	fetchCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(fetchCmd)

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render a graph artifact to DOT and optionally an image",
		RunE:  runRender,
	}

	renderCmd.Flags().String("in", "", "input graph artifact path")
	renderCmd.Flags().String("dot", "./data/graph.dot", "Graphviz DOT output path")
	renderCmd.Flags().String("image", "", "optional image output path (requires graphviz)")
	renderCmd.Flags().String("format", "png", "image format passed to dot -T")
	renderCmd.Flags().String("pg-dsn", "", "optional Postgres DSN to load the graph from instead of --in")
	renderCmd.Flags().String("trace-id", "", "trace id to load when using --pg-dsn")
	renderCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(renderCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
