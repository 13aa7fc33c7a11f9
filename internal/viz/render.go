package viz

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// Render runs the Graphviz dot binary over a DOT file to produce an
// image. Rendering is best effort: a missing binary or a failed run
// is logged and reported through the return value, never as an error,
// so the analysis pipeline completes without Graphviz installed.
func Render(ctx context.Context, dotPath, outPath, format string, logger *zap.Logger) bool {
	if logger == nil {
		logger = zap.NewNop()
	}

	binary, err := exec.LookPath("dot")
	if err != nil {
		logger.Warn("graphviz not found, skipping image render", zap.Error(err))
		return false
	}

	cmd := exec.CommandContext(ctx, binary, "-T"+format, dotPath, "-o", outPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		logger.Warn("graphviz render failed",
			zap.String("dot", dotPath),
			zap.String("stderr", strings.TrimSpace(stderr.String())),
			zap.Error(err))
		return false
	}

	logger.Info("graph image rendered",
		zap.String("path", outPath),
		zap.String("format", format))
	return true
}
