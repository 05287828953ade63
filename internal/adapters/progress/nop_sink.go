package progress

import (
	"context"
	"os"

	"github.com/audc-labs/audc-deploy/internal/domain/config"
	"github.com/audc-labs/audc-deploy/internal/usecase"
	"github.com/mattn/go-isatty"
)

// NopSink is a no-op implementation of ProgressSink used in non-interactive mode
type NopSink struct{}

// NewNopSink creates a new no-op progress sink
func NewNopSink() *NopSink {
	return &NopSink{}
}

// OnProgress does nothing with progress events
func (n *NopSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {}

// Info does nothing with info messages
func (n *NopSink) Info(message string) {}

// NewProgressSink picks the spinner when stderr is a terminal and the no-op sink otherwise
func NewProgressSink(cfg *config.RuntimeConfig) usecase.ProgressSink {
	if cfg.NonInteractive || cfg.Debug || !isatty.IsTerminal(os.Stderr.Fd()) {
		return NewNopSink()
	}
	return NewSpinnerProgressReporter()
}

var _ usecase.ProgressSink = (*NopSink)(nil)
