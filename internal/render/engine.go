// Package render converts a self-contained HTML document into PDF bytes by
// driving an external headless-browser process. The browser is the one
// scarce, stateful resource in the pipeline: every implementation must
// guarantee the process is torn down on every exit path, success or failure.
package render

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Engine renders a markup document to PDF bytes.
type Engine interface {
	// Render converts the document to a PDF. Cancelling ctx aborts the
	// in-flight browser operation and tears the process down.
	Render(ctx context.Context, html string) ([]byte, error)

	// Close releases any resources held between renders.
	Close() error
}

// ErrRenderTimeout indicates the browser failed to complete a stage within
// its bounded timeout.
var ErrRenderTimeout = errors.New("render timed out")

// RenderError wraps a browser failure with the lifecycle stage it occurred in.
type RenderError struct {
	Stage string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render failed at %s: %v", e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Config bounds the browser lifecycle.
type Config struct {
	// ExecPath overrides the browser binary location. Empty means the
	// default lookup.
	ExecPath string `json:"exec_path"`

	// ContentTimeout bounds loading the document into the page.
	ContentTimeout time.Duration `json:"content_timeout"`

	// RenderTimeout bounds the print-to-PDF operation.
	RenderTimeout time.Duration `json:"render_timeout"`

	// MaxConcurrent caps simultaneous browser processes.
	MaxConcurrent int64 `json:"max_concurrent"`
}

// DefaultConfig returns the production render bounds.
func DefaultConfig() Config {
	return Config{
		ContentTimeout: 10 * time.Second,
		RenderTimeout:  30 * time.Second,
		MaxConcurrent:  4,
	}
}
