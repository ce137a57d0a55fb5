package render

import (
	"context"
	"errors"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// A4 portrait with fixed margins and background graphics, so the certified
// layout renders identically on every run.
const (
	paperWidthIn  = 8.27
	paperHeightIn = 11.69
	marginIn      = 0.4
)

// ChromiumEngine renders documents with a headless Chromium process per
// request. The lifecycle is Idle -> Launched -> PageOpened -> ContentSet ->
// Rendered -> Closed; a failure at any stage jumps straight to Closed via
// the deferred context cancels, so the process can never outlive the call.
type ChromiumEngine struct {
	cfg    Config
	logger *zap.Logger
}

// NewChromiumEngine creates a Chromium-backed render engine.
func NewChromiumEngine(cfg Config, logger *zap.Logger) *ChromiumEngine {
	if cfg.ContentTimeout <= 0 {
		cfg.ContentTimeout = DefaultConfig().ContentTimeout
	}
	if cfg.RenderTimeout <= 0 {
		cfg.RenderTimeout = DefaultConfig().RenderTimeout
	}
	return &ChromiumEngine{cfg: cfg, logger: logger}
}

// Render starts a browser, loads the document, prints it to PDF and tears
// the browser down. Cancelling ctx aborts whichever stage is in flight.
func (e *ChromiumEngine) Render(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.Flag("disable-gpu", true),
	)
	if e.cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(e.cfg.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	contentCtx, cancelContent := context.WithTimeout(browserCtx, e.cfg.ContentTimeout)
	defer cancelContent()

	err := chromedp.Run(contentCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
	)
	if err != nil {
		return nil, e.stageError(ctx, contentCtx, "set content", err)
	}

	renderCtx, cancelRender := context.WithTimeout(browserCtx, e.cfg.RenderTimeout)
	defer cancelRender()

	var pdf []byte
	err = chromedp.Run(renderCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		buf, _, err := page.PrintToPDF().
			WithPrintBackground(true).
			WithPaperWidth(paperWidthIn).
			WithPaperHeight(paperHeightIn).
			WithMarginTop(marginIn).
			WithMarginBottom(marginIn).
			WithMarginLeft(marginIn).
			WithMarginRight(marginIn).
			Do(ctx)
		if err != nil {
			return err
		}
		pdf = buf
		return nil
	}))
	if err != nil {
		return nil, e.stageError(ctx, renderCtx, "print to pdf", err)
	}

	return pdf, nil
}

// Close satisfies Engine. All browser state is per-request; nothing is held
// between calls.
func (e *ChromiumEngine) Close() error { return nil }

// stageError classifies a stage failure. A deadline on the stage context
// while the caller's context is still live means the bounded timeout fired.
func (e *ChromiumEngine) stageError(callerCtx, stageCtx context.Context, stage string, err error) error {
	e.logger.Error("Browser render stage failed",
		zap.String("stage", stage),
		zap.Error(err))
	if callerCtx.Err() != nil {
		return &RenderError{Stage: stage, Err: callerCtx.Err()}
	}
	if errors.Is(stageCtx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return &RenderError{Stage: stage, Err: ErrRenderTimeout}
	}
	return &RenderError{Stage: stage, Err: err}
}
