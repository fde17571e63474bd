// Package pdf converts HTML documents to PDF with headless Chrome.
package pdf

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"

	"github.com/jonathan/haslett/internal/logging"
)

// Options controls the Chrome instance and the printed page.
// Sizes are in inches, as Chrome's print API expects.
type Options struct {
	ExecPath        string
	PaperWidth      float64
	PaperHeight     float64
	Margin          float64
	PrintBackground bool
}

// DefaultOptions prints A4 with a 0.4in margin and backgrounds enabled.
func DefaultOptions() Options {
	return Options{
		PaperWidth:      8.27,
		PaperHeight:     11.69,
		Margin:          0.4,
		PrintBackground: true,
	}
}

// ChromeConverter renders HTML in a fresh headless Chrome per call.
type ChromeConverter struct {
	opts Options
	log  zerolog.Logger
}

// NewChromeConverter returns a converter. Chrome is only started by Convert.
func NewChromeConverter(opts Options) *ChromeConverter {
	return &ChromeConverter{
		opts: opts,
		log:  logging.Get("pdf"),
	}
}

// Convert loads html into a blank page and prints it. A CSS @page size in
// the document takes precedence over the configured paper size.
func (c *ChromeConverter) Convert(ctx context.Context, html string) ([]byte, error) {
	c.log.Debug().Int("html_bytes", len(html)).Str("exec_path", c.opts.ExecPath).Msg("Starting headless Chrome")

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, c.allocatorOptions()...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return fmt.Errorf("get frame tree: %w", err)
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			out, _, err := c.printParams().Do(ctx)
			if err != nil {
				return fmt.Errorf("print to PDF: %w", err)
			}
			pdf = out
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("headless Chrome failed: %w", err)
	}

	c.log.Debug().Int("pdf_bytes", len(pdf)).Msg("Printed PDF")
	return pdf, nil
}

func (c *ChromeConverter) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if c.opts.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(c.opts.ExecPath))
	}
	return opts
}

func (c *ChromeConverter) printParams() *page.PrintToPDFParams {
	return page.PrintToPDF().
		WithPrintBackground(c.opts.PrintBackground).
		WithPaperWidth(c.opts.PaperWidth).
		WithPaperHeight(c.opts.PaperHeight).
		WithMarginTop(c.opts.Margin).
		WithMarginBottom(c.opts.Margin).
		WithMarginLeft(c.opts.Margin).
		WithMarginRight(c.opts.Margin).
		WithPreferCSSPageSize(true)
}
