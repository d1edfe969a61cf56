package renderer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// BrowserRasterizer screenshots the HTML rendition of a document in headless
// Chrome. Each certificate gets its own tab, closed after the capture.
type BrowserRasterizer struct {
	browserCtx context.Context
	cancel     context.CancelFunc
}

func NewBrowserRasterizer(execPath string) (*BrowserRasterizer, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.Flag("hide-scrollbars", true),
	)
	if execPath != "" {
		opts = append(opts, chromedp.ExecPath(execPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	// Start the browser once so a missing binary fails at startup
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancel()
		return nil, fmt.Errorf("failed to start headless browser: %w", err)
	}

	slog.Info("Headless browser rasterizer started", "exec_path", execPath)
	return &BrowserRasterizer{
		browserCtx: browserCtx,
		cancel: func() {
			cancelBrowser()
			cancel()
		},
	}, nil
}

func (b *BrowserRasterizer) Rasterize(ctx context.Context, doc *Document) ([]byte, error) {
	html, err := BuildHTML(doc)
	if err != nil {
		return nil, err
	}

	tabCtx, cancelTab := chromedp.NewContext(b.browserCtx)
	defer cancelTab()
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	var loaded bool
	var shot []byte
	err = chromedp.Run(tabCtx,
		chromedp.EmulateViewport(int64(doc.Width), int64(doc.Height)),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("#canvas", chromedp.ByQuery),
		chromedp.Poll(`Array.from(document.images).every((img) => img.complete)`, &loaded),
		chromedp.FullScreenshot(&shot, 100),
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("browser render interrupted: %w", ctx.Err())
		}
		return nil, fmt.Errorf("browser render failed: %w", err)
	}
	return shot, nil
}

func (b *BrowserRasterizer) Close() {
	b.cancel()
	slog.Info("Headless browser rasterizer closed")
}
