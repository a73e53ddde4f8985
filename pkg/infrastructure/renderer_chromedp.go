package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"resume-builder/internal/render"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"
)

// imagesReady is true once every image, including the inline profile
// photo, has finished decoding and web fonts are settled.
const imagesReady = `Array.from(document.images).every(function (i) { return i.complete; }) &&
	(!document.fonts || document.fonts.status === "loaded")`

// ChromeRenderer drives headless Chrome. It captures documents as bitmaps
// for the rasterized export and prints HTML to PDF.
type ChromeRenderer struct {
	execPath string
	timeout  time.Duration
	log      zerolog.Logger
}

// NewChromeRenderer uses execPath as the Chrome binary when set.
func NewChromeRenderer(execPath string, log zerolog.Logger) *ChromeRenderer {
	return &ChromeRenderer{execPath: execPath, timeout: 60 * time.Second, log: log}
}

// withPage starts Chrome, loads html from a temporary file and waits until
// its images are ready before running actions.
func (r *ChromeRenderer) withPage(ctx context.Context, html []byte, actions ...chromedp.Action) error {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.execPath != "" {
		opts = append(opts, chromedp.ExecPath(r.execPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	runCtx, cancelRun := context.WithTimeout(cctx, r.timeout)
	defer cancelRun()

	tmpDir, err := os.MkdirTemp("", "resume-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, html, 0o644); err != nil {
		return err
	}

	var ready bool
	steps := []chromedp.Action{
		chromedp.Navigate("file://" + htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Poll(imagesReady, &ready, chromedp.WithPollingTimeout(15*time.Second)),
	}
	return chromedp.Run(runCtx, append(steps, actions...)...)
}

// Rasterize screenshots the resume container at the requested device scale.
func (r *ChromeRenderer) Rasterize(ctx context.Context, doc *render.Document, scale float64) (image.Image, error) {
	html, err := render.RenderHTML(doc, render.HTMLOptions{})
	if err != nil {
		return nil, err
	}

	var shot []byte
	err = r.withPage(ctx, html,
		chromedp.EmulateViewport(int64(doc.Width), 800),
		chromedp.ScreenshotScale("#resume-preview", scale, &shot, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("chrome capture: %w", err)
	}
	r.log.Debug().Int("bytes", len(shot)).Float64("scale", scale).Msg("chrome: captured preview")

	img, err := png.Decode(bytes.NewReader(shot))
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}
	return img, nil
}

// PrintToPDF prints a page through Chrome's own print pipeline on A4.
func (r *ChromeRenderer) PrintToPDF(ctx context.Context, html []byte) ([]byte, error) {
	var pdfBuf []byte
	err := r.withPage(ctx, html,
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 210mm x 297mm -> inches: 8.27 x 11.69
			pdfBuf, _, err = page.PrintToPDF().WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0).WithMarginBottom(0).WithMarginLeft(0).WithMarginRight(0).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(pdfBuf, []byte("%PDF")) {
		return nil, errors.New("chrome returned data that is not a pdf")
	}
	return pdfBuf, nil
}
