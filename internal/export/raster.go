package export

import (
	"context"
	"errors"
	"image"

	"resume-builder/internal/render"

	"github.com/rs/zerolog"
)

// Rasterizer draws a sanitized document to a bitmap. scale multiplies the
// document's pixel size.
type Rasterizer interface {
	Rasterize(ctx context.Context, doc *render.Document, scale float64) (image.Image, error)
}

// Tracker receives the best-effort download notification.
type Tracker interface {
	Track(ctx context.Context, eventType string, data map[string]any) error
}

// EventPDFDownloaded is sent after a successful rasterized export.
const EventPDFDownloaded = "pdf_downloaded"

// Defaults for the off-screen container.
const (
	DefaultContainerWidth = render.PageWidthPx
	DefaultScale          = 2.0
)

// RasterExporter turns a rendered document into a paginated image PDF.
type RasterExporter struct {
	rasterizer Rasterizer
	tracker    Tracker
	log        zerolog.Logger
	width      int
	scale      float64
}

type Option func(*RasterExporter)

func WithTracker(t Tracker) Option { return func(e *RasterExporter) { e.tracker = t } }

func WithContainerWidth(px int) Option {
	return func(e *RasterExporter) {
		if px > 0 {
			e.width = px
		}
	}
}

func WithScale(s float64) Option {
	return func(e *RasterExporter) {
		if s > 0 {
			e.scale = s
		}
	}
}

func NewRasterExporter(r Rasterizer, log zerolog.Logger, opts ...Option) *RasterExporter {
	e := &RasterExporter{
		rasterizer: r,
		log:        log,
		width:      DefaultContainerWidth,
		scale:      DefaultScale,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Prepare clones the document into the fixed-width container and strips
// every gradient from the clone. The input is left untouched.
func (e *RasterExporter) Prepare(doc *render.Document) (*render.Document, error) {
	if doc == nil {
		return nil, newError(KindInputAbsent, errors.New("no rendered document"))
	}
	clean := render.Clone(doc)
	clean.Width = e.width
	rep := render.Sanitize(clean, clean.Template.PrimaryColor)
	if rep.Changed() {
		e.log.Debug().Int("nodes", len(rep.Replaced)).Msg("export: flattened gradients")
	}
	if render.HasGradient(clean) {
		return nil, newError(KindGradientIncompatibility, errors.New("gradient survived sanitizing"))
	}
	return clean, nil
}

// Export runs the rasterized pipeline: prepare, rasterize, check the
// bitmap, encode, paginate, then notify analytics.
func (e *RasterExporter) Export(ctx context.Context, doc *render.Document) (*Artifact, error) {
	clean, err := e.Prepare(doc)
	if err != nil {
		return nil, err
	}

	img, err := e.rasterizer.Rasterize(ctx, clean, e.scale)
	if err != nil {
		if errors.Is(err, ErrGradientUnsupported) {
			return nil, newError(KindGradientIncompatibility, err)
		}
		return nil, newError(KindUnknown, err)
	}
	if img == nil || img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		return nil, newError(KindRasterizationFailure, errors.New("captured bitmap has zero width or height"))
	}

	pngBytes, err := encodePNG(img)
	if err != nil {
		return nil, newError(KindImageConversionFailure, err)
	}
	pdfBytes, pages, err := imagePDF(pngBytes, img.Bounds().Dx(), img.Bounds().Dy())
	if err != nil {
		return nil, newError(KindImageConversionFailure, err)
	}

	e.log.Info().Int("pages", pages).Int("bytes", len(pdfBytes)).Str("template", clean.Template.ID).Msg("export: rasterized pdf ready")
	e.notify(ctx, clean, pages)
	return pdfArtifact(pdfBytes, pages, StrategyRaster), nil
}

func (e *RasterExporter) notify(ctx context.Context, doc *render.Document, pages int) {
	if e.tracker == nil {
		return
	}
	err := e.tracker.Track(ctx, EventPDFDownloaded, map[string]any{
		"template": doc.Template.ID,
		"pages":    pages,
		"strategy": StrategyRaster,
	})
	if err != nil {
		e.log.Warn().Err(err).Msg("export: analytics notification failed")
	}
}
