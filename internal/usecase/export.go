package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"resume-builder/internal/domain"
	"resume-builder/internal/export"
	"resume-builder/internal/model"
	"resume-builder/internal/render"
	"resume-builder/internal/session"
	"resume-builder/pkg/apperr"

	"github.com/rs/zerolog"
)

// ErrExportInProgress is returned when a session already has an export
// generating.
var ErrExportInProgress = errors.New("export already in progress")

var pdfPageObject = regexp.MustCompile(`/Type\s*/Page\b`)

// Printer turns print HTML into a PDF with a real browser engine.
type Printer interface {
	PrintToPDF(ctx context.Context, html []byte) ([]byte, error)
}

// ExportService renders previews and produces export artifacts.
type ExportService struct {
	raster  *export.RasterExporter
	printer Printer
	cache   PreviewCache
	tracker Tracker
	log     zerolog.Logger
}

type ExportOption func(*ExportService)

// WithPrinter makes the print strategy return a PDF instead of print HTML.
func WithPrinter(p Printer) ExportOption { return func(s *ExportService) { s.printer = p } }

func WithPreviewCache(c PreviewCache) ExportOption { return func(s *ExportService) { s.cache = c } }

func WithExportTracker(t Tracker) ExportOption { return func(s *ExportService) { s.tracker = t } }

func NewExportService(raster *export.RasterExporter, log zerolog.Logger, opts ...ExportOption) *ExportService {
	s := &ExportService{raster: raster, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Template resolves a catalog id. An empty id selects the default template.
func Template(id string) (model.TemplateConfig, error) {
	if id == "" {
		return model.DefaultTemplate(), nil
	}
	tpl, ok := model.Template(id)
	if !ok {
		return model.TemplateConfig{}, apperr.NotFound("template")
	}
	return tpl, nil
}

// Preview renders the standalone HTML page for data in tpl.
func (s *ExportService) Preview(ctx context.Context, data model.ResumeData, tpl model.TemplateConfig) ([]byte, error) {
	key, err := previewKey(data, tpl)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if s.cache != nil {
		if page, ok := s.cache.Get(ctx, key); ok {
			return page, nil
		}
	}

	doc := render.Render(data, tpl)
	page, err := render.RenderHTML(doc, render.HTMLOptions{Title: previewTitle(data)})
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("render preview: %w", err))
	}
	if s.cache != nil {
		s.cache.Set(ctx, key, page)
	}
	return page, nil
}

// Export produces an artifact with the named strategy. Errors from the
// pipeline are *export.Error.
func (s *ExportService) Export(ctx context.Context, data model.ResumeData, tpl model.TemplateConfig, strategy string) (*export.Artifact, error) {
	switch strategy {
	case "", export.StrategyRaster:
		return s.raster.Export(ctx, render.Render(data, tpl))
	case export.StrategyText:
		art, err := export.TextFlow(data)
		if err != nil {
			return nil, export.Classify(err)
		}
		s.track(ctx, art, tpl)
		return art, nil
	case export.StrategyPrint:
		return s.print(ctx, render.Render(data, tpl), tpl)
	}
	return nil, apperr.BadRequest(fmt.Sprintf("unknown export strategy %q", strategy))
}

// PrintPage returns the print HTML without converting it to PDF.
func (s *ExportService) PrintPage(data model.ResumeData, tpl model.TemplateConfig) (*export.Artifact, error) {
	return export.PrintHTML(render.Render(data, tpl))
}

func (s *ExportService) print(ctx context.Context, doc *render.Document, tpl model.TemplateConfig) (*export.Artifact, error) {
	art, err := export.PrintHTML(doc)
	if err != nil || s.printer == nil {
		return art, err
	}
	pdf, err := s.printer.PrintToPDF(ctx, art.Bytes)
	if err != nil {
		return nil, &export.Error{Kind: export.KindPrintFailure, Err: err}
	}
	out := &export.Artifact{
		Name:        export.FileName,
		ContentType: "application/pdf",
		Bytes:       pdf,
		Pages:       len(pdfPageObject.FindAll(pdf, -1)),
		Strategy:    export.StrategyPrint,
	}
	s.track(ctx, out, tpl)
	return out, nil
}

// ExportSession exports a snapshot of the session through its control.
// A call made while another export of the same session is generating
// fails with ErrExportInProgress.
func (s *ExportService) ExportSession(ctx context.Context, sess *session.Session, strategy string) (*export.Artifact, error) {
	if !knownStrategy(strategy) {
		return nil, apperr.BadRequest(fmt.Sprintf("unknown export strategy %q", strategy))
	}
	data, tpl := sess.Snapshot()
	out, started := sess.Control().Run(ctx, func(ctx context.Context) (*export.Artifact, error) {
		return s.Export(ctx, data, tpl, strategy)
	})
	if !started {
		return nil, ErrExportInProgress
	}
	if out.Err != nil {
		return nil, out.Err
	}
	return out.Artifact, nil
}

func (s *ExportService) track(ctx context.Context, art *export.Artifact, tpl model.TemplateConfig) {
	if s.tracker == nil {
		return
	}
	err := s.tracker.Track(ctx, domain.EventPDFDownloaded, map[string]any{
		"template": tpl.ID,
		"pages":    art.Pages,
		"strategy": art.Strategy,
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("export: analytics notification failed")
	}
}

func knownStrategy(s string) bool {
	switch s {
	case "", export.StrategyRaster, export.StrategyText, export.StrategyPrint:
		return true
	}
	return false
}

func previewKey(data model.ResumeData, tpl model.TemplateConfig) (string, error) {
	b, err := json.Marshal(struct {
		Data     model.ResumeData     `json:"d"`
		Template model.TemplateConfig `json:"t"`
	}{data, tpl})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return "preview:" + hex.EncodeToString(sum[:]), nil
}

func previewTitle(d model.ResumeData) string {
	if d.PersonalInfo.FullName == "" {
		return "Resume"
	}
	return d.PersonalInfo.FullName + " - Resume"
}
