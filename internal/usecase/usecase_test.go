package usecase

import (
	"bytes"
	"context"
	"errors"
	"image"
	"strings"
	"sync"
	"testing"

	"resume-builder/internal/adapter/repository"
	"resume-builder/internal/domain"
	"resume-builder/internal/export"
	"resume-builder/internal/model"
	"resume-builder/internal/render"
	"resume-builder/internal/session"
	"resume-builder/pkg/apperr"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTracker struct {
	mu     sync.Mutex
	events []string
}

func (t *recordingTracker) Track(_ context.Context, eventType string, _ map[string]any) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, eventType)
	return nil
}

func (t *recordingTracker) Events() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.events...)
}

func newResumeService(t *testing.T) (*ResumeService, *recordingTracker) {
	t.Helper()
	tr := &recordingTracker{}
	return NewResumeService(repository.NewMemoryResumes(), tr, "https://cv.example.com/", zerolog.Nop()), tr
}

func testUser() *domain.User {
	return &domain.User{ID: uuid.New(), Email: "jane@example.com", Name: "jane"}
}

func TestResumeServiceCreateDefaults(t *testing.T) {
	svc, tr := newResumeService(t)
	ctx := context.Background()
	u := testUser()

	r, err := svc.Create(ctx, u, CreateResumeInput{ResumeData: model.ResumeData{
		PersonalInfo: model.PersonalInfo{FullName: "Jane Doe"},
	}})
	require.NoError(t, err)
	assert.Equal(t, DefaultResumeTitle, r.Title)
	assert.Equal(t, model.DefaultTemplateID, r.TemplateConfig.ID)
	assert.Equal(t, u.ID, r.UserID)
	assert.Empty(t, r.ShareURL)
	assert.Equal(t, []string{domain.EventResumeCreated}, tr.Events())

	_, err = svc.Create(ctx, nil, CreateResumeInput{})
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))

	_, err = svc.Create(ctx, u, CreateResumeInput{TemplateID: "nope"})
	assert.True(t, apperr.Is(err, apperr.CodeBadRequest))
}

func TestResumeServiceRejectsInvalidData(t *testing.T) {
	svc, _ := newResumeService(t)
	_, err := svc.Create(context.Background(), testUser(), CreateResumeInput{ResumeData: model.ResumeData{
		Skills: []model.Skill{{ID: "s1", Name: "Go", Level: 9}},
	}})
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeValidationFailed, ae.Code)
	assert.NotEmpty(t, ae.Details["problems"])
}

func TestResumeServiceOwnership(t *testing.T) {
	svc, _ := newResumeService(t)
	ctx := context.Background()
	owner, other := testUser(), testUser()

	r, err := svc.Create(ctx, owner, CreateResumeInput{Title: "Mine"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, other, r.ID)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
	assert.True(t, apperr.Is(svc.Delete(ctx, other, r.ID), apperr.CodeNotFound))

	list, err := svc.List(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = svc.List(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestResumeServiceShareAndUnshare(t *testing.T) {
	svc, tr := newResumeService(t)
	ctx := context.Background()
	u := testUser()

	r, err := svc.Create(ctx, u, CreateResumeInput{Title: "Backend CV"})
	require.NoError(t, err)

	_, err = svc.GetPublic(ctx, r.ID)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))

	url, err := svc.Share(ctx, u, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cv.example.com/resume/"+r.ID.String(), url)

	pub, err := svc.GetPublic(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, url, pub.ShareURL)

	found, err := svc.SearchPublic(ctx, "backend")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, r.ID, found[0].ID)

	private := false
	updated, err := svc.Update(ctx, u, r.ID, domain.ResumePatch{IsPublic: &private})
	require.NoError(t, err)
	assert.False(t, updated.IsPublic)
	assert.Empty(t, updated.ShareURL)
	assert.Contains(t, tr.Events(), domain.EventResumeUpdated)
}

func TestResumeServiceDuplicate(t *testing.T) {
	svc, tr := newResumeService(t)
	ctx := context.Background()
	u := testUser()

	r, err := svc.Create(ctx, u, CreateResumeInput{Title: "Main", IsPublic: true, TemplateID: "classic-1", ResumeData: model.ResumeData{
		PersonalInfo: model.PersonalInfo{FullName: "Jane Doe"},
	}})
	require.NoError(t, err)
	require.NotEmpty(t, r.ShareURL)

	cp, err := svc.Duplicate(ctx, u, r.ID, "")
	require.NoError(t, err)
	assert.NotEqual(t, r.ID, cp.ID)
	assert.Equal(t, "Main (Copy)", cp.Title)
	assert.False(t, cp.IsPublic)
	assert.Empty(t, cp.ShareURL)
	assert.Equal(t, r.TemplateConfig.ID, cp.TemplateConfig.ID)
	assert.Equal(t, "Jane Doe", cp.ResumeData.PersonalInfo.FullName)

	named, err := svc.Duplicate(ctx, u, r.ID, "  Variant ")
	require.NoError(t, err)
	assert.Equal(t, "Variant", named.Title)

	assert.Equal(t, []string{
		domain.EventResumeCreated,
		domain.EventResumeCreated, domain.EventResumeDuplicated,
		domain.EventResumeCreated, domain.EventResumeDuplicated,
	}, tr.Events())
}

func TestResumeServiceDeleteTracksEvent(t *testing.T) {
	svc, tr := newResumeService(t)
	ctx := context.Background()
	u := testUser()

	r, err := svc.Create(ctx, u, CreateResumeInput{Title: "Old"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, u, r.ID))

	_, err = svc.Get(ctx, u, r.ID)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
	assert.Equal(t, []string{domain.EventResumeCreated, domain.EventResumeDeleted}, tr.Events())
}

type blockingRasterizer struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingRasterizer) Rasterize(ctx context.Context, doc *render.Document, _ float64) (image.Image, error) {
	b.once.Do(func() { close(b.started) })
	<-b.release
	return image.NewRGBA(image.Rect(0, 0, doc.Width, 600)), nil
}

type staticRasterizer struct{ err error }

func (s staticRasterizer) Rasterize(_ context.Context, doc *render.Document, _ float64) (image.Image, error) {
	if s.err != nil {
		return nil, s.err
	}
	return image.NewRGBA(image.Rect(0, 0, doc.Width, 1500)), nil
}

type memCache struct {
	mu    sync.Mutex
	pages map[string][]byte
	hits  int
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.pages[key]
	if ok {
		c.hits++
	}
	return p, ok
}

func (c *memCache) Set(_ context.Context, key string, page []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages[key] = page
}

type fakePrinter struct {
	html []byte
	err  error
}

func (p *fakePrinter) PrintToPDF(_ context.Context, html []byte) ([]byte, error) {
	p.html = html
	if p.err != nil {
		return nil, p.err
	}
	return []byte("%PDF-1.4\n1 0 obj << /Type /Page >>\nendobj\n"), nil
}

func sampleData() model.ResumeData {
	return model.ResumeData{
		PersonalInfo: model.PersonalInfo{FullName: "Jane Doe", Title: "Engineer"},
		Skills:       []model.Skill{{ID: "s1", Name: "Go", Level: 4, Category: "Technical"}},
	}
}

func TestExportStrategies(t *testing.T) {
	tr := &recordingTracker{}
	raster := export.NewRasterExporter(staticRasterizer{}, zerolog.Nop(), export.WithScale(1))
	svc := NewExportService(raster, zerolog.Nop(), WithExportTracker(tr))
	tpl, err := Template("modern-1")
	require.NoError(t, err)

	art, err := svc.Export(context.Background(), sampleData(), tpl, export.StrategyRaster)
	require.NoError(t, err)
	assert.Equal(t, export.FileName, art.Name)
	assert.True(t, bytes.HasPrefix(art.Bytes, []byte("%PDF")))

	art, err = svc.Export(context.Background(), sampleData(), tpl, export.StrategyText)
	require.NoError(t, err)
	assert.Equal(t, export.StrategyText, art.Strategy)
	assert.Equal(t, []string{domain.EventPDFDownloaded}, tr.Events())

	art, err = svc.Export(context.Background(), sampleData(), tpl, export.StrategyPrint)
	require.NoError(t, err)
	assert.Equal(t, "resume.html", art.Name)
	assert.NotContains(t, strings.ToLower(string(art.Bytes)), "gradient(")

	_, err = svc.Export(context.Background(), sampleData(), tpl, "fax")
	assert.True(t, apperr.Is(err, apperr.CodeBadRequest))
}

func TestExportPrintWithPrinter(t *testing.T) {
	p := &fakePrinter{}
	svc := NewExportService(export.NewRasterExporter(staticRasterizer{}, zerolog.Nop()), zerolog.Nop(), WithPrinter(p))

	art, err := svc.Export(context.Background(), sampleData(), model.DefaultTemplate(), export.StrategyPrint)
	require.NoError(t, err)
	assert.Equal(t, export.FileName, art.Name)
	assert.Equal(t, "application/pdf", art.ContentType)
	assert.Equal(t, 1, art.Pages)
	assert.Contains(t, string(p.html), "Jane Doe")
}

func TestExportPrintFailure(t *testing.T) {
	p := &fakePrinter{err: errors.New("chrome exited")}
	svc := NewExportService(export.NewRasterExporter(staticRasterizer{}, zerolog.Nop()), zerolog.Nop(), WithPrinter(p))

	_, err := svc.Export(context.Background(), sampleData(), model.DefaultTemplate(), export.StrategyPrint)
	var xerr *export.Error
	require.ErrorAs(t, err, &xerr)
	assert.Equal(t, export.KindPrintFailure, xerr.Kind)
	assert.Contains(t, xerr.Remedy(), "print")
	assert.Equal(t, export.StrategyText, xerr.Fallback())
}

func TestExportRasterFailureIsClassified(t *testing.T) {
	svc := NewExportService(export.NewRasterExporter(staticRasterizer{err: errors.New("boom")}, zerolog.Nop()), zerolog.Nop())
	_, err := svc.Export(context.Background(), sampleData(), model.DefaultTemplate(), export.StrategyRaster)

	var xerr *export.Error
	require.ErrorAs(t, err, &xerr)
	assert.Equal(t, export.StrategyText, xerr.Fallback())
	assert.NotEmpty(t, xerr.Remedy())
}

func TestExportSessionRejectsConcurrentExport(t *testing.T) {
	br := &blockingRasterizer{started: make(chan struct{}), release: make(chan struct{})}
	svc := NewExportService(export.NewRasterExporter(br, zerolog.Nop(), export.WithScale(1)), zerolog.Nop())
	sess := session.NewManager(nil, zerolog.Nop()).Create()
	require.NoError(t, sess.SetData(sampleData()))

	type result struct {
		art *export.Artifact
		err error
	}
	done := make(chan result)
	go func() {
		art, err := svc.ExportSession(context.Background(), sess, export.StrategyRaster)
		done <- result{art, err}
	}()

	<-br.started
	_, err := svc.ExportSession(context.Background(), sess, export.StrategyRaster)
	assert.ErrorIs(t, err, ErrExportInProgress)

	close(br.release)
	res := <-done
	require.NoError(t, res.err)
	assert.Equal(t, export.FileName, res.art.Name)
	assert.Equal(t, export.StateDone, sess.Control().State())

	_, err = svc.ExportSession(context.Background(), sess, "fax")
	assert.True(t, apperr.Is(err, apperr.CodeBadRequest))
}

func TestPreviewUsesCache(t *testing.T) {
	cache := &memCache{pages: map[string][]byte{}}
	svc := NewExportService(export.NewRasterExporter(staticRasterizer{}, zerolog.Nop()), zerolog.Nop(), WithPreviewCache(cache))
	ctx := context.Background()

	first, err := svc.Preview(ctx, sampleData(), model.DefaultTemplate())
	require.NoError(t, err)
	assert.Contains(t, string(first), "Jane Doe")
	assert.Zero(t, cache.hits)

	second, err := svc.Preview(ctx, sampleData(), model.DefaultTemplate())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.hits)

	other := sampleData()
	other.PersonalInfo.FullName = "John Roe"
	third, err := svc.Preview(ctx, other, model.DefaultTemplate())
	require.NoError(t, err)
	assert.Contains(t, string(third), "John Roe")
	assert.Equal(t, 1, cache.hits)
}

func TestTemplateLookup(t *testing.T) {
	tpl, err := Template("")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultTemplateID, tpl.ID)

	_, err = Template("missing")
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}
