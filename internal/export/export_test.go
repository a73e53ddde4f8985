package export

import (
	"bytes"
	"context"
	"errors"
	"image"
	"strings"
	"sync"
	"testing"

	"resume-builder/internal/model"
	"resume-builder/internal/render"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRasterizer struct {
	w, h  int
	err   error
	got   *render.Document
	scale float64
}

func (f *fakeRasterizer) Rasterize(_ context.Context, doc *render.Document, scale float64) (image.Image, error) {
	f.got = doc
	f.scale = scale
	if f.err != nil {
		return nil, f.err
	}
	return image.NewRGBA(image.Rect(0, 0, f.w, f.h)), nil
}

type fakeTracker struct {
	mu     sync.Mutex
	events []string
	err    error
}

func (t *fakeTracker) Track(_ context.Context, eventType string, _ map[string]any) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, eventType)
	return t.err
}

func pageCount(pdf []byte) int {
	return bytes.Count(pdf, []byte("/Type /Page\n"))
}

func gradientDoc(t *testing.T) *render.Document {
	t.Helper()
	tpl, ok := model.Template("modern-1")
	require.True(t, ok)
	return render.Render(model.ResumeData{
		PersonalInfo: model.PersonalInfo{FullName: "Jane Doe"},
		Skills:       []model.Skill{{ID: "1", Name: "Go", Level: 5}},
	}, tpl)
}

func TestPages(t *testing.T) {
	assert.Equal(t, 1, Pages(0, 297))
	assert.Equal(t, 1, Pages(100, 297))
	assert.Equal(t, 1, Pages(297, 297))
	assert.Equal(t, 2, Pages(297.5, 297))
	assert.Equal(t, 3, Pages(2.5*297, 297))
	assert.Equal(t, 2, Pages(594.0000000001, 297))

	assert.Equal(t, []float64{0, -297, -594}, Offsets(2.5*297, 297))
	for h := 1.0; h < 2000; h += 37 {
		offs := Offsets(h, 297)
		assert.Equal(t, Pages(h, 297), len(offs))
		for k, y := range offs {
			assert.Equal(t, -float64(k)*297, y)
		}
	}
}

func TestImagePDFPaginates(t *testing.T) {
	// 420x1485 px scales to 210x742.5 mm, two and a half pages.
	pngBytes, err := encodePNG(image.NewRGBA(image.Rect(0, 0, 420, 1485)))
	require.NoError(t, err)
	pdf, pages, err := imagePDF(pngBytes, 420, 1485)
	require.NoError(t, err)
	assert.Equal(t, 3, pages)
	assert.Equal(t, 3, pageCount(pdf))
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestRasterExportStripsGradientsBeforeRasterizing(t *testing.T) {
	doc := gradientDoc(t)
	require.True(t, render.HasGradient(doc))

	r := &fakeRasterizer{w: 794 * 2, h: 1100}
	tr := &fakeTracker{}
	e := NewRasterExporter(r, zerolog.Nop(), WithTracker(tr))

	art, err := e.Export(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, FileName, art.Name)
	assert.Equal(t, StrategyRaster, art.Strategy)
	assert.Equal(t, 1, art.Pages)

	require.NotNil(t, r.got)
	assert.False(t, render.HasGradient(r.got))
	assert.Equal(t, DefaultContainerWidth, r.got.Width)
	assert.Equal(t, DefaultScale, r.scale)
	assert.True(t, render.HasGradient(doc), "input document must not be modified")
	assert.Equal(t, []string{EventPDFDownloaded}, tr.events)
}

func TestRasterExportFixedContainerWidth(t *testing.T) {
	doc := gradientDoc(t)
	doc.Width = 320
	r := &fakeRasterizer{w: 10, h: 10}
	_, err := NewRasterExporter(r, zerolog.Nop(), WithContainerWidth(900), WithScale(1)).Export(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, 900, r.got.Width)
	assert.Equal(t, 1.0, r.scale)
}

func TestRasterExportMultiPage(t *testing.T) {
	r := &fakeRasterizer{w: 420, h: 1485}
	art, err := NewRasterExporter(r, zerolog.Nop()).Export(context.Background(), gradientDoc(t))
	require.NoError(t, err)
	assert.Equal(t, 3, art.Pages)
	assert.Equal(t, 3, pageCount(art.Bytes))
}

func TestRasterExportFailures(t *testing.T) {
	tests := []struct {
		name string
		doc  *render.Document
		r    *fakeRasterizer
		want Kind
	}{
		{"no document", nil, &fakeRasterizer{w: 1, h: 1}, KindInputAbsent},
		{"zero height", gradientDoc(t), &fakeRasterizer{w: 10, h: 0}, KindRasterizationFailure},
		{"zero width", gradientDoc(t), &fakeRasterizer{w: 0, h: 10}, KindRasterizationFailure},
		{"gradient rejected", gradientDoc(t), &fakeRasterizer{err: ErrGradientUnsupported}, KindGradientIncompatibility},
		{"other", gradientDoc(t), &fakeRasterizer{err: errors.New("boom")}, KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &fakeTracker{}
			_, err := NewRasterExporter(tt.r, zerolog.Nop(), WithTracker(tr)).Export(context.Background(), tt.doc)
			require.Error(t, err)
			var e *Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.want, e.Kind)
			assert.NotEmpty(t, e.Remedy())
			assert.Empty(t, tr.events)
		})
	}
}

func TestAnalyticsFailureDoesNotFailExport(t *testing.T) {
	tr := &fakeTracker{err: errors.New("analytics down")}
	art, err := NewRasterExporter(&fakeRasterizer{w: 10, h: 10}, zerolog.Nop(), WithTracker(tr)).Export(context.Background(), gradientDoc(t))
	require.NoError(t, err)
	assert.NotNil(t, art)
	assert.Len(t, tr.events, 1)
}

func TestClassify(t *testing.T) {
	assert.Nil(t, Classify(nil))
	assert.Equal(t, KindUnknown, Classify(errors.New("x")).Kind)
	assert.Equal(t, KindGradientIncompatibility, Classify(ErrGradientUnsupported).Kind)
	assert.Equal(t, KindRasterizationFailure, Classify(newError(KindRasterizationFailure, nil)).Kind)

	remedies := map[string]bool{}
	for _, k := range []Kind{KindInputAbsent, KindGradientIncompatibility, KindRasterizationFailure, KindImageConversionFailure, KindPrintFailure, KindUnknown} {
		remedies[k.Remedy()] = true
	}
	assert.Len(t, remedies, 6)
	assert.Empty(t, newError(KindInputAbsent, nil).Fallback())
	assert.Equal(t, StrategyText, newError(KindUnknown, nil).Fallback())
}

func TestTextFlow(t *testing.T) {
	data := model.ResumeData{
		PersonalInfo: model.PersonalInfo{FullName: "Jane Doe", Title: "Engineer", Email: "jane@example.com", Summary: "Ships things – reliably."},
		Experiences:  []model.Experience{{ID: "1", Position: "Engineer", Company: "Acme", StartDate: "2020-01", Current: true}},
		Education:    []model.Education{{ID: "2", Degree: "BSc", Field: "CS", Institution: "MIT", GPA: "3.9"}},
		Skills:       []model.Skill{{ID: "3", Name: "Go", Level: 5, Category: "Backend"}},
		Projects:     []model.Project{{ID: "4", Name: "Tool", Technologies: "Go"}},
	}
	art, err := TextFlow(data)
	require.NoError(t, err)
	assert.Equal(t, FileName, art.Name)
	assert.Equal(t, StrategyText, art.Strategy)
	assert.Equal(t, 1, art.Pages)
	assert.True(t, bytes.HasPrefix(art.Bytes, []byte("%PDF")))
}

func TestTextFlowEmptyData(t *testing.T) {
	art, err := TextFlow(model.ResumeData{})
	require.NoError(t, err)
	assert.Equal(t, 1, art.Pages)
}

func TestTextFlowBreaksPages(t *testing.T) {
	var data model.ResumeData
	for i := 0; i < 40; i++ {
		data.Experiences = append(data.Experiences, model.Experience{
			ID: model.NewID(), Position: "Engineer", Company: "Acme", StartDate: "2020", EndDate: "2021",
			Description: strings.Repeat("Built and operated services. ", 8),
		})
	}
	art, err := TextFlow(data)
	require.NoError(t, err)
	assert.Greater(t, art.Pages, 1)
	assert.Equal(t, art.Pages, pageCount(art.Bytes))
}

func TestTextFlowCursor(t *testing.T) {
	f := newFlow()
	f.text("Jane Doe", 20, "B")
	assert.InDelta(t, flowMargin+20*flowLineFactor+flowBlockGap, f.y, 1e-9)

	f.text("   ", 11, "")
	assert.InDelta(t, flowMargin+20*flowLineFactor+flowBlockGap, f.y, 1e-9)

	before := f.y
	f.heading("Skills")
	assert.InDelta(t, before+flowHeadingSize*flowLineFactor+flowBlockGap, f.y, 1e-9)
}

func TestSkillGroups(t *testing.T) {
	groups := SkillGroups([]model.Skill{
		{Name: "Go", Category: "Backend"},
		{Name: "React", Category: "Frontend"},
		{Name: "SQL", Category: "Backend"},
		{Name: "Git"},
		{Name: " "},
	})
	assert.Equal(t, []SkillGroup{
		{Category: "Backend", Names: []string{"Go", "SQL"}},
		{Category: "Frontend", Names: []string{"React"}},
		{Category: "Other", Names: []string{"Git"}},
	}, groups)
}

func TestPrintHTML(t *testing.T) {
	doc := gradientDoc(t)
	art, err := PrintHTML(doc)
	require.NoError(t, err)
	html := string(art.Bytes)
	assert.NotContains(t, strings.ToLower(html), "gradient")
	assert.Contains(t, html, "@page")
	assert.Contains(t, html, "Jane Doe")
	assert.True(t, render.HasGradient(doc))

	_, err = PrintHTML(nil)
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, KindInputAbsent, e.Kind)
}

func TestControlDropsConcurrentRuns(t *testing.T) {
	var c Control
	assert.Equal(t, StateIdle, c.State())

	release := make(chan struct{})
	started := make(chan struct{})
	done := make(chan Outcome)
	go func() {
		out, ok := c.Run(context.Background(), func(context.Context) (*Artifact, error) {
			close(started)
			<-release
			return &Artifact{Name: FileName}, nil
		})
		assert.True(t, ok)
		done <- out
	}()

	<-started
	assert.Equal(t, StateGenerating, c.State())
	calls := 0
	_, ok := c.Run(context.Background(), func(context.Context) (*Artifact, error) {
		calls++
		return nil, nil
	})
	assert.False(t, ok)
	assert.Zero(t, calls)

	close(release)
	out := <-done
	assert.Equal(t, FileName, out.Artifact.Name)
	assert.Equal(t, StateDone, c.State())

	out, ok = c.Run(context.Background(), func(context.Context) (*Artifact, error) {
		return nil, newError(KindRasterizationFailure, errors.New("blank"))
	})
	assert.True(t, ok)
	assert.Equal(t, StateFailed, c.State())
	require.NotNil(t, out.Err)
	assert.Equal(t, KindRasterizationFailure, out.Err.Kind)
	assert.Equal(t, out, c.Last())
}

func TestSoftwareRasterizer(t *testing.T) {
	r, err := NewSoftwareRasterizer()
	require.NoError(t, err)
	defer r.Close()

	tpl, _ := model.Template("creative-1")
	doc := render.Render(model.ResumeData{
		PersonalInfo: model.PersonalInfo{FullName: "Jane Doe", Email: "jane@example.com", Summary: "Engineer."},
		Skills:       []model.Skill{{ID: "1", Name: "Go", Level: 4}},
		Languages:    []model.Language{{ID: "2", Name: "English", Proficiency: "Native"}},
	}, tpl)

	img, err := r.Rasterize(context.Background(), doc, 1)
	require.NoError(t, err)
	assert.Equal(t, render.PageWidthPx, img.Bounds().Dx())
	assert.GreaterOrEqual(t, img.Bounds().Dy(), MinHeightPx)
}

func TestSoftwareRasterizerRejectsNonFiniteGradient(t *testing.T) {
	r, err := NewSoftwareRasterizer()
	require.NoError(t, err)
	defer r.Close()

	doc := render.Render(model.ResumeData{}, model.DefaultTemplate())
	doc.Header.Style.Background = "linear-gradient(NaNdeg, #000000, #ffffff)"
	_, err = r.Rasterize(context.Background(), doc, 1)
	require.ErrorIs(t, err, ErrGradientUnsupported)
}

func TestParseColor(t *testing.T) {
	c, ok := parseColor("#ff0000")
	require.True(t, ok)
	assert.InDelta(t, 1.0, c.R, 1e-9)

	c, ok = parseColor("rgba(0, 255, 0, 0.5)")
	require.True(t, ok)
	assert.InDelta(t, 1.0, c.G, 1e-9)
	assert.InDelta(t, 0.5, c.A, 1e-9)

	c, ok = parseColor("hsl(0, 100%, 50%)")
	require.True(t, ok)
	assert.InDelta(t, 1.0, c.R, 1e-6)
	assert.InDelta(t, 0.0, c.G, 1e-6)

	c, ok = parseColor("white")
	require.True(t, ok)
	assert.InDelta(t, 1.0, c.B, 1e-9)

	for _, bad := range []string{"#zzz", "#abcde", "#abcdef0", ""} {
		_, ok = parseColor(bad)
		assert.False(t, ok, bad)
	}
}
