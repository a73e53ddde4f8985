package export

import (
	"bytes"
	"fmt"
	"strings"

	"resume-builder/internal/model"
	"resume-builder/internal/render"

	"github.com/go-pdf/fpdf"
)

// Text-flow layout constants, in millimetres and points.
const (
	flowMargin      = 20.0
	flowLineFactor  = 0.7
	flowBlockGap    = 5.0
	flowPersonalGap = 10.0
	flowHeadingSize = 14.0
)

// flow is a vertical text cursor over an fpdf document.
type flow struct {
	pdf   *fpdf.Fpdf
	tr    func(string) string
	y     float64
	pageW float64
	pageH float64
}

func newFlow() *flow {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreator("resume-builder", true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(flowMargin, flowMargin, flowMargin)
	pdf.AddPage()
	w, h := pdf.GetPageSize()
	return &flow{
		pdf:   pdf,
		tr:    pdf.UnicodeTranslatorFromDescriptor(""),
		y:     flowMargin,
		pageW: w,
		pageH: h,
	}
}

// text writes wrapped lines at the given size and style followed by the
// block gap, breaking to a new page whenever the cursor passes the bottom
// margin. Blank text writes nothing.
func (f *flow) text(s string, size float64, style string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	f.pdf.SetFont("Helvetica", style, size)
	lines := f.pdf.SplitLines([]byte(f.tr(s)), f.pageW-2*flowMargin)
	for _, line := range lines {
		if f.y > f.pageH-flowMargin {
			f.pdf.AddPage()
			f.y = flowMargin
		}
		f.pdf.Text(flowMargin, f.y, string(bytes.TrimRight(line, " ")))
		f.y += size * flowLineFactor
	}
	f.y += flowBlockGap
}

func (f *flow) heading(s string) { f.text(s, flowHeadingSize, "B") }

func (f *flow) gap() { f.y += flowBlockGap }

// TextFlow lays the resume out as plain flowing text. It depends only on the
// data, so it works when the styled preview cannot be captured.
func TextFlow(data model.ResumeData) (*Artifact, error) {
	f := newFlow()
	p := data.PersonalInfo

	name := strings.TrimSpace(p.FullName)
	if name == "" {
		name = "Your Name"
	}
	f.text(name, 20, "B")
	f.text(p.Title, 14, "")
	f.text(joinPresent(" | ", p.Email, p.Phone, p.Location), 10, "")
	f.y += flowPersonalGap

	if strings.TrimSpace(p.Summary) != "" {
		f.heading("Professional Summary")
		f.text(p.Summary, 11, "")
		f.gap()
	}

	if len(data.Experiences) > 0 {
		f.heading("Experience")
		for _, e := range data.Experiences {
			f.text(joinPresent(" at ", e.Position, e.Company), 12, "B")
			f.text(render.DateRange(e.StartDate, e.EndDate, e.Current), 10, "")
			f.text(e.Location, 10, "")
			f.text(e.Description, 11, "")
			f.gap()
		}
	}

	if len(data.Education) > 0 {
		f.heading("Education")
		for _, e := range data.Education {
			f.text(render.DegreeLine(e.Degree, e.Field), 12, "B")
			f.text(e.Institution, 11, "")
			f.text(render.DateRange(e.StartDate, e.EndDate, false), 10, "")
			if gpa := strings.TrimSpace(e.GPA); gpa != "" {
				f.text("GPA: "+gpa, 10, "")
			}
			f.gap()
		}
	}

	if groups := SkillGroups(data.Skills); len(groups) > 0 {
		f.heading("Skills")
		for _, g := range groups {
			f.text(g.Category+": "+strings.Join(g.Names, ", "), 11, "")
		}
		f.gap()
	}

	if len(data.Projects) > 0 {
		f.heading("Projects")
		for _, pr := range data.Projects {
			f.text(pr.Name, 12, "B")
			f.text(pr.Description, 11, "")
			if tech := strings.TrimSpace(pr.Technologies); tech != "" {
				f.text("Technologies: "+tech, 10, "")
			}
			f.gap()
		}
	}

	var buf bytes.Buffer
	if err := f.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("text flow pdf: %w", err)
	}
	return pdfArtifact(buf.Bytes(), f.pdf.PageCount(), StrategyText), nil
}

// SkillGroup is one "Category: a, b" line of the text export.
type SkillGroup struct {
	Category string
	Names    []string
}

// SkillGroups groups skills by category, keeping categories in the order
// they first appear. Skills without a category go under "Other".
func SkillGroups(skills []model.Skill) []SkillGroup {
	var out []SkillGroup
	index := map[string]int{}
	for _, s := range skills {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			continue
		}
		cat := strings.TrimSpace(s.Category)
		if cat == "" {
			cat = "Other"
		}
		i, ok := index[cat]
		if !ok {
			i = len(out)
			index[cat] = i
			out = append(out, SkillGroup{Category: cat})
		}
		out[i].Names = append(out[i].Names, name)
	}
	return out
}

func joinPresent(sep string, parts ...string) string {
	var keep []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			keep = append(keep, p)
		}
	}
	return strings.Join(keep, sep)
}
