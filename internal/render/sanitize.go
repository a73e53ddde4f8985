package render

import (
	"fmt"

	"resume-builder/internal/model"
)

// Report lists the nodes whose paint was rewritten by Sanitize.
type Report struct {
	Replaced []string
}

func (r Report) Changed() bool { return len(r.Replaced) > 0 }

// Sanitize walks the whole tree and replaces every gradient with an opaque
// color: the gradient's first color stop, or fallback when none can be
// read. Gradient text is turned back into plain colored text. The document
// is modified in place.
func Sanitize(d *Document, fallback string) Report {
	var rep Report
	if d == nil {
		return rep
	}
	walkStyles(d, func(path string, s *Style) {
		if s.GradientText {
			// The background is the text paint here, not a fill behind it.
			s.Color = opaque(s.Background, fallback)
			s.Background = ""
			s.GradientText = false
			rep.Replaced = append(rep.Replaced, path+".gradientText")
		}
		for _, f := range []struct {
			name string
			v    *string
		}{
			{"background", &s.Background},
			{"color", &s.Color},
			{"accent", &s.Accent},
			{"border", &s.Border},
		} {
			if !model.IsGradient(*f.v) {
				continue
			}
			*f.v = opaque(*f.v, fallback)
			rep.Replaced = append(rep.Replaced, path+"."+f.name)
		}
	})
	if model.IsGradient(d.Template.HeaderBg) {
		d.Template.HeaderBg = opaque(d.Template.HeaderBg, fallback)
		rep.Replaced = append(rep.Replaced, "template.headerBg")
	}
	for i, c := range d.Columns {
		if model.IsGradient(c.RuleColor) {
			d.Columns[i].RuleColor = opaque(c.RuleColor, fallback)
			rep.Replaced = append(rep.Replaced, fmt.Sprintf("columns[%d].rule", i))
		}
	}
	return rep
}

// HasGradient reports whether any node still carries a gradient.
func HasGradient(d *Document) bool {
	if d == nil {
		return false
	}
	found := model.IsGradient(d.Template.HeaderBg)
	for _, c := range d.Columns {
		found = found || model.IsGradient(c.RuleColor)
	}
	walkStyles(d, func(_ string, s *Style) {
		if s.GradientText || model.IsGradient(s.Background) || model.IsGradient(s.Color) ||
			model.IsGradient(s.Accent) || model.IsGradient(s.Border) {
			found = true
		}
	})
	return found
}

func opaque(expr, fallback string) string {
	if c, ok := FirstColorStop(expr); ok {
		return c
	}
	return fallback
}

func walkStyles(d *Document, fn func(path string, s *Style)) {
	fn("document", &d.Style)
	fn("header", &d.Header.Style)
	fn("header.name", &d.Header.NameStyle)
	for ci := range d.Columns {
		col := &d.Columns[ci]
		for si := range col.Sections {
			sec := &col.Sections[si]
			sp := fmt.Sprintf("columns[%d].sections[%d]", ci, si)
			fn(sp, &sec.Style)
			for bi := range sec.Blocks {
				b := &sec.Blocks[bi]
				bp := fmt.Sprintf("%s.blocks[%d]", sp, bi)
				fn(bp, &b.Style)
				for gi := range b.Indicator {
					fn(fmt.Sprintf("%s.indicator[%d]", bp, gi), &b.Indicator[gi].Style)
				}
			}
		}
	}
}
