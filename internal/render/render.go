package render

import (
	"strings"

	"resume-builder/internal/model"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	placeholderName  = "Your Name"
	placeholderTitle = "Your Job Title"
	presentLabel     = "Present"
)

var headingCase = cases.Upper(language.English)

// Render builds the visual document for a resume under a template. It has no
// error path: missing or empty fields are simply left out.
func Render(data model.ResumeData, tpl model.TemplateConfig) *Document {
	doc := &Document{
		Template: tpl,
		Width:    PageWidthPx,
		Font:     tpl.FontFamily,
		Style:    Style{Background: tpl.BgColor, Color: tpl.TextColor},
		Header:   renderHeader(data.PersonalInfo, tpl),
		Layout:   tpl.Layout,
	}

	primary := nonEmpty(
		summarySection(data, tpl),
		experienceSection(data, tpl),
		projectsSection(data, tpl),
	)
	secondary := nonEmpty(
		skillsSection(data, tpl),
		educationSection(data, tpl),
		certificationsSection(data, tpl),
		languagesSection(data, tpl),
		textSection(SectionHobbies, "Hobbies & Interests", data.Hobbies, tpl),
		textSection(SectionReferences, "References", data.References, tpl),
	)

	switch tpl.Layout {
	case model.LayoutDouble:
		doc.Columns = []Column{
			{Role: BucketPrimary, WidthPercent: 60, Sections: primary},
			{Role: BucketSecondary, WidthPercent: 40, Sections: secondary},
		}
	case model.LayoutSidebar:
		doc.Columns = []Column{
			{Role: BucketSecondary, WidthPercent: 40, Sections: secondary, RuleAfter: true, RuleColor: withAlpha(tpl.PrimaryColor, "20")},
			{Role: BucketPrimary, WidthPercent: 60, Sections: primary},
		}
	default:
		doc.Layout = model.LayoutSingle
		doc.Columns = []Column{
			{Role: BucketPrimary, WidthPercent: 100, Sections: append(primary, secondary...)},
		}
	}
	return doc
}

func renderHeader(p model.PersonalInfo, tpl model.TemplateConfig) Header {
	gradient := model.IsGradient(tpl.HeaderBg)
	color := tpl.TextColor
	if gradient || tpl.HeaderStyle == model.HeaderBanner {
		color = HeaderLightText
	}

	h := Header{
		Name:    orDefault(p.FullName, placeholderName),
		Title:   orDefault(p.Title, placeholderTitle),
		Photo:   strings.TrimSpace(p.Photo),
		Variant: tpl.HeaderStyle,
		Style:   Style{Background: tpl.HeaderBg, Color: color, Accent: tpl.AccentColor},
	}
	h.NameStyle = Style{Color: color}
	if tpl.HeaderStyle == model.HeaderGradient && !gradient {
		// A gradient header style over a flat background paints the name
		// itself with the template colors.
		h.NameStyle = Style{
			Background:   "linear-gradient(135deg, " + tpl.PrimaryColor + ", " + tpl.AccentColor + ")",
			Color:        tpl.PrimaryColor,
			GradientText: true,
		}
	}

	h.Contacts = []Contact{}
	add := func(kind, value string, link func(string) Link) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		h.Contacts = append(h.Contacts, Contact{Kind: kind, Link: link(value)})
	}
	add("email", p.Email, func(v string) Link { return Link{Label: v, Href: "mailto:" + v} })
	add("phone", p.Phone, func(v string) Link { return Link{Label: v, Href: "tel:" + strings.ReplaceAll(v, " ", "")} })
	add("location", p.Location, func(v string) Link { return Link{Label: v} })
	add("website", p.Website, URLLink)
	add("linkedin", p.LinkedIn, URLLink)
	add("github", p.GitHub, URLLink)
	return h
}

func sectionStyle(tpl model.TemplateConfig) Style {
	return Style{Color: tpl.PrimaryColor, Border: tpl.PrimaryColor}
}

func newSection(kind SectionKind, heading string, tpl model.TemplateConfig) Section {
	return Section{Kind: kind, Heading: headingCase.String(heading), Style: sectionStyle(tpl)}
}

func summarySection(d model.ResumeData, tpl model.TemplateConfig) *Section {
	return textSection(SectionSummary, "Summary", d.PersonalInfo.Summary, tpl)
}

func textSection(kind SectionKind, heading, text string, tpl model.TemplateConfig) *Section {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	s := newSection(kind, heading, tpl)
	s.Blocks = []Block{{Kind: BlockText, Body: text, Style: Style{Color: tpl.TextColor}}}
	return &s
}

func experienceSection(d model.ResumeData, tpl model.TemplateConfig) *Section {
	if len(d.Experiences) == 0 {
		return nil
	}
	s := newSection(SectionExperience, "Experience", tpl)
	for _, e := range d.Experiences {
		s.Blocks = append(s.Blocks, Block{
			Kind:     BlockEntry,
			Title:    e.Position,
			Subtitle: e.Company,
			Location: e.Location,
			Meta:     DateRange(e.StartDate, e.EndDate, e.Current),
			Body:     strings.TrimSpace(e.Description),
			Style:    Style{Color: tpl.PrimaryColor, Accent: tpl.AccentColor},
		})
	}
	return &s
}

func projectsSection(d model.ResumeData, tpl model.TemplateConfig) *Section {
	if len(d.Projects) == 0 {
		return nil
	}
	s := newSection(SectionProjects, "Projects", tpl)
	for _, p := range d.Projects {
		b := Block{
			Kind:     BlockEntry,
			Title:    p.Name,
			Subtitle: p.Technologies,
			Body:     strings.TrimSpace(p.Description),
			Style:    Style{Color: tpl.AccentColor, Accent: tpl.AccentColor},
		}
		if u := strings.TrimSpace(p.URL); u != "" {
			l := URLLink(u)
			b.Link = &l
		}
		s.Blocks = append(s.Blocks, b)
	}
	return &s
}

func skillsSection(d model.ResumeData, tpl model.TemplateConfig) *Section {
	if len(d.Skills) == 0 {
		return nil
	}
	s := newSection(SectionSkills, "Skills", tpl)
	for _, sk := range d.Skills {
		level := ClampLevel(sk.Level)
		s.Blocks = append(s.Blocks, Block{
			Kind:      BlockSkill,
			Title:     sk.Name,
			Note:      sk.Category,
			Level:     level,
			Indicator: Indicator(level, tpl.PrimaryColor),
			Style:     Style{Color: tpl.TextColor},
		})
	}
	return &s
}

func educationSection(d model.ResumeData, tpl model.TemplateConfig) *Section {
	if len(d.Education) == 0 {
		return nil
	}
	s := newSection(SectionEducation, "Education", tpl)
	for _, e := range d.Education {
		b := Block{
			Kind:     BlockEntry,
			Title:    DegreeLine(e.Degree, e.Field),
			Subtitle: e.Institution,
			Meta:     DateRange(e.StartDate, e.EndDate, false),
			Body:     strings.TrimSpace(e.Description),
			Style:    Style{Color: tpl.PrimaryColor, Accent: tpl.AccentColor},
		}
		if gpa := strings.TrimSpace(e.GPA); gpa != "" {
			b.Note = "GPA: " + gpa
		}
		s.Blocks = append(s.Blocks, b)
	}
	return &s
}

func certificationsSection(d model.ResumeData, tpl model.TemplateConfig) *Section {
	if len(d.Certifications) == 0 {
		return nil
	}
	s := newSection(SectionCertifications, "Certifications", tpl)
	for _, c := range d.Certifications {
		b := Block{
			Kind:     BlockEntry,
			Title:    c.Name,
			Subtitle: c.Issuer,
			Meta:     c.Date,
			Style:    Style{Color: tpl.TextColor, Accent: tpl.AccentColor},
		}
		if u := strings.TrimSpace(c.URL); u != "" {
			l := URLLink(u)
			b.Link = &l
		}
		s.Blocks = append(s.Blocks, b)
	}
	return &s
}

func languagesSection(d model.ResumeData, tpl model.TemplateConfig) *Section {
	if len(d.Languages) == 0 {
		return nil
	}
	s := newSection(SectionLanguages, "Languages", tpl)
	for _, l := range d.Languages {
		s.Blocks = append(s.Blocks, Block{
			Kind:  BlockTag,
			Title: joinNonEmpty(" · ", l.Name, l.Proficiency),
			Style: Style{Background: withAlpha(tpl.PrimaryColor, "15"), Color: tpl.PrimaryColor},
		})
	}
	return &s
}

func nonEmpty(in ...*Section) []Section {
	out := []Section{}
	for _, s := range in {
		if s != nil && len(s.Blocks) > 0 {
			out = append(out, *s)
		}
	}
	return out
}
