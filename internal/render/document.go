// Package render projects a resume and a template into a VisualDocument: a
// tree of styled blocks that every output path (HTML preview, raster export,
// print page) draws from.
package render

import "resume-builder/internal/model"

// PageWidthPx is the width of an A4 page at 96 dpi. Documents are laid out
// against this width regardless of where they are displayed.
const PageWidthPx = 794

// NeutralColor fills the unused segments of a skill indicator.
const NeutralColor = "#e2e8f0"

// HeaderLightText is used for header text on gradient and banner headers.
const HeaderLightText = "#ffffff"

// Style holds the paint of a node. Any color field may carry a CSS gradient
// expression until the document has been sanitized.
type Style struct {
	Background   string `json:"background,omitempty"`
	Color        string `json:"color,omitempty"`
	Accent       string `json:"accent,omitempty"`
	Border       string `json:"border,omitempty"`
	GradientText bool   `json:"gradientText,omitempty"`
}

type Bucket string

const (
	BucketPrimary   Bucket = "primary"
	BucketSecondary Bucket = "secondary"
)

type SectionKind string

const (
	SectionSummary        SectionKind = "summary"
	SectionExperience     SectionKind = "experience"
	SectionProjects       SectionKind = "projects"
	SectionSkills         SectionKind = "skills"
	SectionEducation      SectionKind = "education"
	SectionCertifications SectionKind = "certifications"
	SectionLanguages      SectionKind = "languages"
	SectionHobbies        SectionKind = "hobbies"
	SectionReferences     SectionKind = "references"
)

type BlockKind string

const (
	BlockText  BlockKind = "text"
	BlockEntry BlockKind = "entry"
	BlockSkill BlockKind = "skill"
	BlockTag   BlockKind = "tag"
)

type Link struct {
	Label string `json:"label"`
	Href  string `json:"href,omitempty"`
}

type Contact struct {
	Kind string `json:"kind"`
	Link
}

// Segment is one cell of the five-cell skill indicator.
type Segment struct {
	Filled bool  `json:"filled"`
	Style  Style `json:"style"`
}

type Block struct {
	Kind      BlockKind `json:"kind"`
	Title     string    `json:"title,omitempty"`
	Subtitle  string    `json:"subtitle,omitempty"`
	Location  string    `json:"location,omitempty"`
	Meta      string    `json:"meta,omitempty"`
	Note      string    `json:"note,omitempty"`
	Body      string    `json:"body,omitempty"`
	Link      *Link     `json:"link,omitempty"`
	Level     int       `json:"level,omitempty"`
	Indicator []Segment `json:"indicator,omitempty"`
	Style     Style     `json:"style"`
}

type Section struct {
	Kind    SectionKind `json:"kind"`
	Heading string      `json:"heading"`
	Style   Style       `json:"style"`
	Blocks  []Block     `json:"blocks"`
}

type Column struct {
	Role         Bucket    `json:"role"`
	WidthPercent int       `json:"widthPercent"`
	Sections     []Section `json:"sections"`
	RuleAfter    bool      `json:"ruleAfter,omitempty"`
	RuleColor    string    `json:"ruleColor,omitempty"`
}

type Header struct {
	Name      string            `json:"name"`
	Title     string            `json:"title"`
	Contacts  []Contact         `json:"contacts"`
	Photo     string            `json:"photo,omitempty"`
	Variant   model.HeaderStyle `json:"variant"`
	Style     Style             `json:"style"`
	NameStyle Style             `json:"nameStyle"`
}

// Document is the rendered resume, prior to any drawing.
type Document struct {
	Template model.TemplateConfig `json:"template"`
	Width    int                  `json:"width"`
	Font     string               `json:"font"`
	Style    Style                `json:"style"`
	Header   Header               `json:"header"`
	Layout   model.Layout         `json:"layout"`
	Columns  []Column             `json:"columns"`
}

// Sections returns every section in reading order across columns.
func (d *Document) Sections() []Section {
	var out []Section
	for _, c := range d.Columns {
		out = append(out, c.Sections...)
	}
	return out
}

// Section finds a rendered section by kind.
func (d *Document) Section(kind SectionKind) (Section, bool) {
	for _, s := range d.Sections() {
		if s.Kind == kind {
			return s, true
		}
	}
	return Section{}, false
}

// Clone returns a deep copy of the document. The copy shares nothing with
// the original, so it can be sanitized or resized freely.
func Clone(d *Document) *Document {
	if d == nil {
		return nil
	}
	out := *d
	if d.Header.Contacts != nil {
		out.Header.Contacts = make([]Contact, len(d.Header.Contacts))
		copy(out.Header.Contacts, d.Header.Contacts)
	}
	if d.Columns != nil {
		out.Columns = make([]Column, len(d.Columns))
		for i, c := range d.Columns {
			c.Sections = cloneSections(c.Sections)
			out.Columns[i] = c
		}
	}
	return &out
}

func cloneSections(in []Section) []Section {
	if in == nil {
		return nil
	}
	out := make([]Section, len(in))
	for i, s := range in {
		if s.Blocks == nil {
			out[i] = s
			continue
		}
		blocks := make([]Block, len(s.Blocks))
		for j, b := range s.Blocks {
			if b.Link != nil {
				l := *b.Link
				b.Link = &l
			}
			if b.Indicator != nil {
				b.Indicator = append(make([]Segment, 0, len(b.Indicator)), b.Indicator...)
			}
			blocks[j] = b
		}
		s.Blocks = blocks
		out[i] = s
	}
	return out
}
