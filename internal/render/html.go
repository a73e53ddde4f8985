package render

import (
	"bytes"
	"fmt"
	"strings"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// HTMLOptions controls the standalone page produced by HTML.
type HTMLOptions struct {
	Title string
	// Print adds A4 page rules so the browser prints the page edge to edge.
	Print bool
}

const baseCSS = `*{box-sizing:border-box;margin:0;padding:0}
body{background:#f1f5f9}
.resume{margin:0 auto;overflow:hidden}
.contacts{display:flex;flex-wrap:wrap;gap:12px;margin-top:12px;font-size:10px}
.cols{display:flex;gap:24px;padding:16px 24px}
.section{margin-bottom:12px}
.section h3{font-size:13px;font-weight:700;letter-spacing:.5px;padding-bottom:4px;margin-bottom:8px}
.entry{margin-bottom:8px;font-size:12px}
.entry .row{display:flex;justify-content:space-between;align-items:baseline}
.entry .meta{font-size:10px}
.entry p{font-size:10px;margin-top:4px;opacity:.8;line-height:1.5}
.skills{display:grid;grid-template-columns:1fr 1fr;gap:4px 16px}
.bar{display:flex;gap:4px;margin-top:4px}
.bar span{display:block;width:12px;height:6px;border-radius:3px}
.tags{display:flex;flex-wrap:wrap;gap:8px}
.tag{font-size:12px;padding:2px 8px;border-radius:999px}
.photo{width:64px;height:64px;border-radius:50%;object-fit:cover;border:2px solid}
a{color:inherit;text-decoration:none}`

const printCSS = `@page{size:A4;margin:0}
body{background:#fff;-webkit-print-color-adjust:exact;print-color-adjust:exact}`

// HTML projects the document into a standalone page with inline styles and
// no external references.
func HTML(d *Document, opts HTMLOptions) g.Node {
	title := opts.Title
	if title == "" {
		title = d.Header.Name + " - Resume"
	}
	css := baseCSS
	if opts.Print {
		css += "\n" + printCSS
	}
	return h.Doctype(
		h.HTML(h.Lang("en"),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.TitleEl(g.Text(title)),
				h.StyleEl(g.Raw(css)),
			),
			h.Body(Node(d)),
		),
	)
}

// RenderHTML renders the page to bytes.
func RenderHTML(d *Document, opts HTMLOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := HTML(d, opts).Render(&buf); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

// Node returns the resume container alone, for embedding in other pages.
func Node(d *Document) g.Node {
	return h.Div(h.ID("resume-preview"), h.Class("resume"),
		h.Style(css(
			"width", fmt.Sprintf("%dpx", d.Width),
			"min-height", "700px",
			"font-family", d.Font,
			"background", d.Style.Background,
			"color", d.Style.Color,
		)),
		headerNode(d.Header),
		h.Div(h.Class("cols"),
			g.Map(d.Columns, columnNode),
		),
	)
}

func headerNode(hd Header) g.Node {
	pad := "20px 24px"
	if hd.Variant == "minimal" {
		pad = "16px 24px"
	}
	align := ""
	if hd.Variant == "centered" {
		align = "center"
	}
	return h.Header(
		h.Style(css("background", hd.Style.Background, "color", hd.Style.Color, "padding", pad, "text-align", align)),
		h.Div(h.Style("display:flex;align-items:center;gap:16px"),
			g.If(hd.Photo != "", h.Img(h.Class("photo"), h.Src(hd.Photo), h.Alt("Profile"), h.Style(css("border-color", hd.Style.Accent)))),
			h.Div(
				h.H1(h.Style(textCSS(hd.NameStyle)+"font-size:22px;font-weight:700;line-height:1.2"), g.Text(hd.Name)),
				h.P(h.Style("font-size:13px;opacity:.9;margin-top:2px"), g.Text(hd.Title)),
			),
		),
		g.If(len(hd.Contacts) > 0, h.Div(h.Class("contacts"),
			g.Map(hd.Contacts, func(c Contact) g.Node {
				return h.Span(h.Class("contact "+c.Kind), linkNode(c.Link))
			}),
		)),
	)
}

func columnNode(c Column) g.Node {
	style := css("flex", fmt.Sprintf("0 0 calc(%d%% - 12px)", c.WidthPercent))
	if c.WidthPercent == 100 {
		style = css("flex", "1 1 100%")
	}
	if c.RuleAfter {
		style += css("border-right", "1px solid "+c.RuleColor, "padding-right", "16px")
	}
	return h.Div(h.Class("col "+string(c.Role)), h.Style(style),
		g.Map(c.Sections, sectionNode),
	)
}

func sectionNode(s Section) g.Node {
	var body g.Node
	switch s.Kind {
	case SectionSkills:
		body = h.Div(h.Class("skills"), g.Map(s.Blocks, blockNode))
	case SectionLanguages:
		body = h.Div(h.Class("tags"), g.Map(s.Blocks, blockNode))
	default:
		body = g.Map(s.Blocks, blockNode)
	}
	return h.Section(h.Class("section "+string(s.Kind)),
		h.H3(h.Style(css("color", s.Style.Color, "border-bottom", "2px solid "+s.Style.Border)), g.Text(s.Heading)),
		body,
	)
}

func blockNode(b Block) g.Node {
	switch b.Kind {
	case BlockText:
		return h.P(h.Style(css("font-size", "12px", "line-height", "1.6", "color", b.Style.Color)), g.Text(b.Body))
	case BlockTag:
		return h.Span(h.Class("tag"), h.Style(css("background", b.Style.Background, "color", b.Style.Color)), g.Text(b.Title))
	case BlockSkill:
		return h.Div(h.Class("skill"),
			h.Span(h.Style("font-size:12px"), g.Text(b.Title)),
			h.Div(h.Class("bar"), g.Map(b.Indicator, func(seg Segment) g.Node {
				cls := "seg"
				if seg.Filled {
					cls += " filled"
				}
				return h.Span(h.Class(cls), h.Style(css("background", seg.Style.Background)))
			})),
		)
	}
	sub := b.Subtitle
	if b.Location != "" {
		sub = joinNonEmpty(" · ", sub, b.Location)
	}
	var link g.Node
	if b.Link != nil {
		link = h.Div(h.Class("meta"), linkNode(*b.Link))
	}
	return h.Div(h.Class("entry"),
		h.Div(h.Class("row"),
			h.Strong(g.Text(b.Title)),
			g.If(b.Meta != "", h.Span(h.Class("meta"), h.Style(css("color", b.Style.Accent)), g.Text(b.Meta))),
		),
		g.If(sub != "", h.Div(h.Style(css("color", b.Style.Color)), g.Text(sub))),
		g.If(b.Note != "", h.Div(h.Class("meta"), h.Style("opacity:.7"), g.Text(b.Note))),
		link,
		g.If(b.Body != "", h.P(g.Text(b.Body))),
	)
}

func linkNode(l Link) g.Node {
	if l.Href == "" {
		return g.Text(l.Label)
	}
	return h.A(h.Href(l.Href), g.Text(l.Label))
}

func textCSS(s Style) string {
	if s.GradientText {
		return css("background", s.Background, "-webkit-background-clip", "text", "background-clip", "text", "color", "transparent")
	}
	return css("color", s.Color)
}

// css joins property/value pairs, skipping pairs with an empty value.
func css(kv ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(kv); i += 2 {
		if strings.TrimSpace(kv[i+1]) == "" {
			continue
		}
		b.WriteString(kv[i])
		b.WriteByte(':')
		b.WriteString(kv[i+1])
		b.WriteByte(';')
	}
	return b.String()
}
