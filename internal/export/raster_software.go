package export

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"strings"

	"resume-builder/internal/model"
	"resume-builder/internal/render"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/mazznoer/csscolorparser"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	_ "golang.org/x/image/webp"
)

// MinHeightPx matches the minimum height of the on-screen preview.
const MinHeightPx = 700

// SoftwareRasterizer lays out and paints a document in pure Go. It needs no
// browser, so it is the default rasterizer.
type SoftwareRasterizer struct {
	regular *text.FontSource
	bold    *text.FontSource
}

func NewSoftwareRasterizer() (*SoftwareRasterizer, error) {
	regular, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("load regular font: %w", err)
	}
	bold, err := text.NewFontSource(gobold.TTF)
	if err != nil {
		_ = regular.Close()
		return nil, fmt.Errorf("load bold font: %w", err)
	}
	return &SoftwareRasterizer{regular: regular, bold: bold}, nil
}

func (r *SoftwareRasterizer) Close() error {
	_ = r.regular.Close()
	return r.bold.Close()
}

// Rasterize lays the document out at the given scale and paints it. The
// profile photo is decoded before any layout happens, so the bitmap never
// captures a half-loaded image.
func (r *SoftwareRasterizer) Rasterize(ctx context.Context, doc *render.Document, scale float64) (image.Image, error) {
	if doc == nil {
		return nil, fmt.Errorf("nil document")
	}
	if scale <= 0 {
		scale = 1
	}
	photo := decodePhoto(doc.Header.Photo)

	p := &painter{r: r, scale: scale, ink: doc.Style.Color, faces: map[faceKey]text.Face{}}
	height := p.layout(doc, photo)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w := int(math.Ceil(float64(doc.Width) * scale))
	h := int(math.Ceil(height * scale))
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0))), nil
	}

	dc := gg.NewContext(w, h)
	defer dc.Close()
	bg, ok := parseColor(doc.Style.Background)
	if !ok {
		bg = gg.White
	}
	dc.ClearWithColor(bg)

	for _, op := range p.ops {
		if err := op.paint(dc); err != nil {
			return nil, err
		}
	}
	return dc.Image(), nil
}

// decodePhoto reads a data URI image. A photo that cannot be decoded is
// left out rather than failing the export.
func decodePhoto(uri string) image.Image {
	if !strings.HasPrefix(uri, "data:") {
		return nil
	}
	comma := strings.IndexByte(uri, ',')
	if comma < 0 || !strings.Contains(uri[:comma], ";base64") {
		return nil
	}
	raw, err := base64.StdEncoding.DecodeString(uri[comma+1:])
	if err != nil {
		return nil
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil
	}
	return img
}

type opKind int

const (
	opRect opKind = iota
	opText
	opImage
)

// drawOp is one paint instruction in device pixels.
type drawOp struct {
	kind       opKind
	x, y, w, h float64
	radius     float64
	fill       string
	str        string
	face       text.Face
	img        image.Image
}

func (op drawOp) paint(dc *gg.Context) error {
	switch op.kind {
	case opRect:
		if err := setFill(dc, op.fill, op.x, op.y, op.w, op.h); err != nil {
			return err
		}
		if op.radius > 0 {
			dc.DrawRoundedRectangle(op.x, op.y, op.w, op.h, op.radius)
		} else {
			dc.DrawRectangle(op.x, op.y, op.w, op.h)
		}
		return dc.Fill()
	case opText:
		c, ok := parseColor(op.fill)
		if !ok {
			c = gg.Black
		}
		dc.SetColor(c.Color())
		dc.SetFont(op.face)
		dc.DrawString(op.str, op.x, op.y)
	case opImage:
		dc.DrawImageEx(gg.ImageBufFromImage(op.img), gg.DrawImageOptions{
			X: op.x, Y: op.y, DstWidth: op.w, DstHeight: op.h,
			Interpolation: gg.InterpBilinear, Opacity: 1, BlendMode: gg.BlendNormal,
		})
	}
	return nil
}

// setFill selects a solid or gradient brush for a rectangle. Gradients with
// non-finite geometry cannot be painted and are reported as such.
func setFill(dc *gg.Context, fill string, x, y, w, h float64) error {
	if !model.IsGradient(fill) {
		c, ok := parseColor(fill)
		if !ok {
			c = gg.Transparent
		}
		dc.SetColor(c.Color())
		return nil
	}
	g, err := render.ParseLinearGradient(fill)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGradientUnsupported, err)
	}
	if !g.Finite() {
		return fmt.Errorf("%w: non-finite value in %q", ErrGradientUnsupported, fill)
	}
	rad := g.AngleDeg * math.Pi / 180
	dx, dy := math.Sin(rad), -math.Cos(rad)
	half := (math.Abs(w*dx) + math.Abs(h*dy)) / 2
	cx, cy := x+w/2, y+h/2
	brush := gg.NewLinearGradientBrush(cx-dx*half, cy-dy*half, cx+dx*half, cy+dy*half)
	for _, s := range g.Stops {
		c, ok := parseColor(s.Color)
		if !ok {
			return fmt.Errorf("%w: color %q", ErrGradientUnsupported, s.Color)
		}
		brush.AddColorStop(s.Offset, c)
	}
	dc.SetFillBrush(brush)
	return nil
}

// parseColor accepts any CSS color value: hex, rgb(), hsl(), hwb() and
// named colors.
func parseColor(s string) (gg.RGBA, bool) {
	c, err := csscolorparser.Parse(strings.TrimSpace(s))
	if err != nil {
		return gg.RGBA{}, false
	}
	return gg.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}, true
}

type faceKey struct {
	size float64
	bold bool
}

// painter records draw operations while measuring layout in document
// pixels. Everything is multiplied by scale when recorded.
type painter struct {
	r     *SoftwareRasterizer
	scale float64
	ink   string
	faces map[faceKey]text.Face
	ops   []drawOp
}

func (p *painter) face(size float64, bold bool) text.Face {
	k := faceKey{size, bold}
	if f, ok := p.faces[k]; ok {
		return f
	}
	src := p.r.regular
	if bold {
		src = p.r.bold
	}
	f := src.Face(size * p.scale)
	p.faces[k] = f
	return f
}

func (p *painter) measure(s string, size float64, bold bool) float64 {
	return p.face(size, bold).Advance(s) / p.scale
}

func (p *painter) lineHeight(size float64, bold bool) float64 {
	return p.face(size, bold).Metrics().LineHeight() / p.scale
}

func (p *painter) rect(x, y, w, h, radius float64, fill string) {
	if fill == "" || w <= 0 || h <= 0 {
		return
	}
	s := p.scale
	p.ops = append(p.ops, drawOp{kind: opRect, x: x * s, y: y * s, w: w * s, h: h * s, radius: radius * s, fill: fill})
}

// insertRect places a background under operations recorded after mark.
func (p *painter) insertRect(mark int, x, y, w, h float64, fill string) {
	before := len(p.ops)
	p.rect(x, y, w, h, 0, fill)
	if len(p.ops) == before {
		return
	}
	op := p.ops[len(p.ops)-1]
	copy(p.ops[mark+1:], p.ops[mark:len(p.ops)-1])
	p.ops[mark] = op
}

// line draws one line of text with its top at y and returns its height.
func (p *painter) line(x, y float64, s string, size float64, bold bool, color string) float64 {
	f := p.face(size, bold)
	m := f.Metrics()
	if color == "" {
		color = p.ink
	}
	if s != "" {
		p.ops = append(p.ops, drawOp{kind: opText, x: x * p.scale, y: y*p.scale + m.Ascent, str: s, face: f, fill: color})
	}
	return m.LineHeight() / p.scale
}

// paragraph wraps s into maxW and returns the height used.
func (p *painter) paragraph(x, y, maxW float64, s string, size float64, bold bool, color string) float64 {
	total := 0.0
	for _, ln := range p.wrap(s, size, bold, maxW) {
		total += p.line(x, y+total, ln, size, bold, color)
	}
	return total
}

func (p *painter) wrap(s string, size float64, bold bool, maxW float64) []string {
	var out []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			if p.measure(cur+" "+w, size, bold) > maxW {
				out = append(out, cur)
				cur = w
				continue
			}
			cur += " " + w
		}
		out = append(out, cur)
	}
	return out
}

func (p *painter) image(x, y, w, h float64, img image.Image) {
	s := p.scale
	p.ops = append(p.ops, drawOp{kind: opImage, x: x * s, y: y * s, w: w * s, h: h * s, img: img})
}

const (
	padX      = 24.0
	headerPad = 20.0
	bodyPadY  = 16.0
	colGap    = 24.0
	photoSize = 64.0
)

// layout records the whole document and returns its height in document
// pixels.
func (p *painter) layout(doc *render.Document, photo image.Image) float64 {
	width := float64(doc.Width)
	headerH := p.header(doc, width, photo)

	top := headerH + bodyPadY
	inner := width - 2*padX
	widths := columnWidths(doc.Columns, inner)

	x := padX
	tallest := 0.0
	for i, col := range doc.Columns {
		h := p.column(col, x, top, widths[i])
		tallest = math.Max(tallest, h)
		x += widths[i] + colGap
	}

	x = padX
	for i, col := range doc.Columns {
		if col.RuleAfter {
			p.rect(x+widths[i]+colGap/2, top, 1, tallest, 0, col.RuleColor)
		}
		x += widths[i] + colGap
	}

	return math.Max(top+tallest+bodyPadY, MinHeightPx)
}

func columnWidths(cols []render.Column, inner float64) []float64 {
	out := make([]float64, len(cols))
	if len(cols) <= 1 {
		for i := range out {
			out[i] = inner
		}
		return out
	}
	avail := inner - colGap*float64(len(cols)-1)
	for i, c := range cols {
		out[i] = avail * float64(c.WidthPercent) / 100
	}
	return out
}

func (p *painter) header(doc *render.Document, width float64, photo image.Image) float64 {
	hd := doc.Header
	mark := len(p.ops)
	pad := headerPad
	if hd.Variant == model.HeaderMinimal {
		pad = 16
	}

	y := pad
	x := padX
	if photo != nil {
		p.image(x, y, photoSize, photoSize, photo)
		x += photoSize + 16
	}
	nameColor := hd.NameStyle.Color
	if nameColor == "" {
		nameColor = hd.Style.Color
	}
	nameH := p.line(x, y, hd.Name, 22, true, nameColor)
	titleH := p.line(x, y+nameH+2, hd.Title, 13, false, hd.Style.Color)
	content := nameH + 2 + titleH
	if photo != nil {
		content = math.Max(content, photoSize)
	}
	y += content

	if len(hd.Contacts) > 0 {
		y += 12
		cx := padX
		rowH := p.lineHeight(10, false)
		for _, c := range hd.Contacts {
			w := p.measure(c.Label, 10, false)
			if cx > padX && cx+w > width-padX {
				cx = padX
				y += rowH + 4
			}
			p.line(cx, y, c.Label, 10, false, hd.Style.Color)
			cx += w + 12
		}
		y += rowH
	}
	height := y + pad
	p.insertRect(mark, 0, 0, width, height, hd.Style.Background)
	return height
}

func (p *painter) column(col render.Column, x, top, w float64) float64 {
	y := top
	for _, s := range col.Sections {
		y += p.section(s, x, y, w)
	}
	return y - top
}

func (p *painter) section(s render.Section, x, top, w float64) float64 {
	y := top
	y += p.line(x, y, s.Heading, 13, true, s.Style.Color) + 4
	p.rect(x, y, w, 2, 0, s.Style.Border)
	y += 2 + 8

	switch s.Kind {
	case render.SectionSkills:
		y += p.skills(s.Blocks, x, y, w)
	case render.SectionLanguages:
		y += p.tags(s.Blocks, x, y, w)
	default:
		for _, b := range s.Blocks {
			y += p.block(b, x, y, w)
		}
	}
	return y - top + 12
}

func (p *painter) block(b render.Block, x, top, w float64) float64 {
	if b.Kind == render.BlockText {
		return p.paragraph(x, top, w, b.Body, 12, false, b.Style.Color) + 4
	}

	y := top
	metaW := 0.0
	if b.Meta != "" {
		metaW = p.measure(b.Meta, 10, false)
	}
	titleW := w
	if metaW > 0 && metaW < w/2 {
		titleW = w - metaW - 8
		p.line(x+w-metaW, y+2, b.Meta, 10, false, b.Style.Accent)
	}
	y += p.paragraph(x, y, titleW, b.Title, 12, true, "")
	if metaW >= w/2 {
		y += p.line(x, y, b.Meta, 10, false, b.Style.Accent)
	}

	sub := b.Subtitle
	if b.Location != "" {
		if sub != "" {
			sub += " · "
		}
		sub += b.Location
	}
	if sub != "" {
		y += p.paragraph(x, y, w, sub, 12, false, b.Style.Color)
	}
	if b.Note != "" {
		y += p.line(x, y, b.Note, 10, false, "")
	}
	if b.Link != nil {
		y += p.line(x, y, b.Link.Label, 10, false, b.Style.Accent)
	}
	if b.Body != "" {
		y += 4 + p.paragraph(x, y+4, w, b.Body, 10, false, "")
	}
	return y - top + 8
}

func (p *painter) skills(blocks []render.Block, x, top, w float64) float64 {
	cellW := (w - 16) / 2
	rowH := p.lineHeight(12, false) + 4 + 6 + 4
	for i, b := range blocks {
		cx := x + float64(i%2)*(cellW+16)
		cy := top + float64(i/2)*rowH
		p.line(cx, cy, b.Title, 12, false, b.Style.Color)
		sy := cy + p.lineHeight(12, false) + 4
		for j, seg := range b.Indicator {
			p.rect(cx+float64(j)*16, sy, 12, 6, 3, seg.Style.Background)
		}
	}
	rows := (len(blocks) + 1) / 2
	return float64(rows) * rowH
}

func (p *painter) tags(blocks []render.Block, x, top, w float64) float64 {
	rowH := p.lineHeight(12, false) + 4
	cx, cy := x, top
	for _, b := range blocks {
		tw := p.measure(b.Title, 12, false) + 16
		if cx > x && cx+tw > x+w {
			cx = x
			cy += rowH + 8
		}
		p.rect(cx, cy, tw, rowH, rowH/2, b.Style.Background)
		p.line(cx+8, cy+2, b.Title, 12, false, b.Style.Color)
		cx += tw + 8
	}
	return cy - top + rowH
}
