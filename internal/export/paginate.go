package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"

	"github.com/go-pdf/fpdf"
)

// A4 portrait, in millimetres.
const (
	PageWidthMM  = 210.0
	PageHeightMM = 297.0
)

// Pages returns how many pages of height pageH are needed to show content
// of height contentH. There is always at least one page.
func Pages(contentH, pageH float64) int {
	if contentH <= 0 || pageH <= 0 {
		return 1
	}
	// Tolerate float noise such as 594.0000000001 over 297.
	n := int(math.Ceil(contentH/pageH - 1e-9))
	if n < 1 {
		return 1
	}
	return n
}

// Offsets returns the vertical image position on each page. Page k shows
// the slice starting at k*pageH, so the image is placed at -k*pageH.
func Offsets(contentH, pageH float64) []float64 {
	n := Pages(contentH, pageH)
	out := make([]float64, n)
	for k := range out {
		out[k] = -float64(k) * pageH
	}
	return out
}

// encodePNG converts the bitmap to PNG for embedding.
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// imagePDF builds an A4 PDF that shows the PNG at full page width, repeated
// at successive negative offsets until its scaled height is covered.
func imagePDF(pngBytes []byte, pxW, pxH int) ([]byte, int, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreator("resume-builder", true)
	pdf.SetAutoPageBreak(false, 0)

	opts := fpdf.ImageOptions{ImageType: "PNG", AllowNegativePosition: true}
	info := pdf.RegisterImageOptionsReader("resume", opts, bytes.NewReader(pngBytes))
	if info == nil || pdf.Err() {
		return nil, 0, fmt.Errorf("register image: %w", pdf.Error())
	}

	imgW := PageWidthMM
	imgH := float64(pxH) * imgW / float64(pxW)
	offsets := Offsets(imgH, PageHeightMM)
	for _, y := range offsets {
		pdf.AddPage()
		pdf.ImageOptions("resume", 0, y, imgW, imgH, false, opts, 0, "")
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, 0, err
	}
	return out.Bytes(), len(offsets), nil
}
