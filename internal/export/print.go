package export

import (
	"resume-builder/internal/render"
)

// PrintHTML produces a standalone page for the browser's own print dialog.
// The document is cloned and flattened first, so the caller's copy keeps
// its gradients.
func PrintHTML(doc *render.Document) (*Artifact, error) {
	if doc == nil {
		return nil, newError(KindInputAbsent, nil)
	}
	clean := render.Clone(doc)
	clean.Width = render.PageWidthPx
	render.Sanitize(clean, clean.Template.PrimaryColor)

	b, err := render.RenderHTML(clean, render.HTMLOptions{Print: true})
	if err != nil {
		return nil, newError(KindUnknown, err)
	}
	return &Artifact{
		Name:        "resume.html",
		ContentType: "text/html; charset=utf-8",
		Bytes:       b,
		Strategy:    StrategyPrint,
	}, nil
}
