package export

// FileName is the name every exported PDF is saved under.
const FileName = "resume.pdf"

// Export strategies.
const (
	StrategyRaster = "raster"
	StrategyText   = "text"
	StrategyPrint  = "print"
)

// Artifact is a finished export ready to be delivered.
type Artifact struct {
	Name        string
	ContentType string
	Bytes       []byte
	Pages       int
	Strategy    string
}

func pdfArtifact(b []byte, pages int, strategy string) *Artifact {
	return &Artifact{Name: FileName, ContentType: "application/pdf", Bytes: b, Pages: pages, Strategy: strategy}
}
