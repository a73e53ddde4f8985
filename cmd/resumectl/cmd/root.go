package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"resume-builder/internal/model"

	"github.com/spf13/cobra"
)

// NewRootCmd assembles the command tree. Each call returns fresh flag state.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "resumectl",
		Short: "Render, export and review resumes from the command line",
		Long: `resumectl works on resume JSON files offline.

Available commands:
  templates list   Show the template catalog
  render           Write the HTML preview of a resume
  export           Write resume.pdf (raster, text) or the print page
  review           Score a resume for completeness

Use "resumectl [command] --help" for more information about a command.`,
		SilenceUsage: true,
	}
	root.AddCommand(newTemplatesCmd(), newRenderCmd(), newExportCmd(), newReviewCmd(), newVersionCmd())
	return root
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// readResume loads a resume file, checking it against the JSON schema
// before decoding and the struct rules after.
func readResume(path string) (model.ResumeData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.ResumeData{}, err
	}
	if err := model.ValidateJSON(raw); err != nil {
		return model.ResumeData{}, fmt.Errorf("%s: %w", path, err)
	}
	d, err := decodeResume(path, raw)
	if err != nil {
		return model.ResumeData{}, err
	}
	if err := model.Validate(d); err != nil {
		return model.ResumeData{}, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// loadResume only decodes the file. render and export use it so partial
// drafts still produce output.
func loadResume(path string) (model.ResumeData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.ResumeData{}, err
	}
	return decodeResume(path, raw)
}

func decodeResume(path string, raw []byte) (model.ResumeData, error) {
	var d model.ResumeData
	if err := json.Unmarshal(raw, &d); err != nil {
		return model.ResumeData{}, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

func lookupTemplate(id string) (model.TemplateConfig, error) {
	if id == "" {
		return model.DefaultTemplate(), nil
	}
	tpl, ok := model.Template(id)
	if !ok {
		return model.TemplateConfig{}, fmt.Errorf("unknown template %q (see: resumectl templates list)", id)
	}
	return tpl, nil
}
