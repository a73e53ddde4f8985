package cmd

import (
	"fmt"
	"os"

	"resume-builder/internal/render"

	"github.com/spf13/cobra"
)

func newRenderCmd() *cobra.Command {
	var in, templateID, out string
	c := &cobra.Command{
		Use:   "render",
		Short: "Write the standalone HTML preview of a resume",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := loadResume(in)
			if err != nil {
				return err
			}
			tpl, err := lookupTemplate(templateID)
			if err != nil {
				return err
			}
			page, err := render.RenderHTML(render.Render(data, tpl), render.HTMLOptions{Title: data.PersonalInfo.FullName})
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, page, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes, template %s)\n", out, len(page), tpl.ID)
			return nil
		},
	}
	c.Flags().StringVar(&in, "in", "", "resume JSON file")
	c.Flags().StringVar(&templateID, "template", "", "template id (default modern-1)")
	c.Flags().StringVar(&out, "out", "preview.html", "output file")
	_ = c.MarkFlagRequired("in")
	return c
}
