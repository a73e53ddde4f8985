package cmd

import (
	"fmt"
	"text/tabwriter"

	"resume-builder/internal/model"

	"github.com/spf13/cobra"
)

func newTemplatesCmd() *cobra.Command {
	templatesCmd := &cobra.Command{
		Use:   "templates",
		Short: "Inspect the template catalog",
	}

	var category string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List templates, optionally for one category",
		Long: `List every template in the catalog.

Examples:
  resumectl templates list
  resumectl templates list --category creative`,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := model.Templates()
			if category != "" {
				list = model.TemplatesByCategory(category)
				if len(list) == 0 {
					return fmt.Errorf("unknown category %q, valid: %v", category, model.Categories())
				}
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tLAYOUT\tHEADER")
			for _, t := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Name, t.Category, t.Layout, t.HeaderStyle)
			}
			return w.Flush()
		},
	}
	listCmd.Flags().StringVar(&category, "category", "", "only list templates in this category")

	templatesCmd.AddCommand(listCmd)
	return templatesCmd
}
