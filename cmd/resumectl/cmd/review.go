package cmd

import (
	"encoding/json"
	"fmt"

	"resume-builder/internal/usecase"

	"github.com/spf13/cobra"
)

func newReviewCmd() *cobra.Command {
	var in string
	var asJSON bool
	c := &cobra.Command{
		Use:   "review",
		Short: "Score a resume and suggest improvements",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readResume(in)
			if err != nil {
				return err
			}
			res := usecase.Review(data)
			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			fmt.Fprintf(w, "Score: %d/100 (%s)\n%s\n", res.Score, res.Verdict, res.Summary)
			for _, f := range res.Feedback {
				if f.Suggestion != "" {
					fmt.Fprintf(w, "  - %s: %s\n", f.Category, f.Suggestion)
				}
			}
			return nil
		},
	}
	c.Flags().StringVar(&in, "in", "", "resume JSON file")
	c.Flags().BoolVar(&asJSON, "json", false, "print the full review as JSON")
	_ = c.MarkFlagRequired("in")
	return c
}
