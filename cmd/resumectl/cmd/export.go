package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"resume-builder/internal/export"
	"resume-builder/internal/usecase"
	infra "resume-builder/pkg/infrastructure"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var in, templateID, strategy, out, chromePath string
	var scale float64
	var timeout time.Duration
	c := &cobra.Command{
		Use:   "export",
		Short: "Export a resume to PDF",
		Long: `Export a resume with one of three strategies:
  raster  the styled preview captured as an image PDF (default)
  text    plain flowing text, works for every template
  print   the print page as HTML, or a PDF when --chrome is given`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := loadResume(in)
			if err != nil {
				return err
			}
			tpl, err := lookupTemplate(templateID)
			if err != nil {
				return err
			}

			log := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).Level(zerolog.WarnLevel)
			var rasterizer export.Rasterizer
			var opts []usecase.ExportOption
			if chromePath != "" {
				chrome := infra.NewChromeRenderer(chromePath, log)
				rasterizer = chrome
				opts = append(opts, usecase.WithPrinter(chrome))
			} else {
				sw, err := export.NewSoftwareRasterizer()
				if err != nil {
					return err
				}
				defer sw.Close()
				rasterizer = sw
			}
			svc := usecase.NewExportService(export.NewRasterExporter(rasterizer, log, export.WithScale(scale)), log, opts...)

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			art, err := svc.Export(ctx, data, tpl, strategy)
			if err != nil {
				var xerr *export.Error
				if errors.As(err, &xerr) {
					return fmt.Errorf("%w\n%s", err, xerr.Remedy())
				}
				return err
			}
			if out == "" {
				out = art.Name
			}
			if err := os.WriteFile(out, art.Bytes, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s, %d pages)\n", out, art.Strategy, art.Pages)
			return nil
		},
	}
	c.Flags().StringVar(&in, "in", "", "resume JSON file")
	c.Flags().StringVar(&templateID, "template", "", "template id (default modern-1)")
	c.Flags().StringVar(&strategy, "strategy", export.StrategyRaster, "raster, text or print")
	c.Flags().StringVar(&out, "out", "", "output file (default resume.pdf, or resume.html for print)")
	c.Flags().StringVar(&chromePath, "chrome", "", "Chrome binary; uses headless Chrome instead of the built-in rasterizer")
	c.Flags().Float64Var(&scale, "scale", export.DefaultScale, "capture scale for raster export")
	c.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "give up after this long")
	_ = c.MarkFlagRequired("in")
	return c
}
