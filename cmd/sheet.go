package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cowjuh/fs-utilities/internal/media"
	"github.com/cowjuh/fs-utilities/internal/pdf"
	"github.com/cowjuh/fs-utilities/internal/scanner"
	"github.com/cowjuh/fs-utilities/internal/sheet"
)

var (
	sheetInput  string
	sheetOutput string
	sheetName   string
	sheetFormat string
)

var sheetCmd = &cobra.Command{
	Use:   "sheet",
	Short: "Compose a print-scale sheet placing each image at its physical size",
	RunE: func(cmd *cobra.Command, args []string) error {
		switch sheetFormat {
		case "pdf", "png", "jpg":
		default:
			return fmt.Errorf("unsupported output format %q (want pdf, png or jpg)", sheetFormat)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger()
		ctx := context.Background()

		paths, err := scanner.New(log).ListMedia(ctx, sheetInput)
		if err != nil {
			return err
		}
		log.Info("Processing %d files...", len(paths))

		prober := media.NewProber(cfg.DPI, pdf.NewRasterizer(cfg.DPI, log), log)

		results, err := prober.ProbeAll(paths)
		if err != nil {
			return err
		}

		entries := make([]sheet.Entry, 0, len(results))
		for _, r := range results {
			entries = append(entries, sheet.Entry{Item: r.Item, Image: r.Image})
		}

		if err := os.MkdirAll(sheetOutput, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}

		spec := sheet.PageSpec{
			WidthIn:  cfg.Page.WidthIn,
			HeightIn: cfg.Page.HeightIn,
			MarginIn: cfg.Page.MarginIn,
			LabelIn:  cfg.Page.LabelIn,
		}
		pages := sheet.Layout(entries, spec)
		log.Info("Placed %d items across %d pages", len(entries), len(pages))

		outPath := filepath.Join(sheetOutput, sheetName+"."+sheetFormat)
		if sheetFormat == "pdf" {
			err = sheet.NewPDFRenderer(spec, log).Render(pages, outPath)
		} else {
			err = sheet.NewRasterRenderer(spec, cfg.DPI, cfg.ScaleFor(sheetFormat), log).Render(pages, outPath)
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(os.Stdout, outPath)
		return nil
	},
}

func init() {
	sheetCmd.Flags().StringVarP(&sheetInput, "input", "i", "", "folder containing media files")
	sheetCmd.Flags().StringVarP(&sheetOutput, "output", "o", "", "output folder")
	sheetCmd.Flags().StringVarP(&sheetName, "name", "n", "scale_sheet", "base name for the sheet file")
	sheetCmd.Flags().StringVar(&sheetFormat, "format", "pdf", "output format: pdf, png or jpg")
	_ = sheetCmd.MarkFlagRequired("input")
	_ = sheetCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(sheetCmd)
}
