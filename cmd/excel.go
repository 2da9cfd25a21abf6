package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cowjuh/fs-utilities/internal/excel"
	"github.com/cowjuh/fs-utilities/internal/media"
	"github.com/cowjuh/fs-utilities/internal/pdf"
	"github.com/cowjuh/fs-utilities/internal/scanner"
)

var (
	excelInput   string
	excelOutput  string
	excelName    string
	excelCompact bool
)

var excelCmd = &cobra.Command{
	Use:   "excel",
	Short: "Export a folder of media to an xlsx with thumbnails and metadata",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger()
		ctx := context.Background()

		paths, err := scanner.New(log).ListMedia(ctx, excelInput)
		if err != nil {
			return err
		}
		log.Info("Processing %d files...", len(paths))

		if err := os.MkdirAll(excelOutput, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}

		writer, err := excel.NewWriter(excelOutput, log)
		if err != nil {
			return err
		}

		prober := media.NewProber(cfg.DPI, pdf.NewRasterizer(cfg.DPI, log), log)
		target := cfg.Thumbnail.Size
		if excelCompact {
			target = cfg.Thumbnail.CompactSize
		}

		results, err := prober.ProbeAll(paths)
		if err != nil {
			return err
		}

		for _, r := range results {
			if err := writer.Add(r.Item, media.Thumbnail(r.Image, target)); err != nil {
				return err
			}
		}

		outPath := filepath.Join(excelOutput, excelName+".xlsx")
		if err := writer.Save(outPath); err != nil {
			return err
		}

		fmt.Fprintln(os.Stdout, outPath)
		return nil
	},
}

func init() {
	excelCmd.Flags().StringVarP(&excelInput, "input", "i", "", "folder containing media files")
	excelCmd.Flags().StringVarP(&excelOutput, "output", "o", "", "output folder")
	excelCmd.Flags().StringVarP(&excelName, "name", "n", "media_info", "base name for the xlsx file")
	excelCmd.Flags().BoolVar(&excelCompact, "compact", false, "use the smaller thumbnail target")
	_ = excelCmd.MarkFlagRequired("input")
	_ = excelCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(excelCmd)
}
