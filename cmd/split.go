package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cowjuh/fs-utilities/internal/pdf"
	"github.com/cowjuh/fs-utilities/internal/split"
)

var splitOutput string

var splitCmd = &cobra.Command{
	Use:   "split <file.pdf>",
	Short: "Export every page of a PDF as a numbered PNG",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pdfPath := args[0]
		if _, err := os.Stat(pdfPath); err != nil {
			return fmt.Errorf("cannot read %s: %w", pdfPath, err)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger()

		splitter := split.New(pdf.NewRasterizer(cfg.DPI, log), log)
		pageDir, written, err := splitter.Split(context.Background(), pdfPath, splitOutput)
		if err != nil {
			return err
		}

		log.Info("Conversion complete! %d pages converted.", written)
		fmt.Fprintln(os.Stdout, pageDir)
		return nil
	},
}

func init() {
	splitCmd.Flags().StringVarP(&splitOutput, "output", "o", "", "output folder")
	_ = splitCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(splitCmd)
}
