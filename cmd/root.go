package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cowjuh/fs-utilities/internal/config"
	"github.com/cowjuh/fs-utilities/pkg/logger"
)

var (
	cfgPath string
	verbose bool
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "mediakit",
	Short: "mediakit - batch-convert folders of images and PDFs",
	Long: "mediakit turns a folder of PNG/JPEG/TIFF/PDF files into derived artifacts:\n" +
		"an xlsx with thumbnails and metadata, a print-scale sheet, or per-page PNGs.",
	// Runtime failures are reported once by Execute; usage belongs to
	// flag mistakes only.
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (optional, defaults apply without one)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug mode with trace logging")
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
}

func newLogger() *logger.Logger {
	log := logger.New(logger.WithPrefix("[mediakit] "))
	log.SetVerbose(verbose)
	if debug {
		log.SetLevel(logger.LevelTrace)
	}
	return log
}

func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return cfg, nil
}
