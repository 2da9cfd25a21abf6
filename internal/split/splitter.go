package split

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/cowjuh/fs-utilities/internal/pdf"
	"github.com/cowjuh/fs-utilities/pkg/logger"
)

// Splitter writes every page of a PDF as a PNG into a subfolder named
// after the source file.
type Splitter struct {
	rasterizer *pdf.Rasterizer
	logger     *logger.Logger
}

func New(rasterizer *pdf.Rasterizer, logger *logger.Logger) *Splitter {
	return &Splitter{
		rasterizer: rasterizer,
		logger:     logger,
	}
}

// Split renders pdfPath page by page into <outputDir>/<pdf-stem>/ and
// returns the page directory and the number of pages written. The page
// count preflight rejects unreadable PDFs before any file is created.
func (s *Splitter) Split(ctx context.Context, pdfPath, outputDir string) (string, int, error) {
	count, err := s.rasterizer.PageCount(pdfPath)
	if err != nil {
		return "", 0, err
	}
	s.logger.Info("Converting %s (%d pages) to PNG images...", filepath.Base(pdfPath), count)

	stem := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	pageDir := filepath.Join(outputDir, stem)
	if err := os.MkdirAll(pageDir, 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	written := 0
	err = s.rasterizer.RenderPages(ctx, pdfPath, func(pageNum int, img image.Image) error {
		path := filepath.Join(pageDir, PageFilename(pageNum))
		if err := saveImage(img, path); err != nil {
			return fmt.Errorf("failed to save page %d: %w", pageNum, err)
		}
		s.logger.Debug("Saved page %d to %s", pageNum, path)
		written++
		return nil
	})
	if err != nil {
		return pageDir, written, err
	}

	return pageDir, written, nil
}

// PageFilename returns the zero-padded name for a 1-based page number.
func PageFilename(pageNum int) string {
	return fmt.Sprintf("page_%03d.png", pageNum)
}

func saveImage(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}
