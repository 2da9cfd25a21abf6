package pdf

import (
	"context"
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/cowjuh/fs-utilities/pkg/logger"
)

// Rasterizer renders PDF pages to raster images at a fixed DPI.
type Rasterizer struct {
	dpi float64
	log *logger.Logger
}

func NewRasterizer(dpi float64, log *logger.Logger) *Rasterizer {
	return &Rasterizer{
		dpi: dpi,
		log: log,
	}
}

// PageCount validates the file as a PDF and returns its page count. A
// file pdfcpu cannot parse is reported before any rendering starts.
func (r *Rasterizer) PageCount(path string) (int, error) {
	count, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read page count of %s: %w", path, err)
	}
	return count, nil
}

// FirstPage renders only the first page. Used when a PDF participates in
// an image listing and stands in for a single image.
func (r *Rasterizer) FirstPage(path string) (image.Image, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, fmt.Errorf("PDF %s has no pages", path)
	}

	// Page numbers are zero indexed in the fitz package.
	img, err := doc.ImageDPI(0, r.dpi)
	if err != nil {
		return nil, fmt.Errorf("failed to render first page: %w", err)
	}
	return img, nil
}

// RenderPages renders every page in order and hands each one to fn along
// with its 1-based page number.
func (r *Rasterizer) RenderPages(ctx context.Context, path string, fn func(pageNum int, img image.Image) error) error {
	doc, err := fitz.New(path)
	if err != nil {
		return fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	for pageNum := 0; pageNum < doc.NumPage(); pageNum++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		bounds, err := doc.Bound(pageNum)
		if err != nil {
			return fmt.Errorf("failed to get bounds for page %d: %w", pageNum, err)
		}
		r.log.Debug("Page %d dimensions: %d x %d", pageNum+1, bounds.Dx(), bounds.Dy())

		img, err := doc.ImageDPI(pageNum, r.dpi)
		if err != nil {
			return fmt.Errorf("failed to render page %d: %w", pageNum, err)
		}

		if err := fn(pageNum+1, img); err != nil {
			return err
		}
	}

	return nil
}
