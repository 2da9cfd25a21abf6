package excel

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/unidoc/unioffice/common"
	"github.com/unidoc/unioffice/measurement"
	"github.com/unidoc/unioffice/spreadsheet"

	"github.com/cowjuh/fs-utilities/pkg/logger"
	"github.com/cowjuh/fs-utilities/pkg/models"
)

const (
	sheetName = "Media Info"

	// Row geometry for thumbnail rows. Offsets below are measured from
	// the top of the sheet, so every image anchor needs the header height
	// plus the preceding data rows.
	headerRowHeight = 0.25 * measurement.Inch
	dataRowHeight   = 2.0 * measurement.Inch
	cellPadding     = 0.05 * measurement.Inch
)

var headers = []string{
	"Image",
	"Filename",
	"Width (px)",
	"Height (px)",
	"Width (in)",
	"Height (in)",
	"Mode",
	"Format",
}

// Writer accumulates one spreadsheet row per media item, with the
// thumbnail embedded in column A and also written as a loose PNG under
// <outputDir>/thumbnails/.
type Writer struct {
	wb       *spreadsheet.Workbook
	sheet    spreadsheet.Sheet
	drawing  spreadsheet.Drawing
	thumbDir string
	rows     int
	logger   *logger.Logger
}

func NewWriter(outputDir string, logger *logger.Logger) (*Writer, error) {
	thumbDir := filepath.Join(outputDir, "thumbnails")
	if err := os.MkdirAll(thumbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create thumbnails directory: %w", err)
	}

	wb := spreadsheet.New()
	sheet := wb.AddSheet()
	sheet.SetName(sheetName)

	drawing := wb.AddDrawing()
	sheet.SetDrawing(drawing)

	// The header height is part of the anchor math below, so it is set
	// explicitly rather than left at the sheet default.
	headerRow := sheet.AddRow()
	headerRow.SetHeight(headerRowHeight)
	for _, h := range headers {
		headerRow.AddCell().SetString(h)
	}

	sheet.Column(1).SetWidth(2.2 * measurement.Inch)
	sheet.Column(2).SetWidth(3 * measurement.Inch)
	for col := uint32(3); col <= uint32(len(headers)); col++ {
		sheet.Column(col).SetWidth(1.1 * measurement.Inch)
	}

	return &Writer{
		wb:       wb,
		sheet:    sheet,
		drawing:  drawing,
		thumbDir: thumbDir,
		logger:   logger,
	}, nil
}

// Add appends one data row for item and anchors its thumbnail in column A.
func (w *Writer) Add(item models.MediaItem, thumb image.Image) error {
	thumbPath := filepath.Join(w.thumbDir, thumbFilename(item))
	if err := imaging.Save(thumb, thumbPath); err != nil {
		return fmt.Errorf("failed to save thumbnail for %s: %w", item.Filename(), err)
	}

	row := w.sheet.AddRow()
	row.SetHeight(dataRowHeight)

	row.AddCell().SetString("") // column A holds the anchored image
	row.AddCell().SetString(item.Filename())
	row.AddCell().SetNumber(float64(item.WidthPx))
	row.AddCell().SetNumber(float64(item.HeightPx))
	row.AddCell().SetNumber(item.WidthIn)
	row.AddCell().SetNumber(item.HeightIn)
	row.AddCell().SetString(string(item.Mode))
	row.AddCell().SetString(string(item.Format))

	img, err := common.ImageFromFile(thumbPath)
	if err != nil {
		return fmt.Errorf("failed to load thumbnail for %s: %w", item.Filename(), err)
	}
	ref, err := w.wb.AddImage(img)
	if err != nil {
		return fmt.Errorf("failed to embed thumbnail for %s: %w", item.Filename(), err)
	}

	anchor := w.drawing.AddImage(ref, spreadsheet.AnchorTypeAbsolute)
	anchor.SetColOffset(cellPadding)
	anchor.SetRowOffset(headerRowHeight + measurement.Distance(w.rows)*dataRowHeight + cellPadding)

	w.rows++
	w.logger.Debug("Added row for %s (%s)", item.Filename(), item.PrintDims())
	return nil
}

// Rows reports how many data rows have been added.
func (w *Writer) Rows() int {
	return w.rows
}

func (w *Writer) Save(path string) error {
	if w.rows == 0 {
		return fmt.Errorf("refusing to write %s: no rows were added", path)
	}
	if err := w.wb.Validate(); err != nil {
		return fmt.Errorf("workbook validation failed: %w", err)
	}
	if err := w.wb.SaveToFile(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func thumbFilename(item models.MediaItem) string {
	stem := strings.TrimSuffix(item.Filename(), filepath.Ext(item.Filename()))
	return "thumb_" + stem + ".png"
}
