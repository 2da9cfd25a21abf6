package models

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ColorMode is the color representation of a decoded image.
type ColorMode string

const (
	ModeRGB     ColorMode = "RGB"
	ModeRGBA    ColorMode = "RGBA"
	ModeGray    ColorMode = "L"
	ModeCMYK    ColorMode = "CMYK"
	ModeIndexed ColorMode = "P"
	ModeUnknown ColorMode = "Unknown"
)

// MediaFormat is the source file format of a media item.
type MediaFormat string

const (
	FormatPNG     MediaFormat = "PNG"
	FormatJPEG    MediaFormat = "JPEG"
	FormatTIFF    MediaFormat = "TIFF"
	FormatPDF     MediaFormat = "PDF"
	FormatUnknown MediaFormat = ""
)

// FormatForPath maps a file extension to its media format,
// case-insensitively. Unknown extensions map to FormatUnknown.
func FormatForPath(path string) MediaFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG
	case ".jpg", ".jpeg":
		return FormatJPEG
	case ".tif", ".tiff":
		return FormatTIFF
	case ".pdf":
		return FormatPDF
	default:
		return FormatUnknown
	}
}

// MediaItem is the metadata for one input file. PDF inputs are measured
// from their rasterized first page. Immutable after creation.
type MediaItem struct {
	Path     string
	WidthPx  int
	HeightPx int
	WidthIn  float64
	HeightIn float64
	Mode     ColorMode
	Format   MediaFormat
}

func (m MediaItem) Filename() string {
	return filepath.Base(m.Path)
}

// PrintDims returns the physical size as a display string, rounded to two
// decimal places. WidthIn/HeightIn keep the exact values.
func (m MediaItem) PrintDims() string {
	return fmt.Sprintf("%.2f\" x %.2f\"", m.WidthIn, m.HeightIn)
}

// Label is the single-line caption used beneath scale-sheet placements.
func (m MediaItem) Label() string {
	return fmt.Sprintf("%s | %dx%d px | %s | %s | %s",
		m.Filename(), m.WidthPx, m.HeightPx, m.PrintDims(), m.Mode, m.Format)
}
