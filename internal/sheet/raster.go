package sheet

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/cowjuh/fs-utilities/pkg/logger"
)

// RasterRenderer writes a layout to PNG or JPG pages. Raster output
// renders at a multiple of the DPI (2x by default) so the sheet survives
// zooming in design tools.
type RasterRenderer struct {
	spec   PageSpec
	dpi    float64
	scale  float64
	logger *logger.Logger
}

func NewRasterRenderer(spec PageSpec, dpi, scale float64, logger *logger.Logger) *RasterRenderer {
	return &RasterRenderer{
		spec:   spec,
		dpi:    dpi,
		scale:  scale,
		logger: logger,
	}
}

// Render writes one file per page. A single page gets outPath as-is;
// additional pages get a _p<N> suffix before the extension.
func (r *RasterRenderer) Render(pages []Page, outPath string) error {
	ppi := r.dpi * r.scale
	canvasW := int(math.Round(r.spec.WidthIn * ppi))
	canvasH := int(math.Round(r.spec.HeightIn * ppi))

	for pageIdx, page := range pages {
		canvas := imaging.New(canvasW, canvasH, color.White)

		for _, pl := range page.Placements {
			w := int(math.Round(pl.W * ppi))
			h := int(math.Round(pl.H * ppi))
			resized := imaging.Resize(pl.Image, w, h, imaging.Lanczos)
			canvas = imaging.Paste(canvas, resized, image.Pt(
				int(math.Round(pl.X*ppi)),
				int(math.Round(pl.Y*ppi)),
			))

			labelX := int(math.Round(pl.X * ppi))
			labelY := int(math.Round((pl.Y+pl.H)*ppi)) + basicfont.Face7x13.Ascent + 4
			drawLabel(canvas, labelX, labelY, pl.Item.Label())
		}

		path := pagePath(outPath, pageIdx, len(pages))
		if err := imaging.Save(canvas, path, imaging.JPEGQuality(90)); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		r.logger.Debug("Wrote sheet page %d/%d: %s", pageIdx+1, len(pages), path)
	}

	return nil
}

func drawLabel(dst *image.NRGBA, x, y int, text string) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func pagePath(outPath string, pageIdx, total int) string {
	if total == 1 {
		return outPath
	}
	ext := filepath.Ext(outPath)
	return strings.TrimSuffix(outPath, ext) + fmt.Sprintf("_p%d", pageIdx+1) + ext
}
