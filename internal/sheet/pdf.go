package sheet

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/go-pdf/fpdf"

	"github.com/cowjuh/fs-utilities/pkg/logger"
)

// PDFRenderer writes a layout to a multi-page PDF at 1x, so every image
// lands at its true physical print size.
type PDFRenderer struct {
	spec   PageSpec
	logger *logger.Logger
}

func NewPDFRenderer(spec PageSpec, logger *logger.Logger) *PDFRenderer {
	return &PDFRenderer{
		spec:   spec,
		logger: logger,
	}
}

func (r *PDFRenderer) Render(pages []Page, outPath string) error {
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "in",
		Size:           fpdf.SizeType{Wd: r.spec.WidthIn, Ht: r.spec.HeightIn},
	})
	doc.SetAutoPageBreak(false, 0)
	doc.SetFont("Helvetica", "", 8)

	for pageIdx, page := range pages {
		doc.AddPage()
		for i, pl := range page.Placements {
			name := fmt.Sprintf("page%d_item%d", pageIdx, i)

			var buf bytes.Buffer
			if err := png.Encode(&buf, pl.Image); err != nil {
				return fmt.Errorf("failed to encode %s for placement: %w", pl.Item.Filename(), err)
			}

			opts := fpdf.ImageOptions{ImageType: "PNG"}
			doc.RegisterImageOptionsReader(name, opts, &buf)
			doc.ImageOptions(name, pl.X, pl.Y, pl.W, pl.H, false, opts, 0, "")

			doc.Text(pl.X, pl.Y+pl.H+0.2, pl.Item.Label())
			r.logger.Trace("Placed %s at (%.2f, %.2f) %s on page %d",
				pl.Item.Filename(), pl.X, pl.Y, pl.Item.PrintDims(), pageIdx+1)
		}
	}

	if err := doc.Error(); err != nil {
		return fmt.Errorf("failed to compose scale sheet: %w", err)
	}

	if err := doc.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	return nil
}
