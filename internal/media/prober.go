package media

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/tiff"

	"github.com/cowjuh/fs-utilities/internal/pdf"
	"github.com/cowjuh/fs-utilities/pkg/logger"
	"github.com/cowjuh/fs-utilities/pkg/models"
)

// ErrUnsupportedFormat classifies a file the imaging stack cannot decode.
// Callers log a diagnostic, skip the file and keep going.
var ErrUnsupportedFormat = errors.New("unsupported media format")

// Prober opens one media file and produces its metadata plus the decoded
// pixels. PDF inputs stand in for their rasterized first page.
type Prober struct {
	dpi        float64
	rasterizer *pdf.Rasterizer
	logger     *logger.Logger
}

func NewProber(dpi float64, rasterizer *pdf.Rasterizer, logger *logger.Logger) *Prober {
	return &Prober{
		dpi:        dpi,
		rasterizer: rasterizer,
		logger:     logger,
	}
}

func (p *Prober) Probe(path string) (models.MediaItem, image.Image, error) {
	format := models.FormatForPath(path)
	if format == models.FormatUnknown {
		return models.MediaItem{}, nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	var img image.Image
	var mode models.ColorMode
	var err error

	switch format {
	case models.FormatPDF:
		img, err = p.rasterizer.FirstPage(path)
		if err != nil {
			return models.MediaItem{}, nil, fmt.Errorf("%w: %s: %v", ErrUnsupportedFormat, path, err)
		}
		mode = modeOf(img)
	default:
		img, mode, err = p.decodeImage(path, format)
		if err != nil {
			return models.MediaItem{}, nil, err
		}
	}

	bounds := img.Bounds()
	item := models.MediaItem{
		Path:     path,
		WidthPx:  bounds.Dx(),
		HeightPx: bounds.Dy(),
		WidthIn:  float64(bounds.Dx()) / p.dpi,
		HeightIn: float64(bounds.Dy()) / p.dpi,
		Mode:     mode,
		Format:   format,
	}

	p.logger.Debug("Probed %s: %dx%d px, %.2f x %.2f in, %s/%s",
		item.Filename(), item.WidthPx, item.HeightPx, item.WidthIn, item.HeightIn, item.Mode, item.Format)

	return item, img, nil
}

func (p *Prober) decodeImage(path string, format models.MediaFormat) (image.Image, models.ColorMode, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, models.ModeUnknown, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, models.ModeUnknown, fmt.Errorf("%w: %s: %v", ErrUnsupportedFormat, path, err)
	}

	// The mode is read before any rotation: the orientation ops always
	// buffer into NRGBA, whatever the source color model was.
	mode := modeOf(img)

	// JPEG and TIFF may carry an orientation tag; dimensions are taken
	// after the rotation is applied.
	if format == models.FormatJPEG || format == models.FormatTIFF {
		if o := orientationOf(path); o != orientationNormal {
			p.logger.Debug("Applying EXIF orientation %d to %s", o, path)
			img = applyOrientation(img, o)
		}
	}

	return img, mode, nil
}

// Probed pairs an item's metadata with its decoded pixels.
type Probed struct {
	Item  models.MediaItem
	Image image.Image
}

// ProbeAll probes every path in order. A file that cannot be decoded is
// logged and skipped; any other failure aborts. When nothing could be
// decoded at all, ProbeAll errors so callers never produce an empty
// artifact.
func (p *Prober) ProbeAll(paths []string) ([]Probed, error) {
	var results []Probed
	for _, path := range paths {
		item, img, err := p.Probe(path)
		if err != nil {
			if errors.Is(err, ErrUnsupportedFormat) {
				p.logger.Warn("Skipping %s: %v", filepath.Base(path), err)
				continue
			}
			return nil, err
		}
		results = append(results, Probed{Item: item, Image: img})
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("no supported media files could be processed")
	}
	return results, nil
}

// Thumbnail scales img down proportionally so it fits in a target x target
// box. The aspect ratio is preserved exactly and images already inside the
// box are returned at their original size.
func Thumbnail(img image.Image, target int) *image.NRGBA {
	return imaging.Fit(img, target, target, imaging.Lanczos)
}

// modeOf reports the color mode of a decoded image. The stdlib decoders
// use *image.RGBA only for opaque truecolor and *image.NRGBA when an
// alpha channel is present.
func modeOf(img image.Image) models.ColorMode {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return models.ModeGray
	case *image.CMYK:
		return models.ModeCMYK
	case *image.Paletted:
		return models.ModeIndexed
	case *image.NRGBA, *image.NRGBA64:
		return models.ModeRGBA
	case *image.RGBA, *image.RGBA64, *image.YCbCr:
		return models.ModeRGB
	default:
		return models.ModeUnknown
	}
}
