package media

import (
	"image"
	"os"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

const orientationNormal = 1

// orientationOf reads the EXIF orientation tag (0x0112). Any failure,
// including a file with no EXIF block at all, counts as normal.
func orientationOf(path string) int {
	f, err := os.Open(path)
	if err != nil {
		return orientationNormal
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return orientationNormal
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return orientationNormal
	}

	o, err := tag.Int(0)
	if err != nil || o < 1 || o > 8 {
		return orientationNormal
	}
	return o
}

// applyOrientation maps the eight EXIF orientation values onto the
// corresponding flip/rotate. imaging rotates counter-clockwise, so EXIF
// value 6 (90 degrees clockwise) pairs with Rotate270.
func applyOrientation(img image.Image, o int) image.Image {
	switch o {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
