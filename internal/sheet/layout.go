package sheet

import (
	"image"

	"github.com/cowjuh/fs-utilities/pkg/models"
)

// PageSpec is the output page geometry, in inches.
type PageSpec struct {
	WidthIn  float64
	HeightIn float64
	MarginIn float64
	LabelIn  float64
}

// Entry pairs an item's metadata with its decoded pixels.
type Entry struct {
	Item  models.MediaItem
	Image image.Image
}

// Placement is one image positioned on a page. X/Y is the top-left corner
// of the image in inches; the label band sits directly below the image.
type Placement struct {
	Item  models.MediaItem
	Image image.Image
	X, Y  float64
	W, H  float64
}

type Page struct {
	Placements []Placement
}

// Layout flows entries top to bottom in a single column, in input order.
// An item is placed at its physical print size; when the remaining
// vertical space cannot hold the image plus its label, a new page starts.
// Items larger than the usable page area are scaled down to fit, aspect
// ratio preserved.
func Layout(entries []Entry, spec PageSpec) []Page {
	usableW := spec.WidthIn - 2*spec.MarginIn
	usableH := spec.HeightIn - 2*spec.MarginIn - spec.LabelIn

	var pages []Page
	var current Page
	cursor := spec.MarginIn

	for _, e := range entries {
		w := e.Item.WidthIn
		h := e.Item.HeightIn

		if w > usableW || h > usableH {
			scale := usableW / w
			if s := usableH / h; s < scale {
				scale = s
			}
			w *= scale
			h *= scale
		}

		blockH := h + spec.LabelIn
		if len(current.Placements) > 0 && cursor+blockH > spec.HeightIn-spec.MarginIn {
			pages = append(pages, current)
			current = Page{}
			cursor = spec.MarginIn
		}

		current.Placements = append(current.Placements, Placement{
			Item:  e.Item,
			Image: e.Image,
			X:     spec.MarginIn,
			Y:     cursor,
			W:     w,
			H:     h,
		})
		cursor += blockH
	}

	if len(current.Placements) > 0 {
		pages = append(pages, current)
	}

	return pages
}
