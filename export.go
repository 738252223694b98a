package verdure

import (
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// ExportOptions configures a garden snapshot export.
type ExportOptions struct {
	// Width and Height in pixels; zero uses 1200x900, the canvas ratio.
	Width, Height int
	// Title is drawn along the top edge when set.
	Title string
	// Highlighted restricts full-strength rendering to the given item ids;
	// nil draws everything at full strength.
	Highlighted map[string]bool
}

var (
	exportBackground  = color.RGBA{R: 0xf3, G: 0xf0, B: 0xe7, A: 0xff}
	exportTreeFill    = color.RGBA{R: 0x4c, G: 0x8c, B: 0x4a, A: 0xff}
	exportOwnedFill   = color.RGBA{R: 0xc6, G: 0x6b, B: 0x3d, A: 0xff}
	exportItemFill    = color.RGBA{R: 0x8d, G: 0x6e, B: 0x63, A: 0xff}
	exportLabelColor  = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	exportDimmedAlpha = uint8(0x50)
)

// ExportPNG renders the garden's items to a PNG file. Items sit at their
// percent positions mapped onto the image, drawn as labelled markers;
// anything outside the highlight set renders faded.
func ExportPNG(path string, items []Item, opts ExportOptions) error {
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = 1200
	}
	if height <= 0 {
		height = 900
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(exportBackground)
	dc.Clear()

	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("parse font: %w", err)
	}
	labelFace := truetype.NewFace(ttf, &truetype.Options{
		Size:    13,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(labelFace)

	radius := float64(width) / 60
	for _, it := range items {
		cx := it.X / 100 * float64(width)
		cy := it.Y / 100 * float64(height)

		fill := markerColor(it)
		if opts.Highlighted != nil && !opts.Highlighted[it.ID] {
			fill.A = exportDimmedAlpha
		}

		dc.SetColor(fill)
		dc.DrawCircle(cx, cy, radius)
		dc.Fill()

		label := it.Name
		if it.Sort != "" {
			label = fmt.Sprintf("%s (%s)", it.Name, it.Sort)
		}
		dc.SetColor(exportLabelColor)
		dc.DrawStringAnchored(label, cx, cy+radius+4, 0.5, 1)
	}

	if opts.Title != "" {
		titleFace := truetype.NewFace(ttf, &truetype.Options{
			Size:    22,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		dc.SetFontFace(titleFace)
		dc.SetColor(exportLabelColor)
		dc.DrawStringAnchored(opts.Title, float64(width)/2, 12, 0.5, 1)
	}

	return dc.SavePNG(path)
}

func markerColor(it Item) color.RGBA {
	if !it.IsTree() {
		return exportItemFill
	}
	if it.Status == StatusUnavailable {
		return exportOwnedFill
	}
	return exportTreeFill
}
