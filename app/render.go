package app

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	verdure "github.com/phanxgames/verdure"
)

const (
	paletteSlotHeight = 44.0
	markerRadius      = 14.0
)

var (
	colorBackdrop  = color.RGBA{0x24, 0x29, 0x21, 0xff}
	colorCanvas    = color.RGBA{0xf3, 0xf0, 0xe7, 0xff}
	colorPalette   = color.RGBA{0x2f, 0x36, 0x2c, 0xff}
	colorTree      = color.RGBA{0x4c, 0x8c, 0x4a, 0xff}
	colorOwned     = color.RGBA{0xc6, 0x6b, 0x3d, 0xff}
	colorBuilding  = color.RGBA{0x8d, 0x6e, 0x63, 0xff}
	colorOther     = color.RGBA{0x78, 0x90, 0x9c, 0xff}
	colorSelection = color.RGBA{0xff, 0xd5, 0x4f, 0xff}
)

// Draw implements ebiten.Game.
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackdrop)
	switch a.screen {
	case ScreenGardens:
		a.drawGardens(screen)
	case ScreenGarden:
		a.drawGarden(screen)
	}
}

func (a *App) drawGardens(screen *ebiten.Image) {
	gardens := a.gallery.Gardens()
	index := a.gallery.Index()

	y := 40
	ebitenutil.DebugPrintAt(screen, "Gardens  (left/right to browse, enter to open)", 40, 16)
	for i, g := range gardens {
		marker := "  "
		if i == index {
			marker = "> "
		}
		line := fmt.Sprintf("%s%s", marker, g.Name)
		if g.Location != "" {
			line += "  @ " + g.Location
		}
		ebitenutil.DebugPrintAt(screen, line, 40, y)
		y += 20
	}
	if index == len(gardens) {
		ebitenutil.DebugPrintAt(screen, "> + new garden", 40, y)
	}
	if a.lastErr != nil {
		ebitenutil.DebugPrintAt(screen, "error: "+a.lastErr.Error(), 40, a.height-24)
	}
}

func (a *App) drawGarden(screen *ebiten.Image) {
	// Canvas surface.
	vector.DrawFilledRect(screen,
		float32(a.canvas.X), float32(a.canvas.Y),
		float32(a.canvas.Width), float32(a.canvas.Height),
		colorCanvas, false)

	a.drawPalette(screen)

	t := a.viewport.Transform()
	items := a.items.Items()
	highlighted := a.filter.Highlighted(items)

	for _, it := range items {
		p := t.PercentToScreen(it.Position())
		x := float32(p.X + a.canvas.X)
		y := float32(p.Y + a.canvas.Y)
		r := float32(markerRadius * a.viewport.Zoom)

		fill := markerFill(it)
		if !highlighted[it.ID] {
			fill.A = 0x50
		}
		if it.ID == a.selectedID {
			vector.DrawFilledCircle(screen, x, y, r+3, colorSelection, true)
		}
		vector.DrawFilledCircle(screen, x, y, r, fill, true)
	}

	// Floating preview while dragging.
	if a.session.Dragging() {
		p := a.session.Position()
		vector.DrawFilledCircle(screen,
			float32(p.X+a.canvas.X), float32(p.Y+a.canvas.Y),
			markerRadius, color.RGBA{0xff, 0xff, 0xff, 0x90}, true)
	}

	status := fmt.Sprintf("zoom %.2f  items %d", a.viewport.Zoom, len(items))
	if a.editor.Undoable() {
		status += "  [ctrl+z undo]"
	}
	ebitenutil.DebugPrintAt(screen, status, int(a.canvas.X)+8, a.height-20)
	if a.lastErr != nil {
		ebitenutil.DebugPrintAt(screen, "error: "+a.lastErr.Error(), int(a.canvas.X)+8, a.height-40)
	}
}

func (a *App) drawPalette(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, paletteWidth, float32(a.height), colorPalette, false)
	for i, tpl := range a.palette.All() {
		y := float32(i) * paletteSlotHeight
		cx := float32(paletteWidth) / 4
		cy := y + paletteSlotHeight/2
		var fill color.RGBA
		switch tpl.Category {
		case verdure.CategoryTree:
			fill = colorTree
		case verdure.CategoryBuilding:
			fill = colorBuilding
		default:
			fill = colorOther
		}
		vector.DrawFilledCircle(screen, cx, cy, 12, fill, true)
		ebitenutil.DebugPrintAt(screen, tpl.Name, int(paletteWidth/2), int(cy)-8)
	}
}

func markerFill(it verdure.Item) color.RGBA {
	switch {
	case it.IsTree() && it.Status == verdure.StatusUnavailable:
		return colorOwned
	case it.IsTree():
		return colorTree
	case it.Category == verdure.CategoryBuilding:
		return colorBuilding
	default:
		return colorOther
	}
}
