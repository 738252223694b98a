// Package app is the interactive planner: an ebiten game loop wiring the
// input layer into the viewport, the drag session, and the editor.
package app

import (
	"context"
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	verdure "github.com/phanxgames/verdure"
	"github.com/phanxgames/verdure/auth"
	"github.com/phanxgames/verdure/internal/config"
	"github.com/phanxgames/verdure/store"
)

// paletteWidth is the pixel width of the template strip on the left edge.
const paletteWidth = 160.0

// itemHitRadius is the pick radius around an item's marker, in screen pixels.
const itemHitRadius = 22.0

// Screen selects which view the app is showing.
type Screen uint8

const (
	ScreenGardens Screen = iota
	ScreenGarden
)

// App implements ebiten.Game.
type App struct {
	cfg *config.Config
	log *logrus.Logger
	st  store.Store

	auth     *auth.Manager
	palette  *verdure.Palette
	gallery  *verdure.Gallery
	items    *verdure.ItemStore
	editor   *verdure.Editor
	filter   *verdure.TableFilter
	viewport *verdure.Viewport
	session  *verdure.Session
	input    *verdure.Input

	screen Screen
	width  int
	height int
	canvas verdure.Rect

	selectedID string
	lastErr    error
}

// New wires the full application.
func New(cfg *config.Config, st store.Store, log *logrus.Logger) (*App, error) {
	palette := verdure.NewPalette(nil)
	items := verdure.NewItemStore(st, palette, log)
	undo := verdure.NewUndoStack(st, verdure.DefaultUndoDepth)

	a := &App{
		cfg:      cfg,
		log:      log,
		st:       st,
		auth:     auth.NewManager(st, cfg.Session.Path, log),
		palette:  palette,
		gallery:  verdure.NewGallery(st, log),
		items:    items,
		editor:   verdure.NewEditor(items, undo, log),
		filter:   verdure.NewTableFilter(),
		session:  verdure.NewSession(),
		input:    verdure.NewInput(),
		width:    cfg.Window.Width,
		height:   cfg.Window.Height,
	}
	a.viewport = verdure.NewViewport(a.canvasRect())
	a.auth.OnLogout(items.Reset)
	a.auth.Restore()

	if err := a.gallery.Refresh(context.Background()); err != nil {
		return nil, err
	}
	return a, nil
}

// canvasRect is the canvas area in window pixels: everything right of the
// palette strip.
func (a *App) canvasRect() verdure.Rect {
	return verdure.Rect{
		X:      paletteWidth,
		Width:  float64(a.width) - paletteWidth,
		Height: float64(a.height),
	}
}

// toCanvas converts a window position to canvas-local pixels.
func (a *App) toCanvas(p verdure.Vec2) verdure.Vec2 {
	return verdure.Vec2{X: p.X - a.canvas.X, Y: p.Y - a.canvas.Y}
}

// Layout implements ebiten.Game.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.width, a.height
}

// Update implements ebiten.Game.
func (a *App) Update() error {
	a.canvas = a.canvasRect()
	a.viewport.Rect = a.canvas

	frame := a.input.Poll()

	switch a.screen {
	case ScreenGardens:
		a.updateGardens(frame)
	case ScreenGarden:
		a.updateGarden(frame)
	}
	return nil
}

func (a *App) updateGardens(frame verdure.Frame) {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		a.gallery.SetIndex(a.gallery.Index() - 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		a.gallery.SetIndex(a.gallery.Index() + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		if g, ok := a.gallery.Current(); ok {
			a.openGarden(g.ID)
		}
	}
}

func (a *App) openGarden(gardenID string) {
	if _, err := a.editor.OpenGarden(context.Background(), gardenID); err != nil {
		a.fail(err)
		return
	}
	a.viewport.Reset()
	a.filter.Reset()
	a.selectedID = ""
	a.screen = ScreenGarden
}

func (a *App) updateGarden(frame verdure.Frame) {
	ctx := context.Background()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.session.Cancel()
		a.viewport.EndPan()
		a.screen = ScreenGardens
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyZ) && frame.Zooming {
		if _, err := a.editor.Undo(ctx); err != nil && !errors.Is(err, verdure.ErrNothingToUndo) {
			a.fail(err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDelete) && a.selectedID != "" {
		if err := a.editor.Delete(ctx, a.selectedID); err != nil {
			a.fail(err)
		}
		a.selectedID = ""
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		a.viewport.GlideTo(verdure.MinZoom, 0.25)
	}

	// A pinch takes over from any single-pointer interaction.
	if frame.PinchActive {
		a.session.Cancel()
		a.viewport.EndPan()
		a.viewport.Pinch(a.toCanvas(frame.P0), a.toCanvas(frame.P1))
	} else {
		a.viewport.EndPinch()
		a.handlePointers(ctx, frame)
	}

	if frame.WheelY != 0 && frame.Zooming {
		// Wheel expects a DOM-style deltaY; ebiten reports wheel-up as
		// positive, the DOM as negative.
		domDeltaY := -frame.WheelY
		a.viewport.Wheel(a.toCanvas(frame.Cursor), domDeltaY)
	}

	a.viewport.Step(1.0 / float32(ebiten.TPS()))
}

func (a *App) handlePointers(ctx context.Context, frame verdure.Frame) {
	for _, ev := range frame.Pointers {
		pos := a.toCanvas(ev.Pos)
		switch ev.Phase {
		case verdure.PhaseDown:
			a.pointerDown(ev.Pos, pos)
		case verdure.PhaseMove:
			if a.session.Dragging() {
				a.session.Move(pos)
			} else {
				a.viewport.MovePan(pos)
			}
		case verdure.PhaseUp:
			a.pointerUp(ctx, pos)
		}
	}
}

func (a *App) pointerDown(window, canvasPos verdure.Vec2) {
	if tpl, ok := a.paletteHit(window); ok {
		a.session.BeginNew(tpl, canvasPos)
		return
	}
	if id, ok := a.itemHit(canvasPos); ok {
		a.session.BeginExisting(id, canvasPos)
		return
	}
	a.viewport.StartPan(canvasPos)
}

func (a *App) pointerUp(ctx context.Context, pos verdure.Vec2) {
	if a.viewport.Panning() {
		a.viewport.EndPan()
		return
	}
	local := verdure.Rect{Width: a.canvas.Width, Height: a.canvas.Height}
	drop := a.session.End(pos, local)

	g, ok := a.gallery.Find(a.items.GardenID())
	var defaults verdure.GardenDefaults
	if ok {
		defaults = verdure.DefaultsFromGarden(g)
	}
	out, err := a.editor.HandleDrop(ctx, drop, a.viewport.Transform(), defaults)
	if err != nil {
		a.fail(err)
		return
	}
	if out.Kind == verdure.DropClick {
		if a.selectedID == out.ItemID {
			a.selectedID = ""
		} else {
			a.selectedID = out.ItemID
		}
		a.filter.ToggleSelect(out.ItemID)
	}
}

// itemHit finds the topmost item under a canvas-local position.
func (a *App) itemHit(pos verdure.Vec2) (string, bool) {
	t := a.viewport.Transform()
	items := a.items.Items()
	for i := len(items) - 1; i >= 0; i-- {
		p := t.PercentToScreen(items[i].Position())
		dx := p.X - pos.X
		dy := p.Y - pos.Y
		if dx*dx+dy*dy <= itemHitRadius*itemHitRadius {
			return items[i].ID, true
		}
	}
	return "", false
}

// paletteHit maps a window position inside the palette strip to a template.
func (a *App) paletteHit(pos verdure.Vec2) (verdure.Template, bool) {
	if pos.X >= paletteWidth {
		return verdure.Template{}, false
	}
	all := a.palette.All()
	slot := int(pos.Y / paletteSlotHeight)
	if slot < 0 || slot >= len(all) {
		return verdure.Template{}, false
	}
	return all[slot], true
}

func (a *App) fail(err error) {
	a.lastErr = err
	a.log.WithError(err).Error("operation failed")
}
