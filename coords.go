package verdure

// Placement margin: items are clamped so they never render fully off-edge.
const (
	placementMin = 2.0
	placementMax = 98.0
)

// Transform maps between canvas-local screen pixels and garden-space
// percentage coordinates for a given viewport state. The forward render
// transform is translate(pan) then scale(zoom) around the canvas center;
// ScreenToPercent applies its inverse.
type Transform struct {
	Zoom float64
	Pan  Vec2
	Rect Rect
}

// ScreenToPercent converts a canvas-local pixel position to garden-space
// percentages. The result is not clamped; callers placing items should pass
// it through ClampPlacement, while hit tests and pinch anchors use it raw.
func (t Transform) ScreenToPercent(p Vec2) Vec2 {
	w := t.Rect.Width
	h := t.Rect.Height
	if w == 0 || h == 0 {
		return Vec2{}
	}
	if t.Zoom == 1 && t.Pan.X == 0 && t.Pan.Y == 0 {
		return Vec2{X: p.X / w * 100, Y: p.Y / h * 100}
	}
	// Invert: screen = center + zoom*(content - center) + pan
	cx := (p.X - w/2 - t.Pan.X) / t.Zoom
	cy := (p.Y - h/2 - t.Pan.Y) / t.Zoom
	return Vec2{
		X: (cx + w/2) / w * 100,
		Y: (cy + h/2) / h * 100,
	}
}

// PercentToScreen converts garden-space percentages to a canvas-local pixel
// position under the current zoom and pan.
func (t Transform) PercentToScreen(pc Vec2) Vec2 {
	w := t.Rect.Width
	h := t.Rect.Height
	cx := pc.X / 100 * w
	cy := pc.Y / 100 * h
	return Vec2{
		X: (cx-w/2)*t.Zoom + w/2 + t.Pan.X,
		Y: (cy-h/2)*t.Zoom + h/2 + t.Pan.Y,
	}
}

// ClampPlacement restricts a garden-space coordinate to the placement
// margins so a placed item stays visible.
func ClampPlacement(pc Vec2) Vec2 {
	return Vec2{
		X: clamp(pc.X, placementMin, placementMax),
		Y: clamp(pc.Y, placementMin, placementMax),
	}
}
