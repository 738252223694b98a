package verdure

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	// MinZoom and MaxZoom bound the viewport zoom level.
	MinZoom = 1.0
	MaxZoom = 3.0

	// pixels of wheel/pinch movement per unit of zoom delta
	zoomWheelFactor = 0.015
	pinchZoomFactor = 0.015
)

// Viewport owns the zoom level and pan offset of the garden canvas.
//
// Pan changes are coalesced: PanBy and MovePan record a pending offset and
// Step commits at most one pan state change per call, so driving Step once
// per frame gives the at-most-one-update-per-frame policy without ad hoc
// animation-frame bookkeeping.
type Viewport struct {
	Zoom float64
	Pan  Vec2
	// Rect is the canvas bounding rectangle in screen pixels.
	Rect Rect

	pendingPan Vec2
	panPending bool

	panning  bool
	panStart Vec2

	pinchDist float64

	zoomTween  *gween.Tween
	zoomAnchor Vec2
}

// NewViewport creates a viewport at identity over the given canvas rect.
func NewViewport(rect Rect) *Viewport {
	return &Viewport{Zoom: MinZoom, Rect: rect}
}

// Transform returns the coordinate transform for the current state.
func (v *Viewport) Transform() Transform {
	return Transform{Zoom: v.Zoom, Pan: v.Pan, Rect: v.Rect}
}

// Reset returns the viewport to identity. Called unconditionally when
// navigating to a different garden.
func (v *Viewport) Reset() {
	v.Zoom = MinZoom
	v.Pan = Vec2{}
	v.panPending = false
	v.panning = false
	v.pinchDist = 0
	v.zoomTween = nil
}

// maxPan returns the pan clamp bound per axis: ±rect*(zoom-1)/2.
func (v *Viewport) maxPan(zoom float64) Vec2 {
	return Vec2{
		X: v.Rect.Width * (zoom - 1) / 2,
		Y: v.Rect.Height * (zoom - 1) / 2,
	}
}

func (v *Viewport) clampPan(p Vec2, zoom float64) Vec2 {
	m := v.maxPan(zoom)
	return Vec2{
		X: clamp(p.X, -m.X, m.X),
		Y: clamp(p.Y, -m.Y, m.Y),
	}
}

// ZoomAt applies a zoom delta anchored at a canvas-local pointer position:
// the content point under the pointer stays under it after the zoom. At
// zoom 1 the pan always resets to zero.
func (v *Viewport) ZoomAt(pointer Vec2, delta float64) {
	newZoom := clamp(v.Zoom+delta, MinZoom, MaxZoom)
	if newZoom == MinZoom {
		v.Zoom = newZoom
		v.Pan = Vec2{}
		return
	}

	w := v.Rect.Width
	h := v.Rect.Height
	// Content point currently under the pointer.
	contentX := (pointer.X - w/2 - v.Pan.X) / v.Zoom
	contentY := (pointer.Y - h/2 - v.Pan.Y) / v.Zoom

	v.Pan = v.clampPan(Vec2{
		X: pointer.X - w/2 - contentX*newZoom,
		Y: pointer.Y - h/2 - contentY*newZoom,
	}, newZoom)
	v.Zoom = newZoom
}

// Wheel translates a wheel movement with the given vertical delta into a
// zoom at the pointer.
func (v *Viewport) Wheel(pointer Vec2, deltaY float64) {
	v.ZoomAt(pointer, -deltaY*zoomWheelFactor)
}

// PanBy queues a relative pan. Panning is only permitted while zoomed in;
// the change is committed on the next Step.
func (v *Viewport) PanBy(delta Vec2) {
	if v.Zoom <= MinZoom {
		return
	}
	base := v.Pan
	if v.panPending {
		base = v.pendingPan
	}
	v.pendingPan = Vec2{X: base.X + delta.X, Y: base.Y + delta.Y}
	v.panPending = true
}

// StartPan begins a pointer-driven pan from a canvas-local position.
// No-op at zoom 1.
func (v *Viewport) StartPan(pointer Vec2) {
	if v.Zoom <= MinZoom {
		return
	}
	v.panning = true
	v.panStart = Vec2{X: pointer.X - v.Pan.X, Y: pointer.Y - v.Pan.Y}
}

// MovePan queues the pan implied by the pointer's current position relative
// to where the pan started.
func (v *Viewport) MovePan(pointer Vec2) {
	if !v.panning {
		return
	}
	v.pendingPan = Vec2{X: pointer.X - v.panStart.X, Y: pointer.Y - v.panStart.Y}
	v.panPending = true
}

// EndPan finishes a pointer-driven pan.
func (v *Viewport) EndPan() {
	v.panning = false
}

// Panning reports whether a pointer-driven pan is in progress.
func (v *Viewport) Panning() bool { return v.panning }

// Pinch feeds one frame of a two-finger gesture. The change in distance
// between the touch points drives a zoom anchored at their midpoint.
func (v *Viewport) Pinch(p0, p1 Vec2) {
	dist := math.Hypot(p1.X-p0.X, p1.Y-p0.Y)
	mid := Vec2{X: (p0.X + p1.X) / 2, Y: (p0.Y + p1.Y) / 2}
	if v.pinchDist > 0 {
		v.ZoomAt(mid, (dist-v.pinchDist)*pinchZoomFactor)
	}
	v.pinchDist = dist
}

// EndPinch finishes a pinch gesture.
func (v *Viewport) EndPinch() {
	v.pinchDist = 0
}

// GlideTo animates the zoom toward target over duration seconds, anchored
// at the canvas center. The tween advances in Step.
func (v *Viewport) GlideTo(target float64, duration float32) {
	target = clamp(target, MinZoom, MaxZoom)
	v.zoomTween = gween.New(float32(v.Zoom), float32(target), duration, ease.OutQuad)
	v.zoomAnchor = Vec2{X: v.Rect.Width / 2, Y: v.Rect.Height / 2}
}

// Step commits at most one pending pan update and advances any zoom tween.
// Call once per frame.
func (v *Viewport) Step(dt float32) {
	if v.panPending {
		if v.Zoom > MinZoom {
			v.Pan = v.clampPan(v.pendingPan, v.Zoom)
		}
		v.panPending = false
	}
	if v.zoomTween != nil {
		val, done := v.zoomTween.Update(dt)
		v.ZoomAt(v.zoomAnchor, float64(val)-v.Zoom)
		if done {
			v.zoomTween = nil
		}
	}
}
