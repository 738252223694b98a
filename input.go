package verdure

import (
	"github.com/hajimehoshi/ebiten/v2"
)

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// PointerPhase is a normalized pointer transition within one frame.
type PointerPhase uint8

const (
	PhaseDown PointerPhase = iota
	PhaseMove
	PhaseUp
)

// PointerEvent is one pointer transition. Mouse and touch both arrive here,
// so downstream code never branches on the input device.
type PointerEvent struct {
	ID    int
	Phase PointerPhase
	Pos   Vec2
}

// Frame is everything the input layer observed this tick.
type Frame struct {
	Pointers []PointerEvent

	// Cursor is the mouse position, valid every frame.
	Cursor Vec2

	// WheelY is the vertical scroll delta; Zooming reports whether the
	// ctrl or meta modifier was held, which gates wheel zoom.
	WheelY  float64
	Zooming bool

	// PinchActive is set while exactly two touches are down; P0 and P1 are
	// their positions.
	PinchActive bool
	P0, P1      Vec2
}

type inputPointer struct {
	down bool
	last Vec2
}

// Input polls ebiten's mouse and touch state into normalized per-frame
// pointer events. Touch ids map to stable slots for their lifetime.
type Input struct {
	pointers [maxPointers]inputPointer

	touchUsed [maxPointers]bool
	touchMap  [maxPointers]ebiten.TouchID
	touchIDs  []ebiten.TouchID
}

// NewInput creates an input poller.
func NewInput() *Input {
	return &Input{}
}

// Poll reads the current device state and returns the frame's events.
// Call once per Update.
func (in *Input) Poll() Frame {
	var f Frame
	in.pollMouse(&f)
	in.pollTouches(&f)
	in.pollWheel(&f)
	in.detectPinch(&f)
	return f
}

func (in *Input) pollMouse(f *Frame) {
	mx, my := ebiten.CursorPosition()
	pos := Vec2{X: float64(mx), Y: float64(my)}
	f.Cursor = pos
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	in.step(f, 0, pos, pressed)
}

func (in *Input) pollTouches(f *Frame) {
	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])

	var active [maxPointers]bool
	for _, tid := range in.touchIDs {
		slot := in.touchSlot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true

		tx, ty := ebiten.TouchPosition(tid)
		in.step(f, slot, Vec2{X: float64(tx), Y: float64(ty)}, true)
	}

	// Release slots whose touch disappeared this frame.
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && !active[i] {
			if in.pointers[i].down {
				in.step(f, i, in.pointers[i].last, false)
			}
			in.touchUsed[i] = false
			in.touchMap[i] = 0
		}
	}
}

func (in *Input) pollWheel(f *Frame) {
	_, wy := ebiten.Wheel()
	f.WheelY = wy
	f.Zooming = ebiten.IsKeyPressed(ebiten.KeyControl) ||
		ebiten.IsKeyPressed(ebiten.KeyControlLeft) ||
		ebiten.IsKeyPressed(ebiten.KeyControlRight) ||
		ebiten.IsKeyPressed(ebiten.KeyMeta) ||
		ebiten.IsKeyPressed(ebiten.KeyMetaLeft) ||
		ebiten.IsKeyPressed(ebiten.KeyMetaRight)
}

// step runs one pointer through the down/move/up state machine.
func (in *Input) step(f *Frame, id int, pos Vec2, pressed bool) {
	ps := &in.pointers[id]
	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.last = pos
		f.Pointers = append(f.Pointers, PointerEvent{ID: id, Phase: PhaseDown, Pos: pos})
	case !pressed && ps.down:
		ps.down = false
		ps.last = pos
		f.Pointers = append(f.Pointers, PointerEvent{ID: id, Phase: PhaseUp, Pos: pos})
	case pressed && ps.down:
		if pos != ps.last {
			ps.last = pos
			f.Pointers = append(f.Pointers, PointerEvent{ID: id, Phase: PhaseMove, Pos: pos})
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9). Returns the
// existing slot or allocates a new one; -1 when full.
func (in *Input) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && in.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !in.touchUsed[i] {
			in.touchUsed[i] = true
			in.touchMap[i] = tid
			return i
		}
	}
	return -1
}

func (in *Input) detectPinch(f *Frame) {
	var count int
	var p [2]Vec2
	for i := 1; i < maxPointers; i++ {
		if in.pointers[i].down {
			if count < 2 {
				p[count] = in.pointers[i].last
			}
			count++
		}
	}
	if count == 2 {
		f.PinchActive = true
		f.P0 = p[0]
		f.P1 = p[1]
	}
}
