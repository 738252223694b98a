package verdure

import "math"

// defaultDragDeadZone is the minimum movement in pixels before a touch or
// pointer hold on an existing item counts as a drag rather than a click.
const defaultDragDeadZone = 4.0

// SessionState is the pointer session's mode.
type SessionState uint8

const (
	SessionIdle             SessionState = iota
	SessionDraggingNew                   // palette template picked up
	SessionDraggingExisting              // placed item picked up
)

// DropKind classifies the outcome of ending a pointer session.
type DropKind uint8

const (
	DropNone       DropKind = iota // cancelled: no mutation, no undo entry
	DropPlace                      // place a new item from the palette
	DropReposition                 // move an existing item
	DropClick                      // tap/click on an existing item
)

// Drop is the resolved outcome of a pointer session, with the release point
// in canvas-local pixels.
type Drop struct {
	Kind     DropKind
	Template Template
	ItemID   string
	Screen   Vec2
}

// Session is the unified pointer/touch drag state machine. Mouse drags and
// simulated touch drags both feed it the same Begin/Move/End calls, so the
// two input pipelines converge before any coordinate math or store mutation
// happens.
type Session struct {
	state  SessionState
	tpl    Template
	itemID string

	start Vec2
	pos   Vec2
	moved bool

	deadZone float64
}

// NewSession creates an idle session.
func NewSession() *Session {
	return &Session{deadZone: defaultDragDeadZone}
}

// SetDragDeadZone overrides the click-versus-drag threshold in pixels.
func (s *Session) SetDragDeadZone(px float64) {
	s.deadZone = px
}

// State returns the current session state.
func (s *Session) State() SessionState { return s.state }

// Dragging reports whether any drag is in progress.
func (s *Session) Dragging() bool { return s.state != SessionIdle }

// DraggedItemID returns the picked-up item's id while repositioning.
func (s *Session) DraggedItemID() string { return s.itemID }

// Position returns the latest pointer position, for the floating preview.
func (s *Session) Position() Vec2 { return s.pos }

// BeginNew starts dragging a palette template from a canvas-local position.
func (s *Session) BeginNew(tpl Template, pos Vec2) {
	s.state = SessionDraggingNew
	s.tpl = tpl
	s.itemID = ""
	s.start = pos
	s.pos = pos
	s.moved = false
}

// BeginExisting starts dragging a placed item.
func (s *Session) BeginExisting(itemID string, pos Vec2) {
	s.state = SessionDraggingExisting
	s.itemID = itemID
	s.tpl = Template{}
	s.start = pos
	s.pos = pos
	s.moved = false
}

// Move updates the pointer position. The preview tracks the pointer; no
// canvas mutation happens until End.
func (s *Session) Move(pos Vec2) {
	if s.state == SessionIdle {
		return
	}
	s.pos = pos
	if !s.moved {
		dx := pos.X - s.start.X
		dy := pos.Y - s.start.Y
		if math.Hypot(dx, dy) > s.deadZone {
			s.moved = true
		}
	}
}

// End finishes the session at a canvas-local position. Releases outside the
// canvas cancel silently. A hold on an existing item that never left the
// dead zone resolves to a click.
func (s *Session) End(pos Vec2, canvas Rect) Drop {
	state := s.state
	tpl := s.tpl
	itemID := s.itemID
	moved := s.moved
	s.reset()

	if state == SessionIdle {
		return Drop{Kind: DropNone}
	}
	if !canvas.Contains(pos.X, pos.Y) {
		return Drop{Kind: DropNone}
	}

	switch state {
	case SessionDraggingNew:
		return Drop{Kind: DropPlace, Template: tpl, Screen: pos}
	case SessionDraggingExisting:
		if !moved {
			return Drop{Kind: DropClick, ItemID: itemID, Screen: pos}
		}
		return Drop{Kind: DropReposition, ItemID: itemID, Screen: pos}
	}
	return Drop{Kind: DropNone}
}

// Cancel aborts the session with no outcome.
func (s *Session) Cancel() {
	s.reset()
}

func (s *Session) reset() {
	s.state = SessionIdle
	s.tpl = Template{}
	s.itemID = ""
	s.moved = false
}
