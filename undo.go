package verdure

import (
	"context"
	"errors"
	"fmt"

	"github.com/phanxgames/verdure/store"
)

// ErrNothingToUndo signals an empty undo stack.
var ErrNothingToUndo = errors.New("nothing to undo")

// DefaultUndoDepth is the bound on the undo stack.
const DefaultUndoDepth = 10

// ActionType tags the kind of reversible mutation an Action records.
type ActionType uint8

const (
	ActionAdd      ActionType = iota // inverse: soft-delete the item
	ActionDelete                     // inverse: reactivate the item
	ActionMove                       // inverse: restore the old position
	ActionEdit                       // inverse: restore the old field value
	ActionAvatar                     // inverse: restore the old avatar
	ActionGenerate                   // inverse: soft-delete the whole batch
)

// Action is a recorded, reversible mutation. Only the fields relevant to its
// type are set.
type Action struct {
	Type ActionType
	Item Item

	// Move
	OldPos, NewPos Vec2

	// Edit: Field is the record column name.
	Field    string
	OldValue any
	NewValue any

	// Avatar
	OldAvatar, NewAvatar string

	// Generate
	Items []Item
}

// UndoStack is a bounded LIFO of reversible actions, newest first. Pushing
// past capacity evicts the oldest entry. Inverses are applied against the
// record store; after a successful undo the caller must force-refresh the
// item store rather than trust the optimistic local inverse.
type UndoStack struct {
	st      store.Store
	actions []Action
	depth   int
}

// NewUndoStack creates a stack bounded at depth; depth <= 0 uses
// DefaultUndoDepth.
func NewUndoStack(st store.Store, depth int) *UndoStack {
	if depth <= 0 {
		depth = DefaultUndoDepth
	}
	return &UndoStack{st: st, depth: depth}
}

// Push records an action, evicting the oldest when full.
func (u *UndoStack) Push(a Action) {
	u.actions = append([]Action{a}, u.actions...)
	if len(u.actions) > u.depth {
		u.actions = u.actions[:u.depth]
	}
}

// Len returns the number of recorded actions.
func (u *UndoStack) Len() int { return len(u.actions) }

// CanUndo reports whether the stack holds any action.
func (u *UndoStack) CanUndo() bool { return len(u.actions) > 0 }

// Actions returns a snapshot, newest first.
func (u *UndoStack) Actions() []Action {
	out := make([]Action, len(u.actions))
	copy(out, u.actions)
	return out
}

// Clear drops every recorded action. Called on garden navigation.
func (u *UndoStack) Clear() {
	u.actions = nil
}

// Undo pops the most recent action and applies its inverse against the
// record store. On failure the entry stays popped and the error is returned;
// the stack does not attempt to restore it.
func (u *UndoStack) Undo(ctx context.Context) (Action, error) {
	if len(u.actions) == 0 {
		return Action{}, ErrNothingToUndo
	}
	a := u.actions[0]
	u.actions = u.actions[1:]

	if err := u.applyInverse(ctx, a); err != nil {
		return a, fmt.Errorf("undo: %w", err)
	}
	return a, nil
}

func (u *UndoStack) applyInverse(ctx context.Context, a Action) error {
	switch a.Type {
	case ActionAdd:
		return u.patchItem(ctx, a.Item, map[string]any{"is_active": false})

	case ActionDelete:
		return u.patchItem(ctx, a.Item, map[string]any{"is_active": true})

	case ActionMove:
		return u.patchItem(ctx, a.Item, map[string]any{
			"x_percent": a.OldPos.X,
			"y_percent": a.OldPos.Y,
		})

	case ActionEdit:
		patch := map[string]any{a.Field: a.OldValue}
		// Re-applying an owner edit re-derives the status, same as the
		// forward compound command.
		if a.Field == "owner" && a.Item.IsTree() {
			old, _ := a.OldValue.(string)
			patch["status"] = string(DeriveStatus(old))
		}
		return u.patchItem(ctx, a.Item, patch)

	case ActionAvatar:
		return u.patchItem(ctx, a.Item, map[string]any{"custom_avatar": a.OldAvatar})

	case ActionGenerate:
		ids := make([]string, len(a.Items))
		for i, it := range a.Items {
			ids[i] = it.ID
		}
		return u.st.UpdateTreesFields(ctx, ids, map[string]any{"is_active": false})

	default:
		return fmt.Errorf("unknown action type %d", a.Type)
	}
}

// patchItem routes to the table the item's category lives in.
func (u *UndoStack) patchItem(ctx context.Context, it Item, patch map[string]any) error {
	if it.IsTree() {
		return u.st.UpdateTreeFields(ctx, it.ID, patch)
	}
	return u.st.UpdateItemFields(ctx, it.ID, patch)
}
