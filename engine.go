package verdure

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/phanxgames/verdure/store"
)

// defaultGeneratedType is the tree placed by the generator when the garden
// has no preference of its own.
const defaultGeneratedType = "olive"

var errUnknownItem = errors.New("unknown item")

// Editor drives every reversible mutation of the active garden. It pairs the
// item store with the undo stack so each committed edit records its inverse,
// and it is the single place where pointer drops turn into store operations.
type Editor struct {
	items *ItemStore
	undo  *UndoStack
	log   *logrus.Logger
}

// NewEditor creates an editor over the given item store and undo stack.
func NewEditor(items *ItemStore, undo *UndoStack, log *logrus.Logger) *Editor {
	if log == nil {
		log = logrus.New()
	}
	return &Editor{items: items, undo: undo, log: log}
}

// Items returns the item store for read access.
func (e *Editor) Items() *ItemStore { return e.items }

// Undoable reports whether an undo is available.
func (e *Editor) Undoable() bool { return e.undo.CanUndo() }

// HandleDrop resolves a finished pointer session against the current view
// transform and dispatches the matching operation. DropClick is returned
// untouched so the caller can open the item's detail view.
func (e *Editor) HandleDrop(ctx context.Context, drop Drop, t Transform, defaults GardenDefaults) (Drop, error) {
	switch drop.Kind {
	case DropPlace:
		coord := t.ScreenToPercent(drop.Screen)
		_, err := e.Place(ctx, drop.Template, coord, defaults)
		return drop, err
	case DropReposition:
		coord := t.ScreenToPercent(drop.Screen)
		return drop, e.Reposition(ctx, drop.ItemID, coord)
	default:
		return drop, nil
	}
}

// Place creates a new item from a palette template at a garden-space
// coordinate and records the addition.
func (e *Editor) Place(ctx context.Context, tpl Template, coord Vec2, defaults GardenDefaults) (Item, error) {
	gardenID := e.items.GardenID()
	item, err := e.items.Create(ctx, gardenID, tpl, coord, defaults)
	if err != nil {
		return Item{}, err
	}
	e.undo.Push(Action{Type: ActionAdd, Item: item})
	e.log.WithFields(logrus.Fields{"id": item.ID, "type": item.Type}).Debug("item placed")
	return item, nil
}

// Reposition moves an existing item and records the old position.
func (e *Editor) Reposition(ctx context.Context, id string, coord Vec2) error {
	it, ok := e.items.Find(id)
	if !ok {
		return fmt.Errorf("reposition %s: %w", id, errUnknownItem)
	}
	coord = ClampPlacement(coord)
	if err := e.items.Move(ctx, id, coord, it.Category); err != nil {
		return err
	}
	e.undo.Push(Action{
		Type:   ActionMove,
		Item:   it,
		OldPos: it.Position(),
		NewPos: coord,
	})
	return nil
}

// Delete soft-deletes an item and records its snapshot for restoration.
func (e *Editor) Delete(ctx context.Context, id string) error {
	it, ok := e.items.Find(id)
	if !ok {
		return fmt.Errorf("delete %s: %w", id, errUnknownItem)
	}
	removed, err := e.items.Remove(ctx, id, it.Category)
	if err != nil {
		return err
	}
	e.undo.Push(Action{Type: ActionDelete, Item: removed})
	return nil
}

// EditField writes one logical field and records its previous value. Owner
// edits route through the compound owner command so status stays derived.
func (e *Editor) EditField(ctx context.Context, id, field string, value any) error {
	if field == "owner" {
		owner, _ := value.(string)
		return e.SetOwner(ctx, id, owner)
	}
	it, ok := e.items.Find(id)
	if !ok {
		return fmt.Errorf("edit %s: %w", id, errUnknownItem)
	}
	col := FieldColumn(field, it.Category)
	old := fieldValue(it, col)
	if err := e.items.UpdateField(ctx, id, field, value, it.Category); err != nil {
		return err
	}
	e.undo.Push(Action{
		Type:     ActionEdit,
		Item:     it,
		Field:    col,
		OldValue: old,
		NewValue: value,
	})
	return nil
}

// SetOwner runs the compound owner edit and records it as a single
// reversible action.
func (e *Editor) SetOwner(ctx context.Context, id, owner string) error {
	it, ok := e.items.Find(id)
	if !ok {
		return fmt.Errorf("set owner %s: %w", id, errUnknownItem)
	}
	if isBlank(owner) {
		owner = ""
	}
	if err := e.items.SetOwner(ctx, id, owner); err != nil {
		return err
	}
	e.undo.Push(Action{
		Type:     ActionEdit,
		Item:     it,
		Field:    "owner",
		OldValue: it.Owner,
		NewValue: owner,
	})
	return nil
}

// SetAvatar sets or clears the custom avatar and records the swap.
func (e *Editor) SetAvatar(ctx context.Context, id, avatarURL string) error {
	it, ok := e.items.Find(id)
	if !ok {
		return fmt.Errorf("set avatar %s: %w", id, errUnknownItem)
	}
	if err := e.items.SetAvatar(ctx, id, avatarURL, it.Category); err != nil {
		return err
	}
	e.undo.Push(Action{
		Type:      ActionAvatar,
		Item:      it,
		OldAvatar: it.CustomAvatar,
		NewAvatar: avatarURL,
	})
	return nil
}

// SetPhoto sets or clears a tree's photo. Photos are not undoable.
func (e *Editor) SetPhoto(ctx context.Context, id, photoURL string) error {
	it, ok := e.items.Find(id)
	if !ok || !it.IsTree() {
		return fmt.Errorf("set photo %s: %w", id, errUnknownItem)
	}
	return e.items.SetPhoto(ctx, id, photoURL)
}

// Generate lays out count trees on the deterministic grid, inserts them as
// one batch, and records the whole batch as a single undoable action.
func (e *Editor) Generate(ctx context.Context, count int, treeType string, defaults GardenDefaults) ([]Item, error) {
	layout, err := GridLayout(count)
	if err != nil {
		return nil, err
	}
	if treeType == "" {
		treeType = defaultGeneratedType
	}
	gardenID := e.items.GardenID()
	status := string(DeriveStatus(defaults.Owner))

	trees := make([]store.Tree, len(layout))
	for i, pos := range layout {
		trees[i] = store.Tree{
			GardenID:    gardenID,
			Type:        treeType,
			Sort:        defaults.Sort,
			YearPlanted: defaults.YearPlanted,
			Owner:       defaults.Owner,
			Status:      status,
			XPercent:    pos.X,
			YPercent:    pos.Y,
		}
	}
	items, err := e.items.CreateTrees(ctx, gardenID, trees)
	if err != nil {
		return nil, err
	}
	e.undo.Push(Action{Type: ActionGenerate, Items: items})
	e.log.WithFields(logrus.Fields{
		"garden": gardenID,
		"count":  len(items),
		"type":   treeType,
	}).Info("trees generated")
	return items, nil
}

// Undo reverses the most recent action and force-refreshes the active garden
// so the view reflects the record store rather than an optimistic patch.
func (e *Editor) Undo(ctx context.Context) (Action, error) {
	a, err := e.undo.Undo(ctx)
	if err != nil {
		return a, err
	}
	gardenID := e.items.GardenID()
	if gardenID != "" {
		e.items.Invalidate(gardenID)
		if _, err := e.items.Load(ctx, gardenID, true); err != nil {
			return a, fmt.Errorf("refresh after undo: %w", err)
		}
	}
	return a, nil
}

// OpenGarden makes gardenID the active garden and clears the undo history;
// actions never cross garden boundaries.
func (e *Editor) OpenGarden(ctx context.Context, gardenID string) ([]Item, error) {
	e.undo.Clear()
	return e.items.Load(ctx, gardenID, false)
}

// fieldValue reads the current value of a record column from an item.
func fieldValue(it Item, column string) any {
	switch column {
	case "sort":
		return it.Sort
	case "description":
		return it.Description
	case "year_planted":
		return it.YearPlanted
	case "owner":
		return it.Owner
	case "status":
		return string(it.Status)
	case "type":
		return it.Type
	case "photo_url":
		return it.PhotoURL
	default:
		return nil
	}
}
