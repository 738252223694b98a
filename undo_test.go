package verdure

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/phanxgames/verdure/store"
)

func TestUndoStackBounded(t *testing.T) {
	st := store.NewMemoryStore()
	u := NewUndoStack(st, DefaultUndoDepth)

	for i := 0; i < 15; i++ {
		u.Push(Action{Type: ActionMove, Item: Item{ID: fmt.Sprintf("item-%d", i)}})
	}

	if u.Len() != 10 {
		t.Fatalf("Len = %d, want 10", u.Len())
	}
	actions := u.Actions()
	if actions[0].Item.ID != "item-14" {
		t.Errorf("newest = %q, want item-14", actions[0].Item.ID)
	}
	if actions[9].Item.ID != "item-5" {
		t.Errorf("oldest = %q, want item-5 (item-0..4 evicted)", actions[9].Item.ID)
	}
}

func TestUndoEmptyStack(t *testing.T) {
	u := NewUndoStack(store.NewMemoryStore(), 0)
	if u.CanUndo() {
		t.Error("CanUndo on empty stack")
	}
	if _, err := u.Undo(context.Background()); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("err = %v, want ErrNothingToUndo", err)
	}
}

func TestUndoAddSoftDeletes(t *testing.T) {
	st, items, gid := newTestGarden(t)
	u := NewUndoStack(st, 0)

	it := mustCreate(t, items, gid, "olive", Vec2{X: 50, Y: 50}, GardenDefaults{})
	u.Push(Action{Type: ActionAdd, Item: it})

	if _, err := u.Undo(context.Background()); err != nil {
		t.Fatalf("undo: %v", err)
	}
	trees, _ := st.ListTrees(context.Background(), gid)
	if len(trees) != 0 {
		t.Errorf("trees = %d, want 0 after undoing add", len(trees))
	}
}

func TestUndoDeleteReactivates(t *testing.T) {
	st, items, gid := newTestGarden(t)
	u := NewUndoStack(st, 0)

	it := mustCreate(t, items, gid, "olive", Vec2{X: 50, Y: 50}, GardenDefaults{})
	removed, err := items.Remove(context.Background(), it.ID, it.Category)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	u.Push(Action{Type: ActionDelete, Item: removed})

	if _, err := u.Undo(context.Background()); err != nil {
		t.Fatalf("undo: %v", err)
	}
	trees, _ := st.ListTrees(context.Background(), gid)
	if len(trees) != 1 {
		t.Errorf("trees = %d, want 1 after undoing delete", len(trees))
	}
}

func TestUndoMoveRestoresPosition(t *testing.T) {
	st, items, gid := newTestGarden(t)
	u := NewUndoStack(st, 0)

	it := mustCreate(t, items, gid, "olive", Vec2{X: 40, Y: 60}, GardenDefaults{})
	if err := items.Move(context.Background(), it.ID, Vec2{X: 80, Y: 20}, it.Category); err != nil {
		t.Fatalf("move: %v", err)
	}
	u.Push(Action{Type: ActionMove, Item: it, OldPos: Vec2{X: 40, Y: 60}, NewPos: Vec2{X: 80, Y: 20}})

	if _, err := u.Undo(context.Background()); err != nil {
		t.Fatalf("undo: %v", err)
	}
	trees, _ := st.ListTrees(context.Background(), gid)
	if trees[0].XPercent != 40 || trees[0].YPercent != 60 {
		t.Errorf("position = (%v,%v), want (40,60)", trees[0].XPercent, trees[0].YPercent)
	}
}

func TestUndoOwnerEditRederivesStatus(t *testing.T) {
	st, items, gid := newTestGarden(t)
	u := NewUndoStack(st, 0)

	it := mustCreate(t, items, gid, "olive", Vec2{X: 50, Y: 50}, GardenDefaults{})
	if err := items.SetOwner(context.Background(), it.ID, "Grace"); err != nil {
		t.Fatalf("set owner: %v", err)
	}
	u.Push(Action{Type: ActionEdit, Item: it, Field: "owner", OldValue: "", NewValue: "Grace"})

	if _, err := u.Undo(context.Background()); err != nil {
		t.Fatalf("undo: %v", err)
	}
	trees, _ := st.ListTrees(context.Background(), gid)
	if trees[0].Owner != "" {
		t.Errorf("Owner = %q, want empty", trees[0].Owner)
	}
	if trees[0].Status != string(StatusAvailable) {
		t.Errorf("Status = %q, want Available re-derived from blank owner", trees[0].Status)
	}
}

func TestUndoAvatarRestoresOld(t *testing.T) {
	st, items, gid := newTestGarden(t)
	u := NewUndoStack(st, 0)

	it := mustCreate(t, items, gid, "olive", Vec2{X: 50, Y: 50}, GardenDefaults{})
	if err := items.SetAvatar(context.Background(), it.ID, "https://img/new.png", it.Category); err != nil {
		t.Fatalf("set avatar: %v", err)
	}
	u.Push(Action{Type: ActionAvatar, Item: it, OldAvatar: "", NewAvatar: "https://img/new.png"})

	if _, err := u.Undo(context.Background()); err != nil {
		t.Fatalf("undo: %v", err)
	}
	trees, _ := st.ListTrees(context.Background(), gid)
	if trees[0].CustomAvatar != "" {
		t.Errorf("CustomAvatar = %q, want cleared", trees[0].CustomAvatar)
	}
}

func TestUndoGenerateRemovesWholeBatch(t *testing.T) {
	st, items, gid := newTestGarden(t)
	u := NewUndoStack(st, 0)

	inserted, err := items.CreateTrees(context.Background(), gid, []store.Tree{
		{GardenID: gid, Type: "olive", XPercent: 3, YPercent: 97},
		{GardenID: gid, Type: "olive", XPercent: 50, YPercent: 97},
		{GardenID: gid, Type: "olive", XPercent: 97, YPercent: 97},
	})
	if err != nil {
		t.Fatalf("create batch: %v", err)
	}
	u.Push(Action{Type: ActionGenerate, Items: inserted})

	if _, err := u.Undo(context.Background()); err != nil {
		t.Fatalf("undo: %v", err)
	}
	trees, _ := st.ListTrees(context.Background(), gid)
	if len(trees) != 0 {
		t.Errorf("trees = %d, want 0 after undoing generate", len(trees))
	}
}

func TestUndoFailureDiscardsEntry(t *testing.T) {
	st, items, gid := newTestGarden(t)
	u := NewUndoStack(st, 0)

	it := mustCreate(t, items, gid, "olive", Vec2{X: 50, Y: 50}, GardenDefaults{})
	u.Push(Action{Type: ActionAdd, Item: it})

	st.FailNext = errors.New("db down")
	if _, err := u.Undo(context.Background()); err == nil {
		t.Fatal("expected undo error")
	}
	// The failed entry stays popped; a retry has nothing to undo.
	if u.CanUndo() {
		t.Error("entry should not be restored after a failed inverse")
	}
}

func TestClearDropsHistory(t *testing.T) {
	u := NewUndoStack(store.NewMemoryStore(), 0)
	u.Push(Action{Type: ActionMove})
	u.Push(Action{Type: ActionEdit})
	u.Clear()
	if u.Len() != 0 {
		t.Errorf("Len = %d after Clear", u.Len())
	}
}
