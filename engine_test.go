package verdure

import (
	"context"
	"testing"

	"github.com/phanxgames/verdure/store"
)

func newTestEditor(t *testing.T) (*store.MemoryStore, *Editor, string) {
	t.Helper()
	st, items, gid := newTestGarden(t)
	return st, NewEditor(items, NewUndoStack(st, DefaultUndoDepth), testLogger()), gid
}

func TestPlaceRecordsAdd(t *testing.T) {
	_, e, _ := newTestEditor(t)
	tpl, _ := NewPalette(nil).Lookup("olive")

	it, err := e.Place(context.Background(), tpl, Vec2{X: 40, Y: 60}, GardenDefaults{})
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	actions := e.undo.Actions()
	if len(actions) != 1 || actions[0].Type != ActionAdd || actions[0].Item.ID != it.ID {
		t.Errorf("unexpected undo record: %+v", actions)
	}
}

func TestPlaceThenUndoRemovesItem(t *testing.T) {
	_, e, _ := newTestEditor(t)
	tpl, _ := NewPalette(nil).Lookup("olive")

	if _, err := e.Place(context.Background(), tpl, Vec2{X: 40, Y: 60}, GardenDefaults{}); err != nil {
		t.Fatalf("place: %v", err)
	}
	if _, err := e.Undo(context.Background()); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if n := len(e.Items().Items()); n != 0 {
		t.Errorf("items = %d, want 0: undo must be reflected in the live view", n)
	}
}

func TestHandleDropPlacesAtTransformedCoord(t *testing.T) {
	_, e, _ := newTestEditor(t)
	tpl, _ := NewPalette(nil).Lookup("fig")

	tr := Transform{Zoom: 1, Rect: Rect{Width: 800, Height: 600}}
	drop := Drop{Kind: DropPlace, Template: tpl, Screen: Vec2{X: 400, Y: 300}}
	if _, err := e.HandleDrop(context.Background(), drop, tr, GardenDefaults{}); err != nil {
		t.Fatalf("drop: %v", err)
	}

	items := e.Items().Items()
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if items[0].X != 50 || items[0].Y != 50 {
		t.Errorf("position = (%v,%v), want (50,50)", items[0].X, items[0].Y)
	}
}

func TestHandleDropRepositionZoomed(t *testing.T) {
	_, e, _ := newTestEditor(t)
	tpl, _ := NewPalette(nil).Lookup("olive")
	it, err := e.Place(context.Background(), tpl, Vec2{X: 50, Y: 50}, GardenDefaults{})
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	// At zoom 2 the release point maps through the inverse transform.
	tr := Transform{Zoom: 2, Rect: Rect{Width: 800, Height: 600}}
	drop := Drop{Kind: DropReposition, ItemID: it.ID, Screen: tr.PercentToScreen(Vec2{X: 25, Y: 75})}
	if _, err := e.HandleDrop(context.Background(), drop, tr, GardenDefaults{}); err != nil {
		t.Fatalf("drop: %v", err)
	}

	got, _ := e.Items().Find(it.ID)
	assertNear(t, "x", got.X, 25)
	assertNear(t, "y", got.Y, 75)
}

func TestHandleDropClickPassesThrough(t *testing.T) {
	_, e, _ := newTestEditor(t)
	drop := Drop{Kind: DropClick, ItemID: "abc"}
	out, err := e.HandleDrop(context.Background(), drop, Transform{}, GardenDefaults{})
	if err != nil {
		t.Fatalf("drop: %v", err)
	}
	if out.Kind != DropClick || out.ItemID != "abc" {
		t.Errorf("click drop altered: %+v", out)
	}
	if e.Undoable() {
		t.Error("click must not record an undo entry")
	}
}

func TestEditFieldRecordsOldValue(t *testing.T) {
	_, e, _ := newTestEditor(t)
	tpl, _ := NewPalette(nil).Lookup("olive")
	it, _ := e.Place(context.Background(), tpl, Vec2{X: 50, Y: 50},
		GardenDefaults{Sort: "Leccino"})

	if err := e.EditField(context.Background(), it.ID, "sort", "Frantoio"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	actions := e.undo.Actions()
	if actions[0].Type != ActionEdit || actions[0].Field != "sort" {
		t.Fatalf("unexpected record: %+v", actions[0])
	}
	if actions[0].OldValue != "Leccino" || actions[0].NewValue != "Frantoio" {
		t.Errorf("old/new = %v/%v", actions[0].OldValue, actions[0].NewValue)
	}
}

func TestEditFieldOwnerRoutesToCompound(t *testing.T) {
	_, e, _ := newTestEditor(t)
	tpl, _ := NewPalette(nil).Lookup("olive")
	it, _ := e.Place(context.Background(), tpl, Vec2{X: 50, Y: 50}, GardenDefaults{})

	if err := e.EditField(context.Background(), it.ID, "owner", "Grace"); err != nil {
		t.Fatalf("edit owner: %v", err)
	}
	got, _ := e.Items().Find(it.ID)
	if got.Status != StatusUnavailable {
		t.Errorf("Status = %v, want Unavailable via compound owner edit", got.Status)
	}

	if _, err := e.Undo(context.Background()); err != nil {
		t.Fatalf("undo: %v", err)
	}
	got, _ = e.Items().Find(it.ID)
	if got.Owner != "" || got.Status != StatusAvailable {
		t.Errorf("owner/status = %q/%v after undo, want empty/Available", got.Owner, got.Status)
	}
}

func TestDeleteThenUndoRestores(t *testing.T) {
	_, e, _ := newTestEditor(t)
	tpl, _ := NewPalette(nil).Lookup("trullo")
	it, _ := e.Place(context.Background(), tpl, Vec2{X: 30, Y: 30}, GardenDefaults{})

	if err := e.Delete(context.Background(), it.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(e.Items().Items()) != 0 {
		t.Fatal("item still present after delete")
	}

	if _, err := e.Undo(context.Background()); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if len(e.Items().Items()) != 1 {
		t.Error("item not restored after undoing delete")
	}
}

func TestGenerateBatchIsOneAction(t *testing.T) {
	_, e, _ := newTestEditor(t)

	generated, err := e.Generate(context.Background(), 12, "", GardenDefaults{Owner: "Ada"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(generated) != 12 {
		t.Fatalf("generated = %d, want 12", len(generated))
	}
	for _, it := range generated {
		if it.Type != "olive" {
			t.Errorf("type = %q, want olive default", it.Type)
		}
		if it.Status != StatusUnavailable {
			t.Errorf("status = %v, want Unavailable from owner default", it.Status)
		}
	}
	if e.undo.Len() != 1 {
		t.Fatalf("undo entries = %d, want 1 for the whole batch", e.undo.Len())
	}

	if _, err := e.Undo(context.Background()); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if n := len(e.Items().Items()); n != 0 {
		t.Errorf("items = %d, want 0 after undoing generate", n)
	}
}

func TestGenerateRejectsBadCount(t *testing.T) {
	_, e, _ := newTestEditor(t)
	if _, err := e.Generate(context.Background(), 0, "", GardenDefaults{}); err == nil {
		t.Error("count 0 accepted")
	}
	if _, err := e.Generate(context.Background(), 1001, "", GardenDefaults{}); err == nil {
		t.Error("count 1001 accepted")
	}
	if e.undo.Len() != 0 {
		t.Error("rejected generate recorded an undo entry")
	}
}

func TestOpenGardenClearsHistory(t *testing.T) {
	st, e, _ := newTestEditor(t)
	tpl, _ := NewPalette(nil).Lookup("olive")
	if _, err := e.Place(context.Background(), tpl, Vec2{X: 50, Y: 50}, GardenDefaults{}); err != nil {
		t.Fatalf("place: %v", err)
	}

	other := store.Garden{Name: "Other"}
	if err := st.InsertGarden(context.Background(), &other); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := e.OpenGarden(context.Background(), other.ID); err != nil {
		t.Fatalf("open: %v", err)
	}
	if e.Undoable() {
		t.Error("undo history crossed a garden boundary")
	}
}
