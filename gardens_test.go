package verdure

import (
	"context"
	"testing"

	"github.com/phanxgames/verdure/store"
)

func TestLocationURL(t *testing.T) {
	cases := []struct {
		name     string
		location string
		want     string
	}{
		{"empty", "", ""},
		{"whitespace", "   ", ""},
		{"coordinates", "40.7831, 17.2401", "https://www.google.com/maps?q=40.7831,17.2401"},
		{"negative coordinates", "-33.86, 151.21", "https://www.google.com/maps?q=-33.86,151.21"},
		{"integer coordinates", "41, 17", "https://www.google.com/maps?q=41,17"},
		{"url passthrough", "https://maps.app.goo.gl/abc123", "https://maps.app.goo.gl/abc123"},
		{"plain address", "Via Roma 1, Ostuni", "https://www.google.com/maps/search/?api=1&query=Via+Roma+1%2C+Ostuni"},
		{"place name", "Ostuni", "https://www.google.com/maps/search/?api=1&query=Ostuni"},
	}
	for _, tc := range cases {
		if got := LocationURL(tc.location); got != tc.want {
			t.Errorf("%s: LocationURL(%q) = %q, want %q", tc.name, tc.location, got, tc.want)
		}
	}
}

func newTestGallery(t *testing.T) (*store.MemoryStore, *Gallery) {
	t.Helper()
	st := store.NewMemoryStore()
	g := NewGallery(st, testLogger())
	if err := g.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	return st, g
}

func TestGalleryStartsOnAddCard(t *testing.T) {
	_, g := newTestGallery(t)

	if g.Len() != 0 {
		t.Fatalf("Len = %d, want 0", g.Len())
	}
	if !g.OnAddCard() {
		t.Error("empty gallery cursor not on add card")
	}
	if _, ok := g.Current(); ok {
		t.Error("Current returned a garden on the add card")
	}
}

func TestGalleryCreateMovesCursorToNewGarden(t *testing.T) {
	_, g := newTestGallery(t)
	ctx := context.Background()

	first, err := g.Create(ctx, store.Garden{Name: "  Uliveto  "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.Name != "Uliveto" {
		t.Errorf("name = %q, want trimmed", first.Name)
	}
	if first.ID == "" {
		t.Error("create left ID empty")
	}

	second, err := g.Create(ctx, store.Garden{Name: "Frutteto"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if g.Len() != 2 {
		t.Fatalf("Len = %d, want 2", g.Len())
	}
	cur, ok := g.Current()
	if !ok || cur.ID != second.ID {
		t.Errorf("cursor on %v, want the newly created garden", cur.ID)
	}
}

func TestGalleryCreateRequiresName(t *testing.T) {
	_, g := newTestGallery(t)
	if _, err := g.Create(context.Background(), store.Garden{Name: "   "}); err == nil {
		t.Fatal("blank name accepted")
	}
}

func TestGallerySetIndexClampsToAddCard(t *testing.T) {
	_, g := newTestGallery(t)
	ctx := context.Background()
	if _, err := g.Create(ctx, store.Garden{Name: "Uliveto"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	g.SetIndex(-3)
	if g.Index() != 0 {
		t.Errorf("Index = %d, want 0", g.Index())
	}
	g.SetIndex(99)
	if g.Index() != 1 {
		t.Errorf("Index = %d, want add card at 1", g.Index())
	}
	if !g.OnAddCard() {
		t.Error("clamped cursor not on add card")
	}
}

func TestGalleryDeleteKeepsCursorInRange(t *testing.T) {
	_, g := newTestGallery(t)
	ctx := context.Background()

	a, _ := g.Create(ctx, store.Garden{Name: "A"})
	b, _ := g.Create(ctx, store.Garden{Name: "B"})
	g.SetIndex(1)

	if err := g.Delete(ctx, b.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if g.Len() != 1 {
		t.Fatalf("Len = %d after delete, want 1", g.Len())
	}
	if g.Index() > g.Len() {
		t.Errorf("Index = %d out of range", g.Index())
	}
	if _, ok := g.Find(b.ID); ok {
		t.Error("deleted garden still listed")
	}
	if _, ok := g.Find(a.ID); !ok {
		t.Error("surviving garden missing")
	}
}

func TestGalleryUpdateRewritesFields(t *testing.T) {
	st, g := newTestGallery(t)
	ctx := context.Background()

	gd, _ := g.Create(ctx, store.Garden{Name: "Uliveto"})
	err := g.Update(ctx, gd.ID, store.Garden{
		Name:     " Uliveto Vecchio ",
		Location: "40.78, 17.24",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := st.GetGarden(ctx, gd.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Uliveto Vecchio" {
		t.Errorf("name = %q", got.Name)
	}
	if got.Location != "40.78, 17.24" {
		t.Errorf("location = %q", got.Location)
	}
}

func TestGalleryUpdateDefaults(t *testing.T) {
	st, g := newTestGallery(t)
	ctx := context.Background()

	gd, _ := g.Create(ctx, store.Garden{Name: "Uliveto"})
	d := GardenDefaults{Sort: "Leccino", YearPlanted: 2020, Owner: "Anna"}
	if err := g.UpdateDefaults(ctx, gd.ID, d); err != nil {
		t.Fatalf("update defaults: %v", err)
	}

	// Local copy updated without a refresh.
	local, ok := g.Find(gd.ID)
	if !ok {
		t.Fatal("garden missing from gallery")
	}
	if local.DefaultSort != "Leccino" || local.DefaultYearPlanted != 2020 || local.DefaultOwner != "Anna" {
		t.Errorf("local defaults = %q/%d/%q", local.DefaultSort, local.DefaultYearPlanted, local.DefaultOwner)
	}

	got, err := st.GetGarden(ctx, gd.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.DefaultSort != "Leccino" || got.DefaultYearPlanted != 2020 || got.DefaultOwner != "Anna" {
		t.Errorf("stored defaults = %q/%d/%q", got.DefaultSort, got.DefaultYearPlanted, got.DefaultOwner)
	}
}

func TestGalleryOrderedByCreation(t *testing.T) {
	_, g := newTestGallery(t)
	ctx := context.Background()

	g.Create(ctx, store.Garden{Name: "First"})
	g.Create(ctx, store.Garden{Name: "Second"})
	g.Create(ctx, store.Garden{Name: "Third"})

	names := make([]string, 0, 3)
	for _, gd := range g.Gardens() {
		names = append(names, gd.Name)
	}
	assertIDs(t, "names", names, []string{"First", "Second", "Third"})
}
