package verdure

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/phanxgames/verdure/store"
)

// coordsPattern recognizes a "lat, lng" location string.
var coordsPattern = regexp.MustCompile(`(-?\d+\.?\d*),\s*(-?\d+\.?\d*)`)

// LocationURL turns a garden's free-form location into an openable map URL.
// Coordinates map to a pin, URLs pass through, anything else becomes a
// search query. Empty locations return "".
func LocationURL(location string) string {
	location = strings.TrimSpace(location)
	if location == "" {
		return ""
	}
	if m := coordsPattern.FindStringSubmatch(location); m != nil {
		return fmt.Sprintf("https://www.google.com/maps?q=%s,%s", m[1], m[2])
	}
	if strings.HasPrefix(location, "http") {
		return location
	}
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(location)
}

// Gallery is the garden list with a cursor. The position one past the last
// garden is the add-new card.
type Gallery struct {
	mu sync.Mutex

	st  store.Store
	log *logrus.Logger

	gardens []store.Garden
	index   int
}

// NewGallery creates an empty gallery over the record store.
func NewGallery(st store.Store, log *logrus.Logger) *Gallery {
	if log == nil {
		log = logrus.New()
	}
	return &Gallery{st: st, log: log}
}

// Refresh reloads the active gardens from the record store.
func (g *Gallery) Refresh(ctx context.Context) error {
	gardens, err := g.st.ListGardens(ctx)
	if err != nil {
		return fmt.Errorf("list gardens: %w", err)
	}
	g.mu.Lock()
	g.gardens = gardens
	if g.index > len(gardens) {
		g.index = len(gardens)
	}
	g.mu.Unlock()
	return nil
}

// Gardens returns a snapshot of the list.
func (g *Gallery) Gardens() []store.Garden {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]store.Garden, len(g.gardens))
	copy(out, g.gardens)
	return out
}

// Len returns the number of gardens.
func (g *Gallery) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.gardens)
}

// Index returns the cursor position.
func (g *Gallery) Index() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.index
}

// SetIndex moves the cursor, clamped to [0, len]; len is the add-new card.
func (g *Gallery) SetIndex(i int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if i < 0 {
		i = 0
	}
	if i > len(g.gardens) {
		i = len(g.gardens)
	}
	g.index = i
}

// Current returns the garden under the cursor, or false on the add-new card.
func (g *Gallery) Current() (store.Garden, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.index >= len(g.gardens) {
		return store.Garden{}, false
	}
	return g.gardens[g.index], true
}

// OnAddCard reports whether the cursor sits on the add-new card.
func (g *Gallery) OnAddCard() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.index == len(g.gardens)
}

// Find returns the garden with the given id.
func (g *Gallery) Find(id string) (store.Garden, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, gd := range g.gardens {
		if gd.ID == id {
			return gd, true
		}
	}
	return store.Garden{}, false
}

// Create inserts a new garden, refreshes the list, and moves the cursor to
// the new garden.
func (g *Gallery) Create(ctx context.Context, garden store.Garden) (store.Garden, error) {
	garden.Name = strings.TrimSpace(garden.Name)
	garden.Description = strings.TrimSpace(garden.Description)
	garden.Location = strings.TrimSpace(garden.Location)
	garden.BackgroundImage = strings.TrimSpace(garden.BackgroundImage)
	if garden.Name == "" {
		return store.Garden{}, fmt.Errorf("create garden: name required")
	}
	if err := g.st.InsertGarden(ctx, &garden); err != nil {
		return store.Garden{}, fmt.Errorf("create garden: %w", err)
	}
	if err := g.Refresh(ctx); err != nil {
		return garden, err
	}
	g.mu.Lock()
	g.index = len(g.gardens) - 1
	g.mu.Unlock()
	g.log.WithField("garden", garden.ID).Info("garden created")
	return garden, nil
}

// Update rewrites a garden's descriptive fields.
func (g *Gallery) Update(ctx context.Context, id string, garden store.Garden) error {
	patch := map[string]any{
		"name":             strings.TrimSpace(garden.Name),
		"description":      strings.TrimSpace(garden.Description),
		"location":         strings.TrimSpace(garden.Location),
		"background_image": strings.TrimSpace(garden.BackgroundImage),
	}
	if err := g.st.UpdateGardenFields(ctx, id, patch); err != nil {
		return fmt.Errorf("update garden %s: %w", id, err)
	}
	return g.Refresh(ctx)
}

// Delete soft-deletes a garden and keeps the cursor in range.
func (g *Gallery) Delete(ctx context.Context, id string) error {
	if err := g.st.UpdateGardenFields(ctx, id, map[string]any{"is_active": false}); err != nil {
		return fmt.Errorf("delete garden %s: %w", id, err)
	}
	if err := g.Refresh(ctx); err != nil {
		return err
	}
	g.log.WithField("garden", id).Info("garden deleted")
	return nil
}

// UpdateDefaults rewrites the per-garden template values applied to newly
// placed trees.
func (g *Gallery) UpdateDefaults(ctx context.Context, id string, d GardenDefaults) error {
	patch := map[string]any{
		"default_sort":         d.Sort,
		"default_year_planted": d.YearPlanted,
		"default_owner":        d.Owner,
	}
	if err := g.st.UpdateGardenFields(ctx, id, patch); err != nil {
		return fmt.Errorf("update defaults %s: %w", id, err)
	}
	g.mu.Lock()
	for i := range g.gardens {
		if g.gardens[i].ID == id {
			g.gardens[i].DefaultSort = d.Sort
			g.gardens[i].DefaultYearPlanted = d.YearPlanted
			g.gardens[i].DefaultOwner = d.Owner
			break
		}
	}
	g.mu.Unlock()
	return nil
}
