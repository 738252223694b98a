package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store used by tests and offline sessions.
// It mirrors the SQLite implementation's semantics: soft deletes, active-only
// listings, and the y-desc/x-asc ordering.
type MemoryStore struct {
	mu      sync.Mutex
	gardens []Garden
	trees   []Tree
	items   []Item
	users   []User

	// FailNext makes the next mutating call return an error, for exercising
	// persistence-failure paths. FailNextList does the same for the next
	// listing call.
	FailNext     error
	FailNextList error
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Connect(ctx context.Context) error { return nil }
func (m *MemoryStore) Close() error                      { return nil }
func (m *MemoryStore) Migrate(ctx context.Context) error { return nil }

func (m *MemoryStore) takeFailure() error {
	err := m.FailNext
	m.FailNext = nil
	return err
}

func (m *MemoryStore) takeListFailure() error {
	err := m.FailNextList
	m.FailNextList = nil
	return err
}

// Garden operations

func (m *MemoryStore) ListGardens(ctx context.Context) ([]Garden, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeListFailure(); err != nil {
		return nil, err
	}
	var out []Garden
	for _, g := range m.gardens {
		if g.IsActive {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryStore) GetGarden(ctx context.Context, id string) (*Garden, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.gardens {
		if g.ID == id {
			copy := g
			return &copy, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) InsertGarden(ctx context.Context, garden *Garden) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return err
	}
	if garden.ID == "" {
		garden.ID = uuid.NewString()
	}
	garden.IsActive = true
	garden.CreatedAt = time.Now().UTC()
	garden.UpdatedAt = garden.CreatedAt
	m.gardens = append(m.gardens, *garden)
	return nil
}

func (m *MemoryStore) UpdateGardenFields(ctx context.Context, id string, patch map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return err
	}
	for i := range m.gardens {
		if m.gardens[i].ID == id {
			applyGardenPatch(&m.gardens[i], patch)
			m.gardens[i].UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrNotFound
}

// Tree operations

func (m *MemoryStore) ListTrees(ctx context.Context, gardenID string) ([]Tree, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeListFailure(); err != nil {
		return nil, err
	}
	var out []Tree
	for _, t := range m.trees {
		if t.GardenID == gardenID && t.IsActive {
			out = append(out, t)
		}
	}
	sortByPosition(out, func(t Tree) (float64, float64) { return t.YPercent, t.XPercent })
	return out, nil
}

func (m *MemoryStore) InsertTrees(ctx context.Context, trees []Tree) ([]Tree, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	for i := range trees {
		if trees[i].ID == "" {
			trees[i].ID = uuid.NewString()
		}
		trees[i].IsActive = true
		trees[i].CreatedAt = now
		trees[i].UpdatedAt = now
	}
	m.trees = append(m.trees, trees...)
	return trees, nil
}

func (m *MemoryStore) UpdateTreeFields(ctx context.Context, id string, patch map[string]any) error {
	return m.UpdateTreesFields(ctx, []string{id}, patch)
}

func (m *MemoryStore) UpdateTreesFields(ctx context.Context, ids []string, patch map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return err
	}
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	found := 0
	for i := range m.trees {
		if wanted[m.trees[i].ID] {
			applyTreePatch(&m.trees[i], patch)
			m.trees[i].UpdatedAt = time.Now().UTC()
			found++
		}
	}
	if found == 0 && len(ids) > 0 {
		return ErrNotFound
	}
	return nil
}

// Item operations

func (m *MemoryStore) ListItems(ctx context.Context, gardenID string) ([]Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeListFailure(); err != nil {
		return nil, err
	}
	var out []Item
	for _, it := range m.items {
		if it.GardenID == gardenID && it.IsActive {
			out = append(out, it)
		}
	}
	sortByPosition(out, func(it Item) (float64, float64) { return it.YPercent, it.XPercent })
	return out, nil
}

func (m *MemoryStore) InsertItem(ctx context.Context, item *Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return err
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.IsActive = true
	item.CreatedAt = time.Now().UTC()
	item.UpdatedAt = item.CreatedAt
	m.items = append(m.items, *item)
	return nil
}

func (m *MemoryStore) UpdateItemFields(ctx context.Context, id string, patch map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return err
	}
	for i := range m.items {
		if m.items[i].ID == id {
			applyItemPatch(&m.items[i], patch)
			m.items[i].UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrNotFound
}

// User operations

func (m *MemoryStore) GetUserByName(ctx context.Context, username string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username && u.IsActive {
			copy := u
			return &copy, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) InsertUser(ctx context.Context, user *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return err
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.IsActive = true
	m.users = append(m.users, *user)
	return nil
}

// --- Patch application ---

func sortByPosition[T any](s []T, key func(T) (float64, float64)) {
	sort.SliceStable(s, func(i, j int) bool {
		yi, xi := key(s[i])
		yj, xj := key(s[j])
		if yi != yj {
			return yi > yj
		}
		return xi < xj
	})
}

func applyGardenPatch(g *Garden, patch map[string]any) {
	for col, val := range patch {
		switch col {
		case "name":
			g.Name = asString(val)
		case "description":
			g.Description = asString(val)
		case "location":
			g.Location = asString(val)
		case "background_image":
			g.BackgroundImage = asString(val)
		case "default_sort":
			g.DefaultSort = asString(val)
		case "default_year_planted":
			g.DefaultYearPlanted = asInt(val)
		case "default_owner":
			g.DefaultOwner = asString(val)
		case "is_active":
			g.IsActive = asBool(val)
		}
	}
}

func applyTreePatch(t *Tree, patch map[string]any) {
	for col, val := range patch {
		switch col {
		case "type":
			t.Type = asString(val)
		case "sort":
			t.Sort = asString(val)
		case "year_planted":
			t.YearPlanted = asInt(val)
		case "owner":
			t.Owner = asString(val)
		case "status":
			t.Status = asString(val)
		case "photo_url":
			t.PhotoURL = asString(val)
		case "custom_avatar":
			t.CustomAvatar = asString(val)
		case "x_percent":
			t.XPercent = asFloat(val)
		case "y_percent":
			t.YPercent = asFloat(val)
		case "is_active":
			t.IsActive = asBool(val)
		}
	}
}

func applyItemPatch(it *Item, patch map[string]any) {
	for col, val := range patch {
		switch col {
		case "type":
			it.Type = asString(val)
		case "description":
			it.Description = asString(val)
		case "custom_avatar":
			it.CustomAvatar = asString(val)
		case "x_percent":
			it.XPercent = asFloat(val)
		case "y_percent":
			it.YPercent = asFloat(val)
		case "is_active":
			it.IsActive = asBool(val)
		}
	}
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}
