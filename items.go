package verdure

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/phanxgames/verdure/store"
)

// GardenDefaults are the per-garden template values applied to newly placed
// or generated trees.
type GardenDefaults struct {
	Sort        string
	YearPlanted int
	Owner       string
}

// DefaultsFromGarden extracts the defaults of a garden record.
func DefaultsFromGarden(g store.Garden) GardenDefaults {
	return GardenDefaults{
		Sort:        g.DefaultSort,
		YearPlanted: g.DefaultYearPlanted,
		Owner:       g.DefaultOwner,
	}
}

// ItemStore is the authoritative in-memory mirror of the active garden's
// items, backed by the record store.
//
// It owns a process-wide cache keyed by garden id so navigating back to a
// garden doesn't refetch. Every successful mutation writes through to both
// the live list and the cache entry under one lock, so the two never diverge
// for the active garden.
type ItemStore struct {
	mu sync.Mutex

	st      store.Store
	palette *Palette
	log     *logrus.Logger

	gardenID string
	items    []Item

	// requested is the most recent Load target. A fetch only becomes the
	// active garden if no later Load superseded it; a failed fetch leaves
	// the active garden and its items untouched.
	requested string

	cache    map[string][]Item
	inflight map[string]bool
}

// NewItemStore creates an item store over the given record store.
func NewItemStore(st store.Store, palette *Palette, log *logrus.Logger) *ItemStore {
	if log == nil {
		log = logrus.New()
	}
	return &ItemStore{
		st:       st,
		palette:  palette,
		log:      log,
		cache:    make(map[string][]Item),
		inflight: make(map[string]bool),
	}
}

// Items returns a snapshot of the active garden's items.
func (s *ItemStore) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// GardenID returns the active garden id, empty when none is loaded.
func (s *ItemStore) GardenID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gardenID
}

// Load makes gardenID the active garden and returns its items. A cache hit
// returns immediately unless force is set. A load already in flight for the
// same garden makes this call a no-op returning the current view. A failed
// fetch leaves the previous garden active with its items intact.
func (s *ItemStore) Load(ctx context.Context, gardenID string, force bool) ([]Item, error) {
	s.mu.Lock()
	s.requested = gardenID
	if !force {
		if cached, ok := s.cache[gardenID]; ok {
			s.gardenID = gardenID
			s.items = cloneItems(cached)
			out := cloneItems(cached)
			s.mu.Unlock()
			return out, nil
		}
	}
	if s.inflight[gardenID] {
		out := cloneItems(s.items)
		s.mu.Unlock()
		return out, nil
	}
	s.inflight[gardenID] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inflight, gardenID)
		s.mu.Unlock()
	}()

	var errs *multierror.Error
	trees, err := s.st.ListTrees(ctx, gardenID)
	if err != nil {
		errs = multierror.Append(errs, fmt.Errorf("trees: %w", err))
	}
	records, err := s.st.ListItems(ctx, gardenID)
	if err != nil {
		errs = multierror.Append(errs, fmt.Errorf("items: %w", err))
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("load garden %s: %w", gardenID, err)
	}

	items := make([]Item, 0, len(trees)+len(records))
	for _, t := range trees {
		items = append(items, s.itemFromTree(t))
	}
	for _, r := range records {
		items = append(items, s.itemFromRecord(r))
	}

	s.mu.Lock()
	s.cache[gardenID] = cloneItems(items)
	if s.requested == gardenID {
		s.gardenID = gardenID
		s.items = cloneItems(items)
	}
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"garden": gardenID,
		"trees":  len(trees),
		"items":  len(records),
	}).Debug("garden loaded")
	return items, nil
}

// Invalidate drops the cache entry so the next Load refetches.
func (s *ItemStore) Invalidate(gardenID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cache, gardenID)
}

// Reset drops every cache entry and the live view. Called on logout.
func (s *ItemStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string][]Item)
	s.items = nil
	s.gardenID = ""
	s.requested = ""
}

// Find returns the item with the given id from the active garden.
func (s *ItemStore) Find(id string) (Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Create places a new item from a palette template at the given garden-space
// coordinate. Garden defaults apply to tree templates only; status derives
// from whether an owner default is present. Local state commits only after
// the record store confirms the insert.
func (s *ItemStore) Create(ctx context.Context, gardenID string, tpl Template, coord Vec2, defaults GardenDefaults) (Item, error) {
	coord = ClampPlacement(coord)

	if tpl.Category == CategoryTree {
		tree := store.Tree{
			GardenID:    gardenID,
			Type:        tpl.ID,
			Sort:        defaults.Sort,
			YearPlanted: defaults.YearPlanted,
			Owner:       defaults.Owner,
			Status:      string(DeriveStatus(defaults.Owner)),
			XPercent:    coord.X,
			YPercent:    coord.Y,
		}
		inserted, err := s.st.InsertTrees(ctx, []store.Tree{tree})
		if err != nil {
			return Item{}, fmt.Errorf("create tree: %w", err)
		}
		item := s.itemFromTree(inserted[0])
		item.Name = tpl.Name
		s.appendLocal(gardenID, item)
		return item, nil
	}

	record := store.Item{
		GardenID: gardenID,
		Type:     tpl.ID,
		XPercent: coord.X,
		YPercent: coord.Y,
	}
	if err := s.st.InsertItem(ctx, &record); err != nil {
		return Item{}, fmt.Errorf("create item: %w", err)
	}
	item := s.itemFromRecord(record)
	item.Name = tpl.Name
	s.appendLocal(gardenID, item)
	return item, nil
}

// CreateTrees inserts a batch of tree records in one call and commits them
// locally as a unit. Used by the generator so a whole layout lands or fails
// together.
func (s *ItemStore) CreateTrees(ctx context.Context, gardenID string, trees []store.Tree) ([]Item, error) {
	inserted, err := s.st.InsertTrees(ctx, trees)
	if err != nil {
		return nil, fmt.Errorf("create trees: %w", err)
	}
	items := make([]Item, len(inserted))
	for i, t := range inserted {
		items[i] = s.itemFromTree(t)
	}
	s.mu.Lock()
	if s.gardenID == gardenID {
		s.items = append(s.items, items...)
		s.cache[gardenID] = cloneItems(s.items)
	} else if cached, ok := s.cache[gardenID]; ok {
		s.cache[gardenID] = append(cloneItems(cached), items...)
	}
	s.mu.Unlock()
	return cloneItems(items), nil
}

// Move updates only the item's position.
func (s *ItemStore) Move(ctx context.Context, id string, coord Vec2, cat Category) error {
	coord = ClampPlacement(coord)
	patch := map[string]any{"x_percent": coord.X, "y_percent": coord.Y}
	if err := s.patch(ctx, id, cat, patch); err != nil {
		return fmt.Errorf("move %s: %w", id, err)
	}
	s.updateLocal(id, func(it *Item) {
		it.X = coord.X
		it.Y = coord.Y
	})
	return nil
}

// FieldColumn maps a logical field name to the record column for the given
// category. Non-tree categories store their free-text "sort" in the
// description column; everything else passes through.
func FieldColumn(field string, cat Category) string {
	if cat != CategoryTree && field == "sort" {
		return "description"
	}
	return field
}

// UpdateField writes one field. Owner updates must go through SetOwner,
// which also recomputes status.
func (s *ItemStore) UpdateField(ctx context.Context, id, field string, value any, cat Category) error {
	col := FieldColumn(field, cat)
	if err := s.patch(ctx, id, cat, map[string]any{col: value}); err != nil {
		return fmt.Errorf("update %s.%s: %w", id, col, err)
	}
	s.updateLocal(id, func(it *Item) { setItemField(it, col, value) })
	return nil
}

// SetOwner is the compound owner edit: one patch persists the owner and the
// status it implies, atomically from the caller's point of view. Blank
// owners are normalized to empty.
func (s *ItemStore) SetOwner(ctx context.Context, id, owner string) error {
	if isBlank(owner) {
		owner = ""
	}
	status := DeriveStatus(owner)
	patch := map[string]any{"owner": owner, "status": string(status)}
	if err := s.patch(ctx, id, CategoryTree, patch); err != nil {
		return fmt.Errorf("set owner %s: %w", id, err)
	}
	s.updateLocal(id, func(it *Item) {
		it.Owner = owner
		it.Status = status
	})
	return nil
}

// Remove soft-deletes the item and returns its snapshot for undo.
func (s *ItemStore) Remove(ctx context.Context, id string, cat Category) (Item, error) {
	s.mu.Lock()
	var removed Item
	found := false
	for _, it := range s.items {
		if it.ID == id {
			removed = it
			found = true
			break
		}
	}
	s.mu.Unlock()
	if !found {
		return Item{}, fmt.Errorf("remove %s: not loaded", id)
	}

	if err := s.patch(ctx, id, cat, map[string]any{"is_active": false}); err != nil {
		return Item{}, fmt.Errorf("remove %s: %w", id, err)
	}

	s.mu.Lock()
	kept := s.items[:0]
	for _, it := range s.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	s.items = kept
	if s.gardenID != "" {
		s.cache[s.gardenID] = cloneItems(s.items)
	}
	s.mu.Unlock()
	return removed, nil
}

// SetAvatar sets or clears the custom avatar. Clearing restores the template
// icon in the resolved image URL.
func (s *ItemStore) SetAvatar(ctx context.Context, id, avatarURL string, cat Category) error {
	if err := s.patch(ctx, id, cat, map[string]any{"custom_avatar": avatarURL}); err != nil {
		return fmt.Errorf("set avatar %s: %w", id, err)
	}
	s.updateLocal(id, func(it *Item) {
		it.CustomAvatar = avatarURL
		if avatarURL != "" {
			it.ImageURL = avatarURL
		} else if cat == CategoryTree {
			it.ImageURL = s.palette.TreeIcon(it.Type)
		} else {
			it.ImageURL = s.palette.ItemIcon(it.Type)
		}
	})
	return nil
}

// SetPhoto sets or clears a tree's photo. No avatar interaction.
func (s *ItemStore) SetPhoto(ctx context.Context, id, photoURL string) error {
	if err := s.st.UpdateTreeFields(ctx, id, map[string]any{"photo_url": photoURL}); err != nil {
		return fmt.Errorf("set photo %s: %w", id, err)
	}
	s.updateLocal(id, func(it *Item) { it.PhotoURL = photoURL })
	return nil
}

// --- internals ---

// patch routes a column patch to the table owning the category.
func (s *ItemStore) patch(ctx context.Context, id string, cat Category, patch map[string]any) error {
	if cat == CategoryTree {
		return s.st.UpdateTreeFields(ctx, id, patch)
	}
	return s.st.UpdateItemFields(ctx, id, patch)
}

func (s *ItemStore) appendLocal(gardenID string, item Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gardenID != gardenID {
		// Mutation against a garden that is no longer active; keep its
		// cache entry coherent anyway.
		if cached, ok := s.cache[gardenID]; ok {
			s.cache[gardenID] = append(cloneItems(cached), item)
		}
		return
	}
	s.items = append(s.items, item)
	s.cache[gardenID] = cloneItems(s.items)
}

func (s *ItemStore) updateLocal(id string, apply func(*Item)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			apply(&s.items[i])
			break
		}
	}
	if s.gardenID != "" {
		s.cache[s.gardenID] = cloneItems(s.items)
	}
}

func (s *ItemStore) itemFromTree(t store.Tree) Item {
	status := Status(t.Status)
	if status == "" {
		status = StatusAvailable
	}
	imageURL := s.palette.TreeIcon(t.Type)
	if t.CustomAvatar != "" {
		imageURL = t.CustomAvatar
	}
	name := t.Type
	if tpl, ok := s.palette.Lookup(t.Type); ok {
		name = tpl.Name
	}
	return Item{
		ID:           t.ID,
		Type:         t.Type,
		Name:         name,
		Category:     CategoryTree,
		X:            t.XPercent,
		Y:            t.YPercent,
		ImageURL:     imageURL,
		CustomAvatar: t.CustomAvatar,
		CustomType:   !s.palette.Known(t.Type),
		Sort:         t.Sort,
		YearPlanted:  t.YearPlanted,
		Owner:        t.Owner,
		Status:       status,
		PhotoURL:     t.PhotoURL,
	}
}

func (s *ItemStore) itemFromRecord(r store.Item) Item {
	cat := CategoryOther
	if tpl, ok := s.palette.Lookup(r.Type); ok && tpl.Category == CategoryBuilding {
		cat = CategoryBuilding
	}
	imageURL := s.palette.ItemIcon(r.Type)
	if r.CustomAvatar != "" {
		imageURL = r.CustomAvatar
	}
	name := r.Type
	if tpl, ok := s.palette.Lookup(r.Type); ok {
		name = tpl.Name
	}
	return Item{
		ID:           r.ID,
		Type:         r.Type,
		Name:         name,
		Category:     cat,
		X:            r.XPercent,
		Y:            r.YPercent,
		ImageURL:     imageURL,
		CustomAvatar: r.CustomAvatar,
		CustomType:   !s.palette.Known(r.Type),
		Description:  r.Description,
	}
}

func setItemField(it *Item, column string, value any) {
	switch column {
	case "sort":
		it.Sort, _ = value.(string)
	case "description":
		it.Description, _ = value.(string)
	case "year_planted":
		switch n := value.(type) {
		case int:
			it.YearPlanted = n
		case float64:
			it.YearPlanted = int(n)
		}
	case "owner":
		it.Owner, _ = value.(string)
	case "status":
		if sv, ok := value.(string); ok {
			it.Status = Status(sv)
		}
	case "type":
		it.Type, _ = value.(string)
	case "photo_url":
		it.PhotoURL, _ = value.(string)
	}
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
