// Package store is the record store behind the garden planner: gardens,
// trees, and items with soft-delete semantics, plus the user record backing
// authentication. Field-level mutations are expressed as column patches so
// callers keep generic update(patch, predicate) power without leaking SQL.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("store: record not found")

// Store is the persistence interface. All deletes in the domain are
// soft deletes: an update setting is_active to false. Listing methods return
// active records only; trees and items come back ordered by descending Y
// then ascending X so rendering stacks back-to-front.
type Store interface {
	Connect(ctx context.Context) error
	Close() error
	Migrate(ctx context.Context) error

	ListGardens(ctx context.Context) ([]Garden, error)
	GetGarden(ctx context.Context, id string) (*Garden, error)
	InsertGarden(ctx context.Context, garden *Garden) error
	UpdateGardenFields(ctx context.Context, id string, patch map[string]any) error

	ListTrees(ctx context.Context, gardenID string) ([]Tree, error)
	InsertTrees(ctx context.Context, trees []Tree) ([]Tree, error)
	UpdateTreeFields(ctx context.Context, id string, patch map[string]any) error
	// UpdateTreesFields applies one patch to every id in a single call.
	UpdateTreesFields(ctx context.Context, ids []string, patch map[string]any) error

	ListItems(ctx context.Context, gardenID string) ([]Item, error)
	InsertItem(ctx context.Context, item *Item) error
	UpdateItemFields(ctx context.Context, id string, patch map[string]any) error

	GetUserByName(ctx context.Context, username string) (*User, error)
	InsertUser(ctx context.Context, user *User) error
}
