// Package verdure is a visual garden planner built on [Ebitengine].
//
// Verdure models a garden as a 4:3 canvas that items occupy at percent
// positions, so a layout renders identically at any window size. The package
// provides the coordinate transforms, the zoom/pan viewport, the drag
// session state machine, the item store with its per-garden cache, a bounded
// undo stack, the tree table's filter engine, and a deterministic grid
// generator.
//
// # Coordinate spaces
//
// Two spaces cover everything:
//
//   - canvas space: pixels relative to the canvas rectangle's top-left
//   - garden space: percent of the canvas in [0, 100] on both axes
//
// [Transform] converts between them for a given zoom and pan.
// [Viewport] owns the zoom and pan and produces the current Transform.
//
// # Interaction
//
// Pointer input is normalized by [Input] and fed to a [Session], which turns
// presses, moves, and releases into drops: place a new item, reposition an
// existing one, or click it. [Editor] maps drops onto the [ItemStore] and
// records each mutation's inverse on an [UndoStack].
//
// # Persistence
//
// Records live in a SQLite database behind the store.Store interface.
// Deletion is always soft: rows flip is_active and listings filter on it,
// which is what makes every operation on the undo stack reversible.
//
// [Ebitengine]: https://ebitengine.org
package verdure
