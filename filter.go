package verdure

import (
	"sort"
	"strconv"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// blankFilterValue stands in for an empty cell in filter dropdowns, so blank
// owners and unset years are selectable like any other value.
const blankFilterValue = "-"

// FilterColumn names a filterable table column.
type FilterColumn string

const (
	FilterType   FilterColumn = "type"
	FilterSort   FilterColumn = "sort"
	FilterYear   FilterColumn = "year"
	FilterAge    FilterColumn = "age"
	FilterOwner  FilterColumn = "owner"
	FilterStatus FilterColumn = "status"
)

// FilterColumns lists every filterable column in table order.
var FilterColumns = []FilterColumn{
	FilterType, FilterSort, FilterYear, FilterAge, FilterOwner, FilterStatus,
}

// TableFilter holds the tree table's filter, sort, and selection state and
// computes which canvas items to highlight. Only trees appear in the table;
// non-tree items stay highlighted exactly as long as no filter is active.
type TableFilter struct {
	filters map[FilterColumn]map[string]bool

	sortColumn FilterColumn
	sortAsc    bool

	selection map[string]bool

	coll    *collate.Collator
	nowYear func() int
}

// NewTableFilter creates an empty filter state.
func NewTableFilter() *TableFilter {
	f := &TableFilter{
		coll:    collate.New(language.Und),
		nowYear: func() int { return time.Now().Year() },
	}
	f.Reset()
	return f
}

// ToggleValue adds or removes one value from a column's filter set.
func (f *TableFilter) ToggleValue(col FilterColumn, value string) {
	set := f.filters[col]
	if set[value] {
		delete(set, value)
	} else {
		set[value] = true
	}
}

// SelectAll replaces a column's filter set with the given values.
func (f *TableFilter) SelectAll(col FilterColumn, values []string) {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	f.filters[col] = set
}

// ClearColumn removes every value from one column's filter set.
func (f *TableFilter) ClearColumn(col FilterColumn) {
	f.filters[col] = make(map[string]bool)
}

// Reset clears all filters, the sort, and the selection.
func (f *TableFilter) Reset() {
	f.filters = make(map[FilterColumn]map[string]bool, len(FilterColumns))
	for _, col := range FilterColumns {
		f.filters[col] = make(map[string]bool)
	}
	f.sortColumn = ""
	f.sortAsc = true
	f.selection = make(map[string]bool)
}

// Active reports whether any column has a filter value selected.
func (f *TableFilter) Active() bool {
	for _, set := range f.filters {
		if len(set) > 0 {
			return true
		}
	}
	return false
}

// ColumnActive reports whether one column has a filter value selected.
func (f *TableFilter) ColumnActive(col FilterColumn) bool {
	return len(f.filters[col]) > 0
}

// SortBy sorts by col ascending, or flips the direction when col is already
// the sort column.
func (f *TableFilter) SortBy(col FilterColumn) {
	if f.sortColumn == col {
		f.sortAsc = !f.sortAsc
		return
	}
	f.sortColumn = col
	f.sortAsc = true
}

// SortState returns the current sort column ("" when unsorted) and direction.
func (f *TableFilter) SortState() (FilterColumn, bool) {
	return f.sortColumn, f.sortAsc
}

// Select adds an item id to the selection.
func (f *TableFilter) Select(id string) { f.selection[id] = true }

// Deselect removes an item id from the selection.
func (f *TableFilter) Deselect(id string) { delete(f.selection, id) }

// ToggleSelect flips an item id in or out of the selection.
func (f *TableFilter) ToggleSelect(id string) {
	if f.selection[id] {
		delete(f.selection, id)
	} else {
		f.selection[id] = true
	}
}

// ClearSelection empties the selection.
func (f *TableFilter) ClearSelection() {
	f.selection = make(map[string]bool)
}

// Selected reports whether an item id is in the selection.
func (f *TableFilter) Selected(id string) bool { return f.selection[id] }

// SelectionCount returns the number of selected items.
func (f *TableFilter) SelectionCount() int { return len(f.selection) }

// Values returns the distinct filter values a column offers, collected from
// trees only, sorted.
func (f *TableFilter) Values(items []Item, col FilterColumn) []string {
	seen := make(map[string]bool)
	for _, it := range items {
		if !it.IsTree() {
			continue
		}
		seen[f.columnValue(it, col)] = true
	}
	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	f.coll.SortStrings(values)
	return values
}

// Rows returns the table rows: trees only, every active filter applied with
// AND semantics, in the current sort order.
func (f *TableFilter) Rows(items []Item) []Item {
	rows := make([]Item, 0, len(items))
	for _, it := range items {
		if !it.IsTree() {
			continue
		}
		if f.matchesFilters(it) {
			rows = append(rows, it)
		}
	}
	if f.sortColumn != "" {
		f.sortRows(rows)
	}
	return rows
}

// ShouldHighlight reports whether a canvas item stays highlighted under the
// current filters and selection. An item must pass both: non-trees pass the
// filters only while none are active, and any selection restricts the
// highlight to selected items.
func (f *TableFilter) ShouldHighlight(it Item) bool {
	matchesFilters := !f.Active() || (it.IsTree() && f.matchesFilters(it))
	matchesSelection := len(f.selection) == 0 || f.selection[it.ID]
	return matchesFilters && matchesSelection
}

// Highlighted returns the ids of the items to highlight.
func (f *TableFilter) Highlighted(items []Item) map[string]bool {
	out := make(map[string]bool)
	for _, it := range items {
		if f.ShouldHighlight(it) {
			out[it.ID] = true
		}
	}
	return out
}

func (f *TableFilter) matchesFilters(it Item) bool {
	for _, col := range FilterColumns {
		set := f.filters[col]
		if len(set) == 0 {
			continue
		}
		if !set[f.columnValue(it, col)] {
			return false
		}
	}
	return true
}

// columnValue renders a tree's cell for filter matching. Blank cells use the
// blank sentinel; a missing status reads as available.
func (f *TableFilter) columnValue(it Item, col FilterColumn) string {
	switch col {
	case FilterType:
		return it.Type
	case FilterSort:
		if it.Sort == "" {
			return blankFilterValue
		}
		return it.Sort
	case FilterYear:
		if it.YearPlanted == 0 {
			return blankFilterValue
		}
		return strconv.Itoa(it.YearPlanted)
	case FilterAge:
		if it.YearPlanted == 0 {
			return blankFilterValue
		}
		return strconv.Itoa(f.nowYear() - it.YearPlanted)
	case FilterOwner:
		if it.Owner == "" {
			return blankFilterValue
		}
		return it.Owner
	case FilterStatus:
		if it.Status == "" {
			return string(StatusAvailable)
		}
		return string(it.Status)
	}
	return ""
}

func (f *TableFilter) sortRows(rows []Item) {
	col := f.sortColumn
	asc := f.sortAsc

	switch col {
	case FilterYear, FilterAge:
		// Numeric columns: unset years sort as zero.
		key := func(it Item) int {
			if it.YearPlanted == 0 {
				return 0
			}
			if col == FilterAge {
				return f.nowYear() - it.YearPlanted
			}
			return it.YearPlanted
		}
		sort.SliceStable(rows, func(i, j int) bool {
			if asc {
				return key(rows[i]) < key(rows[j])
			}
			return key(rows[i]) > key(rows[j])
		})
	default:
		key := func(it Item) string {
			switch col {
			case FilterType:
				return it.Type
			case FilterSort:
				return it.Sort
			case FilterOwner:
				if it.Owner == "" {
					return blankFilterValue
				}
				return it.Owner
			case FilterStatus:
				if it.Status == "" {
					return string(StatusAvailable)
				}
				return string(it.Status)
			}
			return ""
		}
		sort.SliceStable(rows, func(i, j int) bool {
			c := f.coll.CompareString(key(rows[i]), key(rows[j]))
			if asc {
				return c < 0
			}
			return c > 0
		})
	}
}
