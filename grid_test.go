package verdure

import (
	"errors"
	"testing"
)

func TestGridDimensions(t *testing.T) {
	cases := []struct {
		count, cols, rows int
	}{
		{1, 2, 1},
		{2, 2, 1},
		{4, 3, 2},
		{12, 4, 3},
		{100, 12, 9},
	}
	for _, c := range cases {
		cols, rows := GridDimensions(c.count)
		if cols != c.cols || rows != c.rows {
			t.Errorf("GridDimensions(%d) = (%d,%d), want (%d,%d)",
				c.count, cols, rows, c.cols, c.rows)
		}
	}
}

func TestGridLayoutTwelve(t *testing.T) {
	positions, err := GridLayout(12)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if len(positions) != 12 {
		t.Fatalf("len = %d, want 12", len(positions))
	}

	// First item at the bottom-left margin.
	assertVec(t, "first", positions[0], Vec2{X: 3, Y: 97})

	// Fourth item ends the bottom row at the right margin.
	assertVec(t, "row end", positions[3], Vec2{X: 97, Y: 97})

	// Rows grow upward: the last item sits on the top row's right edge.
	assertVec(t, "last", positions[11], Vec2{X: 97, Y: 3})
}

func TestGridLayoutDeterministic(t *testing.T) {
	a, _ := GridLayout(30)
	b, _ := GridLayout(30)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("position %d differs between runs", i)
		}
	}
}

func TestGridLayoutNoDuplicates(t *testing.T) {
	positions, err := GridLayout(50)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	seen := make(map[Vec2]bool, len(positions))
	for i, p := range positions {
		if seen[p] {
			t.Errorf("duplicate position %v at index %d", p, i)
		}
		seen[p] = true
		if p.X < 3 || p.X > 97 || p.Y < 3 || p.Y > 97 {
			t.Errorf("position %v outside margins", p)
		}
	}
}

func TestGridLayoutSingle(t *testing.T) {
	positions, err := GridLayout(1)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	assertVec(t, "single", positions[0], Vec2{X: 3, Y: 97})
}

func TestGridLayoutCountBounds(t *testing.T) {
	for _, count := range []int{0, -1, 1001} {
		if _, err := GridLayout(count); !errors.Is(err, ErrCountOutOfRange) {
			t.Errorf("GridLayout(%d) err = %v, want ErrCountOutOfRange", count, err)
		}
	}
	if _, err := GridLayout(1000); err != nil {
		t.Errorf("GridLayout(1000) err = %v, want nil", err)
	}
}
