package verdure

import (
	"errors"
	"math"
)

// Generate limits and layout constants.
const (
	MinGenerateCount = 1
	MaxGenerateCount = 1000

	gridMarginX = 3.0 // percent from each edge
	gridMarginY = 3.0
	gridRatio   = 4.0 / 3.0
)

// ErrCountOutOfRange rejects generate counts outside [1, 1000] before any
// persistence call.
var ErrCountOutOfRange = errors.New("count must be between 1 and 1000")

// GridDimensions returns the column/row counts for a generated batch,
// preserving a 4:3 aspect.
func GridDimensions(count int) (cols, rows int) {
	cols = int(math.Ceil(math.Sqrt(float64(count) * gridRatio)))
	rows = int(math.Ceil(float64(count) / float64(cols)))
	return cols, rows
}

// GridLayout assigns deterministic positions to count items: row-major fill
// from the bottom-left, rows growing upward, 3% margins per edge.
func GridLayout(count int) ([]Vec2, error) {
	if count < MinGenerateCount || count > MaxGenerateCount {
		return nil, ErrCountOutOfRange
	}

	cols, rows := GridDimensions(count)

	availableWidth := 100 - 2*gridMarginX
	availableHeight := 100 - 2*gridMarginY
	spacingX := availableWidth / float64(max(cols-1, 1))
	spacingY := availableHeight / float64(max(rows-1, 1))

	positions := make([]Vec2, count)
	for i := 0; i < count; i++ {
		col := i % cols
		row := i / cols
		positions[i] = Vec2{
			X: gridMarginX + float64(col)*spacingX,
			Y: 100 - gridMarginY - float64(row)*spacingY,
		}
	}
	return positions, nil
}
