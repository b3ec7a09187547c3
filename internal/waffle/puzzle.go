// internal/waffle/puzzle.go
//
// Puzzle state for a single Waffle: the player's current grid and the
// fixed solution it is compared against.
//
// Notes:
//   - The solution is copied on construction and never mutated.
//   - Swap is total: out-of-range coordinates return false and leave the
//     grid untouched. Swapping blank cells is allowed; hint computation
//     keys blanks off the solution.

package waffle

import (
	"errors"
	"fmt"
)

var (
	// ErrShape is returned when a grid does not match the topology's size.
	ErrShape = errors.New("grid does not match puzzle size")
	// ErrBlanks is returned when a grid's blank cells differ from the topology's.
	ErrBlanks = errors.New("blank cells do not match puzzle layout")
)

// Puzzle holds the mutable current grid and the immutable solution.
type Puzzle struct {
	topo     Topology
	current  Grid
	solution Grid
}

// NewPuzzle builds a standard 5x5 puzzle from a scrambled grid and its solution.
func NewPuzzle(current, solution Grid) (*Puzzle, error) {
	return Standard.NewPuzzle(current, solution)
}

// NewPuzzle builds a puzzle over t. Both grids must have t's shape and
// blanks exactly at t's blank cells.
func (t Topology) NewPuzzle(current, solution Grid) (*Puzzle, error) {
	if err := t.check(current); err != nil {
		return nil, fmt.Errorf("current: %w", err)
	}
	if err := t.check(solution); err != nil {
		return nil, fmt.Errorf("solution: %w", err)
	}
	return &Puzzle{topo: t, current: current.Clone(), solution: solution.Clone()}, nil
}

// check validates the shape and blank layout of g against t.
func (t Topology) check(g Grid) error {
	if len(g) != t.Rows {
		return ErrShape
	}
	for r := range g {
		if len(g[r]) != t.Cols {
			return ErrShape
		}
		for c := range g[r] {
			if (g[r][c] == Blank) != t.IsBlank(Coord{Row: r, Col: c}) {
				return fmt.Errorf("%w at (%d,%d)", ErrBlanks, r, c)
			}
		}
	}
	return nil
}

// Topology returns the layout the puzzle was built with.
func (p *Puzzle) Topology() Topology { return p.topo }

// Current returns a copy of the player's grid.
func (p *Puzzle) Current() Grid { return p.current.Clone() }

// Solution returns a copy of the solution grid.
func (p *Puzzle) Solution() Grid { return p.solution.Clone() }

// Swap exchanges the letters at (row1, col1) and (row2, col2).
// Returns false, without touching the grid, if either coordinate is
// out of range.
func (p *Puzzle) Swap(row1, col1, row2, col2 int) bool {
	a, b := Coord{Row: row1, Col: col1}, Coord{Row: row2, Col: col2}
	if !p.topo.InBounds(a) || !p.topo.InBounds(b) {
		return false
	}
	p.current[a.Row][a.Col], p.current[b.Row][b.Col] = p.current[b.Row][b.Col], p.current[a.Row][a.Col]
	return true
}

// IsCompleted reports whether the current grid equals the solution,
// blanks included.
func (p *Puzzle) IsCompleted() bool {
	return p.current.Equal(p.solution)
}

// Hints classifies every cell of the current grid against the solution.
func (p *Puzzle) Hints() HintGrid {
	return p.topo.ComputeHints(p.current, p.solution)
}
