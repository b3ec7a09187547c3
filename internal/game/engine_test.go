package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/waffle/internal/waffle"
)

func solution() waffle.Grid {
	return waffle.NewGrid("GLASS", "U U I", "INDEX", "D I T", "ENTRY")
}

// oneSwapAway is the solution with G and A exchanged on the top row.
func oneSwapAway(t *testing.T) *waffle.Puzzle {
	t.Helper()
	p, err := waffle.NewPuzzle(waffle.NewGrid("ALGSS", "U U I", "INDEX", "D I T", "ENTRY"), solution())
	require.NoError(t, err)
	return p
}

func at(r, c int) waffle.Coord { return waffle.Coord{Row: r, Col: c} }

func TestNewGame(t *testing.T) {
	g := New(3, oneSwapAway(t))
	assert.Len(t, g.ID, 16)
	assert.Equal(t, 3, g.PuzzleID)
	assert.Equal(t, MaxSwaps, g.SwapsLeft)
	assert.Equal(t, StatePlaying, g.State())
	assert.Equal(t, 0, g.SwapsUsed())
}

func TestApplySwapWins(t *testing.T) {
	g := New(1, oneSwapAway(t))

	hints, state, err := g.ApplySwap(at(0, 0), at(0, 2))
	require.NoError(t, err)
	assert.Equal(t, StateWon, state)
	assert.Equal(t, MaxSwaps-1, g.SwapsLeft)
	assert.True(t, g.Finished)
	assert.Equal(t, waffle.HintCorrect, hints[0][0])

	_, _, err = g.ApplySwap(at(0, 0), at(0, 2))
	assert.ErrorIs(t, err, ErrFinished)
	assert.Equal(t, MaxSwaps-1, g.SwapsLeft)
}

func TestApplySwapOutOfRangeCostsNothing(t *testing.T) {
	g := New(1, oneSwapAway(t))
	before := g.Puzzle.Current()

	_, state, err := g.ApplySwap(at(0, 0), at(5, 0))
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, StatePlaying, state)
	assert.Equal(t, MaxSwaps, g.SwapsLeft)
	assert.Equal(t, before, g.Puzzle.Current())

	_, _, err = g.ApplySwap(at(-1, 0), at(0, 0))
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, MaxSwaps, g.SwapsLeft)
}

func TestBudgetExhaustionLoses(t *testing.T) {
	g := NewWithBudget(1, oneSwapAway(t), 2)

	_, state, err := g.ApplySwap(at(4, 0), at(4, 4))
	require.NoError(t, err)
	assert.Equal(t, StatePlaying, state)

	_, state, err = g.ApplySwap(at(4, 0), at(4, 4))
	require.NoError(t, err)
	assert.Equal(t, StateLost, state)
	assert.True(t, g.Finished)
	assert.False(t, g.Won)
	assert.Equal(t, 2, g.SwapsUsed())
}

func TestWinOnLastSwapIsAWin(t *testing.T) {
	g := NewWithBudget(1, oneSwapAway(t), 1)
	_, state, err := g.ApplySwap(at(0, 2), at(0, 0))
	require.NoError(t, err)
	assert.Equal(t, StateWon, state)
}

func TestInvalidBudgetFallsBack(t *testing.T) {
	g := NewWithBudget(1, oneSwapAway(t), 0)
	assert.Equal(t, MaxSwaps, g.MaxSwaps)
}

func TestAlreadySolvedPuzzle(t *testing.T) {
	p, err := waffle.NewPuzzle(solution(), solution())
	require.NoError(t, err)
	g := New(1, p)
	assert.Equal(t, StateWon, g.State())
}
