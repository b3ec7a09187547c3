// internal/game/engine.go
//
// Session engine for a single Waffle game.
// Responsibilities:
//   - Create new sessions with the standard swap budget (15).
//   - Validate and apply swaps; a rejected swap never costs a move.
//   - Refresh hints after every swap.
//   - Track state transitions: playing → won/lost.

package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"

	"github.com/robalobadob/waffle/internal/waffle"
)

// MaxSwaps is the default swap budget of a session.
const MaxSwaps = 15

var (
	ErrFinished   = errors.New("game finished")
	ErrOutOfRange = errors.New("coordinate out of range")
)

// New constructs a session for puzzle p with the default budget.
func New(puzzleID int, p *waffle.Puzzle) *Game {
	return NewWithBudget(puzzleID, p, MaxSwaps)
}

// NewWithBudget constructs a session with a custom swap budget.
// Budgets below one fall back to MaxSwaps.
func NewWithBudget(puzzleID int, p *waffle.Puzzle, budget int) *Game {
	if budget < 1 {
		budget = MaxSwaps
	}
	g := &Game{
		ID:        randomID(),
		PuzzleID:  puzzleID,
		Puzzle:    p,
		MaxSwaps:  budget,
		SwapsLeft: budget,
	}
	// A puzzle handed over already solved is won before any swap.
	if p.IsCompleted() {
		g.Finished, g.Won = true, true
	}
	return g
}

// ApplySwap exchanges the letters at from and to, mutating the session.
// Returns the refreshed hints, the new state, or an error.
//
// Rules:
//   - Game must not be finished.
//   - Both coordinates must be on the grid (ErrOutOfRange otherwise);
//     rejected swaps leave the grid and the budget untouched.
//
// State transitions:
//   - Grid equals the solution → Finished = true, Won = true.
//   - Else no swaps left → Finished = true (loss).
func (g *Game) ApplySwap(from, to waffle.Coord) (waffle.HintGrid, State, error) {
	if g.Finished {
		return nil, g.State(), ErrFinished
	}
	if !g.Puzzle.Swap(from.Row, from.Col, to.Row, to.Col) {
		return nil, g.State(), ErrOutOfRange
	}
	g.SwapsLeft--

	if g.Puzzle.IsCompleted() {
		g.Finished, g.Won = true, true
	} else if g.SwapsLeft <= 0 {
		g.Finished = true
	}
	return g.Puzzle.Hints(), g.State(), nil
}

// Hints returns the hints for the current grid.
func (g *Game) Hints() waffle.HintGrid { return g.Puzzle.Hints() }

// SwapsUsed reports how many swaps have been spent.
func (g *Game) SwapsUsed() int { return g.MaxSwaps - g.SwapsLeft }

// State reports the coarse state of the session.
func (g *Game) State() State {
	if g.Finished {
		if g.Won {
			return StateWon
		}
		return StateLost
	}
	return StatePlaying
}

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
