// internal/game/types.go
//
// Core type definitions for a Waffle session.
// Defines:
//   - State: coarse session status (playing/won/lost).
//   - Game: state for a single in-progress or finished session.

package game

import "github.com/robalobadob/waffle/internal/waffle"

// State is the coarse status of a session.
//   - "playing": swaps remain and the grid is unsolved.
//   - "won":     the grid matches the solution.
//   - "lost":    the swap budget ran out first.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

// Game holds the state of a single Waffle session.
type Game struct {
	ID        string         // Unique game identifier (random hex string).
	PuzzleID  int            // Catalog number of the puzzle being played.
	Puzzle    *waffle.Puzzle // Current and solution grids.
	MaxSwaps  int            // Swap budget the session started with.
	SwapsLeft int            // Swaps still available.
	Finished  bool           // True once the game is over (won or lost).
	Won       bool           // True if the game was finished with a win.
}
