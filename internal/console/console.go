// internal/console/console.go
//
// Interactive terminal session for a single waffle.
//
// Flow:
//   1. Greet and ask for a puzzle number (skipped when Options.PuzzleID is set).
//   2. Load the puzzle from the catalog; load failures are printed and end
//      the session.
//   3. Loop: board + "N swaps remaining" + prompt, read "r1 c1 r2 c2".
//      Bad lines cost nothing and re-prompt.
//   4. On a win, congratulate; otherwise print "Solution:". Either way the
//      solution is shown without hints.
//
// End of input ends the session quietly.

package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/waffle/internal/catalog"
	"github.com/robalobadob/waffle/internal/game"
	"github.com/robalobadob/waffle/internal/render"
	"github.com/robalobadob/waffle/internal/waffle"
)

const swapPrompt = "Enter the row and column for each letter to swap.\n" +
	"1 2 2 3 means swap row 1 column 2 with row 2 column 3:"

const invalidInput = "Invalid input, please try again."

// Options configures a session.
type Options struct {
	PuzzleID int  // 0 asks the player
	Swaps    int  // swap budget; 0 means game.MaxSwaps
	Color    bool // styled board output
}

// Result summarises a finished session.
type Result struct {
	PuzzleID  int
	State     game.State
	SwapsLeft int
}

// Run plays one session reading moves from in and writing to out.
// A load failure is printed and returned. Running out of input returns the
// state reached so far with a nil error.
func Run(in io.Reader, out io.Writer, cat *catalog.Catalog, opts Options) (Result, error) {
	sc := bufio.NewScanner(in)

	fmt.Fprintln(out, "Welcome to Waffle!")
	id := opts.PuzzleID
	if id == 0 {
		ids, err := cat.IDs()
		if err != nil {
			fmt.Fprintln(out, err)
			return Result{}, err
		}
		fmt.Fprintf(out, "Pick a puzzle number from 1 to %d:", len(ids))
		if !sc.Scan() {
			fmt.Fprintln(out)
			return Result{}, sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		n, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(out, "Invalid puzzle number: "+line)
			return Result{}, fmt.Errorf("%w: %q", catalog.ErrInvalidID, line)
		}
		id = n
	}

	p, err := cat.Puzzle(id)
	if err != nil {
		fmt.Fprintln(out, err)
		return Result{PuzzleID: id}, err
	}
	g := game.NewWithBudget(id, p, opts.Swaps)
	log.Debug().Int("puzzle", id).Str("source", cat.Source()).Int("swaps", g.MaxSwaps).Msg("session started")

	hints := g.Hints()
	for !g.Finished {
		fmt.Fprint(out, render.Styled(p.Current(), hints, render.Options{Color: opts.Color}))
		fmt.Fprintf(out, "%d swaps remaining\n", g.SwapsLeft)
		fmt.Fprint(out, swapPrompt)

		if !sc.Scan() {
			fmt.Fprintln(out)
			log.Debug().Int("puzzle", id).Msg("input closed")
			return Result{PuzzleID: id, State: g.State(), SwapsLeft: g.SwapsLeft}, sc.Err()
		}
		from, to, ok := parseSwap(sc.Text())
		if !ok {
			fmt.Fprintln(out, invalidInput)
			continue
		}
		h, _, err := g.ApplySwap(from, to)
		if err != nil {
			log.Debug().Err(err).Interface("from", from).Interface("to", to).Msg("swap rejected")
			fmt.Fprintln(out, invalidInput)
			continue
		}
		hints = h
	}

	if g.Won {
		fmt.Fprintf(out, "Congratulations! You solved the waffle with %d swaps remaining.\n", g.SwapsLeft)
	} else {
		fmt.Fprintln(out, "Solution:")
	}
	fmt.Fprint(out, render.Board(p.Solution(), nil))
	log.Debug().Int("puzzle", id).Str("state", string(g.State())).Int("swapsLeft", g.SwapsLeft).Msg("session finished")
	return Result{PuzzleID: id, State: g.State(), SwapsLeft: g.SwapsLeft}, nil
}

// parseSwap reads "r1 c1 r2 c2". Range checks are left to the game.
func parseSwap(line string) (from, to waffle.Coord, ok bool) {
	f := strings.Fields(line)
	if len(f) != 4 {
		return from, to, false
	}
	var n [4]int
	for i, s := range f {
		v, err := strconv.Atoi(s)
		if err != nil {
			return from, to, false
		}
		n[i] = v
	}
	return waffle.Coord{Row: n[0], Col: n[1]}, waffle.Coord{Row: n[2], Col: n[3]}, true
}
