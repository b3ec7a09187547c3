// internal/waffle/engine.go
//
// Hint computation for a Waffle grid.
//
// The scoring is the Wordle two-pass algorithm applied once per word:
//
// Pass 1 (whole grid):
//   - Blank in the solution → blank.
//   - Same letter as the solution → correct.
//   - Anything else starts as not_in_word.
//
// Pass 2 (each word, across words first, then down words):
//   - Pool the solution letters of the word's non-correct cells, in order.
//   - Walk the word; every non-correct cell whose letter is still in the
//     pool becomes wrong_position and consumes one copy of that letter.
//   - Unmatched cells keep whatever hint they already had, so a down word
//     never downgrades a wrong_position awarded by an across word.
//
// Pools are per word, so a letter can only be credited against slots of a
// word that actually runs through the cell.

package waffle

// ComputeHints classifies current against solution on the standard layout.
func ComputeHints(current, solution Grid) HintGrid {
	return Standard.ComputeHints(current, solution)
}

// ComputeHints classifies every cell of current against solution, using
// t's word spans for the wrong_position pass. Both grids are assumed to
// share the same shape.
func (t Topology) ComputeHints(current, solution Grid) HintGrid {
	hints := make(HintGrid, len(solution))
	for r := range solution {
		hints[r] = make([]Hint, len(solution[r]))
		for c := range solution[r] {
			switch {
			case solution[r][c] == Blank:
				hints[r][c] = HintBlank
			case current[r][c] == solution[r][c]:
				hints[r][c] = HintCorrect
			default:
				hints[r][c] = HintNotInWord
			}
		}
	}

	for _, w := range t.Words {
		markWord(w.Cells(), current, solution, hints)
	}
	return hints
}

// markWord runs the pool pass over a single word.
func markWord(cells []Coord, current, solution Grid, hints HintGrid) {
	var p pool
	for _, c := range cells {
		if hints[c.Row][c.Col] != HintCorrect {
			p = append(p, solution[c.Row][c.Col])
		}
	}
	for _, c := range cells {
		if hints[c.Row][c.Col] == HintCorrect {
			continue
		}
		if p.take(current[c.Row][c.Col]) {
			hints[c.Row][c.Col] = HintWrongPosition
		}
	}
}

// pool is the ordered multiset of a word's unmatched solution letters.
type pool []byte

// take removes the first occurrence of b and reports whether one was found.
func (p *pool) take(b byte) bool {
	for i, x := range *p {
		if x == b {
			*p = append((*p)[:i], (*p)[i+1:]...)
			return true
		}
	}
	return false
}
