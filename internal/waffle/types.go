// internal/waffle/types.go
//
// Core type definitions for the Waffle puzzle.
// Defines:
//   - Grid: rows of letters, with Blank marking non-word cells.
//   - Coord / Span: cell addresses and the word lines that run through them.
//   - Topology: the fixed shape of a puzzle (size, blank cells, word spans).
//   - Hint: per-cell classification (correct/wrong_position/not_in_word/blank).

package waffle

// Blank marks a cell that is not part of any word.
const Blank byte = ' '

// Size is the side length of a standard waffle grid.
const Size = 5

// Grid holds one letter per cell, row-major.
type Grid [][]byte

// NewGrid parses rows of text into a Grid. Rows are copied byte-for-byte.
func NewGrid(rows ...string) Grid {
	g := make(Grid, len(rows))
	for r, line := range rows {
		g[r] = []byte(line)
	}
	return g
}

// Clone returns a deep copy of g.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for r := range g {
		out[r] = append([]byte(nil), g[r]...)
	}
	return out
}

// Equal reports whether two grids hold the same letters in every cell.
func (g Grid) Equal(o Grid) bool {
	if len(g) != len(o) {
		return false
	}
	for r := range g {
		if string(g[r]) != string(o[r]) {
			return false
		}
	}
	return true
}

// Rows returns the grid as one string per row.
func (g Grid) Rows() []string {
	out := make([]string, len(g))
	for r := range g {
		out[r] = string(g[r])
	}
	return out
}

// Coord identifies a cell on the grid.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Direction is the orientation of a word span.
type Direction int

const (
	Across Direction = iota
	Down
)

// Span is a straight run of cells holding one word.
type Span struct {
	Start Coord
	Dir   Direction
	Len   int
}

// Cells lists the coordinates covered by the span in reading order.
func (s Span) Cells() []Coord {
	out := make([]Coord, s.Len)
	for i := range out {
		switch s.Dir {
		case Across:
			out[i] = Coord{Row: s.Start.Row, Col: s.Start.Col + i}
		default:
			out[i] = Coord{Row: s.Start.Row + i, Col: s.Start.Col}
		}
	}
	return out
}

// Topology describes the shape of a puzzle: its size, the cells that
// are permanently blank, and the words laid over the grid. Words are
// matched in the order listed.
type Topology struct {
	Rows   int
	Cols   int
	Blanks []Coord
	Words  []Span
}

// Standard is the 5x5 waffle: three across words on rows 0, 2, 4 and
// three down words on columns 0, 2, 4, with the four cells between
// them left blank. Across words come first.
var Standard = Topology{
	Rows: Size,
	Cols: Size,
	Blanks: []Coord{
		{Row: 1, Col: 1}, {Row: 1, Col: 3},
		{Row: 3, Col: 1}, {Row: 3, Col: 3},
	},
	Words: []Span{
		{Start: Coord{Row: 0, Col: 0}, Dir: Across, Len: Size},
		{Start: Coord{Row: 2, Col: 0}, Dir: Across, Len: Size},
		{Start: Coord{Row: 4, Col: 0}, Dir: Across, Len: Size},
		{Start: Coord{Row: 0, Col: 0}, Dir: Down, Len: Size},
		{Start: Coord{Row: 0, Col: 2}, Dir: Down, Len: Size},
		{Start: Coord{Row: 0, Col: 4}, Dir: Down, Len: Size},
	},
}

// InBounds reports whether c lies inside the grid.
func (t Topology) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < t.Rows && c.Col >= 0 && c.Col < t.Cols
}

// IsBlank reports whether c is one of the topology's blank cells.
func (t Topology) IsBlank(c Coord) bool {
	for _, b := range t.Blanks {
		if b == c {
			return true
		}
	}
	return false
}

// Hint is the evaluation of a single cell against the solution.
//   - "correct":        the letter is in its solution position.
//   - "wrong_position": the letter belongs to a word through this cell, elsewhere.
//   - "not_in_word":    no unmatched slot of the cell's words wants this letter.
//   - "blank":          the cell is not part of any word.
type Hint string

const (
	HintCorrect       Hint = "correct"
	HintWrongPosition Hint = "wrong_position"
	HintNotInWord     Hint = "not_in_word"
	HintBlank         Hint = "blank"
)

// HintGrid holds one Hint per cell, row-major.
type HintGrid [][]Hint
