package waffle

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	C = HintCorrect
	W = HintWrongPosition
	N = HintNotInWord
	B = HintBlank
)

// oneWord is a single-row layout used to exercise the pool pass on its own.
var oneWord = Topology{
	Rows:  1,
	Cols:  5,
	Words: []Span{{Start: Coord{Row: 0, Col: 0}, Dir: Across, Len: 5}},
}

func solvedGrid() Grid {
	return NewGrid(
		"GLASS",
		"U U I",
		"INDEX",
		"D I T",
		"ENTRY",
	)
}

func TestComputeHintsSingleWord(t *testing.T) {
	cases := []struct {
		name     string
		solution string
		current  string
		want     []Hint
	}{
		{"misplaced letters matched one to one", "ARTSY", "ARYTS", []Hint{C, C, W, W, W}},
		{"duplicates exhaust the pool exactly", "LLAMA", "MALAL", []Hint{W, W, W, W, W}},
		{"shared letter in place is excluded from pool", "LLAMA", "AMALL", []Hint{W, W, C, W, W}},
		{"correct letters are not re-credited", "HELLO", "XXLLO", []Hint{N, N, C, C, C}},
		{"one spare L credited once", "HELLO", "LLXLO", []Hint{W, N, N, C, C}},
		{"nothing in common", "ABCDE", "VWXYZ", []Hint{N, N, N, N, N}},
		{"solved", "CRANE", "CRANE", []Hint{C, C, C, C, C}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := oneWord.ComputeHints(NewGrid(tc.current), NewGrid(tc.solution))
			require.Len(t, got, 1)
			assert.Equal(t, tc.want, got[0])
		})
	}
}

func TestComputeHintsSolvedGrid(t *testing.T) {
	g := solvedGrid()
	want := HintGrid{
		{C, C, C, C, C},
		{C, B, C, B, C},
		{C, C, C, C, C},
		{C, B, C, B, C},
		{C, C, C, C, C},
	}
	assert.Equal(t, want, ComputeHints(g, g))
}

func TestAcrossWrongPositionSurvivesDownPass(t *testing.T) {
	p, err := NewPuzzle(solvedGrid(), solvedGrid())
	require.NoError(t, err)
	// G and A swap inside GLASS. Neither GUIDE nor AUDIT wants the other letter.
	require.True(t, p.Swap(0, 0, 0, 2))

	h := p.Hints()
	assert.Equal(t, W, h[0][0])
	assert.Equal(t, W, h[0][2])
	assert.Equal(t, []Hint{C, C, C, C, C}, h[2])
}

func TestDownPassUpgradesAcrossMiss(t *testing.T) {
	p, err := NewPuzzle(solvedGrid(), solvedGrid())
	require.NoError(t, err)
	// G and E trade ends of GUIDE; across words GLASS and ENTRY cannot use them.
	require.True(t, p.Swap(0, 0, 4, 0))

	h := p.Hints()
	assert.Equal(t, W, h[0][0])
	assert.Equal(t, W, h[4][0])
}

func TestPoolsDoNotLeakAcrossWords(t *testing.T) {
	p, err := NewPuzzle(solvedGrid(), solvedGrid())
	require.NoError(t, err)
	// (0,1) and (2,1) sit on across words only.
	require.True(t, p.Swap(0, 1, 2, 1))

	h := p.Hints()
	assert.Equal(t, N, h[0][1])
	assert.Equal(t, N, h[2][1])
}

func TestComputeHintsProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	solution := solvedGrid()

	for i := 0; i < 500; i++ {
		p, err := NewPuzzle(solution, solution)
		require.NoError(t, err)
		for k := rng.Intn(8); k > 0; k-- {
			p.Swap(rng.Intn(Size), rng.Intn(Size), rng.Intn(Size), rng.Intn(Size))
		}
		cur := p.Current()
		hints := ComputeHints(cur, solution)

		assert.Equal(t, hints, ComputeHints(cur, solution), "deterministic")

		allCorrect := true
		for r := range solution {
			for c := range solution[r] {
				h := hints[r][c]
				assert.Equal(t, solution[r][c] == Blank, h == HintBlank, "blank at (%d,%d)", r, c)
				if solution[r][c] != Blank {
					assert.Equal(t, cur[r][c] == solution[r][c], h == HintCorrect, "correct at (%d,%d)", r, c)
					if h != HintCorrect {
						allCorrect = false
					}
				}
			}
		}
		assert.Equal(t, p.IsCompleted(), allCorrect)

		for _, w := range Standard.Words {
			single := Topology{Rows: Size, Cols: Size, Words: []Span{w}}
			sh := single.ComputeHints(cur, solution)
			credited := 0
			for _, c := range w.Cells() {
				if sh[c.Row][c.Col] == HintWrongPosition {
					credited++
				}
			}
			assert.LessOrEqual(t, credited, sharedUnmatched(w, cur, solution))
		}
	}
}

// sharedUnmatched counts letters common to the non-correct cells of a word
// in both grids, duplicates included.
func sharedUnmatched(w Span, cur, sol Grid) int {
	var have, want [256]int
	for _, c := range w.Cells() {
		if cur[c.Row][c.Col] != sol[c.Row][c.Col] {
			have[cur[c.Row][c.Col]]++
			want[sol[c.Row][c.Col]]++
		}
	}
	n := 0
	for i := range have {
		n += min(have[i], want[i])
	}
	return n
}

func TestPoolTake(t *testing.T) {
	p := pool("LLAMA")
	assert.True(t, p.take('A'))
	assert.Equal(t, pool("LLMA"), p)
	assert.True(t, p.take('L'))
	assert.True(t, p.take('L'))
	assert.False(t, p.take('L'))
	assert.Equal(t, pool("MA"), p)
}
