// Package render draws a waffle grid as text.
//
// Layout:
//
//	    0  1  2  3  4
//	 0  G  l (r) S  S
//	 1  U     U     I
//
// Each cell is three characters wide. With hints, correct letters are
// shown as-is, misplaced letters lower-cased in parentheses, letters not
// in the word lower-cased, and blanks as empty cells. Without hints every
// letter is shown as-is.
package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/waffle/internal/waffle"
)

// Options tunes board output.
type Options struct {
	// Color paints correct letters green and misplaced letters yellow.
	Color bool
}

var (
	correctStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	misplaceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// Board renders g with hints. A nil hints grid reveals every letter unstyled.
func Board(g waffle.Grid, hints waffle.HintGrid) string {
	return Styled(g, hints, Options{})
}

// Styled renders g like Board, applying opts.
func Styled(g waffle.Grid, hints waffle.HintGrid, opts Options) string {
	var b strings.Builder
	cols := 0
	if len(g) > 0 {
		cols = len(g[0])
	}
	b.WriteString("   ")
	for c := 0; c < cols; c++ {
		b.WriteString(" " + strconv.Itoa(c) + " ")
	}
	b.WriteString("\n")

	for r, row := range g {
		b.WriteString(" " + strconv.Itoa(r) + " ")
		for c, ch := range row {
			if hints == nil {
				b.WriteString(" " + string(ch) + " ")
				continue
			}
			b.WriteString(cell(ch, hints[r][c], opts))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

// cell formats one three-character cell.
func cell(ch byte, h waffle.Hint, opts Options) string {
	lower := strings.ToLower(string(ch))
	switch h {
	case waffle.HintCorrect:
		if opts.Color {
			return " " + correctStyle.Render(string(ch)) + " "
		}
		return " " + string(ch) + " "
	case waffle.HintBlank:
		return "   "
	case waffle.HintWrongPosition:
		if opts.Color {
			return misplaceStyle.Render("(" + lower + ")")
		}
		return "(" + lower + ")"
	default:
		return " " + lower + " "
	}
}
