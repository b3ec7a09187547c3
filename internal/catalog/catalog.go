// internal/catalog/catalog.go
//
// Puzzle catalog loading.
//
// Record format (one record per puzzle, repeated):
//
//	<puzzle number>
//	5 lines of 5 characters: the scrambled grid
//	5 lines of 5 characters: the solution grid
//
// Blank cells are written as spaces, so lines are never trimmed; only a
// trailing '\r' is dropped. Lines outside a record are ignored.
//
// Source selection (FromEnv):
//   1. WAFFLE_FILE=/path/to/waffles.txt → read that file.
//   2. Otherwise → the catalog embedded in the assets package.
//
// Letters are upper-cased on load; display code decides the case shown.

package catalog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/robalobadob/waffle/assets"
	"github.com/robalobadob/waffle/internal/waffle"
)

var (
	ErrInvalidID         = errors.New("invalid puzzle number")
	ErrNotFound          = errors.New("puzzle not found")
	ErrMalformed         = errors.New("malformed puzzle record")
	ErrSourceUnavailable = errors.New("puzzle source unavailable")
)

// LoadError reports why a puzzle could not be loaded. It unwraps to one
// of the package sentinels.
type LoadError struct {
	ID     int
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	switch {
	case errors.Is(e.Err, ErrInvalidID):
		return fmt.Sprintf("Invalid puzzle number: %d", e.ID)
	case errors.Is(e.Err, ErrNotFound):
		return fmt.Sprintf("Puzzle not found: %d", e.ID)
	case errors.Is(e.Err, ErrMalformed):
		return fmt.Sprintf("Invalid puzzle: %d", e.ID)
	case errors.Is(e.Err, ErrSourceUnavailable):
		return "Unable to open file: " + e.Source
	}
	return e.Err.Error()
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load scans r for the record numbered id and returns its scrambled and
// solution grids. The first record with a matching number wins.
func Load(r io.Reader, id int) (current, solution waffle.Grid, err error) {
	if id <= 0 {
		return nil, nil, &LoadError{ID: id, Err: ErrInvalidID}
	}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		n, ok := header(sc.Text())
		if !ok || n != id {
			continue
		}
		if current, err = readGrid(sc); err != nil {
			return nil, nil, &LoadError{ID: id, Err: err}
		}
		if solution, err = readGrid(sc); err != nil {
			return nil, nil, &LoadError{ID: id, Err: err}
		}
		if _, err := waffle.NewPuzzle(current, solution); err != nil {
			return nil, nil, &LoadError{ID: id, Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
		}
		return current, solution, nil
	}
	if err := sc.Err(); err != nil {
		return nil, nil, &LoadError{ID: id, Err: fmt.Errorf("%w: %v", ErrSourceUnavailable, err)}
	}
	return nil, nil, &LoadError{ID: id, Err: ErrNotFound}
}

// IDs lists the record numbers in r, in file order.
func IDs(r io.Reader) ([]int, error) {
	var out []int
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		n, ok := header(sc.Text())
		if !ok {
			continue
		}
		out = append(out, n)
		// Skip the grid lines so letters never look like headers.
		for i := 0; i < 2*waffle.Size && sc.Scan(); i++ {
		}
	}
	return out, sc.Err()
}

// header parses a record number line. Only the first field counts.
func header(line string) (int, bool) {
	f := strings.Fields(line)
	if len(f) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(f[0])
	return n, err == nil
}

// readGrid consumes waffle.Size lines of waffle.Size characters.
func readGrid(sc *bufio.Scanner) (waffle.Grid, error) {
	g := make(waffle.Grid, 0, waffle.Size)
	for len(g) < waffle.Size {
		if !sc.Scan() {
			return nil, fmt.Errorf("%w: record ends after %d grid lines", ErrMalformed, len(g))
		}
		line := strings.TrimSuffix(sc.Text(), "\r")
		if len(line) != waffle.Size {
			return nil, fmt.Errorf("%w: line %q is %d characters", ErrMalformed, line, len(line))
		}
		g = append(g, upper(line))
	}
	return g, nil
}

// upper upper-cases ASCII letters and leaves everything else alone.
func upper(line string) []byte {
	b := []byte(line)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return b
}

// Catalog is a source of puzzle records: a file on disk or, when no path
// is set, the embedded default catalog.
type Catalog struct {
	path string
}

// New returns a catalog reading path, or the embedded catalog if path is empty.
func New(path string) *Catalog { return &Catalog{path: path} }

// FromEnv returns the catalog named by WAFFLE_FILE, falling back to the
// embedded one.
func FromEnv() *Catalog { return New(os.Getenv("WAFFLE_FILE")) }

// Source names where records are read from.
func (c *Catalog) Source() string {
	if c.path == "" {
		return "embedded:" + assets.DefaultCatalogName
	}
	return c.path
}

func (c *Catalog) open() (io.ReadCloser, error) {
	if c.path == "" {
		return assets.OpenCatalog()
	}
	return os.Open(c.path)
}

// Grids loads the scrambled and solution grids of puzzle id.
func (c *Catalog) Grids(id int) (current, solution waffle.Grid, err error) {
	if id <= 0 {
		return nil, nil, &LoadError{ID: id, Source: c.Source(), Err: ErrInvalidID}
	}
	f, err := c.open()
	if err != nil {
		return nil, nil, &LoadError{ID: id, Source: c.Source(), Err: fmt.Errorf("%w: %v", ErrSourceUnavailable, err)}
	}
	defer f.Close()

	current, solution, err = Load(f, id)
	var le *LoadError
	if errors.As(err, &le) {
		le.Source = c.Source()
	}
	return current, solution, err
}

// Puzzle loads puzzle id as a ready-to-play waffle.Puzzle.
func (c *Catalog) Puzzle(id int) (*waffle.Puzzle, error) {
	cur, sol, err := c.Grids(id)
	if err != nil {
		return nil, err
	}
	return waffle.NewPuzzle(cur, sol)
}

// IDs lists the puzzle numbers available in the catalog.
func (c *Catalog) IDs() ([]int, error) {
	f, err := c.open()
	if err != nil {
		return nil, &LoadError{Source: c.Source(), Err: fmt.Errorf("%w: %v", ErrSourceUnavailable, err)}
	}
	defer f.Close()
	return IDs(f)
}
