package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/waffle/internal/game"
	"github.com/robalobadob/waffle/internal/waffle"
)

func newGame(t *testing.T) *game.Game {
	t.Helper()
	sol := waffle.NewGrid("GLASS", "U U I", "INDEX", "D I T", "ENTRY")
	cur := waffle.NewGrid("ALGSS", "U U I", "INDEX", "D I T", "ENTRY")
	p, err := waffle.NewPuzzle(cur, sol)
	require.NoError(t, err)
	return game.New(1, p)
}

func TestSaveAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	g := newGame(t)

	require.NoError(t, s.Save(ctx, g))
	got, err := s.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Same(t, g, got)

	_, err = s.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	g := newGame(t)
	require.NoError(t, s.Save(ctx, g))

	err := s.Update(ctx, g.ID, func(g *game.Game) error {
		_, _, err := g.ApplySwap(waffle.Coord{Row: 4, Col: 0}, waffle.Coord{Row: 4, Col: 4})
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, game.MaxSwaps-1, g.SwapsLeft)

	boom := errors.New("boom")
	assert.ErrorIs(t, s.Update(ctx, g.ID, func(*game.Game) error { return boom }), boom)
	assert.ErrorIs(t, s.Update(ctx, "nope", func(*game.Game) error { return nil }), ErrNotFound)
}

func TestConcurrentUpdatesAreSerialised(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	g := game.NewWithBudget(1, newGame(t).Puzzle, 100)
	require.NoError(t, s.Save(ctx, g))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Update(ctx, g.ID, func(g *game.Game) error {
				_, _, err := g.ApplySwap(waffle.Coord{Row: 4, Col: 0}, waffle.Coord{Row: 4, Col: 4})
				return err
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, g.SwapsUsed())
}
