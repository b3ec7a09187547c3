// internal/daily/store.go
//
// SQLite persistence for daily results and the leaderboard.

package daily

import (
	"context"
	"database/sql"
)

// Result is one player's finished daily puzzle.
type Result struct {
	UserID    string `json:"userId"`
	Date      string `json:"date"`
	PuzzleID  int    `json:"puzzleId"`
	SwapsUsed int    `json:"swapsUsed"`
	SwapsLeft int    `json:"swapsLeft"`
	Won       bool   `json:"won"`
	ElapsedMs int    `json:"elapsedMs"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether userID has a result recorded for date.
func (s *Store) AlreadyPlayed(ctx context.Context, userID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE user_id=? AND date=?`,
		userID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult records a finished daily game. A second result for the
// same user and date is ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO daily_results
			(user_id, date, puzzle_id, swaps_used, swaps_left, won, elapsed_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.UserID, r.Date, r.PuzzleID, r.SwapsUsed, r.SwapsLeft, r.Won, r.ElapsedMs,
	)
	return err
}

// LBRow is one leaderboard entry.
type LBRow struct {
	UserID    string `json:"userId"`
	SwapsLeft int    `json:"swapsLeft"`
	ElapsedMs int    `json:"elapsedMs"`
}

// Leaderboard returns the winners of date: most swaps left first, then
// fastest, then earliest.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, swaps_left, elapsed_ms
		FROM daily_results
		WHERE date=? AND won=1
		ORDER BY swaps_left DESC, elapsed_ms ASC, created_at ASC
		LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.UserID, &r.SwapsLeft, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
