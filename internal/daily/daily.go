// internal/daily/daily.go
//
// Deterministic puzzle-of-the-day selection.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// PuzzleIndex returns a deterministic index for a date using
// HMAC(salt, YYYY-MM-DD) % n.
func PuzzleIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes give an even spread for the modulus
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// PuzzleFor picks the puzzle number of the day from the catalog's ids.
// Returns 0 when ids is empty.
func PuzzleFor(date time.Time, salt string, ids []int) int {
	if len(ids) == 0 {
		return 0
	}
	return ids[PuzzleIndex(date, salt, len(ids))]
}
