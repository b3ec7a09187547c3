// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Waffle" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start today's puzzle (creates or reuses session)
//   - POST /daily/swap        → apply a swap to today's puzzle
//   - GET  /daily/leaderboard → winners for today (or ?date=YYYY-MM-DD)
//
// Each player gets one attempt per day (enforced by DB + in-memory session).
// Sessions are held in memory while playing; the result is persisted when
// the game ends, win or loss. The puzzle is picked from the catalog by
// HMAC(date, DAILY_SALT).

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/waffle/internal/daily"
	"github.com/robalobadob/waffle/internal/game"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	now      func() time.Time
	sessions map[string]*dailySession // active sessions keyed by userID|date
	mu       sync.Mutex               // guards sessions and the games they hold
}

// dailySession holds transient state for an in-progress daily game.
type dailySession struct {
	UserID   string
	Date     string
	Start    time.Time
	Game     *game.Game
	Recorded bool
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily() {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		salt:     getEnv("DAILY_SALT", "local_dev_salt"),
		now:      time.Now,
		sessions: make(map[string]*dailySession),
	}
	s.r.Route("/daily", func(r chi.Router) {
		r.Use(s.withOptionalAuth())
		r.Post("/new", dd.handleNew)
		r.Post("/swap", dd.handleSwap)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// playerID returns the authenticated user ID, or the guest's anonymous ID.
func (d *dailyServer) playerID(w http.ResponseWriter, r *http.Request) string {
	if me := userFrom(r); me != nil {
		return me.ID
	}
	return d.srv.ensureAnonID(w, r)
}

// newRes is returned by /daily/new.
type newRes struct {
	Date   string    `json:"date"`
	Played bool      `json:"played"`
	Game   *gameView `json:"game,omitempty"`
}

// handleNew creates or reuses today's session.
//   - A DB row for today → Played=true, no game.
//   - Otherwise reuse the in-memory session or start a new one.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid := d.playerID(w, r)
	now := d.now()
	date := daily.DateKey(now)

	if played, err := d.store.AlreadyPlayed(r.Context(), uid, date); err == nil && played {
		_ = json.NewEncoder(w).Encode(newRes{Date: date, Played: true})
		return
	} else if err != nil {
		log.Warn().Err(err).Msg("daily already played")
	}

	key := uid + "|" + date
	d.mu.Lock()
	defer d.mu.Unlock()

	if sess, ok := d.sessions[key]; ok {
		v := viewOf(sess.Game)
		_ = json.NewEncoder(w).Encode(newRes{Date: date, Played: sess.Game.Finished, Game: &v})
		return
	}

	ids, err := d.srv.cat.IDs()
	if err != nil || len(ids) == 0 {
		log.Error().Err(err).Msg("daily catalog")
		writeError(w, http.StatusInternalServerError, "catalog_unavailable")
		return
	}
	id := daily.PuzzleFor(now, d.salt, ids)
	p, err := d.srv.cat.Puzzle(id)
	if err != nil {
		writeLoadError(w, err)
		return
	}
	sess := &dailySession{UserID: uid, Date: date, Start: now, Game: game.New(id, p)}
	d.sessions[key] = sess
	log.Info().Str("date", date).Int("puzzle", id).Msg("daily started")

	v := viewOf(sess.Game)
	_ = json.NewEncoder(w).Encode(newRes{Date: date, Game: &v})
}

// handleSwap applies a swap to today's session and records the result
// once the game ends.
func (d *dailyServer) handleSwap(w http.ResponseWriter, r *http.Request) {
	uid := d.playerID(w, r)

	var req swapReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	date := daily.DateKey(d.now())

	d.mu.Lock()
	defer d.mu.Unlock()

	sess, ok := d.sessions[uid+"|"+date]
	if !ok || sess.Game.ID != req.GameID {
		writeError(w, http.StatusConflict, "no_session")
		return
	}
	if _, _, err := sess.Game.ApplySwap(req.From, req.To); err != nil {
		writeSwapError(w, err)
		return
	}
	v := viewOf(sess.Game)

	if sess.Game.Finished && !sess.Recorded {
		res := daily.Result{
			UserID:    uid,
			Date:      date,
			PuzzleID:  sess.Game.PuzzleID,
			SwapsUsed: sess.Game.SwapsUsed(),
			SwapsLeft: sess.Game.SwapsLeft,
			Won:       sess.Game.Won,
			ElapsedMs: int(d.now().Sub(sess.Start).Milliseconds()),
		}
		if err := d.store.InsertResult(r.Context(), res); err != nil {
			log.Warn().Err(err).Str("user", uid).Msg("insert daily result")
		} else {
			sess.Recorded = true
		}
	}
	_ = json.NewEncoder(w).Encode(v)
}

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(d.now())
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		log.Error().Err(err).Msg("daily leaderboard")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
