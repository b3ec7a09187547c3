// internal/httpserver/server.go
//
// HTTP server wiring for the Waffle backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/puzzles".
//   - Game endpoints (optional auth): POST /game/new, POST /game/swap.
//   - Daily endpoints (optional auth): mounted under /daily.
//   - Account endpoints: mounted by mountAuthRoutes (accounts.go).
//
// Notes:
//   - Sessions live in the in-memory store; SQLite keeps history and stats.
//   - Swaps go through store.Update so one game is never mutated by two
//     requests at once.
//   - The solution is only sent once a game is finished.

package httpserver

import (
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/waffle/internal/catalog"
	"github.com/robalobadob/waffle/internal/game"
	"github.com/robalobadob/waffle/internal/store"
	"github.com/robalobadob/waffle/internal/waffle"
)

// Server bundles router, in-memory game store, puzzle catalog and DB handle.
type Server struct {
	r     *chi.Mux
	store store.Store
	db    *sql.DB
	cat   *catalog.Catalog
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, db *sql.DB, cat *catalog.Catalog) *Server {
	s := &Server{r: chi.NewRouter(), store: st, db: db, cat: cat}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(corsFromEnv)

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"waffle-go","endpoints":["/health","/puzzles","POST /game/new","POST /game/swap","/daily/*","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/puzzles", s.handlePuzzles)

	s.r.With(s.withOptionalAuth()).Post("/game/new", s.handleNewGame)
	s.r.With(s.withOptionalAuth()).Post("/game/swap", s.handleSwap)

	s.mountDaily()
	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := getEnv("CLIENT_ORIGIN", "http://localhost:5173")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ GAME ---------------------------------------

// gameView is the JSON shape of a session shared by /game and /daily.
type gameView struct {
	GameID    string          `json:"gameId"`
	Puzzle    int             `json:"puzzle"`
	Grid      []string        `json:"grid"`
	Hints     waffle.HintGrid `json:"hints"`
	SwapsLeft int             `json:"swapsLeft"`
	State     game.State      `json:"state"`
	Solution  []string        `json:"solution,omitempty"`
}

// viewOf snapshots g. Call it while holding the store lock for g.
func viewOf(g *game.Game) gameView {
	v := gameView{
		GameID:    g.ID,
		Puzzle:    g.PuzzleID,
		Grid:      g.Puzzle.Current().Rows(),
		Hints:     g.Hints(),
		SwapsLeft: g.SwapsLeft,
		State:     g.State(),
	}
	if g.Finished {
		v.Solution = g.Puzzle.Solution().Rows()
	}
	return v
}

// handlePuzzles lists the catalog's puzzle numbers.
func (s *Server) handlePuzzles(w http.ResponseWriter, r *http.Request) {
	ids, err := s.cat.IDs()
	if err != nil {
		log.Error().Err(err).Str("source", s.cat.Source()).Msg("list puzzles")
		writeError(w, http.StatusInternalServerError, "catalog_unavailable")
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"puzzles": ids})
}

type newGameReq struct {
	Puzzle int `json:"puzzle"` // optional; random when zero
}

// handleNewGame loads a puzzle, starts an in-memory session and records an
// owner row (user_id or anonymous_id) for history/stats.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	id := req.Puzzle
	if id == 0 {
		var err error
		if id, err = s.randomPuzzle(); err != nil {
			log.Error().Err(err).Msg("pick puzzle")
			writeError(w, http.StatusInternalServerError, "catalog_unavailable")
			return
		}
	}
	p, err := s.cat.Puzzle(id)
	if err != nil {
		writeLoadError(w, err)
		return
	}

	g := game.New(id, p)
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if me := userFrom(r); me != nil {
		_, err = s.db.ExecContext(r.Context(), `INSERT INTO games (id, user_id, puzzle_id, started_at, status)
		                     VALUES (?,?,?,?,?)`, g.ID, me.ID, id, now, game.StatePlaying)
	} else {
		_, err = s.db.ExecContext(r.Context(), `INSERT INTO games (id, anonymous_id, puzzle_id, started_at, status)
		                     VALUES (?,?,?,?,?)`, g.ID, s.ensureAnonID(w, r), id, now, game.StatePlaying)
	}
	if err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("insert game row")
	}
	log.Info().Str("gameId", g.ID).Int("puzzle", id).Msg("game started")

	_ = json.NewEncoder(w).Encode(viewOf(g))
}

// swapReq is the payload of POST /game/swap and POST /daily/swap.
type swapReq struct {
	GameID string       `json:"gameId"`
	From   waffle.Coord `json:"from"`
	To     waffle.Coord `json:"to"`
}

// handleSwap applies a swap to an in-memory game, persists progress and,
// once finished, updates user stats in a best-effort transaction.
func (s *Server) handleSwap(w http.ResponseWriter, r *http.Request) {
	var req swapReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	var view gameView
	var used int
	err := s.store.Update(r.Context(), req.GameID, func(g *game.Game) error {
		if _, _, err := g.ApplySwap(req.From, req.To); err != nil {
			return err
		}
		view, used = viewOf(g), g.SwapsUsed()
		return nil
	})
	if err != nil {
		writeSwapError(w, err)
		return
	}

	me := userFrom(r)
	ownerClause := `anonymous_id=?`
	ownerArg := any(s.ensureAnonID(w, r))
	if me != nil {
		ownerClause = `user_id=?`
		ownerArg = any(me.ID)
	}

	tx, err := s.db.BeginTx(r.Context(), nil)
	if err != nil {
		log.Warn().Err(err).Msg("begin swap tx")
		_ = json.NewEncoder(w).Encode(view)
		return
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`UPDATE games SET swaps_used=? WHERE id=? AND `+ownerClause, used, req.GameID, ownerArg); err != nil {
		log.Warn().Err(err).Msg("update swaps")
	}
	if view.State != game.StatePlaying {
		if _, err := tx.Exec(`UPDATE games SET status=?, finished_at=? WHERE id=? AND `+ownerClause,
			view.State, time.Now().UTC().Format(time.RFC3339), req.GameID, ownerArg); err != nil {
			log.Warn().Err(err).Msg("finish game")
		}
		if me != nil {
			if err := bumpStats(tx, me.ID, view.State == game.StateWon, view.SwapsLeft); err != nil {
				log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
			}
		}
		log.Info().Str("gameId", req.GameID).Str("state", string(view.State)).Int("swapsLeft", view.SwapsLeft).Msg("game finished")
	}
	_ = tx.Commit()

	_ = json.NewEncoder(w).Encode(view)
}

// randomPuzzle picks a puzzle number uniformly from the catalog.
func (s *Server) randomPuzzle() (int, error) {
	ids, err := s.cat.IDs()
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, catalog.ErrNotFound
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(ids))))
	if err != nil {
		return 0, err
	}
	return ids[n.Int64()], nil
}

// ------------------------------- errors ------------------------------------

// writeError writes a JSON error body with status code.
func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// writeLoadError maps catalog failures to HTTP errors.
func writeLoadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, catalog.ErrInvalidID):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, catalog.ErrMalformed):
		log.Error().Err(err).Msg("malformed puzzle")
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Error().Err(err).Msg("load puzzle")
		writeError(w, http.StatusInternalServerError, "catalog_unavailable")
	}
}

// writeSwapError maps session failures to HTTP errors.
func writeSwapError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, game.ErrFinished):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, game.ErrOutOfRange):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "swap_failed")
	}
}

// ------------------------------- small util --------------------------------

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
