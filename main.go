// main.go
//
// Waffle API server.
//
// Environment:
//   PORT        listen port (default 5175)
//   LOG_LEVEL   zerolog level (default info)
//   DB_PATH     SQLite file for accounts, history and daily results
//   WAFFLE_FILE puzzle catalog; the embedded one when unset
//
// Accounts, CORS and daily settings are read by the httpserver package.

package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/waffle/internal/catalog"
	"github.com/robalobadob/waffle/internal/db"
	"github.com/robalobadob/waffle/internal/httpserver"
	"github.com/robalobadob/waffle/internal/store"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	conn, err := db.Open(getEnv("DB_PATH", "./data/waffle.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer conn.Close()
	if err := db.Migrate(conn); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	cat := catalog.FromEnv()
	ids, err := cat.IDs()
	if err != nil {
		log.Fatal().Err(err).Msg("load puzzle catalog")
	}
	log.Info().Str("source", cat.Source()).Int("puzzles", len(ids)).Msg("catalog ready")

	srv := httpserver.New(store.NewMemoryStore(), conn, cat)
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Msg("starting waffle server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
