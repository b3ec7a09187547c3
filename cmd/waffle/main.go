// cmd/waffle/main.go
//
// Terminal Waffle.
//
// Usage:
//
//	waffle [file] [--puzzle N] [--swaps N] [--color auto|always|never]
//
// Puzzles come from file, else WAFFLE_FILE, else the embedded catalog.
// Logs go to stderr (LOG_LEVEL, default "warn") so they never mix with the board.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/waffle/internal/catalog"
	"github.com/robalobadob/waffle/internal/console"
	"github.com/robalobadob/waffle/internal/game"
)

func main() {
	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "warn")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command reading moves from in and drawing to out.
func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	var (
		puzzle int
		swaps  int
		color  string
	)
	cmd := &cobra.Command{
		Use:           "waffle [file]",
		Short:         "Play a Waffle word puzzle in the terminal",
		Long:          `Swap letters two at a time until every row and column of the waffle spells its word.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := catalog.FromEnv()
			if len(args) == 1 {
				cat = catalog.New(args[0])
			}
			useColor, err := colorEnabled(color, out)
			if err != nil {
				return err
			}
			res, err := console.Run(in, out, cat, console.Options{PuzzleID: puzzle, Swaps: swaps, Color: useColor})
			if err != nil {
				log.Debug().Err(err).Str("source", cat.Source()).Msg("session aborted")
				return err
			}
			log.Debug().Int("puzzle", res.PuzzleID).Str("state", string(res.State)).Msg("bye")
			return nil
		},
	}
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.Flags().IntVarP(&puzzle, "puzzle", "p", 0, "Puzzle number to play (asks when unset)")
	cmd.Flags().IntVarP(&swaps, "swaps", "s", game.MaxSwaps, "Swap budget")
	cmd.Flags().StringVar(&color, "color", "auto", "Colour hints: auto, always or never")
	return cmd
}

var errColorMode = errors.New("invalid --color value")

// colorEnabled resolves the --color mode. "auto" colours only when out is a terminal.
func colorEnabled(mode string, out io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		f, ok := out.(*os.File)
		return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())), nil
	}
	return false, fmt.Errorf("%w: %q", errColorMode, mode)
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
