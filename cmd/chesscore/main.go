// chesscore is a command line front end for the move generator and search.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/pprof"

	"github.com/rs/zerolog/log"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/config"
	"github.com/hailam/chesscore/internal/logging"
)

const usage = `usage: chesscore [-config file] [-cpuprofile file] <command> [flags]

commands:
  perft   -fen FEN -depth N      count leaf nodes of the legal move tree
  divide  -fen FEN -depth N      perft split by root move
  suite   -file FILE -depth N    run a YAML perft suite
  moves   -fen FEN               list legal moves
  search  -fen FEN -depth N      find the best move
  eval    -fen FEN               static evaluation
  save    -name NAME -fen FEN    store a named position
  load    -name NAME             print a stored position
  list                           list stored positions
  delete  -name NAME             remove a stored position
`

var errUsage = errors.New("bad usage")

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
		}
		log.Error().Err(err).Msg("chesscore failed")
		os.Exit(1)
	}
}

// app carries what every command needs: settings, output and the shared attack tables.
type app struct {
	cfg    config.Config
	out    io.Writer
	tables *board.AttackTables
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("chesscore", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	configPath := fs.String("config", "", "config file (yaml, json or toml)")
	cpuprofile := fs.String("cpuprofile", "", "write cpu profile to file")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogPretty); err != nil {
		return err
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
		log.Info().Str("path", *cpuprofile).Msg("cpu-profiling-enabled")
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return fmt.Errorf("%w: no command", errUsage)
	}

	cmd, ok := commands[rest[0]]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", errUsage, rest[0])
	}

	a := &app{cfg: cfg, out: out}
	if cmd.needsTables {
		a.tables = board.NewAttackTables()
	}
	return cmd.run(ctx, a, rest[1:])
}
