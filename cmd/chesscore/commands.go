package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/engine"
	"github.com/hailam/chesscore/internal/perftsuite"
	"github.com/hailam/chesscore/internal/storage"
)

type command struct {
	needsTables bool
	run         func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"perft":  {needsTables: true, run: runPerft},
	"divide": {needsTables: true, run: runDivide},
	"suite":  {needsTables: true, run: runSuite},
	"moves":  {needsTables: true, run: runMoves},
	"search": {needsTables: true, run: runSearch},
	"eval":   {run: runEval},
	"save":   {run: runSave},
	"load":   {run: runLoad},
	"list":   {run: runList},
	"delete": {run: runDelete},
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %s: %v", errUsage, fs.Name(), err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: %s: unexpected argument %q", errUsage, fs.Name(), fs.Arg(0))
	}
	return nil
}

func runPerft(_ context.Context, a *app, args []string) error {
	fs := newFlagSet("perft")
	fen := fs.String("fen", board.StartFEN, "position")
	depth := fs.Int("depth", 4, "depth")
	if err := parse(fs, args); err != nil {
		return err
	}

	b, err := board.ParseFEN(*fen)
	if err != nil {
		return err
	}

	start := time.Now()
	nodes, err := b.Perft(a.tables, *depth)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Fprintf(a.out, "nodes %d\ntime %s\n", nodes, elapsed.Round(time.Millisecond))
	return nil
}

func runDivide(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("divide")
	fen := fs.String("fen", board.StartFEN, "position")
	depth := fs.Int("depth", 3, "depth")
	if err := parse(fs, args); err != nil {
		return err
	}

	b, err := board.ParseFEN(*fen)
	if err != nil {
		return err
	}

	div, err := perftsuite.ParallelDivide(ctx, a.tables, b, *depth)
	if err != nil {
		return err
	}

	moves := lo.Keys(div)
	sort.Slice(moves, func(i, j int) bool {
		return moves[i].String() < moves[j].String()
	})
	for _, m := range moves {
		fmt.Fprintf(a.out, "%s: %d\n", m, div[m])
	}
	fmt.Fprintf(a.out, "\nmoves %d\nnodes %d\n", len(moves), lo.Sum(lo.Values(div)))
	return nil
}

func runSuite(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("suite")
	file := fs.String("file", "", "YAML suite file")
	depth := fs.Int("depth", 0, "maximum depth (0 runs every depth)")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("%w: suite: -file is required", errUsage)
	}

	s, err := perftsuite.LoadFile(*file)
	if err != nil {
		return err
	}

	outcomes, err := perftsuite.Run(ctx, a.tables, s, *depth)
	if err != nil {
		return err
	}

	for _, o := range outcomes {
		status := "ok"
		if !o.Passed() {
			status = "FAIL"
		}
		fmt.Fprintf(a.out, "%-4s %-12s depth %d  want %d  got %d  (%s)\n",
			status, o.Name, o.Depth, o.Want, o.Got, o.Elapsed.Round(time.Millisecond))
	}

	if failed := perftsuite.Failed(outcomes); len(failed) > 0 {
		return fmt.Errorf("%d of %d perft counts wrong", len(failed), len(outcomes))
	}
	return nil
}

func runMoves(_ context.Context, a *app, args []string) error {
	fs := newFlagSet("moves")
	fen := fs.String("fen", board.StartFEN, "position")
	if err := parse(fs, args); err != nil {
		return err
	}

	b, err := board.ParseFEN(*fen)
	if err != nil {
		return err
	}

	legal, err := b.LegalMoves(a.tables)
	if err != nil {
		return err
	}

	names := lo.Map(legal.Slice(), func(m board.Move, _ int) string { return m.String() })
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintln(a.out, n)
	}

	switch {
	case b.IsCheckmate(a.tables):
		fmt.Fprintln(a.out, "checkmate")
	case b.IsStalemate(a.tables):
		fmt.Fprintln(a.out, "stalemate")
	}
	return nil
}

func runSearch(_ context.Context, a *app, args []string) error {
	fs := newFlagSet("search")
	fen := fs.String("fen", board.StartFEN, "position")
	depth := fs.Int("depth", a.cfg.Depth, "search depth")
	if err := parse(fs, args); err != nil {
		return err
	}

	b, err := board.ParseFEN(*fen)
	if err != nil {
		return err
	}

	eng := engine.NewEngine(a.tables)
	eng.OnInfo = func(info engine.SearchInfo) {
		fmt.Fprintf(a.out, "info depth %d score %s nodes %d time %s pv %s\n",
			info.Depth, engine.ScoreString(info.Score), info.Nodes,
			info.Time.Round(time.Millisecond), engine.Result{PV: info.PV}.PVString())
	}

	res, err := eng.Search(b, *depth)
	if err != nil {
		return err
	}

	if res.Move == board.NoMove {
		if b.InCheck(a.tables) {
			fmt.Fprintln(a.out, "bestmove (none) checkmate")
		} else {
			fmt.Fprintln(a.out, "bestmove (none) stalemate")
		}
		return nil
	}
	fmt.Fprintf(a.out, "bestmove %s\n", res.Move)
	return nil
}

func runEval(_ context.Context, a *app, args []string) error {
	fs := newFlagSet("eval")
	fen := fs.String("fen", board.StartFEN, "position")
	if err := parse(fs, args); err != nil {
		return err
	}

	b, err := board.ParseFEN(*fen)
	if err != nil {
		return err
	}

	fmt.Fprint(a.out, b.String())
	fmt.Fprintf(a.out, "eval %d (%s, side to move)\nmaterial %d (white)\n",
		engine.Evaluate(&b), engine.ScoreString(engine.Evaluate(&b)), engine.EvaluateMaterial(&b))
	return nil
}

func (a *app) openStore() (*storage.Storage, error) {
	if a.cfg.StoreDir == "" {
		return storage.OpenDefault()
	}
	return storage.Open(a.cfg.StoreDir)
}

func runSave(_ context.Context, a *app, args []string) error {
	fs := newFlagSet("save")
	name := fs.String("name", "", "position name")
	fen := fs.String("fen", board.StartFEN, "position")
	if err := parse(fs, args); err != nil {
		return err
	}

	b, err := board.ParseFEN(*fen)
	if err != nil {
		return err
	}

	s, err := a.openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Save(*name, &b); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "saved %s\n", *name)
	return nil
}

func runLoad(_ context.Context, a *app, args []string) error {
	fs := newFlagSet("load")
	name := fs.String("name", "", "position name")
	if err := parse(fs, args); err != nil {
		return err
	}

	s, err := a.openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	b, err := s.Load(*name)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, b.FEN())
	return nil
}

func runList(_ context.Context, a *app, args []string) error {
	fs := newFlagSet("list")
	if err := parse(fs, args); err != nil {
		return err
	}

	s, err := a.openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	names, err := s.List()
	if err != nil {
		return err
	}
	for _, n := range names {
		fmt.Fprintln(a.out, n)
	}
	return nil
}

func runDelete(_ context.Context, a *app, args []string) error {
	fs := newFlagSet("delete")
	name := fs.String("name", "", "position name")
	if err := parse(fs, args); err != nil {
		return err
	}

	s, err := a.openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Delete(*name); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "deleted %s\n", *name)
	return nil
}
