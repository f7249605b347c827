package perftsuite

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/chesscore/internal/board"
)

// Outcome is the result of one case at one depth.
type Outcome struct {
	Name    string
	Depth   int
	Want    uint64
	Got     uint64
	Elapsed time.Duration
}

// Passed reports whether the count matched.
func (o Outcome) Passed() bool {
	return o.Want == o.Got
}

// Failed returns the outcomes whose counts did not match.
func Failed(outcomes []Outcome) []Outcome {
	return lo.Filter(outcomes, func(o Outcome, _ int) bool {
		return !o.Passed()
	})
}

// Run perfts every case of the suite concurrently, one goroutine per case,
// all sharing t. Depths above maxDepth are skipped unless maxDepth is zero.
// Outcomes come back in suite order, ascending depth within a case.
func Run(ctx context.Context, t *board.AttackTables, s *Suite, maxDepth int) ([]Outcome, error) {
	logger := zerolog.Ctx(ctx)

	perCase := make([][]Outcome, len(s.Cases))
	g, ctx := errgroup.WithContext(ctx)

	for i, c := range s.Cases {
		g.Go(func() error {
			b, err := board.ParseFEN(c.FEN)
			if err != nil {
				return err
			}

			for _, depth := range c.sortedDepths(maxDepth) {
				if err := ctx.Err(); err != nil {
					return err
				}

				start := time.Now()
				got, err := b.Perft(t, depth)
				if err != nil {
					return fmt.Errorf("%s depth %d: %w", c.Name, depth, err)
				}
				o := Outcome{
					Name:    c.Name,
					Depth:   depth,
					Want:    c.Depths[depth],
					Got:     got,
					Elapsed: time.Since(start),
				}
				perCase[i] = append(perCase[i], o)

				ev := logger.Debug()
				if !o.Passed() {
					ev = logger.Warn()
				}
				ev.Str("case", c.Name).Int("depth", depth).
					Uint64("want", o.Want).Uint64("got", got).
					Dur("elapsed", o.Elapsed).Msg("perft-case")
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lo.Flatten(perCase), nil
}

// ParallelDivide computes the perft count below each legal root move of b,
// spreading the root moves across goroutines that share t.
func ParallelDivide(ctx context.Context, t *board.AttackTables, b board.Board, depth int) (map[board.Move]uint64, error) {
	result := make(map[board.Move]uint64)
	if depth <= 0 {
		return result, nil
	}

	legal, err := b.LegalMoves(t)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, m := range legal.Slice() {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			child := b
			child.ApplyMove(m)
			n, err := child.Perft(t, depth-1)
			if err != nil {
				return fmt.Errorf("%s: %w", m, err)
			}

			mu.Lock()
			result[m] = n
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
