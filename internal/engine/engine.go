package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/hailam/chesscore/internal/board"
)

// ErrInvalidDepth is returned for a depth outside 1..MaxPly.
var ErrInvalidDepth = errors.New("invalid search depth")

// SearchInfo contains information about one completed iteration.
type SearchInfo struct {
	Depth int
	Score int
	Nodes uint64
	Moves uint64
	Time  time.Duration
	PV    []board.Move
}

// Result is the outcome of a search.
type Result struct {
	Move  board.Move // NoMove when the side to move has no legal moves
	Score int        // from the side to move's point of view
	Depth int
	Nodes uint64
	Moves uint64
	PV    []board.Move

	// Mate is the number of moves to mate: positive when the side to move
	// mates, negative when it is mated, zero otherwise.
	Mate int
}

// PVString returns the principal variation in long algebraic notation.
func (r Result) PVString() string {
	return strings.Join(lo.Map(r.PV, func(m board.Move, _ int) string {
		return m.String()
	}), " ")
}

// Engine runs searches against a shared set of attack tables.
type Engine struct {
	tables *board.AttackTables

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates an engine that uses t for every search.
func NewEngine(t *board.AttackTables) *Engine {
	return &Engine{tables: t}
}

// Search is a convenience wrapper that runs a single search without callbacks.
func Search(b board.Board, t *board.AttackTables, depth int) (Result, error) {
	return NewEngine(t).Search(b, depth)
}

// Search finds the best move for b by iterative deepening to depth.
// b is copied; the caller's board is never modified.
func (e *Engine) Search(b board.Board, depth int) (Result, error) {
	if depth < 1 || depth > MaxPly {
		return Result{}, fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidDepth, depth, MaxPly)
	}

	sc := NewSearchContext(b, e.tables)
	startTime := time.Now()

	log.Debug().Str("fen", b.FEN()).Int("depth", depth).Msg("search-start")

	var res Result
	for d := 1; d <= depth; d++ {
		score := sc.SearchDepth(d)

		res = Result{
			Move:  sc.BestMove(),
			Score: score,
			Depth: d,
			Nodes: sc.Nodes(),
			Moves: sc.Moves(),
			PV:    sc.PV(),
			Mate:  MateDistance(score),
		}

		log.Debug().
			Int("depth", d).
			Int("score", score).
			Uint64("nodes", sc.Nodes()).
			Str("pv", res.PVString()).
			Msg("deepening-iteratively")

		if e.OnInfo != nil {
			e.OnInfo(SearchInfo{
				Depth: d,
				Score: score,
				Nodes: sc.Nodes(),
				Moves: sc.Moves(),
				Time:  time.Since(startTime),
				PV:    res.PV,
			})
		}
	}

	log.Debug().
		Str("bestmove", res.Move.String()).
		Str("score", ScoreString(res.Score)).
		Dur("elapsed", time.Since(startTime)).
		Msg("search-done")

	return res, nil
}

// Evaluate returns the static evaluation of a position.
func (e *Engine) Evaluate(b *board.Board) int {
	return Evaluate(b)
}

// MateDistance converts a score to moves until mate: positive when the side
// to move mates, negative when it is mated, zero for ordinary scores and for
// a side that is already checkmated.
func MateDistance(score int) int {
	switch {
	case score > mateBound:
		return (MateValue - score + 1) / 2
	case score < -mateBound:
		return -(MateValue + score) / 2
	default:
		return 0
	}
}

// ScoreString converts a score to a human-readable string.
func ScoreString(score int) string {
	if score > mateBound {
		return "Mate in " + strconv.Itoa(MateDistance(score))
	}
	if score < -mateBound {
		return "Mated in " + strconv.Itoa(-MateDistance(score))
	}

	// Convert centipawns to pawns
	sign := ""
	if score < 0 {
		sign = "-"
		score = -score
	}
	return fmt.Sprintf("%s%d.%02d", sign, score/100, score%100)
}
