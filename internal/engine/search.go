package engine

import (
	"github.com/hailam/chesscore/internal/board"
)

// Search constants
const (
	Infinity  = 50000
	MateValue = 49000
	MaxPly    = 64
)

// mateBound separates mate scores from ordinary evaluations.
const mateBound = MateValue - MaxPly

// SearchContext is the private working state of one search. Nothing in it is
// shared: only the attack tables it points at are, and those are read-only.
type SearchContext struct {
	board  board.Board
	tables *board.AttackTables
	ply    int

	nodes uint64 // negamax and quiescence entries
	moves uint64 // legal moves played

	// Quiet moves that caused beta cutoffs, two slots per ply.
	killers [2][MaxPly]board.Move

	// Alpha-raising quiet moves, indexed by [piece][to].
	history [12][64]int

	// Triangular PV table. One extra row lets a node at MaxPly report an empty line.
	pvLength [MaxPly + 1]int
	pvTable  [MaxPly + 1][MaxPly + 1]board.Move

	followPV bool
	scorePV  bool
}

// NewSearchContext creates a context that searches a copy of b.
func NewSearchContext(b board.Board, t *board.AttackTables) *SearchContext {
	return &SearchContext{board: b, tables: t}
}

// Nodes returns the number of nodes visited so far.
func (sc *SearchContext) Nodes() uint64 {
	return sc.nodes
}

// Moves returns the number of legal moves played so far.
func (sc *SearchContext) Moves() uint64 {
	return sc.moves
}

// PV returns the principal variation found by the last completed iteration.
func (sc *SearchContext) PV() []board.Move {
	pv := make([]board.Move, sc.pvLength[0])
	copy(pv, sc.pvTable[0][:sc.pvLength[0]])
	return pv
}

// BestMove returns the first move of the principal variation, or NoMove.
func (sc *SearchContext) BestMove() board.Move {
	if sc.pvLength[0] == 0 {
		return board.NoMove
	}
	return sc.pvTable[0][0]
}

// SearchDepth runs one full-width iteration at the given depth and returns its score.
func (sc *SearchContext) SearchDepth(depth int) int {
	sc.followPV = true
	sc.scorePV = false
	sc.ply = 0
	return sc.negamax(-Infinity, Infinity, depth)
}

func (sc *SearchContext) negamax(alpha, beta, depth int) int {
	sc.pvLength[sc.ply] = sc.ply

	if sc.ply >= MaxPly {
		return Evaluate(&sc.board)
	}

	if depth <= 0 {
		return sc.quiescence(alpha, beta)
	}

	sc.nodes++

	inCheck := sc.board.InCheck(sc.tables)
	if inCheck {
		depth++
	}

	var ml board.MoveList
	// A full list still searches the moves it holds.
	_ = sc.board.GeneratePseudoLegal(sc.tables, &ml)

	if sc.followPV {
		sc.enablePVScoring(&ml)
	}

	var scores [board.MaxMoves]int
	sc.scoreMoves(&ml, &scores)

	legal := 0
	for i := 0; i < ml.Len(); i++ {
		m := pickMove(&ml, &scores, i)

		saved := sc.board
		if !sc.board.TryMove(sc.tables, m) {
			continue
		}
		legal++
		sc.moves++
		sc.ply++

		score := -sc.negamax(-beta, -alpha, depth-1)

		sc.ply--
		sc.board = saved

		if score >= beta {
			if !m.IsCapture() {
				sc.storeKiller(m)
			}
			return beta
		}

		if score > alpha {
			if !m.IsCapture() {
				sc.updateHistory(m, depth)
			}
			alpha = score
			sc.updatePV(m)
		}
	}

	if legal == 0 {
		if inCheck {
			return -MateValue + sc.ply
		}
		return 0
	}

	return alpha
}

// updatePV writes m followed by the child's line into the current PV row.
func (sc *SearchContext) updatePV(m board.Move) {
	ply := sc.ply
	sc.pvTable[ply][ply] = m
	for next := ply + 1; next < sc.pvLength[ply+1]; next++ {
		sc.pvTable[ply][next] = sc.pvTable[ply+1][next]
	}
	sc.pvLength[ply] = sc.pvLength[ply+1]
}

// quiescence resolves captures past the horizon, standing pat on the static evaluation.
func (sc *SearchContext) quiescence(alpha, beta int) int {
	sc.nodes++

	eval := Evaluate(&sc.board)
	if sc.ply >= MaxPly {
		return eval
	}

	if eval >= beta {
		return beta
	}
	if eval > alpha {
		alpha = eval
	}

	var ml board.MoveList
	_ = sc.board.GeneratePseudoLegal(sc.tables, &ml)

	var scores [board.MaxMoves]int
	sc.scoreMoves(&ml, &scores)

	for i := 0; i < ml.Len(); i++ {
		m := pickMove(&ml, &scores, i)
		if !m.IsCapture() {
			continue
		}

		saved := sc.board
		if !sc.board.TryMove(sc.tables, m) {
			continue
		}
		sc.moves++
		sc.ply++

		score := -sc.quiescence(-beta, -alpha)

		sc.ply--
		sc.board = saved

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}
