package engine

import (
	"github.com/hailam/chesscore/internal/board"
)

// Move ordering priorities
const (
	PVMoveScore  = 20000 // PV move from the previous iteration
	CaptureBase  = 10000 // Base score added to MVV-LVA
	KillerScore1 = 9000  // First killer move
	KillerScore2 = 8000  // Second killer move
)

// MVV-LVA (Most Valuable Victim - Least Valuable Attacker) scores
// indexed by [attacker][victim]. Victim value dominates, attacker breaks ties.
var mvvLva = func() [6][6]int {
	var table [6][6]int
	for attacker := range table {
		for victim := range table[attacker] {
			table[attacker][victim] = 100*(victim+1) + 5 - attacker
		}
	}
	return table
}()

// victimType returns the type of the piece a capture removes.
func victimType(b *board.Board, m board.Move) board.PieceType {
	if m.IsEnPassant() {
		return board.Pawn
	}
	return b.PieceAt(m.To()).Type()
}

// enablePVScoring turns on PV scoring if the PV move for this ply is in ml.
// Following stops as soon as the line leaves the stored PV.
func (sc *SearchContext) enablePVScoring(ml *board.MoveList) {
	sc.followPV = false
	pvMove := sc.pvTable[0][sc.ply]
	if ml.Contains(pvMove) {
		sc.scorePV = true
		sc.followPV = true
	}
}

// scoreMove returns the ordering score for a single move.
func (sc *SearchContext) scoreMove(m board.Move) int {
	if sc.scorePV && sc.pvTable[0][sc.ply] == m {
		sc.scorePV = false
		return PVMoveScore
	}

	if m.IsCapture() {
		victim := victimType(&sc.board, m)
		if victim == board.NoPieceType {
			return CaptureBase
		}
		return CaptureBase + mvvLva[m.Piece().Type()][victim]
	}

	if sc.killers[0][sc.ply] == m {
		return KillerScore1
	}
	if sc.killers[1][sc.ply] == m {
		return KillerScore2
	}
	return sc.history[m.Piece()][m.To()]
}

// scoreMoves fills scores for every move in ml.
func (sc *SearchContext) scoreMoves(ml *board.MoveList, scores *[board.MaxMoves]int) {
	for i, m := range ml.Slice() {
		scores[i] = sc.scoreMove(m)
	}
}

// pickMove moves the best remaining move to index i. Of equal scores the
// earliest in the list wins, so ordering is deterministic.
func pickMove(ml *board.MoveList, scores *[board.MaxMoves]int, i int) board.Move {
	best := i
	for j := i + 1; j < ml.Len(); j++ {
		if scores[j] > scores[best] {
			best = j
		}
	}
	if best != i {
		ml.Swap(i, best)
		scores[i], scores[best] = scores[best], scores[i]
	}
	return ml.Get(i)
}

// storeKiller records a quiet move that caused a beta cutoff at the current ply.
func (sc *SearchContext) storeKiller(m board.Move) {
	if sc.killers[0][sc.ply] == m {
		return
	}
	sc.killers[1][sc.ply] = sc.killers[0][sc.ply]
	sc.killers[0][sc.ply] = m
}

// updateHistory rewards a quiet move that raised alpha.
func (sc *SearchContext) updateHistory(m board.Move, depth int) {
	sc.history[m.Piece()][m.To()] += depth
}
