// Package engine implements the chess search: iterative deepening negamax
// with alpha-beta pruning, quiescence search and a material plus
// piece-square evaluation.
package engine

import (
	"github.com/hailam/chesscore/internal/board"
)

// Evaluation constants
const (
	PawnValue   = 100
	KnightValue = 300
	BishopValue = 350
	RookValue   = 500
	QueenValue  = 1000
	KingValue   = 10000
)

// Piece values array for quick lookup, indexed by PieceType.
var pieceValues = [6]int{PawnValue, KnightValue, BishopValue, RookValue, QueenValue, KingValue}

// Piece-square tables from white's point of view, written rank 8 first
// (index 0 is a8). White pieces look up sq.Mirror(), black pieces sq itself.

var pawnPST = [64]int{
	90, 90, 90, 90, 90, 90, 90, 90,
	30, 30, 30, 40, 40, 30, 30, 30,
	20, 20, 20, 30, 30, 30, 20, 20,
	10, 10, 10, 20, 20, 10, 10, 10,
	5, 5, 10, 20, 20, 5, 5, 5,
	0, 0, 0, 5, 5, 0, 0, 0,
	0, 0, 0, -10, -10, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightPST = [64]int{
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 10, 10, 0, 0, -5,
	-5, 5, 20, 20, 20, 20, 5, -5,
	-5, 10, 20, 30, 30, 20, 10, -5,
	-5, 10, 20, 30, 30, 20, 10, -5,
	-5, 5, 20, 10, 10, 20, 5, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, -10, 0, 0, 0, 0, -10, -5,
}

var bishopPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 10, 10, 0, 0, 0,
	0, 0, 10, 20, 20, 10, 0, 0,
	0, 0, 10, 20, 20, 10, 0, 0,
	0, 10, 0, 0, 0, 0, 10, 0,
	0, 30, 0, 0, 0, 0, 30, 0,
	0, 0, -10, 0, 0, -10, 0, 0,
}

var rookPST = [64]int{
	50, 50, 50, 50, 50, 50, 50, 50,
	50, 50, 50, 50, 50, 50, 50, 50,
	0, 0, 10, 20, 20, 10, 0, 0,
	0, 0, 10, 20, 20, 10, 0, 0,
	0, 0, 10, 20, 20, 10, 0, 0,
	0, 0, 10, 20, 20, 10, 0, 0,
	0, 0, 10, 20, 20, 10, 0, 0,
	0, 0, 0, 20, 20, 0, 0, 0,
}

var queenPST = [64]int{
	-10, -5, -5, 0, 0, -5, -5, -10,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 0, 5, 5, 5, 5, 0, 0,
	0, 0, 5, 5, 5, 5, 0, 0,
	-5, 5, 5, 5, 5, 5, 0, -5,
	-5, 0, 5, 0, 0, 0, 0, -5,
	-10, -5, -5, 0, 0, -5, -5, -10,
}

var kingPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 5, 5, 5, 5, 0, 0,
	0, 5, 5, 10, 10, 5, 5, 0,
	0, 5, 10, 20, 20, 10, 5, 0,
	0, 5, 10, 20, 20, 10, 5, 0,
	0, 0, 5, 10, 10, 5, 0, 0,
	0, 5, 5, -5, -5, 0, 5, 0,
	0, 0, 5, 0, -15, 0, 10, 0,
}

var psts = [6]*[64]int{&pawnPST, &knightPST, &bishopPST, &rookPST, &queenPST, &kingPST}

// Evaluate returns the static evaluation of b from the side to move's point of view.
func Evaluate(b *board.Board) int {
	score := 0

	for p := board.WhitePawn; p <= board.BlackKing; p++ {
		pt := p.Type()
		table := psts[pt]
		white := p.Color() == board.White

		bb := b.Pieces[p]
		for bb != 0 {
			sq := bb.PopLSB()
			if white {
				score += pieceValues[pt] + table[sq.Mirror()]
			} else {
				score -= pieceValues[pt] + table[sq]
			}
		}
	}

	if b.SideToMove == board.Black {
		return -score
	}
	return score
}

// EvaluateMaterial returns the material balance from white's point of view.
func EvaluateMaterial(b *board.Board) int {
	score := 0
	for pt := board.Pawn; pt <= board.Queen; pt++ {
		score += pieceValues[pt] * b.Pieces[board.NewPiece(pt, board.White)].PopCount()
		score -= pieceValues[pt] * b.Pieces[board.NewPiece(pt, board.Black)].PopCount()
	}
	return score
}
