package board

import (
	"fmt"
	"strings"
)

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling                         = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// Board is a complete chess position. It is a plain value: copying it is the
// undo mechanism used by search.
type Board struct {
	// Piece bitboards indexed by Piece.
	Pieces [12]Bitboard

	// Occupancy indexed by White, Black and Both. Always derived from Pieces.
	Occupancy [3]Bitboard

	SideToMove     Color
	EnPassant      Square // NoSquare if none
	Castling       CastlingRights
	HalfMoveClock  int
	FullMoveNumber int

	// fen caches the text the board was parsed from or last rendered to.
	fen string
}

// EmptyBoard returns a board with no pieces, white to move.
func EmptyBoard() Board {
	return Board{EnPassant: NoSquare, FullMoveNumber: 1}
}

// StartPosition returns the standard initial position.
func StartPosition() Board {
	b, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return b
}

// PieceAt returns the piece on sq, or NoPiece if the square is empty.
func (b *Board) PieceAt(sq Square) Piece {
	bb := SquareBB(sq)
	if b.Occupancy[Both]&bb == 0 {
		return NoPiece
	}

	first, last := piecesOf(Black)
	if b.Occupancy[White]&bb != 0 {
		first, last = piecesOf(White)
	}
	for p := first; p <= last; p++ {
		if b.Pieces[p]&bb != 0 {
			return p
		}
	}
	return NoPiece
}

// KingSquare returns the square of c's king, or NoSquare if it has none.
func (b *Board) KingSquare(c Color) Square {
	return b.Pieces[NewPiece(King, c)].LSB()
}

// SetPiece places p on sq and refreshes occupancy. Intended for position setup.
func (b *Board) SetPiece(p Piece, sq Square) {
	if p >= NoPiece {
		return
	}
	for i := range b.Pieces {
		b.Pieces[i] &^= SquareBB(sq)
	}
	b.Pieces[p] |= SquareBB(sq)
	b.updateOccupancy()
	b.fen = ""
}

// updateOccupancy recomputes the three occupancy bitboards from the piece bitboards.
func (b *Board) updateOccupancy() {
	b.Occupancy[White] = Empty
	b.Occupancy[Black] = Empty
	for p := WhitePawn; p <= WhiteKing; p++ {
		b.Occupancy[White] |= b.Pieces[p]
	}
	for p := BlackPawn; p <= BlackKing; p++ {
		b.Occupancy[Black] |= b.Pieces[p]
	}
	b.Occupancy[Both] = b.Occupancy[White] | b.Occupancy[Black]
}

// Validate checks the structural invariants of the board.
func (b *Board) Validate() error {
	var seen Bitboard
	for p := WhitePawn; p <= BlackKing; p++ {
		if seen&b.Pieces[p] != 0 {
			return fmt.Errorf("piece bitboards overlap at %s", (seen & b.Pieces[p]).LSB())
		}
		seen |= b.Pieces[p]
	}

	if b.Occupancy[White]&b.Occupancy[Black] != 0 {
		return fmt.Errorf("white and black occupancy overlap")
	}
	if b.Occupancy[White]|b.Occupancy[Black] != b.Occupancy[Both] || b.Occupancy[Both] != seen {
		return fmt.Errorf("occupancy does not match piece bitboards")
	}

	if b.Pieces[WhiteKing].PopCount() != 1 {
		return fmt.Errorf("white must have exactly one king")
	}
	if b.Pieces[BlackKing].PopCount() != 1 {
		return fmt.Errorf("black must have exactly one king")
	}
	if (b.Pieces[WhitePawn]|b.Pieces[BlackPawn])&(Rank1|Rank8) != 0 {
		return fmt.Errorf("pawns cannot be on rank 1 or 8")
	}
	if b.SideToMove > Black {
		return fmt.Errorf("invalid side to move")
	}

	waiting := b.SideToMove.Other()
	if b.attackedSlow(b.KingSquare(waiting), b.SideToMove) {
		return fmt.Errorf("%s king is in check but it is %s to move", waiting, b.SideToMove)
	}

	return b.validateEnPassant()
}

// validateEnPassant checks that the en passant square sits behind a pawn
// of the side that just moved, on the rank the side to move captures onto,
// with both it and the pawn's origin square empty.
func (b *Board) validateEnPassant() error {
	ep := b.EnPassant
	if ep == NoSquare {
		return nil
	}

	rank, pawnSq, originSq := 5, ep-8, ep+8
	if b.SideToMove == Black {
		rank, pawnSq, originSq = 2, ep+8, ep-8
	}
	if ep.Rank() != rank {
		return fmt.Errorf("en passant square %s not on rank %d", ep, rank+1)
	}
	if b.Occupancy[Both]&(SquareBB(ep)|SquareBB(originSq)) != 0 {
		return fmt.Errorf("en passant square %s or %s is occupied", ep, originSq)
	}
	if !b.Pieces[NewPiece(Pawn, b.SideToMove.Other())].IsSet(pawnSq) {
		return fmt.Errorf("no pawn on %s to capture en passant", pawnSq)
	}
	return nil
}

// String returns a diagram of the board followed by its FEN.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteByte('\n')
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			sb.WriteString(b.PieceAt(NewSquare(file, rank)).String())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "FEN: %s\n", b.FEN())
	return sb.String()
}
