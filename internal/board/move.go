package board

import (
	"fmt"
	"strings"
)

// Move packs a chess move into 24 bits:
// bits 0-5:   from square
// bits 6-11:  to square
// bits 12-15: moving piece
// bits 16-19: promotion piece (NoPiece if none)
// bit  20:    capture
// bit  21:    double pawn push
// bit  22:    en passant
// bit  23:    castling
type Move uint32

// MoveFlags are the single-bit move attributes.
type MoveFlags uint32

const (
	FlagCapture    MoveFlags = 1 << 20
	FlagDoublePush MoveFlags = 1 << 21
	FlagEnPassant  MoveFlags = 1 << 22
	FlagCastling   MoveFlags = 1 << 23

	flagMask = FlagCapture | FlagDoublePush | FlagEnPassant | FlagCastling
)

// NoMove represents an invalid or null move.
const NoMove Move = 0

// NewMove encodes a move. promo is NoPiece for non-promotions.
func NewMove(from, to Square, piece, promo Piece, flags MoveFlags) Move {
	return Move(from) |
		Move(to)<<6 |
		Move(piece)<<12 |
		Move(promo)<<16 |
		Move(flags&flagMask)
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> 6) & 0x3F)
}

// Piece returns the moving piece.
func (m Move) Piece() Piece {
	return Piece((m >> 12) & 0xF)
}

// Promotion returns the promotion piece, or NoPiece.
func (m Move) Promotion() Piece {
	return Piece((m >> 16) & 0xF)
}

// Flags returns the flag bits of the move.
func (m Move) Flags() MoveFlags {
	return MoveFlags(m) & flagMask
}

// IsPromotion returns true if the move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.Promotion() != NoPiece
}

// IsCapture returns true if the move captures, including en passant.
func (m Move) IsCapture() bool {
	return MoveFlags(m)&FlagCapture != 0
}

// IsDoublePush returns true for a two-square pawn advance.
func (m Move) IsDoublePush() bool {
	return MoveFlags(m)&FlagDoublePush != 0
}

// IsEnPassant returns true for an en passant capture.
func (m Move) IsEnPassant() bool {
	return MoveFlags(m)&FlagEnPassant != 0
}

// IsCastling returns true for a castling move (encoded as the king's move).
func (m Move) IsCastling() bool {
	return MoveFlags(m)&FlagCastling != 0
}

// String returns the long algebraic form of the move (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}

	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += strings.ToLower(m.Promotion().String())
	}
	return s
}

// ParseMove resolves long algebraic text against the legal moves of b.
// Text that does not name exactly one legal move is rejected.
func ParseMove(b *Board, t *AttackTables, s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %q: %v", ErrInvalidMove, s, err)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %q: %v", ErrInvalidMove, s, err)
	}

	promo := NoPieceType
	if len(s) == 5 {
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("%w: invalid promotion piece %q", ErrInvalidMove, s[4])
		}
	}

	legal, err := b.LegalMoves(t)
	if err != nil {
		return NoMove, err
	}
	for _, m := range legal.Slice() {
		if m.From() == from && m.To() == to && m.Promotion().Type() == promo {
			return m, nil
		}
	}

	return NoMove, fmt.Errorf("%w: %s is not legal in this position", ErrInvalidMove, s)
}

// MaxMoves is the capacity of a MoveList.
const MaxMoves = 256

// MoveList is a fixed-size list of moves to avoid allocations.
type MoveList struct {
	moves [MaxMoves]Move
	count int
}

// Add appends a move. It refuses, returning false, once the list is full.
func (ml *MoveList) Add(m Move) bool {
	if ml.count >= MaxMoves {
		return false
	}
	ml.moves[ml.count] = m
	ml.count++
	return true
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Swap swaps two moves in the list.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

// Clear empties the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice backed by the list.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}
