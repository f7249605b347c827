package board

// castlingRevocation masks the castling rights whenever a move touches a
// square: moving from or capturing on a king or rook home square drops the
// rights that depend on it.
var castlingRevocation = func() [64]CastlingRights {
	var table [64]CastlingRights
	for sq := range table {
		table[sq] = AllCastling
	}
	table[A1] &^= WhiteQueenSideCastle
	table[E1] &^= WhiteKingSideCastle | WhiteQueenSideCastle
	table[H1] &^= WhiteKingSideCastle
	table[A8] &^= BlackQueenSideCastle
	table[E8] &^= BlackKingSideCastle | BlackQueenSideCastle
	table[H8] &^= BlackKingSideCastle
	return table
}()

// castlingRookMoves maps a castling king destination to the rook's from/to squares.
var castlingRookMoves = map[Square][2]Square{
	G1: {H1, F1},
	C1: {A1, D1},
	G8: {H8, F8},
	C8: {A8, D8},
}

// ApplyMove plays m on the board in place. It performs no legality checking:
// the caller must pass a move generated for this position.
func (b *Board) ApplyMove(m Move) {
	us := b.SideToMove
	them := us.Other()
	from, to := m.From(), m.To()
	piece := m.Piece()
	toBB := SquareBB(to)

	b.Pieces[piece] &^= SquareBB(from)
	b.Pieces[piece] |= toBB

	if m.IsCapture() {
		first, last := piecesOf(them)
		for p := first; p <= last; p++ {
			if b.Pieces[p]&toBB != 0 {
				b.Pieces[p] &^= toBB
				break
			}
		}
	}

	if promo := m.Promotion(); promo != NoPiece {
		b.Pieces[piece] &^= toBB
		b.Pieces[promo] |= toBB
	}

	if m.IsEnPassant() {
		if us == White {
			b.Pieces[BlackPawn] &^= SquareBB(to - 8)
		} else {
			b.Pieces[WhitePawn] &^= SquareBB(to + 8)
		}
	}

	b.EnPassant = NoSquare
	if m.IsDoublePush() {
		if us == White {
			b.EnPassant = to - 8
		} else {
			b.EnPassant = to + 8
		}
	}

	if m.IsCastling() {
		if rook, ok := castlingRookMoves[to]; ok {
			rookPiece := NewPiece(Rook, us)
			b.Pieces[rookPiece] &^= SquareBB(rook[0])
			b.Pieces[rookPiece] |= SquareBB(rook[1])
		}
	}

	b.Castling &= castlingRevocation[from]
	b.Castling &= castlingRevocation[to]

	b.updateOccupancy()

	if piece.Type() == Pawn || m.IsCapture() {
		b.HalfMoveClock = 0
	} else {
		b.HalfMoveClock++
	}
	if us == Black {
		b.FullMoveNumber++
	}

	b.SideToMove = them
	b.fen = ""
}

// TryMove applies m and keeps it only if the mover's king is not left in
// check. An illegal move leaves the board exactly as it was.
func (b *Board) TryMove(t *AttackTables, m Move) bool {
	saved := *b
	us := b.SideToMove
	b.ApplyMove(m)
	if b.kingAttacked(t, us) {
		*b = saved
		return false
	}
	return true
}
