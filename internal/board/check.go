package board

// IsAttacked returns true if any piece of color by attacks sq.
// Each probe places the matching piece type on sq and intersects its
// attack set with by's pieces of that type; pawns probe with the opposite color.
func (b *Board) IsAttacked(t *AttackTables, sq Square, by Color) bool {
	occ := b.Occupancy[Both]

	if t.pawn[by.Other()][sq]&b.Pieces[NewPiece(Pawn, by)] != 0 {
		return true
	}
	if t.knight[sq]&b.Pieces[NewPiece(Knight, by)] != 0 {
		return true
	}
	if t.king[sq]&b.Pieces[NewPiece(King, by)] != 0 {
		return true
	}

	queens := b.Pieces[NewPiece(Queen, by)]
	if t.Bishop(sq, occ)&(b.Pieces[NewPiece(Bishop, by)]|queens) != 0 {
		return true
	}
	if t.Rook(sq, occ)&(b.Pieces[NewPiece(Rook, by)]|queens) != 0 {
		return true
	}

	return false
}

// InCheck returns true if the side to move's king is attacked.
func (b *Board) InCheck(t *AttackTables) bool {
	return b.kingAttacked(t, b.SideToMove)
}

// kingAttacked reports whether c's king is attacked by the other side.
// A board without a king for c reports false.
func (b *Board) kingAttacked(t *AttackTables, c Color) bool {
	ksq := b.KingSquare(c)
	if ksq == NoSquare {
		return false
	}
	return b.IsAttacked(t, ksq, c.Other())
}

// attackedSlow is IsAttacked without AttackTables, using the ray-cast slider
// attacks. Only meant for validating positions at the input boundary.
func (b *Board) attackedSlow(sq Square, by Color) bool {
	occ := b.Occupancy[Both]
	queens := b.Pieces[NewPiece(Queen, by)]

	switch {
	case pawnAttackMask(by.Other(), sq)&b.Pieces[NewPiece(Pawn, by)] != 0:
		return true
	case knightAttackMask(sq)&b.Pieces[NewPiece(Knight, by)] != 0:
		return true
	case kingAttackMask(sq)&b.Pieces[NewPiece(King, by)] != 0:
		return true
	case BishopAttacksSlow(sq, occ)&(b.Pieces[NewPiece(Bishop, by)]|queens) != 0:
		return true
	case RookAttacksSlow(sq, occ)&(b.Pieces[NewPiece(Rook, by)]|queens) != 0:
		return true
	}
	return false
}
