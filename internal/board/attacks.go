package board

// AttackTables holds the precomputed attack sets for every piece and square.
// Built once by NewAttackTables and never written afterwards, so a single
// instance can be shared by any number of concurrent searches.
type AttackTables struct {
	pawn   [2][64]Bitboard // [Color][Square]
	knight [64]Bitboard
	king   [64]Bitboard

	bishopMasks [64]Bitboard
	rookMasks   [64]Bitboard

	// Dense per-square tables indexed by the magic hash.
	bishop [64][512]Bitboard
	rook   [64][4096]Bitboard
}

// NewAttackTables builds the leaper and magic slider tables.
// Construction is total and deterministic.
func NewAttackTables() *AttackTables {
	t := &AttackTables{}
	t.initLeapers()
	t.initSliders()
	return t
}

func (t *AttackTables) initLeapers() {
	for sq := A1; sq <= H8; sq++ {
		t.pawn[White][sq] = pawnAttackMask(White, sq)
		t.pawn[Black][sq] = pawnAttackMask(Black, sq)
		t.knight[sq] = knightAttackMask(sq)
		t.king[sq] = kingAttackMask(sq)
	}
}

func pawnAttackMask(c Color, sq Square) Bitboard {
	bb := SquareBB(sq)
	if c == White {
		return bb.NorthEast() | bb.NorthWest()
	}
	return bb.SouthEast() | bb.SouthWest()
}

func knightAttackMask(sq Square) Bitboard {
	bb := SquareBB(sq)
	knight := (bb << 17) & NotFileA
	knight |= (bb << 15) & NotFileH
	knight |= (bb >> 17) & NotFileH
	knight |= (bb >> 15) & NotFileA
	knight |= (bb << 10) & NotFileAB
	knight |= (bb << 6) & NotFileGH
	knight |= (bb >> 10) & NotFileGH
	knight |= (bb >> 6) & NotFileAB
	return knight
}

func kingAttackMask(sq Square) Bitboard {
	bb := SquareBB(sq)
	king := bb.North() | bb.South() | bb.East() | bb.West()
	return king | bb.NorthEast() | bb.NorthWest() | bb.SouthEast() | bb.SouthWest()
}

func (t *AttackTables) initSliders() {
	for sq := A1; sq <= H8; sq++ {
		mask := BishopMask(sq)
		bits := BishopRelevantBits[sq]
		t.bishopMasks[sq] = mask
		for i := 0; i < 1<<bits; i++ {
			occ := SetOccupancy(i, bits, mask)
			t.bishop[sq][magicIndex(occ, BishopMagics[sq], bits)] = BishopAttacksSlow(sq, occ)
		}

		mask = RookMask(sq)
		bits = RookRelevantBits[sq]
		t.rookMasks[sq] = mask
		for i := 0; i < 1<<bits; i++ {
			occ := SetOccupancy(i, bits, mask)
			t.rook[sq][magicIndex(occ, RookMagics[sq], bits)] = RookAttacksSlow(sq, occ)
		}
	}
}

// Pawn returns the squares a pawn of color c on sq attacks.
func (t *AttackTables) Pawn(c Color, sq Square) Bitboard {
	return t.pawn[c][sq]
}

// Knight returns the knight attack set for sq.
func (t *AttackTables) Knight(sq Square) Bitboard {
	return t.knight[sq]
}

// King returns the king attack set for sq.
func (t *AttackTables) King(sq Square) Bitboard {
	return t.king[sq]
}

// Bishop returns the bishop attack set for sq given the board occupancy.
func (t *AttackTables) Bishop(sq Square, occupied Bitboard) Bitboard {
	occ := occupied & t.bishopMasks[sq]
	return t.bishop[sq][magicIndex(occ, BishopMagics[sq], BishopRelevantBits[sq])]
}

// Rook returns the rook attack set for sq given the board occupancy.
func (t *AttackTables) Rook(sq Square, occupied Bitboard) Bitboard {
	occ := occupied & t.rookMasks[sq]
	return t.rook[sq][magicIndex(occ, RookMagics[sq], RookRelevantBits[sq])]
}

// Queen returns the union of the bishop and rook lookups at the same occupancy.
func (t *AttackTables) Queen(sq Square, occupied Bitboard) Bitboard {
	return t.Bishop(sq, occupied) | t.Rook(sq, occupied)
}

// attackFunc yields the attack set of one piece kind.
type attackFunc func(t *AttackTables, c Color, sq Square, occupied Bitboard) Bitboard

var attackFuncs = [6]attackFunc{
	Pawn:   func(t *AttackTables, c Color, sq Square, _ Bitboard) Bitboard { return t.pawn[c][sq] },
	Knight: func(t *AttackTables, _ Color, sq Square, _ Bitboard) Bitboard { return t.knight[sq] },
	Bishop: func(t *AttackTables, _ Color, sq Square, occ Bitboard) Bitboard { return t.Bishop(sq, occ) },
	Rook:   func(t *AttackTables, _ Color, sq Square, occ Bitboard) Bitboard { return t.Rook(sq, occ) },
	Queen:  func(t *AttackTables, _ Color, sq Square, occ Bitboard) Bitboard { return t.Queen(sq, occ) },
	King:   func(t *AttackTables, _ Color, sq Square, _ Bitboard) Bitboard { return t.king[sq] },
}

// Attacks returns the attack set of a piece of type pt and color c on sq.
// The color only matters for pawns.
func (t *AttackTables) Attacks(pt PieceType, c Color, sq Square, occupied Bitboard) Bitboard {
	return attackFuncs[pt](t, c, sq, occupied)
}
