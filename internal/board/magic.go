package board

// Magic bitboard data for sliding piece attacks.
// The constants are fixed input: a wrong entry is a silent collision that only
// the exhaustive lookup-vs-raycast test can reveal.

// BishopRelevantBits is the popcount of the bishop relevant-occupancy mask per square.
var BishopRelevantBits = [64]int{
	6, 5, 5, 5, 5, 5, 5, 6,
	5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 7, 7, 7, 7, 5, 5,
	5, 5, 7, 9, 9, 7, 5, 5,
	5, 5, 7, 9, 9, 7, 5, 5,
	5, 5, 7, 7, 7, 7, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5,
	6, 5, 5, 5, 5, 5, 5, 6,
}

// RookRelevantBits is the popcount of the rook relevant-occupancy mask per square.
var RookRelevantBits = [64]int{
	12, 11, 11, 11, 11, 11, 11, 12,
	11, 10, 10, 10, 10, 10, 10, 11,
	11, 10, 10, 10, 10, 10, 10, 11,
	11, 10, 10, 10, 10, 10, 10, 11,
	11, 10, 10, 10, 10, 10, 10, 11,
	11, 10, 10, 10, 10, 10, 10, 11,
	11, 10, 10, 10, 10, 10, 10, 11,
	12, 11, 11, 11, 11, 11, 11, 12,
}

// BishopMagics holds the bishop magic multipliers, indexed by square.
var BishopMagics = [64]uint64{
	0x0002020202020200, 0x0002020202020000, 0x0004010202000000, 0x0004040080000000,
	0x0001104000000000, 0x0000821040000000, 0x0000410410400000, 0x0000104104104000,
	0x0000040404040400, 0x0000020202020200, 0x0000040102020000, 0x0000040400800000,
	0x0000011040000000, 0x0000008210400000, 0x0000004104104000, 0x0000002082082000,
	0x0004000808080800, 0x0002000404040400, 0x0001000202020200, 0x0000800802004000,
	0x0000800400A00000, 0x0000200100884000, 0x0000400082082000, 0x0000200041041000,
	0x0002080010101000, 0x0001040008080800, 0x0000208004010400, 0x0000404004010200,
	0x0000840000802000, 0x0000404002011000, 0x0000808001041000, 0x0000404000820800,
	0x0001041000202000, 0x0000820800101000, 0x0000104400080800, 0x0000020080080080,
	0x0000404040040100, 0x0000808100020100, 0x0001010100020800, 0x0000808080010400,
	0x0000820820004000, 0x0000410410002000, 0x0000082088001000, 0x0000002011000800,
	0x0000080100400400, 0x0001010101000200, 0x0002020202000400, 0x0001010101000200,
	0x0000410410400000, 0x0000208208200000, 0x0000002084100000, 0x0000000020880000,
	0x0000001002020000, 0x0000040408020000, 0x0004040404040000, 0x0002020202020000,
	0x0000104104104000, 0x0000002082082000, 0x0000000020841000, 0x0000000000208800,
	0x0000000010020200, 0x0000000404080200, 0x0000040404040400, 0x0002020202020200,
}

// RookMagics holds the rook magic multipliers, indexed by square.
var RookMagics = [64]uint64{
	0x0080001020400080, 0x0040001000200040, 0x0080081000200080, 0x0080040800100080,
	0x0080020400080080, 0x0080010200040080, 0x0080008001000200, 0x0080002040800100,
	0x0000800020400080, 0x0000400020005000, 0x0000801000200080, 0x0000800800100080,
	0x0000800400080080, 0x0000800200040080, 0x0000800100020080, 0x0000800040800100,
	0x0000208000400080, 0x0000404000201000, 0x0000808010002000, 0x0000808008001000,
	0x0000808004000800, 0x0000808002000400, 0x0000010100020004, 0x0000020000408104,
	0x0000208080004000, 0x0000200040005000, 0x0000100080200080, 0x0000080080100080,
	0x0000040080080080, 0x0000020080040080, 0x0000010080800200, 0x0000800080004100,
	0x0000204000800080, 0x0000200040401000, 0x0000100080802000, 0x0000080080801000,
	0x0000040080800800, 0x0000020080800400, 0x0000020001010004, 0x0000800040800100,
	0x0000204000808000, 0x0000200040008080, 0x0000100020008080, 0x0000080010008080,
	0x0000040008008080, 0x0000020004008080, 0x0000010002008080, 0x0000004081020004,
	0x0000204000800080, 0x0000200040008080, 0x0000100020008080, 0x0000080010008080,
	0x0000040008008080, 0x0000020004008080, 0x0000800100020080, 0x0000800041000080,
	0x00FFFCDDFCED714A, 0x007FFCDDFCED714A, 0x003FFFCDFFD88096, 0x0000040810002101,
	0x0001000204080011, 0x0001000204000801, 0x0001000082000401, 0x0001FFFAABFAD1A2,
}

// BishopMask returns the relevant occupancy mask for a bishop on sq.
// Edge squares are excluded since a blocker there never changes the attack set.
func BishopMask(sq Square) Bitboard {
	var mask Bitboard
	file, rank := sq.File(), sq.Rank()

	for f, r := file+1, rank+1; f <= 6 && r <= 6; f, r = f+1, r+1 {
		mask |= SquareBB(NewSquare(f, r))
	}
	for f, r := file-1, rank+1; f >= 1 && r <= 6; f, r = f-1, r+1 {
		mask |= SquareBB(NewSquare(f, r))
	}
	for f, r := file+1, rank-1; f <= 6 && r >= 1; f, r = f+1, r-1 {
		mask |= SquareBB(NewSquare(f, r))
	}
	for f, r := file-1, rank-1; f >= 1 && r >= 1; f, r = f-1, r-1 {
		mask |= SquareBB(NewSquare(f, r))
	}

	return mask
}

// RookMask returns the relevant occupancy mask for a rook on sq.
func RookMask(sq Square) Bitboard {
	var mask Bitboard
	file, rank := sq.File(), sq.Rank()

	for r := rank + 1; r <= 6; r++ {
		mask |= SquareBB(NewSquare(file, r))
	}
	for r := rank - 1; r >= 1; r-- {
		mask |= SquareBB(NewSquare(file, r))
	}
	for f := file + 1; f <= 6; f++ {
		mask |= SquareBB(NewSquare(f, rank))
	}
	for f := file - 1; f >= 1; f-- {
		mask |= SquareBB(NewSquare(f, rank))
	}

	return mask
}

// SetOccupancy maps index (0..2^bits-1) onto a subset of mask: bit i of the
// index selects the i-th lowest square of the mask.
func SetOccupancy(index, bits int, mask Bitboard) Bitboard {
	var occ Bitboard
	for i := 0; i < bits; i++ {
		sq := mask.PopLSB()
		if index&(1<<i) != 0 {
			occ |= SquareBB(sq)
		}
	}
	return occ
}

// BishopAttacksSlow computes bishop attacks by ray casting until a blocker or the edge.
func BishopAttacksSlow(sq Square, occupied Bitboard) Bitboard {
	var attacks Bitboard
	file, rank := sq.File(), sq.Rank()

	for f, r := file+1, rank+1; f <= 7 && r <= 7; f, r = f+1, r+1 {
		s := SquareBB(NewSquare(f, r))
		attacks |= s
		if occupied&s != 0 {
			break
		}
	}
	for f, r := file-1, rank+1; f >= 0 && r <= 7; f, r = f-1, r+1 {
		s := SquareBB(NewSquare(f, r))
		attacks |= s
		if occupied&s != 0 {
			break
		}
	}
	for f, r := file+1, rank-1; f <= 7 && r >= 0; f, r = f+1, r-1 {
		s := SquareBB(NewSquare(f, r))
		attacks |= s
		if occupied&s != 0 {
			break
		}
	}
	for f, r := file-1, rank-1; f >= 0 && r >= 0; f, r = f-1, r-1 {
		s := SquareBB(NewSquare(f, r))
		attacks |= s
		if occupied&s != 0 {
			break
		}
	}

	return attacks
}

// RookAttacksSlow computes rook attacks by ray casting until a blocker or the edge.
func RookAttacksSlow(sq Square, occupied Bitboard) Bitboard {
	var attacks Bitboard
	file, rank := sq.File(), sq.Rank()

	for r := rank + 1; r <= 7; r++ {
		s := SquareBB(NewSquare(file, r))
		attacks |= s
		if occupied&s != 0 {
			break
		}
	}
	for r := rank - 1; r >= 0; r-- {
		s := SquareBB(NewSquare(file, r))
		attacks |= s
		if occupied&s != 0 {
			break
		}
	}
	for f := file + 1; f <= 7; f++ {
		s := SquareBB(NewSquare(f, rank))
		attacks |= s
		if occupied&s != 0 {
			break
		}
	}
	for f := file - 1; f >= 0; f-- {
		s := SquareBB(NewSquare(f, rank))
		attacks |= s
		if occupied&s != 0 {
			break
		}
	}

	return attacks
}

// magicIndex hashes a masked occupancy into a dense table index.
func magicIndex(occ Bitboard, magic uint64, bits int) uint64 {
	return (uint64(occ) * magic) >> (64 - uint(bits))
}
