package board

// castlingPath describes one castling option: the squares that must be empty
// and the squares the king stands on, crosses or lands on, which must not be attacked.
type castlingPath struct {
	right    CastlingRights
	from, to Square
	empty    Bitboard
	safe     [3]Square
}

var castlingPaths = [2][2]castlingPath{
	White: {
		{WhiteKingSideCastle, E1, G1, SquareBB(F1) | SquareBB(G1), [3]Square{E1, F1, G1}},
		{WhiteQueenSideCastle, E1, C1, SquareBB(B1) | SquareBB(C1) | SquareBB(D1), [3]Square{E1, D1, C1}},
	},
	Black: {
		{BlackKingSideCastle, E8, G8, SquareBB(F8) | SquareBB(G8), [3]Square{E8, F8, G8}},
		{BlackQueenSideCastle, E8, C8, SquareBB(B8) | SquareBB(C8) | SquareBB(D8), [3]Square{E8, D8, C8}},
	},
}

var promotionTypes = [4]PieceType{Queen, Rook, Bishop, Knight}

// GeneratePseudoLegal appends every pseudo-legal move of the side to move to ml.
// Moves may leave the mover's king in check; callers filter them with TryMove.
// It returns ErrMoveListFull if ml runs out of room.
func (b *Board) GeneratePseudoLegal(t *AttackTables, ml *MoveList) error {
	us := b.SideToMove

	if err := b.generatePawnMoves(t, ml, us); err != nil {
		return err
	}

	for pt := Knight; pt <= King; pt++ {
		if err := b.generatePieceMoves(t, ml, us, pt); err != nil {
			return err
		}
	}

	return b.generateCastlingMoves(t, ml, us)
}

func add(ml *MoveList, m Move) error {
	if !ml.Add(m) {
		return ErrMoveListFull
	}
	return nil
}

// generatePieceMoves handles knights, sliders and the king through the attack dispatch.
func (b *Board) generatePieceMoves(t *AttackTables, ml *MoveList, us Color, pt PieceType) error {
	piece := NewPiece(pt, us)
	own := b.Occupancy[us]
	enemies := b.Occupancy[us.Other()]
	occupied := b.Occupancy[Both]

	pieces := b.Pieces[piece]
	for pieces != 0 {
		from := pieces.PopLSB()
		targets := t.Attacks(pt, us, from, occupied) &^ own
		for targets != 0 {
			to := targets.PopLSB()
			var flags MoveFlags
			if enemies.IsSet(to) {
				flags = FlagCapture
			}
			if err := add(ml, NewMove(from, to, piece, NoPiece, flags)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *Board) generatePawnMoves(t *AttackTables, ml *MoveList, us Color) error {
	piece := NewPiece(Pawn, us)
	enemies := b.Occupancy[us.Other()]
	occupied := b.Occupancy[Both]

	startRank, promoRank, dir := Rank2, Rank8, 8
	if us == Black {
		startRank, promoRank, dir = Rank7, Rank1, -8
	}

	pawns := b.Pieces[piece]
	for pawns != 0 {
		from := pawns.PopLSB()
		fromBB := SquareBB(from)

		one := Square(int(from) + dir)
		if !occupied.IsSet(one) {
			if err := addPawnMove(ml, piece, from, one, promoRank, 0); err != nil {
				return err
			}
			two := Square(int(one) + dir)
			if fromBB&startRank != 0 && !occupied.IsSet(two) {
				if err := add(ml, NewMove(from, two, piece, NoPiece, FlagDoublePush)); err != nil {
					return err
				}
			}
		}

		attacks := t.Pawn(us, from)
		captures := attacks & enemies
		for captures != 0 {
			to := captures.PopLSB()
			if err := addPawnMove(ml, piece, from, to, promoRank, FlagCapture); err != nil {
				return err
			}
		}

		if b.EnPassant != NoSquare && attacks.IsSet(b.EnPassant) {
			m := NewMove(from, b.EnPassant, piece, NoPiece, FlagCapture|FlagEnPassant)
			if err := add(ml, m); err != nil {
				return err
			}
		}
	}
	return nil
}

// addPawnMove adds a pawn move, expanding it into four promotions on the last rank.
func addPawnMove(ml *MoveList, piece Piece, from, to Square, promoRank Bitboard, flags MoveFlags) error {
	if SquareBB(to)&promoRank == 0 {
		return add(ml, NewMove(from, to, piece, NoPiece, flags))
	}
	for _, pt := range promotionTypes {
		if err := add(ml, NewMove(from, to, piece, NewPiece(pt, piece.Color()), flags)); err != nil {
			return err
		}
	}
	return nil
}

func (b *Board) generateCastlingMoves(t *AttackTables, ml *MoveList, us Color) error {
	king := NewPiece(King, us)
	them := us.Other()

	for _, path := range castlingPaths[us] {
		if b.Castling&path.right == 0 || b.Occupancy[Both]&path.empty != 0 {
			continue
		}
		rook := castlingRookMoves[path.to][0]
		if !b.Pieces[king].IsSet(path.from) || !b.Pieces[NewPiece(Rook, us)].IsSet(rook) {
			continue
		}
		attacked := false
		for _, sq := range path.safe {
			if b.IsAttacked(t, sq, them) {
				attacked = true
				break
			}
		}
		if attacked {
			continue
		}
		if err := add(ml, NewMove(path.from, path.to, king, NoPiece, FlagCastling)); err != nil {
			return err
		}
	}
	return nil
}
