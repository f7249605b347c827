package board

// LegalMoves returns the moves of the side to move that do not leave its own
// king in check. Each pseudo-legal move is tried on a copy of the board.
func (b *Board) LegalMoves(t *AttackTables) (*MoveList, error) {
	var pseudo MoveList
	if err := b.GeneratePseudoLegal(t, &pseudo); err != nil {
		return nil, err
	}

	legal := &MoveList{}
	for _, m := range pseudo.Slice() {
		trial := *b
		if trial.TryMove(t, m) {
			legal.Add(m)
		}
	}
	return legal, nil
}

// HasLegalMoves returns true if the side to move has at least one legal move.
func (b *Board) HasLegalMoves(t *AttackTables) bool {
	var pseudo MoveList
	// A full list still holds moves worth trying.
	_ = b.GeneratePseudoLegal(t, &pseudo)

	for _, m := range pseudo.Slice() {
		trial := *b
		if trial.TryMove(t, m) {
			return true
		}
	}
	return false
}

// IsCheckmate returns true if the side to move is in check and has no legal moves.
func (b *Board) IsCheckmate(t *AttackTables) bool {
	return b.InCheck(t) && !b.HasLegalMoves(t)
}

// IsStalemate returns true if the side to move is not in check but has no legal moves.
func (b *Board) IsStalemate(t *AttackTables) bool {
	return !b.InCheck(t) && !b.HasLegalMoves(t)
}
