package board

// Perft counts the leaf nodes of the legal move tree to the given depth.
// Each child is explored on a copy of the board, so b is left untouched.
func (b *Board) Perft(t *AttackTables, depth int) (uint64, error) {
	if depth <= 0 {
		return 1, nil
	}

	var ml MoveList
	if err := b.GeneratePseudoLegal(t, &ml); err != nil {
		return 0, err
	}

	var nodes uint64
	for _, m := range ml.Slice() {
		child := *b
		if !child.TryMove(t, m) {
			continue
		}
		if depth == 1 {
			nodes++
			continue
		}
		n, err := child.Perft(t, depth-1)
		if err != nil {
			return 0, err
		}
		nodes += n
	}
	return nodes, nil
}

// Divide returns the perft count below each legal root move.
func (b *Board) Divide(t *AttackTables, depth int) (map[Move]uint64, error) {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result, nil
	}

	var ml MoveList
	if err := b.GeneratePseudoLegal(t, &ml); err != nil {
		return nil, err
	}

	for _, m := range ml.Slice() {
		child := *b
		if !child.TryMove(t, m) {
			continue
		}
		n, err := child.Perft(t, depth-1)
		if err != nil {
			return nil, err
		}
		result[m] = n
	}
	return result, nil
}
