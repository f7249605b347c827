package board

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3",
	}

	for _, fen := range fens {
		b, err := ParseFEN(fen)
		require.NoError(t, err, fen)
		assert.Equal(t, fen, b.FEN())
		require.NoError(t, b.Validate())

		again, err := ParseFEN(b.FEN())
		require.NoError(t, err)
		assert.Equal(t, b, again)
	}
}

func TestParseFENOptionalClocks(t *testing.T) {
	b, err := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -")
	require.NoError(t, err)
	assert.Equal(t, 0, b.HalfMoveClock)
	assert.Equal(t, 1, b.FullMoveNumber)
	assert.Equal(t, StartFEN, b.FEN())
}

func TestParseFENRejects(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQxq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KKkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e4 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0",
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/ppppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/pppxpppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbq1bnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQ - 0 1",
		"Pnbqkbnr/pppppppp/8/8/8/8/1PPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1 extra",
	}

	for _, fen := range bad {
		_, err := ParseFEN(fen)
		assert.Truef(t, errors.Is(err, ErrInvalidFEN), "%q: %v", fen, err)
	}
}

func TestParseFENRejectsImpossibleEnPassant(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"wrong rank for side to move", "4k3/8/8/8/8/8/3P4/4K3 w - e3 0 1"},
		{"no pawn to capture", "4k3/8/8/8/8/8/3P4/4K3 b - e3 0 1"},
		{"target square occupied", "4k3/8/4n3/4p3/8/8/8/4K3 w - e6 0 1"},
		{"origin square occupied", "4k3/4n3/8/4p3/8/8/8/4K3 w - e6 0 1"},
		{"own pawn behind target", "4k3/8/8/4P3/8/8/8/4K3 w - e6 0 1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseFEN(tc.fen)
			assert.ErrorIs(t, err, ErrInvalidFEN)
		})
	}

	b, err := ParseFEN("4k3/8/8/4p3/8/8/8/4K3 w - e6 0 1")
	require.NoError(t, err)
	assert.Equal(t, E6, b.EnPassant)
}

func TestParseFENRejectsWaitingSideInCheck(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"rook", "4k2R/8/8/8/8/8/8/4K3 w - - 0 1"},
		{"knight", "4k3/8/3N4/8/8/8/8/4K3 w - - 0 1"},
		{"pawn", "4k3/3P4/8/8/8/8/8/4K3 w - - 0 1"},
		{"bishop", "4k3/8/8/8/B7/8/8/4K3 w - - 0 1"},
		{"queen against white", "4k3/8/8/8/8/8/8/q3K3 b - - 0 1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseFEN(tc.fen)
			assert.ErrorIs(t, err, ErrInvalidFEN)
		})
	}

	// The side to move may be in check.
	_, err := ParseFEN("4k2R/8/8/8/8/8/8/4K3 b - - 0 1")
	assert.NoError(t, err)
}

func TestBoardOccupancyDerivedFromPieces(t *testing.T) {
	b := StartPosition()
	assert.Equal(t, Rank1|Rank2, b.Occupancy[White])
	assert.Equal(t, Rank7|Rank8, b.Occupancy[Black])
	assert.Equal(t, 32, b.Occupancy[Both].PopCount())
	assert.Equal(t, E1, b.KingSquare(White))
	assert.Equal(t, E8, b.KingSquare(Black))
	assert.Equal(t, WhiteQueen, b.PieceAt(D1))
	assert.Equal(t, NoPiece, b.PieceAt(E4))
}

func TestSetPieceClearsCachedFEN(t *testing.T) {
	b := StartPosition()
	b.SetPiece(WhiteQueen, E4)
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/4Q3/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", b.FEN())
}
