package board

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveCodecRoundTrip(t *testing.T) {
	flagSets := []MoveFlags{
		0,
		FlagCapture,
		FlagDoublePush,
		FlagCapture | FlagEnPassant,
		FlagCastling,
		FlagCapture | FlagDoublePush | FlagEnPassant | FlagCastling,
	}
	promos := []Piece{NoPiece, WhiteQueen, WhiteKnight, BlackRook, BlackBishop}

	for _, from := range []Square{A1, E2, H7, H8} {
		for _, to := range []Square{A8, D4, G1} {
			for piece := WhitePawn; piece <= BlackKing; piece++ {
				for _, promo := range promos {
					for _, flags := range flagSets {
						m := NewMove(from, to, piece, promo, flags)
						require.Equal(t, from, m.From())
						require.Equal(t, to, m.To())
						require.Equal(t, piece, m.Piece())
						require.Equal(t, promo, m.Promotion())
						require.Equal(t, flags, m.Flags())
						require.Equal(t, flags&FlagCapture != 0, m.IsCapture())
						require.Equal(t, flags&FlagDoublePush != 0, m.IsDoublePush())
						require.Equal(t, flags&FlagEnPassant != 0, m.IsEnPassant())
						require.Equal(t, flags&FlagCastling != 0, m.IsCastling())
						require.Equal(t, promo != NoPiece, m.IsPromotion())
					}
				}
			}
		}
	}
}

func TestMoveString(t *testing.T) {
	assert.Equal(t, "e2e4", NewMove(E2, E4, WhitePawn, NoPiece, FlagDoublePush).String())
	assert.Equal(t, "e7e8q", NewMove(E7, E8, WhitePawn, WhiteQueen, 0).String())
	assert.Equal(t, "b2a1n", NewMove(B2, A1, BlackPawn, BlackKnight, FlagCapture).String())
	assert.Equal(t, "e1g1", NewMove(E1, G1, WhiteKing, NoPiece, FlagCastling).String())
	assert.Equal(t, "0000", NoMove.String())
}

func TestParseMove(t *testing.T) {
	b := StartPosition()

	m, err := ParseMove(&b, testTables, "e2e4")
	require.NoError(t, err)
	assert.Equal(t, NewMove(E2, E4, WhitePawn, NoPiece, FlagDoublePush), m)

	m, err = ParseMove(&b, testTables, "g1f3")
	require.NoError(t, err)
	assert.Equal(t, WhiteKnight, m.Piece())

	for _, bad := range []string{"", "e2", "e2e5", "z9e4", "e1e2", "e2e4x", "e7e8q"} {
		_, err := ParseMove(&b, testTables, bad)
		assert.Truef(t, errors.Is(err, ErrInvalidMove), "%q: %v", bad, err)
	}

	promo, err := ParseFEN("8/4P1k1/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	m, err = ParseMove(&promo, testTables, "e7e8n")
	require.NoError(t, err)
	assert.Equal(t, WhiteKnight, m.Promotion())
}

func TestMoveListCapacity(t *testing.T) {
	var ml MoveList
	for i := 0; i < MaxMoves; i++ {
		require.True(t, ml.Add(Move(i+1)))
	}
	assert.False(t, ml.Add(Move(1000)))
	assert.Equal(t, MaxMoves, ml.Len())
	assert.True(t, ml.Contains(Move(MaxMoves)))
	assert.False(t, ml.Contains(Move(1000)))

	ml.Swap(0, 1)
	assert.Equal(t, Move(2), ml.Get(0))

	ml.Clear()
	assert.Equal(t, 0, ml.Len())
	assert.Empty(t, ml.Slice())
}

func TestGenerateFailsClosedWhenFull(t *testing.T) {
	b := StartPosition()
	var ml MoveList
	for i := 0; i < MaxMoves-5; i++ {
		ml.Add(Move(i + 1))
	}

	err := b.GeneratePseudoLegal(testTables, &ml)
	assert.ErrorIs(t, err, ErrMoveListFull)
	assert.Equal(t, MaxMoves, ml.Len())
}
