package engine

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/chesscore/internal/board"
)

var testTables = board.NewAttackTables()

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func mustParse(t *testing.T, fen string) board.Board {
	t.Helper()
	b, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("Failed to parse FEN %q: %v", fen, err)
	}
	return b
}

func TestSearchBasic(t *testing.T) {
	is := is.New(t)
	pos := board.StartPosition()

	res, err := Search(pos, testTables, 3)
	is.NoErr(err)
	is.True(res.Move != board.NoMove) // search returned NoMove for starting position
	is.Equal(res.Depth, 3)
	is.True(res.Nodes > 0)
	is.True(res.Moves > 0)
	is.True(len(res.PV) > 0)
	is.Equal(res.PV[0], res.Move)

	legal, err := pos.LegalMoves(testTables)
	is.NoErr(err)
	is.True(legal.Contains(res.Move)) // best move must be legal
	is.Equal(pos.FEN(), board.StartFEN) // caller's board untouched

	t.Logf("Best move: %s score %s pv %s", res.Move, ScoreString(res.Score), res.PVString())
}

func TestMateInOne(t *testing.T) {
	is := is.New(t)
	pos := mustParse(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")

	res, err := Search(pos, testTables, 3)
	is.NoErr(err)
	is.Equal(res.Move.String(), "a1a8")
	is.Equal(res.Score, MateValue-1)
	is.Equal(res.Mate, 1)
	is.Equal(ScoreString(res.Score), "Mate in 1")
}

func TestMatedRootScoresMate(t *testing.T) {
	is := is.New(t)
	pos := mustParse(t, "R6k/6pp/8/8/8/8/8/K7 b - - 0 1")

	res, err := Search(pos, testTables, 2)
	is.NoErr(err)
	is.Equal(res.Move, board.NoMove)
	is.Equal(res.Score, -MateValue)
	is.Equal(len(res.PV), 0)
}

func TestStalemateScoresZero(t *testing.T) {
	is := is.New(t)
	pos := mustParse(t, "7k/8/6Q1/8/8/8/8/K7 b - - 0 1")

	res, err := Search(pos, testTables, 3)
	is.NoErr(err)
	is.Equal(res.Move, board.NoMove)
	is.Equal(res.Score, 0)
	is.Equal(res.Mate, 0)
}

func TestAvoidsStalemateWhenWinning(t *testing.T) {
	is := is.New(t)
	// Qg6 would stalemate; every other safe queen move keeps a winning score.
	pos := mustParse(t, "7k/8/8/6Q1/8/8/8/K7 w - - 0 1")

	res, err := Search(pos, testTables, 3)
	is.NoErr(err)
	is.True(res.Move.String() != "g5g6") // stalemating move chosen
	is.True(res.Score > 0)
}

func TestQuiescenceWinsHangingQueen(t *testing.T) {
	is := is.New(t)
	pos := mustParse(t, "4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1")

	res, err := Search(pos, testTables, 1)
	is.NoErr(err)
	is.Equal(res.Move.String(), "e4d5")
}

func TestSearchDeterministic(t *testing.T) {
	is := is.New(t)
	pos := mustParse(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")

	first, err := Search(pos, testTables, 3)
	is.NoErr(err)
	for i := 0; i < 3; i++ {
		again, err := Search(pos, testTables, 3)
		is.NoErr(err)
		is.Equal(again.Move, first.Move)
		is.Equal(again.Score, first.Score)
		is.Equal(again.Nodes, first.Nodes)
		is.Equal(again.PV, first.PV)
	}
}

// Searches on separate goroutines share one set of attack tables.
func TestConcurrentSearchesShareTables(t *testing.T) {
	is := is.New(t)
	fens := []string{
		board.StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1",
	}

	want := make([]Result, len(fens))
	for i, fen := range fens {
		res, err := Search(mustParse(t, fen), testTables, 3)
		is.NoErr(err)
		want[i] = res
	}

	got := make([]Result, len(fens))
	g, _ := errgroup.WithContext(context.Background())
	for i, fen := range fens {
		pos := mustParse(t, fen)
		g.Go(func() error {
			res, err := Search(pos, testTables, 3)
			got[i] = res
			return err
		})
	}
	is.NoErr(g.Wait())

	for i := range fens {
		is.Equal(got[i].Move, want[i].Move)
		is.Equal(got[i].Score, want[i].Score)
		is.Equal(got[i].Nodes, want[i].Nodes)
	}
}

func TestInvalidDepth(t *testing.T) {
	is := is.New(t)
	pos := board.StartPosition()

	for _, depth := range []int{0, -1, MaxPly + 1} {
		_, err := Search(pos, testTables, depth)
		is.True(errors.Is(err, ErrInvalidDepth))
	}
}

func TestOnInfoReportsEveryIteration(t *testing.T) {
	is := is.New(t)
	eng := NewEngine(testTables)

	var depths []int
	eng.OnInfo = func(info SearchInfo) {
		depths = append(depths, info.Depth)
		is.True(len(info.PV) > 0)
	}

	_, err := eng.Search(board.StartPosition(), 4)
	is.NoErr(err)
	is.Equal(depths, []int{1, 2, 3, 4})
}

// At the ply limit the search falls back to the static evaluation.
func TestMaxPlyFailsClosed(t *testing.T) {
	is := is.New(t)
	pos := mustParse(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")

	sc := NewSearchContext(pos, testTables)
	sc.ply = MaxPly
	is.Equal(sc.negamax(-Infinity, Infinity, 5), Evaluate(&pos))
	is.Equal(sc.quiescence(-Infinity, Infinity), Evaluate(&pos))
	is.Equal(sc.Nodes(), uint64(1)) // only the quiescence entry counts
}

func TestEvaluateSymmetric(t *testing.T) {
	is := is.New(t)

	start := board.StartPosition()
	is.Equal(Evaluate(&start), 0)

	// The same position with colors swapped and mirrored scores the same for the mover.
	white := mustParse(t, "4k3/8/8/8/4P3/2N5/8/4K3 w - - 0 1")
	black := mustParse(t, "4k3/8/2n5/4p3/8/8/8/4K3 b - - 0 1")
	is.Equal(Evaluate(&white), Evaluate(&black))
	is.True(Evaluate(&white) > 0)

	// Flipping only the side to move negates the score.
	whiteToMove := mustParse(t, "4k3/8/8/8/4P3/2N5/8/4K3 b - - 0 1")
	is.Equal(Evaluate(&whiteToMove), -Evaluate(&white))
}

func TestEvaluateMaterial(t *testing.T) {
	is := is.New(t)
	pos := mustParse(t, "4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1")
	is.Equal(EvaluateMaterial(&pos), PawnValue-QueenValue)
}

func TestMvvLvaOrdering(t *testing.T) {
	is := is.New(t)
	is.Equal(mvvLva[board.Pawn][board.Pawn], 105)
	is.Equal(mvvLva[board.Pawn][board.Queen], 505)
	is.Equal(mvvLva[board.King][board.Pawn], 100)
	is.True(mvvLva[board.Pawn][board.Queen] > mvvLva[board.Queen][board.Queen])
	is.True(mvvLva[board.Queen][board.Rook] > mvvLva[board.Pawn][board.Bishop])
}

func TestScoreMoveOrder(t *testing.T) {
	is := is.New(t)
	pos := mustParse(t, "4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1")
	sc := NewSearchContext(pos, testTables)

	capture := board.NewMove(board.E4, board.D5, board.WhitePawn, board.NoPiece, board.FlagCapture)
	killer := board.NewMove(board.E1, board.D1, board.WhiteKing, board.NoPiece, 0)
	second := board.NewMove(board.E1, board.F1, board.WhiteKing, board.NoPiece, 0)
	quiet := board.NewMove(board.E1, board.E2, board.WhiteKing, board.NoPiece, 0)

	sc.storeKiller(second)
	sc.storeKiller(killer)
	sc.updateHistory(quiet, 3)

	is.Equal(sc.scoreMove(capture), CaptureBase+505)
	is.Equal(sc.scoreMove(killer), KillerScore1)
	is.Equal(sc.scoreMove(second), KillerScore2)
	is.Equal(sc.scoreMove(quiet), 3)

	sc.pvTable[0][0] = quiet
	sc.scorePV = true
	is.Equal(sc.scoreMove(quiet), PVMoveScore)
	is.True(!sc.scorePV) // PV bonus is used once
}

func TestScoreString(t *testing.T) {
	is := is.New(t)
	is.Equal(ScoreString(0), "0.00")
	is.Equal(ScoreString(135), "1.35")
	is.Equal(ScoreString(-7), "-0.07")
	is.Equal(ScoreString(MateValue-1), "Mate in 1")
	is.Equal(ScoreString(MateValue-3), "Mate in 2")
	is.Equal(ScoreString(-MateValue+2), "Mated in 1")
}

func TestPVString(t *testing.T) {
	is := is.New(t)
	res := Result{PV: []board.Move{
		board.NewMove(board.E2, board.E4, board.WhitePawn, board.NoPiece, board.FlagDoublePush),
		board.NewMove(board.E7, board.E5, board.BlackPawn, board.NoPiece, board.FlagDoublePush),
	}}
	is.Equal(res.PVString(), "e2e4 e7e5")
	is.Equal(Result{}.PVString(), "")
}

func BenchmarkSearchStart4(b *testing.B) {
	pos := board.StartPosition()
	for i := 0; i < b.N; i++ {
		_, _ = Search(pos, testTables, 4)
	}
}
