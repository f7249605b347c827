package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/chesscore/internal/storage"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CHESSCORE_LOG_LEVEL", "error")
	var out bytes.Buffer
	err := run(context.Background(), args, &out)
	return out.String(), err
}

func TestPerftCommand(t *testing.T) {
	out, err := runCLI(t, "perft", "-depth", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "nodes 8902")
}

func TestDivideCommand(t *testing.T) {
	out, err := runCLI(t, "divide", "-depth", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "e2e4: 20")
	assert.Contains(t, out, "moves 20")
	assert.Contains(t, out, "nodes 400")
}

func TestSuiteCommand(t *testing.T) {
	suite := filepath.Join("..", "..", "internal", "perftsuite", "testdata", "standard.yaml")
	out, err := runCLI(t, "suite", "-file", suite, "-depth", "2")
	require.NoError(t, err)
	assert.Equal(t, 10, strings.Count(out, "ok "))
	assert.NotContains(t, out, "FAIL")
}

func TestMovesCommand(t *testing.T) {
	out, err := runCLI(t, "moves", "-fen", "R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	require.NoError(t, err)
	assert.Equal(t, "checkmate\n", out)

	out, err = runCLI(t, "moves")
	require.NoError(t, err)
	assert.Equal(t, 20, len(strings.Fields(out)))
}

func TestSearchCommand(t *testing.T) {
	out, err := runCLI(t, "search", "-fen", "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", "-depth", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "info depth 1")
	assert.Contains(t, out, "Mate in 1")
	assert.Contains(t, out, "bestmove a1a8")

	out, err = runCLI(t, "search", "-fen", "7k/8/6Q1/8/8/8/8/K7 b - - 0 1", "-depth", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "bestmove (none) stalemate")
}

func TestEvalCommand(t *testing.T) {
	out, err := runCLI(t, "eval")
	require.NoError(t, err)
	assert.Contains(t, out, "eval 0")
	assert.Contains(t, out, "material 0")
}

func TestStoreCommands(t *testing.T) {
	t.Setenv("CHESSCORE_STORE_DIR", t.TempDir())
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

	_, err := runCLI(t, "save", "-name", "kiwipete", "-fen", fen)
	require.NoError(t, err)
	_, err = runCLI(t, "save", "-name", "start")
	require.NoError(t, err)

	out, err := runCLI(t, "load", "-name", "kiwipete")
	require.NoError(t, err)
	assert.Equal(t, fen+"\n", out)

	out, err = runCLI(t, "list")
	require.NoError(t, err)
	assert.Equal(t, "kiwipete\nstart\n", out)

	_, err = runCLI(t, "delete", "-name", "start")
	require.NoError(t, err)
	_, err = runCLI(t, "load", "-name", "start")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestConfigFileSetsDepth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chesscore.yaml")
	require.NoError(t, os.WriteFile(path, []byte("depth: 2\n"), 0644))

	out, err := runCLI(t, "-config", path, "search")
	require.NoError(t, err)
	assert.Contains(t, out, "info depth 2")
	assert.NotContains(t, out, "info depth 3")
}

func TestUsageErrors(t *testing.T) {
	for _, args := range [][]string{
		{},
		{"fly"},
		{"perft", "-bogus"},
		{"perft", "extra"},
		{"suite"},
	} {
		_, err := runCLI(t, args...)
		assert.ErrorIs(t, err, errUsage, "%v", args)
	}

	_, err := runCLI(t, "perft", "-fen", "not a fen")
	assert.Error(t, err)
}
