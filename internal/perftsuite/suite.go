// Package perftsuite runs perft regression suites described in YAML files.
package perftsuite

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/hailam/chesscore/internal/board"
)

// ErrInvalidSuite is returned for suites that cannot be run.
var ErrInvalidSuite = errors.New("invalid perft suite")

// Case is one position with its expected node counts keyed by depth.
type Case struct {
	Name   string         `yaml:"name"`
	FEN    string         `yaml:"fen"`
	Depths map[int]uint64 `yaml:"depths"`
}

// Suite is a list of perft cases.
type Suite struct {
	Cases []Case `yaml:"cases"`
}

// Load decodes a suite from YAML and validates every case.
func Load(r io.Reader) (*Suite, error) {
	var s Suite
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSuite, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile reads a suite from a YAML file.
func LoadFile(path string) (*Suite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Validate checks names, FENs and depths.
func (s *Suite) Validate() error {
	if len(s.Cases) == 0 {
		return fmt.Errorf("%w: no cases", ErrInvalidSuite)
	}

	seen := make(map[string]bool, len(s.Cases))
	for i, c := range s.Cases {
		if c.Name == "" {
			return fmt.Errorf("%w: case %d has no name", ErrInvalidSuite, i)
		}
		if seen[c.Name] {
			return fmt.Errorf("%w: duplicate case %q", ErrInvalidSuite, c.Name)
		}
		seen[c.Name] = true

		if _, err := board.ParseFEN(c.FEN); err != nil {
			return fmt.Errorf("%w: case %q: %v", ErrInvalidSuite, c.Name, err)
		}
		if len(c.Depths) == 0 {
			return fmt.Errorf("%w: case %q has no depths", ErrInvalidSuite, c.Name)
		}
		for d := range c.Depths {
			if d < 1 {
				return fmt.Errorf("%w: case %q has depth %d", ErrInvalidSuite, c.Name, d)
			}
		}
	}
	return nil
}

// sortedDepths returns the depths of c up to maxDepth in ascending order.
// A maxDepth of zero or less keeps every depth.
func (c Case) sortedDepths(maxDepth int) []int {
	depths := make([]int, 0, len(c.Depths))
	for d := range c.Depths {
		if maxDepth > 0 && d > maxDepth {
			continue
		}
		depths = append(depths, d)
	}
	sort.Ints(depths)
	return depths
}
