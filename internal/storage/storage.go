package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/hailam/chesscore/internal/board"
)

// Storage keys
const keyPrefix = "position/"

var (
	// ErrNotFound is returned when no position is stored under a name.
	ErrNotFound = errors.New("position not found")
	// ErrInvalidName is returned for names that cannot be used as keys.
	ErrInvalidName = errors.New("invalid position name")
)

var validName = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// SavedPosition is the stored record for one named position.
type SavedPosition struct {
	Name    string    `json:"name"`
	FEN     string    `json:"fen"`
	SavedAt time.Time `json:"saved_at"`
}

// Board parses the stored FEN.
func (p SavedPosition) Board() (board.Board, error) {
	return board.ParseFEN(p.FEN)
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// Open opens (creating if needed) the database in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Storage{db: db}, nil
}

// OpenDefault opens the database in the platform data directory.
func OpenDefault() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func positionKey(name string) ([]byte, error) {
	if !validName.MatchString(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return []byte(keyPrefix + name), nil
}

// Save stores b under name, replacing any earlier position with that name.
func (s *Storage) Save(name string, b *board.Board) error {
	key, err := positionKey(name)
	if err != nil {
		return err
	}

	data, err := json.Marshal(SavedPosition{
		Name:    name,
		FEN:     b.FEN(),
		SavedAt: time.Now(),
	})
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// Get returns the stored record for name.
func (s *Storage) Get(name string) (SavedPosition, error) {
	var saved SavedPosition

	key, err := positionKey(name)
	if err != nil {
		return saved, err
	}

	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &saved)
		})
	})

	return saved, err
}

// Load returns the board stored under name.
func (s *Storage) Load(name string) (board.Board, error) {
	saved, err := s.Get(name)
	if err != nil {
		return board.Board{}, err
	}
	return saved.Board()
}

// List returns the stored position names in sorted order.
func (s *Storage) List() ([]string, error) {
	var names []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			names = append(names, strings.TrimPrefix(key, keyPrefix))
		}
		return nil
	})

	return names, err
}

// Delete removes the position stored under name.
func (s *Storage) Delete(name string) error {
	key, err := positionKey(name)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: %s", ErrNotFound, name)
			}
			return err
		}
		return txn.Delete(key)
	})
}
