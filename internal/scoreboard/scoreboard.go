// Package scoreboard keeps the best final scores, optionally persisted to disk.
package scoreboard

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Entry is one finished game on the table.
type Entry struct {
	Username string    `msgpack:"username"`
	Score    int       `msgpack:"score"`
	At       time.Time `msgpack:"at"`
}

// file is the on-disk layout.
type file struct {
	Version int     `msgpack:"version"`
	Entries []Entry `msgpack:"entries"`
}

const fileVersion = 1

// Board keeps the top entries, best first. Equal scores keep the earlier game
// ahead. Safe for concurrent use.
type Board struct {
	mu       sync.RWMutex
	capacity int
	entries  []Entry
	path     string // Empty for memory-only boards
}

// New creates an in-memory board holding up to capacity entries.
func New(capacity int) *Board {
	if capacity < 1 {
		capacity = 1
	}
	return &Board{capacity: capacity}
}

// Open creates a board backed by path, loading it if the file exists.
func Open(path string, capacity int) (*Board, error) {
	b := New(capacity)
	b.path = path

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return b, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read scoreboard: %w", err)
	}

	var f file
	if err := msgpack.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode scoreboard %s: %w", path, err)
	}
	if f.Version != fileVersion {
		return nil, fmt.Errorf("unsupported scoreboard version %d", f.Version)
	}
	for _, e := range f.Entries {
		b.insertLocked(e)
	}
	return b, nil
}

// Record adds a finished game. It returns the entry's rank (1-based), or 0 if
// the score did not make the table. Persisted boards are saved on every
// change; a save error leaves the in-memory table updated.
func (b *Board) Record(username string, score int, at time.Time) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	rank := b.insertLocked(Entry{Username: username, Score: score, At: at})
	if rank == 0 || b.path == "" {
		return rank, nil
	}
	return rank, b.saveLocked()
}

// Top returns up to n entries, best first.
func (b *Board) Top(n int) []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if n > len(b.entries) || n < 0 {
		n = len(b.entries)
	}
	out := make([]Entry, n)
	copy(out, b.entries[:n])
	return out
}

// insertLocked places e in order and trims to capacity.
func (b *Board) insertLocked(e Entry) int {
	idx := sort.Search(len(b.entries), func(i int) bool {
		return b.entries[i].Score < e.Score
	})
	if idx >= b.capacity {
		return 0
	}

	b.entries = append(b.entries, Entry{})
	copy(b.entries[idx+1:], b.entries[idx:])
	b.entries[idx] = e
	if len(b.entries) > b.capacity {
		b.entries = b.entries[:b.capacity]
	}
	return idx + 1
}

// saveLocked writes the table atomically via a temp file in the same directory.
func (b *Board) saveLocked() error {
	data, err := msgpack.Marshal(file{Version: fileVersion, Entries: b.entries})
	if err != nil {
		return fmt.Errorf("failed to encode scoreboard: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(b.path), ".scoreboard-*")
	if err != nil {
		return fmt.Errorf("failed to save scoreboard: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to save scoreboard: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to save scoreboard: %w", err)
	}
	if err := os.Rename(tmp.Name(), b.path); err != nil {
		return fmt.Errorf("failed to save scoreboard: %w", err)
	}
	return nil
}
