// Package history persists enhancement results for later browsing.
package history

import (
	"errors"
	"time"

	"github.com/promptsmith/promptsmith/internal/enhance"
)

// ErrNotFound is returned when an entry id does not exist.
var ErrNotFound = errors.New("history entry not found")

// Default result limits for List and Search when the caller passes
// zero or a negative limit.
const (
	DefaultListLimit   = 20
	DefaultSearchLimit = 10
)

// Entry is one saved enhancement.
type Entry struct {
	ID        int64            `json:"id"`
	Original  string           `json:"original"`
	Enhanced  string           `json:"enhanced"`
	Category  enhance.Category `json:"category"`
	Tone      enhance.Tone     `json:"tone"`
	Timestamp time.Time        `json:"timestamp"`
	Starred   bool             `json:"starred"`
}

// ListOptions filters List results.
type ListOptions struct {
	// Category restricts results to one category when non-empty.
	Category enhance.Category
	// Starred restricts results to starred entries when true.
	Starred bool
	// Limit caps the result count. Zero or negative means
	// DefaultListLimit.
	Limit int
}

// Store persists enhancement history. Ids count up from 1 and the
// highest id plus one is reused after deletions, so a cleared store
// starts over at 1. All methods are safe for concurrent use within a
// single process.
type Store interface {
	// Add saves a new entry, assigning its id and timestamp.
	Add(original, enhanced string, category enhance.Category, tone enhance.Tone) (Entry, error)
	// Get returns the entry with the given id. Returns ErrNotFound for
	// unknown ids.
	Get(id int64) (Entry, error)
	// List returns entries newest-first, filtered by opts.
	List(opts ListOptions) ([]Entry, error)
	// Search returns entries whose original or enhanced text contains
	// the query, case-insensitively, newest-first.
	Search(query string, limit int) ([]Entry, error)
	// Star toggles an entry's starred flag and returns the updated
	// entry. Returns ErrNotFound for unknown ids.
	Star(id int64) (Entry, error)
	// Delete removes an entry, reporting whether it existed.
	Delete(id int64) (bool, error)
	// Clear removes everything and returns how many entries there were.
	Clear() (int, error)
	// Count returns the number of stored entries.
	Count() (int, error)
	// Close releases any underlying resources.
	Close() error
}
