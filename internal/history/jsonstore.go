package history

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/promptsmith/promptsmith/internal/enhance"
)

// JSONStore keeps history in a single JSON file. Every mutation
// rewrites the whole file, which is fine at personal-history scale and
// keeps the file trivially inspectable.
type JSONStore struct {
	path   string
	logger *slog.Logger
	now    func() time.Time

	mu      sync.Mutex
	entries []Entry
}

var _ Store = (*JSONStore)(nil)

// NewJSONStore loads the store at path, creating the file lazily on
// first write. A missing file is an empty store. An unreadable or
// corrupt file is logged and treated as empty rather than failing
// startup; the bad content is overwritten on the next mutation.
func NewJSONStore(path string, logger *slog.Logger) *JSONStore {
	if logger == nil {
		logger = slog.Default()
	}
	s := &JSONStore{
		path:    path,
		logger:  logger,
		now:     time.Now,
		entries: []Entry{},
	}
	s.load()
	return s
}

func (s *JSONStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("history file unreadable, starting empty", "path", s.path, "error", err)
		}
		return
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("history file corrupt, starting empty", "path", s.path, "error", err)
		return
	}
	if entries != nil {
		s.entries = entries
	}
}

// save writes the current entries. Callers must hold s.mu.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}

// Add saves a new entry. The id is the current maximum plus one, so
// ids are reused once the entries holding them are gone.
func (s *JSONStore) Add(original, enhanced string, category enhance.Category, tone enhance.Tone) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var maxID int64
	for _, e := range s.entries {
		if e.ID > maxID {
			maxID = e.ID
		}
	}

	entry := Entry{
		ID:        maxID + 1,
		Original:  original,
		Enhanced:  enhanced,
		Category:  category,
		Tone:      tone,
		Timestamp: s.now().UTC(),
	}
	s.entries = append(s.entries, entry)

	if err := s.save(); err != nil {
		return entry, err
	}
	return entry, nil
}

// Get returns the entry with the given id.
func (s *JSONStore) Get(id int64) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %d", ErrNotFound, id)
}

// List returns entries newest-first, filtered by opts.
func (s *JSONStore) List(opts ListOptions) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	var out []Entry
	for i := len(s.entries) - 1; i >= 0 && len(out) < limit; i-- {
		e := s.entries[i]
		if opts.Category != "" && e.Category != opts.Category {
			continue
		}
		if opts.Starred && !e.Starred {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// Search returns entries whose original or enhanced text contains the
// query, case-insensitively, newest-first.
func (s *JSONStore) Search(query string, limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	q := strings.ToLower(query)

	var out []Entry
	for i := len(s.entries) - 1; i >= 0 && len(out) < limit; i-- {
		e := s.entries[i]
		if strings.Contains(strings.ToLower(e.Original), q) ||
			strings.Contains(strings.ToLower(e.Enhanced), q) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Star toggles an entry's starred flag.
func (s *JSONStore) Star(id int64) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries[i].Starred = !s.entries[i].Starred
			if err := s.save(); err != nil {
				return Entry{}, err
			}
			return s.entries[i], nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %d", ErrNotFound, id)
}

// Delete removes an entry, reporting whether it existed.
func (s *JSONStore) Delete(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			if err := s.save(); err != nil {
				return true, err
			}
			return true, nil
		}
	}
	return false, nil
}

// Clear removes everything and returns how many entries there were.
func (s *JSONStore) Clear() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.entries)
	s.entries = []Entry{}
	if err := s.save(); err != nil {
		return n, err
	}
	return n, nil
}

// Count returns the number of stored entries.
func (s *JSONStore) Count() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries), nil
}

// Close is a no-op; the file is rewritten on every mutation.
func (s *JSONStore) Close() error {
	return nil
}
