package history

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/promptsmith/promptsmith/internal/enhance"
)

// SQLiteStore persists history in SQLite. It implements the same id
// semantics as JSONStore: explicit max-plus-one assignment under a
// store mutex, so ids restart at 1 after a clear.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
	mu  sync.Mutex
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a history store, running migrations on first use.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate history: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS history (
			id        INTEGER PRIMARY KEY,
			original  TEXT NOT NULL,
			enhanced  TEXT NOT NULL,
			category  TEXT NOT NULL,
			tone      TEXT NOT NULL,
			timestamp TEXT NOT NULL,
			starred   INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_history_category ON history(category);
		CREATE INDEX IF NOT EXISTS idx_history_starred ON history(starred);
	`)
	return err
}

// Add saves a new entry with id max-plus-one.
func (s *SQLiteStore) Add(original, enhanced string, category enhance.Category, tone enhance.Tone) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var maxID int64
	if err := s.db.QueryRow(`SELECT COALESCE(MAX(id), 0) FROM history`).Scan(&maxID); err != nil {
		return Entry{}, fmt.Errorf("next history id: %w", err)
	}

	entry := Entry{
		ID:        maxID + 1,
		Original:  original,
		Enhanced:  enhanced,
		Category:  category,
		Tone:      tone,
		Timestamp: s.now().UTC(),
	}

	_, err := s.db.Exec(
		`INSERT INTO history (id, original, enhanced, category, tone, timestamp, starred)
		 VALUES (?, ?, ?, ?, ?, ?, 0)`,
		entry.ID, entry.Original, entry.Enhanced,
		string(entry.Category), string(entry.Tone),
		entry.Timestamp.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("insert history entry: %w", err)
	}
	return entry, nil
}

// Get returns the entry with the given id.
func (s *SQLiteStore) Get(id int64) (Entry, error) {
	entries, err := s.queryEntries(
		`SELECT id, original, enhanced, category, tone, timestamp, starred
		 FROM history WHERE id = ?`, id,
	)
	if err != nil {
		return Entry{}, err
	}
	if len(entries) == 0 {
		return Entry{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return entries[0], nil
}

// List returns entries newest-first, filtered by opts.
func (s *SQLiteStore) List(opts ListOptions) ([]Entry, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	query := `SELECT id, original, enhanced, category, tone, timestamp, starred FROM history`
	var conds []string
	var args []any
	if opts.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, string(opts.Category))
	}
	if opts.Starred {
		conds = append(conds, "starred = 1")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	return s.queryEntries(query, args...)
}

// Search returns entries whose original or enhanced text contains the
// query. Matching happens in Go rather than with LIKE so the substring
// and case-folding semantics are identical to JSONStore's.
func (s *SQLiteStore) Search(query string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	q := strings.ToLower(query)

	all, err := s.queryEntries(
		`SELECT id, original, enhanced, category, tone, timestamp, starred
		 FROM history ORDER BY id DESC`,
	)
	if err != nil {
		return nil, err
	}

	var out []Entry
	for _, e := range all {
		if len(out) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(e.Original), q) ||
			strings.Contains(strings.ToLower(e.Enhanced), q) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Star toggles an entry's starred flag.
func (s *SQLiteStore) Star(id int64) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`UPDATE history SET starred = 1 - starred WHERE id = ?`, id)
	if err != nil {
		return Entry{}, fmt.Errorf("star history entry: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return Entry{}, err
	} else if n == 0 {
		return Entry{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	entries, err := s.queryEntries(
		`SELECT id, original, enhanced, category, tone, timestamp, starred
		 FROM history WHERE id = ?`, id,
	)
	if err != nil {
		return Entry{}, err
	}
	if len(entries) == 0 {
		return Entry{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return entries[0], nil
}

// Delete removes an entry, reporting whether it existed.
func (s *SQLiteStore) Delete(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM history WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete history entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Clear removes everything and returns how many entries there were.
func (s *SQLiteStore) Clear() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.count()
	if err != nil {
		return 0, err
	}
	if _, err := s.db.Exec(`DELETE FROM history`); err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	return n, nil
}

// Count returns the number of stored entries.
func (s *SQLiteStore) Count() (int, error) {
	return s.count()
}

func (s *SQLiteStore) count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM history`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return n, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) queryEntries(query string, args ...any) ([]Entry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var category, tone, ts string
		var starred int
		if err := rows.Scan(&e.ID, &e.Original, &e.Enhanced, &category, &tone, &ts, &starred); err != nil {
			return nil, err
		}
		e.Category = enhance.Category(category)
		e.Tone = enhance.Tone(tone)
		e.Starred = starred != 0
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			e.Timestamp = parsed
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
