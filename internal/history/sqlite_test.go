package history

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/promptsmith/promptsmith/internal/enhance"
)

func setupSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store, err := NewSQLiteStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestSQLiteStore_AddAssignsSequentialIDs(t *testing.T) {
	s := setupSQLiteStore(t)

	first := mustAdd(t, s, "first", enhance.CategoryGeneral)
	second := mustAdd(t, s, "second", enhance.CategoryGeneral)

	if first.ID != 1 || second.ID != 2 {
		t.Errorf("ids = %d, %d, want 1, 2", first.ID, second.ID)
	}
}

func TestSQLiteStore_IDReuseAfterClear(t *testing.T) {
	s := setupSQLiteStore(t)

	mustAdd(t, s, "one", enhance.CategoryGeneral)
	mustAdd(t, s, "two", enhance.CategoryGeneral)

	n, err := s.Clear()
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if n != 2 {
		t.Errorf("Clear() = %d, want 2", n)
	}

	entry := mustAdd(t, s, "fresh", enhance.CategoryGeneral)
	if entry.ID != 1 {
		t.Errorf("id after clear = %d, want 1", entry.ID)
	}
}

func TestSQLiteStore_Get(t *testing.T) {
	s := setupSQLiteStore(t)

	added := mustAdd(t, s, "look me up", enhance.CategoryWriting)

	got, err := s.Get(added.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Original != "look me up" || got.Category != enhance.CategoryWriting {
		t.Errorf("got %+v, want original %q category %q", got, "look me up", enhance.CategoryWriting)
	}

	if _, err := s.Get(999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(999) error = %v, want ErrNotFound", err)
	}
}

func TestSQLiteStore_ListNewestFirstWithFilters(t *testing.T) {
	s := setupSQLiteStore(t)

	mustAdd(t, s, "write code", enhance.CategoryCoding)
	mustAdd(t, s, "write prose", enhance.CategoryWriting)
	starred := mustAdd(t, s, "more code", enhance.CategoryCoding)
	if _, err := s.Star(starred.ID); err != nil {
		t.Fatalf("star: %v", err)
	}

	entries, err := s.List(ListOptions{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Original != "more code" {
		t.Errorf("entries[0] = %q, want newest entry first", entries[0].Original)
	}

	coding, err := s.List(ListOptions{Category: enhance.CategoryCoding})
	if err != nil {
		t.Fatalf("list coding: %v", err)
	}
	if len(coding) != 2 {
		t.Errorf("coding entries = %d, want 2", len(coding))
	}

	onlyStarred, err := s.List(ListOptions{Starred: true})
	if err != nil {
		t.Fatalf("list starred: %v", err)
	}
	if len(onlyStarred) != 1 || onlyStarred[0].ID != starred.ID {
		t.Errorf("starred filter returned %v, want just id %d", onlyStarred, starred.ID)
	}
}

func TestSQLiteStore_Search(t *testing.T) {
	s := setupSQLiteStore(t)

	mustAdd(t, s, "Sort a List in Python", enhance.CategoryCoding)
	mustAdd(t, s, "draft an email", enhance.CategoryWriting)
	mustAdd(t, s, "python decorators", enhance.CategoryCoding)

	results, err := s.Search("PYTHON", 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("search returned %d results, want 2", len(results))
	}
	if results[0].Original != "python decorators" {
		t.Errorf("results[0] = %q, want newest match first", results[0].Original)
	}
}

func TestSQLiteStore_StarToggleAndNotFound(t *testing.T) {
	s := setupSQLiteStore(t)

	entry := mustAdd(t, s, "toggle me", enhance.CategoryGeneral)

	updated, err := s.Star(entry.ID)
	if err != nil {
		t.Fatalf("star: %v", err)
	}
	if !updated.Starred {
		t.Error("first Star() should set starred")
	}

	updated, err = s.Star(entry.ID)
	if err != nil {
		t.Fatalf("unstar: %v", err)
	}
	if updated.Starred {
		t.Error("second Star() should clear starred")
	}

	if _, err := s.Star(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("Star(99) error = %v, want ErrNotFound", err)
	}
}

func TestSQLiteStore_Delete(t *testing.T) {
	s := setupSQLiteStore(t)

	entry := mustAdd(t, s, "doomed", enhance.CategoryGeneral)

	removed, err := s.Delete(entry.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !removed {
		t.Error("Delete() = false, want true for existing id")
	}

	removed, err = s.Delete(entry.ID)
	if err != nil {
		t.Fatalf("delete again: %v", err)
	}
	if removed {
		t.Error("Delete() = true for already-removed id")
	}
}

func TestSQLiteStore_TimestampRoundTrip(t *testing.T) {
	s := setupSQLiteStore(t)
	fixed := time.Date(2025, 6, 1, 12, 30, 45, 123456789, time.UTC)
	s.now = func() time.Time { return fixed }

	entry := mustAdd(t, s, "when", enhance.CategoryGeneral)

	entries, err := s.List(ListOptions{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !entries[0].Timestamp.Equal(entry.Timestamp) {
		t.Errorf("timestamp read back = %v, want %v", entries[0].Timestamp, entry.Timestamp)
	}
}
