package store

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("final Open() failed: %v", err)
	}
	defer s.Close()

	for _, table := range []string{"runs", "findings"} {
		var name string
		err := s.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q not found after idempotent opens: %v", table, err)
		}
	}
}

func TestOpen_InvalidPath(t *testing.T) {
	_, err := Open("/nonexistent/dir/test.db")
	if err == nil {
		t.Error("expected error for invalid path, got nil")
	}
}

func TestClose_NilDB(t *testing.T) {
	s := &Store{db: nil}
	if err := s.Close(); err != nil {
		t.Errorf("Close() on nil db should not error: %v", err)
	}
}

func TestPragmas(t *testing.T) {
	s := createTestStore(t)

	tests := []struct {
		name     string
		expected string
	}{
		{"journal_mode", "wal"},
		{"synchronous", "1"}, // NORMAL
		{"busy_timeout", "5000"},
		{"foreign_keys", "1"},
		{"user_version", "2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.verifyPragma(tt.name, tt.expected); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestMigration_GlottocodeIndex(t *testing.T) {
	s := createTestStore(t)

	var name string
	err := s.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='index' AND name='idx_findings_glottocode'",
	).Scan(&name)
	if err != nil {
		t.Errorf("glottocode index missing: %v", err)
	}
}

func TestMigration_FromV1AddsDigest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v1.db")

	// Build a database as version 1 left it.
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("sql.Open() failed: %v", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		t.Fatalf("schema failed: %v", err)
	}
	if err := migrateToV1(db); err != nil {
		t.Fatalf("migrateToV1() failed: %v", err)
	}
	if _, err := db.Exec("PRAGMA user_version = 1"); err != nil {
		t.Fatalf("set user_version failed: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO runs (id, source, sample_size, excluded) VALUES ('old', 'phoible', 1, 0)`); err != nil {
		t.Fatalf("insert run failed: %v", err)
	}
	if _, err := db.Exec(`
		INSERT INTO findings (run_id, position, glottocode, inventory_id, name, contributor_id, fricatives, affricates, result, remainder)
		VALUES ('old', 0, 'abcd1234', 5, 'Alpha', 'UPSID', '["s"]', '["t͡s","d͡z"]', '["d͡z"]', '[]')
	`); err != nil {
		t.Fatalf("insert finding failed: %v", err)
	}
	db.Close()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if err := s.verifyPragma("user_version", "2"); err != nil {
		t.Error(err)
	}
	sum, err := s.ReadSummary(t.Context(), "old")
	if err != nil {
		t.Fatalf("ReadSummary() failed: %v", err)
	}
	if len(sum.Findings) != 1 || sum.Findings[0].Digest != "" {
		t.Errorf("expected one finding with empty digest, got %+v", sum.Findings)
	}
}
