package importer

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// StateDB remembers which export files were fully imported so a rerun over the
// same directory only sends new or changed files.
type StateDB struct {
	db *sql.DB
}

// OpenStateDB opens (or creates) the SQLite state database at dir/state.db.
func OpenStateDB(dir string) (*StateDB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "state.db"))
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS imported_files (
		path        TEXT PRIMARY KEY,
		size        INTEGER NOT NULL,
		hash        TEXT NOT NULL,
		logs        INTEGER NOT NULL DEFAULT 0,
		imported_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating state table: %w", err)
	}

	return &StateDB{db: db}, nil
}

// FileState identifies one version of an export file.
type FileState struct {
	Path string
	Size int64
	Hash string
}

// StatFile hashes path and records its size.
func StatFile(path string) (FileState, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileState{}, err
	}
	hash, err := HashFile(path)
	if err != nil {
		return FileState{}, fmt.Errorf("hashing %s: %w", path, err)
	}
	return FileState{Path: path, Size: info.Size(), Hash: hash}, nil
}

// IsImported reports whether this exact version of the file was imported.
func (s *StateDB) IsImported(ctx context.Context, f FileState) (bool, error) {
	var stored string
	err := s.db.QueryRowContext(ctx,
		`SELECT hash FROM imported_files WHERE path = ? AND size = ?`, f.Path, f.Size,
	).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading state for %s: %w", f.Path, err)
	}
	return stored == f.Hash, nil
}

// MarkImported records a successful import of logs rows, replacing any
// earlier record for the same path.
func (s *StateDB) MarkImported(ctx context.Context, f FileState, logs int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO imported_files (path, size, hash, logs) VALUES (?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET size = excluded.size, hash = excluded.hash,
		   logs = excluded.logs, imported_at = CURRENT_TIMESTAMP`,
		f.Path, f.Size, f.Hash, logs,
	)
	if err != nil {
		return fmt.Errorf("recording state for %s: %w", f.Path, err)
	}
	return nil
}

func (s *StateDB) Close() error {
	return s.db.Close()
}

// HashFile computes the SHA-256 hash of a file.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
