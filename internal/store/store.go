// Package store persists downloaded language packs and download telemetry
// in a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"

	"github.com/allergiapp/langpack/internal"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS downloaded_languages (
		lang_code TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		downloaded_at TIMESTAMP NOT NULL
	);

	-- download_events records one row per completed download attempt.
	CREATE TABLE IF NOT EXISTS download_events (
		id TEXT PRIMARY KEY,
		lang_code TEXT NOT NULL,
		success BOOLEAN NOT NULL,
		duration_ms INTEGER NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_events_lang ON download_events(lang_code);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Get returns the stored language pack for code, or (nil, nil) when none
// exists.
func (s *Store) Get(ctx context.Context, code string) (*internal.DownloadedLanguageData, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM downloaded_languages WHERE lang_code = ?`,
		normalizeCode(code)).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var data internal.DownloadedLanguageData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("corrupt language pack for %s: %w", code, err)
	}
	return &data, nil
}

// Set stores the language pack for code, replacing any previous pack whole.
// Packs are never partially updated.
func (s *Store) Set(ctx context.Context, code string, data *internal.DownloadedLanguageData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode language pack: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO downloaded_languages (lang_code, data, downloaded_at) VALUES (?, ?, ?)`,
		normalizeCode(code), string(raw), data.DownloadedAt)
	return err
}

// Delete removes the language pack for code. Deleting a missing code is not
// an error.
func (s *Store) Delete(ctx context.Context, code string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM downloaded_languages WHERE lang_code = ?`, normalizeCode(code))
	return err
}

// ListCodes returns the codes of all stored language packs, sorted.
func (s *Store) ListCodes(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT lang_code FROM downloaded_languages ORDER BY lang_code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

// SaveDownloadEvent records one telemetry row for a completed download
// attempt.
func (s *Store) SaveDownloadEvent(ctx context.Context, id, code string, success bool, durationMS int64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO download_events (id, lang_code, success, duration_ms, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, normalizeCode(code), success, durationMS, time.Now())
	return err
}

// DownloadEvent is a row from the download_events table.
type DownloadEvent struct {
	ID         string
	LangCode   string
	Success    bool
	DurationMS int64
	CreatedAt  time.Time
}

// ListEvents returns all recorded download events, most recent first.
func (s *Store) ListEvents(ctx context.Context) ([]DownloadEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, lang_code, success, duration_ms, created_at FROM download_events ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []DownloadEvent
	for rows.Next() {
		var e DownloadEvent
		if err := rows.Scan(&e.ID, &e.LangCode, &e.Success, &e.DurationMS, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}

// normalizeCode lowercases, trims and NFC-normalizes a language code so the
// same language always maps to the same key.
func normalizeCode(code string) string {
	return norm.NFC.String(strings.ToLower(strings.TrimSpace(code)))
}
