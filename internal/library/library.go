// Package library stores the local character-card index in sqlite. The
// browser treats it as the host list: synchronous lookup by ID plus a
// sorted listing for display.
package library

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/marcus/charview/internal/models"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS cards (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL DEFAULT '',
    avatar TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    scenario TEXT NOT NULL DEFAULT '',
    personality TEXT NOT NULL DEFAULT '',
    creator_notes TEXT NOT NULL DEFAULT '',
    mes_example TEXT NOT NULL DEFAULT '',
    first_mes TEXT NOT NULL DEFAULT '',
    alternate_greetings TEXT NOT NULL DEFAULT '[]',
    content_hash TEXT NOT NULL DEFAULT '',
    imported_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    last_chat_at DATETIME
);

CREATE INDEX IF NOT EXISTS idx_cards_name ON cards(name);
CREATE INDEX IF NOT EXISTS idx_cards_hash ON cards(content_hash);
`

// Library wraps the card index database.
type Library struct {
	conn *sql.DB
	path string
}

// DefaultPath returns the library database path under the user data dir.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", "charview", "library.db"), nil
}

// Open opens (creating if needed) the library database at path.
func Open(path string) (*Library, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create library dir: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open library: %w", err)
	}

	// WAL for concurrent reads while writes are serialized
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA busy_timeout=500"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	conn.Exec("PRAGMA synchronous=NORMAL")

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Library{conn: conn, path: path}, nil
}

// Close closes the database.
func (l *Library) Close() error {
	return l.conn.Close()
}

// Path returns the database file path.
func (l *Library) Path() string {
	return l.path
}

// UpsertCard inserts or replaces a card row.
func (l *Library) UpsertCard(card *models.CharacterCard) error {
	alts, err := json.Marshal(card.AlternateGreetings)
	if err != nil {
		return fmt.Errorf("marshal greetings: %w", err)
	}
	importedAt := card.ImportedAt
	if importedAt.IsZero() {
		importedAt = time.Now().UTC()
	}

	_, err = l.conn.Exec(`
		INSERT INTO cards (id, name, avatar, description, scenario, personality,
			creator_notes, mes_example, first_mes, alternate_greetings,
			content_hash, imported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			avatar = excluded.avatar,
			description = excluded.description,
			scenario = excluded.scenario,
			personality = excluded.personality,
			creator_notes = excluded.creator_notes,
			mes_example = excluded.mes_example,
			first_mes = excluded.first_mes,
			alternate_greetings = excluded.alternate_greetings,
			content_hash = excluded.content_hash`,
		card.ID, card.Name, card.Avatar, card.Description, card.Scenario,
		card.Personality, card.CreatorNotes, card.ExampleMessages,
		card.FirstMessage, string(alts), card.ContentHash, importedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert card %s: %w", card.ID, err)
	}
	return nil
}

// GetCard returns the full card for id, or an error when unknown. This is
// the synchronous local lookup the browser performs before any fetch.
func (l *Library) GetCard(id string) (*models.CharacterCard, error) {
	row := l.conn.QueryRow(`
		SELECT id, name, avatar, description, scenario, personality,
			creator_notes, mes_example, first_mes, alternate_greetings,
			content_hash, imported_at
		FROM cards WHERE id = ?`, id)
	return scanCard(row)
}

// HasContentHash reports whether a card with the given content hash exists.
func (l *Library) HasContentHash(hash string) (bool, error) {
	var n int
	err := l.conn.QueryRow(`SELECT COUNT(*) FROM cards WHERE content_hash = ?`, hash).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check content hash: %w", err)
	}
	return n > 0, nil
}

// ListCards returns all cards ordered by name then id.
func (l *Library) ListCards() ([]models.CharacterCard, error) {
	rows, err := l.conn.Query(`
		SELECT id, name, avatar, description, scenario, personality,
			creator_notes, mes_example, first_mes, alternate_greetings,
			content_hash, imported_at
		FROM cards ORDER BY name COLLATE NOCASE, id`)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	var cards []models.CharacterCard
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *card)
	}
	return cards, rows.Err()
}

// TouchLastChat records that a chat was started from this card.
func (l *Library) TouchLastChat(id string) error {
	_, err := l.conn.Exec(`UPDATE cards SET last_chat_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("touch last chat %s: %w", id, err)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCard(s scanner) (*models.CharacterCard, error) {
	var card models.CharacterCard
	var alts string
	err := s.Scan(&card.ID, &card.Name, &card.Avatar, &card.Description,
		&card.Scenario, &card.Personality, &card.CreatorNotes,
		&card.ExampleMessages, &card.FirstMessage, &alts,
		&card.ContentHash, &card.ImportedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("card not found")
	}
	if err != nil {
		return nil, fmt.Errorf("scan card: %w", err)
	}
	if alts != "" {
		if err := json.Unmarshal([]byte(alts), &card.AlternateGreetings); err != nil {
			// Corrupt greeting JSON degrades to no alternates, never fatal.
			card.AlternateGreetings = nil
		}
	}
	return &card, nil
}
