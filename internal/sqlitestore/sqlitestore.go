// Package sqlitestore is the single-file persistence adapter: every entity
// lives in one SQLite database, field maps serialized as JSON. Uses the
// pure Go driver so the tool cross-compiles without CGO.
package sqlitestore

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/emberdeck/cardpress/core/cards"
	cperrors "github.com/emberdeck/cardpress/core/errors"
)

// driverName is modernc.org/sqlite's registered driver name.
const driverName = "sqlite"

const schema = `
CREATE TABLE IF NOT EXISTS elements (
	kind   TEXT NOT NULL,
	id     TEXT NOT NULL,
	fields TEXT NOT NULL,
	PRIMARY KEY (kind, id)
);`

// Store reads and writes a catalog database.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed initializes) a catalog database.
func Open(path string) (*Store, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, cperrors.NewIO("open", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// ListIDs returns the IDs of every stored entity of one kind, sorted.
func (s *Store) ListIDs(kind cards.Kind) ([]string, error) {
	rows, err := s.db.Query(`SELECT id FROM elements WHERE kind = ? ORDER BY id`, kind.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Load reads one entity's field map.
func (s *Store) Load(kind cards.Kind, id string) (cards.Fields, error) {
	var raw []byte
	err := s.db.QueryRow(
		`SELECT fields FROM elements WHERE kind = ? AND id = ?`,
		kind.String(), id,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, cperrors.NewNotFound(kind.String(), id)
	}
	if err != nil {
		return nil, err
	}
	fields, err := decodeJSON(raw)
	if err != nil {
		return nil, cperrors.NewParse("JSON", id, err.Error())
	}
	return fields, nil
}

// Save writes one entity's field map, replacing any previous row.
func (s *Store) Save(kind cards.Kind, id string, f cards.Fields) error {
	raw, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal %s %s: %w", kind, id, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO elements (kind, id, fields) VALUES (?, ?, ?)
		 ON CONFLICT (kind, id) DO UPDATE SET fields = excluded.fields`,
		kind.String(), id, string(raw),
	)
	return err
}

// decodeJSON decodes a stored field map, normalizing JSON numbers back to
// ints so the round-trip through this adapter is lossless.
func decodeJSON(raw []byte) (cards.Fields, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	normalized, err := normalize(fields)
	if err != nil {
		return nil, err
	}
	return normalized.(map[string]any), nil
}

// normalize walks a decoded JSON value converting json.Number to int.
// Field maps contain no fractional numbers.
func normalize(v any) (any, error) {
	switch val := v.(type) {
	case json.Number:
		n, err := val.Int64()
		if err != nil {
			return nil, fmt.Errorf("non-integer number %q", val.String())
		}
		return int(n), nil
	case map[string]any:
		for k, item := range val {
			norm, err := normalize(item)
			if err != nil {
				return nil, err
			}
			val[k] = norm
		}
		return val, nil
	case []any:
		for i, item := range val {
			norm, err := normalize(item)
			if err != nil {
				return nil, err
			}
			val[i] = norm
		}
		return val, nil
	default:
		return v, nil
	}
}
