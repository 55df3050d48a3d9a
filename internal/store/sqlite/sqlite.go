// Package sqlite implements the document store on SQLite using the JSON1
// functions. One table per collection, documents stored as minified JSON
// text keyed by a UUID assigned on insert.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"

	"portfolio-api/internal/store"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

var collectionName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Open opens (creating if needed) the database at path and ensures one
// document table per collection.
func Open(ctx context.Context, path string, collections []string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLite{db: db}
	for _, coll := range collections {
		if !collectionName.MatchString(coll) {
			_ = db.Close()
			return nil, fmt.Errorf("invalid collection name: %q", coll)
		}
		ddl := fmt.Sprintf(
			`CREATE TABLE IF NOT EXISTS %q (id TEXT PRIMARY KEY, doc TEXT NOT NULL)`, coll,
		)
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create table for %s: %w", coll, err)
		}
	}
	return s, nil
}

func table(collection string) (string, error) {
	if !collectionName.MatchString(collection) {
		return "", fmt.Errorf("invalid collection name: %q", collection)
	}
	return fmt.Sprintf("%q", collection), nil
}

func (s *SQLite) ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (s *SQLite) InsertOne(ctx context.Context, collection string, fields map[string]any) (string, error) {
	t, err := table(collection)
	if err != nil {
		return "", err
	}
	doc, err := json.Marshal(fields)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	// json(?) minifies so later text comparisons against json_patch output
	// are canonical.
	q := fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES (?, json(?))`, t)
	if _, err := s.db.ExecContext(ctx, q, id, string(doc)); err != nil {
		return "", err
	}
	return id, nil
}

func (s *SQLite) FindByID(ctx context.Context, collection, id string) (store.Document, error) {
	t, err := table(collection)
	if err != nil {
		return store.Document{}, err
	}

	q := fmt.Sprintf(`SELECT doc FROM %s WHERE id = ?`, t)
	var raw string
	if err := s.db.QueryRowContext(ctx, q, id).Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return store.Document{}, store.ErrNotFound
		}
		return store.Document{}, err
	}
	return decodeDoc(id, raw)
}

func (s *SQLite) FindFirst(ctx context.Context, collection string) (store.Document, error) {
	t, err := table(collection)
	if err != nil {
		return store.Document{}, err
	}

	q := fmt.Sprintf(`SELECT id, doc FROM %s LIMIT 1`, t)
	var id, raw string
	if err := s.db.QueryRowContext(ctx, q).Scan(&id, &raw); err != nil {
		if err == sql.ErrNoRows {
			return store.Document{}, store.ErrNotFound
		}
		return store.Document{}, err
	}
	return decodeDoc(id, raw)
}

func (s *SQLite) FindAll(ctx context.Context, collection string) ([]store.Document, error) {
	t, err := table(collection)
	if err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`SELECT id, doc FROM %s`, t)
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []store.Document{}
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		doc, err := decodeDoc(id, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func (s *SQLite) UpdateByID(ctx context.Context, collection, id string, patch store.Patch) (int64, error) {
	t, err := table(collection)
	if err != nil {
		return 0, err
	}
	if patch.IsEmpty() {
		return 0, nil
	}

	// json_patch follows RFC 7396: a null value removes the key, which is
	// exactly the Unset semantics.
	merge := map[string]any{}
	for k, v := range patch.Set {
		merge[k] = v
	}
	for _, k := range patch.Unset {
		merge[k] = nil
	}
	raw, err := json.Marshal(merge)
	if err != nil {
		return 0, err
	}

	q := fmt.Sprintf(
		`UPDATE %s SET doc = json_patch(doc, json(?2))
		 WHERE id = ?1 AND doc != json_patch(doc, json(?2))`,
		t,
	)
	res, err := s.db.ExecContext(ctx, q, id, string(raw))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *SQLite) DeleteByID(ctx context.Context, collection, id string) (bool, error) {
	t, err := table(collection)
	if err != nil {
		return false, err
	}

	q := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, t)
	res, err := s.db.ExecContext(ctx, q, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func decodeDoc(id, raw string) (store.Document, error) {
	fields := map[string]any{}
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return store.Document{}, err
	}
	return store.Document{ID: id, Fields: fields}, nil
}
