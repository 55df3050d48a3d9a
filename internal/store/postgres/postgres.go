// Package postgres implements the document store on PostgreSQL: one table
// per collection, documents held in a JSONB column keyed by a UUID the
// store assigns on insert.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"portfolio-api/internal/config"
	"portfolio-api/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Postgres struct {
	pool *pgxpool.Pool
}

var collectionName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Connect opens a pgx pool, verifies connectivity and ensures one document
// table per collection exists.
func Connect(ctx context.Context, cfg config.StoreConfig, collections []string) (*Postgres, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		strings.TrimSpace(cfg.DBHost),
		strings.TrimSpace(cfg.DBPort),
		strings.TrimSpace(cfg.DBUser),
		cfg.DBPassword,
		strings.TrimSpace(cfg.DBName),
		strings.TrimSpace(cfg.DBSSLMode),
	)

	pcfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, err
	}

	pingCtx := ctx
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}

	p := &Postgres{pool: pool}
	for _, coll := range collections {
		table, err := tableFor(coll)
		if err != nil {
			pool.Close()
			return nil, err
		}
		ddl := fmt.Sprintf(
			`CREATE TABLE IF NOT EXISTS %s (id UUID PRIMARY KEY, doc JSONB NOT NULL)`, table,
		)
		if _, err := pool.Exec(ctx, ddl); err != nil {
			pool.Close()
			return nil, fmt.Errorf("create table for %s: %w", coll, err)
		}
	}
	return p, nil
}

func tableFor(collection string) (string, error) {
	if !collectionName.MatchString(collection) {
		return "", fmt.Errorf("invalid collection name: %q", collection)
	}
	return pgx.Identifier{collection}.Sanitize(), nil
}

func (p *Postgres) ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (p *Postgres) InsertOne(ctx context.Context, collection string, fields map[string]any) (string, error) {
	table, err := tableFor(collection)
	if err != nil {
		return "", err
	}
	doc, err := json.Marshal(fields)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	q := fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES ($1, $2)`, table)
	if _, err := p.pool.Exec(ctx, q, id, doc); err != nil {
		return "", err
	}
	return id, nil
}

func (p *Postgres) FindByID(ctx context.Context, collection, id string) (store.Document, error) {
	table, err := tableFor(collection)
	if err != nil {
		return store.Document{}, err
	}

	q := fmt.Sprintf(`SELECT doc FROM %s WHERE id = $1`, table)
	var raw []byte
	if err := p.pool.QueryRow(ctx, q, id).Scan(&raw); err != nil {
		if err == pgx.ErrNoRows {
			return store.Document{}, store.ErrNotFound
		}
		return store.Document{}, err
	}
	return decodeDoc(id, raw)
}

func (p *Postgres) FindFirst(ctx context.Context, collection string) (store.Document, error) {
	table, err := tableFor(collection)
	if err != nil {
		return store.Document{}, err
	}

	q := fmt.Sprintf(`SELECT id, doc FROM %s LIMIT 1`, table)
	var id string
	var raw []byte
	if err := p.pool.QueryRow(ctx, q).Scan(&id, &raw); err != nil {
		if err == pgx.ErrNoRows {
			return store.Document{}, store.ErrNotFound
		}
		return store.Document{}, err
	}
	return decodeDoc(id, raw)
}

func (p *Postgres) FindAll(ctx context.Context, collection string) ([]store.Document, error) {
	table, err := tableFor(collection)
	if err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`SELECT id, doc FROM %s`, table)
	rows, err := p.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []store.Document{}
	for rows.Next() {
		var id string
		var raw []byte
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

func (p *Postgres) UpdateByID(ctx context.Context, collection, id string, patch store.Patch) (int64, error) {
	table, err := tableFor(collection)
	if err != nil {
		return 0, err
	}
	if patch.IsEmpty() {
		return 0, nil
	}

	set := patch.Set
	if set == nil {
		set = map[string]any{}
	}
	merged, err := json.Marshal(set)
	if err != nil {
		return 0, err
	}
	unset := patch.Unset
	if unset == nil {
		unset = []string{}
	}

	// The IS DISTINCT FROM guard makes the affected-row count mean
	// "modified", matching a Mongo update's modified_count.
	q := fmt.Sprintf(
		`UPDATE %s SET doc = (doc || $2::jsonb) - $3::text[]
		 WHERE id = $1 AND doc IS DISTINCT FROM (doc || $2::jsonb) - $3::text[]`,
		table,
	)
	tag, err := p.pool.Exec(ctx, q, id, merged, unset)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (p *Postgres) DeleteByID(ctx context.Context, collection, id string) (bool, error) {
	table, err := tableFor(collection)
	if err != nil {
		return false, err
	}

	q := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table)
	tag, err := p.pool.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

func decodeDoc(id string, raw []byte) (store.Document, error) {
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return store.Document{}, err
	}
	return store.Document{ID: id, Fields: fields}, nil
}
