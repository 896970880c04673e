package settings

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Migrations holds the goose migrations creating the options table.
//
//go:embed migrations/*.sql
var Migrations embed.FS

const (
	selectOptionSQL = `SELECT value FROM options WHERE name = $1`
	upsertOptionSQL = `INSERT INTO options (name, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
)

// querier is the subset of *pgxpool.Pool the store needs.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresStore keeps the record as a JSON document in the options table.
type PostgresStore struct {
	db   querier
	name string
}

// NewPostgresStore creates a store over a pgx pool (or transaction).
func NewPostgresStore(db querier) *PostgresStore {
	return &PostgresStore{db: db, name: OptionName}
}

// Load implements Store.
func (p *PostgresStore) Load(ctx context.Context) (map[string]string, error) {
	var raw []byte
	err := p.db.QueryRow(ctx, selectOptionSQL, p.name).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, errors.Join(ErrLoadFailed, err)
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Join(ErrLoadFailed, err)
	}

	rec := make(map[string]string, len(doc))
	for k, v := range doc {
		switch val := v.(type) {
		case nil:
		case string:
			rec[k] = val
		default:
			rec[k] = fmt.Sprint(val)
		}
	}
	return rec, nil
}

// Save implements Store.
func (p *PostgresStore) Save(ctx context.Context, s Settings) error {
	doc, err := json.Marshal(s.Map())
	if err != nil {
		return errors.Join(ErrSaveFailed, err)
	}
	if _, err := p.db.Exec(ctx, upsertOptionSQL, p.name, doc); err != nil {
		return errors.Join(ErrSaveFailed, err)
	}
	return nil
}
