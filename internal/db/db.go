// Package db provides PostgreSQL access for the occupation corpus.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/career-roadmap/internal/types"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

const schemaSQL = `CREATE TABLE IF NOT EXISTS occupations (
	position    INTEGER PRIMARY KEY,
	name        TEXT NOT NULL UNIQUE,
	skills      TEXT[] NOT NULL DEFAULT '{}',
	tasks       TEXT[] NOT NULL DEFAULT '{}',
	education   TEXT[] NOT NULL DEFAULT '{}',
	description TEXT NOT NULL DEFAULT ''
)`

// EnsureSchema creates the occupations table when missing
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create occupations table: %w", err)
	}
	return nil
}

// ListOccupations returns every occupation in corpus order
func (db *DB) ListOccupations(ctx context.Context) ([]types.Occupation, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT name, skills, tasks, education, description
		 FROM occupations ORDER BY position ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list occupations: %w", err)
	}
	defer rows.Close()

	var occupations []types.Occupation
	for rows.Next() {
		var o types.Occupation
		if err := rows.Scan(&o.Name, &o.Skills, &o.Tasks, &o.Education, &o.Description); err != nil {
			return nil, fmt.Errorf("failed to scan occupation: %w", err)
		}
		occupations = append(occupations, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read occupations: %w", err)
	}
	return occupations, nil
}

// ReplaceOccupations swaps the stored corpus for occupations in one transaction
func (db *DB) ReplaceOccupations(ctx context.Context, occupations []types.Occupation) error {
	return pgx.BeginFunc(ctx, db.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM occupations`); err != nil {
			return fmt.Errorf("failed to clear occupations: %w", err)
		}

		batch := &pgx.Batch{}
		for i, o := range occupations {
			batch.Queue(
				`INSERT INTO occupations (position, name, skills, tasks, education, description)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				i, o.Name, nonNil(o.Skills), nonNil(o.Tasks), nonNil(o.Education), o.Description,
			)
		}

		results := tx.SendBatch(ctx, batch)
		for i := range occupations {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return fmt.Errorf("failed to insert occupation %q: %w", occupations[i].Name, err)
			}
		}
		return results.Close()
	})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
