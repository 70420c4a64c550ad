package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultCategories are inserted by Seed into an empty categories table
var DefaultCategories = []string{"Science", "Art", "Geography", "History", "Entertainment", "Sports"}

// Migrate creates the tables if they do not exist. Questions reference
// categories by id without a foreign key; orphaned ids are accepted.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			id   SERIAL PRIMARY KEY,
			type TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS questions (
			id         SERIAL PRIMARY KEY,
			question   TEXT NOT NULL,
			answer     TEXT NOT NULL,
			category   INTEGER NOT NULL,
			difficulty INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_questions_category ON questions (category)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}
	return nil
}

// Seed inserts DefaultCategories when the categories table is empty
func Seed(ctx context.Context, pool *pgxpool.Pool) (int, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	for _, name := range DefaultCategories {
		if _, err := tx.Exec(ctx, `INSERT INTO categories (type) VALUES ($1)`, name); err != nil {
			return 0, fmt.Errorf("failed to seed category %q: %w", name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return len(DefaultCategories), nil
}
