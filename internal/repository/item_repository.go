// Package repository contains data access logic separated from HTTP handlers.
// This file defines the item catalog repository. Items are the goods that
// donors contribute; names are stored trimmed and lower-cased and surfaced
// title-cased, mirroring how the paper records are kept.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"       // errors is used to define custom error values
	"strings"      // strings provides trimming and case normalization

	"github.com/nagarjunr/donation-tracker/internal/model"
)

// ErrItemNotFound is returned when an item cannot be found in the DB.
var ErrItemNotFound = errors.New("item not found")

// ItemRepo encapsulates all database queries related to the item catalog.
type ItemRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewItemRepo constructs an ItemRepo with the provided DB handle.
func NewItemRepo(db *sql.DB) *ItemRepo {
	return &ItemRepo{db: db}
}

// List returns all items ordered by id. Names are title-cased for
// display; the stored form stays lower-case.
func (r *ItemRepo) List(ctx context.Context) ([]*model.Item, error) {
	const q = `SELECT id, name, unit_of_measurement FROM items ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Item
	for rows.Next() {
		it := new(model.Item)
		if err := rows.Scan(&it.ID, &it.Name, &it.UnitOfMeasurement); err != nil {
			return nil, err
		}
		it.Name = TitleCase(it.Name)
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches an item by its ID. It returns ErrItemNotFound if no
// row is found.
func (r *ItemRepo) GetByID(ctx context.Context, id uint64) (*model.Item, error) {
	const q = `SELECT id, name, unit_of_measurement FROM items WHERE id = ?`
	var it model.Item
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&it.ID, &it.Name, &it.UnitOfMeasurement); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	it.Name = TitleCase(it.Name)
	return &it, nil
}

// Create inserts a new item after a case-insensitive existence check.
// Both the check and the insert run inside one transaction, and the
// items.name column additionally carries a unique index, so a race
// between concurrent callers still resolves to ErrConflict rather than
// a duplicate row. On success the returned item carries the generated ID.
func (r *ItemRepo) Create(ctx context.Context, name, unit string) (*model.Item, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT 1 FROM items WHERE LOWER(name) = ? LIMIT 1`, name).Scan(&exists)
	if err == nil {
		return nil, ErrConflict
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO items (name, unit_of_measurement) VALUES (?, ?)`, name, unit)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return nil, ErrConflict
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	return &model.Item{ID: uint64(id), Name: TitleCase(name), UnitOfMeasurement: unit}, nil
}

// TitleCase upper-cases the first letter of each space-separated word.
// Item names are stored lower-case; the original records displayed them
// initcap-style, so reads apply this before returning rows.
func TitleCase(s string) string {
	parts := strings.Fields(s)
	for i, p := range parts {
		r := []rune(p)
		if r[0] >= 'a' && r[0] <= 'z' {
			r[0] = r[0] - 32
		}
		parts[i] = string(r)
	}
	return strings.Join(parts, " ")
}
