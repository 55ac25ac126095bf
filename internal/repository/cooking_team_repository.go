package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/nagarjunr/donation-tracker/internal/model"
)

// ErrTeamNotFound is returned when a cooking team cannot be found in the DB.
var ErrTeamNotFound = errors.New("cooking team not found")

// CookingTeamRepo encapsulates database queries for cooking teams. A
// team is identified to operators by its supervisor's name, which is
// unique at the storage layer.
type CookingTeamRepo struct {
	db *sql.DB
}

// NewCookingTeamRepo returns a new CookingTeamRepo bound to the given database.
func NewCookingTeamRepo(db *sql.DB) *CookingTeamRepo { return &CookingTeamRepo{db: db} }

// List returns all cooking teams ordered by id.
func (r *CookingTeamRepo) List(ctx context.Context) ([]*model.CookingTeam, error) {
	const q = `SELECT id, supervisor_name, supervisor_phone_num FROM cooking_teams ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.CookingTeam
	for rows.Next() {
		t := new(model.CookingTeam)
		var phone sql.NullString
		if err := rows.Scan(&t.ID, &t.SupervisorName, &phone); err != nil {
			return nil, err
		}
		if phone.Valid {
			p := phone.String
			t.SupervisorPhone = &p
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a cooking team by its ID. It returns ErrTeamNotFound
// if no row exists.
func (r *CookingTeamRepo) GetByID(ctx context.Context, id uint64) (*model.CookingTeam, error) {
	const q = `SELECT id, supervisor_name, supervisor_phone_num FROM cooking_teams WHERE id = ?`
	var t model.CookingTeam
	var phone sql.NullString
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&t.ID, &t.SupervisorName, &phone); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	if phone.Valid {
		p := phone.String
		t.SupervisorPhone = &p
	}
	return &t, nil
}

// Create inserts a new cooking team. The supervisor_name column is
// unique; a duplicate-key failure (MySQL 1062) maps to ErrConflict so
// handlers can report the duplicate without leaking a raw storage error.
func (r *CookingTeamRepo) Create(ctx context.Context, supervisorName string, supervisorPhone *string) (*model.CookingTeam, error) {
	supervisorName = strings.TrimSpace(supervisorName)
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO cooking_teams (supervisor_name, supervisor_phone_num) VALUES (?, ?)`,
		supervisorName, supervisorPhone)
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
	return &model.CookingTeam{
		ID:              uint64(id),
		SupervisorName:  supervisorName,
		SupervisorPhone: supervisorPhone,
	}, nil
}
