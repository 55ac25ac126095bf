package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/nagarjunr/donation-tracker/internal/model"
)

// AllocationRepo records stock handed from inventory to cooking teams
// and reads back the allocation history. The commit path locks the
// requested items' catalog rows and re-validates availability inside
// the same transaction that inserts the rows, so a confirmed allocation
// can never push an item's available quantity negative.
type AllocationRepo struct {
	db *sql.DB
}

// NewAllocationRepo returns a new AllocationRepo bound to the given database.
func NewAllocationRepo(db *sql.DB) *AllocationRepo { return &AllocationRepo{db: db} }

// Allocate atomically records one allocation row per requested line for
// the given cooking team. Inside a single transaction it locks the
// requested items' catalog rows, verifies the team exists
// (ErrTeamNotFound), re-checks availability against the derived
// inventory (ErrInsufficientInventory with the offending lines), then
// inserts all rows. Any failure rolls the whole batch back; no partial
// allocation is possible.
func (r *AllocationRepo) Allocate(ctx context.Context, teamID uint64, lines []RequestLine, dish *string) ([]model.Allocation, []Shortfall, error) {
	if len(lines) == 0 {
		return nil, nil, ErrSizeMismatch
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Serialize concurrent allocations of the same items by locking
	// their catalog rows. This must be the transaction's first read:
	// the snapshot for the consistent reads below is established by the
	// first plain SELECT, so only a read issued after the lock is
	// granted observes allocations committed by whoever held it first.
	// Without this, two transactions could both see the same available
	// quantity, both pass the check and overdraw the item together.
	lockArgs := make([]interface{}, 0, len(lines))
	seen := make(map[uint64]bool, len(lines))
	for _, line := range lines {
		if !seen[line.ItemID] {
			seen[line.ItemID] = true
			lockArgs = append(lockArgs, line.ItemID)
		}
	}
	lockQ := `SELECT id FROM items WHERE id IN (` +
		strings.TrimSuffix(strings.Repeat("?,", len(lockArgs)), ",") + `) FOR UPDATE`
	if _, err := tx.ExecContext(ctx, lockQ, lockArgs...); err != nil {
		return nil, nil, err
	}

	var exists uint64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM cooking_teams WHERE id = ?`, teamID).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, ErrTeamNotFound
		}
		return nil, nil, err
	}

	inventory, err := listInventoryTx(ctx, tx)
	if err != nil {
		return nil, nil, err
	}
	short := Shortfalls(inventory, lines)
	if len(short) > 0 {
		if err := backfillItemDetails(ctx, tx, short); err != nil {
			return nil, nil, err
		}
		return nil, short, ErrInsufficientInventory
	}

	ids := make([]uint64, 0, len(lines))
	for _, line := range lines {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO allocations (cooking_team_id, item_id, quantity, dish) VALUES (?, ?, ?, ?)`,
			teamID, line.ItemID, line.Quantity, dish)
		if err != nil {
			return nil, nil, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, nil, err
		}
		ids = append(ids, uint64(id))
	}

	// Query the batch back so callers receive the commit timestamps.
	placeholders := make([]string, 0, len(ids))
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	q := `SELECT id, cooking_team_id, item_id, quantity, dish, allocated_at
	      FROM allocations WHERE id IN (` + strings.Join(placeholders, ",") + `) ORDER BY id`
	rows, err := tx.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, nil, err
	}
	created := make([]model.Allocation, 0, len(ids))
	for rows.Next() {
		var a model.Allocation
		var d sql.NullString
		if err := rows.Scan(&a.ID, &a.CookingTeamID, &a.ItemID, &a.Quantity, &d, &a.AllocatedAt); err != nil {
			rows.Close()
			return nil, nil, err
		}
		if d.Valid {
			s := d.String
			a.Dish = &s
		}
		created = append(created, a)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, nil, err
	}
	rows.Close()

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	committed = true
	return created, nil, nil
}

// AllocationDetail is one allocation history row joined with team and
// item details, shaped for display: supervisor upper-cased, item
// title-cased, date and time split like the paper registers.
type AllocationDetail struct {
	CookingTeamID     uint64  `json:"cooking_team_id"`
	SupervisorName    string  `json:"supervisor_name"`
	Item              string  `json:"item"`
	ItemID            uint64  `json:"item_id"`
	Quantity          float64 `json:"quantity"`
	UnitOfMeasurement string  `json:"unit_of_measurement"`
	Dish              *string `json:"dish,omitempty"`
	AllocatedOn       string  `json:"allocated_on"`
	AllocatedAt       string  `json:"allocated_at"`
}

// List returns the allocation history ordered by allocation time.
// When supervisor is non-empty, only allocations to the team with that
// supervisor name (case-insensitive) are returned.
func (r *AllocationRepo) List(ctx context.Context, supervisor string) ([]AllocationDetail, error) {
	q := `SELECT a.cooking_team_id, c.supervisor_name, i.name, i.id, a.quantity,
	             i.unit_of_measurement, a.dish, a.allocated_at
	      FROM allocations a
	      JOIN cooking_teams c ON a.cooking_team_id = c.id
	      JOIN items i ON a.item_id = i.id`
	args := []interface{}{}
	if strings.TrimSpace(supervisor) != "" {
		q += ` WHERE LOWER(c.supervisor_name) = LOWER(?)`
		args = append(args, strings.TrimSpace(supervisor))
	}
	q += ` ORDER BY a.allocated_at`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]AllocationDetail, 0)
	for rows.Next() {
		var d AllocationDetail
		var dish sql.NullString
		var at time.Time
		if err := rows.Scan(&d.CookingTeamID, &d.SupervisorName, &d.Item, &d.ItemID,
			&d.Quantity, &d.UnitOfMeasurement, &dish, &at); err != nil {
			return nil, err
		}
		d.SupervisorName = strings.ToUpper(d.SupervisorName)
		d.Item = TitleCase(d.Item)
		if dish.Valid {
			s := dish.String
			d.Dish = &s
		}
		at = at.UTC()
		d.AllocatedOn = at.Format("2006-01-02")
		d.AllocatedAt = at.Format(time.RFC3339)
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
