package repository

import (
	"context"
	"database/sql"
)

// InventoryRow is one line of the derived inventory: quantity received
// via donations minus quantity already allocated to cooking teams.
// Inventory is computed on every read and never stored. Items with
// zero donations do not appear (inner-style derivation over the
// transactions table).
type InventoryRow struct {
	ItemID            uint64  `json:"item_id"`
	Item              string  `json:"item"`
	AvailableQuantity float64 `json:"available_quantity"`
	UnitOfMeasurement string  `json:"unit_of_measurement"`
}

// inventoryQuery sums donations and allocations per item independently
// and left-joins the two, so items that were never allocated show their
// full donated amount. Result is ordered by item id.
const inventoryQuery = `
	WITH donated AS (
		SELECT t.item_id, SUM(t.quantity) AS total_quantity
		FROM transactions t
		GROUP BY t.item_id
	), allocated AS (
		SELECT a.item_id, SUM(a.quantity) AS total_quantity
		FROM allocations a
		GROUP BY a.item_id
	)
	SELECT d.item_id,
	       i.name,
	       d.total_quantity - COALESCE(al.total_quantity, 0),
	       i.unit_of_measurement
	FROM donated d
	LEFT JOIN allocated al ON al.item_id = d.item_id
	JOIN items i ON i.id = d.item_id
	ORDER BY d.item_id`

// InventoryRepo computes the derived available stock per item.
type InventoryRepo struct {
	db *sql.DB
}

// NewInventoryRepo returns a new InventoryRepo bound to the given database.
func NewInventoryRepo(db *sql.DB) *InventoryRepo { return &InventoryRepo{db: db} }

// List returns the current inventory, one row per item that has ever
// been donated.
func (r *InventoryRepo) List(ctx context.Context) ([]InventoryRow, error) {
	rows, err := r.db.QueryContext(ctx, inventoryQuery)
	if err != nil {
		return nil, err
	}
	return scanInventory(rows)
}

// listInventoryTx is the in-transaction variant used by the allocation
// commit so that the availability re-check and the insert observe the
// same snapshot.
func listInventoryTx(ctx context.Context, tx *sql.Tx) ([]InventoryRow, error) {
	rows, err := tx.QueryContext(ctx, inventoryQuery)
	if err != nil {
		return nil, err
	}
	return scanInventory(rows)
}

func scanInventory(rows *sql.Rows) ([]InventoryRow, error) {
	defer rows.Close()
	out := make([]InventoryRow, 0)
	for rows.Next() {
		var row InventoryRow
		if err := rows.Scan(&row.ItemID, &row.Item, &row.AvailableQuantity, &row.UnitOfMeasurement); err != nil {
			return nil, err
		}
		row.Item = TitleCase(row.Item)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
