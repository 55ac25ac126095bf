package repository

import (
	"context"
	"database/sql"
	"strings"
)

// RequestLine pairs an item id with a requested quantity. Handlers zip
// the parallel item/quantity lists from the request body into these
// before calling the repository layer.
type RequestLine struct {
	ItemID   uint64
	Quantity float64
}

// Shortfall describes one requested line that exceeds the available
// inventory. An empty shortfall list means every requested line is
// satisfiable.
type Shortfall struct {
	ItemID            uint64  `json:"item_id"`
	Item              string  `json:"item"`
	UnitOfMeasurement string  `json:"unit_of_measurement"`
	AvailableQuantity float64 `json:"available_quantity"`
	RequestedQuantity float64 `json:"requested_quantity"`
}

// Shortfalls compares requested lines against inventory rows and
// returns only the offending lines. An item id with no inventory row
// (never donated) counts as zero available and is always flagged; such
// rows come back with empty Item/UnitOfMeasurement, which callers may
// backfill from the catalog.
func Shortfalls(inventory []InventoryRow, req []RequestLine) []Shortfall {
	byItem := make(map[uint64]InventoryRow, len(inventory))
	for _, row := range inventory {
		byItem[row.ItemID] = row
	}
	out := make([]Shortfall, 0)
	for _, line := range req {
		row, ok := byItem[line.ItemID]
		if !ok {
			out = append(out, Shortfall{
				ItemID:            line.ItemID,
				AvailableQuantity: 0,
				RequestedQuantity: line.Quantity,
			})
			continue
		}
		if row.AvailableQuantity < line.Quantity {
			out = append(out, Shortfall{
				ItemID:            line.ItemID,
				Item:              row.Item,
				UnitOfMeasurement: row.UnitOfMeasurement,
				AvailableQuantity: row.AvailableQuantity,
				RequestedQuantity: line.Quantity,
			})
		}
	}
	return out
}

// Check runs the availability comparison against the current inventory
// and backfills item names for flagged lines that have never been
// donated but do exist in the catalog.
func (r *InventoryRepo) Check(ctx context.Context, req []RequestLine) ([]Shortfall, error) {
	inventory, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	short := Shortfalls(inventory, req)
	if err := backfillItemDetails(ctx, r.db, short); err != nil {
		return nil, err
	}
	return short, nil
}

// rowQuerier is satisfied by both *sql.DB and *sql.Tx so the shortfall
// backfill can run standalone or inside the allocation transaction.
type rowQuerier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// backfillItemDetails fills Item/UnitOfMeasurement on shortfall rows
// produced for item ids absent from the inventory derivation. Unknown
// item ids stay blank and remain flagged as unavailable.
func backfillItemDetails(ctx context.Context, db rowQuerier, short []Shortfall) error {
	ids := make([]interface{}, 0)
	idx := make(map[uint64][]int)
	for i, s := range short {
		if s.Item != "" {
			continue
		}
		if _, seen := idx[s.ItemID]; !seen {
			ids = append(ids, s.ItemID)
		}
		idx[s.ItemID] = append(idx[s.ItemID], i)
	}
	if len(ids) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	q := `SELECT id, name, unit_of_measurement FROM items WHERE id IN (` + placeholders + `)`
	rows, err := db.QueryContext(ctx, q, ids...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var id uint64
		var name, unit string
		if err := rows.Scan(&id, &name, &unit); err != nil {
			return err
		}
		for _, i := range idx[id] {
			short[i].Item = TitleCase(name)
			short[i].UnitOfMeasurement = unit
		}
	}
	return rows.Err()
}
