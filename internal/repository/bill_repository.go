package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/nagarjunr/donation-tracker/internal/model"
)

// ErrBillNotFound is returned when no bill exists for a composite
// (bill_book_code, bill_id) key.
var ErrBillNotFound = errors.New("bill not found")

// ErrBillExists is returned by RecordContribution when the bill key is
// already taken and the caller did not ask to append. The surrounding
// workflow must confirm with the operator before adding further lines
// to an existing bill.
var ErrBillExists = errors.New("bill already exists")

// BillRepo persists donor bills and their contribution lines. A bill
// is one page of a physical receipt booklet; its lines live in the
// transactions table and share the composite bill key.
type BillRepo struct {
	db *sql.DB
}

// NewBillRepo returns a new BillRepo bound to the given database.
func NewBillRepo(db *sql.DB) *BillRepo { return &BillRepo{db: db} }

// Exists reports whether a bill_books row exists for the composite key.
func (r *BillRepo) Exists(ctx context.Context, billBookCode string, billID uint64) (bool, error) {
	const q = `SELECT 1 FROM bill_books WHERE bill_book_code = ? AND bill_id = ? LIMIT 1`
	var one int
	err := r.db.QueryRowContext(ctx, q, billBookCode, billID).Scan(&one)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return false, err
}

// ContributionLine is one donated line item under a bill, shaped for
// display: item title-cased, date and clock time split like the paper
// bill itself.
type ContributionLine struct {
	Item              string  `json:"item"`
	Quantity          float64 `json:"quantity"`
	UnitOfMeasurement string  `json:"unit_of_measurement"`
	DonatedOn         string  `json:"donated_on"`
	DonatedAt         string  `json:"donated_at"`
}

// GetContribution returns the donor's name and all lines contributed
// under the bill identified by (billBookCode, billID). It returns
// ErrBillNotFound when no transaction rows exist for the key.
func (r *BillRepo) GetContribution(ctx context.Context, billBookCode string, billID uint64) (string, []ContributionLine, error) {
	const q = `SELECT i.name, t.quantity, i.unit_of_measurement, t.donated_at, b.donar_name
	           FROM transactions t
	           JOIN bill_books b ON b.bill_book_code = t.bill_book_code AND b.bill_id = t.bill_id
	           JOIN items i ON i.id = t.item_id
	           WHERE t.bill_book_code = ? AND t.bill_id = ?
	           ORDER BY t.donated_at`
	rows, err := r.db.QueryContext(ctx, q, billBookCode, billID)
	if err != nil {
		return "", nil, err
	}
	defer rows.Close()

	var donar string
	lines := make([]ContributionLine, 0)
	for rows.Next() {
		var l ContributionLine
		var at time.Time
		if err := rows.Scan(&l.Item, &l.Quantity, &l.UnitOfMeasurement, &at, &donar); err != nil {
			return "", nil, err
		}
		l.Item = TitleCase(l.Item)
		at = at.UTC()
		l.DonatedOn = at.Format("2006-01-02")
		l.DonatedAt = at.Format("03:04:05 PM")
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return "", nil, err
	}
	if len(lines) == 0 {
		return "", nil, ErrBillNotFound
	}
	return donar, lines, nil
}

// ContributionRecord is one donated line joined with its bill and item
// details, as shown on the event's full donation register.
type ContributionRecord struct {
	BillBookCode      string  `json:"bill_book_code"`
	BillID            uint64  `json:"bill_id"`
	DonarName         string  `json:"donar_name"`
	DonarPhone        string  `json:"donar_phone_num,omitempty"`
	Item              string  `json:"item"`
	Quantity          float64 `json:"quantity"`
	UnitOfMeasurement string  `json:"unit_of_measurement"`
	DonatedOn         string  `json:"donated_on"`
}

// ListContributions returns every contribution line across all bills,
// joined with donor and item details and ordered by donation time. An
// event with no donations yet yields an empty slice.
func (r *BillRepo) ListContributions(ctx context.Context) ([]ContributionRecord, error) {
	const q = `SELECT b.bill_book_code, b.bill_id, b.donar_name, b.donar_phone_num,
	                  i.name, t.quantity, i.unit_of_measurement, t.donated_at
	           FROM transactions t
	           JOIN items i ON i.id = t.item_id
	           JOIN bill_books b ON b.bill_book_code = t.bill_book_code AND b.bill_id = t.bill_id
	           ORDER BY t.donated_at`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ContributionRecord, 0)
	for rows.Next() {
		var rec ContributionRecord
		var phone sql.NullString
		var at time.Time
		if err := rows.Scan(&rec.BillBookCode, &rec.BillID, &rec.DonarName, &phone,
			&rec.Item, &rec.Quantity, &rec.UnitOfMeasurement, &at); err != nil {
			return nil, err
		}
		if phone.Valid {
			rec.DonarPhone = phone.String
		}
		rec.Item = TitleCase(rec.Item)
		rec.DonatedOn = at.UTC().Format("2006-01-02")
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// RecordContribution records a donor's contributed items against a
// bill. Inside one transaction it looks the bill up by composite key,
// creates the bill_books row if absent, then inserts one transactions
// row per line. When the bill key is already taken and appendExisting
// is false, ErrBillExists is returned and nothing is written; with
// appendExisting true the new lines join the existing bill. Any
// failure rolls the whole unit back and the error is returned to the
// caller untranslated.
func (r *BillRepo) RecordContribution(ctx context.Context, bill model.BillBook, lines []RequestLine, appendExisting bool) error {
	if len(lines) == 0 {
		return ErrSizeMismatch
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var one int
	err = tx.QueryRowContext(ctx,
		`SELECT 1 FROM bill_books WHERE bill_book_code = ? AND bill_id = ? LIMIT 1`,
		bill.BillBookCode, bill.BillID).Scan(&one)
	switch {
	case err == nil:
		if !appendExisting {
			return ErrBillExists
		}
	case errors.Is(err, sql.ErrNoRows):
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO bill_books (bill_book_code, bill_id, donar_name, donar_phone_num) VALUES (?, ?, ?, ?)`,
			bill.BillBookCode, bill.BillID, bill.DonarName, bill.DonarPhone); err != nil {
			return err
		}
	default:
		return err
	}

	// One multi-row insert for all contribution lines.
	query := `INSERT INTO transactions (bill_book_code, bill_id, item_id, quantity) VALUES `
	args := make([]interface{}, 0, len(lines)*4)
	for i, l := range lines {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?)"
		args = append(args, bill.BillBookCode, bill.BillID, l.ItemID, l.Quantity)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
