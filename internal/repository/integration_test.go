//go:build integration
// +build integration

package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"

	"github.com/nagarjunr/donation-tracker/internal/model"
	"github.com/nagarjunr/donation-tracker/internal/repository"
)

var schemaStatements = []string{
	`CREATE TABLE items (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE,
		unit_of_measurement VARCHAR(8) NOT NULL
	)`,
	`CREATE TABLE cooking_teams (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		supervisor_name VARCHAR(255) NOT NULL UNIQUE,
		supervisor_phone_num VARCHAR(32) NULL
	)`,
	`CREATE TABLE bill_books (
		bill_book_code VARCHAR(16) NOT NULL,
		bill_id BIGINT UNSIGNED NOT NULL,
		donar_name VARCHAR(255) NOT NULL,
		donar_phone_num VARCHAR(32) NULL,
		PRIMARY KEY (bill_book_code, bill_id)
	)`,
	`CREATE TABLE transactions (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		bill_book_code VARCHAR(16) NOT NULL,
		bill_id BIGINT UNSIGNED NOT NULL,
		item_id BIGINT UNSIGNED NOT NULL,
		quantity DOUBLE NOT NULL,
		donated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (bill_book_code, bill_id) REFERENCES bill_books (bill_book_code, bill_id),
		FOREIGN KEY (item_id) REFERENCES items (id)
	)`,
	`CREATE TABLE allocations (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		cooking_team_id BIGINT UNSIGNED NOT NULL,
		item_id BIGINT UNSIGNED NOT NULL,
		quantity DOUBLE NOT NULL,
		dish VARCHAR(255) NULL,
		allocated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (cooking_team_id) REFERENCES cooking_teams (id),
		FOREIGN KEY (item_id) REFERENCES items (id)
	)`,
}

// setupTestDB starts a throwaway MySQL container and creates the schema.
func setupTestDB(t *testing.T) *sql.DB {
	ctx := context.Background()

	container, err := tcmysql.Run(ctx,
		"mysql:8.4",
		tcmysql.WithDatabase("donations"),
		tcmysql.WithUsername("test"),
		tcmysql.WithPassword("test"),
	)
	if err != nil {
		t.Fatalf("failed to start MySQL container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "parseTime=true", "loc=UTC")
	require.NoError(t, err)

	db, err := sql.Open("mysql", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.PingContext(ctx))

	for _, stmt := range schemaStatements {
		_, err := db.ExecContext(ctx, stmt)
		require.NoError(t, err)
	}
	return db
}

// donate records a single-line contribution so tests can seed inventory.
func donate(t *testing.T, bills *repository.BillRepo, code string, billID, itemID uint64, qty float64) {
	t.Helper()
	err := bills.RecordContribution(context.Background(),
		model.BillBook{BillBookCode: code, BillID: billID, DonarName: "anand"},
		[]repository.RequestLine{{ItemID: itemID, Quantity: qty}}, false)
	require.NoError(t, err)
}

func TestAllocateDecrementsInventory(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	items := repository.NewItemRepo(db)
	teams := repository.NewCookingTeamRepo(db)
	bills := repository.NewBillRepo(db)
	allocs := repository.NewAllocationRepo(db)
	inv := repository.NewInventoryRepo(db)

	rice, err := items.Create(ctx, "rice", "Kg")
	require.NoError(t, err)
	team, err := teams.Create(ctx, "Ravi", nil)
	require.NoError(t, err)
	donate(t, bills, "B1", 1, rice.ID, 50)

	created, short, err := allocs.Allocate(ctx, team.ID,
		[]repository.RequestLine{{ItemID: rice.ID, Quantity: 20}}, nil)
	require.NoError(t, err)
	assert.Empty(t, short)
	require.Len(t, created, 1)
	assert.Equal(t, 20.0, created[0].Quantity)
	assert.False(t, created[0].AllocatedAt.IsZero())

	rows, err := inv.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 30.0, rows[0].AvailableQuantity)
}

func TestAllocateIsAllOrNothing(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	items := repository.NewItemRepo(db)
	teams := repository.NewCookingTeamRepo(db)
	bills := repository.NewBillRepo(db)
	allocs := repository.NewAllocationRepo(db)
	inv := repository.NewInventoryRepo(db)

	rice, err := items.Create(ctx, "rice", "Kg")
	require.NoError(t, err)
	oil, err := items.Create(ctx, "oil", "L")
	require.NoError(t, err)
	team, err := teams.Create(ctx, "Ravi", nil)
	require.NoError(t, err)
	donate(t, bills, "B1", 1, rice.ID, 30)
	donate(t, bills, "B1", 2, oil.ID, 5)

	// One satisfiable line plus one excessive line: nothing may commit.
	created, short, err := allocs.Allocate(ctx, team.ID, []repository.RequestLine{
		{ItemID: rice.ID, Quantity: 10},
		{ItemID: oil.ID, Quantity: 8},
	}, nil)
	require.ErrorIs(t, err, repository.ErrInsufficientInventory)
	assert.Nil(t, created)
	require.Len(t, short, 1)
	assert.Equal(t, oil.ID, short[0].ItemID)
	assert.Equal(t, 5.0, short[0].AvailableQuantity)
	assert.Equal(t, 8.0, short[0].RequestedQuantity)

	var count int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM allocations`).Scan(&count))
	assert.Zero(t, count)

	rows, err := inv.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 30.0, rows[0].AvailableQuantity)
	assert.Equal(t, 5.0, rows[1].AvailableQuantity)
}

func TestRecordContributionAppendKeepsSingleBill(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	items := repository.NewItemRepo(db)
	bills := repository.NewBillRepo(db)

	rice, err := items.Create(ctx, "rice", "Kg")
	require.NoError(t, err)
	donate(t, bills, "B1", 3, rice.ID, 10)

	exists, err := bills.Exists(ctx, "B1", 3)
	require.NoError(t, err)
	assert.True(t, exists)

	// Repeating the same bill key without append must refuse.
	err = bills.RecordContribution(ctx,
		model.BillBook{BillBookCode: "B1", BillID: 3, DonarName: "anand"},
		[]repository.RequestLine{{ItemID: rice.ID, Quantity: 5}}, false)
	require.ErrorIs(t, err, repository.ErrBillExists)

	// With append the lines join the existing bill.
	err = bills.RecordContribution(ctx,
		model.BillBook{BillBookCode: "B1", BillID: 3, DonarName: "anand"},
		[]repository.RequestLine{{ItemID: rice.ID, Quantity: 5}}, true)
	require.NoError(t, err)

	var billRows, lineRows int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bill_books WHERE bill_book_code = 'B1' AND bill_id = 3`).Scan(&billRows))
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE bill_book_code = 'B1' AND bill_id = 3`).Scan(&lineRows))
	assert.Equal(t, 1, billRows)
	assert.Equal(t, 2, lineRows)

	donar, lines, err := bills.GetContribution(ctx, "B1", 3)
	require.NoError(t, err)
	assert.Equal(t, "anand", donar)
	assert.Len(t, lines, 2)

	records, err := bills.ListContributions(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Rice", records[0].Item)
	assert.Equal(t, "anand", records[0].DonarName)
}

func TestConcurrentAllocationsNeverOverdraw(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	items := repository.NewItemRepo(db)
	teams := repository.NewCookingTeamRepo(db)
	bills := repository.NewBillRepo(db)
	allocs := repository.NewAllocationRepo(db)
	inv := repository.NewInventoryRepo(db)

	rice, err := items.Create(ctx, "rice", "Kg")
	require.NoError(t, err)
	team, err := teams.Create(ctx, "Ravi", nil)
	require.NoError(t, err)
	donate(t, bills, "B1", 1, rice.ID, 30)

	// Two transactions race for the same 30 Kg; the item row lock
	// serializes them, so the loser re-reads 10 available and refuses.
	results := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := allocs.Allocate(ctx, team.ID,
				[]repository.RequestLine{{ItemID: rice.ID, Quantity: 20}}, nil)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, refused int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, repository.ErrInsufficientInventory):
			refused++
		default:
			t.Fatalf("unexpected allocation error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, refused)

	rows, err := inv.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 10.0, rows[0].AvailableQuantity)
}
