package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortfalls_AllSatisfiable(t *testing.T) {
	inventory := []InventoryRow{
		{ItemID: 1, Item: "Rice", AvailableQuantity: 50, UnitOfMeasurement: "Kg"},
		{ItemID: 2, Item: "Oil", AvailableQuantity: 10, UnitOfMeasurement: "L"},
	}
	req := []RequestLine{
		{ItemID: 1, Quantity: 20},
		{ItemID: 2, Quantity: 10}, // exactly available is satisfiable
	}

	short := Shortfalls(inventory, req)
	assert.Empty(t, short)
}

func TestShortfalls_FlagsExcessRequests(t *testing.T) {
	// Donations total 50 Kg rice, 20 Kg already allocated -> 30 available.
	inventory := []InventoryRow{
		{ItemID: 1, Item: "Rice", AvailableQuantity: 30, UnitOfMeasurement: "Kg"},
	}
	req := []RequestLine{{ItemID: 1, Quantity: 40}}

	short := Shortfalls(inventory, req)
	require.Len(t, short, 1)
	assert.Equal(t, uint64(1), short[0].ItemID)
	assert.Equal(t, "Rice", short[0].Item)
	assert.Equal(t, 30.0, short[0].AvailableQuantity)
	assert.Equal(t, 40.0, short[0].RequestedQuantity)
}

func TestShortfalls_NeverDonatedItemCountsAsZero(t *testing.T) {
	// An item id absent from inventory must be flagged as fully
	// unavailable, not silently dropped.
	inventory := []InventoryRow{
		{ItemID: 1, Item: "Rice", AvailableQuantity: 30, UnitOfMeasurement: "Kg"},
	}
	req := []RequestLine{
		{ItemID: 1, Quantity: 10},
		{ItemID: 7, Quantity: 5},
	}

	short := Shortfalls(inventory, req)
	require.Len(t, short, 1)
	assert.Equal(t, uint64(7), short[0].ItemID)
	assert.Equal(t, 0.0, short[0].AvailableQuantity)
	assert.Equal(t, 5.0, short[0].RequestedQuantity)
}

func TestShortfalls_MixedLines(t *testing.T) {
	inventory := []InventoryRow{
		{ItemID: 1, Item: "Rice", AvailableQuantity: 30, UnitOfMeasurement: "Kg"},
		{ItemID: 2, Item: "Oil", AvailableQuantity: 5, UnitOfMeasurement: "L"},
		{ItemID: 3, Item: "Banana", AvailableQuantity: 100, UnitOfMeasurement: "Nos"},
	}
	req := []RequestLine{
		{ItemID: 1, Quantity: 30},
		{ItemID: 2, Quantity: 6},
		{ItemID: 3, Quantity: 12},
	}

	short := Shortfalls(inventory, req)
	require.Len(t, short, 1)
	assert.Equal(t, uint64(2), short[0].ItemID)
	assert.Equal(t, "Oil", short[0].Item)
}

func TestShortfalls_EmptyRequest(t *testing.T) {
	short := Shortfalls(nil, nil)
	assert.Empty(t, short)
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"rice", "Rice"},
		{"red chilli powder", "Red Chilli Powder"},
		{"", ""},
		{"Rice", "Rice"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TitleCase(tt.in), "TitleCase(%q)", tt.in)
	}
}
