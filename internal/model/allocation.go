package model

import "time"

// Allocation records stock issued from inventory to a cooking team.
// Confirmed allocations must never push an item's derived available
// quantity below zero; the commit path re-checks availability inside
// the same transaction that inserts these rows.
//
// Fields:
//  ID            – primary key identifier.
//  CookingTeamID – team the stock was issued to.
//  ItemID        – item taken from inventory.
//  Quantity      – amount issued, in the item's unit.
//  Dish          – optional dish the stock is intended for.
//  AllocatedAt   – commit timestamp.
type Allocation struct {
    ID            uint64    // allocations.id
    CookingTeamID uint64    // allocations.cooking_team_id
    ItemID        uint64    // allocations.item_id
    Quantity      float64   // allocations.quantity
    Dish          *string   // allocations.dish (nullable)
    AllocatedAt   time.Time // allocations.allocated_at
}
