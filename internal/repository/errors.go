// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrConflict signals that an insert collided with existing
// state (a duplicate item name or supervisor name), while
// ErrInsufficientInventory reports that an allocation request asked
// for more stock than the derived inventory can cover.
package repository

import "errors"

// ErrConflict is returned when an insert cannot proceed because of a
// uniqueness violation, such as adding an item whose name already
// exists (case-insensitively) or a cooking team whose supervisor name
// is taken. Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrInsufficientInventory is returned by the allocation commit when
// one or more requested lines exceed the available quantity. The
// accompanying shortfall rows list the offending lines. No allocation
// rows are inserted when this error is returned.
var ErrInsufficientInventory = errors.New("insufficient inventory")

// ErrSizeMismatch is returned when parallel item/quantity lists have
// different lengths. Handlers should translate this into HTTP 400.
var ErrSizeMismatch = errors.New("item and quantity lists must have the same size")
