package handler // handler defines http handlers

import (
    "errors"  // errors provides sentinel values used in getStaffID
    "strconv" // strconv converts strings to numeric types

    "github.com/labstack/echo/v4"                                 // echo defines request context types
    "github.com/nagarjunr/donation-tracker/internal/repository"   // repository holds the data access layer
)

// getStaffID extracts the staff id from echo.Context and converts it to uint64.
// The JWT middleware stores the subject claim under "user_id"; numeric JWT
// claims decode as float64, so several representations are accepted.
func getStaffID(c echo.Context) (uint64, error) {
    v := c.Get("user_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}

// zipLines pairs the parallel item id and quantity lists from a request
// body into repository request lines. It enforces the input constraints
// shared by the availability check, allocation commit and contribution
// recording: equal lengths, at least one line, non-zero item ids and
// strictly positive quantities. The returned message is empty when the
// input is valid.
func zipLines(itemIDs []uint64, quantities []float64) ([]repository.RequestLine, string) {
    if len(itemIDs) != len(quantities) {
        return nil, "item_ids and quantities must have the same size"
    }
    if len(itemIDs) == 0 {
        return nil, "at least one item/quantity line is required"
    }
    lines := make([]repository.RequestLine, 0, len(itemIDs))
    for i := range itemIDs {
        if itemIDs[i] == 0 {
            return nil, "item ids must be positive"
        }
        if quantities[i] <= 0 {
            return nil, "quantities must be positive"
        }
        lines = append(lines, repository.RequestLine{ItemID: itemIDs[i], Quantity: quantities[i]})
    }
    return lines, ""
}
