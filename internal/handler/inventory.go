package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nagarjunr/donation-tracker/internal/repository"
)

// InventoryHandler exposes the derived inventory and the availability
// check. Inventory is recomputed from donations minus allocations on
// every call; nothing is stored.
type InventoryHandler struct {
	Inventory *repository.InventoryRepo
}

// NewInventoryHandler constructs an InventoryHandler. The repository must be non-nil.
func NewInventoryHandler(inventory *repository.InventoryRepo) *InventoryHandler {
	if inventory == nil {
		panic("nil repository passed to NewInventoryHandler")
	}
	return &InventoryHandler{Inventory: inventory}
}

// GetInventory handles GET /v1/inventory. Each row is an item that has
// ever been donated with its remaining available quantity. A negative
// value can only appear transiently on a read; the allocation commit
// never lets a confirmed allocation push availability below zero.
func (h *InventoryHandler) GetInventory(c echo.Context) error {
	rows, err := h.Inventory.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"inventory": rows})
}

// CheckAvailability handles POST /v1/allocations/check. The body holds
// parallel item_ids and quantities lists; the response lists only the
// lines whose requested quantity exceeds availability. An empty
// shortfalls array means the whole request is satisfiable. Items never
// donated count as zero available and are flagged, not dropped.
func (h *InventoryHandler) CheckAvailability(c echo.Context) error {
	var body struct {
		ItemIDs    []uint64  `json:"item_ids"`
		Quantities []float64 `json:"quantities"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	lines, msg := zipLines(body.ItemIDs, body.Quantities)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	short, err := h.Inventory.Check(c.Request().Context(), lines)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"shortfalls": short})
}
