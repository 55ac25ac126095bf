package handler

import (
	"errors"   // errors.Is comparisons against repository sentinels
	"net/http" // HTTP status codes
	"strings"  // input trimming

	"github.com/labstack/echo/v4"
	"github.com/nagarjunr/donation-tracker/internal/model"
	"github.com/nagarjunr/donation-tracker/internal/repository"
)

// CatalogHandler serves the item catalog: listing existing items and
// adding new ones. Adding is staff-only; the route group applies JWT
// and role middleware before these methods run.
type CatalogHandler struct {
	Items *repository.ItemRepo
}

// NewCatalogHandler constructs a CatalogHandler. The repository must be non-nil.
func NewCatalogHandler(items *repository.ItemRepo) *CatalogHandler {
	if items == nil {
		panic("nil repository passed to NewCatalogHandler")
	}
	return &CatalogHandler{Items: items}
}

// ListItems handles GET /v1/items. It returns every catalog item
// ordered by id. An empty catalog yields an empty array, not an error.
func (h *CatalogHandler) ListItems(c echo.Context) error {
	items, err := h.Items.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]echo.Map, 0, len(items))
	for _, it := range items {
		out = append(out, echo.Map{
			"item_id":             it.ID,
			"item":                it.Name,
			"unit_of_measurement": it.UnitOfMeasurement,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// AddItem handles POST /v1/items. The body carries a name and a unit of
// measurement (Kg, L or Nos). An empty name or unknown unit is a 400;
// a name already present (case-insensitively) is a 409 and creates no row.
func (h *CatalogHandler) AddItem(c echo.Context) error {
	var body struct {
		Name string `json:"name"`
		Unit string `json:"unit_of_measurement"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "item name is required"})
	}
	if !model.Units[body.Unit] {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unit_of_measurement must be one of Kg, L, Nos"})
	}

	item, err := h.Items.Create(c.Request().Context(), body.Name, body.Unit)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "item already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"item_id":             item.ID,
		"item":                item.Name,
		"unit_of_measurement": item.UnitOfMeasurement,
	})
}
