package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nagarjunr/donation-tracker/internal/queue"
	"github.com/nagarjunr/donation-tracker/internal/repository"
	queue_publisher "github.com/nagarjunr/donation-tracker/internal/service"
)

// AllocationHandler serves the allocation history and the allocation
// commit. The commit is the one operation with real shape in this
// system: it re-validates team existence and availability inside the
// same transaction that inserts the rows.
type AllocationHandler struct {
	Allocations *repository.AllocationRepo
	Teams       *repository.CookingTeamRepo
}

// NewAllocationHandler constructs an AllocationHandler with the provided
// repositories. All dependencies must be non-nil.
func NewAllocationHandler(allocations *repository.AllocationRepo, teams *repository.CookingTeamRepo) *AllocationHandler {
	if allocations == nil || teams == nil {
		panic("nil repository passed to NewAllocationHandler")
	}
	return &AllocationHandler{Allocations: allocations, Teams: teams}
}

// ListAllocations handles GET /v1/allocations. The optional
// ?supervisor= query parameter filters the history to one team by its
// supervisor's name.
func (h *AllocationHandler) ListAllocations(c echo.Context) error {
	supervisor := c.QueryParam("supervisor")
	rows, err := h.Allocations.List(c.Request().Context(), supervisor)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"allocations": rows})
}

// Allocate handles POST /v1/allocations. The body carries the cooking
// team id, parallel item_ids/quantities lists and an optional dish.
// Responses: 400 on malformed lines, 404 when the team does not exist,
// 409 with the shortfall table when any line exceeds availability, 201
// with the created rows otherwise. The batch is all-or-nothing. On
// success an allocation.committed event is published fire-and-forget.
func (h *AllocationHandler) Allocate(c echo.Context) error {
	var body struct {
		CookingTeamID uint64    `json:"cooking_team_id"`
		ItemIDs       []uint64  `json:"item_ids"`
		Quantities    []float64 `json:"quantities"`
		Dish          *string   `json:"dish"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.CookingTeamID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cooking_team_id is required"})
	}
	lines, msg := zipLines(body.ItemIDs, body.Quantities)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	if body.Dish != nil {
		d := strings.TrimSpace(*body.Dish)
		if d == "" {
			body.Dish = nil
		} else {
			body.Dish = &d
		}
	}

	ctx := c.Request().Context()
	created, short, err := h.Allocations.Allocate(ctx, body.CookingTeamID, lines, body.Dish)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTeamNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no cooking team found with this id"})
		case errors.Is(err, repository.ErrInsufficientInventory):
			return c.JSON(http.StatusConflict, echo.Map{
				"error":      "requested quantities exceed available inventory",
				"shortfalls": short,
			})
		case errors.Is(err, repository.ErrSizeMismatch):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to allocate items"})
	}

	// Supervisor name is only needed for the event payload; a lookup
	// failure here must not fail the committed allocation.
	supervisor := ""
	if team, err := h.Teams.GetByID(ctx, body.CookingTeamID); err == nil {
		supervisor = team.SupervisorName
	}
	staffID, _ := getStaffID(c)
	ev := queue.AllocationCommittedEvent{
		CookingTeamID:  body.CookingTeamID,
		SupervisorName: supervisor,
		Dish:           body.Dish,
		Lines:          eventLines(lines),
		CommittedBy:    staffID,
		CommittedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if err := queue_publisher.PublishAllocationCommitted(ctx, ev); err != nil {
		c.Logger().Warnf("publish allocation.committed failed: %v", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"allocations": created})
}
