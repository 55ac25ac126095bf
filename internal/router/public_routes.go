package router

import (
	"github.com/labstack/echo/v4"

	"github.com/nagarjunr/donation-tracker/internal/handler"
)

// RegisterPublic registers the read-only browse endpoints on the
// provided Echo instance.  These routes return the item catalogue, the
// derived inventory, cooking teams, allocation history and individual
// bill records.  No JWT or role middleware is applied so that volunteers
// at the venue can look up stock and bills without logging in.  The
// availability check is also public: it is a pure read that commits
// nothing.
func RegisterPublic(e *echo.Echo, catalog *handler.CatalogHandler, inv *handler.InventoryHandler, teams *handler.TeamHandler, contrib *handler.ContributionHandler, alloc *handler.AllocationHandler) {
	// Item catalogue with units of measurement
	e.GET("/v1/items", catalog.ListItems)
	// Derived inventory: donated minus allocated per item
	e.GET("/v1/inventory", inv.GetInventory)
	// Dry-run availability check for a prospective allocation
	e.POST("/v1/allocations/check", inv.CheckAvailability)
	// Cooking teams and their supervisors
	e.GET("/v1/teams", teams.ListTeams)
	// Allocation history, optionally filtered by ?supervisor=
	e.GET("/v1/allocations", alloc.ListAllocations)
	// Full donation register: every contribution line across all bills
	e.GET("/v1/contributions", contrib.ListContributions)
	// A single bill's donor and contribution lines
	e.GET("/v1/bills/:code/:id", contrib.GetContribution)
	// Existence probe used before recording against a bill key
	e.GET("/v1/bills/:code/:id/exists", contrib.BillExists)
}
