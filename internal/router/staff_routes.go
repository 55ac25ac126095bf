package router

import (
	"github.com/labstack/echo/v4"

	"github.com/nagarjunr/donation-tracker/internal/handler"
	"github.com/nagarjunr/donation-tracker/internal/middleware"
)

// RegisterStaff registers the write endpoints under /v1.  All routes
// require a valid JWT with the STAFF or ADMIN role: recording
// contributions and committing allocations mutate the ledger, so they
// are restricted to authenticated event staff.
func RegisterStaff(e *echo.Echo, catalog *handler.CatalogHandler, teams *handler.TeamHandler, contrib *handler.ContributionHandler, alloc *handler.AllocationHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("STAFF", "ADMIN"),
	)
	// Catalogue and team management
	g.POST("/items", catalog.AddItem)
	g.POST("/teams", teams.AddTeam)
	// Ledger writes
	g.POST("/contributions", contrib.RecordContribution)
	g.POST("/allocations", alloc.Allocate)
}
