package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/nagarjunr/donation-tracker/internal/repository"
)

// TeamHandler serves cooking team listing and creation.
type TeamHandler struct {
	Teams *repository.CookingTeamRepo
}

// NewTeamHandler constructs a TeamHandler. The repository must be non-nil.
func NewTeamHandler(teams *repository.CookingTeamRepo) *TeamHandler {
	if teams == nil {
		panic("nil repository passed to NewTeamHandler")
	}
	return &TeamHandler{Teams: teams}
}

// ListTeams handles GET /v1/teams.
func (h *TeamHandler) ListTeams(c echo.Context) error {
	teams, err := h.Teams.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]echo.Map, 0, len(teams))
	for _, t := range teams {
		m := echo.Map{
			"id":              t.ID,
			"supervisor_name": t.SupervisorName,
		}
		if t.SupervisorPhone != nil {
			m["supervisor_phone_num"] = *t.SupervisorPhone
		}
		out = append(out, m)
	}
	return c.JSON(http.StatusOK, echo.Map{"teams": out})
}

// AddTeam handles POST /v1/teams. Supervisor name is required and
// unique; the phone number is optional. A duplicate supervisor name is
// reported as 409 without creating a row.
func (h *TeamHandler) AddTeam(c echo.Context) error {
	var body struct {
		SupervisorName  string  `json:"supervisor_name"`
		SupervisorPhone *string `json:"supervisor_phone_num"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.SupervisorName) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "supervisor name is required"})
	}

	team, err := h.Teams.Create(c.Request().Context(), body.SupervisorName, body.SupervisorPhone)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "cooking team already exists with this supervisor name"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	resp := echo.Map{
		"id":              team.ID,
		"supervisor_name": team.SupervisorName,
	}
	if team.SupervisorPhone != nil {
		resp["supervisor_phone_num"] = *team.SupervisorPhone
	}
	return c.JSON(http.StatusCreated, resp)
}
