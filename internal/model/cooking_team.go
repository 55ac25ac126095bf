package model

// CookingTeam is a crew that receives stock from inventory to prepare
// dishes.  Teams are identified to operators by their supervisor's name,
// which is unique.
type CookingTeam struct {
    ID              uint64  // cooking_teams.id
    SupervisorName  string  // cooking_teams.supervisor_name
    SupervisorPhone *string // cooking_teams.supervisor_phone_num (nullable)
}
