// Package queue defines message payloads exchanged over the message broker.
package queue

// Queue names for the domain events this service publishes.
const (
	DonationRecordedQueue    = "donation.recorded"
	AllocationCommittedQueue = "allocation.committed"
)

// EventLine is one item/quantity pair carried inside a domain event.
type EventLine struct {
	ItemID   uint64  `json:"item_id"`
	Quantity float64 `json:"quantity"`
}

// DonationRecordedEvent is published after a donor's contribution has
// been committed. It carries enough information for downstream
// consumers to log or notify without querying the primary database.
type DonationRecordedEvent struct {
	BillBookCode string      `json:"bill_book_code"`
	BillID       uint64      `json:"bill_id"`
	DonarName    string      `json:"donar_name"`
	Lines        []EventLine `json:"lines"`
	RecordedBy   uint64      `json:"recorded_by,omitempty"`
	RecordedAt   string      `json:"recorded_at"`
}

// AllocationCommittedEvent is published after stock has been issued
// from inventory to a cooking team.
type AllocationCommittedEvent struct {
	CookingTeamID  uint64      `json:"cooking_team_id"`
	SupervisorName string      `json:"supervisor_name"`
	Dish           *string     `json:"dish,omitempty"`
	Lines          []EventLine `json:"lines"`
	CommittedBy    uint64      `json:"committed_by,omitempty"`
	CommittedAt    string      `json:"committed_at"`
}
