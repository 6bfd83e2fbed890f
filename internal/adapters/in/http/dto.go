package http

import "time"

// CreateItemRequest is the body of POST /api/v1/items. The identifier is
// optional; one is generated when absent.
type CreateItemRequest struct {
	ID string `json:"id,omitempty"`
}

// CreateItemResponse reports the identifier of a newly registered item.
type CreateItemResponse struct {
	ID string `json:"id"`
}

// TransitionRequest is the body of POST /api/v1/items/:id/transitions.
type TransitionRequest struct {
	Target string `json:"target"`
	Reason string `json:"reason"`
	Actor  string `json:"actor"`
}

// TransitionResponse reports a committed transition.
type TransitionResponse struct {
	ItemID      string    `json:"item_id"`
	FromState   string    `json:"from_state"`
	ToState     string    `json:"to_state"`
	Version     int64     `json:"version"`
	CommittedAt time.Time `json:"committed_at"`
}

// ItemResponse represents one tracked item.
type ItemResponse struct {
	ID           string                 `json:"id"`
	CurrentState string                 `json:"current_state"`
	Version      int64                  `json:"version"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
	History      []HistoryEntryResponse `json:"history"`
}

// HistoryEntryResponse represents one committed history entry.
type HistoryEntryResponse struct {
	From       string    `json:"from"`
	To         string    `json:"to"`
	Reason     string    `json:"reason"`
	Actor      string    `json:"actor"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AuditEntryResponse represents one recorded transition attempt.
type AuditEntryResponse struct {
	ItemID     string    `json:"item_id"`
	FromState  string    `json:"from_state"`
	ToState    string    `json:"to_state"`
	Outcome    string    `json:"outcome"`
	Violations []string  `json:"violations"`
	Actor      string    `json:"actor"`
	RecordedAt time.Time `json:"recorded_at"`
}

// ErrorResponse is the uniform error body. Code carries the machine-readable
// rejection reason so clients need not parse the message.
type ErrorResponse struct {
	Code       int      `json:"code"`
	ReasonCode string   `json:"reason_code,omitempty"`
	Message    string   `json:"message"`
	Violations []string `json:"violations,omitempty"`
}
