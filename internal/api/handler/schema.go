package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

// registerRequest carries the candidate username. Binding it through a typed
// string field is what rejects wrong-typed payloads (numbers, booleans,
// arrays) before any domain logic runs.
type registerRequest struct {
	Username string `json:"username" validate:"required"`
}

// Response-only types owned by the transport layer.
// These are intentionally separate from domain types so the JSON contract is
// not coupled to internal service changes.

type accountResponse struct {
	Username   string    `json:"username"`
	LastSeenAt time.Time `json:"last_seen_at"`
	CreatedAt  time.Time `json:"created_at"`
	Role       int       `json:"role"`
}

type registerResponse struct {
	Account  accountResponse `json:"account"`
	Location string          `json:"location"`
}
