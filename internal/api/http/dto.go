package http

// CreateSessionRequest represents the payload for POST /api/sessions.
type CreateSessionRequest struct {
	Values   []int  `json:"values" binding:"required"`
	Strategy string `json:"strategy"`
}

// TurnRequest represents the payload for POST /api/sessions/:id/turns.
type TurnRequest struct {
	Slot *int `json:"slot" binding:"required"`
}
