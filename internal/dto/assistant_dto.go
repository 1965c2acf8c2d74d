package dto

// ChatHistoryItem is one caller-supplied conversation turn. Content is a
// pointer so an absent key is distinguishable from an empty string and can be
// rejected at the boundary.
type ChatHistoryItem struct {
	Role    string  `json:"role"`
	Content *string `json:"content"`
}

type ChatRequest struct {
	Message string            `json:"message" validate:"required"`
	History []ChatHistoryItem `json:"history"`
}

// ChatResponse mirrors the dispatch core's CommandResult on the wire.
type ChatResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Payload map[string]interface{} `json:"payload"`
}
