package models

// ChatRequest is the body of POST /api/chat. Model, max_tokens and
// temperature are optional; zero values fall back to service defaults.
type ChatRequest struct {
	Prompt      string  `json:"prompt" binding:"required"`
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float32 `json:"temperature"`
}

// ChatResponse is the body returned by POST /api/chat.
type ChatResponse struct {
	Response  string `json:"response"`
	ModelUsed string `json:"model_used"`
}
