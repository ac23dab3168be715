package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"syscatalog/internal/models"
	"syscatalog/pkg/response"
)

// Answerer is the answer-generation collaborator behind POST /api/chat.
type Answerer interface {
	Answer(ctx context.Context, req *models.ChatRequest) *models.ChatResponse
}

type ChatHandler struct {
	answerer Answerer
}

func NewChatHandler(answerer Answerer) *ChatHandler {
	return &ChatHandler{answerer: answerer}
}

// Chat handles POST /api/chat. The collaborator never errors; it
// degrades to explanatory text, so the only failure modes here are a
// bad request body and a panic-grade fault mapped to a generic 500.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	resp := h.answerer.Answer(c.Request.Context(), &req)
	if resp == nil {
		response.ServerError(c, "Failed to process chat request")
		return
	}
	c.JSON(http.StatusOK, resp)
}
