package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jayyu23/daNomNoms-monad/internal/agent"
)

// AgentChatter runs one conversational ordering turn.
// Implemented by agent.NewService; faked in tests.
type AgentChatter interface {
	Chat(ctx context.Context, threadID, prompt string) (*agent.Reply, error)
}

// AgentChatRequest is the chat payload. ThreadID continues an existing
// conversation; omit it to start a new one.
type AgentChatRequest struct {
	Prompt   string `json:"prompt" binding:"required"`
	ThreadID string `json:"thread_id"`
}

// AgentChatResponse carries the assistant reply and the thread to continue on
type AgentChatResponse struct {
	Response string `json:"response"`
	ThreadID string `json:"thread_id"`
}

// HandleAgentChat handles POST /api/agent/chat
func HandleAgentChat(agents AgentChatter, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AgentChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		reply, err := agents.Chat(c.Request.Context(), req.ThreadID, req.Prompt)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, AgentChatResponse{
			Response: reply.Response,
			ThreadID: reply.ThreadID,
		})
	}
}
