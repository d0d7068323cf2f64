package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/smartfit/smartfit-api/internal/apperror"
	"github.com/smartfit/smartfit-api/internal/observability"
)

type aiRequest struct {
	Message string `json:"message"`
	Prompt  string `json:"prompt"`
	Context string `json:"context"`
}

// HandleAI relays a prompt to the text-generation service and returns only
// the generated text. Upstream failures are never detailed to the client.
func (h *Handler) HandleAI(c *gin.Context) {
	var req aiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		observability.RecordAIRequest("bad_request")
		writeError(c, apperror.BadRequest("Message is required"))
		return
	}

	prompt := strings.TrimSpace(req.Message)
	if prompt == "" {
		prompt = strings.TrimSpace(req.Prompt)
	}
	if prompt == "" {
		observability.RecordAIRequest("bad_request")
		writeError(c, apperror.BadRequest("Message is required"))
		return
	}

	reply, err := h.AI.GenerateReply(c.Request.Context(), prompt, req.Context)
	if err != nil {
		observability.RecordAIRequest("upstream_error")
		log.Error().Err(err).Msg("AI request failed")
		writeError(c, apperror.Upstream("Failed to generate AI response"))
		return
	}

	observability.RecordAIRequest("ok")
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
