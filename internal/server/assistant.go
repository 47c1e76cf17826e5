package server

import (
	"github.com/gin-gonic/gin"

	assistantdomain "github.com/lugspot/lugspot/internal/assistant/domain"
)

type chatRequest struct {
	Messages []assistantdomain.Message `json:"messages" binding:"required"`
}

func (s *Server) AssistantChat(c *gin.Context) {
	if _, ok := tenantID(c); !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	reply, err := s.assistantSvc.Chat(c.Request.Context(), req.Messages)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, reply)
}
