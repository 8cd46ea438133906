package handlers

import (
	"errors"
	"net/http"

	request "proassignment/internal/adapter/http/dto/request"
	response "proassignment/internal/adapter/http/dto/response"
	"proassignment/internal/usecase"
	"proassignment/pkg"

	"github.com/gin-gonic/gin"
)

// ChatHandler serves the per-assignment conversation threads.
type ChatHandler struct {
	usecase usecase.IChatUseCase
}

func NewChatHandler(uc usecase.IChatUseCase) *ChatHandler {
	return &ChatHandler{usecase: uc}
}

func (h *ChatHandler) GetForAssignment(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	conv, err := h.usecase.GetForAssignment(c.Request.Context(), v, c.Param("id"))
	if err != nil {
		renderError(c, mapChatError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromConversation(conv))
}

func (h *ChatHandler) ListMessages(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	msgs, err := h.usecase.ListMessages(c.Request.Context(), v, c.Param("id"))
	if err != nil {
		renderError(c, mapChatError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromMessages(msgs))
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	var payload request.SendMessageRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		renderError(c, pkg.NewDomainErrorSimple("EMPTY_MESSAGE", "Message body is empty", http.StatusBadRequest))
		return
	}
	msg, err := h.usecase.SendMessage(c.Request.Context(), v, c.Param("id"), payload.Body)
	if err != nil {
		renderError(c, mapChatError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromMessage(msg))
}

func mapChatError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrConversationNotFound):
		return pkg.NewDomainErrorSimple("CONVERSATION_NOT_FOUND", "Conversation not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrEmptyMessage):
		return pkg.NewDomainErrorSimple("EMPTY_MESSAGE", "Message body is empty", http.StatusBadRequest)
	default:
		return mapCommonError(err)
	}
}
