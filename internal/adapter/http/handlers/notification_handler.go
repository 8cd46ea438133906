package handlers

import (
	"errors"
	"net/http"

	response "proassignment/internal/adapter/http/dto/response"
	"proassignment/internal/usecase"
	"proassignment/pkg"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	usecase usecase.INotificationUseCase
}

func NewNotificationHandler(uc usecase.INotificationUseCase) *NotificationHandler {
	return &NotificationHandler{usecase: uc}
}

func (h *NotificationHandler) List(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	list, err := h.usecase.List(c.Request.Context(), v.UserID)
	if err != nil {
		renderError(c, mapNotificationError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromNotifications(list))
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	n, err := h.usecase.MarkRead(c.Request.Context(), v.UserID, c.Param("id"))
	if err != nil {
		renderError(c, mapNotificationError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromNotification(n))
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	updated, err := h.usecase.MarkAllRead(c.Request.Context(), v.UserID)
	if err != nil {
		renderError(c, mapNotificationError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

func mapNotificationError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrNotificationNotFound):
		return pkg.NewDomainErrorSimple("NOTIFICATION_NOT_FOUND", "Notification not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidNotificationInput):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
