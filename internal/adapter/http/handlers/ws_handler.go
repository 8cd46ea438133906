package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type connectionServer interface {
	ServeWS(w http.ResponseWriter, r *http.Request, userID string) error
}

// WSHandler upgrades authenticated requests to the live event stream.
type WSHandler struct {
	hub connectionServer
}

func NewWSHandler(hub connectionServer) *WSHandler {
	return &WSHandler{hub: hub}
}

func (h *WSHandler) Connect(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	if err := h.hub.ServeWS(c.Writer, c.Request, v.UserID); err != nil {
		// the upgrader already wrote the HTTP error
		log.WithError(err).WithField("user_id", v.UserID).Warn("[events][handler] websocket upgrade failed")
	}
}
