package routes

import (
	"proassignment/internal/adapter/http/middleware"
	"proassignment/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

const (
	PathAuth          = "/auth"
	PathUsers         = "/users"
	PathNotifications = "/notifications"
	PathConversations = "/conversations"
	PathWS            = "/ws"
)

func addAccountRoutes(rg *gin.RouterGroup, h Handlers, auth *middleware.AuthMiddleware) {
	accounts := rg.Group(PathAuth)
	{
		accounts.POST("/register", auth.OptionalAuth(), h.Auth.Register)
		accounts.POST("/login", h.Auth.Login)
		accounts.GET("/me", auth.RequireAuth(), h.Auth.Me)
	}

	rg.GET(PathUsers+"/writers", auth.RequireAuth(entities.RoleAdmin), h.Auth.ListWriters)

	notifications := rg.Group(PathNotifications, auth.RequireAuth())
	{
		notifications.GET("", h.Notifications.List)
		notifications.PATCH("/read-all", h.Notifications.MarkAllRead)
		notifications.PATCH("/:id/read", h.Notifications.MarkRead)
	}

	conversations := rg.Group(PathConversations, auth.RequireAuth())
	{
		conversations.GET("/assignments/:id", h.Chat.GetForAssignment)
		conversations.GET("/:id/messages", h.Chat.ListMessages)
		conversations.POST("/:id/messages", h.Chat.SendMessage)
	}

	rg.GET(PathWS, auth.RequireAuth(), h.WS.Connect)
}
