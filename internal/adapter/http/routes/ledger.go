package routes

import (
	"proassignment/internal/adapter/http/middleware"
	"proassignment/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

const (
	PathPaysheets = "/paysheets"
	PathPayments  = "/payments"
)

func addLedgerRoutes(rg *gin.RouterGroup, h Handlers, auth *middleware.AuthMiddleware) {
	admin := auth.RequireAuth(entities.RoleAdmin)
	client := auth.RequireAuth(entities.RoleClient)

	paysheets := rg.Group(PathPaysheets, auth.RequireAuth(entities.RoleWriter, entities.RoleAdmin))
	{
		paysheets.GET("", h.Paysheets.List)
		paysheets.GET("/payments", h.Paysheets.IndividualPayments)
		paysheets.GET("/summary", h.Paysheets.Summary)
		paysheets.POST("/generate", admin, h.Paysheets.Generate)
		paysheets.GET("/:id", h.Paysheets.Get)
		paysheets.PATCH("/:id/paid", admin, h.Paysheets.MarkPaid)
	}

	payments := rg.Group(PathPayments)
	{
		// server-to-server callback, authenticated by its signature
		payments.POST("/notify", h.Payments.Notify)
		payments.POST("/checkout/assignments/:id", client, h.Payments.CheckoutAssignment)
		payments.POST("/checkout/paysheets/:id", admin, h.Payments.CheckoutPaysheet)
		payments.POST("/assignments/:id/charge", client, h.Payments.Charge)
	}
}
