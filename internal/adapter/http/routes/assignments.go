package routes

import (
	"proassignment/internal/adapter/http/middleware"
	"proassignment/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

const (
	PathAssignments = "/assignments"
)

func addAssignmentRoutes(rg *gin.RouterGroup, h Handlers, auth *middleware.AuthMiddleware) {
	client := auth.RequireAuth(entities.RoleClient)
	writer := auth.RequireAuth(entities.RoleWriter)
	admin := auth.RequireAuth(entities.RoleAdmin)

	assignments := rg.Group(PathAssignments, auth.RequireAuth())
	{
		assignments.POST("", client, h.Assignments.Create)
		assignments.GET("", h.Assignments.List)
		assignments.GET("/:id", h.Assignments.Get)
		assignments.GET("/:id/files/:set/:index", h.Assignments.DownloadFile)

		assignments.PATCH("/:id/price", admin, h.Assignments.SetPrice)
		assignments.PATCH("/:id/accept-price", client, h.Assignments.AcceptPrice)
		assignments.PATCH("/:id/reject-price", client, h.Assignments.RejectPrice)
		assignments.POST("/:id/payment-proof", client, h.Assignments.UploadPaymentProof)
		assignments.PATCH("/:id/confirm-payment", admin, h.Assignments.ConfirmPayment)
		assignments.PATCH("/:id/assign", admin, h.Assignments.AssignWriter)
		assignments.PATCH("/:id/progress", writer, h.Assignments.UpdateProgress)
		assignments.POST("/:id/completed", writer, h.Assignments.UploadCompletedWork)
		assignments.PATCH("/:id/approve", admin, h.Assignments.ApproveWork)
		assignments.PATCH("/:id/rate", client, h.Assignments.Rate)

		assignments.POST("/:id/integrity/request", client, h.Assignments.RequestIntegrityReport)
		assignments.PATCH("/:id/integrity/send-to-writer", admin, h.Assignments.SendIntegrityToWriter)
		assignments.POST("/:id/integrity/submit", writer, h.Assignments.SubmitIntegrityReport)
		assignments.PATCH("/:id/integrity/send-to-user", admin, h.Assignments.SendIntegrityToUser)
	}
}
