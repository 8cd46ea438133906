package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	request "proassignment/internal/adapter/http/dto/request"
	response "proassignment/internal/adapter/http/dto/response"
	"proassignment/internal/domain/entities"
	"proassignment/internal/usecase"
	"proassignment/pkg"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// AssignmentHandler exposes the assignment lifecycle. Every mutation answers
// with the role-projected assignment.
type AssignmentHandler struct {
	usecase usecase.IAssignmentUseCase
	present func(entities.Assignment, entities.Viewer) response.AssignmentResponse
}

func NewAssignmentHandler(uc usecase.IAssignmentUseCase) *AssignmentHandler {
	return &AssignmentHandler{usecase: uc, present: response.FromAssignment}
}

// Create godoc
// @Summary Submit an assignment
// @Tags Assignments
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param files formData file true "Brief and attachments"
// @Success 201 {object} response.AssignmentResponse
// @Failure 400 {object} pkg.HTTPError
// @Router /v1/assignments [post]
func (h *AssignmentHandler) Create(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	var form request.CreateAssignmentForm
	if err := c.ShouldBind(&form); err != nil {
		renderError(c, errInvalidRequest)
		return
	}
	deadline, err := form.ResolveDeadline()
	if err != nil {
		renderError(c, pkg.NewDomainErrorSimple("INVALID_DEADLINE", "Invalid deadline", http.StatusBadRequest))
		return
	}
	files, closeFiles, err := readUploads(c, "files")
	if err != nil {
		renderError(c, errInvalidRequest)
		return
	}
	defer closeFiles()

	created, err := h.usecase.Create(c.Request.Context(), v, usecase.CreateAssignmentInput{
		Title:       form.Title,
		Subject:     form.Subject,
		Description: form.Description,
		Deadline:    deadline,
		Files:       files,
	})
	if err != nil {
		log.Printf("[assignment][handler] create failed user_id=%s err=%v", v.UserID, err)
		renderError(c, mapAssignmentError(err))
		return
	}
	h.respond(c, http.StatusCreated, created, v)
}

func (h *AssignmentHandler) List(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	list, err := h.usecase.List(c.Request.Context(), v, request.ResolveStatus(c.Query("status")))
	if err != nil {
		renderError(c, mapAssignmentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromAssignments(list, v))
}

func (h *AssignmentHandler) Get(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	a, err := h.usecase.Get(c.Request.Context(), v, c.Param("id"))
	if err != nil {
		renderError(c, mapAssignmentError(err))
		return
	}
	c.JSON(http.StatusOK, h.present(a, v))
}

func (h *AssignmentHandler) SetPrice(c *gin.Context) {
	var payload request.SetPriceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		renderError(c, pkg.NewDomainErrorSimple("INVALID_PRICE", "Price must be greater than zero", http.StatusBadRequest))
		return
	}
	h.mutate(c, "set-price", func(ctx context.Context, v entities.Viewer, id string) (entities.Assignment, error) {
		return h.usecase.SetClientPrice(ctx, v, id, payload.ClientPrice)
	})
}

func (h *AssignmentHandler) AcceptPrice(c *gin.Context) {
	h.mutate(c, "accept-price", h.usecase.AcceptPrice)
}

func (h *AssignmentHandler) RejectPrice(c *gin.Context) {
	h.mutate(c, "reject-price", h.usecase.RejectPrice)
}

func (h *AssignmentHandler) UploadPaymentProof(c *gin.Context) {
	file, closeFile, err := readUpload(c, "file")
	if err != nil {
		renderError(c, pkg.NewDomainErrorSimple("MISSING_FILE", "A payment proof file is required", http.StatusBadRequest))
		return
	}
	defer closeFile()
	h.mutate(c, "payment-proof", func(ctx context.Context, v entities.Viewer, id string) (entities.Assignment, error) {
		return h.usecase.UploadPaymentProof(ctx, v, id, file)
	})
}

func (h *AssignmentHandler) ConfirmPayment(c *gin.Context) {
	h.mutate(c, "confirm-payment", h.usecase.ConfirmPayment)
}

func (h *AssignmentHandler) AssignWriter(c *gin.Context) {
	var payload request.AssignWriterRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		renderError(c, pkg.NewDomainErrorSimple("INVALID_ASSIGNMENT", "writer_id and a positive writer_price are required", http.StatusBadRequest))
		return
	}
	h.mutate(c, "assign-writer", func(ctx context.Context, v entities.Viewer, id string) (entities.Assignment, error) {
		return h.usecase.AssignWriter(ctx, v, id, payload.ToInput())
	})
}

func (h *AssignmentHandler) UpdateProgress(c *gin.Context) {
	var payload request.ProgressRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		renderError(c, pkg.NewDomainErrorSimple("INVALID_PROGRESS", "Progress must be between 0 and 99", http.StatusBadRequest))
		return
	}
	h.mutate(c, "progress", func(ctx context.Context, v entities.Viewer, id string) (entities.Assignment, error) {
		return h.usecase.UpdateProgress(ctx, v, id, *payload.Progress)
	})
}

func (h *AssignmentHandler) UploadCompletedWork(c *gin.Context) {
	files, closeFiles, err := readUploads(c, "files")
	if err != nil {
		renderError(c, errInvalidRequest)
		return
	}
	defer closeFiles()
	h.mutate(c, "completed", func(ctx context.Context, v entities.Viewer, id string) (entities.Assignment, error) {
		return h.usecase.UploadCompletedWork(ctx, v, id, files)
	})
}

func (h *AssignmentHandler) ApproveWork(c *gin.Context) {
	h.mutate(c, "approve", h.usecase.ApproveWork)
}

func (h *AssignmentHandler) Rate(c *gin.Context) {
	var payload request.RateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		renderError(c, pkg.NewDomainErrorSimple("INVALID_RATING", "Rating must be between 1 and 5", http.StatusBadRequest))
		return
	}
	h.mutate(c, "rate", func(ctx context.Context, v entities.Viewer, id string) (entities.Assignment, error) {
		return h.usecase.Rate(ctx, v, id, payload.Rating, payload.Feedback)
	})
}

func (h *AssignmentHandler) RequestIntegrityReport(c *gin.Context) {
	h.mutate(c, "integrity-request", h.usecase.RequestIntegrityReport)
}

func (h *AssignmentHandler) SendIntegrityToWriter(c *gin.Context) {
	h.mutate(c, "integrity-to-writer", h.usecase.SendIntegrityToWriter)
}

func (h *AssignmentHandler) SubmitIntegrityReport(c *gin.Context) {
	file, closeFile, err := readUpload(c, "file")
	if err != nil {
		renderError(c, pkg.NewDomainErrorSimple("MISSING_FILE", "A report file is required", http.StatusBadRequest))
		return
	}
	defer closeFile()
	h.mutate(c, "integrity-submit", func(ctx context.Context, v entities.Viewer, id string) (entities.Assignment, error) {
		return h.usecase.SubmitIntegrityReport(ctx, v, id, file)
	})
}

func (h *AssignmentHandler) SendIntegrityToUser(c *gin.Context) {
	h.mutate(c, "integrity-to-user", h.usecase.SendIntegrityToUser)
}

// DownloadFile streams one stored file: set is original, completed, proof or integrity.
func (h *AssignmentHandler) DownloadFile(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		renderError(c, errInvalidRequest)
		return
	}

	ref, rc, size, err := h.usecase.OpenFile(c.Request.Context(), v, c.Param("id"), c.Param("set"), index)
	if err != nil {
		renderError(c, mapAssignmentError(err))
		return
	}
	defer rc.Close()

	contentType := ref.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, size, contentType, rc, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", ref.Name),
	})
}

func (h *AssignmentHandler) mutate(
	c *gin.Context,
	action string,
	op func(ctx context.Context, v entities.Viewer, id string) (entities.Assignment, error),
) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	id := c.Param("id")
	updated, err := op(c.Request.Context(), v, id)
	if err != nil {
		log.Printf("[assignment][handler] %s failed assignment_id=%s user_id=%s err=%v", action, id, v.UserID, err)
		renderError(c, mapAssignmentError(err))
		return
	}
	log.Printf("[assignment][handler] %s success assignment_id=%s status=%s", action, id, updated.Status)
	h.respond(c, http.StatusOK, updated, v)
}

// respond renders a committed assignment, degrading to a partial body when
// the projection fails.
func (h *AssignmentHandler) respond(c *gin.Context, status int, a entities.Assignment, v entities.Viewer) {
	defer func() {
		if r := recover(); r != nil {
			writePartial(c, a.ID, string(a.Status), r)
		}
	}()
	body := h.present(a, v)
	c.JSON(status, body)
}

func mapAssignmentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidAssignmentInput), errors.Is(err, usecase.ErrInvalidStatusFilter):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrMissingFiles):
		return pkg.NewDomainErrorSimple("MISSING_FILES", "At least one file is required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrFileTooLarge):
		return pkg.NewDomainErrorSimple("FILE_TOO_LARGE", "File exceeds the upload limit", http.StatusRequestEntityTooLarge)
	case errors.Is(err, usecase.ErrInvalidPrice):
		return pkg.NewDomainErrorSimple("INVALID_PRICE", "Price must be greater than zero", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidRating):
		return pkg.NewDomainErrorSimple("INVALID_RATING", "Rating must be between 1 and 5", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrAlreadyRated):
		return pkg.NewDomainErrorSimple("ALREADY_RATED", "Assignment already rated", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidProgress):
		return pkg.NewDomainErrorSimple("INVALID_PROGRESS", "Progress must be between 0 and 99", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrWriterNotFound):
		return pkg.NewDomainErrorSimple("WRITER_NOT_FOUND", "Writer not found", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidIntegrityTransition):
		return pkg.NewDomainErrorSimple("INVALID_INTEGRITY_TRANSITION", "Integrity report action not allowed now", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrFileNotFound):
		return pkg.NewDomainErrorSimple("FILE_NOT_FOUND", "File not found", http.StatusNotFound)
	default:
		return mapCommonError(err)
	}
}
