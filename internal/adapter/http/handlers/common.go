package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	response "proassignment/internal/adapter/http/dto/response"
	"proassignment/internal/adapter/http/middleware"
	"proassignment/internal/domain/entities"
	"proassignment/internal/usecase"
	"proassignment/pkg"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

var (
	errInvalidRequest  = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	errUnauthenticated = pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Authentication required", http.StatusUnauthorized)
)

func renderError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

// viewer returns the authenticated caller or writes 401.
func viewer(c *gin.Context) (entities.Viewer, bool) {
	v, ok := middleware.ViewerFrom(c)
	if !ok {
		renderError(c, errUnauthenticated)
	}
	return v, ok
}

// mapCommonError covers errors shared by every lifecycle-facing handler.
func mapCommonError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrForbidden):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "You are not allowed to perform this action", http.StatusForbidden)
	case errors.Is(err, usecase.ErrAssignmentNotFound):
		return pkg.NewDomainErrorSimple("ASSIGNMENT_NOT_FOUND", "Assignment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaysheetNotFound):
		return pkg.NewDomainErrorSimple("PAYSHEET_NOT_FOUND", "Paysheet not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return pkg.NewDomainErrorSimple("INVALID_TRANSITION", "Action not allowed in the current status", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrLedgerConflict):
		return pkg.NewDomainErrorSimple("LEDGER_CONFLICT", "Ledger entry was modified concurrently, retry", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

// readUploads opens every multipart file under field. The caller closes the
// returned files once the use case has consumed them.
func readUploads(c *gin.Context, field string) ([]usecase.UploadedFile, func(), error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, func() {}, err
	}
	headers := form.File[field]

	files := make([]usecase.UploadedFile, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		opened = append(opened, f)
		files = append(files, usecase.UploadedFile{
			Name:        fh.Filename,
			Size:        fh.Size,
			ContentType: fh.Header.Get("Content-Type"),
			Content:     f,
		})
	}
	return files, closeAll, nil
}

// readUpload opens the single file under field.
func readUpload(c *gin.Context, field string) (usecase.UploadedFile, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return usecase.UploadedFile{}, func() {}, err
	}
	f, err := fh.Open()
	if err != nil {
		return usecase.UploadedFile{}, func() {}, err
	}
	return usecase.UploadedFile{
		Name:        fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
		Content:     f,
	}, func() { _ = f.Close() }, nil
}

// writePartial is the fallback body once a mutation is committed but its
// response could not be built.
func writePartial(c *gin.Context, id, status string, recovered any) {
	log.WithFields(log.Fields{"id": id, "status": status}).Errorf("[http] response formatting failed: %v", recovered)
	c.JSON(http.StatusOK, response.PartialResponse{
		ID:      id,
		Status:  status,
		Partial: true,
		Message: "The change was saved but the full response could not be built",
	})
}
