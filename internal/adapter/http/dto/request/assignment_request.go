package request

import (
	"errors"
	"strings"
	"time"

	"proassignment/internal/domain/entities"
	"proassignment/internal/usecase"
)

var ErrInvalidDeadline = errors.New("invalid deadline")

// CreateAssignmentForm carries the text fields of the multipart create request.
// Files arrive under the "files" key.
type CreateAssignmentForm struct {
	Title       string `form:"title" binding:"required"`
	Subject     string `form:"subject"`
	Description string `form:"description"`
	Deadline    string `form:"deadline"`
}

var deadlineLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

// ResolveDeadline accepts RFC3339, a datetime-local value or a bare date.
// An empty value means no deadline.
func (f CreateAssignmentForm) ResolveDeadline() (*time.Time, error) {
	v := strings.TrimSpace(f.Deadline)
	if v == "" {
		return nil, nil
	}
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, ErrInvalidDeadline
}

type SetPriceRequest struct {
	ClientPrice float64 `json:"client_price" binding:"required,gt=0"`
}

type AssignWriterRequest struct {
	WriterID    string   `json:"writer_id" binding:"required"`
	WriterPrice float64  `json:"writer_price" binding:"required,gt=0"`
	ClientPrice *float64 `json:"client_price" binding:"omitempty,gt=0"`
}

func (r AssignWriterRequest) ToInput() usecase.AssignWriterInput {
	return usecase.AssignWriterInput{
		WriterID:    strings.TrimSpace(r.WriterID),
		WriterPrice: r.WriterPrice,
		ClientPrice: r.ClientPrice,
	}
}

// ProgressRequest uses a pointer so that an explicit 0 passes "required".
type ProgressRequest struct {
	Progress *int `json:"progress" binding:"required,min=0,max=99"`
}

type RateRequest struct {
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Feedback string `json:"feedback"`
}

// ResolveStatus maps the list filter query value, treating "all" as no filter.
func ResolveStatus(v string) entities.AssignmentStatus {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, "all") {
		return ""
	}
	return entities.AssignmentStatus(v)
}
