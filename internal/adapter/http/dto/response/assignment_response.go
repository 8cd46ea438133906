package response

import (
	"fmt"
	"time"

	"proassignment/internal/domain/entities"
)

type FileResponse struct {
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type,omitempty"`
	UploadedAt  time.Time `json:"uploaded_at"`
	URL         string    `json:"url"`
}

type IntegrityReportResponse struct {
	Status      string        `json:"status"`
	File        *FileResponse `json:"file,omitempty"`
	RequestedAt time.Time     `json:"requested_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type PaymentResponse struct {
	Method    string `json:"method,omitempty"`
	Status    string `json:"status,omitempty"`
	Reference string `json:"reference,omitempty"`
}

// AssignmentResponse is the role-projected view of an assignment. Clients see
// the client price only and writers the writer price only.
type AssignmentResponse struct {
	ID          string     `json:"id"`
	StudentID   string     `json:"student_id"`
	WriterID    string     `json:"writer_id,omitempty"`
	Title       string     `json:"title"`
	Subject     string     `json:"subject,omitempty"`
	Description string     `json:"description,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	ClientPrice *float64   `json:"client_price,omitempty"`
	WriterPrice *float64   `json:"writer_price,omitempty"`
	Status      string     `json:"status"`
	Progress    int        `json:"progress"`

	Files           []FileResponse           `json:"files"`
	CompletedFiles  []FileResponse           `json:"completed_files"`
	PaymentProof    *FileResponse            `json:"payment_proof,omitempty"`
	IntegrityReport *IntegrityReportResponse `json:"integrity_report,omitempty"`

	AdminApproved bool            `json:"admin_approved"`
	Rating        int             `json:"rating"`
	Feedback      string          `json:"feedback,omitempty"`
	Payment       PaymentResponse `json:"payment"`
	PaysheetID    string          `json:"paysheet_id,omitempty"`

	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func FromAssignment(a entities.Assignment, viewer entities.Viewer) AssignmentResponse {
	out := AssignmentResponse{
		ID:             a.ID,
		StudentID:      a.StudentID,
		WriterID:       a.WriterID,
		Title:          a.Title,
		Subject:        a.Subject,
		Description:    a.Description,
		Deadline:       a.Deadline,
		Status:         string(a.Status),
		Progress:       a.Progress,
		Files:          fromFiles(a.ID, "original", a.Files),
		CompletedFiles: fromFiles(a.ID, "completed", a.CompletedFiles),
		AdminApproved:  a.AdminApproved,
		Rating:         a.Rating,
		Feedback:       a.Feedback,
		Payment: PaymentResponse{
			Method:    a.Payment.Method,
			Status:    string(a.Payment.Status),
			Reference: a.Payment.Reference,
		},
		CompletedAt: a.CompletedAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}

	clientPrice, writerPrice := a.ClientPrice, a.WriterPrice
	switch viewer.Role {
	case entities.RoleAdmin:
		out.ClientPrice = &clientPrice
		out.WriterPrice = &writerPrice
		out.PaysheetID = a.PaysheetID
	case entities.RoleWriter:
		out.WriterPrice = &writerPrice
		out.PaysheetID = a.PaysheetID
	default:
		out.ClientPrice = &clientPrice
	}

	if a.PaymentProof != nil && !viewer.IsWriter() {
		f := fromFile(a.ID, "proof", 0, *a.PaymentProof)
		out.PaymentProof = &f
	}
	if r := a.IntegrityReport; r != nil {
		report := &IntegrityReportResponse{
			Status:      string(r.Status),
			RequestedAt: r.RequestedAt,
			UpdatedAt:   r.UpdatedAt,
		}
		if r.File != nil && (!viewer.IsClient() || r.Status == entities.IntegritySentToUser) {
			f := fromFile(a.ID, "integrity", 0, *r.File)
			report.File = &f
		}
		out.IntegrityReport = report
	}
	return out
}

func FromAssignments(list []entities.Assignment, viewer entities.Viewer) []AssignmentResponse {
	out := make([]AssignmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, FromAssignment(a, viewer))
	}
	return out
}

func fromFiles(assignmentID, set string, files []entities.FileRef) []FileResponse {
	out := make([]FileResponse, 0, len(files))
	for i, f := range files {
		out = append(out, fromFile(assignmentID, set, i, f))
	}
	return out
}

func fromFile(assignmentID, set string, index int, f entities.FileRef) FileResponse {
	return FileResponse{
		Name:        f.Name,
		Size:        f.Size,
		ContentType: f.ContentType,
		UploadedAt:  f.UploadedAt,
		URL:         fmt.Sprintf("/v1/assignments/%s/files/%s/%d", assignmentID, set, index),
	}
}

// PartialResponse is written when a mutation was committed but its response
// could not be rendered.
type PartialResponse struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Partial bool   `json:"partial"`
	Message string `json:"message"`
}
