package entities

import "time"

// AssignmentStatus is the main lifecycle field of an assignment.
//
// StatusPaid is used twice: once the client payment is confirmed (before a writer
// is assigned) and again as the final state after the client rates the work.
// Use Assignment.IsClosed to tell them apart.
type AssignmentStatus string

const (
	StatusNew                   AssignmentStatus = "New"
	StatusPriceSet              AssignmentStatus = "Price Set"
	StatusPriceAccepted         AssignmentStatus = "Price Accepted"
	StatusPriceRejected         AssignmentStatus = "Price Rejected"
	StatusPaymentProofSubmitted AssignmentStatus = "Payment Proof Submitted"
	StatusPaid                  AssignmentStatus = "Paid"
	StatusInProgress            AssignmentStatus = "In Progress"
	StatusCompleted             AssignmentStatus = "Completed"
	StatusAdminApproved         AssignmentStatus = "Admin Approved"
)

// IntegrityStatus tracks the plagiarism report side flow. It never touches Status.
type IntegrityStatus string

const (
	IntegrityRequested       IntegrityStatus = "requested"
	IntegritySentToWriter    IntegrityStatus = "sent_to_writer"
	IntegrityWriterSubmitted IntegrityStatus = "writer_submitted"
	IntegritySentToUser      IntegrityStatus = "sent_to_user"
)

// PaymentState is shared by assignment card payments and paysheet payouts.
type PaymentState string

const (
	PaymentStatePending PaymentState = "Pending"
	PaymentStatePaid    PaymentState = "Paid"
	PaymentStateFailed  PaymentState = "Failed"
)

const (
	PaymentMethodCard         = "card"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodMercadoPago  = "mercadopago"
)

const (
	MinRating        = 1
	MaxRating        = 5
	ProgressComplete = 100
)

// FileRef points at a stored upload. Path is relative to the storage root.
type FileRef struct {
	Name        string    `json:"name"`
	Path        string    `json:"path"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type,omitempty"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

type IntegrityReport struct {
	Status      IntegrityStatus `json:"status"`
	File        *FileRef        `json:"file,omitempty"`
	RequestedAt time.Time       `json:"requested_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type PaymentInfo struct {
	Method    string       `json:"method,omitempty"`
	Status    PaymentState `json:"status,omitempty"`
	Reference string       `json:"reference,omitempty"`
}

// Assignment is the unit of work submitted by a client and fulfilled by a writer.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI student_id-index: student_id
//   - GSI writer_id-index: writer_id (sparse)
//
// ClientPrice and WriterPrice are zero until set.
type Assignment struct {
	ID          string           `json:"id"`
	StudentID   string           `json:"student_id"`
	WriterID    string           `json:"writer_id,omitempty"`
	Title       string           `json:"title"`
	Subject     string           `json:"subject,omitempty"`
	Description string           `json:"description,omitempty"`
	Deadline    *time.Time       `json:"deadline,omitempty"`
	ClientPrice float64          `json:"client_price"`
	WriterPrice float64          `json:"writer_price"`
	Status      AssignmentStatus `json:"status"`
	Progress    int              `json:"progress"`

	Files           []FileRef        `json:"files"`
	CompletedFiles  []FileRef        `json:"completed_files"`
	IntegrityReport *IntegrityReport `json:"integrity_report,omitempty"`
	PaymentProof    *FileRef         `json:"payment_proof,omitempty"`

	AdminApproved bool        `json:"admin_approved"`
	Rating        int         `json:"rating"`
	Feedback      string      `json:"feedback,omitempty"`
	Payment       PaymentInfo `json:"payment"`
	PaysheetID    string      `json:"paysheet_id,omitempty"`

	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (a Assignment) IsRated() bool {
	return a.Rating >= MinRating
}

// IsClosed reports the terminal Paid state reached through rating.
func (a Assignment) IsClosed() bool {
	return a.Status == StatusPaid && a.IsRated()
}

// PaymentSettled reports that the client payment has been received, whatever
// the later progress of the work.
func (a Assignment) PaymentSettled() bool {
	switch a.Status {
	case StatusPaid, StatusInProgress, StatusCompleted, StatusAdminApproved:
		return true
	}
	return false
}

func (a Assignment) HasWriter() bool {
	return a.WriterID != ""
}

// InvolvedUserIDs returns the client and, when assigned, the writer.
func (a Assignment) InvolvedUserIDs() []string {
	ids := []string{a.StudentID}
	if a.WriterID != "" {
		ids = append(ids, a.WriterID)
	}
	return ids
}

// EarningsReference is the timestamp used to pick a ledger period.
func (a Assignment) EarningsReference(now time.Time) time.Time {
	if a.CompletedAt != nil && !a.CompletedAt.IsZero() {
		return *a.CompletedAt
	}
	return now
}
