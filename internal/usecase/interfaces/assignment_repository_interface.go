package interfaces

import (
	"context"

	"proassignment/internal/domain/entities"
)

// AssignmentFilter narrows List. Empty fields match everything.
type AssignmentFilter struct {
	StudentID string
	WriterID  string
	Status    entities.AssignmentStatus
}

// IAssignmentRepository abstracts DynamoDB persistence for Assignment.
//
// SaveIfStatus is the only lifecycle mutation after Create: it rewrites every
// field except paysheet_id, which the ledger owns, and only while the stored
// status still equals from. A lost race returns a zero Assignment and no error,
// so the caller can tell it apart from storage failures.

type IAssignmentRepository interface {
	Create(ctx context.Context, a entities.Assignment) (entities.Assignment, error)
	GetByID(ctx context.Context, id string) (entities.Assignment, error)
	List(ctx context.Context, filter AssignmentFilter) ([]entities.Assignment, error)
	SaveIfStatus(ctx context.Context, a entities.Assignment, from entities.AssignmentStatus) (entities.Assignment, error)
}
