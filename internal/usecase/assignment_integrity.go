package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"

	"proassignment/internal/domain/entities"
	"proassignment/internal/usecase/interfaces"
)

// File sets addressable through OpenFile.
const (
	FileSetOriginal  = "original"
	FileSetCompleted = "completed"
	FileSetProof     = "proof"
	FileSetIntegrity = "integrity"
)

func (u *AssignmentUseCase) RequestIntegrityReport(ctx context.Context, viewer entities.Viewer, id string) (entities.Assignment, error) {
	a, err := u.load(ctx, id)
	if err != nil {
		return entities.Assignment{}, err
	}
	if !isOwner(viewer, a) {
		return entities.Assignment{}, ErrForbidden
	}
	if !a.HasWriter() {
		return entities.Assignment{}, ErrInvalidIntegrityTransition
	}
	saved, err := u.advanceIntegrity(ctx, a, entities.IntegrityRequested, nil)
	if err != nil {
		return entities.Assignment{}, err
	}
	u.notifyAdmins(ctx, saved, entities.NotificationIntegrityReport, fmt.Sprintf("Integrity report requested for %q", saved.Title))
	return saved, nil
}

func (u *AssignmentUseCase) SendIntegrityToWriter(ctx context.Context, viewer entities.Viewer, id string) (entities.Assignment, error) {
	if !viewer.IsAdmin() {
		return entities.Assignment{}, ErrForbidden
	}
	a, err := u.load(ctx, id)
	if err != nil {
		return entities.Assignment{}, err
	}
	saved, err := u.advanceIntegrity(ctx, a, entities.IntegritySentToWriter, nil)
	if err != nil {
		return entities.Assignment{}, err
	}
	u.notifyUser(ctx, saved.WriterID, saved, entities.NotificationIntegrityReport, fmt.Sprintf("Please submit an integrity report for %q", saved.Title))
	return saved, nil
}

func (u *AssignmentUseCase) SubmitIntegrityReport(ctx context.Context, viewer entities.Viewer, id string, file UploadedFile) (entities.Assignment, error) {
	a, err := u.load(ctx, id)
	if err != nil {
		return entities.Assignment{}, err
	}
	if !isAssignee(viewer, a) {
		return entities.Assignment{}, ErrForbidden
	}
	if cur := integrityStatus(a); cur != entities.IntegritySentToWriter {
		return entities.Assignment{}, ErrInvalidIntegrityTransition
	}
	refs, err := u.store(ctx, CategoryIntegrity, []UploadedFile{file})
	if err != nil {
		return entities.Assignment{}, err
	}
	saved, err := u.advanceIntegrity(ctx, a, entities.IntegrityWriterSubmitted, &refs[0])
	if err != nil {
		return entities.Assignment{}, err
	}
	u.notifyAdmins(ctx, saved, entities.NotificationIntegrityReport, fmt.Sprintf("Integrity report submitted for %q", saved.Title))
	return saved, nil
}

func (u *AssignmentUseCase) SendIntegrityToUser(ctx context.Context, viewer entities.Viewer, id string) (entities.Assignment, error) {
	if !viewer.IsAdmin() {
		return entities.Assignment{}, ErrForbidden
	}
	a, err := u.load(ctx, id)
	if err != nil {
		return entities.Assignment{}, err
	}
	saved, err := u.advanceIntegrity(ctx, a, entities.IntegritySentToUser, nil)
	if err != nil {
		return entities.Assignment{}, err
	}
	u.notifyUser(ctx, saved.StudentID, saved, entities.NotificationIntegrityReport, fmt.Sprintf("Your integrity report for %q is ready", saved.Title))
	return saved, nil
}

// advanceIntegrity moves the report one step. The main status is untouched but
// still guards the write so a concurrent transition is not overwritten.
func (u *AssignmentUseCase) advanceIntegrity(ctx context.Context, a entities.Assignment, to entities.IntegrityStatus, file *entities.FileRef) (entities.Assignment, error) {
	next, ok := entities.NextIntegrityStatus(integrityStatus(a))
	if !ok || next != to {
		return entities.Assignment{}, ErrInvalidIntegrityTransition
	}

	now := u.now()
	report := entities.IntegrityReport{Status: to, RequestedAt: now, UpdatedAt: now}
	if a.IntegrityReport != nil {
		report = *a.IntegrityReport
		report.Status = to
		report.UpdatedAt = now
	}
	if file != nil {
		report.File = file
	}
	a.IntegrityReport = &report

	saved, err := u.commit(ctx, a, a.Status)
	if err != nil {
		return entities.Assignment{}, err
	}
	u.broadcast(ctx, saved)
	return saved, nil
}

func integrityStatus(a entities.Assignment) entities.IntegrityStatus {
	if a.IntegrityReport == nil {
		return ""
	}
	return a.IntegrityReport.Status
}

// OpenFile streams one stored file of an assignment. The integrity report is
// hidden from the client until an admin relayed it.
func (u *AssignmentUseCase) OpenFile(ctx context.Context, viewer entities.Viewer, id, set string, index int) (entities.FileRef, io.ReadCloser, int64, error) {
	a, err := u.Get(ctx, viewer, id)
	if err != nil {
		return entities.FileRef{}, nil, 0, err
	}

	var ref *entities.FileRef
	switch set {
	case FileSetOriginal:
		if index >= 0 && index < len(a.Files) {
			ref = &a.Files[index]
		}
	case FileSetCompleted:
		if index >= 0 && index < len(a.CompletedFiles) {
			ref = &a.CompletedFiles[index]
		}
	case FileSetProof:
		if index == 0 && !viewer.IsWriter() {
			ref = a.PaymentProof
		}
	case FileSetIntegrity:
		if index == 0 && a.IntegrityReport != nil {
			if !viewer.IsClient() || a.IntegrityReport.Status == entities.IntegritySentToUser {
				ref = a.IntegrityReport.File
			}
		}
	}
	if ref == nil {
		return entities.FileRef{}, nil, 0, ErrFileNotFound
	}

	rc, size, err := u.files.Open(ctx, ref.Path)
	if errors.Is(err, interfaces.ErrStoredFileMissing) {
		return entities.FileRef{}, nil, 0, ErrFileNotFound
	}
	if err != nil {
		return entities.FileRef{}, nil, 0, err
	}
	return *ref, rc, size, nil
}
