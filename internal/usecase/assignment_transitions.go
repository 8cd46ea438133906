package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"

	"proassignment/internal/domain/entities"
	"proassignment/internal/usecase/interfaces"

	log "github.com/sirupsen/logrus"
)

func (u *AssignmentUseCase) SetClientPrice(ctx context.Context, viewer entities.Viewer, id string, price float64) (entities.Assignment, error) {
	if !viewer.IsAdmin() {
		return entities.Assignment{}, ErrForbidden
	}
	if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return entities.Assignment{}, ErrInvalidPrice
	}
	a, err := u.load(ctx, id)
	if err != nil {
		return entities.Assignment{}, err
	}
	from := a.Status
	if !entities.CanTransition(from, entities.StatusPriceSet) {
		return entities.Assignment{}, ErrInvalidTransition
	}

	a.ClientPrice = price
	a.Status = entities.StatusPriceSet
	saved, err := u.commit(ctx, a, from)
	if err != nil {
		return entities.Assignment{}, err
	}

	u.notifyUser(ctx, saved.StudentID, saved, entities.NotificationPriceSet,
		fmt.Sprintf("A price of %.2f was set for %q", saved.ClientPrice, saved.Title))
	u.broadcast(ctx, saved)
	return saved, nil
}

func (u *AssignmentUseCase) AcceptPrice(ctx context.Context, viewer entities.Viewer, id string) (entities.Assignment, error) {
	return u.answerPrice(ctx, viewer, id, entities.StatusPriceAccepted, entities.NotificationPriceAccepted, "accepted")
}

func (u *AssignmentUseCase) RejectPrice(ctx context.Context, viewer entities.Viewer, id string) (entities.Assignment, error) {
	return u.answerPrice(ctx, viewer, id, entities.StatusPriceRejected, entities.NotificationPriceRejected, "rejected")
}

func (u *AssignmentUseCase) answerPrice(ctx context.Context, viewer entities.Viewer, id string, to entities.AssignmentStatus, t entities.NotificationType, verb string) (entities.Assignment, error) {
	a, err := u.load(ctx, id)
	if err != nil {
		return entities.Assignment{}, err
	}
	if !isOwner(viewer, a) {
		return entities.Assignment{}, ErrForbidden
	}
	from := a.Status
	if from != entities.StatusPriceSet || !entities.CanTransition(from, to) {
		return entities.Assignment{}, ErrInvalidTransition
	}

	a.Status = to
	saved, err := u.commit(ctx, a, from)
	if err != nil {
		return entities.Assignment{}, err
	}

	u.notifyAdmins(ctx, saved, t, fmt.Sprintf("Client %s the price of %q", verb, saved.Title))
	u.broadcast(ctx, saved)
	return saved, nil
}

func (u *AssignmentUseCase) UploadPaymentProof(ctx context.Context, viewer entities.Viewer, id string, file UploadedFile) (entities.Assignment, error) {
	a, err := u.load(ctx, id)
	if err != nil {
		return entities.Assignment{}, err
	}
	if !isOwner(viewer, a) {
		return entities.Assignment{}, ErrForbidden
	}
	from := a.Status
	if from != entities.StatusPriceAccepted {
		return entities.Assignment{}, ErrInvalidTransition
	}
	refs, err := u.store(ctx, CategoryProof, []UploadedFile{file})
	if err != nil {
		return entities.Assignment{}, err
	}

	a.PaymentProof = &refs[0]
	a.Payment = entities.PaymentInfo{Method: entities.PaymentMethodBankTransfer, Status: entities.PaymentStatePending}
	a.Status = entities.StatusPaymentProofSubmitted
	saved, err := u.commit(ctx, a, from)
	if err != nil {
		return entities.Assignment{}, err
	}

	u.notifyAdmins(ctx, saved, entities.NotificationPaymentProof, fmt.Sprintf("Payment proof uploaded for %q", saved.Title))
	u.broadcast(ctx, saved)
	return saved, nil
}

func (u *AssignmentUseCase) ConfirmPayment(ctx context.Context, viewer entities.Viewer, id string) (entities.Assignment, error) {
	if !viewer.IsAdmin() {
		return entities.Assignment{}, ErrForbidden
	}
	a, err := u.load(ctx, id)
	if err != nil {
		return entities.Assignment{}, err
	}
	from := a.Status
	if from != entities.StatusPaymentProofSubmitted {
		return entities.Assignment{}, ErrInvalidTransition
	}

	a.Status = entities.StatusPaid
	a.Payment.Status = entities.PaymentStatePaid
	if a.Payment.Method == "" {
		a.Payment.Method = entities.PaymentMethodBankTransfer
	}
	saved, err := u.commit(ctx, a, from)
	if err != nil {
		return entities.Assignment{}, err
	}

	u.notifyUser(ctx, saved.StudentID, saved, entities.NotificationPaymentConfirmed, fmt.Sprintf("Your payment for %q was confirmed", saved.Title))
	u.broadcast(ctx, saved)
	return saved, nil
}

// ApplyPaymentResult records the outcome of a card payment. A Paid result moves
// Price Accepted or Payment Proof Submitted to Paid; other results only update
// the payment fields. Results arriving after settlement fail with
// ErrAssignmentAlreadyPaid, except a replay of the settling Paid result.
func (u *AssignmentUseCase) ApplyPaymentResult(ctx context.Context, id string, payment entities.PaymentInfo) (entities.Assignment, error) {
	a, err := u.load(ctx, id)
	if err != nil {
		return entities.Assignment{}, err
	}
	from := a.Status

	if payment.Status == entities.PaymentStatePaid && from == entities.StatusPaid && a.Payment.Reference == payment.Reference {
		return a, nil
	}
	if a.PaymentSettled() {
		return entities.Assignment{}, ErrAssignmentAlreadyPaid
	}

	if payment.Status != entities.PaymentStatePaid {
		if from != entities.StatusPriceAccepted && from != entities.StatusPaymentProofSubmitted {
			return entities.Assignment{}, ErrInvalidTransition
		}
		a.Payment = payment
		return u.commit(ctx, a, from)
	}

	if from != entities.StatusPriceAccepted && from != entities.StatusPaymentProofSubmitted {
		return entities.Assignment{}, ErrInvalidTransition
	}
	a.Payment = payment
	a.Status = entities.StatusPaid
	saved, err := u.commit(ctx, a, from)
	if err != nil {
		return entities.Assignment{}, err
	}

	u.notifyUser(ctx, saved.StudentID, saved, entities.NotificationPaymentConfirmed, fmt.Sprintf("Your card payment for %q was received", saved.Title))
	u.notifyAdmins(ctx, saved, entities.NotificationPaymentConfirmed, fmt.Sprintf("Card payment received for %q", saved.Title))
	u.broadcast(ctx, saved)
	return saved, nil
}

func (u *AssignmentUseCase) AssignWriter(ctx context.Context, viewer entities.Viewer, id string, in AssignWriterInput) (entities.Assignment, error) {
	if !viewer.IsAdmin() {
		return entities.Assignment{}, ErrForbidden
	}
	in.WriterID = strings.TrimSpace(in.WriterID)
	if in.WriterID == "" {
		return entities.Assignment{}, ErrWriterNotFound
	}
	if in.WriterPrice <= 0 || math.IsNaN(in.WriterPrice) || math.IsInf(in.WriterPrice, 0) {
		return entities.Assignment{}, ErrInvalidPrice
	}
	if in.ClientPrice != nil && (*in.ClientPrice <= 0 || math.IsNaN(*in.ClientPrice) || math.IsInf(*in.ClientPrice, 0)) {
		return entities.Assignment{}, ErrInvalidPrice
	}

	writer, err := u.users.GetByID(ctx, in.WriterID)
	if err != nil {
		return entities.Assignment{}, err
	}
	if writer.ID == "" || writer.Role != entities.RoleWriter {
		return entities.Assignment{}, ErrWriterNotFound
	}

	a, err := u.load(ctx, id)
	if err != nil {
		return entities.Assignment{}, err
	}
	from := a.Status
	if !entities.CanAssignWriter(a, in.ClientPrice != nil) {
		return entities.Assignment{}, ErrInvalidTransition
	}

	if in.ClientPrice != nil {
		a.ClientPrice = *in.ClientPrice
	}
	a.WriterID = writer.ID
	a.WriterPrice = in.WriterPrice
	a.Status = entities.StatusInProgress
	a.Progress = 0
	saved, err := u.commit(ctx, a, from)
	if err != nil {
		return entities.Assignment{}, err
	}

	u.ledgerEffect(ctx, "ledger.writer", func(ctx context.Context) (entities.Paysheet, error) {
		return u.ledger.UpsertWriterContribution(ctx, saved, entities.PaysheetStatusDue)
	})
	u.ledgerEffect(ctx, "ledger.admin", func(ctx context.Context) (entities.Paysheet, error) {
		return u.ledger.UpsertAdminContribution(ctx, saved)
	})
	u.effects.Dispatch(ctx, "chat.provision", func(ctx context.Context) error {
		_, err := u.chat.Provision(ctx, saved)
		return err
	})
	u.notifyUser(ctx, saved.WriterID, saved, entities.NotificationWriterAssigned, fmt.Sprintf("You were assigned to %q", saved.Title))
	u.notifyUser(ctx, saved.StudentID, saved, entities.NotificationWriterAssigned, fmt.Sprintf("A writer is now working on %q", saved.Title))
	u.broadcast(ctx, saved)
	return u.refresh(ctx, saved), nil
}

func (u *AssignmentUseCase) UpdateProgress(ctx context.Context, viewer entities.Viewer, id string, progress int) (entities.Assignment, error) {
	if progress < 0 || progress >= entities.ProgressComplete {
		return entities.Assignment{}, ErrInvalidProgress
	}
	a, err := u.load(ctx, id)
	if err != nil {
		return entities.Assignment{}, err
	}
	if !isAssignee(viewer, a) {
		return entities.Assignment{}, ErrForbidden
	}
	if a.Status != entities.StatusInProgress {
		return entities.Assignment{}, ErrInvalidTransition
	}

	a.Progress = progress
	saved, err := u.commit(ctx, a, entities.StatusInProgress)
	if err != nil {
		return entities.Assignment{}, err
	}
	u.broadcast(ctx, saved)
	return saved, nil
}

func (u *AssignmentUseCase) UploadCompletedWork(ctx context.Context, viewer entities.Viewer, id string, files []UploadedFile) (entities.Assignment, error) {
	if len(files) == 0 {
		return entities.Assignment{}, ErrMissingFiles
	}
	a, err := u.load(ctx, id)
	if err != nil {
		return entities.Assignment{}, err
	}
	if !isAssignee(viewer, a) {
		return entities.Assignment{}, ErrForbidden
	}
	from := a.Status
	if !entities.CanTransition(from, entities.StatusCompleted) {
		return entities.Assignment{}, ErrInvalidTransition
	}
	refs, err := u.store(ctx, CategoryCompleted, files)
	if err != nil {
		return entities.Assignment{}, err
	}

	now := u.now()
	a.CompletedFiles = append(a.CompletedFiles, refs...)
	a.Status = entities.StatusCompleted
	a.Progress = entities.ProgressComplete
	a.CompletedAt = &now
	saved, err := u.commit(ctx, a, from)
	if err != nil {
		return entities.Assignment{}, err
	}

	u.ledgerEffect(ctx, "ledger.writer", func(ctx context.Context) (entities.Paysheet, error) {
		return u.ledger.UpsertWriterContribution(ctx, saved, entities.PaysheetStatusPending)
	})
	u.notifyUser(ctx, saved.StudentID, saved, entities.NotificationWorkCompleted, fmt.Sprintf("Completed work uploaded for %q", saved.Title))
	u.notifyAdmins(ctx, saved, entities.NotificationWorkCompleted, fmt.Sprintf("Writer delivered %q", saved.Title))
	u.broadcast(ctx, saved)
	return u.refresh(ctx, saved), nil
}

func (u *AssignmentUseCase) ApproveWork(ctx context.Context, viewer entities.Viewer, id string) (entities.Assignment, error) {
	if !viewer.IsAdmin() {
		return entities.Assignment{}, ErrForbidden
	}
	a, err := u.load(ctx, id)
	if err != nil {
		return entities.Assignment{}, err
	}
	from := a.Status
	if !entities.CanTransition(from, entities.StatusAdminApproved) {
		return entities.Assignment{}, ErrInvalidTransition
	}

	a.AdminApproved = true
	a.Status = entities.StatusAdminApproved
	saved, err := u.commit(ctx, a, from)
	if err != nil {
		return entities.Assignment{}, err
	}

	u.ledgerEffect(ctx, "ledger.status", func(ctx context.Context) (entities.Paysheet, error) {
		return u.ledger.SetWriterStatusForAssignment(ctx, saved, entities.PaysheetStatusDue)
	})
	u.ledgerEffect(ctx, "ledger.admin", func(ctx context.Context) (entities.Paysheet, error) {
		return u.ledger.UpsertAdminContribution(ctx, saved)
	})
	u.notifyUser(ctx, saved.StudentID, saved, entities.NotificationWorkApproved, fmt.Sprintf("%q was approved and is ready for you", saved.Title))
	u.notifyUser(ctx, saved.WriterID, saved, entities.NotificationWorkApproved, fmt.Sprintf("Your work on %q was approved", saved.Title))
	u.broadcast(ctx, saved)
	return saved, nil
}

func (u *AssignmentUseCase) Rate(ctx context.Context, viewer entities.Viewer, id string, rating int, feedback string) (entities.Assignment, error) {
	if rating < entities.MinRating || rating > entities.MaxRating {
		return entities.Assignment{}, ErrInvalidRating
	}
	a, err := u.load(ctx, id)
	if err != nil {
		return entities.Assignment{}, err
	}
	if !isOwner(viewer, a) {
		return entities.Assignment{}, ErrForbidden
	}
	if a.IsRated() {
		return entities.Assignment{}, ErrAlreadyRated
	}
	from := a.Status
	if !entities.CanRate(a) || !entities.CanTransition(from, entities.StatusPaid) {
		return entities.Assignment{}, ErrInvalidTransition
	}

	a.Rating = rating
	a.Feedback = strings.TrimSpace(feedback)
	a.Status = entities.StatusPaid
	saved, err := u.commit(ctx, a, from)
	if err != nil {
		return entities.Assignment{}, err
	}

	u.inline.Dispatch(ctx, "rating.recompute", func(ctx context.Context) error {
		return u.recomputeWriterRating(ctx, saved)
	})
	u.ledgerEffect(ctx, "ledger.status", func(ctx context.Context) (entities.Paysheet, error) {
		return u.ledger.SetWriterStatusForAssignment(ctx, saved, entities.PaysheetStatusDue)
	})
	u.notifyUser(ctx, saved.WriterID, saved, entities.NotificationAssignmentRated, fmt.Sprintf("%q was rated %d/5", saved.Title, saved.Rating))
	u.notifyAdmins(ctx, saved, entities.NotificationAssignmentRated, fmt.Sprintf("%q was rated %d/5", saved.Title, saved.Rating))
	u.broadcast(ctx, saved)
	return saved, nil
}

// recomputeWriterRating stores round(mean, 1) of every rated assignment of the
// writer. rated replaces its stored copy since the index may still lag behind.
func (u *AssignmentUseCase) recomputeWriterRating(ctx context.Context, rated entities.Assignment) error {
	writerID := rated.WriterID
	if writerID == "" {
		return nil
	}
	items, err := u.repo.List(ctx, interfaces.AssignmentFilter{WriterID: writerID})
	if err != nil {
		return err
	}
	found := false
	for i := range items {
		if items[i].ID == rated.ID {
			items[i] = rated
			found = true
		}
	}
	if !found {
		items = append(items, rated)
	}
	rating, count := AverageRating(items)
	if _, err := u.users.UpdateRating(ctx, writerID, rating, count); err != nil {
		return err
	}
	log.Printf("[assignment][usecase] writer rating updated writer_id=%s rating=%.1f rated=%d", writerID, rating, count)
	return nil
}

// AverageRating returns the mean rating of the rated assignments rounded to
// one decimal, and how many were rated.
func AverageRating(items []entities.Assignment) (float64, int) {
	sum, count := 0, 0
	for _, a := range items {
		if a.IsRated() {
			sum += a.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0
	}
	return math.Round(float64(sum)/float64(count)*10) / 10, count
}
