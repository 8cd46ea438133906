package entities

// transitions lists every legal edge of the main status field. Edges that need
// extra context (manual price override, rating from Completed) are still listed
// here; the use case enforces the context.
var transitions = map[AssignmentStatus][]AssignmentStatus{
	StatusNew:                   {StatusPriceSet, StatusInProgress},
	StatusPriceSet:              {StatusPriceAccepted, StatusPriceRejected, StatusInProgress},
	StatusPriceRejected:         {StatusPriceSet, StatusInProgress},
	StatusPriceAccepted:         {StatusPaymentProofSubmitted, StatusPaid, StatusInProgress},
	StatusPaymentProofSubmitted: {StatusPaid, StatusInProgress},
	StatusPaid:                  {StatusInProgress},
	StatusInProgress:            {StatusCompleted},
	StatusCompleted:             {StatusAdminApproved, StatusPaid},
	StatusAdminApproved:         {StatusPaid},
}

// overrideOnly are the sources from which a writer may be assigned only when the
// admin supplies the client price in the same request.
var overrideOnly = map[AssignmentStatus]bool{
	StatusNew:           true,
	StatusPriceSet:      true,
	StatusPriceRejected: true,
}

func (s AssignmentStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether from → to is an edge of the lifecycle graph.
func CanTransition(from, to AssignmentStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanAssignWriter applies the assignment rule: a writer can be put on an
// assignment whose price was accepted or paid, or on an earlier one when the
// admin also sets the client price. A closed (rated) assignment never reopens.
func CanAssignWriter(a Assignment, clientPriceSupplied bool) bool {
	if a.IsClosed() || (a.HasWriter() && a.Status == StatusPaid) {
		return false
	}
	if !CanTransition(a.Status, StatusInProgress) {
		return false
	}
	if overrideOnly[a.Status] {
		return clientPriceSupplied
	}
	return true
}

// CanRate is true once the work was delivered and the client has not rated yet.
func CanRate(a Assignment) bool {
	if a.IsRated() {
		return false
	}
	return a.Status == StatusAdminApproved || a.Status == StatusCompleted
}

// NextIntegrityStatus returns the status that follows cur in the report flow.
// An empty cur means no report was requested yet.
func NextIntegrityStatus(cur IntegrityStatus) (IntegrityStatus, bool) {
	switch cur {
	case "":
		return IntegrityRequested, true
	case IntegrityRequested:
		return IntegritySentToWriter, true
	case IntegritySentToWriter:
		return IntegrityWriterSubmitted, true
	case IntegrityWriterSubmitted:
		return IntegritySentToUser, true
	}
	return "", false
}
