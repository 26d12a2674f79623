package billing

import (
	"time"

	"github.com/dreistrom/dreistrom-api/internal/domain"
	"github.com/dreistrom/dreistrom-api/internal/domain/entity"
)

// allowedTransitions is the one-way invoice lifecycle:
//
//	DRAFT -> ISSUED -> {PAID, OVERDUE, CANCELLED}
//	OVERDUE -> {PAID, CANCELLED}
//
// DRAFT->ISSUED happens only at creation, together with number allocation.
// Nothing ever transitions back into DRAFT, and a cancelled invoice keeps
// its number (the sequence never hands it out again).
var allowedTransitions = map[string]map[string]bool{
	entity.StatusDraft: {
		entity.StatusIssued: true,
	},
	entity.StatusIssued: {
		entity.StatusPaid:      true,
		entity.StatusOverdue:   true,
		entity.StatusCancelled: true,
	},
	entity.StatusOverdue: {
		entity.StatusPaid:      true,
		entity.StatusCancelled: true,
	},
	entity.StatusPaid:      {},
	entity.StatusCancelled: {},
}

// CanTransition reports whether from -> to is a legal transition.
func CanTransition(from, to string) bool {
	return allowedTransitions[from][to]
}

// Transition applies a status change or fails with a TransitionError.
// Every transition updates the audit-trail timestamp.
func Transition(inv *entity.Invoice, to string, now time.Time) error {
	if !CanTransition(inv.Status, to) {
		return &domain.TransitionError{From: inv.Status, To: to}
	}
	inv.Status = to
	inv.Touch(now)
	return nil
}
