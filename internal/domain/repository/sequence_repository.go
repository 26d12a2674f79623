package repository

import (
	"context"

	"github.com/dreistrom/dreistrom-api/internal/domain/billing"
)

// SequenceRepository is the allocator port for the per-(stream, year) invoice
// counter. Next must run inside the same transaction that persists the owning
// invoice: the read, the increment and the invoice insert commit or roll back
// as one unit, so an abort never burns a number.
//
// Callers contending on the same key block until the holder commits or
// aborts; different keys must not block each other. When the bounded lock
// wait elapses the implementation returns an AllocationError (retryable, the
// retry decision belongs to the caller).
type SequenceRepository interface {
	Next(ctx context.Context, key billing.SequenceKey) (int, error)
}
