// internal/repository/archive_repo.go
package repository

import (
	"context"

	"minivenmo/internal/domain"
)

// PaymentArchive defines the interface for the payment-archive store. The
// archive mirrors completed payments for history queries; the per-user logs
// remain the feed's source of truth.
type PaymentArchive interface {
	// RecordPayment inserts an archive row for a completed payment using the
	// provided DBExecutor.
	RecordPayment(ctx context.Context, q DBExecutor, record *domain.PaymentRecord) error
	// ListByUser retrieves the archived payments a user participated in, as
	// payer or payee, newest first, plus the total count for pagination.
	ListByUser(ctx context.Context, q DBExecutor, username string, limit, offset int) ([]domain.PaymentRecord, int64, error)
}
