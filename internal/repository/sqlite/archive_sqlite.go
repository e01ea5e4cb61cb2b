// internal/repository/sqlite/archive_sqlite.go
package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"minivenmo/internal/domain"
	"minivenmo/internal/repository"
)

// Ensure PaymentArchive implements repository.PaymentArchive.
var _ repository.PaymentArchive = (*PaymentArchive)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS payments (
	id         TEXT PRIMARY KEY,
	actor      TEXT NOT NULL,
	target     TEXT NOT NULL,
	amount     TEXT NOT NULL,
	note       TEXT NOT NULL,
	funding    TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_payments_actor  ON payments (actor);
CREATE INDEX IF NOT EXISTS idx_payments_target ON payments (target);
`

// PaymentArchive implements repository.PaymentArchive for SQLite.
type PaymentArchive struct {
	// Methods receive a DBExecutor directly, so the same instance serves
	// both transactional and plain queries.
}

// NewPaymentArchive creates the payments table if needed and returns a new
// PaymentArchive.
func NewPaymentArchive(database *sqlx.DB) (*PaymentArchive, error) {
	if _, err := database.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create payments schema: %w", err)
	}
	return &PaymentArchive{}, nil
}

// RecordPayment inserts an archive row for a completed payment.
func (a *PaymentArchive) RecordPayment(ctx context.Context, q repository.DBExecutor, record *domain.PaymentRecord) error {
	query := `INSERT INTO payments (id, actor, target, amount, note, funding, created_at)
              VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := q.ExecContext(ctx, query,
		record.ID,
		record.Actor,
		record.Target,
		record.Amount,
		record.Note,
		record.Funding,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record payment %s: %w", record.ID, err)
	}
	return nil
}

// ListByUser retrieves a paginated list of archived payments involving the
// given user, newest first, and the total count for pagination.
func (a *PaymentArchive) ListByUser(ctx context.Context, q repository.DBExecutor, username string, limit, offset int) ([]domain.PaymentRecord, int64, error) {
	records := []domain.PaymentRecord{}

	query := `
		SELECT id, actor, target, amount, note, funding, created_at
		FROM payments
		WHERE actor = ? OR target = ?
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?`
	err := q.SelectContext(ctx, &records, query, username, username, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch payments for user %s: %w", username, err)
	}

	var totalCount int64
	countQuery := `
		SELECT COUNT(*)
		FROM payments
		WHERE actor = ? OR target = ?`
	err = q.GetContext(ctx, &totalCount, countQuery, username, username)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count payments for user %s: %w", username, err)
	}

	return records, totalCount, nil
}
