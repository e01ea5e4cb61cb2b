// internal/service/ledger_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"minivenmo/internal/cardnetwork"
	"minivenmo/internal/domain"
	"minivenmo/internal/metrics"
	"minivenmo/internal/repository"
	"minivenmo/internal/util"
	"minivenmo/pkg/db"
)

// LedgerService defines the interface for the payment-ledger business logic.
type LedgerService interface {
	// CreateUser registers a user with an initial balance and, if cardNumber
	// is non-empty, an attached credit card.
	CreateUser(ctx context.Context, username string, initialBalance decimal.Decimal, cardNumber string) (*domain.User, error)
	// GetUser returns the registered user with the given username.
	GetUser(ctx context.Context, username string) (*domain.User, error)
	// Pay transfers amount from actor to target, balance first, card as
	// fallback, and mirrors the completed payment into the archive.
	Pay(ctx context.Context, actor, target string, amount decimal.Decimal, note string) (*domain.Payment, error)
	// AddFriend records that username added friend.
	AddFriend(ctx context.Context, username, friend string) error
	// RetrieveFeed returns a user's activity feed in chronological order.
	RetrieveFeed(ctx context.Context, username string) ([]string, error)
	// PaymentHistory returns archived payments involving the user, newest
	// first, plus the total count.
	PaymentHistory(ctx context.Context, username string, limit, offset int) ([]domain.PaymentRecord, int64, error)
}

// ledgerService implements the LedgerService interface. Users live in an
// in-process registry; completed payments are additionally mirrored into the
// payment archive.
type ledgerService struct {
	logger     *slog.Logger
	charger    cardnetwork.Charger
	dbBeginner db.DBTxBeginner       // For starting archive transactions
	dbExecutor repository.DBExecutor // For non-transactional archive reads
	archive    repository.PaymentArchive
	beginTx    db.BeginTxFunc
	commitTx   db.CommitTxFunc
	rollbackTx db.RollbackTxFunc

	mu    sync.RWMutex
	users map[string]*domain.User
}

// NewLedgerService creates a new instance of LedgerService.
func NewLedgerService(
	logger *slog.Logger,
	charger cardnetwork.Charger,
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	archive repository.PaymentArchive,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) LedgerService {
	return &ledgerService{
		logger:     logger,
		charger:    charger,
		dbBeginner: dbBeginner,
		dbExecutor: dbExecutor,
		archive:    archive,
		beginTx:    beginTx,
		commitTx:   commitTx,
		rollbackTx: rollbackTx,
		users:      make(map[string]*domain.User),
	}
}

// CreateUser registers a new user. The user is only added to the registry
// once the username, the initial balance and the card all checked out, so a
// failed creation leaves no trace.
func (s *ledgerService) CreateUser(ctx context.Context, username string, initialBalance decimal.Decimal, cardNumber string) (*domain.User, error) {
	if initialBalance.IsNegative() {
		return nil, fmt.Errorf("%w: initial balance must not be negative", util.ErrInvalidInput)
	}

	user, err := domain.NewUser(username, s.charger)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	if cardNumber != "" {
		if err := user.AddCreditCard(cardNumber); err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
	}
	if initialBalance.IsPositive() {
		user.AddToBalance(initialBalance)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[username]; exists {
		return nil, fmt.Errorf("create user: %w: %s", util.ErrDuplicateUsername, username)
	}
	s.users[username] = user

	metrics.UsersCreatedTotal.Inc()
	s.logger.Info("User created", "username", username, "has_card", cardNumber != "")
	return user, nil
}

// GetUser looks up a registered user.
func (s *ledgerService) GetUser(ctx context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[username]
	if !ok {
		return nil, fmt.Errorf("%w: %s", util.ErrUserNotFound, username)
	}
	return user, nil
}

// Pay executes a payment between two registered users and mirrors it into
// the archive. The per-user logs are the feed's source of truth, so an
// archive failure is logged but never fails a payment that already settled.
func (s *ledgerService) Pay(ctx context.Context, actor, target string, amount decimal.Decimal, note string) (*domain.Payment, error) {
	payer, err := s.GetUser(ctx, actor)
	if err != nil {
		return nil, fmt.Errorf("pay: %w", err)
	}
	payee, err := s.GetUser(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("pay: %w", err)
	}

	payment, err := payer.Pay(ctx, payee, amount, note)
	if err != nil {
		metrics.PaymentFailuresTotal.Inc()
		return nil, err
	}
	metrics.PaymentsTotal.WithLabelValues(string(payment.Funding)).Inc()

	if err := s.archivePayment(ctx, payment); err != nil {
		s.logger.Warn("Failed to archive payment", "payment_id", payment.ID, "error", err)
	}

	s.logger.Info("Payment completed",
		"payment_id", payment.ID,
		"actor", actor,
		"target", target,
		"amount", amount.StringFixed(2),
		"funding", payment.Funding,
	)
	return payment, nil
}

// archivePayment writes the archive row for a completed payment in its own
// transaction.
func (s *ledgerService) archivePayment(ctx context.Context, payment *domain.Payment) error {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return fmt.Errorf("archive payment: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return fmt.Errorf("archive payment: transaction controller does not implement DBExecutor")
	}

	if err := s.archive.RecordPayment(ctx, txExecutor, domain.NewPaymentRecord(payment)); err != nil {
		return fmt.Errorf("archive payment: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return fmt.Errorf("archive payment: failed to commit transaction: %w", err)
	}
	return nil
}

// AddFriend records that username added friend.
func (s *ledgerService) AddFriend(ctx context.Context, username, friend string) error {
	user, err := s.GetUser(ctx, username)
	if err != nil {
		return fmt.Errorf("add friend: %w", err)
	}
	other, err := s.GetUser(ctx, friend)
	if err != nil {
		return fmt.Errorf("add friend: %w", err)
	}

	if err := user.AddFriend(other); err != nil {
		return err
	}
	metrics.FriendAdditionsTotal.Inc()
	return nil
}

// RetrieveFeed returns the user's activity feed.
func (s *ledgerService) RetrieveFeed(ctx context.Context, username string) ([]string, error) {
	user, err := s.GetUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("retrieve feed: %w", err)
	}
	return user.RetrieveFeed(), nil
}

// PaymentHistory returns archived payments involving the user.
func (s *ledgerService) PaymentHistory(ctx context.Context, username string, limit, offset int) ([]domain.PaymentRecord, int64, error) {
	if _, err := s.GetUser(ctx, username); err != nil {
		return nil, 0, fmt.Errorf("payment history: %w", err)
	}

	records, totalCount, err := s.archive.ListByUser(ctx, s.dbExecutor, username, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("payment history: %w", err)
	}
	return records, totalCount, nil
}
