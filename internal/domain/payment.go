// internal/domain/payment.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal" // For precise monetary calculations
)

// FundingSource identifies how a payment was funded.
type FundingSource string

const (
	FundingBalance FundingSource = "balance" // paid from the actor's stored balance
	FundingCard    FundingSource = "card"    // paid by charging the actor's credit card
)

// Payment is an immutable record of one completed transfer. It is created
// inside a successful Pay call and never mutated afterwards. The durable
// record of the transfer lives in the participants' payment logs (and the
// payment archive); the Payment value itself is only handed back to the
// caller.
type Payment struct {
	ID        string
	Amount    decimal.Decimal
	Actor     *User
	Target    *User
	Note      string
	Funding   FundingSource
	CreatedAt time.Time
}

func newPayment(amount decimal.Decimal, actor, target *User, note string, funding FundingSource) *Payment {
	return &Payment{
		ID:        uuid.NewString(),
		Amount:    amount,
		Actor:     actor,
		Target:    target,
		Note:      note,
		Funding:   funding,
		CreatedAt: time.Now().UTC(),
	}
}

// PaymentRecord is the archive row written for every completed payment.
// Participants are referenced by username so records stay valid independently
// of the in-memory User instances.
type PaymentRecord struct {
	ID        string          `db:"id" json:"id"`
	Actor     string          `db:"actor" json:"actor"`
	Target    string          `db:"target" json:"target"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	Note      string          `db:"note" json:"note"`
	Funding   FundingSource   `db:"funding" json:"funding"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// NewPaymentRecord converts a completed Payment into its archive form.
func NewPaymentRecord(p *Payment) *PaymentRecord {
	return &PaymentRecord{
		ID:        p.ID,
		Actor:     p.Actor.Username(),
		Target:    p.Target.Username(),
		Amount:    p.Amount,
		Note:      p.Note,
		Funding:   p.Funding,
		CreatedAt: p.CreatedAt,
	}
}
