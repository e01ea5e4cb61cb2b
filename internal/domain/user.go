// internal/domain/user.go
package domain

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"minivenmo/internal/cardnetwork"
	"minivenmo/internal/validate"
)

// logEntry is one line of a user's payment or friend log. seq is a per-user
// monotonic counter assigned at append time; RetrieveFeed merges the two
// logs by it, so the feed interleaves chronologically while each log stays
// append-only.
type logEntry struct {
	seq  uint64
	text string
}

// User is a ledger account: a username, a balance, at most one credit card
// and two append-only activity logs. All mutating methods are safe for
// concurrent use; Pay serializes against other payments touching either
// participant (see Pay).
type User struct {
	username string
	charger  cardnetwork.Charger

	mu         sync.Mutex
	balance    decimal.Decimal
	cardNumber string
	seq        uint64
	paymentLog []logEntry
	friendLog  []logEntry
}

// NewUser creates a user with a zero balance, no card and empty logs.
// The username is validated once here and never changes. charger is the
// card-network capability used on the card path of Pay; it may be nil for
// users that will never fall back to a card.
func NewUser(username string, charger cardnetwork.Charger) (*User, error) {
	if !validate.Username(username) {
		return nil, ErrUsername
	}
	return &User{
		username: username,
		charger:  charger,
		balance:  decimal.Zero,
	}, nil
}

// Username returns the immutable username.
func (u *User) Username() string {
	return u.username
}

// Balance returns the current balance.
func (u *User) Balance() decimal.Decimal {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.balance
}

// CreditCardNumber returns the attached card number, or "" if none.
func (u *User) CreditCardNumber() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.cardNumber
}

// AddCreditCard attaches a credit card. A user holds at most one card, and
// a card, once attached, never changes.
func (u *User) AddCreditCard(number string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.cardNumber != "" {
		return ErrCardAlreadyAttached
	}
	if !validate.CardNumber(number) {
		return ErrInvalidCardNumber
	}
	u.cardNumber = number
	return nil
}

// AddToBalance credits amount to the balance. The amount is assumed to be
// validated by the caller; no log entry is written.
func (u *User) AddToBalance(amount decimal.Decimal) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.balance = u.balance.Add(amount)
}

// AddFriend records that u added other as a friend. Self-friending fails;
// adding the same friend twice is a silent no-op. The relationship is
// one-directional: only u's friend log records it.
func (u *User) AddFriend(other *User) error {
	if other == u || other.username == u.username {
		return ErrSelfFriend
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	entry := fmt.Sprintf("%s added %s as a friend", u.username, other.username)
	for _, e := range u.friendLog {
		if e.text == entry {
			return nil // already friends, duplicate adds are a no-op
		}
	}
	u.seq++
	u.friendLog = append(u.friendLog, logEntry{seq: u.seq, text: entry})
	return nil
}

// Pay transfers amount from u to target. If u's balance covers the whole
// amount it is debited from the balance; otherwise u's credit card is
// charged and u's balance is left untouched (the charge is external money).
// Either way target is credited and a payment log entry is appended to both
// participants.
//
// Both participants' locks are held for the whole transfer, acquired in
// username order so concurrent payments cannot deadlock. No interleaving
// can observe a debited payer without the matching target credit, and a
// failed attempt leaves both balances exactly as they were. The card charge
// is never retried here; retry policy belongs to the card network.
func (u *User) Pay(ctx context.Context, target *User, amount decimal.Decimal, note string) (*Payment, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrNonPositiveAmount
	}
	if target == u || target.username == u.username {
		return nil, ErrSelfPayment
	}

	first, second := u, target
	if second.username < first.username {
		first, second = second, first
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	funding := FundingBalance
	if u.balance.GreaterThanOrEqual(amount) {
		u.balance = u.balance.Sub(amount)
		target.balance = target.balance.Add(amount)
	} else {
		if u.cardNumber == "" {
			return nil, ErrNoCreditCard
		}
		if u.charger == nil {
			return nil, fmt.Errorf("%w: card network unavailable", ErrPayment)
		}
		if err := u.charger.Charge(ctx, u.cardNumber); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPayment, err)
		}
		target.balance = target.balance.Add(amount)
		funding = FundingCard
	}

	payment := newPayment(amount, u, target, note, funding)

	// Bobby paid Carol $5.00 for Coffee
	entry := fmt.Sprintf("%s paid %s $%s for %s", u.username, target.username, amount.StringFixed(2), note)
	u.appendPaymentLog(entry)
	target.appendPaymentLog(entry)

	return payment, nil
}

// appendPaymentLog appends a payment feed line. The caller must hold u.mu.
func (u *User) appendPaymentLog(text string) {
	u.seq++
	u.paymentLog = append(u.paymentLog, logEntry{seq: u.seq, text: text})
}

// RetrieveFeed returns the user's activity feed: payment and friend log
// entries merged into the order they happened.
func (u *User) RetrieveFeed() []string {
	u.mu.Lock()
	defer u.mu.Unlock()

	feed := make([]string, 0, len(u.paymentLog)+len(u.friendLog))
	i, j := 0, 0
	for i < len(u.paymentLog) && j < len(u.friendLog) {
		if u.paymentLog[i].seq < u.friendLog[j].seq {
			feed = append(feed, u.paymentLog[i].text)
			i++
		} else {
			feed = append(feed, u.friendLog[j].text)
			j++
		}
	}
	for ; i < len(u.paymentLog); i++ {
		feed = append(feed, u.paymentLog[i].text)
	}
	for ; j < len(u.friendLog); j++ {
		feed = append(feed, u.friendLog[j].text)
	}
	return feed
}
