// internal/domain/user_test.go
package domain

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minivenmo/internal/cardnetwork"
)

const (
	validCard   = "4111111111111111"
	invalidCard = "1234567890123456"
)

// stubCharger counts charges and returns a configured outcome.
type stubCharger struct {
	err   error
	calls int
}

func (c *stubCharger) Charge(ctx context.Context, cardNumber string) error {
	c.calls++
	return c.err
}

func newTestUser(t *testing.T, username string, charger cardnetwork.Charger) *User {
	t.Helper()
	user, err := NewUser(username, charger)
	require.NoError(t, err)
	return user
}

func TestNewUser(t *testing.T) {
	user, err := NewUser("ValidUser123", nil)
	require.NoError(t, err)
	assert.Equal(t, "ValidUser123", user.Username())
	assert.True(t, user.Balance().IsZero())
	assert.Empty(t, user.CreditCardNumber())
	assert.Empty(t, user.RetrieveFeed())
}

func TestNewUser_InvalidUsername(t *testing.T) {
	for _, username := range []string{"bad", "inv@lid", "", "way_too_long_username"} {
		_, err := NewUser(username, nil)
		assert.ErrorIs(t, err, ErrUsername, "username %q", username)
	}
}

func TestAddCreditCard(t *testing.T) {
	user := newTestUser(t, "CardHolder", nil)

	require.NoError(t, user.AddCreditCard(validCard))
	assert.Equal(t, validCard, user.CreditCardNumber())
}

func TestAddCreditCard_InvalidNumber(t *testing.T) {
	user := newTestUser(t, "CardHolder", nil)

	err := user.AddCreditCard(invalidCard)
	assert.ErrorIs(t, err, ErrInvalidCardNumber)
	assert.ErrorIs(t, err, ErrCreditCard)
	assert.Empty(t, user.CreditCardNumber())
}

func TestAddCreditCard_SecondCard(t *testing.T) {
	user := newTestUser(t, "CardHolder", nil)
	require.NoError(t, user.AddCreditCard(validCard))

	err := user.AddCreditCard("4242424242424242")
	assert.ErrorIs(t, err, ErrCardAlreadyAttached)
	assert.Equal(t, validCard, user.CreditCardNumber(), "attached card must never change")
}

func TestAddToBalance(t *testing.T) {
	user := newTestUser(t, "Saver", nil)
	user.AddToBalance(decimal.NewFromFloat(100.0))
	user.AddToBalance(decimal.NewFromFloat(0.50))
	assert.True(t, user.Balance().Equal(decimal.NewFromFloat(100.50)))
}

func TestPay_BalancePath(t *testing.T) {
	charger := &stubCharger{}
	payer := newTestUser(t, "Payer", charger)
	receiver := newTestUser(t, "Receiver", charger)
	require.NoError(t, payer.AddCreditCard(validCard))
	payer.AddToBalance(decimal.NewFromFloat(100.0))

	payment, err := payer.Pay(context.Background(), receiver, decimal.NewFromFloat(50.0), "Test payment")
	require.NoError(t, err)

	assert.True(t, payer.Balance().Equal(decimal.NewFromFloat(50.0)))
	assert.True(t, receiver.Balance().Equal(decimal.NewFromFloat(50.0)))
	assert.Zero(t, charger.calls, "balance path must not touch the card")

	assert.NotEmpty(t, payment.ID)
	assert.Equal(t, FundingBalance, payment.Funding)
	assert.Same(t, payer, payment.Actor)
	assert.Same(t, receiver, payment.Target)
	assert.Equal(t, "Test payment", payment.Note)
	assert.True(t, payment.Amount.Equal(decimal.NewFromFloat(50.0)))
}

func TestPay_BalancePathExactAmount(t *testing.T) {
	payer := newTestUser(t, "Payer", &stubCharger{})
	receiver := newTestUser(t, "Receiver", nil)
	payer.AddToBalance(decimal.NewFromFloat(5.0))

	payment, err := payer.Pay(context.Background(), receiver, decimal.NewFromFloat(5.0), "Coffee")
	require.NoError(t, err)

	assert.Equal(t, FundingBalance, payment.Funding, "balance == amount still funds from balance")
	assert.True(t, payer.Balance().IsZero())
}

func TestPay_CardFallback(t *testing.T) {
	charger := &stubCharger{}
	payer := newTestUser(t, "Payer", charger)
	receiver := newTestUser(t, "Receiver", charger)
	require.NoError(t, payer.AddCreditCard(validCard))
	payer.AddToBalance(decimal.NewFromFloat(10.0))

	payment, err := payer.Pay(context.Background(), receiver, decimal.NewFromFloat(50.0), "Test payment")
	require.NoError(t, err)

	assert.True(t, payer.Balance().Equal(decimal.NewFromFloat(10.0)), "card path must not touch the payer's balance")
	assert.True(t, receiver.Balance().Equal(decimal.NewFromFloat(50.0)))
	assert.Equal(t, 1, charger.calls)
	assert.Equal(t, FundingCard, payment.Funding)
}

func TestPay_InsufficientBalanceNoCard(t *testing.T) {
	payer := newTestUser(t, "Payer", &stubCharger{})
	receiver := newTestUser(t, "Receiver", nil)
	payer.AddToBalance(decimal.NewFromFloat(10.0))

	_, err := payer.Pay(context.Background(), receiver, decimal.NewFromFloat(50.0), "Test payment")
	assert.ErrorIs(t, err, ErrNoCreditCard)
	assert.ErrorIs(t, err, ErrPayment)

	assert.True(t, payer.Balance().Equal(decimal.NewFromFloat(10.0)), "rejected payment must not move money")
	assert.True(t, receiver.Balance().IsZero())
	assert.Empty(t, payer.RetrieveFeed())
	assert.Empty(t, receiver.RetrieveFeed())
}

func TestPay_ChargeDeclined(t *testing.T) {
	charger := &stubCharger{err: cardnetwork.ErrDeclined}
	payer := newTestUser(t, "Payer", charger)
	receiver := newTestUser(t, "Receiver", nil)
	require.NoError(t, payer.AddCreditCard(validCard))
	payer.AddToBalance(decimal.NewFromFloat(10.0))

	_, err := payer.Pay(context.Background(), receiver, decimal.NewFromFloat(50.0), "Test payment")
	assert.ErrorIs(t, err, ErrPayment, "charge failure surfaces as a payment error")
	assert.ErrorIs(t, err, cardnetwork.ErrDeclined, "the network's failure is not swallowed")
	assert.Equal(t, 1, charger.calls, "a failed charge is never retried")

	assert.True(t, payer.Balance().Equal(decimal.NewFromFloat(10.0)))
	assert.True(t, receiver.Balance().IsZero())
	assert.Empty(t, payer.RetrieveFeed())
	assert.Empty(t, receiver.RetrieveFeed())
}

func TestPay_NonPositiveAmount(t *testing.T) {
	charger := &stubCharger{}
	payer := newTestUser(t, "Payer", charger)
	receiver := newTestUser(t, "Receiver", nil)
	require.NoError(t, payer.AddCreditCard(validCard))
	payer.AddToBalance(decimal.NewFromFloat(100.0))

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromFloat(-10.0)} {
		_, err := payer.Pay(context.Background(), receiver, amount, "Test payment")
		assert.ErrorIs(t, err, ErrNonPositiveAmount, "amount %s", amount)
	}
	assert.True(t, payer.Balance().Equal(decimal.NewFromFloat(100.0)))
	assert.Zero(t, charger.calls)
}

func TestPay_Self(t *testing.T) {
	user := newTestUser(t, "SelfPayer", &stubCharger{})
	user.AddToBalance(decimal.NewFromFloat(100.0))

	_, err := user.Pay(context.Background(), user, decimal.NewFromFloat(50.0), "Paying myself")
	assert.ErrorIs(t, err, ErrSelfPayment)
	assert.ErrorIs(t, err, ErrPayment)
	assert.True(t, user.Balance().Equal(decimal.NewFromFloat(100.0)))
}

func TestPay_FeedCompleteness(t *testing.T) {
	payer := newTestUser(t, "Bobby", &stubCharger{})
	receiver := newTestUser(t, "Carol", nil)
	payer.AddToBalance(decimal.NewFromFloat(100.0))

	_, err := payer.Pay(context.Background(), receiver, decimal.NewFromFloat(25.0), "Coffee")
	require.NoError(t, err)

	want := "Bobby paid Carol $25.00 for Coffee"
	assert.Contains(t, payer.RetrieveFeed(), want)
	assert.Contains(t, receiver.RetrieveFeed(), want)
}

func TestPay_RoundTrip(t *testing.T) {
	charger := &stubCharger{}
	bobby := newTestUser(t, "Bobby", charger)
	carol := newTestUser(t, "Carol", charger)
	require.NoError(t, bobby.AddCreditCard("4111111111111111"))
	require.NoError(t, carol.AddCreditCard("4242424242424242"))
	bobby.AddToBalance(decimal.NewFromFloat(5.00))
	carol.AddToBalance(decimal.NewFromFloat(10.00))

	coffee, err := bobby.Pay(context.Background(), carol, decimal.NewFromFloat(5.00), "Coffee")
	require.NoError(t, err)
	assert.Equal(t, FundingBalance, coffee.Funding)
	assert.True(t, bobby.Balance().IsZero())
	assert.True(t, carol.Balance().Equal(decimal.NewFromFloat(15.00)))

	// Carol now holds exactly 15.00, so her lunch is covered by balance too.
	lunch, err := carol.Pay(context.Background(), bobby, decimal.NewFromFloat(15.00), "Lunch")
	require.NoError(t, err)
	assert.Equal(t, FundingBalance, lunch.Funding)
	assert.True(t, carol.Balance().IsZero())
	assert.True(t, bobby.Balance().Equal(decimal.NewFromFloat(15.00)))
	assert.Zero(t, charger.calls)

	assert.Equal(t, []string{
		"Bobby paid Carol $5.00 for Coffee",
		"Carol paid Bobby $15.00 for Lunch",
	}, bobby.RetrieveFeed())
}

func TestAddFriend(t *testing.T) {
	user := newTestUser(t, "User1", nil)
	friend := newTestUser(t, "Friend1", nil)

	require.NoError(t, user.AddFriend(friend))

	assert.Equal(t, []string{"User1 added Friend1 as a friend"}, user.RetrieveFeed())
	assert.Empty(t, friend.RetrieveFeed(), "friendship is one-directional in the log")
}

func TestAddFriend_Idempotent(t *testing.T) {
	user := newTestUser(t, "User1", nil)
	friend := newTestUser(t, "Friend1", nil)

	require.NoError(t, user.AddFriend(friend))
	require.NoError(t, user.AddFriend(friend), "duplicate add is a silent no-op")

	assert.Len(t, user.RetrieveFeed(), 1)
}

func TestAddFriend_Self(t *testing.T) {
	user := newTestUser(t, "User1", nil)

	err := user.AddFriend(user)
	assert.ErrorIs(t, err, ErrSelfFriend)
	assert.ErrorIs(t, err, ErrInvalidOperation)
	assert.Empty(t, user.RetrieveFeed())
}

func TestRetrieveFeed_Interleaving(t *testing.T) {
	alice := newTestUser(t, "Alice1", nil)
	bob := newTestUser(t, "Bob123", nil)
	carl := newTestUser(t, "Carl12", nil)
	alice.AddToBalance(decimal.NewFromFloat(100.0))

	_, err := alice.Pay(context.Background(), bob, decimal.NewFromFloat(1.00), "First")
	require.NoError(t, err)
	require.NoError(t, alice.AddFriend(bob))
	_, err = alice.Pay(context.Background(), carl, decimal.NewFromFloat(2.00), "Second")
	require.NoError(t, err)
	require.NoError(t, alice.AddFriend(carl))

	assert.Equal(t, []string{
		"Alice1 paid Bob123 $1.00 for First",
		"Alice1 added Bob123 as a friend",
		"Alice1 paid Carl12 $2.00 for Second",
		"Alice1 added Carl12 as a friend",
	}, alice.RetrieveFeed(), "feed interleaves payments and friend events chronologically")
}

func TestRetrieveFeed_AppendOnly(t *testing.T) {
	alice := newTestUser(t, "Alice1", nil)
	bob := newTestUser(t, "Bob123", nil)
	alice.AddToBalance(decimal.NewFromFloat(100.0))

	var want []string
	for i := 1; i <= 5; i++ {
		note := fmt.Sprintf("Payment %d", i)
		_, err := alice.Pay(context.Background(), bob, decimal.NewFromFloat(1.00), note)
		require.NoError(t, err)
		want = append(want, fmt.Sprintf("Alice1 paid Bob123 $1.00 for %s", note))
		assert.Equal(t, want, alice.RetrieveFeed(), "existing entries keep their position")
	}
}

func TestPay_Concurrent(t *testing.T) {
	const workers = 8
	const paymentsEach = 50

	alice := newTestUser(t, "Alice1", nil)
	bob := newTestUser(t, "Bob123", nil)
	alice.AddToBalance(decimal.NewFromFloat(10000.0))
	bob.AddToBalance(decimal.NewFromFloat(10000.0))
	initialTotal := alice.Balance().Add(bob.Balance())

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		payer, payee := alice, bob
		if w%2 == 1 {
			payer, payee = bob, alice
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < paymentsEach; i++ {
				_, err := payer.Pay(context.Background(), payee, decimal.NewFromFloat(1.00), "ping")
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	total := alice.Balance().Add(bob.Balance())
	assert.True(t, total.Equal(initialTotal), "money must be conserved, got %s", total)
	assert.Len(t, alice.RetrieveFeed(), workers*paymentsEach)
	assert.Len(t, bob.RetrieveFeed(), workers*paymentsEach)
}
