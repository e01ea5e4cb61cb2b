// internal/cardnetwork/charger.go

// Package cardnetwork models the external card-processing capability the
// ledger calls into. The core only ever sees the Charger interface; the
// Gateway below stands in for the real processor.
package cardnetwork

import (
	"context"
	"errors"
)

// ErrDeclined is returned when the card network refuses a charge.
var ErrDeclined = errors.New("card charge declined by network")

// Charger charges a credit card. A nil error means the charge settled.
// Charges are blocking, fallible and not idempotency-safe: callers must not
// retry automatically.
type Charger interface {
	Charge(ctx context.Context, cardNumber string) error
}

// ChargerFunc adapts a function to the Charger interface.
type ChargerFunc func(ctx context.Context, cardNumber string) error

func (f ChargerFunc) Charge(ctx context.Context, cardNumber string) error {
	return f(ctx, cardNumber)
}

// Gateway is a simulated card processor: it approves every charge except
// for card numbers it was configured to decline.
type Gateway struct {
	declined map[string]struct{}
}

// NewGateway creates a Gateway that declines charges against the given card
// numbers and approves everything else.
func NewGateway(declinedCards ...string) *Gateway {
	declined := make(map[string]struct{}, len(declinedCards))
	for _, c := range declinedCards {
		declined[c] = struct{}{}
	}
	return &Gateway{declined: declined}
}

// Charge settles a charge against cardNumber.
func (g *Gateway) Charge(ctx context.Context, cardNumber string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, ok := g.declined[cardNumber]; ok {
		return ErrDeclined
	}
	return nil
}
