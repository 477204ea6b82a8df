// Package billing implements payment collection against any Chargeable
// processor. Checkout validates the request and hands it to the processor;
// which kind of processor fulfils it is the processor's business.
package billing

import (
	"errors"
	"fmt"
)

// ErrInsufficientFunds is returned when a processor cannot cover the
// requested amount.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Receipt records a completed charge. Amounts are in cents.
type Receipt struct {
	Payer     string
	Amount    int64
	Reference string
}

// Chargeable collects a payment and issues a receipt.
type Chargeable interface {
	Charge(payer string, amount int64) (Receipt, error)
}

// Checkout validates a charge request and runs it through processor.
func Checkout(processor Chargeable, payer string, amount int64) (Receipt, error) {
	if payer == "" {
		return Receipt{}, fmt.Errorf("checkout: payer is required")
	}
	if amount <= 0 {
		return Receipt{}, fmt.Errorf("checkout: amount must be positive, got %d", amount)
	}
	receipt, err := processor.Charge(payer, amount)
	if err != nil {
		return Receipt{}, fmt.Errorf("charging %s: %w", payer, err)
	}
	return receipt, nil
}

// CardProcessor charges a card account. Charges always clear; references
// are sequential within one processor.
type CardProcessor struct {
	prefix string
	serial int
}

// NewCardProcessor returns a processor issuing references with the given
// prefix.
func NewCardProcessor(prefix string) *CardProcessor {
	return &CardProcessor{prefix: prefix}
}

func (p *CardProcessor) Charge(payer string, amount int64) (Receipt, error) {
	p.serial++
	return Receipt{
		Payer:     payer,
		Amount:    amount,
		Reference: fmt.Sprintf("%s-%06d", p.prefix, p.serial),
	}, nil
}

// GiftCard charges against a prepaid balance.
type GiftCard struct {
	code    string
	balance int64
}

// NewGiftCard returns a gift card with the given starting balance in cents.
func NewGiftCard(code string, balance int64) *GiftCard {
	return &GiftCard{code: code, balance: balance}
}

func (g *GiftCard) Charge(payer string, amount int64) (Receipt, error) {
	if amount > g.balance {
		return Receipt{}, fmt.Errorf("gift card %s: %w", g.code, ErrInsufficientFunds)
	}
	g.balance -= amount
	return Receipt{
		Payer:     payer,
		Amount:    amount,
		Reference: fmt.Sprintf("gift-%s", g.code),
	}, nil
}

// Balance reports the remaining balance in cents.
func (g *GiftCard) Balance() int64 {
	return g.balance
}
