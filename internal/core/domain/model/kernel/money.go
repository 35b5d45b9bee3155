package kernel

import (
	"fmt"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 currency code.
type Currency string

// CurrencyBDT is the only currency the marketplace settles in.
const CurrencyBDT Currency = "BDT"

// ErrMoneyIsNotConstructed is returned when a Money value was not created via NewMoney.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney")

// Money is an immutable, currency-tagged decimal amount.
//
// Money itself accepts zero. Callers that need a strictly positive amount (bids) check
// IsPositive themselves. Compare with IsEqual, not ==, because decimal values with the
// same numeric value may differ in representation.
type Money struct { //nolint:recvcheck //using for validation
	amount   decimal.Decimal
	currency Currency
	guard    guard.ConstructorGuard
}

// NewMoney creates a Money value. It fails with a validation error when the amount is
// negative or the currency is not supported.
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if currency != CurrencyBDT {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"currency", fmt.Errorf("%q is not supported, only %s is", currency, CurrencyBDT))
	}

	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount", fmt.Errorf("%s is negative", amount.String()))
	}

	return Money{
		amount:   amount,
		currency: currency,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// MustNewMoney is NewMoney for amounts known to be valid, such as constants in tests.
func MustNewMoney(amount decimal.Decimal, currency Currency) Money {
	m, err := NewMoney(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

// Validate returns ErrMoneyIsNotConstructed if the value was not created by NewMoney.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) Currency() Currency {
	return m.currency
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsEqual compares amount numerically and currency exactly.
func (m Money) IsEqual(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// LessThan compares two amounts of the same currency.
func (m Money) LessThan(other Money) (bool, error) {
	if m.currency != other.currency {
		return false, errs.NewValueIsInvalidErrorWithCause(
			"currency", fmt.Errorf("cannot compare %s with %s", m.currency, other.currency))
	}
	return m.amount.LessThan(other.amount), nil
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(2), m.currency)
}
