package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCurrencyFormat = errors.New("currency code must be exactly 3 alphabetic characters")
	ErrUnsupportedCurrency   = errors.New("currency code is not supported")
	ErrCurrencyMismatch      = errors.New("currency codes do not match")
	ErrDivideByZero          = errors.New("cannot divide money by zero")
	ErrInvalidRatios         = errors.New("allocation ratios must be non-negative with a positive sum")
	ErrInvalidExchangeRate   = errors.New("exchange rate must be positive")
)

// moneyPrecision is the number of decimal places every Money amount carries.
const moneyPrecision = 2

// Money is an immutable monetary amount in a single currency. The amount is
// always rounded (half up) to two decimal places, at construction and after
// every arithmetic operation. All operations return a new Money.
type Money struct {
	amount       decimal.Decimal
	currencyCode string
}

// normalizeCurrencyCode uppercases the code and enforces the 3-letter format.
func normalizeCurrencyCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return "", fmt.Errorf("%w: got %q", ErrInvalidCurrencyFormat, code)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("%w: got %q", ErrInvalidCurrencyFormat, code)
		}
	}
	return code, nil
}

// NewMoney creates a Money after validating the currency code format and its
// membership in the default registry.
func NewMoney(amount decimal.Decimal, currencyCode string) (Money, error) {
	return NewMoneyWithRegistry(DefaultCurrencyRegistry, amount, currencyCode)
}

// NewMoneyWithRegistry creates a Money validated against the given registry.
func NewMoneyWithRegistry(registry *CurrencyRegistry, amount decimal.Decimal, currencyCode string) (Money, error) {
	code, err := normalizeCurrencyCode(currencyCode)
	if err != nil {
		return Money{}, err
	}
	if !registry.IsSupported(code) {
		return Money{}, fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedCurrency, code, registry.SupportedCodesAsString())
	}
	return Money{amount: amount.Round(moneyPrecision), currencyCode: code}, nil
}

// NewMoneyFromStorage reconstructs a Money from persisted data. It enforces the
// currency format but deliberately skips the registry membership check, so that
// amounts recorded under a since-removed currency can still be loaded. It is
// not a general escape hatch; new amounts must go through NewMoney.
func NewMoneyFromStorage(amount decimal.Decimal, currencyCode string) (Money, error) {
	code, err := normalizeCurrencyCode(currencyCode)
	if err != nil {
		return Money{}, err
	}
	return Money{amount: amount.Round(moneyPrecision), currencyCode: code}, nil
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// CurrencyCode returns the 3-letter currency code.
func (m Money) CurrencyCode() string {
	return m.currencyCode
}

func (m Money) String() string {
	return m.amount.StringFixed(moneyPrecision) + " " + m.currencyCode
}

// assertSameCurrency fails with ErrCurrencyMismatch unless both operands share
// a currency code.
func (m Money) assertSameCurrency(other Money) error {
	if m.currencyCode != other.currencyCode {
		return fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.currencyCode, other.currencyCode)
	}
	return nil
}

// Add returns m + other. Both operands must share a currency.
func (m Money) Add(other Money) (Money, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Add(other.amount).Round(moneyPrecision), currencyCode: m.currencyCode}, nil
}

// Subtract returns m - other. Both operands must share a currency.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Sub(other.amount).Round(moneyPrecision), currencyCode: m.currencyCode}, nil
}

// Multiply returns m scaled by the given factor.
func (m Money) Multiply(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor).Round(moneyPrecision), currencyCode: m.currencyCode}
}

// Divide returns m divided by the given divisor.
func (m Money) Divide(divisor decimal.Decimal) (Money, error) {
	if divisor.IsZero() {
		return Money{}, ErrDivideByZero
	}
	return Money{amount: m.amount.Div(divisor).Round(moneyPrecision), currencyCode: m.currencyCode}, nil
}

// Cmp compares m against other: -1 if less, 0 if equal, 1 if greater. A nil
// other ranks the receiver greater.
func (m Money) Cmp(other *Money) (int, error) {
	if other == nil {
		return 1, nil
	}
	if err := m.assertSameCurrency(*other); err != nil {
		return 0, err
	}
	return m.amount.Cmp(other.amount), nil
}

// GreaterThan reports whether m > other.
func (m Money) GreaterThan(other Money) (bool, error) {
	c, err := m.Cmp(&other)
	return c > 0, err
}

// GreaterThanOrEqual reports whether m >= other.
func (m Money) GreaterThanOrEqual(other Money) (bool, error) {
	c, err := m.Cmp(&other)
	return c >= 0, err
}

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) (bool, error) {
	c, err := m.Cmp(&other)
	return c < 0, err
}

// LessThanOrEqual reports whether m <= other.
func (m Money) LessThanOrEqual(other Money) (bool, error) {
	c, err := m.Cmp(&other)
	return c <= 0, err
}

// Equal reports whether both amount and currency are equal.
func (m Money) Equal(other Money) bool {
	return m.currencyCode == other.currencyCode && m.amount.Equal(other.amount)
}

func (m Money) IsZero() bool     { return m.amount.IsZero() }
func (m Money) IsPositive() bool { return m.amount.IsPositive() }
func (m Money) IsNegative() bool { return m.amount.IsNegative() }

// Abs returns the absolute value, currency preserved.
func (m Money) Abs() Money {
	return Money{amount: m.amount.Abs(), currencyCode: m.currencyCode}
}

// Negate returns the negated value, currency preserved.
func (m Money) Negate() Money {
	return Money{amount: m.amount.Neg(), currencyCode: m.currencyCode}
}

// Allocate splits the amount proportionally to the given non-negative ratios.
// Each share is rounded to two decimals; any rounding remainder is added to the
// first share so that the shares always sum to the original amount exactly.
func (m Money) Allocate(ratios []int) ([]Money, error) {
	if len(ratios) == 0 {
		return nil, ErrInvalidRatios
	}
	total := int64(0)
	for _, r := range ratios {
		if r < 0 {
			return nil, fmt.Errorf("%w: ratio %d is negative", ErrInvalidRatios, r)
		}
		total += int64(r)
	}
	if total <= 0 {
		return nil, ErrInvalidRatios
	}

	totalDec := decimal.NewFromInt(total)
	shares := make([]Money, len(ratios))
	allocated := decimal.Zero
	for i, r := range ratios {
		share := m.amount.Mul(decimal.NewFromInt(int64(r))).Div(totalDec).Round(moneyPrecision)
		shares[i] = Money{amount: share, currencyCode: m.currencyCode}
		allocated = allocated.Add(share)
	}

	// The remainder goes to the first share so no cents are lost or invented.
	remainder := m.amount.Sub(allocated)
	if !remainder.IsZero() {
		shares[0] = Money{amount: shares[0].amount.Add(remainder), currencyCode: m.currencyCode}
	}
	return shares, nil
}

// ConvertTo converts m into the target currency at the given rate. A rate that
// is zero or negative is rejected. Converting to the same currency returns m
// unchanged. The target code is format-checked but not checked against the
// registry, so conversions into transitional or deprecated codes keep working.
func (m Money) ConvertTo(targetCurrencyCode string, rate decimal.Decimal) (Money, error) {
	if rate.LessThanOrEqual(decimal.Zero) {
		return Money{}, fmt.Errorf("%w: got %s", ErrInvalidExchangeRate, rate.String())
	}
	target, err := normalizeCurrencyCode(targetCurrencyCode)
	if err != nil {
		return Money{}, err
	}
	if target == m.currencyCode {
		return m, nil
	}
	return Money{amount: m.amount.Mul(rate).Round(moneyPrecision), currencyCode: target}, nil
}

// moneyJSON is the wire shape of Money.
type moneyJSON struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Amount: m.amount, CurrencyCode: m.currencyCode})
}

// UnmarshalJSON reconstructs a Money through the storage path: format check
// only, no registry membership check.
func (m *Money) UnmarshalJSON(data []byte) error {
	var raw moneyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewMoneyFromStorage(raw.Amount, raw.CurrencyCode)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
