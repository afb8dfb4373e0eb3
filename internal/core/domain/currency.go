package domain

import (
	"strings"
)

// Currency describes a single supported currency and its display metadata.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // ISO 4217 code (e.g., "BGN")
	Name         string `json:"name"`         // e.g., "Bulgarian Lev"
	NativeName   string `json:"nativeName"`   // e.g., "Български лев"
	Symbol       string `json:"symbol"`       // e.g., "лв."
}

// CurrencyRegistry is a closed catalogue of supported currencies. The set is
// fixed at process start; adding a currency is a deployment-time change so that
// unvalidated codes never enter financial computations. The registry is
// injectable so tests can substitute an alternate catalogue.
type CurrencyRegistry struct {
	ordered []Currency
	byCode  map[string]Currency
}

// NewCurrencyRegistry builds a registry from the given entries, preserving
// their order. Duplicate codes keep the first entry.
func NewCurrencyRegistry(entries []Currency) *CurrencyRegistry {
	r := &CurrencyRegistry{
		ordered: make([]Currency, 0, len(entries)),
		byCode:  make(map[string]Currency, len(entries)),
	}
	for _, e := range entries {
		code := strings.ToUpper(e.CurrencyCode)
		if _, exists := r.byCode[code]; exists {
			continue
		}
		e.CurrencyCode = code
		r.byCode[code] = e
		r.ordered = append(r.ordered, e)
	}
	return r
}

// Lookup returns the entry for the given code, case-insensitively.
func (r *CurrencyRegistry) Lookup(code string) (Currency, bool) {
	c, ok := r.byCode[strings.ToUpper(code)]
	return c, ok
}

// IsSupported reports whether the given code is in the registry.
func (r *CurrencyRegistry) IsSupported(code string) bool {
	_, ok := r.Lookup(code)
	return ok
}

// All returns the registry entries in their declared order.
func (r *CurrencyRegistry) All() []Currency {
	out := make([]Currency, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// SupportedCodesAsString returns the supported codes joined for error messages.
func (r *CurrencyRegistry) SupportedCodesAsString() string {
	codes := make([]string, len(r.ordered))
	for i, c := range r.ordered {
		codes[i] = c.CurrencyCode
	}
	return strings.Join(codes, ", ")
}

// DefaultCurrencyRegistry is the compiled-in catalogue used by NewMoney.
var DefaultCurrencyRegistry = NewCurrencyRegistry([]Currency{
	{CurrencyCode: "BGN", Name: "Bulgarian Lev", NativeName: "Български лев", Symbol: "лв."},
	{CurrencyCode: "EUR", Name: "Euro", NativeName: "Euro", Symbol: "€"},
	{CurrencyCode: "USD", Name: "US Dollar", NativeName: "US Dollar", Symbol: "$"},
	{CurrencyCode: "GBP", Name: "British Pound", NativeName: "British Pound", Symbol: "£"},
	{CurrencyCode: "CHF", Name: "Swiss Franc", NativeName: "Schweizer Franken", Symbol: "CHF"},
	{CurrencyCode: "JPY", Name: "Japanese Yen", NativeName: "日本円", Symbol: "¥"},
	{CurrencyCode: "CAD", Name: "Canadian Dollar", NativeName: "Canadian Dollar", Symbol: "$"},
	{CurrencyCode: "AUD", Name: "Australian Dollar", NativeName: "Australian Dollar", Symbol: "$"},
	{CurrencyCode: "SEK", Name: "Swedish Krona", NativeName: "Svensk krona", Symbol: "kr"},
	{CurrencyCode: "NOK", Name: "Norwegian Krone", NativeName: "Norsk krone", Symbol: "kr"},
	{CurrencyCode: "DKK", Name: "Danish Krone", NativeName: "Dansk krone", Symbol: "kr"},
	{CurrencyCode: "PLN", Name: "Polish Zloty", NativeName: "Polski złoty", Symbol: "zł"},
	{CurrencyCode: "CZK", Name: "Czech Koruna", NativeName: "Koruna česká", Symbol: "Kč"},
	{CurrencyCode: "HUF", Name: "Hungarian Forint", NativeName: "Magyar forint", Symbol: "Ft"},
	{CurrencyCode: "RON", Name: "Romanian Leu", NativeName: "Leu românesc", Symbol: "lei"},
	{CurrencyCode: "TRY", Name: "Turkish Lira", NativeName: "Türk lirası", Symbol: "₺"},
})
