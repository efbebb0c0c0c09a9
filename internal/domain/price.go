package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Price is a monetary amount stored as cents. The catalog schema allows at
// most six total digits with two after the decimal point, so valid prices
// range from 0.00 to 9999.99. Keeping cents as an integer avoids float
// rounding on the two-decimal wire format.
type Price int64

// MaxPrice is the largest representable price, 9999.99.
const MaxPrice Price = 999999

// ParsePrice parses a decimal string such as "500.12" into a Price.
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("price is required")
	}
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("price must not be negative")
	}

	whole := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("price allows at most 2 decimal places")
	}
	if whole == "" {
		whole = "0"
	}
	for len(frac) < 2 {
		frac += "0"
	}

	// Both parts must be bare digits. ParseInt alone would accept a sign
	// inside the fraction and silently shift the amount.
	if !allDigits(whole) || !allDigits(frac) {
		return 0, fmt.Errorf("invalid price %q", s)
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", s)
	}

	p := Price(w*100 + f)
	if p > MaxPrice {
		return 0, fmt.Errorf("price must not exceed %s", MaxPrice)
	}
	return p, nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Valid reports whether the price is within the schema's range.
func (p Price) Valid() bool {
	return p >= 0 && p <= MaxPrice
}

// String renders the price with exactly two decimal places.
func (p Price) String() string {
	return fmt.Sprintf("%d.%02d", int64(p)/100, int64(p)%100)
}

// MarshalJSON renders the price as a two-decimal string, e.g. "500.12".
func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON accepts either a JSON string or a bare number. Numbers are
// parsed from their raw token so "500.12" never round-trips through float64.
func (p *Price) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParsePrice(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Scan implements sql.Scanner for NUMERIC(6,2) columns.
func (p *Price) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		parsed, err := ParsePrice(string(v))
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	case string:
		parsed, err := ParsePrice(v)
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	case int64:
		*p = Price(v * 100)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Price", src)
	}
}

// Value implements driver.Valuer.
func (p Price) Value() (driver.Value, error) {
	return p.String(), nil
}
