package salesingest

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

// decimalContext is the shared arithmetic context for monetary values.
// 34 digits of precision (decimal128) is far beyond what retail line-item
// sums require, so additions never round.
var decimalContext = apd.BaseContext.WithPrecision(34)

// Decimal is an exact decimal value for monetary amounts. The zero value is
// zero and ready to use. Values survive JSON and SQL round-trips as their
// canonical string form, so no precision is lost between the extract and
// load tasks or on the way into numeric columns.
type Decimal struct {
	value apd.Decimal
}

// ParseDecimal parses s as an exact decimal.
func ParseDecimal(s string) (Decimal, error) {
	var d apd.Decimal
	if _, _, err := d.SetString(s); err != nil {
		return Decimal{}, fmt.Errorf("invalid decimal %q: %w", s, err)
	}
	return Decimal{value: d}, nil
}

// MustDecimal parses s and panics on failure. For tests and constants only.
func MustDecimal(s string) Decimal {
	d, err := ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Add returns the exact sum of d and other.
func (d Decimal) Add(other Decimal) Decimal {
	var result apd.Decimal
	decimalContext.Add(&result, &d.value, &other.value)
	return Decimal{value: result}
}

// Cmp compares d and other, returning -1, 0, or +1.
func (d Decimal) Cmp(other Decimal) int {
	return d.value.Cmp(&other.value)
}

// IsZero reports whether d is numerically zero.
func (d Decimal) IsZero() bool {
	return d.value.IsZero()
}

// String returns the canonical decimal form, e.g. "24.99".
func (d Decimal) String() string {
	return d.value.String()
}

// MarshalJSON encodes the value as a JSON string to preserve precision.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.value.String() + `"`), nil
}

// UnmarshalJSON decodes a JSON string or bare number.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParseDecimal(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
