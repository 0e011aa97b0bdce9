// Package money implements the engine's Decimal amount: an exact
// fixed-point quantity with four fractional digits and checked,
// bounded arithmetic, built on github.com/shopspring/decimal (the
// monetary-amount library the pack reaches for in LerianStudio-midaz
// and ChainSafe-canton-middleware) rather than a float or a native
// 64-bit integer, since the represented integer part can run up to
// 2^82. shopspring/decimal itself has no notion of a bounded,
// checked-overflow magnitude, so CheckedAdd/CheckedSub layer that
// ceiling check on top — see DESIGN.md.
package money

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional decimal digits every Decimal is
// stored with.
const Scale = 4

// maxMagnitude bounds the scaled integer representation so the
// unscaled integer part never exceeds 2^82.
var maxMagnitude = new(big.Int).Mul(new(big.Int).Lsh(big.NewInt(1), 82), big.NewInt(10000))

// Decimal is an exact, immutable fixed-point value. The zero value is
// the canonical zero.
type Decimal struct {
	d decimal.Decimal
}

// Zero is the canonical zero value.
func Zero() Decimal {
	return Decimal{d: decimal.New(0, -Scale)}
}

// Parse accepts an optional leading sign, a required integer part, and
// an optional fractional part of up to Scale digits. A present but
// empty fractional part (e.g. "1.") is rejected, as is more than Scale
// fractional digits; there is no implicit rounding.
func Parse(s string) (Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Decimal{}, false
	}

	neg := false
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		neg = true
		s = s[1:]
	}
	if s == "" {
		return Decimal{}, false
	}

	intPart, fracPart := s, ""
	hasFrac := false
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		hasFrac = true
		intPart, fracPart = s[:idx], s[idx+1:]
	}
	if intPart == "" || !isDigits(intPart) {
		return Decimal{}, false
	}
	if hasFrac && fracPart == "" {
		return Decimal{}, false
	}
	if len(fracPart) > Scale || (fracPart != "" && !isDigits(fracPart)) {
		return Decimal{}, false
	}

	combined := intPart + fracPart + strings.Repeat("0", Scale-len(fracPart))
	raw, ok := new(big.Int).SetString(combined, 10)
	if !ok {
		return Decimal{}, false
	}
	if neg {
		raw.Neg(raw)
	}

	d := Decimal{d: decimal.NewFromBigInt(raw, -Scale)}
	if d.exceedsMagnitude() {
		return Decimal{}, false
	}
	return d, true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// canonical rescales d to Scale fractional digits, needed because
// decimal.Decimal keeps whatever exponent an operation produced.
func (d Decimal) canonical() decimal.Decimal {
	return d.d.Rescale(-Scale)
}

func (d Decimal) exceedsMagnitude() bool {
	abs := new(big.Int).Abs(d.canonical().Coefficient())
	return abs.Cmp(maxMagnitude) > 0
}

// String renders the canonical decimal form, trimming trailing
// fractional zeros.
func (d Decimal) String() string {
	raw := d.canonical().Coefficient()
	abs := new(big.Int).Abs(raw)
	digits := abs.String()
	for len(digits) <= Scale {
		digits = "0" + digits
	}
	intDigits := digits[:len(digits)-Scale]
	fracDigits := strings.TrimRight(digits[len(digits)-Scale:], "0")

	var b strings.Builder
	if raw.Sign() < 0 {
		b.WriteByte('-')
	}
	b.WriteString(intDigits)
	if fracDigits != "" {
		b.WriteByte('.')
		b.WriteString(fracDigits)
	}
	return b.String()
}

// Negate returns -d.
func (d Decimal) Negate() Decimal {
	return Decimal{d: d.d.Neg()}
}

// CheckedAdd returns a+b, or ok=false on overflow. On overflow the
// returned Decimal is the zero value; callers must not use it.
func CheckedAdd(a, b Decimal) (Decimal, bool) {
	sum := Decimal{d: a.d.Add(b.d)}
	if sum.exceedsMagnitude() {
		return Decimal{}, false
	}
	return sum, true
}

// CheckedSub returns a-b, or ok=false on overflow.
func CheckedSub(a, b Decimal) (Decimal, bool) {
	diff := Decimal{d: a.d.Sub(b.d)}
	if diff.exceedsMagnitude() {
		return Decimal{}, false
	}
	return diff, true
}

// Compare returns -1, 0, or 1 as a is less than, equal to, or greater
// than b.
func Compare(a, b Decimal) int {
	return a.d.Cmp(b.d)
}

// Equal reports value equality.
func Equal(a, b Decimal) bool {
	return a.d.Equal(b.d)
}

// IsZero reports whether d is the canonical zero.
func (d Decimal) IsZero() bool {
	return d.d.IsZero()
}

// IsPositive reports whether d is strictly greater than zero.
func (d Decimal) IsPositive() bool {
	return d.d.IsPositive()
}
