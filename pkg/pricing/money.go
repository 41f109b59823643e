package pricing

import (
	"fmt"
	"strconv"
	"strings"
)

// Money is an amount in minor currency units (cents).
type Money int64

// Units converts whole currency units to Money.
func Units(n int64) Money {
	return Money(n * 100)
}

// ParseMoney parses decimal strings such as "1450", "1450.5" or "1,450.00".
func ParseMoney(raw string) (Money, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	s = strings.TrimPrefix(s, "$")
	if s == "" {
		return 0, fmt.Errorf("pricing: empty amount")
	}
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("pricing: negative amount %q", raw)
	}

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("pricing: amount %q has more than two decimals", raw)
	}
	frac += strings.Repeat("0", 2-len(frac))

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("pricing: parse amount %q: %w", raw, err)
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("pricing: parse amount %q: %w", raw, err)
	}
	return Money(units*100 + cents), nil
}

// String formats the amount with two decimals and no currency symbol.
func (m Money) String() string {
	neg, whole, cents := m.parts()
	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%s%d.%02d", sign, whole, cents)
}

// Display formats the amount for people, e.g. "$2,450".
func (m Money) Display() string {
	neg, whole, cents := m.parts()
	digits := strconv.FormatUint(whole, 10)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if cents != 0 {
		fmt.Fprintf(&b, ".%02d", cents)
	}
	return b.String()
}

// parts splits m into sign and magnitude. The magnitude is unsigned so the
// most negative value has a representation.
func (m Money) parts() (neg bool, whole, cents uint64) {
	v := int64(m)
	mag := uint64(v)
	if v < 0 {
		neg = true
		mag = uint64(-(v + 1)) + 1
	}
	return neg, mag / 100, mag % 100
}
