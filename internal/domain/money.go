package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is an amount in minor units (cents).
type Money int64

var ErrMoneyOverflow = errors.New("money overflow")

func Cents(c int64) Money {
	return Money(c)
}

// ParseMoney parses a decimal string with at most two fractional digits,
// e.g. "250", "250.5", "250.00".
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty amount")
	}
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" || (hasFrac && (frac == "" || len(frac) > 2)) {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}
	w, err := strconv.ParseUint(whole, 10, 63)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	f, err := strconv.ParseUint(frac, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if w > (math.MaxInt64-f)/100 {
		return 0, ErrMoneyOverflow
	}
	m := Money(w*100 + f)
	if neg {
		m = -m
	}
	return m, nil
}

// Mul multiplies by a non-negative count, reporting overflow.
func (m Money) Mul(n int) (Money, error) {
	if n < 0 {
		return 0, fmt.Errorf("negative multiplier %d", n)
	}
	if n == 0 || m == 0 {
		return 0, nil
	}
	r := int64(m) * int64(n)
	if r/int64(n) != int64(m) {
		return 0, ErrMoneyOverflow
	}
	return Money(r), nil
}

func (m Money) Cents() int64 {
	return int64(m)
}

func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var n json.Number
		if err2 := json.Unmarshal(data, &n); err2 != nil {
			return err
		}
		s = n.String()
	}
	v, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
