package math

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// MaxDecimals bounds token decimals; 10^77 is the largest power of ten below 2^256
const MaxDecimals = 77

var (
	ErrEmptyAmount    = errors.New("empty amount")
	ErrInvalidAmount  = errors.New("invalid decimal amount")
	ErrNegativeAmount = errors.New("negative amount")
	ErrTooPrecise     = errors.New("amount has more fractional digits than the token supports")
	ErrBadDecimals    = errors.New("decimals out of range")
)

// ParseUnits converts a decimal string such as "1.5" into the token's
// smallest unit, e.g. ParseUnits("1.5", 18) = 1500000000000000000.
func ParseUnits(s string, decimals int) (*big.Int, error) {
	if decimals < 0 || decimals > MaxDecimals {
		return nil, fmt.Errorf("%w: %d", ErrBadDecimals, decimals)
	}

	whole, frac, err := splitDecimal(s)
	if err != nil {
		return nil, err
	}
	if len(frac) > decimals {
		return nil, fmt.Errorf("%w: %q allows %d", ErrTooPrecise, s, decimals)
	}

	digits := whole + frac + strings.Repeat("0", decimals-len(frac))
	v, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return v, nil
}

// ValidateAmount checks that s is a strictly positive plain decimal
func ValidateAmount(s string) error {
	whole, frac, err := splitDecimal(s)
	if err != nil {
		return err
	}
	if strings.Trim(whole+frac, "0") == "" {
		return fmt.Errorf("%w: %q must be greater than zero", ErrInvalidAmount, s)
	}
	return nil
}

// FormatUnits renders v scaled down by 10^decimals with trailing zeros trimmed
func FormatUnits(v *big.Int, decimals int) string {
	if v == nil {
		return "0"
	}
	if decimals <= 0 {
		return v.String()
	}

	digits := new(big.Int).Abs(v).String()
	if len(digits) <= decimals {
		digits = strings.Repeat("0", decimals-len(digits)+1) + digits
	}

	out := digits[:len(digits)-decimals]
	if frac := strings.TrimRight(digits[len(digits)-decimals:], "0"); frac != "" {
		out += "." + frac
	}
	if v.Sign() < 0 {
		out = "-" + out
	}
	return out
}

// ToFloat returns v / 10^decimals as a float64
func ToFloat(v *big.Int, decimals int) float64 {
	f, err := strconv.ParseFloat(FormatUnits(v, decimals), 64)
	if err != nil {
		return 0
	}
	return f
}

func splitDecimal(s string) (whole, frac string, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", "", ErrEmptyAmount
	}
	if strings.HasPrefix(s, "-") {
		return "", "", fmt.Errorf("%w: %q", ErrNegativeAmount, s)
	}
	s = strings.TrimPrefix(s, "+")

	whole, frac, _ = strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if !isDigits(whole) || !isDigits(frac) {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if whole == "" {
		whole = "0"
	}
	return whole, frac, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
