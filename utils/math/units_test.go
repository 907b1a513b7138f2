package math

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnits(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		decimals int
		want     string
		err      error
	}{
		{"one ether", "1", 18, "1000000000000000000", nil},
		{"fractional", "1.5", 18, "1500000000000000000", nil},
		{"leading dot", ".25", 6, "250000", nil},
		{"trailing dot", "3.", 6, "3000000", nil},
		{"exact precision", "0.000001", 6, "1", nil},
		{"zero decimals", "42", 0, "42", nil},
		{"whitespace", "  2.0 ", 6, "2000000", nil},
		{"too precise", "0.0000001", 6, "", ErrTooPrecise},
		{"negative", "-1", 18, "", ErrNegativeAmount},
		{"empty", "", 18, "", ErrEmptyAmount},
		{"garbage", "1e18", 18, "", ErrInvalidAmount},
		{"two dots", "1.2.3", 18, "", ErrInvalidAmount},
		{"only dot", ".", 18, "", ErrInvalidAmount},
		{"bad decimals", "1", 78, "", ErrBadDecimals},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseUnits(tt.input, tt.decimals)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount("1"))
	assert.NoError(t, ValidateAmount("0.001"))
	assert.ErrorIs(t, ValidateAmount("0"), ErrInvalidAmount)
	assert.ErrorIs(t, ValidateAmount("0.000"), ErrInvalidAmount)
	assert.ErrorIs(t, ValidateAmount("-2"), ErrNegativeAmount)
	assert.ErrorIs(t, ValidateAmount("abc"), ErrInvalidAmount)
}

func TestFormatUnits(t *testing.T) {
	assert.Equal(t, "3000.5", FormatUnits(big.NewInt(3000500000), 6))
	assert.Equal(t, "3000", FormatUnits(big.NewInt(3000000000), 6))
	assert.Equal(t, "0.000001", FormatUnits(big.NewInt(1), 6))
	assert.Equal(t, "0", FormatUnits(big.NewInt(0), 6))
	assert.Equal(t, "-1.25", FormatUnits(big.NewInt(-1250000), 6))
	assert.Equal(t, "17", FormatUnits(big.NewInt(17), 0))
	assert.Equal(t, "0", FormatUnits(nil, 18))
}

func TestToFloat(t *testing.T) {
	assert.Equal(t, 3000.5, ToFloat(big.NewInt(3000500000), 6))
	assert.Equal(t, 0.0, ToFloat(new(big.Int), 6))

	wei, ok := new(big.Int).SetString("2500000000000000000", 10)
	require.True(t, ok)
	assert.Equal(t, 2.5, ToFloat(wei, 18))
}

func TestParseFormatAgree(t *testing.T) {
	v, err := ParseUnits("1234.567891", 6)
	require.NoError(t, err)
	assert.Equal(t, "1234.567891", FormatUnits(v, 6))
}
