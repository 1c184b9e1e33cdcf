package decimal

import (
	"testing"

	stddec "github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPowIntegerExponent(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		exponent string
		want     string
	}{
		{"square", "1.06", "2", "1.1236"},
		{"identity", "1.08", "1", "1.08"},
		{"zeroth power", "1.12", "0", "1"},
		{"negative exponent", "2", "-2", "0.25"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Pow(stddec.RequireFromString(tt.base), stddec.RequireFromString(tt.exponent))
			require.NoError(t, err)
			assert.True(t, got.Equal(stddec.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestPowFractionalExponent(t *testing.T) {
	got, err := Pow(stddec.RequireFromString("1.1"), stddec.RequireFromString("0.5"))
	require.NoError(t, err)
	assert.InDelta(t, 1.0488088, got.InexactFloat64(), 1e-6)
}

func TestPowZeroBaseNegativeExponent(t *testing.T) {
	_, err := Pow(stddec.Zero, stddec.NewFromInt(-3))
	require.Error(t, err)

	var nf *ErrNotFinite
	require.ErrorAs(t, err, &nf)
	assert.Contains(t, nf.Error(), "non-finite")
}

func TestGrowthFactor(t *testing.T) {
	got, err := GrowthFactor(stddec.RequireFromString("0.06"), stddec.NewFromInt(20))
	require.NoError(t, err)
	assert.InDelta(t, 3.2071355, got.InexactFloat64(), 1e-6)
}
