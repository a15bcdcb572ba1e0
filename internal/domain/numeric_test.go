package domain

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *float64
	}{
		{"plain integer", "4500", Float(4500)},
		{"decimal", "12.3", Float(12.3)},
		{"thousands separator", "1,234.5", Float(1234.5)},
		{"percent sign", "12.3%", Float(12.3)},
		{"negative", "-0.04", Float(-0.04)},
		{"surrounding whitespace", "  723.14  ", Float(723.14)},
		{"empty string", "", nil},
		{"not a number", "N/A", nil},
		{"dash placeholder", "-", nil},
		{"text with digits inside units", "723 ft", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseNumber(tt.input)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.expected, *got, 1e-9)
		})
	}
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "Pool Elevation 723.14", NormalizeText("  Pool\n\tElevation\n   723.14 "))
	assert.Equal(t, "", NormalizeText(" \n\t "))
}

func TestFirstNumberNear(t *testing.T) {
	inflowLabel := regexp.MustCompile(`(?i)\bInflow\b`)

	t.Run("number inside window", func(t *testing.T) {
		got := FirstNumberNear("Current conditions Inflow: 12.4 kcfs as of noon", inflowLabel, DefaultProximityWindow)
		require.NotNil(t, got)
		assert.InDelta(t, 12.4, *got, 1e-9)
	})

	t.Run("first number wins", func(t *testing.T) {
		got := FirstNumberNear("Inflow 150 previous 300", inflowLabel, DefaultProximityWindow)
		require.NotNil(t, got)
		assert.InDelta(t, 150, *got, 1e-9)
	})

	t.Run("comma-grouped value", func(t *testing.T) {
		got := FirstNumberNear("Inflow 12,400 cfs", inflowLabel, DefaultProximityWindow)
		require.NotNil(t, got)
		assert.InDelta(t, 12400, *got, 1e-9)
	})

	t.Run("label absent", func(t *testing.T) {
		assert.Nil(t, FirstNumberNear("Outflow 500", inflowLabel, DefaultProximityWindow))
	})

	t.Run("number beyond the window", func(t *testing.T) {
		text := "Inflow" + strings.Repeat(" x", 80) + " 12.4"
		assert.Nil(t, FirstNumberNear(text, inflowLabel, DefaultProximityWindow))
	})

	t.Run("no backward scan", func(t *testing.T) {
		assert.Nil(t, FirstNumberNear("500 recorded before Inflow label", inflowLabel, DefaultProximityWindow))
	})
}

func TestFirstNumber(t *testing.T) {
	got := FirstNumber("elevation 1,023.4 ft")
	require.NotNil(t, got)
	assert.InDelta(t, 1023.4, *got, 1e-9)

	assert.Nil(t, FirstNumber("no digits here"))
}
