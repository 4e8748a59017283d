package employee

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestHourlyRateFor_RoundsHalfUpToCentavos(t *testing.T) {
	cases := map[string]string{
		"1000":   "125.00",
		"645":    "80.63",
		"644.99": "80.62",
		"0":      "0.00",
	}
	for daily, want := range cases {
		got := HourlyRateFor(decimal.RequireFromString(daily))
		assert.Equal(t, want, got.StringFixed(2), "daily rate %s", daily)
	}
}
