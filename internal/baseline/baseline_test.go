package baseline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupCoversAllAges(t *testing.T) {
	prevMax := -1
	for _, b := range brackets {
		assert.Equal(t, prevMax+1, b.MinAgeMonths, "brackets must be contiguous")
		assert.GreaterOrEqual(t, b.MaxAgeMonths, b.MinAgeMonths)
		prevMax = b.MaxAgeMonths
	}
	for age := 0; age <= 60; age++ {
		b := Lookup(age)
		assert.LessOrEqual(t, b.WakeWindowMin, b.WakeWindowTypical)
		assert.LessOrEqual(t, b.WakeWindowTypical, b.WakeWindowMax)
		assert.LessOrEqual(t, b.NapLengthMin, b.NapLengthTypical)
		assert.LessOrEqual(t, b.NapLengthTypical, b.NapLengthMax)
	}
}

func TestLookupFallsBackToOldestBracket(t *testing.T) {
	last := brackets[len(brackets)-1]
	assert.Equal(t, last, Lookup(120))
	assert.Equal(t, last, Lookup(last.MaxAgeMonths+1))
}

func TestLookupNegativeAgeUsesFirstBracket(t *testing.T) {
	assert.Equal(t, brackets[0], Lookup(-3))
}

func TestClamp(t *testing.T) {
	b := Lookup(6)
	assert.Equal(t, b.NapLengthMin, Clamp(1, 6, KindNapLength))
	assert.Equal(t, b.NapLengthMax, Clamp(999, 6, KindNapLength))
	assert.Equal(t, 90, Clamp(90, 6, KindNapLength))

	assert.Equal(t, b.WakeWindowMin, Clamp(10, 6, KindWakeWindow))
	assert.Equal(t, b.WakeWindowMax, Clamp(600, 6, KindWakeWindow))
	assert.Equal(t, 120, Clamp(120, 6, KindWakeWindow))
}
