package generator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

// NewRand returns the random generator every builder in this package expects.
// Builders never touch the global math/rand state.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Date returns midnight UTC of the given calendar day
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// RandomDate returns a uniformly random day in [start, endExclusive)
func RandomDate(rng *rand.Rand, start, endExclusive time.Time) (time.Time, error) {
	days := int(endExclusive.Sub(start).Hours() / 24)
	if days <= 0 {
		return time.Time{}, fmt.Errorf("%w: invalid date range %s..%s",
			ErrInvalidInput, start.Format(time.DateOnly), endExclusive.Format(time.DateOnly))
	}
	return start.AddDate(0, 0, rng.Intn(days)), nil
}

// Money parses a decimal literal and rounds it half-up to two places
func Money(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: bad money literal %q: %v", ErrInvalidInput, s, err)
	}
	return Quant2(d), nil
}

// Quant2 rounds to two decimal places, half away from zero
func Quant2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func mustMoney(s string) decimal.Decimal {
	d, err := Money(s)
	if err != nil {
		panic(err)
	}
	return d
}

// randInt returns a uniform integer in [lo, hi]
func randInt(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}

func pickString(rng *rand.Rand, options []string) string {
	return options[rng.Intn(len(options))]
}

// sampleInts draws k distinct elements of pool without replacement.
// The pool itself is left untouched.
func sampleInts(rng *rand.Rand, pool []int, k int) []int {
	c := make([]int, len(pool))
	copy(c, pool)
	for i := 0; i < k; i++ {
		j := i + rng.Intn(len(c)-i)
		c[i], c[j] = c[j], c[i]
	}
	return c[:k]
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
