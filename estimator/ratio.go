package estimator

import (
	"math/big"
	"time"
)

// Ratio assumes every work unit costs the same and extrapolates linearly
// from the elapsed time. It keeps no state of its own.
type Ratio struct{}

var _ Strategy = Ratio{}

// NewRatio returns the ratio strategy.
func NewRatio() Ratio {
	return Ratio{}
}

// Observe does nothing, the ratio only depends on totals.
func (Ratio) Observe(time.Time, int64) {}

// Remaining returns elapsed * remaining / completed.
func (Ratio) Remaining(p Progress) time.Duration {
	remaining := p.RemainingUnits()
	if p.Total == 0 || remaining == 0 {
		return 0
	}
	if p.Completed == 0 {
		return MaxDuration
	}
	return scaleExact(p.Elapsed, remaining, p.Completed)
}

var maxDurationInt = big.NewInt(int64(MaxDuration))

// scaleExact returns d * num / den, truncated towards zero. The product is
// formed in arbitrary precision so that large unit counts and long elapsed
// times do not lose precision or overflow. Results that do not fit into a
// time.Duration saturate to MaxDuration.
func scaleExact(d time.Duration, num, den int64) time.Duration {
	r := new(big.Rat).SetFrac64(num, den)
	r.Mul(r, new(big.Rat).SetInt64(int64(d)))

	q := new(big.Int).Quo(r.Num(), r.Denom())
	if q.Cmp(maxDurationInt) >= 0 {
		return MaxDuration
	}
	return time.Duration(q.Int64())
}
