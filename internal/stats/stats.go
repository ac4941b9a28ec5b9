// Package stats provides the pure numeric primitives the engine is built on.
// Nothing here knows about money semantics; inputs are plain numbers and
// every function is free of I/O and side effects.
package stats

import (
	"errors"
	"math"
	"time"
)

// ErrInsufficientData is returned by primitives that have no sensible
// degraded answer. Higher layers catch it at their boundary and emit a
// "no signal" result instead of propagating it to callers.
var ErrInsufficientData = errors.New("insufficient data")

// ZeroSpreadSentinel is the z-score magnitude reported when a value differs
// from a perfectly constant history. A constant history has zero spread, so
// the true ratio is unbounded; a fixed large magnitude keeps the result
// notable without being meaningless.
const ZeroSpreadSentinel = 4.0

// ConfidenceFloor is the minimum confidence reported once any data exists.
// Dashboards stay decisive early in the month instead of hedging; tune here.
const ConfidenceFloor = 0.7

// Mean returns the arithmetic mean of values.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrInsufficientData
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), nil
}

// StdDev returns the sample standard deviation (Bessel's correction).
// Inputs are always partial observations of behavior, never a full
// population. A single point has no spread, not an error, so len <= 1
// yields 0.
func StdDev(values []float64) float64 {
	if len(values) <= 1 {
		return 0
	}
	mean, _ := Mean(values)
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1))
}

// ZScore returns how many standard deviations x lies from the mean of
// values. When the values are all identical the spread is zero; x equal to
// that constant scores 0 and anything else scores ±ZeroSpreadSentinel
// rather than dividing by zero.
func ZScore(x float64, values []float64) (float64, error) {
	mean, err := Mean(values)
	if err != nil {
		return 0, err
	}
	sd := StdDev(values)
	if sd == 0 {
		switch {
		case x == mean:
			return 0, nil
		case x > mean:
			return ZeroSpreadSentinel, nil
		default:
			return -ZeroSpreadSentinel, nil
		}
	}
	return (x - mean) / sd, nil
}

// Point is one dated observation for time-weighted averaging.
type Point struct {
	Time  time.Time
	Value float64
}

// WeightedMovingAverage computes an exponential-decay average where an
// observation halfLifeDays old counts half as much as one from asOf.
// Recency matters for forecasting; anomaly detection against a merchant's
// typical price deliberately uses the flat Mean instead, since a merchant's
// usual price does not drift quickly.
func WeightedMovingAverage(points []Point, halfLifeDays float64, asOf time.Time) (float64, error) {
	if len(points) == 0 {
		return 0, ErrInsufficientData
	}
	if halfLifeDays <= 0 {
		return 0, errors.New("half-life must be positive")
	}
	var weighted, total float64
	for _, p := range points {
		ageDays := asOf.Sub(p.Time).Hours() / 24
		if ageDays < 0 {
			ageDays = 0
		}
		w := math.Pow(0.5, ageDays/halfLifeDays)
		weighted += p.Value * w
		total += w
	}
	if total == 0 {
		return 0, ErrInsufficientData
	}
	return weighted / total, nil
}

// XY is one observation for least-squares fitting.
type XY struct {
	X float64
	Y float64
}

// LinearRegression fits y = slope*x + intercept by ordinary least squares.
// Fewer than 2 distinct x-values leave the slope undefined.
func LinearRegression(points []XY) (slope, intercept float64, err error) {
	if len(points) < 2 {
		return 0, 0, ErrInsufficientData
	}
	var sumX, sumY float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
	}
	n := float64(len(points))
	meanX := sumX / n
	meanY := sumY / n

	var sxx, sxy float64
	for _, p := range points {
		dx := p.X - meanX
		sxx += dx * dx
		sxy += dx * (p.Y - meanY)
	}
	if sxx == 0 {
		return 0, 0, ErrInsufficientData
	}
	slope = sxy / sxx
	return slope, meanY - slope*meanX, nil
}

// ConfidenceFromProgress maps the elapsed fraction of a period to a
// prediction confidence in [ConfidenceFloor, 1]. Monotonically increasing:
// the more of the month observed, the firmer the claim.
func ConfidenceFromProgress(elapsedFraction float64) float64 {
	if elapsedFraction < 0 {
		elapsedFraction = 0
	}
	if elapsedFraction > 1 {
		elapsedFraction = 1
	}
	return ConfidenceFloor + (1-ConfidenceFloor)*elapsedFraction
}
