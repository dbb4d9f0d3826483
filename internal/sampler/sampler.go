// Package sampler populates a search area with weighted crash-site
// candidates. Sample distances follow a Rayleigh-style draw clipped to the
// search radius; sample angles follow a von Mises distribution centered on a
// direction blended from the aircraft heading and the wind.
package sampler

import (
	"fmt"
	"math"

	"github.com/sarscope/sarscope/internal/geo"
	"github.com/sarscope/sarscope/pkg/core"
)

// DefaultKappa is the production von Mises concentration.
const DefaultKappa = 2.0

// maxRejectionAttempts bounds the Best-Fisher rejection loop so a
// pathological concentration cannot spin forever.
const maxRejectionAttempts = 10000

// Source yields uniform draws in [0, 1). *math/rand.Rand satisfies it, so
// production callers inject a time-seeded generator while tests inject a
// fixed seed for reproducible fields.
type Source interface {
	Float64() float64
}

// Params carries the inputs for one field generation.
//
// GlideDistanceNm is threaded through for interface compatibility with the
// estimator output; the sampling algorithm does not consume it.
type Params struct {
	Area             core.SearchArea
	SampleCount      int
	HeadingDeg       float64
	WindDirectionDeg float64
	WindSpeedKt      float64
	GlideDistanceNm  float64
	Kappa            float64
}

// Stats reports how much work the rejection sampler did.
type Stats struct {
	Rejections int
}

// BiasDirection blends the aircraft heading and wind direction into the
// radian direction of highest probability. The wind weight grows with wind
// speed and caps at 0.8; the blend is a weighted sum of unit vectors, an
// approximation of a circular mean.
func BiasDirection(headingDeg, windDirectionDeg, windSpeedKt float64) float64 {
	windWeight := math.Min(windSpeedKt/50, 0.8)
	headingWeight := 1 - windWeight

	h := headingDeg * math.Pi / 180
	w := windDirectionDeg * math.Pi / 180

	dx := headingWeight*math.Cos(h) + windWeight*math.Cos(w)
	dy := headingWeight*math.Sin(h) + windWeight*math.Sin(w)
	return math.Atan2(dy, dx)
}

// Sample draws p.SampleCount weighted points around the search-area center.
// Identical sources produce identical fields. The returned field is
// normalized so its maximum probability is exactly 1.0; on any failure no
// partial field is returned.
func Sample(src Source, p Params) (core.ProbabilityField, Stats, error) {
	var stats Stats

	if p.Area.RadiusNm <= 0 {
		return nil, stats, fmt.Errorf("%w: search radius %v nm",
			core.ErrDegenerateGeometry, p.Area.RadiusNm)
	}
	if p.SampleCount < 1 {
		return nil, stats, fmt.Errorf("%w: sample count %d must be >= 1",
			core.ErrInvalidInput, p.SampleCount)
	}

	bias := BiasDirection(p.HeadingDeg, p.WindDirectionDeg, p.WindSpeedKt)
	radius := p.Area.RadiusNm

	field := make(core.ProbabilityField, 0, p.SampleCount)
	maxWeight := 0.0

	for i := 0; i < p.SampleCount; i++ {
		dist := radialDraw(src, radius)

		angle, rejected, err := vonMises(src, bias, p.Kappa)
		stats.Rejections += rejected
		if err != nil {
			return nil, stats, err
		}

		x := dist * math.Cos(angle)
		y := dist * math.Sin(angle)

		weight := pointWeight(x, y, dist, radius, bias)
		if weight > maxWeight {
			maxWeight = weight
		}

		field = append(field, core.ProbabilityPoint{
			Position:    geo.OffsetPosition(p.Area.Center, x, y),
			Probability: weight,
		})
	}

	// Normalize so the best sample carries probability 1.0 exactly.
	for i := range field {
		field[i].Probability /= maxWeight
	}
	return field, stats, nil
}

// radialDraw returns a Rayleigh-distributed distance clipped to the radius.
// The uniform draw is shifted into (0, 1] so the log never sees zero.
func radialDraw(src Source, radius float64) float64 {
	u := 1 - src.Float64()
	dist := radius * math.Sqrt(-2*math.Log(u))
	return math.Min(dist, radius)
}

// pointWeight scores a sample by proximity to the center and alignment with
// the bias direction: exponential decay over distance, squared-cosine bonus
// for alignment.
func pointWeight(x, y, dist, radius, bias float64) float64 {
	angleDiff := math.Abs(math.Atan2(y, x) - bias)
	if angleDiff > math.Pi {
		angleDiff = 2*math.Pi - angleDiff
	}

	distanceFactor := math.Exp(-1.5 * dist / radius)
	angleFactor := math.Cos(angleDiff) * math.Cos(angleDiff)
	return distanceFactor * (0.7 + 0.3*angleFactor)
}

// vonMises draws one angle from a von Mises distribution with mean mu and
// concentration kappa using Best-Fisher rejection sampling. kappa == 0
// degenerates to a uniform angle in (-pi, pi]. Returns the number of
// rejected iterations alongside the angle.
func vonMises(src Source, mu, kappa float64) (float64, int, error) {
	if kappa == 0 {
		return math.Pi - 2*math.Pi*src.Float64(), 0, nil
	}

	a := 1 + math.Sqrt(1+4*kappa*kappa)
	b := (a - math.Sqrt(2*a)) / (2 * kappa)
	r := (1 + b*b) / (2 * b)

	for attempt := 0; attempt < maxRejectionAttempts; attempt++ {
		u1 := src.Float64()
		z := math.Cos(math.Pi * u1)
		f := (1 + r*z) / (r + z)
		c := kappa * (r - f)

		u2 := src.Float64()
		if u2 <= c*(2-c) || u2 <= c*math.Exp(1-c) {
			u3 := src.Float64()
			theta := mu + math.Copysign(math.Acos(f), u3-0.5)
			return wrapAngle(theta), attempt, nil
		}
	}
	return 0, maxRejectionAttempts, fmt.Errorf(
		"%w: von Mises rejection loop exceeded %d attempts (kappa=%v)",
		core.ErrSamplingTimeout, maxRejectionAttempts, kappa)
}

// wrapAngle maps an angle onto (-pi, pi].
func wrapAngle(theta float64) float64 {
	wrapped := math.Mod(theta+math.Pi, 2*math.Pi)
	if wrapped <= 0 {
		wrapped += 2 * math.Pi
	}
	return wrapped - math.Pi
}
