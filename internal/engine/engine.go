// Package engine orchestrates one search-area calculation end to end:
// validation, envelope and area estimation, probability field sampling, and
// fan-out to the optional sinks (database, metrics, tracker, renderer).
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/sarscope/sarscope/internal/api"
	"github.com/sarscope/sarscope/internal/envelope"
	"github.com/sarscope/sarscope/internal/estimator"
	"github.com/sarscope/sarscope/internal/export"
	"github.com/sarscope/sarscope/internal/influx"
	"github.com/sarscope/sarscope/internal/model"
	"github.com/sarscope/sarscope/internal/render"
	"github.com/sarscope/sarscope/internal/sampler"
	"github.com/sarscope/sarscope/internal/session"
	"github.com/sarscope/sarscope/internal/store"
	"github.com/sarscope/sarscope/pkg/core"
)

// Dependencies holds everything an Engine needs. Store, Metrics, Tracker and
// Renderer are optional; a nil sink is skipped during fan-out.
type Dependencies struct {
	Logger   *slog.Logger
	Store    *store.Store
	Metrics  *influx.Manager
	Tracker  *api.Client
	Renderer render.Adapter

	// Kappa is the von Mises concentration for the sampler. Zero means
	// sampler.DefaultKappa.
	Kappa float64

	// Seed fixes the sampler's random source. Zero means time-seeded.
	Seed int64
}

// Engine runs calculations and publishes their results.
type Engine struct {
	deps    Dependencies
	log     *slog.Logger
	session *session.Context

	calculations metric.Int64Counter
	samplesDrawn metric.Int64Counter
	rejections   metric.Int64Counter
}

// Summary carries the derived figures surfaced alongside a result.
type Summary struct {
	AreaSquareNm         float64
	ProbableDirectionDeg float64
	GlideTimeMin         float64
}

// New creates an Engine. Uses the global OTel meter for metrics (no-op if
// not configured).
func New(deps Dependencies) (*Engine, error) {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Kappa == 0 {
		deps.Kappa = sampler.DefaultKappa
	}

	e := &Engine{
		deps:    deps,
		log:     deps.Logger,
		session: session.NewContext(),
	}

	m := meter()

	var err error
	e.calculations, err = m.Int64Counter(
		"engine.calculations",
		metric.WithDescription("Total search-area calculations"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating calculations counter: %w", err)
	}

	e.samplesDrawn, err = m.Int64Counter(
		"engine.samples.drawn",
		metric.WithDescription("Total probability field samples drawn"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating samples counter: %w", err)
	}

	e.rejections, err = m.Int64Counter(
		"engine.samples.rejections",
		metric.WithDescription("Total von Mises rejection-sampler retries"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rejections counter: %w", err)
	}

	return e, nil
}

// Session exposes the last-result slot for callers that submit
// asynchronously.
func (e *Engine) Session() *session.Context {
	return e.session
}

// Store exposes the persistence layer; nil when the database is disabled.
func (e *Engine) Store() *store.Store {
	return e.deps.Store
}

// Calculate runs one full calculation synchronously. All inputs are
// validated up front; no sink is touched on error.
func (e *Engine) Calculate(req core.Request) (core.Result, error) {
	started := time.Now()

	if err := estimator.Validate(req); err != nil {
		return core.Result{}, err
	}

	area, err := estimator.Estimate(req)
	if err != nil {
		return core.Result{}, err
	}

	field, stats, err := sampler.Sample(e.newSource(), sampler.Params{
		Area:             area,
		SampleCount:      req.SampleCount,
		HeadingDeg:       req.Flight.HeadingDeg,
		WindDirectionDeg: req.Wind.DirectionDeg,
		WindSpeedKt:      req.Wind.SpeedKt,
		GlideDistanceNm:  area.GlideDistanceNm,
		Kappa:            e.deps.Kappa,
	})
	if err != nil {
		return core.Result{}, err
	}

	res := core.Result{Area: area, Field: field}
	elapsed := time.Since(started)

	ctx := context.Background()
	typeAttr := metric.WithAttributes(attribute.String("aircraftType", req.Profile.Name))
	e.calculations.Add(ctx, 1, typeAttr)
	e.samplesDrawn.Add(ctx, int64(len(field)), typeAttr)
	e.rejections.Add(ctx, int64(stats.Rejections), typeAttr)

	e.log.Info("calculation complete",
		"aircraftType", req.Profile.Name,
		"radiusNm", area.RadiusNm,
		"glideDistanceNm", area.GlideDistanceNm,
		"samples", len(field),
		"rejections", stats.Rejections,
		"elapsed", elapsed,
	)

	e.publish(req, res, stats, elapsed)
	return res, nil
}

// Submit runs a calculation in the background and installs the result into
// the session slot when done. Stale results never overwrite newer ones.
func (e *Engine) Submit(req core.Request) uint64 {
	seq := e.session.Begin()
	go func() {
		res, err := e.Calculate(req)
		if err != nil {
			e.log.Error("background calculation failed", "seq", seq, "error", err)
			return
		}
		if !e.session.Complete(seq, &res) {
			e.log.Debug("discarded stale calculation result", "seq", seq)
		}
	}()
	return seq
}

// Summarize derives the human-facing figures for a completed calculation.
func (e *Engine) Summarize(req core.Request, res core.Result) Summary {
	glideTime, err := envelope.TimeToImpactMinutes(
		req.Flight.AltitudeFt,
		req.Flight.VerticalSpeedFt,
		req.Profile.EmergencyDescentRateFtMin,
	)
	if err != nil {
		glideTime = 0
	}

	biasDeg := sampler.BiasDirection(req.Flight.HeadingDeg, req.Wind.DirectionDeg, req.Wind.SpeedKt) * 180 / math.Pi
	biasDeg = math.Mod(biasDeg+360, 360)

	return Summary{
		AreaSquareNm:         res.Area.SquareNm(),
		ProbableDirectionDeg: biasDeg,
		GlideTimeMin:         glideTime,
	}
}

// Export writes the result to outputDir in the given format and returns the
// full file path.
func (e *Engine) Export(res core.Result, format export.Format, outputDir string) (string, error) {
	data, err := export.Marshal(format, res)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}

	path := filepath.Join(outputDir, export.FileName(format, time.Now()))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing export file: %w", err)
	}

	e.log.Info("result exported", "format", string(format), "path", path)
	return path, nil
}

// publish fans the result out to whichever sinks are configured. Sink
// failures are logged, never returned: a lost metric or render must not fail
// a completed calculation.
func (e *Engine) publish(req core.Request, res core.Result, stats sampler.Stats, elapsed time.Duration) {
	now := time.Now().UTC()

	if e.deps.Renderer != nil {
		if err := e.deps.Renderer.Render(render.NewPayload(res)); err != nil {
			e.log.Warn("render failed", "error", err)
		}
	}

	glideTime := e.Summarize(req, res).GlideTimeMin

	if e.deps.Store != nil {
		prediction, err := model.NewEmergencyPrediction(0, req, res, glideTime, now)
		if err != nil {
			e.log.Warn("building prediction row failed", "error", err)
		} else if _, err := e.deps.Store.StorePrediction(prediction); err != nil {
			e.log.Warn("storing prediction failed", "error", err)
		}
	}

	if e.deps.Metrics != nil {
		ctx := context.Background()
		if err := e.deps.Metrics.WritePoint(ctx, influx.BucketCalculations,
			influx.CalculationPoint(req, res, stats, now)); err != nil {
			e.log.Warn("writing calculation point failed", "error", err)
		}
		if err := e.deps.Metrics.WritePoint(ctx, influx.BucketPerformance,
			influx.TimingPoint("calculate", elapsed, now)); err != nil {
			e.log.Warn("writing timing point failed", "error", err)
		}
	}

	if e.deps.Tracker != nil {
		if _, err := e.deps.Tracker.PushPrediction(0, req, res, glideTime); err != nil {
			e.log.Warn("pushing prediction to tracker failed", "error", err)
		}
	}
}

func (e *Engine) newSource() sampler.Source {
	seed := e.deps.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
