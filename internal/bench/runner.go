package bench

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/zoobzio/clockz"
	"github.com/zoobzio/hookz"
	"github.com/zoobzio/metricz"
	"github.com/zoobzio/tracez"
)

// Metric keys.
const (
	IterationsTotal = metricz.Key("bench.iterations.total")
	TrialsTotal     = metricz.Key("bench.trials.total")
	ErrorsTotal     = metricz.Key("bench.errors.total")
	LastScore       = metricz.Key("bench.last.score")
)

// Span names and tags.
const (
	RunSpan   = tracez.Key("bench.run")
	TrialSpan = tracez.Key("bench.trial")

	TagBenchmark  = tracez.Tag("bench.benchmark")
	TagFork       = tracez.Tag("bench.fork")
	TagIterations = tracez.Tag("bench.iterations")
	TagError      = tracez.Tag("bench.error")
)

// Hook event keys.
const (
	EventIteration = hookz.Key("bench.iteration")
	EventTrial     = hookz.Key("bench.trial")
)

// Phase tells warmup iterations from measured ones.
type Phase string

const (
	PhaseWarmup      Phase = "warmup"
	PhaseMeasurement Phase = "measurement"
)

var ErrNoBenchmarks = errors.New("no benchmarks to run")

// Benchmark is one measured operation. Op is called OpsPerIteration times per
// iteration and must not retain state between calls.
type Benchmark struct {
	Name string
	Op   func() error
}

// Event is emitted through hookz after every iteration and every trial.
// Iteration is -1 for trial events.
type Event struct {
	Benchmark string
	Fork      int
	Phase     Phase
	Iteration int
	Score     float64
	Unit      string
	Timestamp time.Time
}

// TrialResult is the outcome of one fork: warmup then measurement.
type TrialResult struct {
	Benchmark string    `json:"benchmark"`
	Fork      int       `json:"fork"`
	Warmup    []float64 `json:"warmup"`
	Samples   []float64 `json:"samples"`
	Ops       int64     `json:"ops"`
}

// Runner executes benchmarks the way JMH does in average-time mode: warm up,
// then measure, optionally repeated over several forks.
type Runner struct {
	config Config
	clock  clockz.Clock
	logger *slog.Logger
	forker Forker

	metrics *metricz.Registry
	tracer  *tracez.Tracer
	hooks   *hookz.Hooks[Event]
}

type Option func(r *Runner)

// WithClock sets a custom clock for testing.
func WithClock(clock clockz.Clock) Option {
	return func(r *Runner) {
		r.clock = clock
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithForker replaces the InProcess forker.
func WithForker(forker Forker) Option {
	return func(r *Runner) {
		r.forker = forker
	}
}

func NewRunner(config Config, opts ...Option) (*Runner, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	registry := metricz.New()
	registry.Counter(IterationsTotal)
	registry.Counter(TrialsTotal)
	registry.Counter(ErrorsTotal)
	registry.Gauge(LastScore)

	r := &Runner{
		config:  config,
		clock:   clockz.RealClock,
		logger:  slog.New(slog.DiscardHandler),
		forker:  InProcess{},
		metrics: registry,
		tracer:  tracez.New(),
		hooks:   hookz.New[Event](),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func (r *Runner) Config() Config {
	return r.config
}

// Metrics returns the metrics registry for this runner.
func (r *Runner) Metrics() *metricz.Registry {
	return r.metrics
}

// Tracer returns the tracer for this runner.
func (r *Runner) Tracer() *tracez.Tracer {
	return r.tracer
}

// OnIteration registers a handler called asynchronously after every iteration.
func (r *Runner) OnIteration(handler func(context.Context, Event) error) error {
	_, err := r.hooks.Hook(EventIteration, handler)
	return err
}

// OnTrial registers a handler called asynchronously after every trial.
func (r *Runner) OnTrial(handler func(context.Context, Event) error) error {
	_, err := r.hooks.Hook(EventTrial, handler)
	return err
}

// Close gracefully shuts down observability components.
func (r *Runner) Close() error {
	if r.tracer != nil {
		r.tracer.Close()
	}
	r.hooks.Close()
	return nil
}

// Run measures every benchmark in order and aggregates their trials.
func (r *Runner) Run(ctx context.Context, benchmarks ...Benchmark) (*Report, error) {
	if len(benchmarks) == 0 {
		return nil, ErrNoBenchmarks
	}

	ctx, span := r.tracer.StartSpan(ctx, RunSpan)
	defer span.Finish()

	report := &Report{
		Config:    r.config,
		StartedAt: r.clock.Now(),
	}

	for _, b := range benchmarks {
		trials, err := r.runForks(ctx, b)
		if err != nil {
			span.SetTag(TagError, err.Error())
			return nil, err
		}
		report.Results = append(report.Results, aggregate(b.Name, r.config, trials))
	}

	report.Elapsed = r.clock.Since(report.StartedAt)
	return report, nil
}

func (r *Runner) runForks(ctx context.Context, b Benchmark) ([]TrialResult, error) {
	if r.config.Forks == 0 {
		tr, err := r.RunTrial(ctx, b, 0)
		if err != nil {
			return nil, err
		}
		return []TrialResult{tr}, nil
	}

	trials := make([]TrialResult, 0, r.config.Forks)
	for fork := 1; fork <= r.config.Forks; fork++ {
		r.logger.Debug("starting fork", "benchmark", b.Name, "fork", fork, "of", r.config.Forks)
		tr, err := r.forker.Fork(ctx, r, b, fork)
		if err != nil {
			r.metrics.Counter(ErrorsTotal).Inc()
			return nil, fmt.Errorf("benchmark %s fork %d: %w", b.Name, fork, err)
		}
		r.finishTrial(ctx, tr)
		trials = append(trials, tr)
	}
	return trials, nil
}

// RunTrial runs warmup and measurement iterations of b in this process.
func (r *Runner) RunTrial(ctx context.Context, b Benchmark, fork int) (TrialResult, error) {
	tr, err := r.runTrial(ctx, b, fork)
	if err != nil {
		return TrialResult{}, err
	}
	r.finishTrial(ctx, tr)
	return tr, nil
}

// runTrial measures b without counting the trial. Forkers call it so that
// runForks records each trial once, wherever it ran.
func (r *Runner) runTrial(ctx context.Context, b Benchmark, fork int) (TrialResult, error) {
	ctx, span := r.tracer.StartSpan(ctx, TrialSpan)
	defer span.Finish()
	span.SetTag(TagBenchmark, b.Name)
	span.SetTag(TagFork, strconv.Itoa(fork))

	tr := TrialResult{Benchmark: b.Name, Fork: fork}

	phases := []struct {
		phase Phase
		count int
		into  *[]float64
	}{
		{PhaseWarmup, r.config.Warmup, &tr.Warmup},
		{PhaseMeasurement, r.config.Measurement, &tr.Samples},
	}
	for _, p := range phases {
		for i := 0; i < p.count; i++ {
			if err := ctx.Err(); err != nil {
				span.SetTag(TagError, err.Error())
				return TrialResult{}, err
			}

			score, err := r.iterate(b)
			if err != nil {
				r.metrics.Counter(ErrorsTotal).Inc()
				span.SetTag(TagError, err.Error())
				return TrialResult{}, fmt.Errorf("benchmark %s %s iteration %d: %w", b.Name, p.phase, i+1, err)
			}

			*p.into = append(*p.into, score)
			if p.phase == PhaseMeasurement {
				tr.Ops += int64(r.config.OpsPerIteration)
			}

			r.metrics.Counter(IterationsTotal).Inc()
			r.metrics.Gauge(LastScore).Set(score)
			r.logger.Debug("iteration",
				"benchmark", b.Name, "fork", fork, "phase", p.phase, "iteration", i+1,
				"score", score, "unit", r.config.Unit())

			_ = r.hooks.Emit(ctx, EventIteration, Event{ //nolint:errcheck
				Benchmark: b.Name,
				Fork:      fork,
				Phase:     p.phase,
				Iteration: i + 1,
				Score:     score,
				Unit:      r.config.Unit(),
				Timestamp: r.clock.Now(),
			})
		}
	}

	span.SetTag(TagIterations, strconv.Itoa(len(tr.Warmup)+len(tr.Samples)))
	return tr, nil
}

func (r *Runner) finishTrial(ctx context.Context, tr TrialResult) {
	r.metrics.Counter(TrialsTotal).Inc()

	_ = r.hooks.Emit(ctx, EventTrial, Event{ //nolint:errcheck
		Benchmark: tr.Benchmark,
		Fork:      tr.Fork,
		Phase:     PhaseMeasurement,
		Iteration: -1,
		Score:     summarize(tr.Samples).mean,
		Unit:      r.config.Unit(),
		Timestamp: r.clock.Now(),
	})
}

// iterate runs one iteration and returns the average time per op in the
// configured unit.
func (r *Runner) iterate(b Benchmark) (float64, error) {
	ops := r.config.OpsPerIteration
	start := r.clock.Now()
	for i := 0; i < ops; i++ {
		if err := b.Op(); err != nil {
			return 0, err
		}
	}
	elapsed := r.clock.Since(start)
	return float64(elapsed) / float64(ops) / float64(r.config.TimeUnit), nil
}
