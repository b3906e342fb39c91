package calculator

import (
	"context"
	"numerology/internal/config"
	"numerology/pkg/domain"
	"numerology/pkg/logger"
	"numerology/pkg/metrics"
	"numerology/pkg/numerology"
	"numerology/pkg/serrors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const tracerName = "numerology/internal/calculator"

// Operation labels for metrics and spans.
const (
	opProfile = "profile"
	opMetric  = "metric"
	opBatch   = "batch"
)

// Options hold the request policy applied before the engine runs. The engine
// itself only rejects impossible calendar dates.
type Options struct {
	// DefaultSystem is used when a request names no system.
	DefaultSystem numerology.MappingSystem
	// MinYear and MaxYear bound birth years. Zero disables a bound.
	MinYear int
	MaxYear int
	// MaxNameLength is the longest accepted name in runes. Zero disables the check.
	MaxNameLength int
	// MaxBatchSize is the largest accepted batch.
	MaxBatchSize int
	// BatchConcurrency limits how many batch entries are computed at once.
	BatchConcurrency int
}

// NewOptions builds Options from the application config.
func NewOptions(cfg *config.Config) (Options, error) {
	system, err := numerology.ParseSystem(cfg.Calculator.DefaultSystem)
	if err != nil {
		return Options{}, errors.Wrap(err, "invalid default system")
	}

	return Options{
		DefaultSystem:    system,
		MinYear:          cfg.Calculator.MinYear,
		MaxYear:          cfg.Calculator.MaxYear,
		MaxNameLength:    cfg.Calculator.MaxNameLength,
		MaxBatchSize:     cfg.Calculator.MaxBatchSize,
		BatchConcurrency: cfg.Calculator.BatchConcurrency,
	}, nil
}

type calculator struct {
	options Options
	metrics *metrics.Calculator
	tracer  trace.Tracer
}

// validate applies the request policy for a calculation that needs the given
// inputs and resolves the mapping system.
func (c calculator) validate(req domain.ProfileRequest, tool Tool) (input, error) {
	in := input{name: req.Name, day: req.Day, month: req.Month, year: req.Year, system: c.options.DefaultSystem}

	if strings.TrimSpace(req.System) != "" {
		system, err := numerology.ParseSystem(req.System)
		if err != nil {
			return input{}, serrors.Wrap(serrors.ErrBadRequest, err, "invalid system")
		}
		in.system = system
	}

	if tool.Needs(InputName) {
		if strings.TrimSpace(req.Name) == "" {
			return input{}, serrors.With(serrors.ErrBadRequest, "name is required")
		}
		if c.options.MaxNameLength > 0 && utf8.RuneCountInString(req.Name) > c.options.MaxNameLength {
			return input{}, serrors.With(serrors.ErrBadRequest,
				"name is longer than %d characters", c.options.MaxNameLength)
		}
	}

	switch {
	case tool.Needs(InputYear):
		if c.options.MinYear != 0 && req.Year < c.options.MinYear {
			return input{}, serrors.With(serrors.ErrBadRequest, "year must not be before %d", c.options.MinYear)
		}
		if c.options.MaxYear != 0 && req.Year > c.options.MaxYear {
			return input{}, serrors.With(serrors.ErrBadRequest, "year must not be after %d", c.options.MaxYear)
		}
	case tool.Needs(InputDay):
		// day-only metrics never reach the date validator
		if req.Day < 1 || req.Day > 31 {
			return input{}, serrors.With(serrors.ErrBadRequest, "day must be between 1 and 31")
		}
	}

	return in, nil
}

// classify turns engine errors into semantic errors.
func classify(err error) error {
	var dateErr *numerology.DateError
	if errors.As(err, &dateErr) {
		return serrors.Wrap(serrors.ErrBadRequest, err, "invalid birth date")
	}

	return err
}

func (c calculator) finish(ctx context.Context, span trace.Span, op string, system numerology.MappingSystem,
	start time.Time, err error) {
	outcome := metrics.OutcomeOK
	switch {
	case err == nil:
	case errors.Is(err, serrors.ErrBadRequest) || errors.Is(err, serrors.ErrNotFound):
		outcome = metrics.OutcomeRejected
		span.SetStatus(codes.Error, err.Error())
		logger.Debug(ctx, "calculation rejected", zap.String("operation", op), zap.Error(err))
	default:
		outcome = metrics.OutcomeError
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Error(ctx, "calculation failed", zap.String("operation", op), zap.Error(err))
	}
	label := system.String()
	if label == "" {
		label = "unknown"
	}
	c.metrics.Observe(op, label, outcome, time.Since(start))
	span.End()
}

var profileTool = Tool{Name: "profile", Inputs: nameDateInputs, UsesSystem: true} //nolint: gochecknoglobals

// Profile validates req and computes the ten-number profile.
func (c calculator) Profile(ctx context.Context, req domain.ProfileRequest) (_ *domain.Profile, err error) {
	start := time.Now()
	ctx, span := c.tracer.Start(ctx, "calculator.Profile")
	in, err := c.validate(req, profileTool)
	defer func() { c.finish(ctx, span, opProfile, in.system, start, err) }()
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("numerology.system", in.system.String()))

	res, err := numerology.ComputeProfile(in.name, in.day, in.month, in.year, in.system)
	if err != nil {
		return nil, classify(err)
	}

	profile := &domain.Profile{
		RequestID:     domain.RequestID(uuid.New()),
		Name:          in.name,
		System:        in.system.String(),
		Numbers:       toNumbers(res),
		CreatedAt:     time.Now().UTC(),
		ExecutionTime: time.Since(start),
	}
	logger.Debug(ctx, "profile computed",
		zap.Stringer("request_id", profile.RequestID),
		zap.String("system", profile.System),
		zap.Int("life_path", profile.Numbers.LifePath),
		zap.Duration("took", profile.ExecutionTime))

	return profile, nil
}

// Metric computes one catalog metric.
func (c calculator) Metric(ctx context.Context, metric string, req domain.ProfileRequest) (_ *domain.MetricValue, err error) {
	start := time.Now()
	ctx, span := c.tracer.Start(ctx, "calculator.Metric", trace.WithAttributes(attribute.String("numerology.metric", metric)))
	var in input
	defer func() { c.finish(ctx, span, opMetric, in.system, start, err) }()

	e, ok := lookup(metric)
	if !ok {
		return nil, serrors.With(serrors.ErrNotFound, "unknown metric %q", metric)
	}
	if in, err = c.validate(req, e.Tool); err != nil {
		return nil, err
	}

	out, err := e.calc(in)
	if err != nil {
		return nil, classify(err)
	}
	out.Metric = e.Name
	if e.UsesSystem {
		out.System = in.system.String()
	}

	return &out, nil
}

// Batch computes every request, at most BatchConcurrency at a time. Items keep
// the input order; a failing item never affects its siblings.
func (c calculator) Batch(ctx context.Context, reqs []domain.ProfileRequest) (_ []domain.BatchItem, err error) {
	start := time.Now()
	ctx, span := c.tracer.Start(ctx, "calculator.Batch", trace.WithAttributes(attribute.Int("numerology.batch_size", len(reqs))))
	defer func() { c.finish(ctx, span, opBatch, c.options.DefaultSystem, start, err) }()

	if len(reqs) == 0 {
		return nil, serrors.With(serrors.ErrBadRequest, "batch is empty")
	}
	if c.options.MaxBatchSize > 0 && len(reqs) > c.options.MaxBatchSize {
		return nil, serrors.With(serrors.ErrBadRequest, "batch holds %d profiles, at most %d are allowed",
			len(reqs), c.options.MaxBatchSize)
	}
	c.metrics.ObserveBatch(len(reqs))

	items := make([]domain.BatchItem, len(reqs))
	var g errgroup.Group
	if c.options.BatchConcurrency > 0 {
		g.SetLimit(c.options.BatchConcurrency)
	}
	for i, req := range reqs {
		g.Go(func() error {
			items[i] = domain.BatchItem{Index: i, Request: req}
			if ctx.Err() != nil {
				items[i].Err = serrors.Wrap(serrors.ErrTimeout, ctx.Err(), "batch interrupted")

				return nil
			}
			items[i].Profile, items[i].Err = c.Profile(ctx, req)

			return nil
		})
	}
	_ = g.Wait()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, serrors.Wrap(serrors.ErrTimeout, ctxErr, "batch interrupted")
	}

	return items, nil
}

// Tools lists the single metric calculators in profile order.
func (c calculator) Tools() []Tool {
	tools := make([]Tool, len(catalog))
	for i, e := range catalog {
		tools[i] = e.Tool
	}

	return tools
}

func toNumbers(res numerology.Result) domain.Numbers {
	n := domain.Numbers{
		LifePath:         int(res.LifePath),
		Expression:       int(res.Expression),
		SoulUrge:         int(res.SoulUrge),
		Personality:      int(res.Personality),
		BirthdayNumber:   int(res.Birthday),
		MaturityNumber:   int(res.Maturity),
		HiddenPassion:    int(res.HiddenPassion),
		SubconsciousSelf: int(res.SubconsciousSelf),
		MasterNumbers:    digitsToInts(res.MasterNumbers),
	}
	if v, ok := res.KarmicDebt.Value(); ok {
		n.KarmicDebt = &v
	}

	return n
}

// New creates a Calculator. m may be nil.
func New(options Options, m *metrics.Calculator) Calculator {
	if !options.DefaultSystem.Valid() {
		options.DefaultSystem = numerology.Pythagorean
	}

	return &calculator{
		options: options,
		metrics: m,
		tracer:  otel.Tracer(tracerName),
	}
}
