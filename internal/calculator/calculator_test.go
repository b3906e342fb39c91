package calculator_test

import (
	"context"
	"numerology/internal/calculator"
	"numerology/internal/config"
	"numerology/pkg/domain"
	"numerology/pkg/metrics"
	"numerology/pkg/numerology"
	"numerology/pkg/serrors"
	"strings"
	"testing"

	"github.com/go-faster/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func testOptions() calculator.Options {
	return calculator.Options{
		DefaultSystem:    numerology.Pythagorean,
		MinYear:          1900,
		MaxYear:          2100,
		MaxNameLength:    20,
		MaxBatchSize:     3,
		BatchConcurrency: 2,
	}
}

func john() domain.ProfileRequest {
	return domain.ProfileRequest{Name: "John", Day: 15, Month: 3, Year: 1990}
}

func TestCalculator_Profile(t *testing.T) {
	c := calculator.New(testOptions(), nil)

	p, err := c.Profile(context.Background(), john())
	require.NoError(t, err)
	require.Equal(t, "pythagorean", p.System)
	require.Equal(t, "John", p.Name)
	require.NotEqual(t, domain.RequestID{}, p.RequestID)
	require.False(t, p.CreatedAt.IsZero())

	require.Equal(t, domain.Numbers{
		LifePath:         1,
		Expression:       2,
		SoulUrge:         6,
		Personality:      5,
		BirthdayNumber:   6,
		MaturityNumber:   3,
		HiddenPassion:    1,
		SubconsciousSelf: 2,
		KarmicDebt:       nil,
		MasterNumbers:    []int{},
	}, p.Numbers)
}

func TestCalculator_Profile_System(t *testing.T) {
	c := calculator.New(testOptions(), nil)

	req := john()
	req.System = "CHALDEAN"
	p, err := c.Profile(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "chaldean", p.System)
	require.Equal(t, 9, p.Numbers.Expression)
	require.Equal(t, 11, p.Numbers.Personality)

	opts := testOptions()
	opts.DefaultSystem = numerology.Chaldean
	c = calculator.New(opts, nil)
	p, err = c.Profile(context.Background(), john())
	require.NoError(t, err)
	require.Equal(t, "chaldean", p.System)
}

func TestCalculator_Profile_KarmicDebt(t *testing.T) {
	opts := testOptions()
	opts.MinYear = 0
	c := calculator.New(opts, nil)

	p, err := c.Profile(context.Background(), domain.ProfileRequest{Name: "John", Day: 1, Month: 1, Year: 11})
	require.NoError(t, err)
	require.NotNil(t, p.Numbers.KarmicDebt)
	require.Equal(t, 13, *p.Numbers.KarmicDebt)
}

func TestCalculator_Profile_Rejected(t *testing.T) {
	c := calculator.New(testOptions(), nil)

	tests := []struct {
		name string
		req  domain.ProfileRequest
		msg  string
	}{
		{
			name: "blank name",
			req:  domain.ProfileRequest{Name: "   ", Day: 1, Month: 1, Year: 1990},
			msg:  "name is required",
		},
		{
			name: "long name",
			req:  domain.ProfileRequest{Name: strings.Repeat("a", 21), Day: 1, Month: 1, Year: 1990},
			msg:  "name is longer than 20 characters",
		},
		{
			name: "year too early",
			req:  domain.ProfileRequest{Name: "John", Day: 1, Month: 1, Year: 1899},
			msg:  "year must not be before 1900",
		},
		{
			name: "year too late",
			req:  domain.ProfileRequest{Name: "John", Day: 1, Month: 1, Year: 2101},
			msg:  "year must not be after 2100",
		},
		{
			name: "unknown system",
			req:  domain.ProfileRequest{Name: "John", Day: 1, Month: 1, Year: 1990, System: "kabbalah"},
			msg:  "invalid system",
		},
		{
			name: "impossible date",
			req:  domain.ProfileRequest{Name: "John", Day: 30, Month: 2, Year: 1990},
			msg:  "invalid birth date",
		},
		{
			name: "month out of range",
			req:  domain.ProfileRequest{Name: "John", Day: 1, Month: 13, Year: 1990},
			msg:  "invalid birth date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := c.Profile(context.Background(), tt.req)
			require.Nil(t, p)
			require.ErrorIs(t, err, serrors.ErrBadRequest)
			require.Equal(t, serrors.ErrBadRequest, serrors.KindOf(err))
			require.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestCalculator_Profile_DateErrorIsKept(t *testing.T) {
	c := calculator.New(testOptions(), nil)

	_, err := c.Profile(context.Background(), domain.ProfileRequest{Name: "John", Day: 29, Month: 2, Year: 1900})
	require.Error(t, err)

	var dateErr *numerology.DateError
	require.True(t, errors.As(err, &dateErr))
	require.Equal(t, 1900, dateErr.Year)
}

func TestCalculator_Metric(t *testing.T) {
	c := calculator.New(testOptions(), nil)

	tests := []struct {
		metric   string
		value    *int
		values   []int
		system   string
		isMaster bool
	}{
		{metric: "life_path", value: ptr(1)},
		{metric: "expression", value: ptr(2), system: "pythagorean"},
		{metric: "soul_urge", value: ptr(6), system: "pythagorean"},
		{metric: "personality", value: ptr(5), system: "pythagorean"},
		{metric: "birthday_number", value: ptr(6)},
		{metric: "maturity_number", value: ptr(3), system: "pythagorean"},
		{metric: "hidden_passion", value: ptr(1), system: "pythagorean"},
		{metric: "subconscious_self", value: ptr(2), system: "pythagorean"},
		{metric: "karmic_debt", value: nil},
		{metric: "master_numbers", values: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.metric, func(t *testing.T) {
			v, err := c.Metric(context.Background(), tt.metric, john())
			require.NoError(t, err)
			require.Equal(t, tt.metric, v.Metric)
			require.Equal(t, tt.system, v.System)
			require.Equal(t, tt.value, v.Value)
			if tt.values != nil {
				require.Equal(t, tt.values, v.Values)
			}
			require.Equal(t, tt.isMaster, v.IsMaster)
		})
	}
}

func TestCalculator_Metric_RawSum(t *testing.T) {
	c := calculator.New(testOptions(), nil)

	v, err := c.Metric(context.Background(), "life_path", john())
	require.NoError(t, err)
	require.NotNil(t, v.RawSum)
	require.Equal(t, 2008, *v.RawSum)

	v, err = c.Metric(context.Background(), "expression", domain.ProfileRequest{Name: "Dana"})
	require.NoError(t, err)
	require.Equal(t, 11, *v.Value)
	require.True(t, v.IsMaster)
	require.Equal(t, 11, *v.RawSum)
}

func TestCalculator_Metric_Inputs(t *testing.T) {
	c := calculator.New(testOptions(), nil)

	// name-only metrics ignore the date entirely
	_, err := c.Metric(context.Background(), "soul_urge", domain.ProfileRequest{Name: "John"})
	require.NoError(t, err)

	// date-only metrics ignore the name
	_, err = c.Metric(context.Background(), "life_path", domain.ProfileRequest{Day: 15, Month: 3, Year: 1990})
	require.NoError(t, err)

	v, err := c.Metric(context.Background(), "birthday_number", domain.ProfileRequest{Day: 29})
	require.NoError(t, err)
	require.Equal(t, 11, *v.Value)

	_, err = c.Metric(context.Background(), "birthday_number", domain.ProfileRequest{Day: 32})
	require.ErrorIs(t, err, serrors.ErrBadRequest)

	_, err = c.Metric(context.Background(), "expression", domain.ProfileRequest{})
	require.ErrorIs(t, err, serrors.ErrBadRequest)

	_, err = c.Metric(context.Background(), "karmic_debt", domain.ProfileRequest{Day: 31, Month: 4, Year: 1990})
	require.ErrorIs(t, err, serrors.ErrBadRequest)
}

func TestCalculator_Metric_Unknown(t *testing.T) {
	c := calculator.New(testOptions(), nil)

	v, err := c.Metric(context.Background(), "lucky_color", john())
	require.Nil(t, v)
	require.ErrorIs(t, err, serrors.ErrNotFound)
}

func TestCalculator_Batch(t *testing.T) {
	c := calculator.New(testOptions(), nil)

	reqs := []domain.ProfileRequest{
		john(),
		{Name: "John", Day: 31, Month: 2, Year: 1990},
		{Name: "Dana", Day: 2, Month: 11, Year: 1980},
	}
	items, err := c.Batch(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, items, 3)

	for i, item := range items {
		require.Equal(t, i, item.Index)
		require.Equal(t, reqs[i], item.Request)
	}

	require.NoError(t, items[0].Err)
	require.Equal(t, 1, items[0].Profile.Numbers.LifePath)

	require.Nil(t, items[1].Profile)
	require.ErrorIs(t, items[1].Err, serrors.ErrBadRequest)

	require.NoError(t, items[2].Err)
	require.Equal(t, 33, items[2].Profile.Numbers.MaturityNumber)
}

func TestCalculator_Batch_Limits(t *testing.T) {
	c := calculator.New(testOptions(), nil)

	_, err := c.Batch(context.Background(), nil)
	require.ErrorIs(t, err, serrors.ErrBadRequest)

	_, err = c.Batch(context.Background(), []domain.ProfileRequest{john(), john(), john(), john()})
	require.ErrorIs(t, err, serrors.ErrBadRequest)
	require.Contains(t, err.Error(), "at most 3")
}

func TestCalculator_Batch_Cancelled(t *testing.T) {
	c := calculator.New(testOptions(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Batch(ctx, []domain.ProfileRequest{john()})
	require.ErrorIs(t, err, serrors.ErrTimeout)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCalculator_Tools(t *testing.T) {
	c := calculator.New(testOptions(), nil)

	tools := c.Tools()
	names := make([]string, len(tools))
	for i, tool := range tools {
		names[i] = tool.Name
		require.NotEmpty(t, tool.Description)
		require.NotEmpty(t, tool.Inputs)
	}
	require.Equal(t, []string{
		"life_path", "expression", "soul_urge", "personality", "birthday_number",
		"maturity_number", "hidden_passion", "subconscious_self", "karmic_debt", "master_numbers",
	}, names)

	require.True(t, tools[0].Needs(calculator.InputYear))
	require.False(t, tools[0].Needs(calculator.InputName))
	require.False(t, tools[0].UsesSystem)
	require.True(t, tools[1].UsesSystem)
}

func TestCalculator_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.NewCalculator(reg)
	require.NoError(t, err)
	c := calculator.New(testOptions(), m)

	_, err = c.Profile(context.Background(), john())
	require.NoError(t, err)
	_, err = c.Metric(context.Background(), "nope", john())
	require.Error(t, err)

	count, err := testutil.GatherAndCount(reg, "numerology_calculations_total")
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestNew_InvalidDefaultSystem(t *testing.T) {
	c := calculator.New(calculator.Options{DefaultSystem: "bogus"}, nil)

	p, err := c.Profile(context.Background(), john())
	require.NoError(t, err)
	require.Equal(t, "pythagorean", p.System)
}

func TestNewOptions(t *testing.T) {
	cfg := &config.Config{}
	cfg.Calculator.DefaultSystem = "Chaldean"
	cfg.Calculator.MaxBatchSize = 50

	opts, err := calculator.NewOptions(cfg)
	require.NoError(t, err)
	require.Equal(t, numerology.Chaldean, opts.DefaultSystem)
	require.Equal(t, 50, opts.MaxBatchSize)

	cfg.Calculator.DefaultSystem = "kabbalah"
	_, err = calculator.NewOptions(cfg)
	require.Error(t, err)
}

func ptr(v int) *int { return &v }
