package main

import (
	"context"
	"io"
	"numerology/internal/calculator"
	"numerology/internal/config"
	"numerology/pkg/domain"
	"numerology/pkg/logger"
	"numerology/pkg/serrors"
	"os"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runCalc computes a profile, or a single metric when metric is set, and
// writes it to w as indented JSON.
func runCalc(ctx context.Context, w io.Writer, calc calculator.Calculator, metric string, req domain.ProfileRequest) error {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)
	e.SetIdent(2)

	if metric != "" {
		v, err := calc.Metric(ctx, metric, req)
		if err != nil {
			return err //nolint: wrapcheck
		}
		encodeMetricValue(e, v)
	} else {
		p, err := calc.Profile(ctx, req)
		if err != nil {
			return err //nolint: wrapcheck
		}
		encodeProfile(e, p)
	}

	if _, err := w.Write(append(e.Bytes(), '\n')); err != nil {
		return errors.Wrap(err, "could not write result")
	}

	return nil
}

func encodeOptInt(e *jx.Encoder, v *int) {
	if v == nil {
		e.Null()

		return
	}
	e.Int(*v)
}

func encodeProfile(e *jx.Encoder, p *domain.Profile) {
	n := p.Numbers
	e.ObjStart()
	e.FieldStart("name")
	e.Str(p.Name)
	e.FieldStart("system")
	e.Str(p.System)
	for _, f := range []struct {
		name  string
		value int
	}{
		{"life_path", n.LifePath},
		{"expression", n.Expression},
		{"soul_urge", n.SoulUrge},
		{"personality", n.Personality},
		{"birthday_number", n.BirthdayNumber},
		{"maturity_number", n.MaturityNumber},
		{"hidden_passion", n.HiddenPassion},
		{"subconscious_self", n.SubconsciousSelf},
	} {
		e.FieldStart(f.name)
		e.Int(f.value)
	}
	e.FieldStart("karmic_debt")
	encodeOptInt(e, n.KarmicDebt)
	e.FieldStart("master_numbers")
	e.ArrStart()
	for _, m := range n.MasterNumbers {
		e.Int(m)
	}
	e.ArrEnd()
	e.ObjEnd()
}

func encodeMetricValue(e *jx.Encoder, v *domain.MetricValue) {
	e.ObjStart()
	e.FieldStart("metric")
	e.Str(v.Metric)
	e.FieldStart("value")
	encodeOptInt(e, v.Value)
	if v.Values != nil {
		e.FieldStart("values")
		e.ArrStart()
		for _, m := range v.Values {
			e.Int(m)
		}
		e.ArrEnd()
	}
	e.FieldStart("is_master_number")
	e.Bool(v.IsMaster)
	e.ObjEnd()
}

func calcCommand(cfg *config.Config) *cobra.Command {
	var req domain.ProfileRequest
	var metric string

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Computes a profile or a single number and prints it as JSON",
		Example: "  numerology calc --name \"John Doe\" --day 15 --month 3 --year 1990\n" +
			"  numerology calc --name John --system chaldean --metric expression",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			opts, err := calculator.NewOptions(cfg)
			if err != nil {
				return errors.Wrap(err, "invalid calculator config")
			}
			calc := calculator.New(opts, nil)

			err = runCalc(ctx, os.Stdout, calc, strings.ToLower(metric), req)
			if err != nil && serrors.KindOf(err) != serrors.ErrInternal {
				// caller mistakes are reported without the usage dump
				cmd.SilenceUsage = true
				logger.Error(ctx, "calculation rejected", zap.String("reason", serrors.MessageOf(err)), zap.Error(err))
			}

			return err
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Full name")
	cmd.Flags().IntVar(&req.Day, "day", 0, "Day of birth")
	cmd.Flags().IntVar(&req.Month, "month", 0, "Month of birth")
	cmd.Flags().IntVar(&req.Year, "year", 0, "Year of birth")
	cmd.Flags().StringVar(&req.System, "system", "", "Letter mapping system: pythagorean or chaldean")
	cmd.Flags().StringVar(&metric, "metric", "", "Compute only this metric, e.g. life_path")

	return cmd
}
