package calculator

import (
	"numerology/pkg/domain"
	"numerology/pkg/numerology"
)

// Input names used in the tool catalog.
const (
	InputName  = "name"
	InputDay   = "day"
	InputMonth = "month"
	InputYear  = "year"
)

// Tool describes one calculator entry point.
type Tool struct {
	Name        string
	Description string
	Inputs      []string
	// UsesSystem is false for metrics that never look at letters.
	UsesSystem bool
}

// Needs reports whether the tool reads the named input.
func (t Tool) Needs(name string) bool {
	for _, in := range t.Inputs {
		if in == name {
			return true
		}
	}

	return false
}

// input is a request that already passed policy checks.
type input struct {
	name             string
	day, month, year int
	system           numerology.MappingSystem
}

type entry struct {
	Tool
	calc func(in input) (domain.MetricValue, error)
}

//nolint: gochecknoglobals
var (
	nameInputs     = []string{InputName}
	dateInputs     = []string{InputDay, InputMonth, InputYear}
	nameDateInputs = []string{InputName, InputDay, InputMonth, InputYear}
)

func digitValue(d numerology.Digit, raw int) domain.MetricValue {
	v := int(d)

	return domain.MetricValue{Value: &v, IsMaster: d.IsMaster(), RawSum: &raw}
}

func nameMetric(reduce func(string, numerology.MappingSystem) numerology.Digit,
	sum func(string, numerology.MappingSystem) int) func(input) (domain.MetricValue, error) {
	return func(in input) (domain.MetricValue, error) {
		return digitValue(reduce(in.name, in.system), sum(in.name, in.system)), nil
	}
}

// catalog is ordered as profiles list their fields.
var catalog = []entry{ //nolint: gochecknoglobals
	{
		Tool: Tool{Name: "life_path", Description: "Life path number from the full birth date", Inputs: dateInputs},
		calc: func(in input) (domain.MetricValue, error) {
			d, err := numerology.LifePath(in.day, in.month, in.year)
			if err != nil {
				return domain.MetricValue{}, err //nolint: wrapcheck
			}

			return digitValue(d, in.day+in.month+in.year), nil
		},
	},
	{
		Tool: Tool{Name: "expression", Description: "Expression (destiny) number from every letter of the name",
			Inputs: nameInputs, UsesSystem: true},
		calc: nameMetric(numerology.Expression, numerology.NameSum),
	},
	{
		Tool: Tool{Name: "soul_urge", Description: "Soul urge number from the vowels of the name",
			Inputs: nameInputs, UsesSystem: true},
		calc: nameMetric(numerology.SoulUrge, numerology.VowelSum),
	},
	{
		Tool: Tool{Name: "personality", Description: "Personality number from the consonants of the name",
			Inputs: nameInputs, UsesSystem: true},
		calc: nameMetric(numerology.Personality, numerology.ConsonantSum),
	},
	{
		Tool: Tool{Name: "birthday_number", Description: "Birthday number from the day of birth",
			Inputs: []string{InputDay}},
		calc: func(in input) (domain.MetricValue, error) {
			return digitValue(numerology.Birthday(in.day), in.day), nil
		},
	},
	{
		Tool: Tool{Name: "maturity_number", Description: "Maturity number, expression plus life path",
			Inputs: nameDateInputs, UsesSystem: true},
		calc: func(in input) (domain.MetricValue, error) {
			d, err := numerology.Maturity(in.name, in.day, in.month, in.year, in.system)
			if err != nil {
				return domain.MetricValue{}, err //nolint: wrapcheck
			}
			lp, _ := numerology.LifePath(in.day, in.month, in.year)

			return digitValue(d, int(numerology.Expression(in.name, in.system))+int(lp)), nil
		},
	},
	{
		Tool: Tool{Name: "hidden_passion", Description: "Most frequent letter value in the name",
			Inputs: nameInputs, UsesSystem: true},
		calc: func(in input) (domain.MetricValue, error) {
			v := int(numerology.HiddenPassion(in.name, in.system))

			return domain.MetricValue{Value: &v}, nil
		},
	},
	{
		Tool: Tool{Name: "subconscious_self", Description: "Smallest digit missing from the name's letter values",
			Inputs: nameInputs, UsesSystem: true},
		calc: func(in input) (domain.MetricValue, error) {
			v := int(numerology.SubconsciousSelf(in.name, in.system))

			return domain.MetricValue{Value: &v}, nil
		},
	},
	{
		Tool: Tool{Name: "karmic_debt", Description: "Karmic debt number (13, 14, 16, 19) from the raw date sum",
			Inputs: dateInputs},
		calc: func(in input) (domain.MetricValue, error) {
			kd, err := numerology.KarmicDebtNumber(in.day, in.month, in.year)
			if err != nil {
				return domain.MetricValue{}, err //nolint: wrapcheck
			}
			raw := in.day + in.month + in.year
			out := domain.MetricValue{RawSum: &raw}
			if v, ok := kd.Value(); ok {
				out.Value = &v
			}

			return out, nil
		},
	},
	{
		Tool: Tool{Name: "master_numbers", Description: "Master numbers found in the raw date sum and the Pythagorean name sum",
			Inputs: nameDateInputs},
		calc: func(in input) (domain.MetricValue, error) {
			found, err := numerology.MasterNumbers(in.name, in.day, in.month, in.year)
			if err != nil {
				return domain.MetricValue{}, err //nolint: wrapcheck
			}

			return domain.MetricValue{Values: digitsToInts(found), IsMaster: len(found) > 0}, nil
		},
	},
}

func lookup(metric string) (entry, bool) {
	for _, e := range catalog {
		if e.Name == metric {
			return e, true
		}
	}

	return entry{}, false
}

func digitsToInts(in []numerology.Digit) []int {
	out := make([]int, len(in))
	for i, d := range in {
		out[i] = int(d)
	}

	return out
}
