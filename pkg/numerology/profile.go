package numerology

import "golang.org/x/sync/errgroup"

// Result is the full set of numbers computed for one person. A Result is built
// once per call and shares no state with other results.
type Result struct {
	LifePath         Digit
	Expression       Digit
	SoulUrge         Digit
	Personality      Digit
	Birthday         Digit
	Maturity         Digit
	HiddenPassion    Digit
	SubconsciousSelf Digit
	KarmicDebt       KarmicDebt
	// MasterNumbers is ascending and only ever holds 11, 22 or 33.
	MasterNumbers []Digit
}

// ComputeProfile validates the birth date once and then runs the ten metric
// calculators concurrently. Each calculator owns exactly one field of the
// result, so the output does not depend on completion order. A DateError is
// returned before any calculator starts.
func ComputeProfile(name string, day, month, year int, system MappingSystem) (Result, error) {
	d, err := NewBirthDate(day, month, year)
	if err != nil {
		return Result{}, err
	}

	var (
		res Result
		g   errgroup.Group
	)
	g.Go(func() error { res.LifePath = lifePath(d); return nil })
	g.Go(func() error { res.Expression = Expression(name, system); return nil })
	g.Go(func() error { res.SoulUrge = SoulUrge(name, system); return nil })
	g.Go(func() error { res.Personality = Personality(name, system); return nil })
	g.Go(func() error { res.Birthday = Birthday(d.Day); return nil })
	g.Go(func() error { res.Maturity = maturity(name, d, system); return nil })
	g.Go(func() error { res.HiddenPassion = HiddenPassion(name, system); return nil })
	g.Go(func() error { res.SubconsciousSelf = SubconsciousSelf(name, system); return nil })
	g.Go(func() error { res.KarmicDebt = karmicDebt(d); return nil })
	g.Go(func() error { res.MasterNumbers = masterNumbers(name, d); return nil })

	// calculators never fail once the date is valid
	_ = g.Wait()

	return res, nil
}
