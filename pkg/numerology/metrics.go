package numerology

import "slices"

// LifePath reduces day+month+year, preserving master numbers.
func LifePath(day, month, year int) (Digit, error) {
	d, err := NewBirthDate(day, month, year)
	if err != nil {
		return 0, err
	}

	return lifePath(d), nil
}

func lifePath(d BirthDate) Digit {
	return Reduce(d.Total(), true)
}

// Expression reduces the sum of every letter in name.
func Expression(name string, system MappingSystem) Digit {
	return Reduce(NameSum(name, system), true)
}

// SoulUrge reduces the sum of the vowels in name.
func SoulUrge(name string, system MappingSystem) Digit {
	return Reduce(VowelSum(name, system), true)
}

// Personality reduces the sum of the consonants in name.
func Personality(name string, system MappingSystem) Digit {
	return Reduce(ConsonantSum(name, system), true)
}

// Birthday reduces the day of birth on its own.
func Birthday(day int) Digit {
	return Reduce(day, true)
}

// Maturity reduces Expression + Life Path.
func Maturity(name string, day, month, year int, system MappingSystem) (Digit, error) {
	d, err := NewBirthDate(day, month, year)
	if err != nil {
		return 0, err
	}

	return maturity(name, d, system), nil
}

func maturity(name string, d BirthDate, system MappingSystem) Digit {
	return Reduce(int(Expression(name, system))+int(lifePath(d)), true)
}

// HiddenPassion returns the letter value that occurs most often in name.
// Among equally frequent values the one seen first in the name wins. Names
// without any mapped letter yield 1.
func HiddenPassion(name string, system MappingSystem) Digit {
	var counts [10]int
	order := make([]int, 0, 9)
	for _, r := range Normalize(name) {
		v := LetterValue(r, system)
		if v == 0 {
			continue
		}
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}
	if len(order) == 0 {
		return 1
	}

	best := order[0]
	for _, v := range order[1:] {
		if counts[v] > counts[best] {
			best = v
		}
	}

	return Digit(best)
}

// SubconsciousSelf returns the smallest digit 1..9 that no letter of name maps
// to, or 9 when every digit is present.
func SubconsciousSelf(name string, system MappingSystem) Digit {
	var present [10]bool
	for _, r := range Normalize(name) {
		present[LetterValue(r, system)] = true
	}
	for v := 1; v <= 9; v++ {
		if !present[v] {
			return Digit(v)
		}
	}

	return 9
}

// KarmicDebtNumber checks the raw day+month+year sum against 13, 14, 16 and 19.
// No digit reduction is applied.
func KarmicDebtNumber(day, month, year int) (KarmicDebt, error) {
	d, err := NewBirthDate(day, month, year)
	if err != nil {
		return NoKarmicDebt, err
	}

	return karmicDebt(d), nil
}

func karmicDebt(d BirthDate) KarmicDebt {
	if total := d.Total(); isKarmicDebt(total) {
		return KarmicDebt{number: total}
	}

	return NoKarmicDebt
}

// MasterNumbers inspects two unreduced sums, the date total and the
// Pythagorean letter sum of name, and returns the master numbers among them in
// ascending order. Soul urge, personality and maturity sums are not inspected.
func MasterNumbers(name string, day, month, year int) ([]Digit, error) {
	d, err := NewBirthDate(day, month, year)
	if err != nil {
		return nil, err
	}

	return masterNumbers(name, d), nil
}

// isRepeatedPair matches two-digit values whose digits are equal (11, 22, ... 99).
func isRepeatedPair(n int) bool {
	return n > 10 && n < 100 && n/10 == n%10
}

func masterNumbers(name string, d BirthDate) []Digit {
	found := make([]Digit, 0, 2)
	for _, sum := range [...]int{d.Total(), NameSum(name, Pythagorean)} {
		if isRepeatedPair(sum) && isMaster(sum) && !slices.Contains(found, Digit(sum)) {
			found = append(found, Digit(sum))
		}
	}
	slices.Sort(found)

	return found
}
