package numerology

import "strconv"

// KarmicDebt is an optional karmic debt number. The zero value means absent.
type KarmicDebt struct {
	number int
}

// NoKarmicDebt is the absent value.
var NoKarmicDebt = KarmicDebt{} //nolint: gochecknoglobals

func isKarmicDebt(n int) bool {
	return n == 13 || n == 14 || n == 16 || n == 19
}

// Value returns the debt number and whether one is present.
func (k KarmicDebt) Value() (int, bool) {
	return k.number, k.number != 0
}

// Present reports whether a karmic debt number was found.
func (k KarmicDebt) Present() bool { return k.number != 0 }

func (k KarmicDebt) String() string {
	if k.number == 0 {
		return "none"
	}

	return strconv.Itoa(k.number)
}
