package numerology

import (
	"fmt"
	"strings"
)

// MappingSystem selects the letter-to-number table used by name based metrics.
type MappingSystem string

const (
	// Pythagorean assigns 1..9 to the alphabet in order, wrapping every nine letters.
	Pythagorean MappingSystem = "pythagorean"
	// Chaldean uses the Babylonian sound based table.
	Chaldean MappingSystem = "chaldean"
)

// Systems lists the supported mapping systems.
var Systems = []MappingSystem{Pythagorean, Chaldean} //nolint: gochecknoglobals

// letterTable maps 'A'..'Z' (index 0..25) to a value in 1..9.
type letterTable [26]int

//nolint: gochecknoglobals
var (
	pythagoreanTable = letterTable{
		1, 2, 3, 4, 5, 6, 7, 8, 9, // A-I
		1, 2, 3, 4, 5, 6, 7, 8, 9, // J-R
		1, 2, 3, 4, 5, 6, 7, 8, // S-Z
	}
	chaldeanTable = letterTable{
		1, 2, 3, 4, 5, 8, 3, 5, 1, // A-I
		1, 2, 3, 4, 5, 7, 8, 1, 2, // J-R
		3, 4, 6, 6, 6, 5, 1, 7, // S-Z
	}
)

// ParseSystem converts a case-insensitive system name into a MappingSystem.
// An empty name selects Pythagorean.
func ParseSystem(name string) (MappingSystem, error) {
	switch MappingSystem(strings.ToLower(strings.TrimSpace(name))) {
	case "", Pythagorean:
		return Pythagorean, nil
	case Chaldean:
		return Chaldean, nil
	default:
		return "", fmt.Errorf("unknown numerology system %q", name)
	}
}

// Valid reports whether s is one of the supported systems.
func (s MappingSystem) Valid() bool {
	return s == Pythagorean || s == Chaldean
}

func (s MappingSystem) String() string { return string(s) }

// table returns the lookup table for s. Unknown systems fall back to Pythagorean.
func (s MappingSystem) table() *letterTable {
	if s == Chaldean {
		return &chaldeanTable
	}

	return &pythagoreanTable
}

// LetterValue returns the value of r under the given system, or 0 when r is not
// one of the 26 upper-case Latin letters.
func LetterValue(r rune, system MappingSystem) int {
	if r < 'A' || r > 'Z' {
		return 0
	}

	return system.table()[r-'A']
}
