package numerology

import (
	"strings"
	"unicode"
)

// Normalize removes whitespace from name and upper-cases the rest.
func Normalize(name string) string {
	return strings.ToUpper(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}

		return r
	}, name))
}

// IsVowel reports whether r belongs to the fixed vowel set A, E, I, O, U, W, Y.
// W and Y always count as vowels, regardless of the mapping system.
func IsVowel(r rune) bool {
	switch r {
	case 'A', 'E', 'I', 'O', 'U', 'W', 'Y':
		return true
	default:
		return false
	}
}

// letterSum adds up the value of every normalized character accepted by keep.
// A nil keep accepts every character.
func letterSum(name string, system MappingSystem, keep func(rune) bool) int {
	total := 0
	for _, r := range Normalize(name) {
		if keep == nil || keep(r) {
			total += LetterValue(r, system)
		}
	}

	return total
}

func isConsonant(r rune) bool { return !IsVowel(r) }

// NameSum returns the unreduced sum of all letter values in name.
func NameSum(name string, system MappingSystem) int {
	return letterSum(name, system, nil)
}

// VowelSum returns the unreduced sum of the vowel letter values in name.
func VowelSum(name string, system MappingSystem) int {
	return letterSum(name, system, IsVowel)
}

// ConsonantSum returns the unreduced sum of the consonant letter values in name.
func ConsonantSum(name string, system MappingSystem) int {
	return letterSum(name, system, isConsonant)
}
