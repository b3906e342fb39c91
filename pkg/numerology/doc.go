// Package numerology is the deterministic calculation engine behind the
// numerology service. It maps a person's name and birth date to the fixed set
// of numbers that make up a profile: life path, expression, soul urge,
// personality, birthday, maturity, hidden passion, subconscious self, karmic
// debt and master numbers.
//
// Every function in this package is pure. The mapping system is always passed
// explicitly, nothing is cached and no I/O is performed, so all entry points
// are safe for concurrent use.
package numerology
