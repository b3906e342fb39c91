package numerology

// Digit is a reduced number: 1..9 or one of the master numbers 11, 22, 33.
type Digit int

// Master numbers are never reduced further when master preservation is on.
const (
	Master11 Digit = 11
	Master22 Digit = 22
	Master33 Digit = 33
)

// IsMaster reports whether d is 11, 22 or 33.
func (d Digit) IsMaster() bool {
	return isMaster(int(d))
}

func isMaster(n int) bool {
	return n == 11 || n == 22 || n == 33
}

// digitSum returns the sum of the base-10 digits of n.
func digitSum(n int) int {
	if n < 0 {
		n = -n
	}
	sum := 0
	for n > 0 {
		sum += n % 10
		n /= 10
	}

	return sum
}

// Reduce repeatedly replaces n by the sum of its digits until a single digit
// remains. With preserveMaster set, reduction stops as soon as 11, 22 or 33 is
// reached. Values of 9 or less are returned unchanged.
func Reduce(n int, preserveMaster bool) Digit {
	for n > 9 {
		if preserveMaster && isMaster(n) {
			return Digit(n)
		}
		n = digitSum(n)
	}

	return Digit(n)
}
