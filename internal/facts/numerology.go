package facts

import "strconv"

func digitSum(n int) int {
	if n < 0 {
		n = -n
	}
	s := 0
	for n > 0 {
		s += n % 10
		n /= 10
	}
	return s
}

// reduce digit-sums n until it is a single digit or a master number.
func reduce(n int) int {
	s := digitSum(n)
	if s == 11 || s == 22 || s == 33 || s < 10 {
		return s
	}
	return reduce(s)
}

// LifePathNumber reduces day, month and year separately, then their total.
// A total of exactly 22 is kept as 22 even though it reduces to 4.
func LifePathNumber(day, month, year int) string {
	total := reduce(day) + reduce(month) + reduce(year)
	lp := reduce(total)
	if lp == 4 && total == 22 {
		lp = 22
	}
	return strconv.Itoa(lp)
}
