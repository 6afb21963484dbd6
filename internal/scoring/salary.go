package scoring

import (
	"math"
	"strconv"
	"strings"
)

// SalaryRange is a salary figure extracted from free text.
type SalaryRange struct {
	Bounds  []int
	Average int
}

// ParseSalaryRange extracts numbers from hyphen-separated segments of text.
// Every segment containing a digit contributes one number built from all of its digits,
// so "₹10,00,000 - ₹15,00,000" yields 1000000 and 1500000. The second return value is
// false when no number can be extracted or the bounds are too large to average.
func ParseSalaryRange(text string) (SalaryRange, bool) {
	var bounds []int
	for _, segment := range strings.Split(text, "-") {
		digits := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, segment)
		if digits == "" {
			continue
		}

		n, err := strconv.Atoi(digits)
		if err != nil {
			return SalaryRange{}, false
		}
		bounds = append(bounds, n)
	}

	if len(bounds) == 0 {
		return SalaryRange{}, false
	}

	sum := 0
	for _, n := range bounds {
		if n > math.MaxInt-sum {
			return SalaryRange{}, false
		}
		sum += n
	}

	return SalaryRange{Bounds: bounds, Average: sum / len(bounds)}, true
}
