package recommend

import "strconv"

// ParseCurrencyMajorUnits extracts an integer PHP amount from a
// formatted price string ("₱2,500,000" -> 2500000) by stripping every
// non-digit rune. Unparseable or empty input degrades to 0; this is the
// contract every sub-score relies on, never an error.
func ParseCurrencyMajorUnits(s string) int64 {
	digits := make([]byte, 0, len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits = append(digits, byte(r))
		}
	}
	if len(digits) == 0 {
		return 0
	}
	v, err := strconv.ParseInt(string(digits), 10, 64)
	if err != nil {
		return 0
	}
	return v
}
