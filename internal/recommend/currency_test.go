package recommend

import "testing"

func TestParseCurrencyMajorUnits(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want int64
	}{
		{"₱2,500,000", 2_500_000},
		{"PHP 8,000,000", 8_000_000},
		{"3500000", 3_500_000},
		{" ₱ 1,000,000 ", 1_000_000},
		{"price on request", 0},
		{"", 0},
		{"₱", 0},
	}

	for _, tc := range cases {
		if got := ParseCurrencyMajorUnits(tc.in); got != tc.want {
			t.Errorf("ParseCurrencyMajorUnits(%q)=%d want=%d", tc.in, got, tc.want)
		}
	}
}
