package domain

import (
	"strconv"
	"strings"
)

// Money is a monthly amount in PHP major units. Profile forms send it as
// either a JSON number or a quoted numeric string ("50,000" included);
// anything unparseable decodes to 0 rather than failing the request.
type Money float64

func (m *Money) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*m = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		unq, err := strconv.Unquote(s)
		if err != nil {
			*m = 0
			return nil
		}
		s = unq
	}
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*m = 0
		return nil
	}
	*m = Money(v)
	return nil
}
