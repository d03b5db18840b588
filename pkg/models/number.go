package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Number is a float64 that tolerates sloppy JSON input: it accepts plain
// numbers, numeric strings ("250000", " 3.5 ") and null. Anything that
// does not parse decodes as zero rather than failing the whole payload,
// which matches how spreadsheet imports are coerced.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			*n = 0
			return nil
		}
		s = strings.TrimSpace(raw)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*n = 0
		return nil
	}
	*n = Number(f)
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(n))
}

// Float returns the underlying float64.
func (n Number) Float() float64 { return float64(n) }

// Int returns the value truncated to an int.
func (n Number) Int() int { return int(n) }
