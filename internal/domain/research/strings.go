package research

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode"
)

func firstWord(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimFunc(fields[0], func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}

// FlexString accepts a JSON string, number, bool, list or object and keeps it as text.
// Completion output is loose about types in free-text fields ("2" vs 2).
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = FlexString(strconv.FormatBool(b))
		return nil
	}

	var list []FlexString
	if err := json.Unmarshal(data, &list); err == nil {
		parts := make([]string, 0, len(list))
		for _, item := range list {
			parts = append(parts, string(item))
		}
		*f = FlexString(strings.Join(parts, ", "))
		return nil
	}

	*f = FlexString(raw)
	return nil
}

func (f FlexString) String() string {
	return string(f)
}

// Int reads the leading number of the value ("85", "85.6", "85/100"), rounding fractions. Non-numeric text is 0.
func (f FlexString) Int() int {
	s := strings.TrimSpace(string(f))
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || s[end] == '.' || (end == 0 && s[end] == '-')) {
		end++
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}
