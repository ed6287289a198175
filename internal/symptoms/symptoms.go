// Package symptoms holds the single wire representation of a symptom list
// and its normalization.
package symptoms

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// List accepts either a JSON array of strings or one comma-delimited string.
// After decoding it always holds raw, unnormalized entries.
type List []string

func (l *List) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("symptoms: %w", err)
		}
		*l = List{s}
		return nil
	case '[':
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("symptoms must be a string or an array of strings: %w", err)
		}
		*l = List(items)
		return nil
	default:
		return fmt.Errorf("symptoms must be a string or an array of strings")
	}
}

// Normalize splits every entry on commas, trims and lower-cases the tokens
// and drops the empty ones. Order is preserved.
func Normalize(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, entry := range raw {
		for _, token := range strings.Split(entry, ",") {
			token = strings.ToLower(strings.TrimSpace(token))
			if token != "" {
				out = append(out, token)
			}
		}
	}
	return out
}

// Join renders normalized tokens in the comma-delimited form used by
// predictors that read a single string.
func Join(tokens []string) string {
	return strings.Join(tokens, ",")
}
