// Package jsonx pulls a JSON value out of free-form completion text.
// Completions wrap JSON in prose and code fences; this finds it anyway.
package jsonx

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"ideaforge/pkg/errors"
)

var (
	jsonFenceRe = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	anyFenceRe  = regexp.MustCompile("(?s)```\\s*(.*?)\\s*```")
)

// Raw returns the bytes of the first JSON object or array found in text.
// Fenced blocks win; otherwise the span from the first '{' or '[' to the last
// '}' or ']' is tried, then the first complete value from each opener.
func Raw(text string) (json.RawMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.Wrap(errors.ErrNoJSON, "empty text")
	}

	if m := jsonFenceRe.FindStringSubmatch(text); m != nil {
		text = m[1]
	} else if m := anyFenceRe.FindStringSubmatch(text); m != nil {
		text = m[1]
	}
	text = strings.TrimSpace(text)

	if json.Valid([]byte(text)) && isContainer(text) {
		return json.RawMessage(text), nil
	}

	starts := openers(text)
	if len(starts) == 0 {
		return nil, errors.Wrapf(errors.ErrNoJSON, "no JSON start in %q", preview(text))
	}

	end := max(strings.LastIndex(text, "}"), strings.LastIndex(text, "]")) + 1
	if end > starts[0] {
		span := text[starts[0]:end]
		if json.Valid([]byte(span)) {
			return json.RawMessage(span), nil
		}
	}

	for _, start := range starts {
		dec := json.NewDecoder(strings.NewReader(text[start:]))
		var raw json.RawMessage
		if err := dec.Decode(&raw); err == nil {
			return raw, nil
		}
	}

	return nil, errors.Wrapf(errors.ErrNoJSON, "no decodable JSON in %q", preview(text))
}

// Extract decodes the first JSON value in text into generic maps and slices
func Extract(text string) (any, error) {
	raw, err := Raw(text)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, errors.Wrap(errors.ErrNoJSON, err.Error())
	}
	return v, nil
}

// ExtractInto decodes the first JSON value in text into dst
func ExtractInto(text string, dst any) error {
	raw, err := Raw(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return errors.Wrapf(errors.ErrNoJSON, "decode into %T: %v", dst, err)
	}
	return nil
}

func isContainer(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[")
}

// openers returns the first '{' and first '[' positions, earliest first
func openers(s string) []int {
	var out []int
	brace, bracket := strings.Index(s, "{"), strings.Index(s, "[")
	switch {
	case brace >= 0 && bracket >= 0 && bracket < brace:
		out = append(out, bracket, brace)
	case brace >= 0 && bracket >= 0:
		out = append(out, brace, bracket)
	case brace >= 0:
		out = append(out, brace)
	case bracket >= 0:
		out = append(out, bracket)
	}
	return out
}

func preview(s string) string {
	s = string(bytes.TrimSpace([]byte(s)))
	if len(s) > 100 {
		return s[:100] + "..."
	}
	return s
}
