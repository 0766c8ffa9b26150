// Package jsontext recovers JSON values embedded in free-form LLM output.
// Model responses are not required to be pure JSON, only to contain exactly
// one well-formed value between the first opening and last closing bracket of
// the expected kind.
package jsontext

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoObject indicates the text contains no {...} span.
	ErrNoObject = errors.New("no JSON object found in text")
	// ErrNoArray indicates the text contains no [...] span.
	ErrNoArray = errors.New("no JSON array found in text")
)

// Object extracts the outermost {...} span from raw and unmarshals it into target.
func Object(raw string, target any) error {
	span, err := span(raw, '{', '}')
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(span), target); err != nil {
		return fmt.Errorf("parse embedded JSON object: %w", err)
	}

	return nil
}

// Array extracts the outermost [...] span from raw and unmarshals it into target.
func Array(raw string, target any) error {
	span, err := span(raw, '[', ']')
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(span), target); err != nil {
		return fmt.Errorf("parse embedded JSON array: %w", err)
	}

	return nil
}

func span(raw string, open, close byte) (string, error) {
	cleaned := stripFences(raw)

	start := strings.IndexByte(cleaned, open)
	end := strings.LastIndexByte(cleaned, close)
	if start == -1 || end <= start {
		if open == '{' {
			return "", ErrNoObject
		}
		return "", ErrNoArray
	}

	return cleaned[start : end+1], nil
}

// stripFences removes markdown code fences some models wrap their output in.
func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	return strings.TrimSpace(raw)
}
