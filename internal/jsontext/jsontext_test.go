package jsontext

import (
	"errors"
	"testing"
)

func TestObjectRecoversEmbeddedJSON(t *testing.T) {
	var data map[string]string
	if err := Object(`Sure! {"name":"A"} Thanks`, &data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if data["name"] != "A" {
		t.Fatalf("expected name A, got %q", data["name"])
	}
}

func TestObjectWithCodeFences(t *testing.T) {
	raw := "```json\n{\"score\": 42}\n```"

	var data map[string]int
	if err := Object(raw, &data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if data["score"] != 42 {
		t.Fatalf("expected score 42, got %d", data["score"])
	}
}

func TestObjectMissingBraces(t *testing.T) {
	var data map[string]any
	err := Object("the model refused to answer", &data)
	if !errors.Is(err, ErrNoObject) {
		t.Fatalf("expected ErrNoObject, got %v", err)
	}
}

func TestObjectMalformedJSON(t *testing.T) {
	var data map[string]any
	if err := Object(`{"name": unquoted}`, &data); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestArrayRecoversEmbeddedJSON(t *testing.T) {
	var items []map[string]any
	raw := `Here are the results: [{"rank": 1}, {"rank": 2}] Hope this helps!`
	if err := Array(raw, &items); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
}

func TestArrayMissingBrackets(t *testing.T) {
	var items []any
	err := Array(`{"not": "an array"}`, &items)
	if !errors.Is(err, ErrNoArray) {
		t.Fatalf("expected ErrNoArray, got %v", err)
	}
}
