package redact

import (
	"strings"
	"testing"
)

func TestMaskReplacesEmailAndPhone(t *testing.T) {
	text := "Reach John Doe at john@x.com or +1 555-123-4567 for details"
	masked := Mask(text)

	if strings.Contains(masked, "john@x.com") {
		t.Fatalf("email not masked: %q", masked)
	}
	if strings.Contains(masked, "555-123-4567") {
		t.Fatalf("phone not masked: %q", masked)
	}
	if !strings.Contains(masked, EmailPlaceholder) {
		t.Fatalf("expected email placeholder in %q", masked)
	}
	if !strings.Contains(masked, PhonePlaceholder) {
		t.Fatalf("expected phone placeholder in %q", masked)
	}
	if !strings.Contains(masked, "John Doe") {
		t.Fatalf("non-PII content must survive masking: %q", masked)
	}
}

func TestMaskLeavesPlainTextAlone(t *testing.T) {
	text := "Senior engineer with 10 years of Go experience"
	if got := Mask(text); got != text {
		t.Fatalf("expected unchanged text, got %q", got)
	}
}

func TestFindEmail(t *testing.T) {
	if got := FindEmail("contact: jane.doe+hr@example.co.uk and other@x.io"); got != "jane.doe+hr@example.co.uk" {
		t.Fatalf("expected first email, got %q", got)
	}

	if got := FindEmail("no contacts here"); got != "" {
		t.Fatalf("expected empty result, got %q", got)
	}
}

func TestFindPhone(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"call 555-123-4567 today", "555-123-4567"},
		{"call (555) 123 4567 today", "(555) 123 4567"},
		{"call +1 555.123.4567 today", "+1 555.123.4567"},
		{"no digits at all", ""},
	}

	for _, tc := range cases {
		if got := FindPhone(tc.text); got != tc.want {
			t.Fatalf("FindPhone(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}
