// Package redact masks PII before resume text is sent to an LLM and provides
// the independent regex-based contact extraction used to reconcile records
// afterwards. Masking is applied only on the LLM path; the unmasked text is
// kept around for contact extraction and lexical scoring.
package redact

import "regexp"

const (
	// EmailPlaceholder replaces email-shaped tokens in masked text.
	EmailPlaceholder = "[EMAIL_MASKED]"
	// PhonePlaceholder replaces phone-shaped tokens in masked text.
	PhonePlaceholder = "[PHONE_MASKED]"
)

var (
	maskEmailPattern = regexp.MustCompile(`\S+@\S+`)
	maskPhonePattern = regexp.MustCompile(`\+?\d[\d -]{8,12}\d`)

	findEmailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	findPhonePattern = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
)

// Mask replaces email-like and phone-like tokens with fixed placeholders.
func Mask(text string) string {
	text = maskEmailPattern.ReplaceAllString(text, EmailPlaceholder)
	text = maskPhonePattern.ReplaceAllString(text, PhonePlaceholder)
	return text
}

// FindEmail returns the first email-shaped token in text, or "".
func FindEmail(text string) string {
	return findEmailPattern.FindString(text)
}

// FindPhone returns the first phone-shaped token in text, or "". The pattern
// is deliberately loose: optional country code, grouped digit blocks with
// `-`, `.`, space or parentheses separators.
func FindPhone(text string) string {
	return findPhonePattern.FindString(text)
}
