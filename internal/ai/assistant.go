package ai

import "context"

// CompletionRequest describes one blocking LLM round-trip. The response is a
// single text blob which downstream parsers expect to contain JSON somewhere
// inside it.
type CompletionRequest struct {
	// System fixes the model behavior for the call (parser persona, output
	// discipline). May be empty.
	System string
	// Prompt is the user-facing prompt with the embedded payload and schema.
	Prompt string
	// Temperature in the provider's native range.
	Temperature float32
	// MaxTokens bounds the output size. Zero means provider default.
	MaxTokens int32
}

// Completer is the contract every LLM-backed pipeline stage consumes. There
// is no retry or timeout at this level; callers decide whether to abandon the
// unit of work.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
