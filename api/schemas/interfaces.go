package schemas

import "context"

// -- Response Client Schemas & Interface --

// DefaultMaxOutputTokens is the completion budget applied when a request
// leaves MaxOutputTokens unset.
const DefaultMaxOutputTokens = 1000

// GenerationRequest encapsulates one complete request to a model provider:
// the validated model identifier, the rendered instruction text, and the
// output budget.
type GenerationRequest struct {
	Model           string `json:"model"`             // A value from the target or judge enumeration.
	Instruction     string `json:"instruction"`       // The full instruction text sent as a single user turn.
	MaxOutputTokens int    `json:"max_output_tokens"` // Zero means DefaultMaxOutputTokens.
}

// ResponseClient is the single collaborator through which every operation
// talks to a model provider. Implementations own transport, authentication
// and any retry policy; callers treat one Respond call as atomic. A failed
// call surfaces as a *ProviderError.
type ResponseClient interface {
	// Respond sends the instruction to the named model and returns the raw
	// response text. The text is returned as-is: no truncation, no JSON
	// extraction, no second attempt at the caller's level.
	Respond(ctx context.Context, req GenerationRequest) (string, error)
	// Close releases any resources held by the client.
	Close() error
}
