// README: Chat-completion client contract shared by the Ark and Gemini providers.
package ai

import (
	"context"
)

// Client sends a single user prompt to a chat-completion model.
// Implementations never retry; callers bound the call through ctx.
type Client interface {
	// Complete returns the raw completion or one of ErrConfigurationMissing,
	// *HTTPError or *NetworkError.
	Complete(ctx context.Context, prompt string) (*Completion, error)

	// Provider names the backend, e.g. "ark" or "gemini".
	Provider() string
}
