package domain

import (
	"encoding/json"
	"errors"
)

// ModelUnavailableMessage is returned as content when the server does not have the model.
const ModelUnavailableMessage = "ERROR: The configured model isn't available. Perhaps it's still downloading."

var (
	// ErrTransport marks a non-2xx answer from the inference server other than not-found.
	ErrTransport = errors.New("inference transport error")

	// ErrEmptyConversation is returned when formatting a conversation with no messages.
	ErrEmptyConversation = errors.New("conversation must contain at least one message")

	// ErrFormatterMissing is returned when settings reach a client without a formatter.
	ErrFormatterMissing = errors.New("prompt formatter must be set")
)

// ModelUnavailableResult builds the degraded reply for a missing model. In JSON mode the
// sentinel is encoded as a JSON string so downstream parsing still sees a valid value.
func ModelUnavailableResult(settings PromptSettings) *ChatResult {
	if !settings.IsJSON() {
		return AssistantResult(ModelUnavailableMessage)
	}

	encoded, err := json.Marshal(ModelUnavailableMessage)
	if err != nil {
		return AssistantResult(ModelUnavailableMessage)
	}
	return AssistantResult(string(encoded))
}
