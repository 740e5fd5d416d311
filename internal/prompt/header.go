package prompt

import (
	"strings"

	"github.com/davidbz/ollamagen/internal/domain"
)

const (
	beginOfText = "<|begin_of_text|>"
	headerOpen  = "<|start_header_id|>"
	headerClose = "<|end_header_id|> "
	endOfTurn   = " <|eot_id|>"
	eotToken    = "<|eot_id|>"

	// The header template has no tool role; tool output is sent as ipython.
	ipythonRole = "ipython"
)

// HeaderTagged formats prompts for models using <|start_header_id|> role headers
// (the Llama 3 family).
type HeaderTagged struct{}

// Name returns the family identifier.
func (HeaderTagged) Name() string {
	return FamilyHeaderTagged
}

// Format renders every message as its own header-tagged segment.
func (HeaderTagged) Format(conv domain.Conversation) (string, error) {
	if len(conv) == 0 {
		return "", domain.ErrEmptyConversation
	}

	var sb strings.Builder
	for _, msg := range conv {
		role := string(msg.Role)
		if msg.Role == domain.RoleTool {
			role = ipythonRole
		}

		sb.WriteString(beginOfText)
		sb.WriteString(headerOpen)
		sb.WriteString(role)
		sb.WriteString(headerClose)
		sb.WriteString(msg.Content)
		sb.WriteString(endOfTurn)
	}

	return sb.String(), nil
}

// FormatWithTools ignores the tools: no tools block is defined for this family yet.
func (h HeaderTagged) FormatWithTools(conv domain.Conversation, _ []domain.ToolDescriptor) (string, error) {
	return h.Format(conv)
}

// TextStopSequences stop free-text output at the end marker or the end of the turn.
func (HeaderTagged) TextStopSequences() []string {
	return []string{endOfContent, eotToken}
}

// JSONStopSequences stop JSON output at the end of the turn.
func (HeaderTagged) JSONStopSequences() []string {
	return []string{eotToken}
}
