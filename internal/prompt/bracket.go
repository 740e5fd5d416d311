package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/davidbz/ollamagen/internal/domain"
)

// Markers of the bracket-instruction template. Surrounding whitespace is part of the template.
const (
	instOpen        = "[INST] "
	instClose       = " [/INST]"
	toolCallsOpen   = "[TOOL_CALLS] "
	toolCallsClose  = " [/TOOL_CALLS]\n\n"
	availableOpen   = "[AVAILABLE_TOOLS] "
	availableClose  = "[/AVAILABLE_TOOLS]"
	endOfAssistant  = "</s> " // no matching <s>, the template never opens one
	endOfContent    = "END_OF_CONTENT"
	toolCallsMarker = "[/TOOL_CALLS]"
)

// BracketInstruction formats prompts for models using [INST] ... [/INST] turns
// (the Mistral family).
type BracketInstruction struct{}

// Name returns the family identifier.
func (BracketInstruction) Name() string {
	return FamilyBracketInstruction
}

// Format renders the conversation without a tools block.
func (b BracketInstruction) Format(conv domain.Conversation) (string, error) {
	return b.FormatWithTools(conv, nil)
}

// FormatWithTools renders the conversation. When tools are given, the tools block is
// emitted immediately before the last system or user message.
func (BracketInstruction) FormatWithTools(conv domain.Conversation, tools []domain.ToolDescriptor) (string, error) {
	if len(conv) == 0 {
		return "", domain.ErrEmptyConversation
	}

	toolsAt := -1
	var toolsJSON []byte
	if len(tools) > 0 {
		toolsAt = conv.LastIndexOf(domain.RoleUser, domain.RoleSystem)

		var err error
		toolsJSON, err = json.Marshal(tools)
		if err != nil {
			return "", fmt.Errorf("failed to encode tool descriptors: %w", err)
		}
	}

	var sb strings.Builder
	for i, msg := range conv {
		if i == toolsAt {
			sb.WriteString(availableOpen)
			sb.Write(toolsJSON)
			sb.WriteString(availableClose)
		}

		switch msg.Role {
		case domain.RoleUser, domain.RoleSystem:
			sb.WriteString(instOpen)
			sb.WriteString(msg.Content)
			sb.WriteString(instClose)
		case domain.RoleTool:
			sb.WriteString(toolCallsOpen)
			sb.WriteString(msg.Content)
			sb.WriteString(toolCallsClose)
		default:
			if strings.TrimSpace(msg.Content) == "" {
				continue
			}
			sb.WriteString(msg.Content)
			sb.WriteString(endOfAssistant)
		}
	}

	return sb.String(), nil
}

// TextStopSequences stop free-text output before the model appends a sign-off.
func (BracketInstruction) TextStopSequences() []string {
	return []string{endOfContent}
}

// JSONStopSequences stop JSON output before the model starts emitting tool calls.
func (BracketInstruction) JSONStopSequences() []string {
	return []string{toolCallsMarker}
}
