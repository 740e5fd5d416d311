package domain

// Role identifies the author of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message represents a single role-tagged turn of a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Conversation is an ordered list of messages. Formatters never reorder it.
type Conversation []Message

// UserMessage builds a message authored by the user.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// SystemMessage builds a system instruction message.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// LastIndexOf returns the index of the last message matching one of the roles, or -1.
func (c Conversation) LastIndexOf(roles ...Role) int {
	for i := len(c) - 1; i >= 0; i-- {
		for _, role := range roles {
			if c[i].Role == role {
				return i
			}
		}
	}
	return -1
}

// ResponseFormat controls server-side format hinting.
type ResponseFormat string

const (
	ResponseFormatText ResponseFormat = "text"
	ResponseFormatJSON ResponseFormat = "json"
)

const (
	defaultTemperature = 0.5
	defaultTopP        = 1.0
)

// PromptSettings carries the per-call generation options handed to an InferenceClient.
// A fresh value is built for every logical call and is not modified afterwards.
type PromptSettings struct {
	ModelID        string // overrides the client's configured model when set
	ResponseFormat ResponseFormat
	Temperature    float64
	TopP           float64
	MaxTokens      int // 0 leaves generation length to the server
	Stream         bool
	Raw            bool
	StopSequences  []string
	Formatter      PromptFormatter
}

// NewPromptSettings returns settings populated with the defaults.
func NewPromptSettings() PromptSettings {
	return PromptSettings{
		ResponseFormat: ResponseFormatText,
		Temperature:    defaultTemperature,
		TopP:           defaultTopP,
		Stream:         false,
		Raw:            true,
		StopSequences:  []string{},
	}
}

// IsJSON reports whether a JSON response was requested.
func (s PromptSettings) IsJSON() bool {
	return s.ResponseFormat == ResponseFormatJSON
}

// ChatResult is the normalized assistant reply returned by an InferenceClient.
type ChatResult struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// AssistantResult wraps content as an assistant reply.
func AssistantResult(content string) *ChatResult {
	return &ChatResult{Role: RoleAssistant, Content: content}
}

// ToolDescriptor describes a callable capability in the shape the bracket-instruction
// family expects inside its tools block.
type ToolDescriptor struct {
	Type     string             `json:"type"`
	Function FunctionDescriptor `json:"function"`
}

// FunctionDescriptor names a function and its parameter schema.
type FunctionDescriptor struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Parameters  FunctionParameters `json:"parameters"`
}

// FunctionParameters is the object schema of a function's arguments.
type FunctionParameters struct {
	Type       string                         `json:"type"`
	Properties map[string]ParameterDescriptor `json:"properties"`
	Required   []string                       `json:"required"`
}

// ParameterDescriptor is the schema of a single argument.
type ParameterDescriptor struct {
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Enum        []string `json:"enum,omitempty"`
}
