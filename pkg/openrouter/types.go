package openrouter

import "time"

// ChatRequest describes a single chat-completion invocation.
type ChatRequest struct {
	Model               string               `json:"model,omitempty"`
	Messages            []Message            `json:"messages"`
	Temperature         *float64             `json:"temperature,omitempty"`
	MaxCompletionTokens *int                 `json:"max_completion_tokens,omitempty"`
	TopP                *float64             `json:"top_p,omitempty"`
	Tools               []Tool               `json:"tools,omitempty"`
	ToolChoice          *ToolChoice          `json:"tool_choice,omitempty"`
	Provider            *ProviderPreferences `json:"provider,omitempty"`
}

// Message represents a chat message in the conversation.
type Message struct {
	Role       string `json:"role"`
	Content    string `json:"content"`
	Name       string `json:"name,omitempty"`
	ToolCallID string `json:"tool_call_id,omitempty"`
}

// Tool declares a callable function offered to the model.
type Tool struct {
	Type     string       `json:"type"`
	Function ToolFunction `json:"function"`
}

// ToolFunction carries the function declaration inside a Tool.
type ToolFunction struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

// ToolChoice forces the model to invoke a specific function.
type ToolChoice struct {
	Type     string             `json:"type"`
	Function ToolChoiceFunction `json:"function"`
}

// ToolChoiceFunction names the forced function.
type ToolChoiceFunction struct {
	Name string `json:"name"`
}

// ProviderPreferences selects which upstream compute providers OpenRouter may
// route a request to. Order is tried first; Ignore is never used.
type ProviderPreferences struct {
	Order          []string `json:"order,omitempty" yaml:"order"`
	Ignore         []string `json:"ignore,omitempty" yaml:"ignore"`
	AllowFallbacks *bool    `json:"allow_fallbacks,omitempty" yaml:"allow_fallbacks"`
}

// ChatResponse captures a completion result.
type ChatResponse struct {
	ID          string   `json:"id"`
	Model       string   `json:"model"`
	Choices     []Choice `json:"choices"`
	Usage       Usage    `json:"usage"`
	Created     int64    `json:"created"`
	Fingerprint string   `json:"system_fingerprint,omitempty"`
}

// Choice represents a single completion choice.
type Choice struct {
	Index        int        `json:"index"`
	Message      Message    `json:"message"`
	FinishReason string     `json:"finish_reason"`
	ToolCalls    []ToolCall `json:"tool_calls,omitempty"`
}

// ToolCall describes an assistant tool invocation.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function,omitempty"`
}

// FunctionCall holds the function name and its JSON-encoded arguments.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Usage summarises token accounting for a completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// QueryRequest is the input to the Query adapter. SystemMessage and
// UserMessage are both optional; empty ones are dropped from the request.
type QueryRequest struct {
	SystemMessage string
	UserMessage   string

	// FuncSpec, when set, forces the response to invoke the named function.
	FuncSpec *FunctionSpec

	// Per-request model parameters; unset values fall back to config defaults.
	Model               string
	Temperature         *float64
	MaxCompletionTokens *int
	TopP                *float64

	// Provider overrides the client's default routing preferences.
	Provider *ProviderPreferences
}

// QueryResult is the normalized outcome of one Query round trip. Exactly one
// of Content or Arguments is populated, depending on whether a FunctionSpec
// was supplied.
type QueryResult struct {
	Content   string
	Arguments map[string]any

	Elapsed          time.Duration
	PromptTokens     int
	CompletionTokens int
	Metadata         Metadata
}

// Metadata carries response provenance fields.
type Metadata struct {
	SystemFingerprint string `json:"system_fingerprint"`
	Model             string `json:"model"`
	Created           int64  `json:"created"`
}
