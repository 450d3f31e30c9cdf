package llm

// Image detail levels accepted by the vision endpoint.
const (
	DetailLow  = "low"
	DetailHigh = "high"
	DetailAuto = "auto"
)

// VisionRequest is a single-turn request with one image.
type VisionRequest struct {
	// System is the system instruction.
	System string

	// Text accompanies the image in the user turn.
	Text string

	// JPEG holds the encoded image. See PrepareJPEG.
	JPEG []byte

	// Detail selects the image detail level. Defaults to DetailLow.
	Detail string

	// MaxCompletionTokens caps the generated tokens. If 0, no limit is sent.
	MaxCompletionTokens int
}

// ChatMessage represents a single message in a chat conversation.
// Content is either a string or a list of ContentPart.
type ChatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// ContentPart is one element of a multi-part user message.
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL references an image, here always an inline data URL.
type ImageURL struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"`
}

// ChatRequest represents the request payload for chat completions.
type ChatRequest struct {
	Model               string        `json:"model"`
	Messages            []ChatMessage `json:"messages"`
	MaxCompletionTokens int           `json:"max_completion_tokens,omitempty"`
}

// ChatChoiceMessage represents the message in a chat choice.
type ChatChoiceMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatChoice represents a single choice in the chat response.
type ChatChoice struct {
	Index        int               `json:"index"`
	Message      ChatChoiceMessage `json:"message"`
	FinishReason string            `json:"finish_reason"`
}

// ChatResponse represents the response from the chat completions API.
type ChatResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Choices []ChatChoice `json:"choices"`
}
