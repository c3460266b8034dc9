// Package llm provides the internal representations of Bedrock inference
// payloads. Payloads are assembled once per dataset row and serialized,
// never mutated after construction.
package llm

// ContentBlock is a single text block inside a message.
type ContentBlock struct {
	Text string `json:"text"`
}

// Message represents a single message in a conversation.
type Message struct {
	Role    string         `json:"role"`    // "user" or "assistant"
	Content []ContentBlock `json:"content"` // The message content blocks
}

// TextMessage builds a message with a single text block.
func TextMessage(role, text string) Message {
	return Message{
		Role:    role,
		Content: []ContentBlock{{Text: text}},
	}
}
