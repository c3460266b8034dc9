package llm

import "fmt"

// Shape selects the request shape a payload is assembled in.
type Shape string

const (
	// ShapeConversational is the multi-turn training-record shape consumed
	// by distillation jobs.
	ShapeConversational Shape = "conversational"

	// ShapeSingleTurn is the batch-inference shape carrying generation
	// parameters alongside the turns.
	ShapeSingleTurn Shape = "single-turn"
)

// conversationSchemaVersion tags conversational records with the schema the
// customization service expects.
const conversationSchemaVersion = "bedrock-conversation-2024"

// PayloadParams describes one request payload to assemble.
type PayloadParams struct {
	Shape Shape

	// Context and Question are embedded in the user turn wrapped in fixed
	// delimiting tags.
	Context  string
	Question string

	// System, when non-empty, is carried as a system instruction.
	System string

	// Answer is the citation markup appended as an assistant turn when
	// IncludeAnswer is set and the markup is non-empty.
	Answer        string
	IncludeAnswer bool

	// Extra fields merge into the payload's top level. Single-turn payloads
	// take extras verbatim; conversational payloads only take keys that are
	// not already present.
	Extra map[string]any
}

// UserPrompt wraps a passage and question in the fixed delimiting tags shared
// by every payload shape. There is no separator beyond the tags themselves.
func UserPrompt(context, question string) string {
	return fmt.Sprintf("<context>%s</context><question>%s</question>", context, question)
}

// BuildPayload assembles one immutable request payload. An unknown shape
// yields an InvalidShapeError; callers must treat a nil payload as absent
// rather than emitting it.
func BuildPayload(p PayloadParams) (map[string]any, error) {
	switch p.Shape {
	case ShapeConversational, ShapeSingleTurn:
	default:
		return nil, InvalidShapeError{Shape: p.Shape}
	}

	messages := []Message{TextMessage("user", UserPrompt(p.Context, p.Question))}
	if p.IncludeAnswer && p.Answer != "" {
		// The answer turn always follows the user turn.
		messages = append(messages, TextMessage("assistant", p.Answer))
	}

	payload := map[string]any{"messages": messages}
	if p.System != "" {
		payload["system"] = []ContentBlock{{Text: p.System}}
	}

	switch p.Shape {
	case ShapeConversational:
		payload["schemaVersion"] = conversationSchemaVersion
		for k, v := range p.Extra {
			if _, exists := payload[k]; !exists {
				payload[k] = v
			}
		}
	case ShapeSingleTurn:
		payload["inferenceConfig"] = DefaultInferenceOptions()
		for k, v := range p.Extra {
			payload[k] = v
		}
	}

	return payload, nil
}
