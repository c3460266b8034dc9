package llm

// AnswerEndTag closes the answer block in the citation markup. Generation
// stops once the model has emitted a complete answer.
const AnswerEndTag = "</answer>"

// InferenceOptions contains the model generation parameters carried by
// single-turn payloads.
type InferenceOptions struct {
	Temperature *float64 `json:"temperature,omitempty"` // Creativity (0.0-1.0)
	TopP        *float64 `json:"top_p,omitempty"`       // Nucleus sampling threshold
	TopK        *int     `json:"top_k,omitempty"`       // Top-k sampling
	Stop        []string `json:"stop,omitempty"`        // Stop generation at these sequences
}

// DefaultInferenceOptions returns the fixed generation-parameter block every
// single-turn payload carries.
func DefaultInferenceOptions() InferenceOptions {
	temperature := 0.1
	topP := 0.9
	topK := 20

	return InferenceOptions{
		Temperature: &temperature,
		TopP:        &topP,
		TopK:        &topK,
		Stop:        []string{AnswerEndTag},
	}
}
