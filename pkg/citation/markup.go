package citation

import (
	"fmt"
	"strings"
)

// Occurrence is one answer span in a passage: the answer text and the
// zero-based character offset where it begins.
type Occurrence struct {
	Text   string
	Offset int
}

// AnswerPart pairs an answer text with the sentence that supports it. A part
// with an empty Source renders without a sources block, which distinguishes
// unanswerable rows from answered ones.
type AnswerPart struct {
	Text   string
	Source string
}

// Parts resolves each occurrence to its source sentence in input order.
// Occurrences whose offset falls outside the reconstructed passage get the
// NoSourceFound sentinel.
func Parts(passage string, occurrences []Occurrence) []AnswerPart {
	sentences := Sentences(passage)

	parts := make([]AnswerPart, 0, len(occurrences))
	for _, occ := range occurrences {
		parts = append(parts, AnswerPart{
			Text:   occ.Text,
			Source: SourceFor(sentences, occ.Offset),
		})
	}
	return parts
}

// Build renders the citation markup for one row's answer occurrences.
//
// Occurrence order is preserved and duplicates are not collapsed. A row with
// no occurrences renders the no-answer form carrying noAnswerText and no
// source tag at all. The tag vocabulary and nesting are a byte-for-byte
// compatibility contract with the downstream model family's output format.
func Build(passage string, occurrences []Occurrence, noAnswerText string) string {
	if len(occurrences) == 0 {
		return fmt.Sprintf("<answer>\n<answer_part>\n<text>\n%s\n</text>\n</answer_part></answer>", noAnswerText)
	}

	var b strings.Builder
	b.WriteString("<answer>")
	for _, part := range Parts(passage, occurrences) {
		b.WriteString("<answer_part><text>")
		b.WriteString(part.Text)
		b.WriteString("</text><sources><source>")
		b.WriteString(part.Source)
		b.WriteString("</source></sources></answer_part>")
	}
	b.WriteString("</answer>")
	return b.String()
}
