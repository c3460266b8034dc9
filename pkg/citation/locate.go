package citation

import "unicode/utf8"

// NoSourceFound is returned when no sentence's reconstructed range contains
// an offset. Citation quality degrades instead of the whole record failing.
const NoSourceFound = "no relevant source found"

// SourceFor returns the sentence whose reconstructed character range contains
// the given zero-based offset into the original passage. Each sentence
// accounts for its own length plus the one separator character the segmenter
// consumed at its boundary, so the range for a sentence starting at counter c
// is [c, c+len+1).
func SourceFor(sentences []string, offset int) string {
	counter := 0
	for _, sentence := range sentences {
		length := utf8.RuneCountInString(sentence)
		if offset >= counter && offset < counter+length+1 {
			return sentence
		}
		counter += length + 1
	}
	return NoSourceFound
}
