// Package citation maps a dataset's answer spans to the passage sentences
// that contain them and renders the citation markup the downstream model
// family expects.
package citation

import "unicode"

// Sentences splits a passage into an ordered list of sentences.
//
// A sentence ends immediately after a terminal punctuation mark (., ?, !)
// followed by whitespace. Splits are suppressed after a single uppercase
// letter followed by a period ("J. Smith") and after a two-letter
// abbreviation ("Mr.", "St."). This is a punctuation heuristic, not a
// sentence boundary detector; false splits on ellipses or decimal numbers
// are accepted. A passage with no terminal punctuation yields exactly one
// sentence equal to the whole passage.
func Sentences(passage string) []string {
	var sentences []string
	runes := []rune(passage)
	start := 0

	for i := 0; i < len(runes); i++ {
		if !isTerminal(runes[i]) {
			continue
		}
		if i+1 >= len(runes) || !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if runes[i] == '.' && (isInitial(runes, i) || isAbbreviation(runes, i)) {
			continue
		}

		sentences = append(sentences, string(runes[start:i+1]))
		// The split consumes exactly one separator character.
		start = i + 2
		i++
	}

	if start < len(runes) {
		sentences = append(sentences, string(runes[start:]))
	}
	if len(sentences) == 0 {
		sentences = append(sentences, passage)
	}

	return sentences
}

func isTerminal(r rune) bool {
	return r == '.' || r == '?' || r == '!'
}

func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isInitial reports whether the period at i terminates a single uppercase
// letter, as in "J. Smith".
func isInitial(runes []rune, i int) bool {
	if i < 1 || !unicode.IsUpper(runes[i-1]) {
		return false
	}
	return i < 2 || !isWord(runes[i-2])
}

// isAbbreviation reports whether the period at i terminates a two-letter
// title abbreviation, as in "Mr." or "St.".
func isAbbreviation(runes []rune, i int) bool {
	if i < 2 || !isWord(runes[i-1]) || !isWord(runes[i-2]) {
		return false
	}
	return i < 3 || !isWord(runes[i-3])
}
