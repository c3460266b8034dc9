package citation_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/klmuthu/bedrock-distill/pkg/citation"
)

var _ = Describe("Sentences", func() {
	It("splits after terminal punctuation followed by whitespace", func() {
		passage := "Paris is the capital of France. It has a population of 2 million."

		Expect(citation.Sentences(passage)).To(Equal([]string{
			"Paris is the capital of France.",
			"It has a population of 2 million.",
		}))
	})

	It("splits after question and exclamation marks", func() {
		passage := "Is it true? Yes! It is true."

		Expect(citation.Sentences(passage)).To(Equal([]string{
			"Is it true?",
			"Yes!",
			"It is true.",
		}))
	})

	It("returns the whole passage when there is no terminal punctuation", func() {
		passage := "a passage without any terminal punctuation at all"

		Expect(citation.Sentences(passage)).To(Equal([]string{passage}))
	})

	It("returns one sentence when the only terminator ends the passage", func() {
		passage := "A single sentence."

		Expect(citation.Sentences(passage)).To(Equal([]string{passage}))
	})

	It("does not split after an initial", func() {
		passage := "The paper by J. Smith was cited widely. It changed the field."

		Expect(citation.Sentences(passage)).To(Equal([]string{
			"The paper by J. Smith was cited widely.",
			"It changed the field.",
		}))
	})

	It("does not split after a two-letter title abbreviation", func() {
		passage := "Mr. Smith lives on St. Mark street. He moved there in 1990."

		Expect(citation.Sentences(passage)).To(Equal([]string{
			"Mr. Smith lives on St. Mark street.",
			"He moved there in 1990.",
		}))
	})

	It("does not split after dotted acronyms", func() {
		passage := "The U.S. economy grew. Analysts were surprised."

		Expect(citation.Sentences(passage)).To(Equal([]string{
			"The U.S. economy grew.",
			"Analysts were surprised.",
		}))
	})

	It("does not split when punctuation is not followed by whitespace", func() {
		passage := "Version 2.5 shipped last year. It was stable."

		Expect(citation.Sentences(passage)).To(Equal([]string{
			"Version 2.5 shipped last year.",
			"It was stable.",
		}))
	})

	It("is a pure function of its input", func() {
		passage := "One. Two. Three."

		first := citation.Sentences(passage)
		second := citation.Sentences(passage)

		Expect(second).To(Equal(first))
	})
})
