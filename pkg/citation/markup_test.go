package citation_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/klmuthu/bedrock-distill/pkg/citation"
)

var _ = Describe("Build", func() {
	passage := "Paris is the capital of France. It has a population of 2 million."
	noAnswer := "I could not find an exact answer to the question."

	It("renders one answer part with its source sentence", func() {
		markup := citation.Build(passage, []citation.Occurrence{{Text: "Paris", Offset: 0}}, noAnswer)

		Expect(markup).To(Equal("<answer><answer_part><text>Paris</text><sources><source>Paris is the capital of France.</source></sources></answer_part></answer>"))
	})

	It("renders the no-answer form for a row with zero occurrences", func() {
		markup := citation.Build(passage, nil, noAnswer)

		Expect(markup).To(Equal("<answer>\n<answer_part>\n<text>\nI could not find an exact answer to the question.\n</text>\n</answer_part></answer>"))
		Expect(markup).NotTo(ContainSubstring("<source>"))
	})

	It("emits one answer part per occurrence in input order", func() {
		occurrences := []citation.Occurrence{
			{Text: "2 million", Offset: 56},
			{Text: "Paris", Offset: 0},
			{Text: "Paris", Offset: 0},
		}

		markup := citation.Build(passage, occurrences, noAnswer)

		Expect(strings.Count(markup, "<answer_part>")).To(Equal(3))
		Expect(strings.Count(markup, "<sources>")).To(Equal(3))

		// No reordering or deduplication.
		first := strings.Index(markup, "<text>2 million</text>")
		second := strings.Index(markup, "<text>Paris</text>")
		Expect(first).To(BeNumerically(">=", 0))
		Expect(second).To(BeNumerically(">", first))
	})

	It("falls back to the sentinel source for an offset past the passage", func() {
		markup := citation.Build(passage, []citation.Occurrence{{Text: "ghost", Offset: 9_999}}, noAnswer)

		Expect(markup).To(ContainSubstring("<source>" + citation.NoSourceFound + "</source>"))
	})
})

var _ = Describe("Parts", func() {
	It("resolves each occurrence to a sentence in input order", func() {
		passage := "First sentence here. Second sentence there."

		parts := citation.Parts(passage, []citation.Occurrence{
			{Text: "there", Offset: 37},
			{Text: "First", Offset: 0},
		})

		Expect(parts).To(Equal([]citation.AnswerPart{
			{Text: "there", Source: "Second sentence there."},
			{Text: "First", Source: "First sentence here."},
		}))
	})
})
