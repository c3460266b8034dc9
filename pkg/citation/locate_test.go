package citation_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/klmuthu/bedrock-distill/pkg/citation"
)

var _ = Describe("SourceFor", func() {
	passage := "Paris is the capital of France. It has a population of 2 million."
	sentences := citation.Sentences(passage)

	It("returns the first sentence for offset zero", func() {
		Expect(citation.SourceFor(sentences, 0)).To(Equal("Paris is the capital of France."))
	})

	It("returns the sentence whose reconstructed range contains the offset", func() {
		// "It" starts at offset 32 in the original passage.
		Expect(citation.SourceFor(sentences, 32)).To(Equal("It has a population of 2 million."))
	})

	It("attributes the consumed separator to the preceding sentence", func() {
		// Offset 31 is the space the segmenter consumed; the first
		// sentence's range is [0, len+1).
		Expect(citation.SourceFor(sentences, 31)).To(Equal("Paris is the capital of France."))
	})

	It("returns the sentinel for an offset past the reconstructed passage", func() {
		Expect(citation.SourceFor(sentences, 10_000)).To(Equal(citation.NoSourceFound))
	})

	It("returns the sentinel for a negative offset", func() {
		Expect(citation.SourceFor(sentences, -1)).To(Equal(citation.NoSourceFound))
	})

	It("returns the sentinel when there are no sentences", func() {
		Expect(citation.SourceFor(nil, 0)).To(Equal(citation.NoSourceFound))
	})
})
