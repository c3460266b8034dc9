package llm_test

import (
	"bytes"
	"encoding/json"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/klmuthu/bedrock-distill/pkg/llm"
)

var _ = Describe("Record", func() {
	Describe("NewRecord", func() {
		It("pairs an identifier with a payload", func() {
			rec, err := llm.NewRecord("qa-1", map[string]any{"messages": "..."})
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.RecordID).To(Equal("qa-1"))
			Expect(rec.ModelInput).To(HaveKey("messages"))
		})

		It("requires an identifier", func() {
			_, err := llm.NewRecord("", map[string]any{})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("WriteRecords", func() {
		It("writes one JSON object per line with the wire keys", func() {
			recA, err := llm.NewRecord("a", map[string]any{"n": 1})
			Expect(err).NotTo(HaveOccurred())
			recB, err := llm.NewRecord("b", map[string]any{"n": 2})
			Expect(err).NotTo(HaveOccurred())

			var buf bytes.Buffer
			Expect(llm.WriteRecords(&buf, []llm.Record{recA, recB})).To(Succeed())

			lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
			Expect(lines).To(HaveLen(2))

			var decoded map[string]any
			Expect(json.Unmarshal([]byte(lines[0]), &decoded)).To(Succeed())
			Expect(decoded).To(HaveKeyWithValue("recordId", "a"))
			Expect(decoded).To(HaveKey("modelInput"))
		})

		It("writes nothing for an empty record set", func() {
			var buf bytes.Buffer
			Expect(llm.WriteRecords(&buf, nil)).To(Succeed())
			Expect(buf.Len()).To(BeZero())
		})
	})
})
