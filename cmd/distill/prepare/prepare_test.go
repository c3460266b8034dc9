package preparecmder

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/klmuthu/bedrock-distill/pkg/llm"
)

const datasetJSON = `{
  "version": "v2.0",
  "data": [
    {
      "title": "Paris",
      "paragraphs": [
        {
          "context": "Paris is the capital of France. It has a population of 2 million.",
          "qas": [
            {
              "id": "qa-1",
              "question": "What is the capital of France?",
              "is_impossible": false,
              "answers": [{"text": "Paris", "answer_start": 0}]
            },
            {
              "id": "qa-2",
              "question": "What is the capital of Spain?",
              "is_impossible": true,
              "answers": []
            }
          ]
        }
      ]
    }
  ]
}`

var _ = Describe("Prepare Command", func() {
	var (
		ctx         context.Context
		tmpDir      string
		datasetPath string
		outputPath  string
	)

	BeforeEach(func() {
		ctx = context.Background()
		tmpDir = GinkgoT().TempDir()
		datasetPath = filepath.Join(tmpDir, "dev.json")
		outputPath = filepath.Join(tmpDir, "records.jsonl")
		Expect(os.WriteFile(datasetPath, []byte(datasetJSON), 0o644)).To(Succeed())
	})

	readRecords := func() []llm.Record {
		f, err := os.Open(outputPath)
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()

		var records []llm.Record
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			var rec llm.Record
			Expect(json.Unmarshal(scanner.Bytes(), &rec)).To(Succeed())
			records = append(records, rec)
		}
		Expect(scanner.Err()).NotTo(HaveOccurred())
		return records
	}

	It("writes one record per row with the wire keys", func() {
		cmd := NewPrepareCmd()
		cmd.SetArgs([]string{datasetPath, "--output", outputPath})
		Expect(cmd.ExecuteContext(ctx)).To(Succeed())

		records := readRecords()
		Expect(records).To(HaveLen(2))
		Expect(records[0].RecordID).To(Equal("qa-1"))
		Expect(records[1].RecordID).To(Equal("qa-2"))
		Expect(records[0].ModelInput).To(HaveKeyWithValue("schemaVersion", "bedrock-conversation-2024"))
	})

	It("carries the citation markup as an assistant turn when asked", func() {
		cmd := NewPrepareCmd()
		cmd.SetArgs([]string{datasetPath, "--output", outputPath, "--include-answer"})
		Expect(cmd.ExecuteContext(ctx)).To(Succeed())

		records := readRecords()

		messages, ok := records[0].ModelInput["messages"].([]any)
		Expect(ok).To(BeTrue())
		Expect(messages).To(HaveLen(2))

		assistant, ok := messages[1].(map[string]any)
		Expect(ok).To(BeTrue())
		Expect(assistant["role"]).To(Equal("assistant"))

		content := assistant["content"].([]any)[0].(map[string]any)
		Expect(content["text"]).To(Equal(
			"<answer><answer_part><text>Paris</text><sources><source>Paris is the capital of France.</source></sources></answer_part></answer>"))
	})

	It("renders the no-answer markup for unanswerable rows", func() {
		cmd := NewPrepareCmd()
		cmd.SetArgs([]string{datasetPath, "--output", outputPath, "--include-answer"})
		Expect(cmd.ExecuteContext(ctx)).To(Succeed())

		records := readRecords()

		messages := records[1].ModelInput["messages"].([]any)
		Expect(messages).To(HaveLen(2))
		content := messages[1].(map[string]any)["content"].([]any)[0].(map[string]any)
		Expect(content["text"]).To(Equal(
			"<answer>\n<answer_part>\n<text>\nI could not find an exact answer to the question.\n</text>\n</answer_part></answer>"))
	})

	It("emits single-turn records with the generation parameters", func() {
		cmd := NewPrepareCmd()
		cmd.SetArgs([]string{datasetPath, "--output", outputPath, "--shape", "single-turn"})
		Expect(cmd.ExecuteContext(ctx)).To(Succeed())

		records := readRecords()
		Expect(records[0].ModelInput).To(HaveKey("inferenceConfig"))
		Expect(records[0].ModelInput).NotTo(HaveKey("schemaVersion"))

		messages := records[0].ModelInput["messages"].([]any)
		Expect(messages).To(HaveLen(1))
	})

	It("respects the row limit", func() {
		cmd := NewPrepareCmd()
		cmd.SetArgs([]string{datasetPath, "--output", outputPath, "--limit", "1"})
		Expect(cmd.ExecuteContext(ctx)).To(Succeed())

		Expect(readRecords()).To(HaveLen(1))
	})

	It("halts immediately on an unknown shape", func() {
		cmd := NewPrepareCmd()
		cmd.SetArgs([]string{datasetPath, "--output", outputPath, "--shape", "streaming"})
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true

		err := cmd.ExecuteContext(ctx)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("unsupported payload shape"))

		_, statErr := os.Stat(outputPath)
		Expect(os.IsNotExist(statErr)).To(BeTrue())
	})
})
