package preparecmder

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/klmuthu/bedrock-distill/pkg/citation"
	"github.com/klmuthu/bedrock-distill/pkg/llm"
	"github.com/klmuthu/bedrock-distill/pkg/squad"
)

const prepareLongDesc string = `Convert a SQuAD-format dataset into JSON Lines request records.

Each question becomes one record pairing its id with a model input.
Conversational records can carry the citation markup as an assistant turn
and serve as distillation training data; single-turn records carry the
generation parameters and serve as batch inference input.

Rows that fail to convert are reported and skipped; the rest of the batch
still goes through. An unknown --shape halts immediately.

Examples:
  distill prepare train-v2.0.json --output train.jsonl --include-answer
  distill prepare dev-v2.0.json --shape single-turn --output batch-input.jsonl --limit 100`

const prepareShortDesc string = "Convert a SQuAD dataset into JSONL request records"

// defaultNoAnswerText is the answer text emitted for unanswerable rows.
const defaultNoAnswerText = "I could not find an exact answer to the question."

type prepareCommander struct {
	output        string
	shape         string
	system        string
	includeAnswer bool
	noAnswerText  string
	limit         int
}

func NewPrepareCmd() *cobra.Command {
	cmder := &prepareCommander{}

	cmd := &cobra.Command{
		Use:   "prepare <dataset.json>",
		Short: prepareShortDesc,
		Long:  prepareLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd, args[0])
		},
	}

	cmd.Flags().StringVarP(&cmder.output, "output", "o", "records.jsonl", "Path of the JSONL output file")
	cmd.Flags().StringVar(&cmder.shape, "shape", string(llm.ShapeConversational), `Payload shape: "conversational" or "single-turn"`)
	cmd.Flags().StringVar(&cmder.system, "system", "", "System instruction carried by every record")
	cmd.Flags().BoolVar(&cmder.includeAnswer, "include-answer", false, "Append the citation markup as an assistant turn")
	cmd.Flags().StringVar(&cmder.noAnswerText, "no-answer-text", defaultNoAnswerText, "Answer text emitted for unanswerable questions")
	cmd.Flags().IntVar(&cmder.limit, "limit", 0, "Maximum number of rows to emit (0 = all)")

	return cmd
}

func (c *prepareCommander) run(ctx context.Context, cmd *cobra.Command, datasetPath string) error {
	file, err := squad.Load(datasetPath)
	if err != nil {
		return err
	}

	rows, malformed := file.Rows()
	if len(malformed) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "Skipping %d malformed rows (first: %s)\n", len(malformed), malformed[0])
	}

	if c.limit > 0 && len(rows) > c.limit {
		rows = rows[:c.limit]
	}

	records := make([]llm.Record, 0, len(rows))
	var failed int
	for _, row := range rows {
		record, err := c.buildRecord(row)
		if err != nil {
			var shapeErr llm.InvalidShapeError
			if errors.As(err, &shapeErr) {
				// Configuration errors halt the whole batch.
				return err
			}
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "row %s: %v\n", row.ID, err)
			continue
		}
		records = append(records, record)
	}

	out, err := os.Create(c.output)
	if err != nil {
		return fmt.Errorf("could not create output %s: %w", c.output, err)
	}
	defer out.Close()

	if err := llm.WriteRecords(out, records); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d records to %s (%d rows skipped)\n",
		len(records), c.output, failed+len(malformed))

	return nil
}

// buildRecord converts one dataset row: segment the passage, locate each
// answer's source sentence, render the citation markup, and wrap it all in
// the requested payload shape.
func (c *prepareCommander) buildRecord(row squad.Row) (llm.Record, error) {
	occurrences := make([]citation.Occurrence, 0, len(row.Answers))
	for _, a := range row.Answers {
		occurrences = append(occurrences, citation.Occurrence{Text: a.Text, Offset: a.AnswerStart})
	}

	markup := citation.Build(row.Context, occurrences, c.noAnswerText)

	payload, err := llm.BuildPayload(llm.PayloadParams{
		Shape:         llm.Shape(c.shape),
		Context:       row.Context,
		Question:      row.Question,
		System:        c.system,
		Answer:        markup,
		IncludeAnswer: c.includeAnswer,
	})
	if err != nil {
		return llm.Record{}, err
	}

	return llm.NewRecord(row.ID, payload)
}
