// Package squad loads SQuAD-format question answering datasets and flattens
// them into the per-row shape the prepare pipeline consumes.
package squad

import (
	"encoding/json"
	"fmt"
	"os"
	"unicode/utf8"
)

// File is the top-level SQuAD dataset layout.
type File struct {
	Version string    `json:"version"`
	Data    []Article `json:"data"`
}

// Article groups the paragraphs of one source document.
type Article struct {
	Title      string      `json:"title"`
	Paragraphs []Paragraph `json:"paragraphs"`
}

// Paragraph is a passage with its questions.
type Paragraph struct {
	Context string `json:"context"`
	QAs     []QA   `json:"qas"`
}

// QA is one question over a paragraph. An unanswerable question has no
// answers and is flagged impossible.
type QA struct {
	ID               string   `json:"id"`
	Question         string   `json:"question"`
	IsImpossible     bool     `json:"is_impossible"`
	Answers          []Answer `json:"answers"`
	PlausibleAnswers []Answer `json:"plausible_answers,omitempty"`
}

// Answer is one occurrence of an answer span in the paragraph context.
type Answer struct {
	Text        string `json:"text"`
	AnswerStart int    `json:"answer_start"` // zero-based character offset into the context
}

// Row is one flattened dataset row. Zero answers marks an intentionally
// unanswerable question. Rows returned by Rows have already had their
// offsets validated, so nothing downstream re-inspects input shapes.
type Row struct {
	ID       string
	Context  string
	Question string
	Answers  []Answer
}

// Load reads and parses a SQuAD JSON file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read dataset %s: %w", path, err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("could not parse dataset %s: %w", path, err)
	}

	return &f, nil
}

// Rows flattens the dataset into validated rows, preserving document order.
// Rows whose answer offsets fall outside their context are malformed: they
// are excluded from the valid set and their IDs returned separately so the
// caller can report them without aborting the batch.
func (f *File) Rows() (rows []Row, malformed []string) {
	for _, article := range f.Data {
		for _, para := range article.Paragraphs {
			contextLen := utf8.RuneCountInString(para.Context)
			for _, qa := range para.QAs {
				if !offsetsValid(qa.Answers, contextLen) {
					malformed = append(malformed, qa.ID)
					continue
				}
				rows = append(rows, Row{
					ID:       qa.ID,
					Context:  para.Context,
					Question: qa.Question,
					Answers:  qa.Answers,
				})
			}
		}
	}
	return rows, malformed
}

func offsetsValid(answers []Answer, contextLen int) bool {
	for _, a := range answers {
		if a.AnswerStart < 0 || a.AnswerStart >= contextLen {
			return false
		}
	}
	return true
}
