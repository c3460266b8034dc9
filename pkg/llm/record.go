package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Record pairs a record identifier with its request payload. It is the
// atomic unit written to a line-delimited output file: created once per
// dataset row, never updated.
type Record struct {
	RecordID   string         `json:"recordId"`
	ModelInput map[string]any `json:"modelInput"`
}

// NewRecord wraps a payload with its record identifier. The identifier is
// required; the payload is not validated here - filtering absent payloads is
// the caller's responsibility.
func NewRecord(id string, payload map[string]any) (Record, error) {
	if id == "" {
		return Record{}, errors.New("record id is required")
	}

	return Record{RecordID: id, ModelInput: payload}, nil
}

// WriteRecords serializes records as JSON Lines, one record per line.
func WriteRecords(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("could not encode record %s: %w", rec.RecordID, err)
		}
	}
	return nil
}
