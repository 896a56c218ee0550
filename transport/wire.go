package transport

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/livellm"
)

// RecordType discriminates wire records.
type RecordType string

const (
	RecordToken    RecordType = "token"
	RecordMetadata RecordType = "metadata"
	RecordError    RecordType = "error"
	RecordDone     RecordType = "done"
)

// Usage carries token accounting reported by the producer.
type Usage struct {
	InputTokens  int `json:"input_tokens,omitempty"`
	OutputTokens int `json:"output_tokens,omitempty"`
}

// Record is one message of the newline-delimited JSON wire format.
type Record struct {
	Type     RecordType     `json:"type"`
	Token    string         `json:"token,omitempty"`
	Message  string         `json:"message,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Usage    *Usage         `json:"usage,omitempty"`
}

// DecodeRecord parses a single wire record.
func DecodeRecord(data []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("decode record: %v: %w", err, livellm.ErrTransport)
	}
	switch rec.Type {
	case RecordToken, RecordMetadata, RecordError, RecordDone:
		return rec, nil
	default:
		return Record{}, fmt.Errorf("decode record: unknown type %q: %w", rec.Type, livellm.ErrTransport)
	}
}

// WireExtract is the default Extract for the wire format. Metadata records
// are skipped; an error record becomes a transport failure.
func WireExtract(data []byte) (string, bool, error) {
	rec, err := DecodeRecord(data)
	if err != nil {
		return "", false, err
	}
	switch rec.Type {
	case RecordToken:
		return rec.Token, false, nil
	case RecordDone:
		return "", true, nil
	case RecordError:
		return "", false, fmt.Errorf("stream error: %s: %w", rec.Message, livellm.ErrTransport)
	default:
		return "", false, nil
	}
}
