package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Transcript is one persisted transcription result returned by the backend.
// It is treated as immutable once received.
type Transcript struct {
	ID        string    `json:"_id"`
	Text      string    `json:"text"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"createdAt"`
}

// wireTranscript accepts every field spelling the backend is known to emit.
type wireTranscript struct {
	MongoID        string          `json:"_id"`
	ID             json.RawMessage `json:"id"`
	Text           string          `json:"text"`
	Provider       string          `json:"provider"`
	CreatedAtCamel json.RawMessage `json:"createdAt"`
	CreatedAtSnake json.RawMessage `json:"created_at"`
}

// UnmarshalJSON tolerates `_id`/`id` and `createdAt`/`created_at`.
func (t *Transcript) UnmarshalJSON(data []byte) error {
	var w wireTranscript
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	id := w.MongoID
	if id == "" && len(w.ID) > 0 {
		parsed, err := rawString(w.ID)
		if err != nil {
			return fmt.Errorf("invalid transcript id: %w", err)
		}
		id = parsed
	}

	raw := w.CreatedAtCamel
	if isEmptyRaw(raw) {
		raw = w.CreatedAtSnake
	}
	createdAt, err := parseTimestamp(raw)
	if err != nil {
		return fmt.Errorf("invalid transcript timestamp: %w", err)
	}

	*t = Transcript{
		ID:        id,
		Text:      w.Text,
		Provider:  w.Provider,
		CreatedAt: createdAt,
	}
	return nil
}

// HasText reports whether the transcript carries any non-whitespace text.
func (t Transcript) HasText() bool {
	return strings.TrimSpace(t.Text) != ""
}

func isEmptyRaw(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null" || s == `""`
}

// rawString reads an identifier that may be encoded as a string or a number.
func rawString(raw json.RawMessage) (string, error) {
	if isEmptyRaw(raw) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}

// parseTimestamp accepts RFC3339 strings and epoch milliseconds.
func parseTimestamp(raw json.RawMessage) (time.Time, error) {
	if isEmptyRaw(raw) {
		return time.Time{}, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return ts, nil
		}
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			return time.UnixMilli(ms), nil
		}
		return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
	}

	var ms int64
	if err := json.Unmarshal(raw, &ms); err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms), nil
}
