package api

import "context"

// Transcriber converts an audio file on disk to text. The dev backend picks
// one per provider value.
type Transcriber interface {
	Transcript(ctx context.Context, inputFilePath string) (string, error)
}

// DemoTranscript is what the mock provider returns for every file.
const DemoTranscript = "This is a mock transcription generated for demo purposes."

// MockTranscriber returns fixed text without touching the audio.
type MockTranscriber struct {
	Text string
}

// NewMockTranscriber creates a MockTranscriber returning DemoTranscript.
func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{Text: DemoTranscript}
}

// Transcript implements Transcriber.
func (m *MockTranscriber) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return m.Text, nil
}
