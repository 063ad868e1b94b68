package model

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// AudioFile is the transient payload handed from a capture source (upload,
// drop or recorder) to the outbound transcribe request.
type AudioFile struct {
	Name     string
	MIMEType string
	Data     io.Reader
}

// NewAudioFile wraps in-memory bytes, sniffing the MIME type when none is given.
func NewAudioFile(name, mimeType string, data []byte) *AudioFile {
	if mimeType == "" {
		mimeType = mimetype.Detect(data).String()
	}
	return &AudioFile{
		Name:     name,
		MIMEType: mimeType,
		Data:     bytes.NewReader(data),
	}
}

// OpenAudioFile reads a file from disk into an AudioFile.
func OpenAudioFile(path string) (*AudioFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return NewAudioFile(filepath.Base(path), "", data), nil
}

// IsAudioOrVideo mirrors the `audio/*,video/*` accept filter of the upload picker.
func IsAudioOrVideo(mimeType string) bool {
	base := strings.ToLower(strings.TrimSpace(strings.SplitN(mimeType, ";", 2)[0]))
	return strings.HasPrefix(base, "audio/") || strings.HasPrefix(base, "video/")
}
