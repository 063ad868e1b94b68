package card

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "stt-frontend/internal/app/errors"
	"stt-frontend/internal/app/model"
)

const (
	// Placeholder is shown instead of blank space for empty transcripts.
	Placeholder = "— no speech detected —"
	// DownloadContentType is the media type of a downloaded transcript.
	DownloadContentType = "text/plain; charset=utf-8"

	timestampLayout = "2006-01-02 15:04:05"
)

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// DeleteFunc performs the actual removal; the card does not know the backend.
type DeleteFunc func(id string) error

// Card renders one transcript and its local actions.
type Card struct {
	item     model.Transcript
	onDelete DeleteFunc
}

// New creates a card for item.
func New(item model.Transcript, onDelete DeleteFunc) *Card {
	return &Card{item: item, onDelete: onDelete}
}

// Item returns the transcript the card renders.
func (c *Card) Item() model.Transcript {
	return c.item
}

// Timestamp is the creation time in local time, empty when unknown.
func (c *Card) Timestamp() string {
	if c.item.CreatedAt.IsZero() {
		return ""
	}
	return c.item.CreatedAt.Local().Format(timestampLayout)
}

// Provider is the provider tag.
func (c *Card) Provider() string {
	return c.item.Provider
}

// Body is the transcript text, or the placeholder when there is none.
func (c *Card) Body() string {
	if !c.item.HasText() {
		return Placeholder
	}
	return c.item.Text
}

// Empty reports whether the card shows the placeholder.
func (c *Card) Empty() bool {
	return !c.item.HasText()
}

// Copy writes the text to the clipboard. It reports false and leaves the
// clipboard untouched when the text is empty or whitespace.
func (c *Card) Copy(clipboard Clipboard) (bool, error) {
	if !c.item.HasText() {
		return false, nil
	}
	if err := clipboard.WriteAll(c.item.Text); err != nil {
		return false, fmt.Errorf("failed to write clipboard: %w", err)
	}
	return true, nil
}

// pathSeparators keeps an id from escaping the download directory.
var pathSeparators = strings.NewReplacer("/", "_", "\\", "_")

// DownloadName is `transcription-<id>.txt`, using now when the id is empty.
// Path separators in the id become underscores.
func (c *Card) DownloadName(now time.Time) string {
	key := pathSeparators.Replace(c.item.ID)
	if key == "" {
		key = fmt.Sprintf("%d", now.UnixMilli())
	}
	return fmt.Sprintf("transcription-%s.txt", key)
}

// DownloadContent is the UTF-8 body of the downloaded file.
func (c *Card) DownloadContent() []byte {
	return []byte(c.item.Text)
}

// Download saves the text into dir and returns the written path.
func (c *Card) Download(dir string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperrors.Wrapf(apperrors.ErrFileWriteFailed, "create %s: %v", dir, err)
	}
	path := filepath.Join(dir, c.DownloadName(now))
	if err := os.WriteFile(path, c.DownloadContent(), 0o644); err != nil {
		return "", apperrors.Wrapf(apperrors.ErrFileWriteFailed, "write %s: %v", path, err)
	}
	return path, nil
}

// Delete hands the transcript id to the owner's delete handler.
func (c *Card) Delete() error {
	if c.onDelete == nil {
		return nil
	}
	return c.onDelete(c.item.ID)
}
