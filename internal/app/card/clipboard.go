package card

import "github.com/atotto/clipboard"

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

// WriteAll implements Clipboard.
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Available reports whether a clipboard backend exists on this system.
func (SystemClipboard) Available() bool {
	return !clipboard.Unsupported
}
