package shell

import (
	"context"
	"net/url"
	"os"
	"strings"

	apperrors "stt-frontend/internal/app/errors"
	"stt-frontend/internal/app/model"
)

// ParseDroppedPaths splits the text a terminal pastes when files are dragged
// onto it. Terminals quote or backslash-escape paths with spaces, and some
// paste file:// URIs.
func ParseDroppedPaths(text string) []string {
	var (
		paths   []string
		current strings.Builder
		quote   rune
		escaped bool
		started bool
	)

	flush := func() {
		if started {
			paths = append(paths, normalizeDroppedPath(current.String()))
		}
		current.Reset()
		started = false
	}

	for _, r := range text {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			started = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			started = true
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		default:
			current.WriteRune(r)
			started = true
		}
	}
	flush()

	return paths
}

func normalizeDroppedPath(p string) string {
	if strings.HasPrefix(p, "file://") {
		if u, err := url.Parse(p); err == nil && u.Path != "" {
			return u.Path
		}
	}
	return p
}

// LooksLikeDrop reports whether pasted text is one or more existing files.
func LooksLikeDrop(text string) bool {
	paths := ParseDroppedPaths(text)
	if len(paths) == 0 {
		return false
	}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			return false
		}
	}
	return true
}

// DropPaths submits the first dropped path; the others are not read.
func (s *Shell) DropPaths(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		s.DragLeave()
		return nil
	}

	file, err := model.OpenAudioFile(paths[0])
	if err != nil {
		s.DragLeave()
		err = apperrors.Wrap(apperrors.ErrFileNotFound, err.Error())
		s.ReportError(err)
		return err
	}
	return s.Drop(ctx, []*model.AudioFile{file})
}

// Upload reads a picked file and submits it. Like the picker's
// `audio/*,video/*` filter, other media types are refused.
func (s *Shell) Upload(ctx context.Context, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	if parsed := ParseDroppedPaths(path); len(parsed) == 1 {
		path = parsed[0]
	}

	file, err := model.OpenAudioFile(path)
	if err != nil {
		err = apperrors.Wrap(apperrors.ErrFileNotFound, err.Error())
		s.ReportError(err)
		return err
	}
	if !model.IsAudioOrVideo(file.MIMEType) {
		err = apperrors.Wrapf(apperrors.ErrNotAudio, "%s (%s)", file.Name, file.MIMEType)
		s.ReportError(err)
		return err
	}
	return s.Submit(ctx, file)
}
