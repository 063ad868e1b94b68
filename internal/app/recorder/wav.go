package recorder

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const bitDepth = 16

// encodeWAV writes interleaved 16-bit chunks into a PCM WAV container.
func encodeWAV(chunks [][]int16, format Format) ([]byte, error) {
	total := 0
	for _, c := range chunks {
		total += len(c)
	}

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: format.Channels,
			SampleRate:  format.SampleRate,
		},
		Data:           make([]int, 0, total),
		SourceBitDepth: bitDepth,
	}
	for _, c := range chunks {
		for _, sample := range c {
			buf.Data = append(buf.Data, int(sample))
		}
	}

	out := &memFile{}
	enc := wav.NewEncoder(out, format.SampleRate, bitDepth, format.Channels, 1)
	if err := enc.Write(buf); err != nil {
		enc.Close()
		return nil, fmt.Errorf("failed to encode wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize wav: %w", err)
	}
	return out.buf, nil
}

// memFile is an in-memory io.WriteSeeker; the WAV encoder seeks back to
// patch chunk sizes on Close.
type memFile struct {
	buf []byte
	pos int
}

func (m *memFile) Write(p []byte) (int, error) {
	end := m.pos + len(p)
	if end > len(m.buf) {
		m.buf = append(m.buf, make([]byte, end-len(m.buf))...)
	}
	copy(m.buf[m.pos:], p)
	m.pos = end
	return len(p), nil
}

func (m *memFile) Seek(offset int64, whence int) (int64, error) {
	var base int
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = m.pos
	case io.SeekEnd:
		base = len(m.buf)
	default:
		return 0, errors.New("memfile: invalid whence")
	}
	next := base + int(offset)
	if next < 0 {
		return 0, errors.New("memfile: negative position")
	}
	m.pos = next
	return int64(next), nil
}
