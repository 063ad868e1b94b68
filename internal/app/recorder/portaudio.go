package recorder

import (
	"context"
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"

	apperrors "stt-frontend/internal/app/errors"
)

// PortAudioDevice captures from the default input device.
type PortAudioDevice struct {
	SampleRate      int
	Channels        int
	FramesPerBuffer int
}

// NewPortAudioDevice returns a 16 kHz mono capture device.
func NewPortAudioDevice() *PortAudioDevice {
	return &PortAudioDevice{
		SampleRate:      16000,
		Channels:        1,
		FramesPerBuffer: 1024,
	}
}

// Open initializes PortAudio and starts the default input stream.
func (d *PortAudioDevice) Open(ctx context.Context) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := portaudio.Initialize(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrNoCaptureDevice, fmt.Sprintf("portaudio init failed: %v", err))
	}

	in := make([]int16, d.FramesPerBuffer*d.Channels)
	stream, err := portaudio.OpenDefaultStream(d.Channels, 0, float64(d.SampleRate), d.FramesPerBuffer, in)
	if err != nil {
		portaudio.Terminate()
		return nil, apperrors.Wrap(apperrors.ErrNoCaptureDevice, fmt.Sprintf("open stream failed: %v", err))
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("start stream failed: %w", err)
	}

	return &portAudioStream{
		stream: stream,
		in:     in,
		format: Format{SampleRate: d.SampleRate, Channels: d.Channels},
	}, nil
}

type portAudioStream struct {
	stream *portaudio.Stream
	in     []int16
	format Format
	once   sync.Once
}

func (s *portAudioStream) Format() Format {
	return s.format
}

func (s *portAudioStream) Read() ([]int16, error) {
	if err := s.stream.Read(); err != nil {
		// overflow drops samples but keeps the session alive
		if err == portaudio.InputOverflowed {
			return nil, nil
		}
		return nil, err
	}
	chunk := make([]int16, len(s.in))
	copy(chunk, s.in)
	return chunk, nil
}

// Close stops the stream and releases PortAudio; later calls are no-ops.
func (s *portAudioStream) Close() error {
	var err error
	s.once.Do(func() {
		if stopErr := s.stream.Stop(); stopErr != nil {
			err = stopErr
		}
		if closeErr := s.stream.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		if termErr := portaudio.Terminate(); termErr != nil && err == nil {
			err = termErr
		}
	})
	return err
}
