package recorder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	apperrors "stt-frontend/internal/app/errors"
	"stt-frontend/internal/app/model"
)

const (
	// ContainerMIMEType is the container every recording is wrapped in.
	ContainerMIMEType = "audio/wav"
	fileExtension     = ".wav"
)

// Format describes the PCM samples a stream produces.
type Format struct {
	SampleRate int
	Channels   int
}

// Device acquires a capture stream. Open may block while the platform asks
// for microphone permission.
type Device interface {
	Open(ctx context.Context) (Stream, error)
}

// Stream is an acquired capture device. Close releases the device and must
// be safe to call more than once.
type Stream interface {
	Format() Format
	// Read returns the next chunk of interleaved 16-bit samples. An empty
	// chunk means no data was ready.
	Read() ([]int16, error)
	Close() error
}

// SubmitFunc receives the finished recording.
type SubmitFunc func(ctx context.Context, file *model.AudioFile) error

// Recorder captures one microphone session at a time.
type Recorder struct {
	device   Device
	onSubmit SubmitFunc
	logger   *zap.Logger
	now      func() time.Time

	mu       sync.Mutex
	session  *session
	starting bool
	// closed is set by Close while a device is still opening, so the stream
	// is released as soon as Open returns.
	closed bool
}

type session struct {
	stream  Stream
	stop    chan struct{}
	done    chan struct{}
	chunks  [][]int16
	readErr error
}

// New creates a recorder that hands finished recordings to onSubmit.
func New(device Device, onSubmit SubmitFunc, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{
		device:   device,
		onSubmit: onSubmit,
		logger:   logger.Named("recorder"),
		now:      time.Now,
	}
}

// Recording reports whether a session is active.
func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session != nil
}

// Start acquires the device and begins capturing. Device and permission
// errors are returned to the caller. The lock is not held while the device
// opens, which may wait on a permission prompt.
func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.session != nil || r.starting {
		r.mu.Unlock()
		return apperrors.ErrAlreadyRecording
	}
	r.starting = true
	r.closed = false
	r.mu.Unlock()

	stream, err := r.device.Open(ctx)

	r.mu.Lock()
	r.starting = false
	closed := r.closed
	if err != nil {
		r.mu.Unlock()
		return fmt.Errorf("failed to open capture device: %w", err)
	}
	if closed {
		r.mu.Unlock()
		r.logger.Info("Recorder closed while the device was opening")
		_ = stream.Close()
		return apperrors.ErrRecorderClosed
	}

	sess := &session{
		stream: stream,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	r.session = sess
	r.mu.Unlock()
	go sess.capture()

	r.logger.Info("Recording started",
		zap.Int("sample_rate", stream.Format().SampleRate),
		zap.Int("channels", stream.Format().Channels),
	)
	return nil
}

// Stop finalizes the session into a file, releases the device and invokes
// the submission callback. Stopping an idle recorder is a no-op.
func (r *Recorder) Stop(ctx context.Context) error {
	s := r.detach()
	if s == nil {
		return nil
	}

	file, err := s.finish(r.now())
	if err != nil {
		return err
	}

	r.logger.Info("Recording finished", zap.String("file", file.Name))
	if r.onSubmit == nil {
		return nil
	}
	return r.onSubmit(ctx, file)
}

// Close stops an active session without submitting it. A device still
// opening is released once Open returns.
func (r *Recorder) Close() error {
	r.mu.Lock()
	if r.starting {
		r.closed = true
	}
	r.mu.Unlock()

	s := r.detach()
	if s == nil {
		return nil
	}
	close(s.stop)
	<-s.done
	r.logger.Info("Recording discarded on teardown")
	return s.stream.Close()
}

func (r *Recorder) detach() *session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.session
	r.session = nil
	return s
}

// capture appends chunks until stop is closed or the stream fails.
func (s *session) capture() {
	defer close(s.done)
	for {
		select {
		case <-s.stop:
			return
		default:
		}

		chunk, err := s.stream.Read()
		if err != nil {
			s.readErr = err
			return
		}
		if len(chunk) > 0 {
			s.chunks = append(s.chunks, chunk)
		}
	}
}

// finish ends capture, releases the device and encodes the recording.
func (s *session) finish(now time.Time) (*model.AudioFile, error) {
	close(s.stop)
	<-s.done

	format := s.stream.Format()
	if err := s.stream.Close(); err != nil {
		return nil, fmt.Errorf("failed to release capture device: %w", err)
	}
	if s.readErr != nil {
		return nil, fmt.Errorf("capture failed: %w", s.readErr)
	}

	data, err := encodeWAV(s.chunks, format)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("rec-%d%s", now.UnixMilli(), fileExtension)
	return model.NewAudioFile(name, ContainerMIMEType, data), nil
}
