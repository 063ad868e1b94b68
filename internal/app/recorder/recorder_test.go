package recorder

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "stt-frontend/internal/app/errors"
	"stt-frontend/internal/app/model"
)

type fakeDevice struct {
	openErr error
	chunks  [][]int16
	readErr error
	// entered and release, when set, hold Open until release is closed.
	entered chan struct{}
	release chan struct{}

	mu     sync.Mutex
	opened int
	last   *fakeStream
}

func (d *fakeDevice) Open(ctx context.Context) (Stream, error) {
	if d.openErr != nil {
		return nil, d.openErr
	}
	if d.release != nil {
		close(d.entered)
		<-d.release
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.opened++
	d.last = &fakeStream{chunks: append([][]int16(nil), d.chunks...), readErr: d.readErr}
	return d.last, nil
}

type fakeStream struct {
	mu      sync.Mutex
	chunks  [][]int16
	readErr error
	closed  int
}

func (s *fakeStream) Format() Format { return Format{SampleRate: 16000, Channels: 1} }

func (s *fakeStream) Read() ([]int16, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.chunks) > 0 {
		c := s.chunks[0]
		s.chunks = s.chunks[1:]
		return c, nil
	}
	if s.readErr != nil {
		return nil, s.readErr
	}
	time.Sleep(time.Millisecond)
	return nil, nil
}

func (s *fakeStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
	return nil
}

func (s *fakeStream) closeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *fakeStream) drained() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.chunks) == 0
}

func TestRecorder_StartStop(t *testing.T) {
	device := &fakeDevice{chunks: [][]int16{{1, 2, 3}, {4, 5}}}

	var submitted *model.AudioFile
	rec := New(device, func(ctx context.Context, file *model.AudioFile) error {
		submitted = file
		return nil
	}, nil)
	rec.now = func() time.Time { return time.UnixMilli(1700000000123) }

	require.NoError(t, rec.Start(context.Background()))
	assert.True(t, rec.Recording())

	require.Eventually(t, device.last.drained, time.Second, time.Millisecond)
	require.NoError(t, rec.Stop(context.Background()))

	assert.False(t, rec.Recording())
	assert.Equal(t, 1, device.last.closeCount(), "device must be released on stop")

	require.NotNil(t, submitted)
	assert.Equal(t, "rec-1700000000123.wav", submitted.Name)
	assert.Equal(t, ContainerMIMEType, submitted.MIMEType)

	var data bytes.Buffer
	_, err := data.ReadFrom(submitted.Data)
	require.NoError(t, err)

	dec := wav.NewDecoder(bytes.NewReader(data.Bytes()))
	require.True(t, dec.IsValidFile())
	pcm, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, pcm.Data)
	assert.Equal(t, 16000, pcm.Format.SampleRate)
}

func TestRecorder_StartTwice(t *testing.T) {
	device := &fakeDevice{}
	rec := New(device, nil, nil)

	require.NoError(t, rec.Start(context.Background()))
	err := rec.Start(context.Background())
	assert.True(t, errors.Is(err, apperrors.ErrAlreadyRecording))
	assert.Equal(t, 1, device.opened)

	require.NoError(t, rec.Stop(context.Background()))
}

func TestRecorder_CloseWhileDeviceOpening(t *testing.T) {
	device := &fakeDevice{entered: make(chan struct{}), release: make(chan struct{})}
	rec := New(device, nil, nil)

	startErr := make(chan error, 1)
	go func() { startErr <- rec.Start(context.Background()) }()
	<-device.entered

	assert.False(t, rec.Recording())
	assert.True(t, errors.Is(rec.Start(context.Background()), apperrors.ErrAlreadyRecording))
	require.NoError(t, rec.Close())

	close(device.release)
	err := <-startErr
	assert.True(t, errors.Is(err, apperrors.ErrRecorderClosed))
	assert.False(t, rec.Recording())
	assert.Equal(t, 1, device.last.closeCount(), "a stream opened after teardown must be released")
}

func TestRecorder_OpenFailureIsReturned(t *testing.T) {
	denied := errors.New("permission denied")
	rec := New(&fakeDevice{openErr: denied}, nil, nil)

	err := rec.Start(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, denied))
	assert.False(t, rec.Recording())
}

func TestRecorder_StopIdleIsNoop(t *testing.T) {
	called := false
	rec := New(&fakeDevice{}, func(ctx context.Context, file *model.AudioFile) error {
		called = true
		return nil
	}, nil)

	assert.NoError(t, rec.Stop(context.Background()))
	assert.False(t, called)
}

func TestRecorder_CloseReleasesWithoutSubmitting(t *testing.T) {
	device := &fakeDevice{chunks: [][]int16{{7}}}
	called := false
	rec := New(device, func(ctx context.Context, file *model.AudioFile) error {
		called = true
		return nil
	}, nil)

	require.NoError(t, rec.Start(context.Background()))
	require.NoError(t, rec.Close())

	assert.False(t, rec.Recording())
	assert.False(t, called)
	assert.Equal(t, 1, device.last.closeCount())

	// a second teardown has nothing to release
	require.NoError(t, rec.Close())
	assert.Equal(t, 1, device.last.closeCount())
}

func TestRecorder_ReadFailureSurfacesOnStop(t *testing.T) {
	device := &fakeDevice{readErr: errors.New("device unplugged")}
	called := false
	rec := New(device, func(ctx context.Context, file *model.AudioFile) error {
		called = true
		return nil
	}, nil)

	require.NoError(t, rec.Start(context.Background()))
	err := rec.Stop(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "device unplugged")
	assert.False(t, called)
	assert.Equal(t, 1, device.last.closeCount())
}

func TestRecorder_SubmitErrorPropagates(t *testing.T) {
	rec := New(&fakeDevice{}, func(ctx context.Context, file *model.AudioFile) error {
		return errors.New("upload failed")
	}, nil)

	require.NoError(t, rec.Start(context.Background()))
	assert.EqualError(t, rec.Stop(context.Background()), "upload failed")
}

func TestMemFile_SeekAndOverwrite(t *testing.T) {
	m := &memFile{}
	m.Write([]byte("hello world"))
	_, err := m.Seek(0, 0)
	require.NoError(t, err)
	m.Write([]byte("HELLO"))
	assert.Equal(t, "HELLO world", string(m.buf))

	_, err = m.Seek(-1, 0)
	assert.Error(t, err)
}
