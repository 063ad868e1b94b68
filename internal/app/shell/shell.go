package shell

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"stt-frontend/internal/app/api"
	"stt-frontend/internal/app/card"
	apperrors "stt-frontend/internal/app/errors"
	"stt-frontend/internal/app/metrics"
	"stt-frontend/internal/app/model"
	"stt-frontend/internal/config"
)

const (
	// SuccessNotice is flashed after a successful transcription.
	SuccessNotice = "Transcribed successfully"
	// EmptyHistory is shown when there are no transcripts.
	EmptyHistory = "No transcriptions yet. Upload a file or record audio to begin."
)

// State is a snapshot of everything the presentation layer renders.
type State struct {
	Items        []model.Transcript
	Provider     string
	Busy         bool
	Error        string
	Notice       string
	DraggingOver bool
	Recording    bool
}

// Recorder is the microphone control the shell drives.
type Recorder interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Recording() bool
	Close() error
}

// Options configures optional shell collaborators.
type Options struct {
	NoticeDelay time.Duration
	Metrics     *metrics.ShellMetrics
	Logger      *zap.Logger
}

// Shell owns the transcript list and UI flags and wires user actions to the
// backend. It is safe for concurrent use; the lock is never held across
// network calls.
type Shell struct {
	client   api.Client
	catalog  *config.ProviderCatalog
	metrics  *metrics.ShellMetrics
	logger   *zap.Logger
	notice   *Notice
	recorder Recorder

	mu        sync.Mutex
	state     State
	listeners map[int]func(State)
	nextID    int
}

// New creates a shell with the catalog's default provider selected.
func New(client api.Client, catalog *config.ProviderCatalog, opts Options) *Shell {
	if catalog == nil {
		catalog = config.DefaultProviderCatalog()
	}
	if opts.NoticeDelay <= 0 {
		opts.NoticeDelay = config.NoticeDelay
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	s := &Shell{
		client:    client,
		catalog:   catalog,
		metrics:   opts.Metrics,
		logger:    opts.Logger.Named("shell"),
		listeners: make(map[int]func(State)),
		state: State{
			Items:    []model.Transcript{},
			Provider: catalog.Default,
		},
	}
	s.notice = NewNotice(opts.NoticeDelay, s.changed)
	return s
}

// SetRecorder attaches the microphone control.
func (s *Shell) SetRecorder(r Recorder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recorder = r
}

// Catalog returns the provider catalog.
func (s *Shell) Catalog() *config.ProviderCatalog {
	return s.catalog
}

// Snapshot returns a copy of the current state.
func (s *Shell) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Shell) snapshotLocked() State {
	st := s.state
	st.Items = append([]model.Transcript(nil), s.state.Items...)
	st.Notice = s.notice.Text()
	return st
}

// Subscribe registers fn to receive a snapshot after every change.
func (s *Shell) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// update mutates state under the lock and then notifies listeners.
func (s *Shell) update(fn func(st *State)) {
	s.mu.Lock()
	fn(&s.state)
	s.mu.Unlock()
	s.changed()
}

func (s *Shell) changed() {
	s.mu.Lock()
	snap := s.snapshotLocked()
	listeners := lo.Values(s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}

// FetchHistory replaces the list with the backend's history.
func (s *Shell) FetchHistory(ctx context.Context) error {
	items, err := s.client.ListTranscriptions(ctx)
	if err != nil {
		s.logger.Warn("Failed to fetch history", zap.Error(err))
		s.recordFetch(metrics.OutcomeFailure)
		s.update(func(st *State) { st.Error = api.Message(err) })
		return err
	}

	s.recordFetch(metrics.OutcomeSuccess)
	s.update(func(st *State) { st.Items = items })
	return nil
}

// Submit posts file with the selected provider. A nil file is a no-op and a
// submission while another is outstanding is rejected with ErrBusy and
// reported in the banner.
func (s *Shell) Submit(ctx context.Context, file *model.AudioFile) error {
	if file == nil {
		return nil
	}

	s.mu.Lock()
	provider := s.state.Provider
	if s.state.Busy {
		s.state.Error = fmt.Sprintf("%s was not sent: %s", file.Name, apperrors.ErrBusy.Error())
		s.mu.Unlock()
		s.changed()
		s.logger.Warn("Submission rejected while busy", zap.String("file", file.Name))
		s.recordSubmission(provider, metrics.OutcomeRejected, 0)
		return apperrors.ErrBusy
	}
	s.state.Error = ""
	s.state.Busy = true
	s.mu.Unlock()
	s.changed()

	if s.metrics != nil {
		s.metrics.SubmissionStarted()
	}
	s.logger.Info("Submitting audio",
		zap.String("file", file.Name),
		zap.String("mime_type", file.MIMEType),
		zap.String("provider", provider),
	)

	start := time.Now()
	transcript, err := s.client.Transcribe(ctx, file, provider)
	elapsed := time.Since(start)

	if err != nil {
		s.logger.Warn("Transcription failed", zap.String("provider", provider), zap.Error(err))
		s.recordSubmission(provider, metrics.OutcomeFailure, elapsed)
		s.update(func(st *State) {
			st.Error = api.Message(err)
			st.Busy = false
		})
		return err
	}

	s.recordSubmission(provider, metrics.OutcomeSuccess, elapsed)
	s.update(func(st *State) {
		st.Items = append([]model.Transcript{*transcript}, st.Items...)
		st.Busy = false
	})
	s.notice.Flash(SuccessNotice)
	return nil
}

// Delete removes a transcript remotely and then from the local list.
func (s *Shell) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteTranscription(ctx, id); err != nil {
		s.logger.Warn("Failed to delete transcription", zap.String("id", id), zap.Error(err))
		s.recordDelete(metrics.OutcomeFailure)
		s.update(func(st *State) { st.Error = api.Message(err) })
		return err
	}

	s.recordDelete(metrics.OutcomeSuccess)
	s.update(func(st *State) {
		st.Items = lo.Filter(st.Items, func(t model.Transcript, _ int) bool { return t.ID != id })
	})
	return nil
}

// SetProvider selects the provider sent with every submission. The
// selector is disabled while busy.
func (s *Shell) SetProvider(value string) error {
	if !s.catalog.IsEnabled(value) {
		return apperrors.Wrapf(apperrors.ErrUnknownProvider, "provider %q", value)
	}

	s.mu.Lock()
	if s.state.Busy {
		s.mu.Unlock()
		return apperrors.ErrBusy
	}
	s.state.Provider = value
	s.mu.Unlock()
	s.changed()
	return nil
}

// CycleProvider selects the next enabled provider.
func (s *Shell) CycleProvider() error {
	return s.SetProvider(s.catalog.Next(s.Snapshot().Provider))
}

// DragOver marks the drop zone as hovered.
func (s *Shell) DragOver() {
	s.update(func(st *State) { st.DraggingOver = true })
}

// DragLeave clears the hover mark.
func (s *Shell) DragLeave() {
	s.update(func(st *State) { st.DraggingOver = false })
}

// Drop submits the first dropped file and ignores the rest.
func (s *Shell) Drop(ctx context.Context, files []*model.AudioFile) error {
	s.DragLeave()
	if len(files) == 0 {
		return nil
	}
	if len(files) > 1 {
		s.logger.Debug("Ignoring extra dropped files", zap.Int("ignored", len(files)-1))
	}
	return s.Submit(ctx, files[0])
}

// ToggleRecording starts a recording, or stops the active one and submits it.
func (s *Shell) ToggleRecording(ctx context.Context) error {
	s.mu.Lock()
	rec := s.recorder
	busy := s.state.Busy
	s.mu.Unlock()

	if rec == nil {
		return apperrors.ErrNoCaptureDevice
	}

	if rec.Recording() {
		s.update(func(st *State) { st.Recording = false })
		err := rec.Stop(ctx)
		if err != nil && !errors.Is(err, apperrors.ErrBusy) {
			s.update(func(st *State) {
				if st.Error == "" {
					st.Error = err.Error()
				}
			})
		}
		return err
	}

	if busy {
		return apperrors.ErrBusy
	}
	if err := rec.Start(ctx); err != nil {
		s.logger.Warn("Failed to start recording", zap.Error(err))
		s.update(func(st *State) { st.Error = err.Error() })
		return err
	}
	s.update(func(st *State) { st.Recording = true })
	return nil
}

// DismissError hides the error banner.
func (s *Shell) DismissError() {
	s.update(func(st *State) { st.Error = "" })
}

// ReportError shows msg in the error banner for failures that happen
// outside the shell, such as an unreadable upload path.
func (s *Shell) ReportError(err error) {
	if err == nil {
		return
	}
	s.update(func(st *State) { st.Error = err.Error() })
}

// Flash shows a transient notice.
func (s *Shell) Flash(msg string) {
	s.notice.Flash(msg)
}

// Cards builds one card per transcript, newest first. Card deletes go
// through Delete with ctx.
func (s *Shell) Cards(ctx context.Context) []*card.Card {
	items := s.Snapshot().Items
	return lo.Map(items, func(t model.Transcript, _ int) *card.Card {
		return card.New(t, func(id string) error { return s.Delete(ctx, id) })
	})
}

// Card returns the card for id.
func (s *Shell) Card(ctx context.Context, id string) (*card.Card, error) {
	item, ok := lo.Find(s.Snapshot().Items, func(t model.Transcript) bool { return t.ID == id })
	if !ok {
		return nil, apperrors.NotFound("transcription", id)
	}
	return card.New(item, func(id string) error { return s.Delete(ctx, id) }), nil
}

// Close releases the microphone and cancels the pending notice clear.
func (s *Shell) Close() error {
	s.notice.Stop()

	s.mu.Lock()
	rec := s.recorder
	s.mu.Unlock()
	if rec == nil {
		return nil
	}
	if err := rec.Close(); err != nil {
		return fmt.Errorf("failed to release recorder: %w", err)
	}
	return nil
}

func (s *Shell) recordSubmission(provider, outcome string, elapsed time.Duration) {
	if s.metrics != nil {
		s.metrics.RecordSubmission(provider, outcome, elapsed)
	}
}

func (s *Shell) recordDelete(outcome string) {
	if s.metrics != nil {
		s.metrics.RecordDelete(outcome)
	}
}

func (s *Shell) recordFetch(outcome string) {
	if s.metrics != nil {
		s.metrics.RecordFetch(outcome)
	}
}
