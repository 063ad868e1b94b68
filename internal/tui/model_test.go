package tui

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stt-frontend/internal/app/card"
	"stt-frontend/internal/app/model"
	"stt-frontend/internal/app/shell"
)

type stubClient struct {
	mu        sync.Mutex
	items     []model.Transcript
	submitted []string
	deleted   []string
}

func (c *stubClient) ListTranscriptions(ctx context.Context) ([]model.Transcript, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.Transcript(nil), c.items...), nil
}

func (c *stubClient) Transcribe(ctx context.Context, file *model.AudioFile, provider string) (*model.Transcript, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitted = append(c.submitted, file.Name)
	return &model.Transcript{ID: "new", Text: "from " + file.Name, Provider: provider}, nil
}

func (c *stubClient) DeleteTranscription(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, id)
	return nil
}

type fakeClipboard struct {
	text string
}

func (c *fakeClipboard) WriteAll(text string) error {
	c.text = text
	return nil
}

func newTestModel(t *testing.T, items ...model.Transcript) (Model, *stubClient, *shell.Shell) {
	t.Helper()
	client := &stubClient{items: items}
	s := shell.New(client, nil, shell.Options{})
	t.Cleanup(func() { s.Close() })

	m := NewModel(context.Background(), s, Options{
		Clipboard:   &fakeClipboard{},
		DownloadDir: t.TempDir(),
	})
	t.Cleanup(m.unsubscribe)

	require.NoError(t, s.FetchHistory(context.Background()))
	next, _ := m.Update(stateChangedMsg{})
	return next.(Model), client, s
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func runCmd(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	done, ok := msg.(actionDoneMsg)
	require.True(t, ok, "expected actionDoneMsg, got %T", msg)
	require.NoError(t, done.err)
}

func TestModel_RendersHistory(t *testing.T) {
	m, _, _ := newTestModel(t,
		model.Transcript{ID: "b", Text: "hello there", Provider: "local"},
		model.Transcript{ID: "a", Text: "  ", Provider: "mock"},
	)

	view := m.View()
	assert.Contains(t, view, "hello there")
	assert.Contains(t, view, card.Placeholder)
	assert.Contains(t, view, "Local Whisper")
}

func TestModel_EmptyHistory(t *testing.T) {
	m, _, _ := newTestModel(t)
	assert.Contains(t, m.View(), shell.EmptyHistory)
}

func TestModel_DeleteSelected(t *testing.T) {
	m, client, s := newTestModel(t,
		model.Transcript{ID: "b", Text: "two"},
		model.Transcript{ID: "a", Text: "one"},
	)

	next, _ := m.Update(keyMsg("j"))
	m = next.(Model)
	_, cmd := m.Update(keyMsg("x"))
	runCmd(t, cmd)

	assert.Equal(t, []string{"a"}, client.deleted)
	items := s.Snapshot().Items
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].ID)
}

func TestModel_CopySelected(t *testing.T) {
	m, _, s := newTestModel(t, model.Transcript{ID: "a", Text: "copy me"})

	_, cmd := m.Update(keyMsg("c"))
	runCmd(t, cmd)

	assert.Equal(t, "copy me", m.opts.Clipboard.(*fakeClipboard).text)
	assert.Equal(t, copiedNotice, s.Snapshot().Notice)
}

func TestModel_CopyBlankIsNoop(t *testing.T) {
	m, _, s := newTestModel(t, model.Transcript{ID: "a", Text: " \n"})

	_, cmd := m.Update(keyMsg("c"))
	runCmd(t, cmd)

	assert.Empty(t, m.opts.Clipboard.(*fakeClipboard).text)
	assert.Empty(t, s.Snapshot().Notice)
}

func TestModel_SaveSelected(t *testing.T) {
	m, _, _ := newTestModel(t, model.Transcript{ID: "abc", Text: "saved text"})

	_, cmd := m.Update(keyMsg("s"))
	runCmd(t, cmd)

	data, err := os.ReadFile(filepath.Join(m.opts.DownloadDir, "transcription-abc.txt"))
	require.NoError(t, err)
	assert.Equal(t, "saved text", string(data))
}

func TestModel_PasteIsDrop(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.wav")
	second := filepath.Join(dir, "second.wav")
	for _, p := range []string{first, second} {
		require.NoError(t, os.WriteFile(p, []byte("RIFF\x24\x00\x00\x00WAVEfmt "), 0o644))
	}

	m, client, s := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(first + " " + second), Paste: true})
	runCmd(t, cmd)

	assert.Equal(t, []string{"first.wav"}, client.submitted)
	st := s.Snapshot()
	assert.False(t, st.DraggingOver)
	require.Len(t, st.Items, 1)
	assert.Equal(t, "new", st.Items[0].ID)
}

func TestModel_PasteOfPlainTextIgnored(t *testing.T) {
	m, client, _ := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("not a file"), Paste: true})
	assert.Nil(t, cmd)
	assert.Empty(t, client.submitted)
}

func TestModel_UploadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF\x24\x00\x00\x00WAVEfmt "), 0o644))

	m, client, _ := newTestModel(t)
	next, _ := m.Update(keyMsg("u"))
	m = next.(Model)
	require.True(t, m.inputting)

	m.input.SetValue(path)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	assert.False(t, m.inputting)
	runCmd(t, cmd)

	assert.Equal(t, []string{"clip.wav"}, client.submitted)
}

func TestModel_CycleProvider(t *testing.T) {
	m, _, s := newTestModel(t)
	_, cmd := m.Update(keyMsg("p"))
	runCmd(t, cmd)
	assert.Equal(t, "mock", s.Snapshot().Provider)
}

func TestModel_NotifiesOnSuccess(t *testing.T) {
	m, _, s := newTestModel(t)
	var got []string
	m.opts.Notify = func(title, message string) error {
		got = append(got, message)
		return nil
	}

	require.NoError(t, s.Submit(context.Background(), model.NewAudioFile("a.wav", "audio/wav", nil)))
	next, cmd := m.Update(stateChangedMsg{})
	m = next.(Model)
	require.NotNil(t, cmd)

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	require.Len(t, batch, 2)

	// batch[0] waits for the next change; batch[1] sends the notification
	assert.Nil(t, batch[1]())
	assert.Equal(t, []string{shell.SuccessNotice}, got)
	assert.Contains(t, m.View(), shell.SuccessNotice)
}

func TestModel_Quit(t *testing.T) {
	m, _, _ := newTestModel(t)
	next, cmd := m.Update(keyMsg("q"))
	assert.True(t, next.(Model).Quitting())
	assert.NotNil(t, cmd)
}
