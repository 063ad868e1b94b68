package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gen2brain/beeep"
	"go.uber.org/zap"

	"stt-frontend/internal/app/card"
	"stt-frontend/internal/app/shell"
)

const (
	copiedNotice = "Copied to clipboard"
	notifyTitle  = "Speech Transcriber"
)

// Notifier shows a desktop notification.
type Notifier func(title, message string) error

// DesktopNotifier sends notifications through the OS notification center.
func DesktopNotifier(title, message string) error {
	return beeep.Notify(title, message, "")
}

// Options configures the terminal front end.
type Options struct {
	Clipboard   card.Clipboard
	DownloadDir string
	// Notify is called after a successful transcription; nil disables it.
	Notify Notifier
	Logger *zap.Logger
}

// stateChangedMsg signals that the shell state moved on.
type stateChangedMsg struct{}

// actionDoneMsg is sent when a background shell action returns.
type actionDoneMsg struct {
	action string
	err    error
}

// Model is the Bubble Tea model rendering the application shell.
type Model struct {
	ctx         context.Context
	shell       *shell.Shell
	changes     chan struct{}
	unsubscribe func()
	opts        Options
	logger      *zap.Logger
	now         func() time.Time

	state    shell.State
	selected int

	input     textinput.Model
	inputting bool
	spinner   spinner.Model

	width    int
	height   int
	quitting bool
}

// NewModel subscribes to s and returns the initial model.
func NewModel(ctx context.Context, s *shell.Shell, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = card.SystemClipboard{}
	}

	changes := make(chan struct{}, 1)
	unsubscribe := s.Subscribe(func(shell.State) {
		select {
		case changes <- struct{}{}:
		default:
		}
	})

	ti := textinput.New()
	ti.Placeholder = "/path/to/audio.wav"
	ti.Prompt = "upload › "
	ti.CharLimit = 1024
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorSecondary)

	return Model{
		ctx:         ctx,
		shell:       s,
		changes:     changes,
		unsubscribe: unsubscribe,
		opts:        opts,
		logger:      opts.Logger.Named("tui"),
		now:         time.Now,
		state:       s.Snapshot(),
		input:       ti,
		spinner:     sp,
		width:       80,
		height:      24,
	}
}

// Init starts the spinner, the change listener and the history fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		waitForChange(m.changes),
		m.do("fetch", m.shell.FetchHistory),
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(20, m.width-20)
		return m, nil

	case stateChangedMsg:
		prev := m.state
		m.state = m.shell.Snapshot()
		m.selected = clamp(m.selected, len(m.state.Items))
		cmds := []tea.Cmd{waitForChange(m.changes)}
		if m.state.Notice == shell.SuccessNotice && prev.Notice != shell.SuccessNotice {
			cmds = append(cmds, m.notify(shell.SuccessNotice))
		}
		return m, tea.Batch(cmds...)

	case actionDoneMsg:
		if msg.err != nil {
			m.logger.Debug("Action failed", zap.String("action", msg.action), zap.Error(msg.err))
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.inputting {
			return m.handleInput(msg)
		}
		if msg.Paste {
			return m.handlePaste(string(msg.Runes))
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.state.Items)-1 {
			m.selected++
		}

	case "r":
		return m, m.do("record", m.shell.ToggleRecording)

	case "u":
		if m.state.Busy {
			return m, nil
		}
		m.inputting = true
		m.input.SetValue("")
		return m, m.input.Focus()

	case "p":
		if m.state.Busy {
			return m, nil
		}
		return m, m.do("provider", func(context.Context) error { return m.shell.CycleProvider() })

	case "esc":
		if m.state.Error != "" {
			return m, m.do("dismiss", func(context.Context) error {
				m.shell.DismissError()
				return nil
			})
		}

	case "c":
		if id, ok := m.selectedID(); ok {
			return m, m.do("copy", func(ctx context.Context) error { return m.copyCard(ctx, id) })
		}
	case "s":
		if id, ok := m.selectedID(); ok {
			return m, m.do("save", func(ctx context.Context) error { return m.saveCard(ctx, id) })
		}
	case "x":
		if id, ok := m.selectedID(); ok {
			return m, m.do("delete", func(ctx context.Context) error {
				c, err := m.shell.Card(ctx, id)
				if err != nil {
					return err
				}
				return c.Delete()
			})
		}
	}
	return m, nil
}

func (m Model) handleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.inputting = false
		m.input.Blur()
		return m, nil
	case "enter":
		path := m.input.Value()
		m.inputting = false
		m.input.Blur()
		return m, m.do("upload", func(ctx context.Context) error { return m.shell.Upload(ctx, path) })
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handlePaste treats a pasted list of existing files as a drop.
func (m Model) handlePaste(text string) (tea.Model, tea.Cmd) {
	if m.state.Busy || !shell.LooksLikeDrop(text) {
		return m, nil
	}
	paths := shell.ParseDroppedPaths(text)
	return m, m.do("drop", func(ctx context.Context) error {
		m.shell.DragOver()
		return m.shell.DropPaths(ctx, paths)
	})
}

func (m Model) copyCard(ctx context.Context, id string) error {
	c, err := m.shell.Card(ctx, id)
	if err != nil {
		return err
	}
	copied, err := c.Copy(m.opts.Clipboard)
	if err != nil {
		m.shell.ReportError(err)
		return err
	}
	if copied {
		m.shell.Flash(copiedNotice)
	}
	return nil
}

func (m Model) saveCard(ctx context.Context, id string) error {
	c, err := m.shell.Card(ctx, id)
	if err != nil {
		return err
	}
	path, err := c.Download(m.opts.DownloadDir, m.now())
	if err != nil {
		m.shell.ReportError(err)
		return err
	}
	m.shell.Flash("Saved " + path)
	return nil
}

func (m Model) selectedID() (string, bool) {
	if m.selected < 0 || m.selected >= len(m.state.Items) {
		return "", false
	}
	return m.state.Items[m.selected].ID, true
}

// do runs a shell action off the event loop. Shell listeners fire from the
// action goroutine, never from Update.
func (m Model) do(action string, fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return actionDoneMsg{action: action, err: fn(ctx)}
	}
}

func (m Model) notify(message string) tea.Cmd {
	notify := m.opts.Notify
	if notify == nil {
		return nil
	}
	logger := m.logger
	return func() tea.Msg {
		if err := notify(notifyTitle, message); err != nil {
			logger.Debug("Desktop notification failed", zap.Error(err))
		}
		return nil
	}
}

// waitForChange waits for the next shell change signal.
func waitForChange(ch chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return stateChangedMsg{}
	}
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool { return m.quitting }

// Run shows the terminal UI until the user quits, then releases the shell.
func Run(ctx context.Context, s *shell.Shell, opts Options) error {
	m := NewModel(ctx, s, opts)
	defer m.unsubscribe()
	defer s.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
