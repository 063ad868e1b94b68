package shell

import (
	"sync"
	"time"
)

// stopper is the part of *time.Timer the notice needs.
type stopper interface {
	Stop() bool
}

type afterFunc func(d time.Duration, f func()) stopper

func realAfterFunc(d time.Duration, f func()) stopper {
	return time.AfterFunc(d, f)
}

// Notice is a transient message that clears itself after a delay. A new
// Flash cancels the pending clear of the previous message, so a stale timer
// never wipes a newer notice.
type Notice struct {
	delay     time.Duration
	afterFunc afterFunc
	onChange  func()

	mu    sync.Mutex
	text  string
	gen   uint64
	timer stopper
}

// NewNotice creates a notice that calls onChange whenever its text changes.
func NewNotice(delay time.Duration, onChange func()) *Notice {
	if onChange == nil {
		onChange = func() {}
	}
	return &Notice{
		delay:     delay,
		afterFunc: realAfterFunc,
		onChange:  onChange,
	}
}

// Flash shows msg and schedules its removal.
func (n *Notice) Flash(msg string) {
	n.mu.Lock()
	n.text = msg
	n.gen++
	gen := n.gen
	if n.timer != nil {
		n.timer.Stop()
	}
	n.timer = n.afterFunc(n.delay, func() { n.expire(gen) })
	n.mu.Unlock()

	n.onChange()
}

// Text returns the message currently shown.
func (n *Notice) Text() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.text
}

// Stop cancels any pending clear and hides the message.
func (n *Notice) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.gen++
	n.text = ""
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}

func (n *Notice) expire(gen uint64) {
	n.mu.Lock()
	if gen != n.gen {
		n.mu.Unlock()
		return
	}
	n.text = ""
	n.timer = nil
	n.mu.Unlock()

	n.onChange()
}
