package booth

import (
	"errors"
	"strings"
	"sync"

	"github.com/cekatlabs/booth-core/core/events"
)

// Phone capture settlement reasons.
var (
	ErrCaptureCancelled  = errors.New("phone capture cancelled by user")
	ErrCaptureSuperseded = errors.New("phone capture superseded by a newer request")
	ErrCaptureTornDown   = errors.New("phone capture torn down with the conversation")
)

// PhoneCapturePrompt configures the capture modal.
type PhoneCapturePrompt struct {
	Title       string
	Description string
	Placeholder string
	Value       string
}

// PhoneCaptureView is the presentation snapshot of an open capture.
type PhoneCaptureView struct {
	PhoneCapturePrompt
	Submitting bool
	Error      string
}

type captureResult struct {
	value string
	err   error
}

type pendingCapture struct {
	prompt     PhoneCapturePrompt
	value      string
	submitting bool
	errText    string
	result     chan captureResult
}

// phoneCaptureGate serializes phone number capture: at most one capture is
// open at a time, settled by exactly one of confirm, cancel, supersession or
// conversation teardown. The waiting tool handler blocks on the result
// channel until the gate settles.
type phoneCaptureGate struct {
	mu      sync.Mutex
	pending *pendingCapture

	// Session capabilities, swapped per conversation. sendMessage may be
	// nil when the live session cannot deliver user messages.
	sendMessage  func(string) error
	pingActivity func()

	emit   eventEmitter
	notify func()
}

func newPhoneCaptureGate(emit eventEmitter, notify func()) *phoneCaptureGate {
	if emit == nil {
		emit = noopEventEmitter
	}
	if notify == nil {
		notify = func() {}
	}
	return &phoneCaptureGate{emit: emit, notify: notify}
}

// BindSession installs the live session's capabilities. Either may be nil.
func (g *phoneCaptureGate) BindSession(sendMessage func(string) error, pingActivity func()) {
	if g == nil {
		return
	}

	g.mu.Lock()
	g.sendMessage = sendMessage
	g.pingActivity = pingActivity
	g.mu.Unlock()
}

// Open starts a capture and returns the channel its settlement is delivered
// on. An already pending capture is rejected as superseded.
func (g *phoneCaptureGate) Open(prompt PhoneCapturePrompt) <-chan captureResult {
	result := make(chan captureResult, 1)
	if g == nil {
		result <- captureResult{err: ErrCaptureTornDown}
		return result
	}

	g.mu.Lock()
	if g.pending != nil {
		g.pending.result <- captureResult{err: ErrCaptureSuperseded}
		g.emit(events.NewPhoneCaptureSettled(events.PhoneCaptureSuperseded, ""))
	}
	g.pending = &pendingCapture{
		prompt: prompt,
		value:  prompt.Value,
		result: result,
	}
	g.mu.Unlock()

	g.emit(events.NewPhoneCaptureOpened(prompt.Title))
	g.notify()
	return result
}

// View returns the open capture's presentation snapshot, or nil.
func (g *phoneCaptureGate) View() *PhoneCaptureView {
	if g == nil {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pending == nil {
		return nil
	}
	return &PhoneCaptureView{
		PhoneCapturePrompt: g.pending.prompt,
		Submitting:         g.pending.submitting,
		Error:              g.pending.errText,
	}
}

// SetValue records a keystroke change, clears any displayed validation error
// and best-effort pings the session's activity signal.
func (g *phoneCaptureGate) SetValue(value string) {
	if g == nil {
		return
	}

	g.mu.Lock()
	if g.pending == nil {
		g.mu.Unlock()
		return
	}
	g.pending.value = value
	g.pending.prompt.Value = value
	g.pending.errText = ""
	ping := g.pingActivity
	g.mu.Unlock()

	if ping != nil {
		ping()
	}
	g.notify()
}

// Submit validates the entered value and, when the session can deliver it,
// settles the capture with the trimmed value. Validation failures leave the
// capture open with an inline error and the waiting handler unsettled.
func (g *phoneCaptureGate) Submit() {
	if g == nil {
		return
	}

	g.mu.Lock()
	pending := g.pending
	if pending == nil {
		g.mu.Unlock()
		return
	}

	value := strings.TrimSpace(pending.value)
	if value == "" {
		pending.errText = "Please enter a phone number."
		g.mu.Unlock()
		g.notify()
		return
	}
	if g.sendMessage == nil {
		pending.errText = "This session cannot receive messages. Please try again later."
		g.mu.Unlock()
		g.notify()
		return
	}

	pending.submitting = true
	send := g.sendMessage
	g.mu.Unlock()
	g.notify()

	if err := send(value); err != nil {
		g.mu.Lock()
		if g.pending == pending {
			pending.submitting = false
			pending.errText = "Failed to send the phone number: " + err.Error()
		}
		g.mu.Unlock()
		g.notify()
		return
	}

	g.mu.Lock()
	if g.pending != pending {
		g.mu.Unlock()
		return
	}
	g.pending = nil
	g.mu.Unlock()

	pending.result <- captureResult{value: value}
	g.emit(events.NewPhoneCaptureSettled(events.PhoneCaptureConfirmed, value))
	g.notify()
}

// Cancel settles the capture with a cancellation reason.
func (g *phoneCaptureGate) Cancel() {
	g.settle(ErrCaptureCancelled, events.PhoneCaptureCancelled)
}

// Teardown settles any open capture when the conversation session disappears.
func (g *phoneCaptureGate) Teardown() {
	g.settle(ErrCaptureTornDown, events.PhoneCaptureTornDown)
}

func (g *phoneCaptureGate) settle(reason error, outcome string) {
	if g == nil {
		return
	}

	g.mu.Lock()
	pending := g.pending
	g.pending = nil
	g.mu.Unlock()

	if pending == nil {
		return
	}
	pending.result <- captureResult{err: reason}
	g.emit(events.NewPhoneCaptureSettled(outcome, ""))
	g.notify()
}
