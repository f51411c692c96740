package booth

import (
	"errors"
	"testing"
	"time"
)

func TestPhoneCaptureConfirm(t *testing.T) {
	g := newPhoneCaptureGate(nil, nil)

	var sent string
	g.BindSession(func(text string) error {
		sent = text
		return nil
	}, nil)

	result := g.Open(PhoneCapturePrompt{Title: "Phone number"})
	g.SetValue("  08123456789  ")
	g.Submit()

	select {
	case res := <-result:
		if res.err != nil {
			t.Fatalf("expected confirmation, got error: %v", res.err)
		}
		if res.value != "08123456789" {
			t.Fatalf("expected trimmed value, got %q", res.value)
		}
	case <-time.After(time.Second):
		t.Fatal("expected capture to settle")
	}

	if sent != "08123456789" {
		t.Fatalf("expected value to be sent to the session, got %q", sent)
	}
	if g.View() != nil {
		t.Fatal("expected capture to be closed after confirmation")
	}
}

func TestPhoneCaptureWhitespaceSubmitKeepsGateOpen(t *testing.T) {
	g := newPhoneCaptureGate(nil, nil)
	g.BindSession(func(string) error { return nil }, nil)

	result := g.Open(PhoneCapturePrompt{})
	g.SetValue("   ")
	g.Submit()

	view := g.View()
	if view == nil {
		t.Fatal("expected capture to remain open")
	}
	if view.Error == "" {
		t.Fatal("expected an inline validation error")
	}
	select {
	case <-result:
		t.Fatal("expected the waiting handler to remain unsettled")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPhoneCaptureWithoutSendCapability(t *testing.T) {
	g := newPhoneCaptureGate(nil, nil)
	g.BindSession(nil, nil)

	result := g.Open(PhoneCapturePrompt{})
	g.SetValue("08123456789")
	g.Submit()

	view := g.View()
	if view == nil || view.Error == "" {
		t.Fatal("expected capture to remain open with a descriptive error")
	}
	select {
	case <-result:
		t.Fatal("expected the waiting handler to remain unsettled")
	case <-time.After(50 * time.Millisecond):
	}

	// The gate stays usable once a capable session is bound.
	g.BindSession(func(string) error { return nil }, nil)
	g.Submit()
	select {
	case res := <-result:
		if res.err != nil {
			t.Fatalf("expected confirmation after retry, got %v", res.err)
		}
	case <-time.After(time.Second):
		t.Fatal("expected capture to settle after retry")
	}
}

func TestPhoneCaptureCancel(t *testing.T) {
	g := newPhoneCaptureGate(nil, nil)

	result := g.Open(PhoneCapturePrompt{})
	g.Cancel()

	select {
	case res := <-result:
		if !errors.Is(res.err, ErrCaptureCancelled) {
			t.Fatalf("expected cancellation, got %v", res.err)
		}
	case <-time.After(time.Second):
		t.Fatal("expected capture to settle")
	}
	if g.View() != nil {
		t.Fatal("expected capture to be closed after cancel")
	}
}

func TestPhoneCaptureTeardownRejectsPending(t *testing.T) {
	g := newPhoneCaptureGate(nil, nil)

	result := g.Open(PhoneCapturePrompt{})
	g.Teardown()

	select {
	case res := <-result:
		if !errors.Is(res.err, ErrCaptureTornDown) {
			t.Fatalf("expected teardown rejection, got %v", res.err)
		}
	case <-time.After(time.Second):
		t.Fatal("expected capture to settle")
	}
	if g.View() != nil {
		t.Fatal("expected capture state to return to closed")
	}
}

func TestPhoneCaptureSecondOpenSupersedesFirst(t *testing.T) {
	g := newPhoneCaptureGate(nil, nil)
	g.BindSession(func(string) error { return nil }, nil)

	first := g.Open(PhoneCapturePrompt{Title: "first"})
	second := g.Open(PhoneCapturePrompt{Title: "second"})

	select {
	case res := <-first:
		if !errors.Is(res.err, ErrCaptureSuperseded) {
			t.Fatalf("expected supersession, got %v", res.err)
		}
	case <-time.After(time.Second):
		t.Fatal("expected first capture to be rejected")
	}

	g.SetValue("08123456789")
	g.Submit()
	select {
	case res := <-second:
		if res.err != nil || res.value != "08123456789" {
			t.Fatalf("expected second capture to confirm, got %+v", res)
		}
	case <-time.After(time.Second):
		t.Fatal("expected second capture to settle")
	}
}

func TestPhoneCaptureKeystrokeClearsErrorAndPingsActivity(t *testing.T) {
	g := newPhoneCaptureGate(nil, nil)

	pinged := 0
	g.BindSession(func(string) error { return nil }, func() { pinged++ })

	g.Open(PhoneCapturePrompt{})
	g.Submit()
	if view := g.View(); view == nil || view.Error == "" {
		t.Fatal("expected a validation error before typing")
	}

	g.SetValue("0")
	view := g.View()
	if view == nil || view.Error != "" {
		t.Fatal("expected keystroke to clear the validation error")
	}
	if pinged != 1 {
		t.Fatalf("expected one activity ping, got %d", pinged)
	}
}
