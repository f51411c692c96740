package booth

import (
	"github.com/cekatlabs/booth-core/core/events"
)

type BoothOption func(*Booth)

// WithSessionDialer sets the conversation session dialer.
func WithSessionDialer(dialer SessionDialer) BoothOption {
	return func(b *Booth) { b.dialer = dialer }
}

// WithSignedURLProvider sets the connection bootstrap client.
func WithSignedURLProvider(provider SignedURLProvider) BoothOption {
	return func(b *Booth) { b.signedURLs = provider }
}

// WithPlaybackDriver sets the driver the selected assets are handed to.
func WithPlaybackDriver(driver PlaybackDriver) BoothOption {
	return func(b *Booth) { b.playback = driver }
}

// WithMicrophoneGate sets the recording permission gate checked before a
// conversation starts.
func WithMicrophoneGate(gate MicrophoneGate) BoothOption {
	return func(b *Booth) { b.microphone = gate }
}

// WithReportClient sets the client behind the report side effects.
func WithReportClient(client ReportClient) BoothOption {
	return func(b *Booth) { b.reportClient = client }
}

// WithEventListener registers a listener for every event the booth emits.
func WithEventListener(listener func(events.Event)) BoothOption {
	return func(b *Booth) {
		if listener != nil {
			b.listeners = append(b.listeners, listener)
		}
	}
}

// RunOptions carries the per-conversation callbacks.
type RunOptions struct {
	onConnect       func()
	onDisconnect    func()
	onError         func(err error)
	onModeChanged   func(mode string)
	onStatusChanged func(status string)
	onVolumeChanged func(level float64)
}

type RunOption func(*RunOptions)

func WithConnectCallback(callback func()) RunOption {
	return func(o *RunOptions) { o.onConnect = callback }
}

func WithDisconnectCallback(callback func()) RunOption {
	return func(o *RunOptions) { o.onDisconnect = callback }
}

func WithErrorCallback(callback func(err error)) RunOption {
	return func(o *RunOptions) { o.onError = callback }
}

func WithModeChangedCallback(callback func(mode string)) RunOption {
	return func(o *RunOptions) { o.onModeChanged = callback }
}

func WithStatusChangedCallback(callback func(status string)) RunOption {
	return func(o *RunOptions) { o.onStatusChanged = callback }
}

func WithVolumeChangedCallback(callback func(level float64)) RunOption {
	return func(o *RunOptions) { o.onVolumeChanged = callback }
}
