package booth

import (
	"context"

	"github.com/cekatlabs/booth-core/core/tools"
)

// Session is the live conversation handle. It is owned exclusively by the
// booth for its lifetime; tool handlers reach it only through the narrow
// capabilities below.
type Session interface {
	EndSession(ctx context.Context) error
}

// MessageSender is the optional capability of delivering a user message into
// the conversation.
type MessageSender interface {
	SendUserMessage(text string) error
}

// ActivityPinger is the optional capability of signalling user activity.
type ActivityPinger interface {
	SendUserActivity()
}

// SessionCallbacks are the event hooks a dialed session drives. All are
// optional; events are delivered in the order the session emits them.
type SessionCallbacks struct {
	OnConnect      func()
	OnDisconnect   func()
	OnError        func(err error)
	OnModeChange   func(mode string)
	OnStatusChange func(status string)
	OnVolumeChange func(level float64)
}

// Conversation modes the video state machine distinguishes. Any other mode
// value maps to idle.
const (
	ModeSpeaking  = "speaking"
	ModeListening = "listening"
)

// SessionConfig carries everything a dialer needs to open a conversation:
// the signed connection URL, the booth's tool registry handed to the remote
// agent, and the event callbacks.
type SessionConfig struct {
	SignedURL string
	BoothID   string
	Tools     tools.Set
	Callbacks SessionCallbacks
}

// SessionDialer opens conversation sessions.
type SessionDialer interface {
	Dial(ctx context.Context, config SessionConfig) (Session, error)
}

// SignedURLProvider performs the connection bootstrap for a booth.
type SignedURLProvider interface {
	GetSignedURL(ctx context.Context, boothID string) (string, error)
}

// PlaybackDriver renders the asset the state machine selects. It only plays
// what it is told; looping is the driver's responsibility, ended events come
// back through Booth.VideoEnded.
type PlaybackDriver interface {
	Play(url string, loop bool)
}

// MicrophoneGate acquires recording permission before a conversation starts.
// A denial is fatal to starting, never to an already running conversation.
type MicrophoneGate interface {
	RequestPermission(ctx context.Context) error
}

// ReportClient covers the report side effects tool handlers trigger: the
// terminal consultation report pipeline and interview summary forwarding.
type ReportClient interface {
	CreateReport(ctx context.Context, data ConsultationData, boothID string) error
	SendInterviewReport(ctx context.Context, payload map[string]any, boothID, recommendationID string) error
}
