// Package booth implements the experience booth runtime: the video and
// conversation state machine, the client tool dispatch registry and the
// phone-capture flow, driven by a remote conversation session and rendered
// through a pluggable playback driver.
package booth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/cekatlabs/booth-core/core/booths"
	"github.com/cekatlabs/booth-core/core/events"
	"go.opentelemetry.io/otel/codes"
)

var (
	// ErrConversationActive reports a start attempt while a session lives.
	ErrConversationActive = errors.New("a conversation is already active")
	// ErrNoSessionDialer reports a start attempt without a configured dialer.
	ErrNoSessionDialer = errors.New("no session dialer configured")
)

var conversationsStarted, _ = meter.Int64Counter("booth.conversations.started")

// Booth is the runtime root. It exclusively owns the conversation session,
// the UI state and the video state machine; everything else reaches them
// through its methods or the tool registry it hands to the session.
type Booth struct {
	config booths.Config

	ui           *uiStore
	director     *videoDirector
	capture      *phoneCaptureGate
	consultation *consultationStore
	preload      *preloadTracker

	dialer       SessionDialer
	signedURLs   SignedURLProvider
	playback     PlaybackDriver
	microphone   MicrophoneGate
	reportClient ReportClient
	listeners    []func(events.Event)

	mu           sync.Mutex
	session      Session
	starting     bool
	previewIndex int

	endRequests chan struct{}
	closeOnce   sync.Once
	done        chan struct{}

	reportInFlight atomic.Bool

	runOptions RunOptions
}

// New builds a booth for the given configuration.
func New(config booths.Config, opts ...BoothOption) (*Booth, error) {
	if err := config.Videos.Validate(); err != nil {
		return nil, fmt.Errorf("invalid booth %q: %w", config.ID, err)
	}

	b := &Booth{
		config:       config,
		consultation: &consultationStore{},
		reportClient: nopReportClient{},
		endRequests:  make(chan struct{}, 1),
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}

	b.ui = newUIStore(config.Recommendations, b.emit)
	b.capture = newPhoneCaptureGate(b.emit, b.notifyCapture)
	b.director = newVideoDirector(config.Videos, b.onVideoChanged)
	b.preload = newPreloadTracker(config.Videos.AllAssets(), b.emit)

	go b.watchEndRequests()

	return b, nil
}

// Close ends any active conversation and stops the booth's run loop. Safe to
// call more than once.
func (b *Booth) Close() {
	b.closeOnce.Do(func() {
		if err := b.EndConversation(context.Background()); err != nil {
			logger.Error("failed to end conversation on close", "error", err)
		}
		close(b.done)
	})
}

// Config returns the booth's configuration.
func (b *Booth) Config() booths.Config {
	return b.config
}

// UI returns the state store for snapshots and subscriptions.
func (b *Booth) UI() *uiStore {
	if b == nil {
		return nil
	}
	return b.ui
}

// PhoneCapture returns the capture gate the presentation layer drives.
func (b *Booth) PhoneCapture() *phoneCaptureGate {
	if b == nil {
		return nil
	}
	return b.capture
}

// Preload returns the asset readiness tracker.
func (b *Booth) Preload() *preloadTracker {
	if b == nil {
		return nil
	}
	return b.preload
}

func (b *Booth) emit(event events.Event) {
	for _, listener := range b.listeners {
		listener(event)
	}
}

func (b *Booth) notifyCapture() {
	b.ui.notify()
}

// onVideoChanged mirrors the director's selection into the UI state and
// hands the asset to the playback driver.
func (b *Booth) onVideoChanged(event events.Event) {
	if changed, ok := event.(events.VideoChanged); ok {
		b.ui.SetVideo(VideoRole(changed.Role), changed.AssetURL)
		if b.playback != nil {
			b.playback.Play(changed.AssetURL, changed.Loop)
		}
	}
	b.emit(event)
}

// StartConversation bootstraps a signed connection URL, dials the session
// with the booth's tool registry, and wires its events into the state
// machine. At most one conversation is live at a time.
func (b *Booth) StartConversation(ctx context.Context, opts ...RunOption) error {
	ctx, span := tracer.Start(ctx, "start_conversation")
	defer span.End()

	if b.dialer == nil {
		return ErrNoSessionDialer
	}

	b.mu.Lock()
	if b.session != nil || b.starting {
		b.mu.Unlock()
		return ErrConversationActive
	}
	b.starting = true
	runOptions := RunOptions{}
	for _, opt := range opts {
		opt(&runOptions)
	}
	b.runOptions = runOptions
	b.mu.Unlock()

	fail := func(err error, notice string) error {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		b.ui.AddNotice(notice)
		b.mu.Lock()
		b.starting = false
		b.mu.Unlock()
		return err
	}

	if b.microphone != nil {
		if err := b.microphone.RequestPermission(ctx); err != nil {
			return fail(fmt.Errorf("microphone permission denied: %w", err),
				"Microphone permission is required for the conversation.")
		}
	}

	signedURL := ""
	if b.signedURLs != nil {
		url, err := b.signedURLs.GetSignedURL(ctx, b.config.ID)
		if err != nil {
			return fail(fmt.Errorf("failed to get signed url: %w", err),
				"Failed to connect, please try again.")
		}
		signedURL = url
	}

	session, err := b.dialer.Dial(ctx, SessionConfig{
		SignedURL: signedURL,
		BoothID:   b.config.ID,
		Tools:     b.buildTools(),
		Callbacks: SessionCallbacks{
			OnConnect:      b.onSessionConnect,
			OnDisconnect:   b.onSessionDisconnect,
			OnError:        b.onSessionError,
			OnModeChange:   b.onSessionModeChange,
			OnStatusChange: b.onSessionStatusChange,
			OnVolumeChange: b.onSessionVolumeChange,
		},
	})
	if err != nil {
		return fail(fmt.Errorf("failed to dial conversation session: %w", err),
			"Failed to connect, please try again.")
	}

	b.mu.Lock()
	b.session = session
	b.starting = false
	b.previewIndex = 0
	b.mu.Unlock()

	var sendMessage func(string) error
	if sender, ok := session.(MessageSender); ok {
		sendMessage = sender.SendUserMessage
	}
	var pingActivity func()
	if pinger, ok := session.(ActivityPinger); ok {
		pingActivity = pinger.SendUserActivity
	}
	b.capture.BindSession(sendMessage, pingActivity)

	b.ui.SetSessionActive(true)
	b.director.Reset()
	conversationsStarted.Add(ctx, 1)
	b.emit(events.NewSessionConnected(b.config.ID))

	return nil
}

// watchEndRequests consumes termination requests issued by the
// end_conversation tool. Teardown happens here, never inside the tool
// callback.
func (b *Booth) watchEndRequests() {
	for {
		select {
		case <-b.endRequests:
			if err := b.EndConversation(context.Background()); err != nil {
				logger.Error("failed to end conversation", "error", err)
			}
		case <-b.done:
			return
		}
	}
}

// requestEnd asks the run loop to terminate the conversation. Repeated
// requests collapse into one.
func (b *Booth) requestEnd() {
	select {
	case b.endRequests <- struct{}{}:
	default:
	}
}

// EndConversation tears the active session down: the session is released,
// any open phone capture is rejected, conversation-scoped UI state is
// cleared and the video state returns to the idle cycle. In-flight tool
// network calls are not cancelled.
func (b *Booth) EndConversation(ctx context.Context) error {
	b.mu.Lock()
	session := b.session
	b.session = nil
	b.mu.Unlock()

	if session == nil {
		return nil
	}

	err := session.EndSession(ctx)

	b.teardownConversation()
	b.emit(events.NewSessionDisconnected(b.config.ID))
	if opts := b.currentRunOptions(); opts.onDisconnect != nil {
		opts.onDisconnect()
	}

	if err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}

func (b *Booth) teardownConversation() {
	b.capture.Teardown()
	b.capture.BindSession(nil, nil)
	b.ui.SetSessionActive(false)
	b.ui.ResetConversationState()
	b.consultation.Reset()
	b.director.Reset()
}

// Restart ends any active conversation and starts a new one.
func (b *Booth) Restart(ctx context.Context, opts ...RunOption) error {
	if err := b.EndConversation(ctx); err != nil {
		logger.Error("failed to end conversation on restart", "error", err)
	}
	return b.StartConversation(ctx, opts...)
}

// SessionActive reports whether a conversation session is live.
func (b *Booth) SessionActive() bool {
	return b.ui.SessionActive()
}

// VideoEnded reports that the playback driver finished the current asset.
// During a conversation it drives the state machine; outside one it advances
// the preview rotation. A tool video outliving its conversation still routes
// to the state machine so the tool role resolves to idle.
func (b *Booth) VideoEnded() {
	if b.SessionActive() || b.director.ActiveTool() != "" {
		b.director.OnVideoEnded()
		return
	}
	b.advancePreview()
}

// PreviewAsset returns the preview asset the start screen should show,
// falling back to the first idle asset for booths without previews.
func (b *Booth) PreviewAsset() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	previews := b.config.Videos.Preview
	if len(previews) == 0 {
		return b.config.Videos.Idle[0]
	}
	return previews[b.previewIndex%len(previews)]
}

func (b *Booth) advancePreview() {
	b.mu.Lock()
	previews := b.config.Videos.Preview
	if len(previews) == 0 {
		b.mu.Unlock()
		return
	}
	b.previewIndex = (b.previewIndex + 1) % len(previews)
	asset := previews[b.previewIndex]
	b.mu.Unlock()

	if b.playback != nil {
		b.playback.Play(asset, false)
	}
}

// currentRunOptions snapshots the callbacks registered by the conversation's
// starter. Session callbacks may race a Restart, so reads go through the lock.
func (b *Booth) currentRunOptions() RunOptions {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.runOptions
}

func (b *Booth) onSessionConnect() {
	if opts := b.currentRunOptions(); opts.onConnect != nil {
		opts.onConnect()
	}
}

// onSessionDisconnect handles the session dropping on its own. The handle is
// released without calling EndSession back into a dead session.
func (b *Booth) onSessionDisconnect() {
	b.mu.Lock()
	hadSession := b.session != nil
	b.session = nil
	b.mu.Unlock()

	if !hadSession {
		return
	}

	b.teardownConversation()
	b.emit(events.NewSessionDisconnected(b.config.ID))
	if opts := b.currentRunOptions(); opts.onDisconnect != nil {
		opts.onDisconnect()
	}
}

func (b *Booth) onSessionError(err error) {
	logger.Error("conversation session error", "error", err)
	b.ui.AddNotice("Connection problem, please try again.")
	b.emit(events.NewSessionError(err.Error()))
	if opts := b.currentRunOptions(); opts.onError != nil {
		opts.onError(err)
	}
	b.onSessionDisconnect()
}

func (b *Booth) onSessionModeChange(mode string) {
	switch mode {
	case ModeSpeaking:
		b.director.PlayTalking()
	case ModeListening:
		b.director.PlayThinking()
	default:
		b.director.PlayIdle()
	}

	b.emit(events.NewSessionModeChanged(mode))
	if opts := b.currentRunOptions(); opts.onModeChanged != nil {
		opts.onModeChanged(mode)
	}
}

func (b *Booth) onSessionStatusChange(status string) {
	b.emit(events.NewSessionStatusChanged(status))
	if opts := b.currentRunOptions(); opts.onStatusChanged != nil {
		opts.onStatusChanged(status)
	}
}

func (b *Booth) onSessionVolumeChange(level float64) {
	b.ui.SetVolume(level)
	b.emit(events.NewSessionVolumeChanged(level))
	if opts := b.currentRunOptions(); opts.onVolumeChanged != nil {
		opts.onVolumeChanged(level)
	}
}

// playToolVideo requests a tool video. A missing mapping is a no-op, never
// an error for the calling handler.
func (b *Booth) playToolVideo(name string) {
	b.director.PlayTool(name)
}

// nopReportClient stands in when no report pipeline is configured.
type nopReportClient struct{}

func (nopReportClient) CreateReport(context.Context, ConsultationData, string) error {
	return errors.New("no report client configured")
}

func (nopReportClient) SendInterviewReport(context.Context, map[string]any, string, string) error {
	return errors.New("no report client configured")
}
