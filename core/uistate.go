package booth

import (
	"maps"
	"sync"
	"time"

	"github.com/cekatlabs/booth-core/core/booths"
	"github.com/cekatlabs/booth-core/core/events"
)

// RecommendationLabel distinguishes agent-surfaced from user-selected items.
type RecommendationLabel string

const (
	RecommendationRecommended RecommendationLabel = "recommended"
	RecommendationSelected    RecommendationLabel = "selected"
)

// RecommendationState is the currently surfaced catalog entry, if any.
type RecommendationState struct {
	ID    string
	Label RecommendationLabel
	Item  booths.Recommendation
}

// ReportStatus tracks the terminal report tools' outcome for a conversation.
type ReportStatus string

const (
	ReportStatusNone    ReportStatus = ""
	ReportStatusCreated ReportStatus = "created"
	ReportStatusSent    ReportStatus = "sent"
	ReportStatusShown   ReportStatus = "shown"
)

// Notice is a transient user-visible message, auto-dismissed unless replaced
// sooner.
type Notice struct {
	ID   uint64
	Text string
}

// UIState is an immutable snapshot of everything the presentation layer
// renders. Obtained through Snapshot or delivered to subscribers after every
// mutation.
type UIState struct {
	Message        string
	Data           map[string]any
	Recommendation *RecommendationState
	Notices        []Notice
	Screen         string
	Effect         string
	ReportStatus   ReportStatus
	SessionActive  bool
	VideoRole      VideoRole
	VideoAssetURL  string
	Volume         float64
}

const (
	defaultMessageDuration = 5 * time.Second
	noticeDuration         = 5 * time.Second
)

// uiStore owns all shared UI state. Mutations go through its methods only;
// every mutation notifies subscribers with a fresh snapshot. Message and
// notice expiry timers carry a generation so a stale timer never clears a
// newer value.
type uiStore struct {
	mu sync.Mutex

	catalog map[string]booths.Recommendation

	message    string
	messageGen uint64

	data           map[string]any
	recommendation *RecommendationState
	notices        []Notice
	noticeSeq      uint64
	screen         string
	effect         string
	reportStatus   ReportStatus
	sessionActive  bool
	videoRole      VideoRole
	videoAssetURL  string
	volume         float64

	subMu       sync.Mutex
	subscribers map[uint64]func(UIState)
	subSeq      uint64

	emit eventEmitter
}

func newUIStore(catalog map[string]booths.Recommendation, emit eventEmitter) *uiStore {
	if emit == nil {
		emit = noopEventEmitter
	}
	return &uiStore{
		catalog:     catalog,
		data:        map[string]any{},
		videoRole:   VideoRoleIdle,
		subscribers: map[uint64]func(UIState){},
		emit:        emit,
	}
}

// Subscribe registers a listener invoked with a snapshot after every state
// change. The returned function unsubscribes it.
func (s *uiStore) Subscribe(fn func(UIState)) func() {
	if s == nil || fn == nil {
		return func() {}
	}

	s.subMu.Lock()
	s.subSeq++
	id := s.subSeq
	s.subscribers[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subscribers, id)
		s.subMu.Unlock()
	}
}

// Snapshot returns a copy of the current state.
func (s *uiStore) Snapshot() UIState {
	if s == nil {
		return UIState{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *uiStore) snapshotLocked() UIState {
	snap := UIState{
		Message:       s.message,
		Data:          maps.Clone(s.data),
		Notices:       append([]Notice(nil), s.notices...),
		Screen:        s.screen,
		Effect:        s.effect,
		ReportStatus:  s.reportStatus,
		SessionActive: s.sessionActive,
		VideoRole:     s.videoRole,
		VideoAssetURL: s.videoAssetURL,
		Volume:        s.volume,
	}
	if s.recommendation != nil {
		rec := *s.recommendation
		snap.Recommendation = &rec
	}
	return snap
}

func (s *uiStore) notify() {
	snap := s.Snapshot()

	s.subMu.Lock()
	fns := make([]func(UIState), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// ShowMessage sets the transient banner and schedules its expiry. A zero
// duration applies the default. The expiry only clears the banner if no
// newer message replaced it in the meantime.
func (s *uiStore) ShowMessage(message string, duration time.Duration) {
	if s == nil {
		return
	}
	if duration <= 0 {
		duration = defaultMessageDuration
	}

	s.mu.Lock()
	s.messageGen++
	gen := s.messageGen
	s.message = message
	s.data["message"] = message
	s.mu.Unlock()

	s.emit(events.NewMessageShown(message, gen))
	s.notify()

	time.AfterFunc(duration, func() {
		s.expireMessage(gen)
	})
}

func (s *uiStore) expireMessage(gen uint64) {
	s.mu.Lock()
	if s.messageGen != gen {
		s.mu.Unlock()
		return
	}
	s.message = ""
	delete(s.data, "message")
	s.mu.Unlock()

	s.emit(events.NewMessageCleared(gen))
	s.notify()
}

// SetData records the latest agent-pushed value for a key. Append or
// overwrite only.
func (s *uiStore) SetData(key string, value any) {
	if s == nil {
		return
	}

	s.mu.Lock()
	s.data[key] = value
	s.mu.Unlock()
	s.notify()
}

// Data returns the latest value pushed for a key.
func (s *uiStore) Data(key string) (any, bool) {
	if s == nil {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.data[key]
	return value, ok
}

// SetRecommendation surfaces a catalog entry. An id absent from the booth's
// catalog self-heals: the state is cleared and a notice is surfaced.
func (s *uiStore) SetRecommendation(id string, label RecommendationLabel) bool {
	if s == nil {
		return false
	}

	item, ok := s.catalog[id]
	if !ok {
		s.ClearRecommendation()
		s.AddNotice("Unknown recommendation: " + id)
		return false
	}

	s.mu.Lock()
	s.recommendation = &RecommendationState{ID: id, Label: label, Item: item}
	s.mu.Unlock()

	s.emit(events.NewRecommendationShown(id, string(label)))
	s.notify()
	return true
}

// ClearRecommendation nulls the recommendation state regardless of prior
// value.
func (s *uiStore) ClearRecommendation() {
	if s == nil {
		return
	}

	s.mu.Lock()
	cleared := s.recommendation != nil
	s.recommendation = nil
	s.mu.Unlock()

	if cleared {
		s.emit(events.NewRecommendationCleared())
	}
	s.notify()
}

// Recommendation returns the surfaced entry, or nil.
func (s *uiStore) Recommendation() *RecommendationState {
	if s == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.recommendation == nil {
		return nil
	}
	rec := *s.recommendation
	return &rec
}

// AddNotice surfaces a transient notice, auto-dismissed after a fixed delay.
func (s *uiStore) AddNotice(text string) {
	if s == nil {
		return
	}

	s.mu.Lock()
	s.noticeSeq++
	id := s.noticeSeq
	s.notices = append(s.notices, Notice{ID: id, Text: text})
	s.mu.Unlock()

	s.emit(events.NewNoticeShown(text))
	s.notify()

	time.AfterFunc(noticeDuration, func() {
		s.dismissNotice(id)
	})
}

func (s *uiStore) dismissNotice(id uint64) {
	s.mu.Lock()
	kept := s.notices[:0]
	removed := false
	for _, n := range s.notices {
		if n.ID == id {
			removed = true
			continue
		}
		kept = append(kept, n)
	}
	s.notices = kept
	s.mu.Unlock()

	if removed {
		s.notify()
	}
}

// SetScreen records the logical screen name. Consumed by presentation only.
func (s *uiStore) SetScreen(screen string) {
	if s == nil {
		return
	}

	s.mu.Lock()
	s.screen = screen
	s.mu.Unlock()
	s.notify()
}

// SetEffect records the active themed effect name.
func (s *uiStore) SetEffect(effect string) {
	if s == nil {
		return
	}

	s.mu.Lock()
	s.effect = effect
	s.mu.Unlock()
	s.notify()
}

// SetReportStatus tracks the terminal report tools' outcome.
func (s *uiStore) SetReportStatus(status ReportStatus) {
	if s == nil {
		return
	}

	s.mu.Lock()
	s.reportStatus = status
	s.mu.Unlock()
	s.notify()
}

// CurrentReportStatus returns the current report outcome.
func (s *uiStore) CurrentReportStatus() ReportStatus {
	if s == nil {
		return ReportStatusNone
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reportStatus
}

// SetSessionActive flips the process-local session flag consumed by
// navigation guards through SessionActive or a subscription.
func (s *uiStore) SetSessionActive(active bool) {
	if s == nil {
		return
	}

	s.mu.Lock()
	changed := s.sessionActive != active
	s.sessionActive = active
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// SessionActive reports whether a conversation session is live.
func (s *uiStore) SessionActive() bool {
	if s == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionActive
}

// SetVideo mirrors the director's current role and asset into the snapshot.
func (s *uiStore) SetVideo(role VideoRole, assetURL string) {
	if s == nil {
		return
	}

	s.mu.Lock()
	s.videoRole = role
	s.videoAssetURL = assetURL
	s.mu.Unlock()
	s.notify()
}

// SetVolume mirrors the session's last reported output level.
func (s *uiStore) SetVolume(level float64) {
	if s == nil {
		return
	}

	s.mu.Lock()
	s.volume = level
	s.mu.Unlock()
	s.notify()
}

// ResetConversationState clears everything scoped to a single conversation:
// banner, agent-pushed data, recommendation, effect and report status.
// Notices, screen and video mirrors survive.
func (s *uiStore) ResetConversationState() {
	if s == nil {
		return
	}

	s.mu.Lock()
	s.messageGen++
	s.message = ""
	s.data = map[string]any{}
	s.recommendation = nil
	s.effect = ""
	s.reportStatus = ReportStatusNone
	s.mu.Unlock()
	s.notify()
}
