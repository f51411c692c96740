package booth

import (
	"sync"

	"github.com/cekatlabs/booth-core/core/booths"
	"github.com/cekatlabs/booth-core/core/events"
)

// VideoRole is the semantic state of the booth's video surface.
type VideoRole string

const (
	VideoRoleIdle     VideoRole = "idle"
	VideoRoleTalking  VideoRole = "talking"
	VideoRoleThinking VideoRole = "thinking"
	VideoRoleTool     VideoRole = "tool"
)

// videoDirector owns the current visual state and decides which asset the
// playback driver is handed. All transitions are event-driven: conversation
// mode changes, video-ended reports, explicit tool requests, explicit reset.
// It never runs its own timers.
type videoDirector struct {
	mu sync.Mutex

	videos booths.VideoSet

	role       VideoRole
	assetURL   string
	idleIndex  int
	activeTool string

	emit eventEmitter
}

func newVideoDirector(videos booths.VideoSet, emit eventEmitter) *videoDirector {
	if emit == nil {
		emit = noopEventEmitter
	}

	d := &videoDirector{
		videos: videos,
		role:   VideoRoleIdle,
		emit:   emit,
	}
	if len(videos.Idle) > 0 {
		d.assetURL = videos.Idle[0]
	}
	return d
}

// Snapshot returns the current role and asset URL.
func (d *videoDirector) Snapshot() (VideoRole, string) {
	if d == nil {
		return VideoRoleIdle, ""
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.role, d.assetURL
}

// ActiveTool returns the tool name whose video is playing, if any.
func (d *videoDirector) ActiveTool() string {
	if d == nil {
		return ""
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.activeTool
}

// PlayIdle advances the idle cycle. While a tool video plays, the request is
// dropped, not queued.
func (d *videoDirector) PlayIdle() {
	if d == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.role == VideoRoleTool {
		return
	}
	d.playIdleLocked()
}

func (d *videoDirector) playIdleLocked() {
	if len(d.videos.Idle) == 0 {
		return
	}

	next := d.videos.Idle[d.idleIndex%len(d.videos.Idle)]
	d.idleIndex++
	d.setLocked(VideoRoleIdle, next, false)
}

// PlayTalking switches to the looping talking video unless a tool video is
// active.
func (d *videoDirector) PlayTalking() {
	if d == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.role == VideoRoleTool {
		return
	}
	d.setLocked(VideoRoleTalking, d.videos.Talking, true)
}

// PlayThinking switches to the looping thinking video unless a tool video is
// active. Booths without a thinking asset keep their current state.
func (d *videoDirector) PlayThinking() {
	if d == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.role == VideoRoleTool {
		return
	}
	if d.videos.Thinking == "" {
		return
	}
	d.setLocked(VideoRoleThinking, d.videos.Thinking, true)
}

// PlayTool switches to the one-shot video mapped to tool_<name>. A missing
// mapping is a no-op and reports false; it never fails the calling handler.
// Tool playback takes priority over mode-driven transitions until the video
// ends.
func (d *videoDirector) PlayTool(name string) bool {
	if d == nil {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	url, ok := d.videos.ToolVideo(name)
	if !ok {
		return false
	}

	d.activeTool = name
	d.setLocked(VideoRoleTool, url, false)
	return true
}

// OnVideoEnded reacts to the playback driver reporting the current asset
// finished. Tool videos return to the idle cycle; idle videos advance the
// cycle; talking and thinking loop in the driver and never end.
func (d *videoDirector) OnVideoEnded() {
	if d == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	switch d.role {
	case VideoRoleTool:
		d.activeTool = ""
		d.role = VideoRoleIdle
		d.playIdleLocked()
	case VideoRoleIdle:
		d.playIdleLocked()
	}
}

// Reset rewinds the idle cycle for the next conversation. An active tool
// video is left to finish; it returns to idle on its own ended report.
func (d *videoDirector) Reset() {
	if d == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.idleIndex = 0
	if d.role == VideoRoleTool {
		return
	}
	d.playIdleLocked()
}

func (d *videoDirector) setLocked(role VideoRole, url string, loop bool) {
	d.role = role
	d.assetURL = url
	d.emit(events.NewVideoChanged(string(role), url, loop))
}
