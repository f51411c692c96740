package booth

import (
	"testing"

	"github.com/cekatlabs/booth-core/core/booths"
	"github.com/cekatlabs/booth-core/core/events"
)

func testVideoSet() booths.VideoSet {
	return booths.VideoSet{
		Idle:     []string{"/videos/idle-1.mp4", "/videos/idle-2.mp4", "/videos/idle-3.mp4"},
		Talking:  "/videos/talking.mp4",
		Thinking: "/videos/thinking.mp4",
		Tools: map[string]string{
			"show_message": "/videos/tool-show-message.mp4",
		},
	}
}

func TestVideoDirectorStartsOnFirstIdle(t *testing.T) {
	d := newVideoDirector(testVideoSet(), nil)

	role, url := d.Snapshot()
	if role != VideoRoleIdle {
		t.Fatalf("expected initial role %q, got %q", VideoRoleIdle, role)
	}
	if url != "/videos/idle-1.mp4" {
		t.Fatalf("expected initial asset idle-1, got %q", url)
	}
}

func TestVideoDirectorIdleRoundRobin(t *testing.T) {
	d := newVideoDirector(testVideoSet(), nil)
	d.PlayIdle()

	want := []string{
		"/videos/idle-2.mp4",
		"/videos/idle-3.mp4",
		"/videos/idle-1.mp4",
		"/videos/idle-2.mp4",
	}
	for i, expected := range want {
		d.OnVideoEnded()
		if _, url := d.Snapshot(); url != expected {
			t.Fatalf("cycle step %d: expected %q, got %q", i, expected, url)
		}
	}
}

func TestVideoDirectorModeTransitions(t *testing.T) {
	d := newVideoDirector(testVideoSet(), nil)

	d.PlayTalking()
	if role, url := d.Snapshot(); role != VideoRoleTalking || url != "/videos/talking.mp4" {
		t.Fatalf("expected talking video, got role=%q url=%q", role, url)
	}

	d.PlayThinking()
	if role, _ := d.Snapshot(); role != VideoRoleThinking {
		t.Fatalf("expected thinking role, got %q", role)
	}

	d.PlayIdle()
	if role, _ := d.Snapshot(); role != VideoRoleIdle {
		t.Fatalf("expected idle role, got %q", role)
	}
}

func TestVideoDirectorThinkingWithoutAssetKeepsState(t *testing.T) {
	videos := testVideoSet()
	videos.Thinking = ""
	d := newVideoDirector(videos, nil)

	d.PlayTalking()
	d.PlayThinking()

	if role, _ := d.Snapshot(); role != VideoRoleTalking {
		t.Fatalf("expected talking role to survive, got %q", role)
	}
}

func TestVideoDirectorToolSuppressesModeChanges(t *testing.T) {
	d := newVideoDirector(testVideoSet(), nil)

	if ok := d.PlayTool("show_message"); !ok {
		t.Fatal("expected tool video to start")
	}

	d.PlayTalking()
	d.PlayThinking()
	d.PlayIdle()

	role, url := d.Snapshot()
	if role != VideoRoleTool || url != "/videos/tool-show-message.mp4" {
		t.Fatalf("expected tool video to keep playing, got role=%q url=%q", role, url)
	}
	if name := d.ActiveTool(); name != "show_message" {
		t.Fatalf("expected active tool show_message, got %q", name)
	}

	// Suppressed transitions are dropped, not queued: the tool video hands
	// back to the idle cycle, not to the last suppressed mode.
	d.OnVideoEnded()
	if role, _ := d.Snapshot(); role != VideoRoleIdle {
		t.Fatalf("expected idle after tool video ended, got %q", role)
	}
	if name := d.ActiveTool(); name != "" {
		t.Fatalf("expected no active tool after ended, got %q", name)
	}
}

func TestVideoDirectorUnmappedToolIsNoop(t *testing.T) {
	d := newVideoDirector(testVideoSet(), nil)
	d.PlayTalking()

	if ok := d.PlayTool("trigger_effect"); ok {
		t.Fatal("expected unmapped tool video to be a no-op")
	}
	if role, _ := d.Snapshot(); role != VideoRoleTalking {
		t.Fatalf("expected talking to continue, got %q", role)
	}
}

func TestVideoDirectorResetRewindsIdleCycle(t *testing.T) {
	d := newVideoDirector(testVideoSet(), nil)
	d.PlayIdle()
	d.OnVideoEnded()
	d.OnVideoEnded()

	d.Reset()
	if _, url := d.Snapshot(); url != "/videos/idle-1.mp4" {
		t.Fatalf("expected reset to rewind to idle-1, got %q", url)
	}
	d.OnVideoEnded()
	if _, url := d.Snapshot(); url != "/videos/idle-2.mp4" {
		t.Fatalf("expected idle-2 after reset, got %q", url)
	}
}

func TestVideoDirectorResetDoesNotInterruptTool(t *testing.T) {
	d := newVideoDirector(testVideoSet(), nil)
	d.PlayTool("show_message")

	d.Reset()
	if role, _ := d.Snapshot(); role != VideoRoleTool {
		t.Fatalf("expected tool video to finish on its own, got %q", role)
	}

	d.OnVideoEnded()
	if _, url := d.Snapshot(); url != "/videos/idle-1.mp4" {
		t.Fatalf("expected idle cycle restart after tool ended, got %q", url)
	}
}

func TestVideoDirectorEmitsVideoChanged(t *testing.T) {
	var got []events.VideoChanged
	d := newVideoDirector(testVideoSet(), func(ev events.Event) {
		if v, ok := ev.(events.VideoChanged); ok {
			got = append(got, v)
		}
	})

	d.PlayTalking()
	d.PlayTool("show_message")

	if len(got) != 2 {
		t.Fatalf("expected 2 video change events, got %d", len(got))
	}
	if got[0].Role != string(VideoRoleTalking) || !got[0].Loop {
		t.Fatalf("expected looping talking event, got %+v", got[0])
	}
	if got[1].Role != string(VideoRoleTool) || got[1].Loop {
		t.Fatalf("expected one-shot tool event, got %+v", got[1])
	}
}

func TestVideoDirectorNilReceiver(t *testing.T) {
	var d *videoDirector

	d.PlayIdle()
	d.PlayTalking()
	d.PlayThinking()
	d.OnVideoEnded()
	d.Reset()
	if ok := d.PlayTool("show_message"); ok {
		t.Fatal("expected nil director to refuse tool playback")
	}
	if role, url := d.Snapshot(); role != VideoRoleIdle || url != "" {
		t.Fatalf("expected zero snapshot, got role=%q url=%q", role, url)
	}
}
