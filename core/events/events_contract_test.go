package events

import "testing"

func TestConstructorsEmitExpectedKinds(t *testing.T) {
	testCases := []struct {
		name     string
		event    Event
		expected Kind
	}{
		{name: "video changed", event: NewVideoChanged("idle", "/videos/idle.mp4", false), expected: KindVideoChanged},
		{name: "session connected", event: NewSessionConnected("jago"), expected: KindSessionConnected},
		{name: "session disconnected", event: NewSessionDisconnected("jago"), expected: KindSessionDisconnected},
		{name: "session error", event: NewSessionError("boom"), expected: KindSessionError},
		{name: "session mode changed", event: NewSessionModeChanged("speaking"), expected: KindSessionModeChanged},
		{name: "session status changed", event: NewSessionStatusChanged("ready"), expected: KindSessionStatusChanged},
		{name: "session volume changed", event: NewSessionVolumeChanged(0.5), expected: KindSessionVolumeChanged},
		{name: "tool call started", event: NewToolCallStarted("id", "show_message", "{}"), expected: KindToolCallStarted},
		{name: "tool call completed", event: NewToolCallCompleted("id", "show_message", "ok"), expected: KindToolCallCompleted},
		{name: "tool call failed", event: NewToolCallFailed("id", "show_message", "err"), expected: KindToolCallFailed},
		{name: "message shown", event: NewMessageShown("hello", 1), expected: KindMessageShown},
		{name: "message cleared", event: NewMessageCleared(1), expected: KindMessageCleared},
		{name: "recommendation shown", event: NewRecommendationShown("kopi_susu_jago", "recommended"), expected: KindRecommendationShown},
		{name: "recommendation cleared", event: NewRecommendationCleared(), expected: KindRecommendationCleared},
		{name: "notice shown", event: NewNoticeShown("notice"), expected: KindNoticeShown},
		{name: "preload progress", event: NewPreloadProgress(1, 2, 50), expected: KindPreloadProgress},
		{name: "phone capture opened", event: NewPhoneCaptureOpened("title"), expected: KindPhoneCaptureOpened},
		{name: "phone capture settled", event: NewPhoneCaptureSettled(PhoneCaptureConfirmed, "0812"), expected: KindPhoneCaptureSettled},
		{name: "report created", event: NewReportCreated("healthygo", "report.pdf"), expected: KindReportCreated},
		{name: "report sent", event: NewReportSent("jago"), expected: KindReportSent},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := testCase.event.Kind(); got != testCase.expected {
				t.Fatalf("expected kind %q, got %q", testCase.expected, got)
			}
		})
	}
}

func TestKindsAreUnique(t *testing.T) {
	kinds := []Kind{
		KindVideoChanged,
		KindSessionConnected, KindSessionDisconnected, KindSessionError,
		KindSessionModeChanged, KindSessionStatusChanged, KindSessionVolumeChanged,
		KindToolCallStarted, KindToolCallCompleted, KindToolCallFailed,
		KindMessageShown, KindMessageCleared,
		KindRecommendationShown, KindRecommendationCleared,
		KindNoticeShown, KindPreloadProgress,
		KindPhoneCaptureOpened, KindPhoneCaptureSettled,
		KindReportCreated, KindReportSent,
	}

	seen := make(map[Kind]struct{}, len(kinds))
	for _, kind := range kinds {
		if _, dup := seen[kind]; dup {
			t.Fatalf("expected unique kinds, %q appears twice", kind)
		}
		seen[kind] = struct{}{}
	}
}

func TestTimestampsAreSet(t *testing.T) {
	event := NewVideoChanged("talking", "/videos/talking.mp4", true)
	if event.Timestamp().IsZero() {
		t.Fatalf("expected non-zero timestamp")
	}
}
