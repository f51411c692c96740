package booth

import (
	"testing"
	"time"

	"github.com/cekatlabs/booth-core/core/booths"
)

func testCatalog() map[string]booths.Recommendation {
	return map[string]booths.Recommendation{
		"kopi_susu_jago": {ID: "kopi_susu_jago", Name: "Kopi Susu Jago"},
		"americano_jago": {ID: "americano_jago", Name: "Americano Jago"},
	}
}

func TestUIStoreMessageExpiry(t *testing.T) {
	s := newUIStore(testCatalog(), nil)

	s.ShowMessage("hello", 20*time.Millisecond)
	if s.Snapshot().Message != "hello" {
		t.Fatalf("expected message to be set, got %q", s.Snapshot().Message)
	}

	deadline := time.After(time.Second)
	for s.Snapshot().Message != "" {
		select {
		case <-deadline:
			t.Fatal("expected message to expire")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestUIStoreStaleExpiryKeepsNewerMessage(t *testing.T) {
	s := newUIStore(testCatalog(), nil)

	s.ShowMessage("first", 20*time.Millisecond)
	s.ShowMessage("second", 10*time.Second)

	time.Sleep(100 * time.Millisecond)
	if got := s.Snapshot().Message; got != "second" {
		t.Fatalf("expected stale expiry to leave newer message, got %q", got)
	}
}

func TestUIStoreClearRecommendationAlwaysNulls(t *testing.T) {
	s := newUIStore(testCatalog(), nil)

	s.ClearRecommendation()
	if s.Recommendation() != nil {
		t.Fatal("expected nil recommendation after clearing empty state")
	}

	if ok := s.SetRecommendation("kopi_susu_jago", RecommendationRecommended); !ok {
		t.Fatal("expected known recommendation to be accepted")
	}
	s.ClearRecommendation()
	if s.Recommendation() != nil {
		t.Fatal("expected nil recommendation after clear")
	}
}

func TestUIStoreUnknownRecommendationSelfHeals(t *testing.T) {
	s := newUIStore(testCatalog(), nil)
	s.SetRecommendation("kopi_susu_jago", RecommendationRecommended)

	if ok := s.SetRecommendation("nonexistent", RecommendationRecommended); ok {
		t.Fatal("expected unknown recommendation to be rejected")
	}
	if s.Recommendation() != nil {
		t.Fatal("expected recommendation state to be cleared")
	}
	if notices := s.Snapshot().Notices; len(notices) == 0 {
		t.Fatal("expected an error notice to be surfaced")
	}
}

func TestUIStoreSelectedRecommendation(t *testing.T) {
	s := newUIStore(testCatalog(), nil)

	s.SetRecommendation("americano_jago", RecommendationSelected)
	rec := s.Recommendation()
	if rec == nil {
		t.Fatal("expected recommendation to be set")
	}
	if rec.Label != RecommendationSelected {
		t.Fatalf("expected label %q, got %q", RecommendationSelected, rec.Label)
	}
	if rec.Item.Name != "Americano Jago" {
		t.Fatalf("expected catalog entry to be attached, got %+v", rec.Item)
	}
}

func TestUIStoreNoticeDismissal(t *testing.T) {
	s := newUIStore(testCatalog(), nil)

	s.AddNotice("first")
	s.AddNotice("second")
	snap := s.Snapshot()
	if len(snap.Notices) != 2 {
		t.Fatalf("expected 2 notices, got %d", len(snap.Notices))
	}

	s.dismissNotice(snap.Notices[0].ID)
	snap = s.Snapshot()
	if len(snap.Notices) != 1 || snap.Notices[0].Text != "second" {
		t.Fatalf("expected only the second notice to remain, got %+v", snap.Notices)
	}
}

func TestUIStoreSubscription(t *testing.T) {
	s := newUIStore(testCatalog(), nil)

	updates := make(chan UIState, 16)
	unsubscribe := s.Subscribe(func(state UIState) {
		updates <- state
	})

	s.SetSessionActive(true)
	select {
	case state := <-updates:
		if !state.SessionActive {
			t.Fatal("expected snapshot to report session active")
		}
	case <-time.After(time.Second):
		t.Fatal("expected a subscriber update")
	}
	if !s.SessionActive() {
		t.Fatal("expected SessionActive query to report true")
	}

	unsubscribe()
	s.SetSessionActive(false)
	select {
	case <-updates:
		t.Fatal("expected no update after unsubscribe")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUIStoreResetConversationState(t *testing.T) {
	s := newUIStore(testCatalog(), nil)

	s.ShowMessage("hello", time.Minute)
	s.SetData("name", "Ana")
	s.SetRecommendation("kopi_susu_jago", RecommendationRecommended)
	s.SetEffect("confetti")
	s.SetReportStatus(ReportStatusSent)
	s.SetScreen("menu")

	s.ResetConversationState()
	snap := s.Snapshot()
	if snap.Message != "" || len(snap.Data) != 0 || snap.Recommendation != nil {
		t.Fatalf("expected conversation state to be cleared, got %+v", snap)
	}
	if snap.Effect != "" || snap.ReportStatus != ReportStatusNone {
		t.Fatalf("expected effect and report status to be cleared, got %+v", snap)
	}
	if snap.Screen != "menu" {
		t.Fatalf("expected screen to survive reset, got %q", snap.Screen)
	}
}
