package booths

import "testing"

func TestLookupFallsBackToDefaultBooth(t *testing.T) {
	catalog := NewCatalog()

	booth, recognized := catalog.Lookup("definitely-not-a-booth")
	if recognized {
		t.Fatalf("expected unrecognized id to be reported, got recognized")
	}
	if booth.ID != DefaultBoothID {
		t.Fatalf("expected fallback to %q, got %q", DefaultBoothID, booth.ID)
	}
}

func TestLookupEmptyIDResolvesDefault(t *testing.T) {
	catalog := NewCatalog()

	booth, recognized := catalog.Lookup("")
	if !recognized {
		t.Fatalf("expected empty id to resolve without redirect")
	}
	if booth.ID != DefaultBoothID {
		t.Fatalf("expected default booth %q, got %q", DefaultBoothID, booth.ID)
	}
}

func TestBuiltInBoothsSatisfyVideoInvariants(t *testing.T) {
	catalog := NewCatalog()
	for _, id := range catalog.IDs() {
		booth, _ := catalog.Lookup(id)
		if err := booth.Videos.Validate(); err != nil {
			t.Fatalf("booth %q failed validation: %v", id, err)
		}
	}
}

func TestToolVideoLookup(t *testing.T) {
	booth, _ := NewCatalog().Lookup("jago")

	if _, ok := booth.Videos.ToolVideo("writing_report"); !ok {
		t.Fatalf("expected jago to map a writing_report tool video")
	}
	if _, ok := booth.Videos.ToolVideo("nope"); ok {
		t.Fatalf("expected missing tool video to report absence")
	}
}

func TestCapabilitiesPerBooth(t *testing.T) {
	catalog := NewCatalog()

	healthygo, _ := catalog.Lookup("healthygo")
	if !healthygo.Capabilities.CreateReport {
		t.Fatalf("expected healthygo to declare create_report")
	}
	if healthygo.Capabilities.RequestPhoneNumber {
		t.Fatalf("expected healthygo not to declare request_phone_number")
	}

	cekat, _ := catalog.Lookup("cekat")
	if !cekat.Capabilities.RequestPhoneNumber || !cekat.Capabilities.ShowReport {
		t.Fatalf("expected cekat to declare request_phone_number and show_report")
	}

	jago, _ := catalog.Lookup("jago")
	if jago.Capabilities.CreateReport || jago.Capabilities.ShowReport {
		t.Fatalf("expected jago to declare no optional capabilities")
	}
}

func TestRegisterRejectsInvalidVideoSet(t *testing.T) {
	catalog := NewCatalog()

	err := catalog.Register(Config{ID: "broken", Videos: VideoSet{Talking: "/t.mp4"}})
	if err == nil {
		t.Fatalf("expected registration without idle assets to fail")
	}
}

func TestAllAssetsIncludesToolVideos(t *testing.T) {
	booth, _ := NewCatalog().Lookup("healthygo")
	assets := booth.Videos.AllAssets()

	want := map[string]bool{}
	for _, url := range assets {
		want[url] = true
	}
	if !want["/videos/healthygo/recommendation.mp4"] {
		t.Fatalf("expected tool video in asset list, got %v", assets)
	}
	if assets[0] != booth.Videos.Idle[0] {
		t.Fatalf("expected idle assets first, got %q", assets[0])
	}
}
