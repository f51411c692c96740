package elevenlabs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	booth "github.com/cekatlabs/booth-core/core"
	"github.com/cekatlabs/booth-core/core/tools"
)

func TestGetSignedURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/signed-url" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("boothId"); got != "jago" {
			t.Errorf("expected boothId jago, got %q", got)
		}
		json.NewEncoder(w).Encode(map[string]string{"signedUrl": "wss://example.test/convai?token=abc"})
	}))
	defer server.Close()

	client := NewSignedURLClient(server.URL)
	url, err := client.GetSignedURL(context.Background(), "jago")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "wss://example.test/convai?token=abc" {
		t.Fatalf("unexpected signed url: %q", url)
	}
}

func TestGetSignedURLFailureStatuses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"agent not configured"}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewSignedURLClient(server.URL)
	if _, err := client.GetSignedURL(context.Background(), "jago"); err == nil {
		t.Fatal("expected an error on 500")
	}
}

type wsTestServer struct {
	t        *testing.T
	server   *httptest.Server
	upgrader websocket.Upgrader

	mu        sync.Mutex
	conn      *websocket.Conn
	inbound   chan map[string]any
	connected chan struct{}
}

func newWSTestServer(t *testing.T) *wsTestServer {
	s := &wsTestServer{
		t:         t,
		inbound:   make(chan map[string]any, 32),
		connected: make(chan struct{}),
	}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("failed to upgrade: %v", err)
			return
		}
		s.mu.Lock()
		s.conn = conn
		s.mu.Unlock()
		close(s.connected)

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var frame map[string]any
			if err := json.Unmarshal(msg, &frame); err != nil {
				t.Errorf("failed to unmarshal client frame: %v", err)
				continue
			}
			s.inbound <- frame
		}
	}))
	t.Cleanup(s.server.Close)
	return s
}

func (s *wsTestServer) url() string {
	return "ws" + strings.TrimPrefix(s.server.URL, "http")
}

func (s *wsTestServer) send(frame any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.conn.WriteJSON(frame); err != nil {
		s.t.Errorf("failed to send frame: %v", err)
	}
}

func (s *wsTestServer) expectFrame(frameType string) map[string]any {
	s.t.Helper()
	deadline := time.After(time.Second)
	for {
		select {
		case frame := <-s.inbound:
			if frame["type"] == frameType {
				return frame
			}
		case <-deadline:
			s.t.Fatalf("expected frame %q", frameType)
			return nil
		}
	}
}

func testToolSet() tools.Set {
	return tools.Set{
		tools.NewTool("echo", "Echo the given text.",
			map[string]tools.ParameterBase{
				"text": {Type: "string"},
			},
			func(params struct {
				Text string `json:"text"`
			}) (string, error) {
				return "echo: " + params.Text, nil
			},
		),
	}
}

func TestDialSendsInitiationWithToolDefinitions(t *testing.T) {
	server := newWSTestServer(t)

	session, err := NewClient().Dial(context.Background(), booth.SessionConfig{
		SignedURL: server.url(),
		Tools:     testToolSet(),
	})
	if err != nil {
		t.Fatalf("failed to dial: %v", err)
	}
	defer session.EndSession(context.Background())

	frame := server.expectFrame("conversation_initiation_client_data")
	declared, ok := frame["client_tools"].([]any)
	if !ok || len(declared) != 1 {
		t.Fatalf("expected one declared client tool, got %v", frame["client_tools"])
	}
	tool := declared[0].(map[string]any)
	if tool["name"] != "echo" {
		t.Fatalf("expected echo tool declaration, got %v", tool)
	}
}

func TestSessionEventDispatch(t *testing.T) {
	server := newWSTestServer(t)

	modes := make(chan string, 8)
	connects := make(chan struct{}, 1)
	volumes := make(chan float64, 8)

	session, err := NewClient().Dial(context.Background(), booth.SessionConfig{
		SignedURL: server.url(),
		Tools:     testToolSet(),
		Callbacks: booth.SessionCallbacks{
			OnConnect:      func() { connects <- struct{}{} },
			OnModeChange:   func(mode string) { modes <- mode },
			OnVolumeChange: func(level float64) { volumes <- level },
		},
	})
	if err != nil {
		t.Fatalf("failed to dial: %v", err)
	}
	defer session.EndSession(context.Background())
	<-server.connected

	server.send(map[string]any{
		"type": "conversation_initiation_metadata",
		"conversation_initiation_metadata_event": map[string]any{"conversation_id": "conv-1"},
	})
	select {
	case <-connects:
	case <-time.After(time.Second):
		t.Fatal("expected connect callback")
	}

	server.send(map[string]any{
		"type":                 "agent_response",
		"agent_response_event": map[string]any{"agent_response": "Hello!"},
	})
	if mode := <-modes; mode != booth.ModeSpeaking {
		t.Fatalf("expected speaking mode, got %q", mode)
	}

	server.send(map[string]any{
		"type":                     "user_transcript",
		"user_transcription_event": map[string]any{"user_transcript": "Hi"},
	})
	if mode := <-modes; mode != booth.ModeListening {
		t.Fatalf("expected listening mode, got %q", mode)
	}

	server.send(map[string]any{
		"type":            "vad_score",
		"vad_score_event": map[string]any{"vad_score": 0.42},
	})
	select {
	case level := <-volumes:
		if level != 0.42 {
			t.Fatalf("expected volume 0.42, got %v", level)
		}
	case <-time.After(time.Second):
		t.Fatal("expected volume callback")
	}
}

func TestSessionAnswersPing(t *testing.T) {
	server := newWSTestServer(t)

	session, err := NewClient().Dial(context.Background(), booth.SessionConfig{
		SignedURL: server.url(),
		Tools:     testToolSet(),
	})
	if err != nil {
		t.Fatalf("failed to dial: %v", err)
	}
	defer session.EndSession(context.Background())
	<-server.connected

	server.send(map[string]any{
		"type":       "ping",
		"ping_event": map[string]any{"event_id": 7},
	})

	pong := server.expectFrame("pong")
	if got := pong["event_id"]; got != float64(7) {
		t.Fatalf("expected pong for event 7, got %v", got)
	}
}

func TestSessionDispatchesClientToolCalls(t *testing.T) {
	server := newWSTestServer(t)

	session, err := NewClient().Dial(context.Background(), booth.SessionConfig{
		SignedURL: server.url(),
		Tools:     testToolSet(),
	})
	if err != nil {
		t.Fatalf("failed to dial: %v", err)
	}
	defer session.EndSession(context.Background())
	<-server.connected

	server.send(map[string]any{
		"type": "client_tool_call",
		"client_tool_call": map[string]any{
			"tool_name":    "echo",
			"tool_call_id": "call-1",
			"parameters":   map[string]any{"text": "ping"},
		},
	})

	result := server.expectFrame("client_tool_result")
	if result["tool_call_id"] != "call-1" {
		t.Fatalf("expected result for call-1, got %v", result)
	}
	if result["result"] != "echo: ping" || result["is_error"] != false {
		t.Fatalf("unexpected tool result: %v", result)
	}

	// Unknown tools come back flagged, never dropped.
	server.send(map[string]any{
		"type": "client_tool_call",
		"client_tool_call": map[string]any{
			"tool_name":    "missing",
			"tool_call_id": "call-2",
			"parameters":   map[string]any{},
		},
	})
	result = server.expectFrame("client_tool_result")
	if result["tool_call_id"] != "call-2" || result["is_error"] != true {
		t.Fatalf("expected flagged error result, got %v", result)
	}
}

func TestSessionSendsUserMessagesAndActivity(t *testing.T) {
	server := newWSTestServer(t)

	session, err := NewClient().Dial(context.Background(), booth.SessionConfig{
		SignedURL: server.url(),
		Tools:     testToolSet(),
	})
	if err != nil {
		t.Fatalf("failed to dial: %v", err)
	}
	defer session.EndSession(context.Background())
	<-server.connected

	sender, ok := session.(booth.MessageSender)
	if !ok {
		t.Fatal("expected session to expose message sending")
	}
	if err := sender.SendUserMessage("08123456789"); err != nil {
		t.Fatalf("unexpected send error: %v", err)
	}
	frame := server.expectFrame("user_message")
	if frame["text"] != "08123456789" {
		t.Fatalf("unexpected user message frame: %v", frame)
	}

	pinger, ok := session.(booth.ActivityPinger)
	if !ok {
		t.Fatal("expected session to expose activity pings")
	}
	pinger.SendUserActivity()
	server.expectFrame("user_activity")
}

func TestSessionDisconnectCallback(t *testing.T) {
	server := newWSTestServer(t)

	disconnects := make(chan struct{}, 1)
	_, err := NewClient().Dial(context.Background(), booth.SessionConfig{
		SignedURL: server.url(),
		Tools:     testToolSet(),
		Callbacks: booth.SessionCallbacks{
			OnDisconnect: func() { disconnects <- struct{}{} },
		},
	})
	if err != nil {
		t.Fatalf("failed to dial: %v", err)
	}
	<-server.connected

	server.mu.Lock()
	server.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	server.conn.Close()
	server.mu.Unlock()

	select {
	case <-disconnects:
	case <-time.After(time.Second):
		t.Fatal("expected disconnect callback")
	}
}
