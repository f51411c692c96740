// Package elevenlabs implements the conversation session boundary against
// the ElevenLabs conversational websocket protocol: signed-url bootstrap,
// session dialing with the booth's client tool registry, and the read loop
// that turns wire frames into session callbacks and tool dispatches.
package elevenlabs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/codes"

	booth "github.com/cekatlabs/booth-core/core"
	"github.com/cekatlabs/booth-core/core/tools"
)

// Client dials conversation sessions. The zero value is not usable; build
// one with NewClient.
type Client struct {
	dialer *websocket.Dialer
}

type ClientOption func(*Client)

// WithWebsocketDialer overrides the websocket dialer, mainly for tests.
func WithWebsocketDialer(dialer *websocket.Dialer) ClientOption {
	return func(c *Client) { c.dialer = dialer }
}

func NewClient(opts ...ClientOption) *Client {
	c := &Client{dialer: websocket.DefaultDialer}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dial opens the websocket, sends the initiation payload carrying the
// booth's client tool definitions, and starts the read loop. The returned
// session delivers events through the configured callbacks in arrival order.
func (c *Client) Dial(ctx context.Context, config booth.SessionConfig) (booth.Session, error) {
	ctx, span := tracer.Start(ctx, "dial_session")
	defer span.End()

	if config.SignedURL == "" {
		return nil, fmt.Errorf("signed url is required")
	}

	conn, resp, err := c.dialer.DialContext(ctx, config.SignedURL, nil)
	if err != nil {
		recordedErr := fmt.Errorf("failed to open conversation websocket: %w", err)
		span.RecordError(recordedErr)
		span.SetStatus(codes.Error, recordedErr.Error())
		return nil, recordedErr
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	session := &Session{
		conn:      conn,
		tools:     config.Tools,
		callbacks: config.Callbacks,
		done:      make(chan struct{}),
	}

	if err := session.writeJSON(initiationFrame{
		Type:        typeConversationInitiation,
		ClientTools: config.Tools.Definitions(),
	}); err != nil {
		conn.Close()
		recordedErr := fmt.Errorf("failed to send initiation payload: %w", err)
		span.RecordError(recordedErr)
		span.SetStatus(codes.Error, recordedErr.Error())
		return nil, recordedErr
	}

	go session.readAndProcessMessages()

	return session, nil
}

// Session is a live conversation over a websocket. It satisfies the booth's
// session contract including the optional message and activity capabilities.
type Session struct {
	conn   *websocket.Conn
	connMu sync.Mutex

	tools     tools.Set
	callbacks booth.SessionCallbacks

	closeOnce sync.Once
	done      chan struct{}
}

// EndSession closes the websocket. The read loop drains and fires the
// disconnect callback once.
func (s *Session) EndSession(ctx context.Context) error {
	var err error
	s.closeOnce.Do(func() {
		s.connMu.Lock()
		defer s.connMu.Unlock()

		writeErr := s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			deadlineFromContext(ctx))
		closeErr := s.conn.Close()
		if writeErr != nil {
			err = fmt.Errorf("failed to close conversation websocket: %w", writeErr)
		} else if closeErr != nil {
			err = fmt.Errorf("failed to close conversation websocket: %w", closeErr)
		}
	})
	return err
}

// SendUserMessage delivers a typed user message into the conversation.
func (s *Session) SendUserMessage(text string) error {
	if err := s.writeJSON(userMessageFrame{Type: typeUserMessage, Text: text}); err != nil {
		return fmt.Errorf("failed to send user message: %w", err)
	}
	return nil
}

// SendUserActivity signals user presence. Best-effort: failures are logged
// and swallowed.
func (s *Session) SendUserActivity() {
	if err := s.writeJSON(userActivityFrame{Type: typeUserActivity}); err != nil {
		logger.Debug("failed to send user activity", "error", err)
	}
}

func (s *Session) writeJSON(v any) error {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	return s.conn.WriteJSON(v)
}

func deadlineFromContext(ctx context.Context) time.Time {
	if deadline, ok := ctx.Deadline(); ok {
		return deadline
	}
	return time.Now().Add(5 * time.Second)
}

func (s *Session) readAndProcessMessages() {
	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			select {
			case <-s.done:
				return
			default:
			}
			close(s.done)

			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				if s.callbacks.OnDisconnect != nil {
					s.callbacks.OnDisconnect()
				}
				return
			}
			if s.callbacks.OnError != nil {
				s.callbacks.OnError(fmt.Errorf("conversation websocket failed: %w", err))
			} else if s.callbacks.OnDisconnect != nil {
				s.callbacks.OnDisconnect()
			}
			return
		}

		s.processMessage(msg)
	}
}

// processMessage handles one wire frame. Events are handled to completion in
// arrival order; only tool side effects escape the loop through the
// registry's own mechanisms.
func (s *Session) processMessage(msg []byte) {
	var frame inboundFrame
	if err := json.Unmarshal(msg, &frame); err != nil {
		logger.Warn("failed to unmarshal conversation frame", "error", err)
		return
	}

	switch frame.Type {
	case typeConversationMetadata:
		if s.callbacks.OnConnect != nil {
			s.callbacks.OnConnect()
		}
		if s.callbacks.OnStatusChange != nil {
			s.callbacks.OnStatusChange("connected")
		}

	case typeAgentResponse:
		if s.callbacks.OnModeChange != nil {
			s.callbacks.OnModeChange(booth.ModeSpeaking)
		}

	case typeUserTranscript, typeInterruption:
		if s.callbacks.OnModeChange != nil {
			s.callbacks.OnModeChange(booth.ModeListening)
		}

	case typePing:
		eventID := 0
		if frame.Ping != nil {
			eventID = frame.Ping.EventID
		}
		if err := s.writeJSON(pongFrame{Type: typePong, EventID: eventID}); err != nil {
			logger.Warn("failed to answer ping", "error", err)
		}

	case typeVADScore:
		if frame.VADScore != nil && s.callbacks.OnVolumeChange != nil {
			s.callbacks.OnVolumeChange(frame.VADScore.VADScore)
		}

	case typeClientToolCall:
		if frame.ClientToolCall != nil {
			s.dispatchToolCall(*frame.ClientToolCall)
		}

	default:
		if s.callbacks.OnStatusChange != nil {
			s.callbacks.OnStatusChange(frame.Type)
		}
	}
}

// dispatchToolCall runs a tool through the registry and returns the result
// frame. Handler failures are flagged, never dropped.
func (s *Session) dispatchToolCall(call clientToolCallEvent) {
	_, span := tracer.Start(context.Background(), "client_tool_call")
	defer span.End()

	result, err := s.tools.Call(call.ToolName, string(call.Parameters))
	isError := false
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Error("client tool call failed", "tool", call.ToolName, "error", err)
		result = err.Error()
		isError = true
	}

	if err := s.writeJSON(clientToolResultFrame{
		Type:       typeClientToolResult,
		ToolCallID: call.ToolCallID,
		Result:     result,
		IsError:    isError,
	}); err != nil {
		logger.Error("failed to send client tool result", "tool", call.ToolName, "error", err)
	}
}

// SignedURLClient performs the connection bootstrap against the same-origin
// API, instrumented end to end.
type SignedURLClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewSignedURLClient(baseURL string) *SignedURLClient {
	return &SignedURLClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// GetSignedURL fetches the signed websocket URL for a booth.
func (c *SignedURLClient) GetSignedURL(ctx context.Context, boothID string) (string, error) {
	endpoint, err := url.Parse(c.baseURL + "/api/signed-url")
	if err != nil {
		return "", fmt.Errorf("invalid signed url endpoint: %w", err)
	}
	if boothID != "" {
		query := endpoint.Query()
		query.Set("boothId", boothID)
		endpoint.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build signed url request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to get signed url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("signed url request failed with status %d", resp.StatusCode)
	}

	var payload struct {
		SignedURL string `json:"signedUrl"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode signed url response: %w", err)
	}
	if payload.SignedURL == "" {
		return "", fmt.Errorf("signed url response is empty")
	}
	return payload.SignedURL, nil
}
