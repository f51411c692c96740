package elevenlabs

import (
	"encoding/json"

	"github.com/cekatlabs/booth-core/core/tools"
)

// Wire frame types of the conversational websocket protocol.
const (
	typeConversationInitiation = "conversation_initiation_client_data"
	typeConversationMetadata   = "conversation_initiation_metadata"
	typeAgentResponse          = "agent_response"
	typeUserTranscript         = "user_transcript"
	typePing                   = "ping"
	typePong                   = "pong"
	typeClientToolCall         = "client_tool_call"
	typeClientToolResult       = "client_tool_result"
	typeUserMessage            = "user_message"
	typeUserActivity           = "user_activity"
	typeVADScore               = "vad_score"
	typeInterruption           = "interruption"
)

type inboundFrame struct {
	Type string `json:"type"`

	ConversationMetadata *conversationMetadataEvent `json:"conversation_initiation_metadata_event,omitempty"`
	AgentResponse        *agentResponseEvent        `json:"agent_response_event,omitempty"`
	UserTranscript       *userTranscriptEvent       `json:"user_transcription_event,omitempty"`
	Ping                 *pingEvent                 `json:"ping_event,omitempty"`
	ClientToolCall       *clientToolCallEvent       `json:"client_tool_call,omitempty"`
	VADScore             *vadScoreEvent             `json:"vad_score_event,omitempty"`
}

type conversationMetadataEvent struct {
	ConversationID string `json:"conversation_id"`
}

type agentResponseEvent struct {
	AgentResponse string `json:"agent_response"`
}

type userTranscriptEvent struct {
	UserTranscript string `json:"user_transcript"`
}

type pingEvent struct {
	EventID int `json:"event_id"`
	PingMS  int `json:"ping_ms"`
}

type clientToolCallEvent struct {
	ToolName   string          `json:"tool_name"`
	ToolCallID string          `json:"tool_call_id"`
	Parameters json.RawMessage `json:"parameters"`
}

type vadScoreEvent struct {
	VADScore float64 `json:"vad_score"`
}

type initiationFrame struct {
	Type        string           `json:"type"`
	ClientTools []tools.Function `json:"client_tools,omitempty"`
}

type pongFrame struct {
	Type    string `json:"type"`
	EventID int    `json:"event_id"`
}

type clientToolResultFrame struct {
	Type       string `json:"type"`
	ToolCallID string `json:"tool_call_id"`
	Result     string `json:"result"`
	IsError    bool   `json:"is_error"`
}

type userMessageFrame struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type userActivityFrame struct {
	Type string `json:"type"`
}
