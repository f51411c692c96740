package events

const (
	// KindToolCallStarted identifies a client tool call dispatched by the agent.
	KindToolCallStarted Kind = "tool_call.started"
	// KindToolCallCompleted identifies a client tool call that produced an acknowledgment.
	KindToolCallCompleted Kind = "tool_call.completed"
	// KindToolCallFailed identifies a client tool call rejected by its handler.
	KindToolCallFailed Kind = "tool_call.failed"
)

// ToolCallStarted marks the arrival of a client tool call from the
// conversation agent. Arguments is the raw JSON payload before decoding.
type ToolCallStarted struct {
	Base
	ID        string
	Name      string
	Arguments string
}

// NewToolCallStarted creates a tool call started event.
func NewToolCallStarted(id, name, arguments string) ToolCallStarted {
	return ToolCallStarted{
		Base:      NewBase(KindToolCallStarted),
		ID:        id,
		Name:      name,
		Arguments: arguments,
	}
}

// ToolCallCompleted marks a handled tool call. Response is the acknowledgment
// string returned to the agent.
type ToolCallCompleted struct {
	Base
	ID       string
	Name     string
	Response string
}

// NewToolCallCompleted creates a tool call completed event.
func NewToolCallCompleted(id, name, response string) ToolCallCompleted {
	return ToolCallCompleted{
		Base:     NewBase(KindToolCallCompleted),
		ID:       id,
		Name:     name,
		Response: response,
	}
}

// ToolCallFailed marks a tool call whose handler returned an error. The error
// text travels back to the agent flagged as a failure.
type ToolCallFailed struct {
	Base
	ID    string
	Name  string
	Error string
}

// NewToolCallFailed creates a tool call failed event.
func NewToolCallFailed(id, name, err string) ToolCallFailed {
	return ToolCallFailed{
		Base:  NewBase(KindToolCallFailed),
		ID:    id,
		Name:  name,
		Error: err,
	}
}
