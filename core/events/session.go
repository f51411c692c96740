package events

const (
	// KindSessionConnected identifies the conversation session going live.
	KindSessionConnected Kind = "session.connected"
	// KindSessionDisconnected identifies the conversation session going away.
	KindSessionDisconnected Kind = "session.disconnected"
	// KindSessionError identifies a session-reported error.
	KindSessionError Kind = "session.error"
	// KindSessionModeChanged identifies a speaking/listening mode flip.
	KindSessionModeChanged Kind = "session.mode_changed"
	// KindSessionStatusChanged identifies a transport status update.
	KindSessionStatusChanged Kind = "session.status_changed"
	// KindSessionVolumeChanged identifies an output level update.
	KindSessionVolumeChanged Kind = "session.volume_changed"
)

// SessionConnected marks the conversation session becoming live.
type SessionConnected struct {
	Base
	BoothID string
}

// NewSessionConnected creates a session connected event.
func NewSessionConnected(boothID string) SessionConnected {
	return SessionConnected{Base: NewBase(KindSessionConnected), BoothID: boothID}
}

// SessionDisconnected marks the conversation session going away.
type SessionDisconnected struct {
	Base
	BoothID string
}

// NewSessionDisconnected creates a session disconnected event.
func NewSessionDisconnected(boothID string) SessionDisconnected {
	return SessionDisconnected{Base: NewBase(KindSessionDisconnected), BoothID: boothID}
}

// SessionError marks a session-reported error.
type SessionError struct {
	Base
	Error string
}

// NewSessionError creates a session error event.
func NewSessionError(err string) SessionError {
	return SessionError{Base: NewBase(KindSessionError), Error: err}
}

// SessionModeChanged marks a conversation mode change.
type SessionModeChanged struct {
	Base
	Mode string
}

// NewSessionModeChanged creates a mode changed event.
func NewSessionModeChanged(mode string) SessionModeChanged {
	return SessionModeChanged{Base: NewBase(KindSessionModeChanged), Mode: mode}
}

// SessionStatusChanged marks a transport status update.
type SessionStatusChanged struct {
	Base
	Status string
}

// NewSessionStatusChanged creates a status changed event.
func NewSessionStatusChanged(status string) SessionStatusChanged {
	return SessionStatusChanged{Base: NewBase(KindSessionStatusChanged), Status: status}
}

// SessionVolumeChanged marks an output level update.
type SessionVolumeChanged struct {
	Base
	Level float64
}

// NewSessionVolumeChanged creates a volume changed event.
func NewSessionVolumeChanged(level float64) SessionVolumeChanged {
	return SessionVolumeChanged{Base: NewBase(KindSessionVolumeChanged), Level: level}
}
