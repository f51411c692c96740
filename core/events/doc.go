// Package events defines the typed booth runtime event contract.
//
// Event kinds are grouped by receiver-facing namespaces:
//
//   - video.*
//   - session.*
//   - tool_call.*
//   - message.*
//   - recommendation.*
//   - phone_capture.*
//   - report.*
//   - notice.*
//   - preload.*
//
// video events
//
//   - VideoChanged (video.changed): the playback driver was handed a new
//     asset; includes the semantic role and asset URL.
//
// session events
//
//   - SessionConnected (session.connected): the conversation session is live.
//   - SessionDisconnected (session.disconnected): the session went away.
//   - SessionError (session.error): the session reported an error.
//   - SessionModeChanged (session.mode_changed): speaking/listening mode flip.
//   - SessionStatusChanged (session.status_changed): transport status string.
//   - SessionVolumeChanged (session.volume_changed): output level update.
//
// tool_call events
//
//   - ToolCallStarted (tool_call.started): tool execution started.
//   - ToolCallCompleted (tool_call.completed): tool execution completed.
//   - ToolCallFailed (tool_call.failed): tool execution failed.
//
// message events
//
//   - MessageShown (message.shown): a banner message became visible.
//   - MessageCleared (message.cleared): the banner message expired or was
//     replaced by an empty value.
//
// recommendation events
//
//   - RecommendationShown (recommendation.shown): a catalog entry was surfaced
//     or marked selected.
//   - RecommendationCleared (recommendation.cleared): the card was dismissed.
//
// phone_capture events
//
//   - PhoneCaptureOpened (phone_capture.opened): the capture gate opened.
//   - PhoneCaptureSettled (phone_capture.settled): the gate settled; includes
//     the outcome (confirmed, cancelled, superseded, torn down).
//
// report events
//
//   - ReportCreated (report.created): a consultation document was generated
//     and dispatched.
//   - ReportSent (report.sent): an interview report was forwarded.
//
// notice events
//
//   - NoticeShown (notice.shown): a transient user-visible notice surfaced.
//
// preload events
//
//   - PreloadProgress (preload.progress): video asset preloading advanced.
package events
