package booth

import (
	"github.com/cekatlabs/booth-core/core/events"
)

// eventEmitter delivers an event to the booth's subscribers. Emitters must be
// safe for concurrent use and must not block.
type eventEmitter func(events.Event)

func noopEventEmitter(events.Event) {}
