package sim

import "log"

// EventLogger is a hook that prints the information of each executed event
type EventLogger struct {
	LogHookBase
}

// NewEventLogger returns a new EventLogger which will write into the logger
func NewEventLogger(logger *log.Logger) *EventLogger {
	h := new(EventLogger)
	h.Logger = logger
	return h
}

// Func writes the event information into the logger
func (h *EventLogger) Func(ctx HookCtx) {
	if ctx.Pos != HookPosBeforeEvent {
		return
	}

	evt, ok := ctx.Item.(*Event)
	if !ok {
		return
	}

	if evt.Context() == NoContext {
		h.Logger.Printf("%s, evt %d", evt.Time(), evt.Sequence())
		return
	}

	h.Logger.Printf("%s, evt %d, node %d",
		evt.Time(), evt.Sequence(), evt.Context())
}
