package tracing

import (
	"github.com/sarchlab/netsim/sim"
)

// CollectTrace lets the tracer collect event records from an engine.
func CollectTrace(domain sim.Hookable, tracer Tracer) {
	h := traceHook{t: tracer}
	domain.AcceptHook(&h)
}

// A traceHook is a hook that translates engine hook invocations into event
// records.
type traceHook struct {
	t Tracer
}

// Func calls the tracer interfaces when the hook is triggered
func (h *traceHook) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case sim.HookPosSchedule:
		evt := ctx.Item.(*sim.Event)
		delay := ctx.Detail.(sim.VTime)

		h.t.EventScheduled(EventRecord{
			Sequence:    evt.Sequence(),
			Context:     evt.Context(),
			ScheduledAt: evt.Time() - delay,
			Time:        evt.Time(),
			Delay:       delay,
		})
	case sim.HookPosBeforeEvent:
		evt := ctx.Item.(*sim.Event)

		h.t.EventExecuted(EventRecord{
			Sequence: evt.Sequence(),
			Context:  evt.Context(),
			Time:     evt.Time(),
		})
	}
}
