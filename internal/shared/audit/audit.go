package audit

import (
	"context"

	"blog-backend/pkg/logger"
)

type Action string

const (
	ActionRegister Action = "register"
	ActionLogin    Action = "login"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
)

// Event describes a state change worth recording.
type Event struct {
	Action   Action
	Entity   string
	EntityID string
	Actor    string
}

// Recorder consumes audit events.
type Recorder interface {
	Record(ctx context.Context, event Event)
}

// Dispatcher fans events out to its observers. Delivery is
// fire-and-forget: a slow or panicking observer never affects the
// request that produced the event.
type Dispatcher struct {
	observers []Recorder
}

func NewDispatcher(observers ...Recorder) *Dispatcher {
	return &Dispatcher{observers: observers}
}

func (d *Dispatcher) Record(ctx context.Context, event Event) {
	for _, observer := range d.observers {
		go func(o Recorder) {
			defer func() {
				if p := recover(); p != nil {
					logger.Error().Interface("panic", p).Msg("audit observer panicked")
				}
			}()
			o.Record(context.WithoutCancel(ctx), event)
		}(observer)
	}
}

// LogRecorder writes audit events to the application log.
type LogRecorder struct{}

func NewLogRecorder() *LogRecorder {
	return &LogRecorder{}
}

func (r *LogRecorder) Record(_ context.Context, event Event) {
	logger.Info().
		Str("action", string(event.Action)).
		Str("entity", event.Entity).
		Str("entity_id", event.EntityID).
		Str("actor", event.Actor).
		Msg("audit event")
}
