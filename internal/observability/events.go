package observability

import (
	"github.com/phanxgames/flurry"
	"go.uber.org/zap"
)

// EventLogger logs engine and stroke events at debug level.
type EventLogger struct {
	log *zap.Logger
}

// NewEventLogger returns an event sink that writes to log.
func NewEventLogger(log *zap.Logger) *EventLogger {
	return &EventLogger{log: log.Named("events")}
}

// EmitEvent implements flurry.EventSink.
func (l *EventLogger) EmitEvent(ev flurry.Event) {
	fields := []zap.Field{zap.Stringer("event", ev.Type), zap.Stringer("shape", ev.Shape)}
	switch ev.Type {
	case flurry.EventShapeChanged:
		fields = append(fields, zap.Stringer("previous", ev.Previous))
	case flurry.EventColorChanged:
		fields = append(fields, zap.String("color", ev.Color.Hex()))
	case flurry.EventCountChanged:
		fields = append(fields, zap.Int("count", ev.Count))
	case flurry.EventStrokeRecognized, flurry.EventStrokeRejected:
		fields = append(fields,
			zap.Stringer("reason", ev.Stroke.Reason),
			zap.Int("points", ev.Stroke.Points),
		)
	}
	l.log.Debug("event", fields...)
}

// Fanout delivers each event to every non-nil sink in order.
type Fanout []flurry.EventSink

// EmitEvent implements flurry.EventSink.
func (f Fanout) EmitEvent(ev flurry.Event) {
	for _, s := range f {
		if s != nil {
			s.EmitEvent(ev)
		}
	}
}
