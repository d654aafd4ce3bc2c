package system

import "github.com/younwookim/skyrunner/internal/domain/entity"

// EventKind identifies a gameplay event for the scoring/UI layer
type EventKind int

const (
	EventScore EventKind = iota
	EventPopup
	EventCollected
	EventPowerup
	EventEnemyDefeated
	EventPlayerHurt
	EventPlayerDied
	EventBounce
	EventLevelComplete
)

// String returns the event name
func (k EventKind) String() string {
	switch k {
	case EventScore:
		return "score"
	case EventPopup:
		return "popup"
	case EventCollected:
		return "collected"
	case EventPowerup:
		return "powerup"
	case EventEnemyDefeated:
		return "enemy-defeated"
	case EventPlayerHurt:
		return "player-hurt"
	case EventPlayerDied:
		return "player-died"
	case EventBounce:
		return "bounce"
	case EventLevelComplete:
		return "level-complete"
	default:
		return "unknown"
	}
}

// Event is a discrete notification emitted by the systems
type Event struct {
	Kind  EventKind
	Score int    // score delta for EventScore
	Text  string // popup text
	Pos   entity.Vec
}

// EventSink receives events. Implementations must not call back into the systems.
type EventSink interface {
	Emit(Event)
}

// EventBuffer collects events until drained
type EventBuffer struct {
	events []Event
}

// Emit appends an event
func (b *EventBuffer) Emit(e Event) {
	b.events = append(b.events, e)
}

// Drain returns the buffered events and clears the buffer
func (b *EventBuffer) Drain() []Event {
	out := b.events
	b.events = nil
	return out
}

// Len returns the number of buffered events
func (b *EventBuffer) Len() int {
	return len(b.events)
}

// Count returns the number of buffered events of a kind
func (b *EventBuffer) Count(kind EventKind) int {
	n := 0
	for _, e := range b.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

type discardSink struct{}

func (discardSink) Emit(Event) {}

func sinkOrDiscard(s EventSink) EventSink {
	if s == nil {
		return discardSink{}
	}
	return s
}

// emitScore emits a score delta followed by its popup
func emitScore(sink EventSink, score int, text string, pos entity.Vec) {
	sink.Emit(Event{Kind: EventScore, Score: score, Pos: pos})
	if text != "" {
		sink.Emit(Event{Kind: EventPopup, Text: text, Pos: pos})
	}
}
