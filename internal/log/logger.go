package log

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// EventLogger is the interface for logging match events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions and hosts ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// Since returns a copy of the events logged after sequence number seq.
func (l *MemoryLogger) Since(seq int) []GameEvent {
	if seq < 0 {
		seq = 0
	}
	if seq >= len(l.events) {
		return nil
	}
	out := make([]GameEvent, len(l.events)-seq)
	copy(out, l.events[seq:])
	return out
}

// Seq returns the sequence number of the last logged event.
func (l *MemoryLogger) Seq() int {
	return l.seq
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(l.LastEvent()))
}

// --- StructuredLogger: mirrors events into logrus ---

// StructuredLogger records events in memory and emits each one as a logrus
// entry at debug level.
type StructuredLogger struct {
	MemoryLogger
	entry *logrus.Entry
}

func NewStructuredLogger(entry *logrus.Entry) *StructuredLogger {
	return &StructuredLogger{entry: entry}
}

func (l *StructuredLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	event = l.LastEvent()

	fields := logrus.Fields{
		"seq":   event.Seq,
		"turn":  event.Turn,
		"event": event.Type.String(),
		"side":  SideName(event.Side),
	}
	if event.HasCard() {
		fields["x"] = event.X
		fields["y"] = event.Y
	}
	if event.CardType != "" {
		fields["card"] = event.CardType
	}
	l.entry.WithFields(fields).Debug(event.Details)
}

// --- Formatting ---

// SideName returns "Player" or "Opponent" for display.
func SideName(side int) string {
	if side == 0 {
		return "Player"
	}
	return "Opponent"
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	return fmt.Sprintf("T%-3d #%-4d| %s", e.Turn, e.Seq, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors ---

func NewCardRevealedEvent(turn, side, x, y int, cardType string) GameEvent {
	return GameEvent{
		Turn:     turn,
		Type:     EventCardRevealed,
		Side:     side,
		X:        x,
		Y:        y,
		CardType: cardType,
		Details:  fmt.Sprintf("%s card (%d,%d) revealed: %s", SideName(side), x, y, cardType),
	}
}

func NewCardHiddenEvent(turn, side, x, y int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Type:    EventCardHidden,
		Side:    side,
		X:       x,
		Y:       y,
		Details: fmt.Sprintf("%s card (%d,%d) turned face-down", SideName(side), x, y),
	}
}

func NewCardRemovedEvent(turn, side, x, y int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Type:    EventCardRemoved,
		Side:    side,
		X:       x,
		Y:       y,
		Details: fmt.Sprintf("%s card (%d,%d) removed from play", SideName(side), x, y),
	}
}

func NewTurnChangedEvent(turn, side int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Type:    EventTurnChanged,
		Side:    side,
		Details: fmt.Sprintf("=== Turn %d (%s) ===", turn, SideName(side)),
	}
}

func NewMatchEndedEvent(turn, winner int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Type:    EventMatchEnded,
		Side:    winner,
		Details: fmt.Sprintf("%s wins! (%s has no cards left)", SideName(winner), SideName(1-winner)),
	}
}
