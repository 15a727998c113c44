package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestMemoryLoggerSequence(t *testing.T) {
	l := NewMemoryLogger()
	l.Log(NewCardRevealedEvent(1, 0, 2, 1, "Rider"))
	l.Log(NewCardRevealedEvent(1, 1, 0, 0, "Rider"))
	l.Log(NewCardHiddenEvent(1, 0, 2, 1))

	if l.Seq() != 3 {
		t.Fatalf("Expected seq 3, got %d", l.Seq())
	}
	for i, e := range l.Events() {
		if e.Seq != i+1 {
			t.Errorf("Event %d: expected seq %d, got %d", i, i+1, e.Seq)
		}
	}

	since := l.Since(1)
	if len(since) != 2 || since[0].Seq != 2 {
		t.Fatalf("Expected events 2..3, got %v", since)
	}
	since[0].Details = "changed"
	if l.Events()[1].Details == "changed" {
		t.Error("Expected Since to return a copy")
	}
	if l.Since(3) != nil {
		t.Error("Expected nothing after the last event")
	}
	if got := len(l.EventsOfType(EventCardRevealed)); got != 2 {
		t.Errorf("Expected 2 reveals, got %d", got)
	}
	if l.LastEvent().Type != EventCardHidden {
		t.Errorf("Expected last event CardHidden, got %s", l.LastEvent().Type)
	}
}

func TestTextLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewTextLogger(&buf)
	l.Log(NewTurnChangedEvent(2, 1))
	l.Log(NewMatchEndedEvent(2, 0))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %q", buf.String())
	}
	if !strings.Contains(lines[0], "=== Turn 2 (Opponent) ===") {
		t.Errorf("Unexpected turn line: %q", lines[0])
	}
	if !strings.Contains(lines[1], "Player wins!") {
		t.Errorf("Unexpected end line: %q", lines[1])
	}
}

func TestStructuredLoggerFields(t *testing.T) {
	base, hook := test.NewNullLogger()
	base.SetLevel(logrus.DebugLevel)
	l := NewStructuredLogger(base.WithField("match", "m1"))

	l.Log(NewCardRevealedEvent(3, 1, 4, 5, "Archer"))
	l.Log(NewTurnChangedEvent(4, 0))

	entries := hook.AllEntries()
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	reveal := entries[0]
	if reveal.Level != logrus.DebugLevel {
		t.Errorf("Expected debug level, got %s", reveal.Level)
	}
	want := logrus.Fields{"match": "m1", "seq": 1, "turn": 3, "event": "CardRevealed", "side": "Opponent", "x": 4, "y": 5, "card": "Archer"}
	for k, v := range want {
		if reveal.Data[k] != v {
			t.Errorf("Field %s: expected %v, got %v", k, v, reveal.Data[k])
		}
	}
	if _, ok := entries[1].Data["x"]; ok {
		t.Error("Expected no coordinates on TurnChanged")
	}
	if len(l.Events()) != 2 {
		t.Errorf("Expected events kept in memory, got %d", len(l.Events()))
	}
}

func TestEventTypeString(t *testing.T) {
	names := map[EventType]string{
		EventCardRevealed: "CardRevealed",
		EventCardHidden:   "CardHidden",
		EventCardRemoved:  "CardRemoved",
		EventTurnChanged:  "TurnChanged",
		EventMatchEnded:   "MatchEnded",
		EventType(99):     "Unknown",
	}
	for et, want := range names {
		if et.String() != want {
			t.Errorf("Expected %s, got %s", want, et.String())
		}
	}
}
