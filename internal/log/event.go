package log

// EventType enumerates all observable match events.
type EventType int

const (
	EventCardRevealed EventType = iota
	EventCardHidden
	EventCardRemoved
	EventTurnChanged
	EventMatchEnded
)

func (e EventType) String() string {
	switch e {
	case EventCardRevealed:
		return "CardRevealed"
	case EventCardHidden:
		return "CardHidden"
	case EventCardRemoved:
		return "CardRemoved"
	case EventTurnChanged:
		return "TurnChanged"
	case EventMatchEnded:
		return "MatchEnded"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable state change in a match.
//
// Side is the owner of the card for card events, the newly active side for
// TurnChanged and the winning side for MatchEnded. Sides and card types are
// carried as their display names so this package stays free of game imports.
type GameEvent struct {
	Seq      int       // monotonic sequence number
	Turn     int       // which turn (1-based)
	Type     EventType // event type
	Side     int       // 0 = player, 1 = opponent
	X, Y     int       // grid coordinate (card events only)
	CardType string    // e.g. "Warrior" (CardRevealed only)
	Details  string    // human-readable detail string
}

// HasCard reports whether the event refers to a single card on the board.
func (e GameEvent) HasCard() bool {
	switch e.Type {
	case EventCardRevealed, EventCardHidden, EventCardRemoved:
		return true
	}
	return false
}
