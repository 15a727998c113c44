package game

// beats is the matchup cycle: each key defeats its value.
var beats = map[CardType]CardType{
	Warrior: Rider,
	Rider:   Archer,
	Archer:  Warrior,
}

// outcomes[first][second] is derived from beats at init.
var outcomes [numCardTypes][numCardTypes]Outcome

func init() {
	for first := CardType(0); first < numCardTypes; first++ {
		for second := CardType(0); second < numCardTypes; second++ {
			switch {
			case first == second:
				outcomes[first][second] = Tie
			case beats[first] == second:
				outcomes[first][second] = Win
			case beats[second] == first:
				outcomes[first][second] = Loss
			default:
				panic("matchup cycle does not cover " + first.String() + " vs " + second.String())
			}
		}
	}
}

// Resolve returns the outcome of first against second.
func Resolve(first, second CardType) Outcome {
	return outcomes[first][second]
}
