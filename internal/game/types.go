// internal/game/types.go
//
// Core type definitions for the number-guessing engine.
// Defines:
//   - Difficulty: named tier controlling the secret's range.
//   - Range: inclusive integer bounds for a tier.
//   - Outcome/Result: feedback for a single guess.
//   - State: snapshot of one player's current game.

package game

import "errors"

// Difficulty is a named tier. The zero value is not a valid tier.
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Normal Difficulty = "Normal"
	Hard   Difficulty = "Hard"
)

// Range is an inclusive [Low, High] interval.
type Range struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// Size reports how many integers the range covers.
func (r Range) Size() int { return r.High - r.Low + 1 }

// Contains reports whether n lies within the range.
func (r Range) Contains(n int) bool { return n >= r.Low && n <= r.High }

// Outcome is the categorical result of comparing a guess to the secret.
type Outcome string

const (
	OutcomeWin     Outcome = "Win"
	OutcomeTooHigh Outcome = "Too High"
	OutcomeTooLow  Outcome = "Too Low"
)

// Result pairs an Outcome with the hint shown to the player.
type Result struct {
	Outcome Outcome `json:"outcome"`
	Hint    string  `json:"hint"`
}

// Status of a game.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
)

// State holds a single game snapshot. Snapshots are treated as values:
// operations return a new State instead of editing one in place.
type State struct {
	Difficulty Difficulty // Tier the secret was drawn for.
	Secret     int        // Drawn uniformly from RangeFor(Difficulty).
	Status     Status     // playing → won.
	History    []int      // Past guesses, insertion order.
	Attempts   int        // Starts at 1, +1 per guess.
}

var (
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrGameFinished      = errors.New("game finished")
	ErrEmptyGuess        = errors.New("Enter a guess.")
	ErrNotANumber        = errors.New("That is not a number.")
)
