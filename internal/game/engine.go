// internal/game/engine.go
//
// Game engine for a single number-guessing session.
// Responsibilities:
//   - Map difficulty tiers to their inclusive ranges (fail-fast on unknown labels).
//   - Evaluate a guess against the secret and produce a directional hint.
//   - Build fresh game snapshots and derive the next snapshot per guess.
//   - Parse raw text input into an integer guess.
//
// Notes:
//   - Secrets are drawn with crypto/rand, same as answer selection elsewhere.
//   - Apply copies History so older snapshots stay valid after a guess.
package game

import (
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// ranges is ordered easy → hard; each span must be strictly wider than the last.
var ranges = []struct {
	d Difficulty
	r Range
}{
	{Easy, Range{Low: 1, High: 20}},
	{Normal, Range{Low: 1, High: 100}},
	{Hard, Range{Low: 1, High: 500}},
}

const (
	hintWin    = "🎉 Correct!"
	hintLower  = "📉 Go LOWER!"
	hintHigher = "📈 Go HIGHER!"
)

// Difficulties returns every tier, easiest first.
func Difficulties() []Difficulty {
	out := make([]Difficulty, 0, len(ranges))
	for _, e := range ranges {
		out = append(out, e.d)
	}
	return out
}

// ParseDifficulty resolves a label such as "hard" or " Normal ".
// Unknown labels return ErrUnknownDifficulty; there is no fallback tier.
func ParseDifficulty(label string) (Difficulty, error) {
	l := strings.TrimSpace(label)
	for _, e := range ranges {
		if strings.EqualFold(l, string(e.d)) {
			return e.d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, label)
}

// RangeFor returns the inclusive range for d.
func RangeFor(d Difficulty) (Range, error) {
	for _, e := range ranges {
		if e.d == d {
			return e.r, nil
		}
	}
	return Range{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, string(d))
}

// Check compares guess to secret. The hint always points toward the secret:
// a guess that is too high is told to go lower and vice versa.
func Check(guess, secret int) Result {
	switch {
	case guess == secret:
		return Result{Outcome: OutcomeWin, Hint: hintWin}
	case guess > secret:
		return Result{Outcome: OutcomeTooHigh, Hint: hintLower}
	default:
		return Result{Outcome: OutcomeTooLow, Hint: hintHigher}
	}
}

// NewGame builds a fresh snapshot for the given difficulty label.
func NewGame(label string) (State, error) {
	d, err := ParseDifficulty(label)
	if err != nil {
		return State{}, err
	}
	return newGame(d, randomIn)
}

// newGame is NewGame with an injectable secret source.
func newGame(d Difficulty, draw func(Range) (int, error)) (State, error) {
	r, err := RangeFor(d)
	if err != nil {
		return State{}, err
	}
	secret, err := draw(r)
	if err != nil {
		return State{}, fmt.Errorf("draw secret: %w", err)
	}
	return State{
		Difficulty: d,
		Secret:     secret,
		Status:     StatusPlaying,
		History:    []int{},
		Attempts:   1,
	}, nil
}

// Apply evaluates guess and returns the next snapshot plus the feedback.
// The receiver is left untouched. Guessing on a won game is rejected.
func (s State) Apply(guess int) (State, Result, error) {
	if s.Status == StatusWon {
		return s, Result{}, ErrGameFinished
	}
	res := Check(guess, s.Secret)

	next := s
	next.History = make([]int, len(s.History), len(s.History)+1)
	copy(next.History, s.History)
	next.History = append(next.History, guess)
	next.Attempts = s.Attempts + 1
	if res.Outcome == OutcomeWin {
		next.Status = StatusWon
	}
	return next, res, nil
}

// Range is a convenience for RangeFor(s.Difficulty).
func (s State) Range() (Range, error) { return RangeFor(s.Difficulty) }

// ParseGuess turns raw text input into a guess.
// Decimal input ("42.0", "7.9") is truncated toward zero.
func ParseGuess(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrEmptyGuess
	}
	if strings.Contains(raw, ".") {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) ||
			f >= math.MaxInt64 || f <= math.MinInt64 {
			return 0, ErrNotANumber
		}
		return int(f), nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ErrNotANumber
	}
	return n, nil
}

// randomIn draws uniformly from r using crypto/rand.
func randomIn(r Range) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(r.Size())))
	if err != nil {
		return 0, err
	}
	return r.Low + int(n.Int64()), nil
}
