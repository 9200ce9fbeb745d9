package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeFor(t *testing.T) {
	cases := []struct {
		d    Difficulty
		want Range
	}{
		{Easy, Range{1, 20}},
		{Normal, Range{1, 100}},
		{Hard, Range{1, 500}},
	}
	for _, tc := range cases {
		t.Run(string(tc.d), func(t *testing.T) {
			got, err := RangeFor(tc.d)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRangeFor_Unknown(t *testing.T) {
	_, err := RangeFor("Impossible")
	assert.ErrorIs(t, err, ErrUnknownDifficulty)

	_, err = RangeFor("")
	assert.ErrorIs(t, err, ErrUnknownDifficulty)
}

func TestRangesStrictlyWiden(t *testing.T) {
	ds := Difficulties()
	require.Equal(t, []Difficulty{Easy, Normal, Hard}, ds)

	for i := 1; i < len(ds); i++ {
		easier, err := RangeFor(ds[i-1])
		require.NoError(t, err)
		harder, err := RangeFor(ds[i])
		require.NoError(t, err)
		assert.Greater(t, harder.Size(), easier.Size(), "%s should be wider than %s", ds[i], ds[i-1])
	}
}

func TestParseDifficulty(t *testing.T) {
	cases := []struct {
		in   string
		want Difficulty
	}{
		{"Easy", Easy},
		{"normal", Normal},
		{"  HARD ", Hard},
	}
	for _, tc := range cases {
		got, err := ParseDifficulty(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}

	for _, bad := range []string{"", "medium", "Expert", "easy-ish"} {
		_, err := ParseDifficulty(bad)
		assert.ErrorIs(t, err, ErrUnknownDifficulty, bad)
	}
}

func TestCheck(t *testing.T) {
	assert.Equal(t, Result{OutcomeWin, "🎉 Correct!"}, Check(50, 50))
	assert.Equal(t, Result{OutcomeTooHigh, "📉 Go LOWER!"}, Check(60, 50))
	assert.Equal(t, Result{OutcomeTooLow, "📈 Go HIGHER!"}, Check(40, 50))
}

func TestCheck_HintMatchesDirection(t *testing.T) {
	for secret := -3; secret <= 60; secret++ {
		for guess := -5; guess <= 65; guess++ {
			res := Check(guess, secret)
			switch {
			case guess == secret:
				assert.Equal(t, OutcomeWin, res.Outcome)
			case guess > secret:
				require.Equal(t, OutcomeTooHigh, res.Outcome, "guess=%d secret=%d", guess, secret)
				require.Contains(t, res.Hint, "LOWER")
				require.NotContains(t, res.Hint, "HIGHER")
			default:
				require.Equal(t, OutcomeTooLow, res.Outcome, "guess=%d secret=%d", guess, secret)
				require.Contains(t, res.Hint, "HIGHER")
				require.NotContains(t, res.Hint, "LOWER")
			}
		}
	}
}

func TestNewGame_Normal(t *testing.T) {
	for i := 0; i < 200; i++ {
		s, err := NewGame("Normal")
		require.NoError(t, err)
		assert.Equal(t, Normal, s.Difficulty)
		assert.Equal(t, StatusPlaying, s.Status)
		assert.Equal(t, []int{}, s.History)
		assert.Equal(t, 1, s.Attempts)
		assert.True(t, s.Secret >= 1 && s.Secret <= 100, "secret %d out of range", s.Secret)
	}
}

func TestNewGame_SecretWithinEveryRange(t *testing.T) {
	for _, d := range Difficulties() {
		r, err := RangeFor(d)
		require.NoError(t, err)
		for i := 0; i < 100; i++ {
			s, err := NewGame(string(d))
			require.NoError(t, err)
			assert.True(t, r.Contains(s.Secret), "%s: secret %d outside %v", d, s.Secret, r)
		}
	}
}

func TestNewGame_HitsBothEnds(t *testing.T) {
	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		s, err := NewGame("Easy")
		require.NoError(t, err)
		seen[s.Secret] = true
	}
	assert.True(t, seen[1], "low bound never drawn")
	assert.True(t, seen[20], "high bound never drawn")
	assert.Len(t, seen, 20)
}

func TestNewGame_Unknown(t *testing.T) {
	_, err := NewGame("Nightmare")
	assert.ErrorIs(t, err, ErrUnknownDifficulty)
}

func TestNewGame_DrawError(t *testing.T) {
	boom := errors.New("entropy exhausted")
	_, err := newGame(Easy, func(Range) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
}

func TestNewGame_NeverWon(t *testing.T) {
	fixed := func(Range) (int, error) { return 7, nil }
	s, err := newGame(Easy, fixed)
	require.NoError(t, err)

	s, _, err = s.Apply(7)
	require.NoError(t, err)
	require.Equal(t, StatusWon, s.Status)

	for i := 0; i < 10; i++ {
		s, err = newGame(Easy, fixed)
		require.NoError(t, err)
		assert.Equal(t, StatusPlaying, s.Status)
		assert.Empty(t, s.History)
		assert.Equal(t, 1, s.Attempts)
	}
}

func TestApply(t *testing.T) {
	s, err := newGame(Normal, func(Range) (int, error) { return 42, nil })
	require.NoError(t, err)

	s1, res, err := s.Apply(60)
	require.NoError(t, err)
	assert.Equal(t, OutcomeTooHigh, res.Outcome)
	assert.Equal(t, []int{60}, s1.History)
	assert.Equal(t, 2, s1.Attempts)
	assert.Equal(t, StatusPlaying, s1.Status)

	s2, res, err := s1.Apply(10)
	require.NoError(t, err)
	assert.Equal(t, OutcomeTooLow, res.Outcome)
	assert.Equal(t, []int{60, 10}, s2.History)

	s3, res, err := s2.Apply(42)
	require.NoError(t, err)
	assert.Equal(t, OutcomeWin, res.Outcome)
	assert.Equal(t, StatusWon, s3.Status)
	assert.Equal(t, []int{60, 10, 42}, s3.History)
	assert.Equal(t, 4, s3.Attempts)

	// earlier snapshots are untouched
	assert.Empty(t, s.History)
	assert.Equal(t, []int{60}, s1.History)
	assert.Equal(t, 2, s1.Attempts)

	_, _, err = s3.Apply(1)
	assert.ErrorIs(t, err, ErrGameFinished)
}

func TestParseGuess(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr error
	}{
		{"42", 42, nil},
		{"  7 ", 7, nil},
		{"-3", -3, nil},
		{"42.0", 42, nil},
		{"7.9", 7, nil},
		{"", 0, ErrEmptyGuess},
		{"   ", 0, ErrEmptyGuess},
		{"abc", 0, ErrNotANumber},
		{"4 2", 0, ErrNotANumber},
		{"1.2.3", 0, ErrNotANumber},
		{"NaN.", 0, ErrNotANumber},
		{"1e400.0", 0, ErrNotANumber},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseGuess(tc.in)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
