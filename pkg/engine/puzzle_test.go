package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_ViewPuzzle(t *testing.T) {
	e := newTestEngine(t)

	view, err := e.ViewPuzzle()
	require.NoError(t, err)
	assert.True(t, view.HasPuzzle)
	assert.Equal(t, "riddle", view.PuzzleID)
	assert.Equal(t, "PUZZLE:\nWhat answers without a mouth?", view.Message)

	_, err = e.Solve("riddle", "echo")
	require.NoError(t, err)
	_, err = e.Move("north")
	require.NoError(t, err)

	view, err = e.ViewPuzzle()
	require.NoError(t, err)
	assert.False(t, view.HasPuzzle)
	assert.Equal(t, "There is no puzzle here.", view.Message)
}

func TestEngine_Solve(t *testing.T) {
	tests := []struct {
		name    string
		answer  string
		wantErr error
	}{
		{name: "exact", answer: "Echo"},
		{name: "lowercase", answer: "echo"},
		{name: "uppercase", answer: "ECHO"},
		{name: "wrong", answer: "silence", wantErr: ErrWrongAnswer},
		{name: "surrounding space is not trimmed", answer: " echo", wantErr: ErrWrongAnswer},
		{name: "empty", answer: "", wantErr: ErrWrongAnswer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			result, err := e.Solve("riddle", tt.answer)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Solve(%q) error = %v, want %v", tt.answer, err, tt.wantErr)
				}
				if e.World().Puzzles["riddle"].Solved {
					t.Error("puzzle marked solved after a wrong answer")
				}
				if e.Player().UnlockedLocations.Has("cistern") {
					t.Error("reward unlocked after a wrong answer")
				}
				return
			}
			if err != nil {
				t.Fatalf("Solve(%q) unexpected error: %v", tt.answer, err)
			}
			if result.RewardID != "cistern" || result.RewardName != "Cistern" {
				t.Errorf("reward = %q (%q), want cistern (Cistern)", result.RewardID, result.RewardName)
			}
			if !e.World().Puzzles["riddle"].Solved || !e.Player().CompletedPuzzles.Has("riddle") {
				t.Error("puzzle not recorded as solved")
			}
		})
	}
}

func TestEngine_SolveRetriesAndRepeats(t *testing.T) {
	e := newTestEngine(t)

	for i := 0; i < 10; i++ {
		_, err := e.Solve("riddle", "wrong")
		require.ErrorIs(t, err, ErrWrongAnswer)
	}
	result, err := e.Solve("riddle", "echo")
	require.NoError(t, err)
	assert.Equal(t, "Correct! A new location is open: Cistern", result.Message)

	_, err = e.Solve("riddle", "echo")
	assert.ErrorIs(t, err, ErrPuzzleAlreadySolved)
	_, err = e.Solve("riddle", "wrong")
	assert.ErrorIs(t, err, ErrPuzzleAlreadySolved)

	_, err = e.Solve("sphinx", "echo")
	assert.ErrorIs(t, err, ErrPuzzleNotFound)
}

func TestEngine_SolveWithoutReward(t *testing.T) {
	e := newTestEngine(t)
	unlockedBefore := e.Player().UnlockedLocations.Len()

	result, err := e.Solve("blank", "X")
	require.NoError(t, err)
	assert.Empty(t, result.RewardID)
	assert.Equal(t, "Correct! The puzzle is solved.", result.Message)
	assert.Equal(t, unlockedBefore, e.Player().UnlockedLocations.Len())
}

func TestEngine_Hint(t *testing.T) {
	e := newTestEngine(t)

	for i, want := range []string{"one", "two", "three", "four"} {
		result, err := e.Hint("riddle")
		require.NoError(t, err)
		assert.Equal(t, HintRevealed, result.Status)
		assert.Equal(t, want, result.Hint)
		assert.Equal(t, i+1, result.Number)
		assert.Equal(t, 4, result.Total)
	}

	for i := 0; i < 3; i++ {
		result, err := e.Hint("riddle")
		require.NoError(t, err)
		assert.Equal(t, AllHintsExhausted, result.Status)
		assert.Empty(t, result.Hint)
	}
	assert.Equal(t, 4, e.World().Puzzles["riddle"].HintCursor)

	result, err := e.Hint("blank")
	require.NoError(t, err)
	assert.Equal(t, NoHintsAvailable, result.Status)

	_, err = e.Hint("sphinx")
	assert.ErrorIs(t, err, ErrPuzzleNotFound)
}

func TestHintStatus_String(t *testing.T) {
	tests := []struct {
		status HintStatus
		want   string
	}{
		{HintRevealed, "revealed"},
		{NoHintsAvailable, "no_hints_available"},
		{AllHintsExhausted, "all_hints_exhausted"},
		{HintStatus(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("HintStatus(%d).String() = %q, want %q", int(tt.status), got, tt.want)
		}
	}
}
