package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input   string
		wantCmd CommandType
		wantArg string
		wantOK  bool
	}{
		{"", CmdNone, "", true},
		{"   ", CmdNone, "", true},
		{"look", CmdLook, "", true},
		{"L", CmdLook, "", true},
		{"i", CmdInventory, "", true},
		{"take Old Key", CmdTake, "Old Key", true},
		{"GET  torch  ", CmdTake, "torch", true},
		{"talk librarian", CmdTalk, "librarian", true},
		{"answer Twenty  Two", CmdAnswer, "Twenty  Two", true},
		{"go north", CmdGo, "north", true},
		{"move East", CmdGo, "East", true},
		{"hint", CmdHint, "", true},
		{"h", CmdHelp, "", true},
		{"q", CmdQuit, "", true},
		{"dance wildly", CmdNone, "", false},
	}

	for _, tt := range tests {
		cmd, arg, ok := ParseCommand(tt.input)
		if cmd != tt.wantCmd || arg != tt.wantArg || ok != tt.wantOK {
			t.Errorf("ParseCommand(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.input, cmd, arg, ok, tt.wantCmd, tt.wantArg, tt.wantOK)
		}
	}
}

func TestEngine_Dispatch(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantErr     error
		wantHandled bool
		wantMessage string
	}{
		{name: "empty input", input: ""},
		{name: "help is left to the presentation", input: "help"},
		{name: "quit is left to the presentation", input: "quit"},
		{name: "unknown verb", input: "dance", wantErr: ErrUnknownCommand},
		{name: "take needs an item", input: "take", wantErr: ErrMissingArgument},
		{name: "talk needs a name", input: "talk   ", wantErr: ErrMissingArgument},
		{name: "answer needs text", input: "answer", wantErr: ErrMissingArgument},
		{name: "go needs a direction", input: "go", wantErr: ErrMissingArgument},
		{name: "take", input: "take brass", wantHandled: true, wantMessage: "You take the Brass Lamp."},
		{name: "take missing", input: "take rope", wantErr: ErrItemNotFound},
		{name: "move", input: "go east", wantHandled: true, wantMessage: "You walk east to the Bridge."},
		{name: "move locked", input: "go west", wantErr: ErrLocationPermanentlyLocked},
		{name: "answer current puzzle", input: "answer echo", wantHandled: true, wantMessage: "Correct! A new location is open: Cistern"},
		{name: "wrong answer", input: "a nope", wantErr: ErrWrongAnswer},
		{name: "hint current puzzle", input: "hint", wantHandled: true, wantMessage: "Hint 1/4: one"},
		{name: "inventory", input: "inventory", wantHandled: true, wantMessage: "Your inventory is empty."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			result, err := e.Dispatch(tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Dispatch(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Dispatch(%q) unexpected error: %v", tt.input, err)
			}
			if result.Handled != tt.wantHandled {
				t.Errorf("Handled = %v, want %v", result.Handled, tt.wantHandled)
			}
			if tt.wantMessage != "" && result.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", result.Message, tt.wantMessage)
			}
		})
	}
}

func TestEngine_DispatchNoPuzzleHere(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Solve("riddle", "echo")
	require.NoError(t, err)
	_, err = e.Move("north")
	require.NoError(t, err)

	for _, input := range []string{"answer echo", "hint", "puzzle"} {
		result, err := e.Dispatch(input)
		require.NoError(t, err, input)
		assert.Equal(t, "There is no puzzle here.", result.Message, input)
	}
}

func TestEngine_DispatchCountsTurns(t *testing.T) {
	e := newTestEngine(t)

	inputs := []string{"look", "", "help", "dance", "take", "take nothing", "go east", "status"}
	for _, in := range inputs {
		_, _ = e.Dispatch(in)
	}
	// Empty input, help, unknown verbs and missing arguments are not turns.
	assert.Equal(t, 4, e.Player().Turns)
}
