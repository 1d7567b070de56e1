package engine

import (
	"fmt"
	"strings"
)

// CommandType is a verb the engine dispatches.
type CommandType string

const (
	CmdLook      CommandType = "look"
	CmdInventory CommandType = "inventory"
	CmdTake      CommandType = "take"
	CmdTalk      CommandType = "talk"
	CmdPuzzle    CommandType = "puzzle"
	CmdAnswer    CommandType = "answer"
	CmdHint      CommandType = "hint"
	CmdGo        CommandType = "go"
	CmdStatus    CommandType = "status"
	CmdHelp      CommandType = "help"
	CmdQuit      CommandType = "quit"
	CmdNone      CommandType = "" // Empty input
)

var knownCommands = map[string]CommandType{
	"look":      CmdLook,
	"l":         CmdLook,
	"inventory": CmdInventory,
	"inv":       CmdInventory,
	"i":         CmdInventory,
	"take":      CmdTake,
	"get":       CmdTake,
	"talk":      CmdTalk,
	"t":         CmdTalk,
	"puzzle":    CmdPuzzle,
	"answer":    CmdAnswer,
	"a":         CmdAnswer,
	"hint":      CmdHint,
	"go":        CmdGo,
	"move":      CmdGo,
	"status":    CmdStatus,
	"help":      CmdHelp,
	"h":         CmdHelp,
	"quit":      CmdQuit,
	"q":         CmdQuit,
}

var usage = map[CommandType]string{
	CmdTake:   "take [item name]",
	CmdTalk:   "talk [character name]",
	CmdAnswer: "answer [your answer]",
	CmdGo:     "go [direction]",
}

// ParseCommand splits input into a verb and its argument. The verb is matched
// case-insensitively; the argument keeps its case and inner spacing. Unknown
// verbs return CmdNone with ok false.
func ParseCommand(input string) (cmd CommandType, arg string, ok bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return CmdNone, "", true
	}
	verb, rest, _ := strings.Cut(trimmed, " ")
	cmd, ok = knownCommands[strings.ToLower(verb)]
	if !ok {
		return CmdNone, "", false
	}
	return cmd, strings.TrimSpace(rest), true
}

// CommandResult is the outcome of one dispatched command.
type CommandResult struct {
	Command CommandType
	Handled bool   // False when the presentation must act (help, quit, empty input)
	Message string // Text to show the player
}

// Dispatch runs one player command. Each command maps to exactly one engine
// operation; help and quit are returned unhandled for the presentation.
// Failures come back as errors whose text is meant for the player.
func (e *Engine) Dispatch(input string) (*CommandResult, error) {
	cmd, arg, ok := ParseCommand(input)
	if !ok {
		verb, _, _ := strings.Cut(strings.TrimSpace(input), " ")
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, verb)
	}
	if cmd == CmdNone || cmd == CmdHelp || cmd == CmdQuit {
		return &CommandResult{Command: cmd}, nil
	}
	if format, needsArg := usage[cmd]; needsArg && arg == "" {
		return nil, fmt.Errorf("%w, use: %s", ErrMissingArgument, format)
	}

	if e.playing() == nil {
		e.tick()
	}
	e.Logger().Debug("Command dispatched", "command", string(cmd), "arg", arg, "turn", e.player.Turns)

	msg, err := e.run(cmd, arg)
	if err != nil {
		return nil, err
	}
	return &CommandResult{Command: cmd, Handled: true, Message: msg}, nil
}

func (e *Engine) run(cmd CommandType, arg string) (string, error) {
	switch cmd {
	case CmdLook:
		r, err := e.Look()
		if err != nil {
			return "", err
		}
		return r.Message, nil

	case CmdInventory:
		return e.ListInventory().Message, nil

	case CmdTake:
		r, err := e.PickUp(arg)
		if err != nil {
			return "", err
		}
		return r.Message, nil

	case CmdTalk:
		r, err := e.TalkTo(arg)
		if err != nil {
			return "", err
		}
		return r.Message, nil

	case CmdPuzzle:
		r, err := e.ViewPuzzle()
		if err != nil {
			return "", err
		}
		return r.Message, nil

	case CmdAnswer:
		view, err := e.ViewPuzzle()
		if err != nil {
			return "", err
		}
		if !view.HasPuzzle {
			return view.Message, nil
		}
		r, err := e.Solve(view.PuzzleID, arg)
		if err != nil {
			return "", err
		}
		return r.Message, nil

	case CmdHint:
		view, err := e.ViewPuzzle()
		if err != nil {
			return "", err
		}
		if !view.HasPuzzle {
			return view.Message, nil
		}
		r, err := e.Hint(view.PuzzleID)
		if err != nil {
			return "", err
		}
		return r.Message, nil

	case CmdGo:
		r, err := e.Move(arg)
		if err != nil {
			return "", err
		}
		return r.Message, nil

	case CmdStatus:
		r, err := e.Status()
		if err != nil {
			return "", err
		}
		return r.Message, nil

	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCommand, string(cmd))
	}
}
