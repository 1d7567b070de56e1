package engine

import (
	"errors"
	"fmt"
)

// Failures returned by engine operations. They are expected outcomes that the
// presentation shows to the player before asking for the next command.
var (
	ErrNotFound                  = errors.New("not found")
	ErrLocationNotFound          = fmt.Errorf("location %w", ErrNotFound)
	ErrItemNotFound              = fmt.Errorf("item %w", ErrNotFound)
	ErrNPCNotFound               = fmt.Errorf("character %w", ErrNotFound)
	ErrPuzzleNotFound            = fmt.Errorf("puzzle %w", ErrNotFound)
	ErrInvalidDirection          = errors.New("that direction is not available")
	ErrLocationLocked            = errors.New("location is locked")
	ErrLocationPermanentlyLocked = fmt.Errorf("%w for good", ErrLocationLocked)
	ErrPuzzleAlreadySolved       = errors.New("puzzle already solved")
	ErrWrongAnswer               = errors.New("wrong answer, try again")
	ErrGameOver                  = errors.New("the story has ended, start a new game")
	ErrUnknownCommand            = errors.New("unknown command")
	ErrMissingArgument           = errors.New("missing argument")
)

// AccessError explains why a locked location cannot be entered.
type AccessError struct {
	Location    string // Location ID
	Name        string // Display name
	Requirement string // Unmet requirement, empty when none is defined
}

func (e *AccessError) Error() string {
	if e.Requirement == "" {
		return fmt.Sprintf("%s is locked: no requirement defined", e.Name)
	}
	return fmt.Sprintf("%s is locked: requirement `%s` not yet met", e.Name, e.Requirement)
}

// Unwrap lets errors.Is match ErrLocationLocked, and ErrLocationPermanentlyLocked
// when no requirement can ever open the location.
func (e *AccessError) Unwrap() error {
	if e.Requirement == "" {
		return ErrLocationPermanentlyLocked
	}
	return ErrLocationLocked
}
