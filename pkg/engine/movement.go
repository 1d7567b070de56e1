package engine

import "fmt"

// MoveResult describes a successful move.
type MoveResult struct {
	Direction string
	From      string // Location ID left behind
	To        string // Location ID entered
	Name      string // Display name of To
	Unlocked  bool   // The move satisfied a requirement and unlocked To
	Message   string
}

// Move walks through the exit labelled direction. Direction labels come from
// content and are matched exactly.
func (e *Engine) Move(direction string) (*MoveResult, error) {
	if err := e.playing(); err != nil {
		return nil, err
	}
	here, err := e.currentLocation()
	if err != nil {
		return nil, err
	}

	destID, ok := here.Exits[direction]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDirection, direction)
	}

	unlocked, err := e.CanAccess(destID)
	if err != nil {
		e.Logger().Debug("Move blocked", "from", here.ID, "to", destID, "error", err)
		return nil, err
	}

	dest := e.world.Locations[destID]
	e.player.Location = destID
	e.player.Visited.Add(destID)
	dest.Visited = true

	e.Logger().Info("Location changed", "from", here.ID, "to", destID, "direction", direction, "unlocked", unlocked)

	msg := fmt.Sprintf("You walk %s to the %s.", direction, dest.Name)
	if unlocked {
		msg = fmt.Sprintf("The way opens. You walk %s to the %s.", direction, dest.Name)
	}
	return &MoveResult{
		Direction: direction,
		From:      here.ID,
		To:        destID,
		Name:      dest.Name,
		Unlocked:  unlocked,
		Message:   msg,
	}, nil
}

// CanAccess reports whether the player may enter a location. This check is not
// read-only: when a locked location's requirement is met, the location is added
// to the player's unlocked locations and unlocked is true.
func (e *Engine) CanAccess(locationID string) (unlocked bool, err error) {
	loc, ok := e.world.Locations[locationID]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrLocationNotFound, locationID)
	}
	if !loc.Locked {
		return false, nil
	}
	if e.player.UnlockedLocations.Has(locationID) {
		return false, nil
	}
	if loc.Requirement == "" {
		return false, &AccessError{Location: locationID, Name: loc.Name}
	}

	req := loc.Requirement
	if e.player.CompletedPuzzles.Has(req) || e.player.UnlockedLocations.Has(req) {
		e.player.UnlockedLocations.Add(locationID)
		e.Logger().Info("Location unlocked", "location", locationID, "requirement", req)
		return true, nil
	}
	return false, &AccessError{Location: locationID, Name: loc.Name, Requirement: req}
}

// IsOpen reports whether a location can currently be entered without changing
// any state: it is unlocked by default or already unlocked for the player.
func (e *Engine) IsOpen(locationID string) bool {
	loc, ok := e.world.Locations[locationID]
	if !ok {
		return false
	}
	return !loc.Locked || e.player.UnlockedLocations.Has(locationID)
}
