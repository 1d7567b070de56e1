// Package engine applies player actions to a playthrough: movement, inventory,
// dialogue, puzzles and unlocking. An Engine is owned by a single session and
// is not safe for concurrent use.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/ranasykuri/mysteryadvanturebot/pkg/content"
	"github.com/ranasykuri/mysteryadvanturebot/pkg/ending"
	"github.com/ranasykuri/mysteryadvanturebot/pkg/state"
)

// Engine orchestrates player actions against a working copy of a content
// package and the player's state. It is the only writer of either.
type Engine struct {
	pkg    *content.Package   // Validated static definitions, never mutated
	world  *content.Package   // Working copy for this playthrough
	player *state.PlayerState // Progress for this playthrough
	ended  ending.Ending      // Latched once an ending fires
	logger *slog.Logger
}

// New validates pkg and starts a playthrough on a fresh copy of it. A nil
// player starts a new one at the package's start location; an
// injected one has any missing sets filled in. Content that fails
// validation is returned as a *content.IntegrityError and no engine is built.
func New(pkg *content.Package, player *state.PlayerState, logger *slog.Logger) (*Engine, error) {
	if pkg == nil {
		return nil, fmt.Errorf("engine requires a content package")
	}
	if err := pkg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if player == nil {
		player = state.NewPlayerState("", pkg.StartLocation, pkg.SecondLocation)
	}
	if _, ok := pkg.Locations[player.Location]; !ok {
		return nil, fmt.Errorf("%w: player starts at %q", ErrLocationNotFound, player.Location)
	}
	player.Normalize(pkg.StartLocation, pkg.SecondLocation)

	e := &Engine{
		pkg:    pkg,
		world:  pkg.Clone(),
		player: player,
		logger: logger,
	}
	e.reconcile()
	e.logger.Info("Playthrough started",
		"session_id", player.ID.String(),
		"package", pkg.Name,
		"version", pkg.Version,
		"location", player.Location)
	return e, nil
}

// NewGame starts a playthrough for a named player.
func NewGame(pkg *content.Package, playerName string, logger *slog.Logger) (*Engine, error) {
	if pkg == nil {
		return nil, fmt.Errorf("engine requires a content package")
	}
	return New(pkg, state.NewPlayerState(playerName, pkg.StartLocation, pkg.SecondLocation), logger)
}

// reconcile brings the working copy in line with an injected player state:
// solved puzzles are marked solved and carried items leave their locations.
func (e *Engine) reconcile() {
	for id := range e.player.CompletedPuzzles {
		if pz, ok := e.world.Puzzles[id]; ok {
			pz.Solved = true
		}
	}
	for _, item := range e.player.Inventory {
		for _, loc := range e.world.Locations {
			loc.RemoveItem(item.ID)
		}
	}
}

// Restart discards the playthrough and begins a new one from the static
// definitions. An empty name keeps the current player's name.
func (e *Engine) Restart(playerName string) {
	if playerName == "" {
		playerName = e.player.Name
	}
	e.logger.Info("Playthrough restarted", "session_id", e.player.ID.String(), "ending", e.ended.String())
	e.world = e.pkg.Clone()
	e.player = state.NewPlayerState(playerName, e.pkg.StartLocation, e.pkg.SecondLocation)
	e.ended = ending.None
}

// Player returns the current player state. Callers must treat it as read-only.
func (e *Engine) Player() *state.PlayerState {
	return e.player
}

// World returns the working copy of the content. Callers must treat it as read-only.
func (e *Engine) World() *content.Package {
	return e.world
}

// Logger returns the engine logger scoped to the current session.
func (e *Engine) Logger() *slog.Logger {
	return e.logger.With("session_id", e.player.ID.String())
}

// Ended returns the latched ending, or ending.None while play continues.
func (e *Engine) Ended() ending.Ending {
	return e.ended
}

// CheckEnding evaluates the ending rules and latches the first one that fires.
// The presentation calls it once per turn before rendering the location.
func (e *Engine) CheckEnding() ending.Ending {
	if e.ended != ending.None {
		return e.ended
	}
	if result := ending.Evaluate(e.player, e.world); result != ending.None {
		e.ended = result
		e.Logger().Info("Ending reached",
			"ending", result.String(),
			"location", e.player.Location,
			"visited", e.player.Visited.Len(),
			"puzzles", e.player.CompletedPuzzles.Len())
	}
	return e.ended
}

// SetFlag sets a named player flag.
func (e *Engine) SetFlag(name string, value bool) error {
	if err := e.playing(); err != nil {
		return err
	}
	e.player.SetFlag(name, value)
	e.Logger().Debug("Flag set", "flag", name, "value", value)
	return nil
}

// tick counts a processed command and raises the lost flag once the player has
// wandered past the package's limit.
func (e *Engine) tick() {
	e.player.Turns++
	rules := e.world.Endings
	if rules.WanderLimit > 0 && rules.BadFlag != "" && e.player.Turns >= rules.WanderLimit && !e.player.Flag(rules.BadFlag) {
		e.player.SetFlag(rules.BadFlag, true)
		e.Logger().Info("Wander limit reached", "turns", e.player.Turns, "flag", rules.BadFlag)
	}
}

func (e *Engine) playing() error {
	if e.ended != ending.None {
		return ErrGameOver
	}
	return nil
}

func (e *Engine) currentLocation() (*content.Location, error) {
	loc, ok := e.world.Locations[e.player.Location]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocationNotFound, e.player.Location)
	}
	return loc, nil
}
