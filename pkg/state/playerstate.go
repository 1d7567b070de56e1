package state

import (
	"slices"

	"github.com/google/uuid"
	"github.com/ranasykuri/mysteryadvanturebot/pkg/content"
)

// DefaultPlayerName is used when the player does not give a name.
const DefaultPlayerName = "Mystery Explorer"

// PlayerState is the mutable record of one playthrough.
type PlayerState struct {
	ID                uuid.UUID       `json:"id"`                  // Unique ID per playthrough
	Name              string          `json:"name"`                // Player name used in narration
	Location          string          `json:"location"`            // Current location ID
	Inventory         []content.Item  `json:"inventory,omitempty"` // Pickup order
	Visited           Set             `json:"visited,omitempty"`
	CompletedPuzzles  Set             `json:"completed_puzzles,omitempty"`
	UnlockedLocations Set             `json:"unlocked_locations,omitempty"`
	Flags             map[string]bool `json:"flags,omitempty"`
	Turns             int             `json:"turns"` // Commands processed
}

// NewPlayerState starts a playthrough at start. The start location and the
// adjoining location second (if any) are unlocked from the beginning.
func NewPlayerState(name, start, second string) *PlayerState {
	if name == "" {
		name = DefaultPlayerName
	}
	ps := &PlayerState{
		ID:                uuid.New(),
		Name:              name,
		Location:          start,
		Inventory:         make([]content.Item, 0),
		Visited:           NewSet(),
		CompletedPuzzles:  NewSet(),
		UnlockedLocations: NewSet(start),
		Flags:             make(map[string]bool),
	}
	if second != "" {
		ps.UnlockedLocations.Add(second)
	}
	return ps
}

// HasItem reports whether an item with itemID is in the inventory.
func (ps *PlayerState) HasItem(itemID string) bool {
	return slices.ContainsFunc(ps.Inventory, func(it content.Item) bool {
		return it.ID == itemID
	})
}

// AddItem appends an item to the inventory. Items already held are ignored so
// the inventory never holds duplicates.
func (ps *PlayerState) AddItem(item content.Item) bool {
	if ps.HasItem(item.ID) {
		return false
	}
	ps.Inventory = append(ps.Inventory, item)
	return true
}

// Flag returns the value of a named flag; unset flags are false.
func (ps *PlayerState) Flag(name string) bool {
	return ps.Flags[name]
}

// SetFlag sets a named flag.
func (ps *PlayerState) SetFlag(name string, value bool) {
	if ps.Flags == nil {
		ps.Flags = make(map[string]bool)
	}
	ps.Flags[name] = value
}

// Normalize fills sets and flags left nil, as they are after decoding a state
// whose empty fields were omitted, and unlocks start and second.
func (ps *PlayerState) Normalize(start, second string) {
	if ps.Inventory == nil {
		ps.Inventory = make([]content.Item, 0)
	}
	if ps.Visited == nil {
		ps.Visited = NewSet()
	}
	if ps.CompletedPuzzles == nil {
		ps.CompletedPuzzles = NewSet()
	}
	if ps.UnlockedLocations == nil {
		ps.UnlockedLocations = NewSet()
	}
	if ps.Flags == nil {
		ps.Flags = make(map[string]bool)
	}
	if start != "" {
		ps.UnlockedLocations.Add(start)
	}
	if second != "" {
		ps.UnlockedLocations.Add(second)
	}
}
