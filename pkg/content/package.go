package content

import (
	"maps"
	"slices"
)

// Package is a versioned bundle of world content. A loaded Package is treated as
// read-only; each playthrough works on its own Clone.
type Package struct {
	Name           string               `json:"name" yaml:"name"`                           // Package key, lowercase snake_case
	Version        string               `json:"version,omitempty" yaml:"version,omitempty"` // Content version
	Title          string               `json:"title" yaml:"title"`                         // Display title
	Intro          string               `json:"intro,omitempty" yaml:"intro,omitempty"`     // Opening narration
	StartLocation  string               `json:"start_location" yaml:"start_location"`
	SecondLocation string               `json:"second_location,omitempty" yaml:"second_location,omitempty"` // Adjoining location unlocked from the start
	Items          map[string]Item      `json:"items" yaml:"items"`
	NPCs           map[string]*NPC      `json:"npcs,omitempty" yaml:"npcs,omitempty"`
	Puzzles        map[string]*Puzzle   `json:"puzzles,omitempty" yaml:"puzzles,omitempty"`
	Locations      map[string]*Location `json:"locations" yaml:"locations"`
	Endings        Endings              `json:"endings" yaml:"endings"`
}

// Endings configures the terminal conditions and their narration.
type Endings struct {
	SecretLocation string `json:"secret_location" yaml:"secret_location"`               // Hidden chamber
	SecretItem     string `json:"secret_item" yaml:"secret_item"`                       // Item carried into the hidden chamber
	GoodLocation   string `json:"good_location" yaml:"good_location"`                   // Vault
	GoodMinPuzzles int    `json:"good_min_puzzles" yaml:"good_min_puzzles"`             // Puzzles solved before reaching the vault
	BadMaxVisited  int    `json:"bad_max_visited" yaml:"bad_max_visited"`               // Visited count must stay below this
	BadFlag        string `json:"bad_flag" yaml:"bad_flag"`                             // Flag that marks the player as lost
	WanderLimit    int    `json:"wander_limit,omitempty" yaml:"wander_limit,omitempty"` // Turns before BadFlag is raised, 0 disables

	Secret Narration `json:"secret" yaml:"secret"`
	Good   Narration `json:"good" yaml:"good"`
	Bad    Narration `json:"bad" yaml:"bad"`
}

// Narration is the prose shown for an ending.
type Narration struct {
	Title string `json:"title" yaml:"title"`
	Text  string `json:"text" yaml:"text"`
}

// Clone returns a deep copy whose mutable fields can be changed without
// touching the receiver.
func (p *Package) Clone() *Package {
	if p == nil {
		return nil
	}
	c := *p
	c.Items = maps.Clone(p.Items)

	c.NPCs = make(map[string]*NPC, len(p.NPCs))
	for id, npc := range p.NPCs {
		n := *npc
		n.Dialogues = slices.Clone(npc.Dialogues)
		c.NPCs[id] = &n
	}

	c.Puzzles = make(map[string]*Puzzle, len(p.Puzzles))
	for id, pz := range p.Puzzles {
		z := *pz
		z.Hints = slices.Clone(pz.Hints)
		c.Puzzles[id] = &z
	}

	c.Locations = make(map[string]*Location, len(p.Locations))
	for id, loc := range p.Locations {
		l := *loc
		l.Items = slices.Clone(loc.Items)
		l.NPCs = slices.Clone(loc.NPCs)
		l.Exits = maps.Clone(loc.Exits)
		c.Locations[id] = &l
	}
	return &c
}

// LocationIDs returns the location keys in sorted order.
func (p *Package) LocationIDs() []string {
	return sortedKeys(p.Locations)
}

// SortedExits returns the exit directions of a location in sorted order so
// rendering is stable.
func SortedExits(loc *Location) []string {
	return sortedKeys(loc.Exits)
}
