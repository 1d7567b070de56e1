// Package ending decides whether a playthrough has reached a terminal state.
package ending

import (
	"github.com/ranasykuri/mysteryadvanturebot/pkg/content"
	"github.com/ranasykuri/mysteryadvanturebot/pkg/state"
)

// Ending is the terminal state of a playthrough.
type Ending string

const (
	None   Ending = ""
	Secret Ending = "secret"
	Good   Ending = "good"
	Bad    Ending = "bad"
)

func (e Ending) String() string {
	if e == None {
		return "none"
	}
	return string(e)
}

// Evaluate checks the ending conditions in fixed order: secret, good, bad.
// The first that holds wins. It reads ps and world without changing them.
func Evaluate(ps *state.PlayerState, world *content.Package) Ending {
	if ps == nil || world == nil {
		return None
	}
	rules := world.Endings

	if rules.SecretLocation != "" && ps.Location == rules.SecretLocation && ps.HasItem(rules.SecretItem) {
		return Secret
	}
	if rules.GoodLocation != "" && ps.Location == rules.GoodLocation && ps.CompletedPuzzles.Len() >= rules.GoodMinPuzzles {
		return Good
	}
	if rules.BadFlag != "" && ps.Visited.Len() < rules.BadMaxVisited && ps.Flag(rules.BadFlag) {
		return Bad
	}
	return None
}

// Narration returns the prose configured for an ending.
func Narration(e Ending, world *content.Package) (content.Narration, bool) {
	switch e {
	case Secret:
		return world.Endings.Secret, true
	case Good:
		return world.Endings.Good, true
	case Bad:
		return world.Endings.Bad, true
	default:
		return content.Narration{}, false
	}
}
