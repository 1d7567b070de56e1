package engine

import (
	"fmt"
	"strings"

	"github.com/ranasykuri/mysteryadvanturebot/pkg/content"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Exit is one way out of a location as seen by the player.
type Exit struct {
	Direction string
	To        string // Location ID
	Name      string
	Open      bool // Not locked, or already unlocked for the player
}

// LookResult describes the current location.
type LookResult struct {
	Location    string
	Name        string
	Description string
	Items       []content.Item
	NPCs        []string // Display names
	Exits       []Exit   // Sorted by direction
	HasPuzzle   bool
	Message     string
}

// Look describes the current location: its items, characters and exits with
// their lock status. It does not change any state.
func (e *Engine) Look() (*LookResult, error) {
	here, err := e.currentLocation()
	if err != nil {
		return nil, err
	}

	result := &LookResult{
		Location:    here.ID,
		Name:        here.Name,
		Description: here.Description,
		HasPuzzle:   here.Puzzle != "",
	}
	for _, id := range here.Items {
		result.Items = append(result.Items, e.world.Items[id])
	}
	for _, id := range here.NPCs {
		result.NPCs = append(result.NPCs, e.world.NPCs[id].Name)
	}
	for _, dir := range content.SortedExits(here) {
		to := here.Exits[dir]
		result.Exits = append(result.Exits, Exit{
			Direction: dir,
			To:        to,
			Name:      e.world.Locations[to].Name,
			Open:      e.IsOpen(to),
		})
	}
	result.Message = e.renderLook(result)
	return result, nil
}

func (e *Engine) renderLook(r *LookResult) string {
	var b strings.Builder
	upper := cases.Upper(language.English)

	fmt.Fprintf(&b, "LOCATION: %s\n\n%s\n\n", r.Name, r.Description)

	if len(r.Items) == 0 {
		b.WriteString("There are no items here.\n")
	} else {
		b.WriteString("Items here:\n")
		for _, item := range r.Items {
			fmt.Fprintf(&b, "  • %s\n", item.Name)
		}
	}

	if len(r.NPCs) > 0 {
		b.WriteString("\nPeople here:\n")
		for _, name := range r.NPCs {
			fmt.Fprintf(&b, "  • %s\n", name)
		}
	}

	if r.HasPuzzle {
		b.WriteString("\nSomething here invites study. Type 'puzzle' to look closer.\n")
	}

	if len(r.Exits) > 0 {
		b.WriteString("\nExits:\n")
		for _, exit := range r.Exits {
			mark := "✗"
			if exit.Open {
				mark = "✓"
			}
			fmt.Fprintf(&b, "  %s %s: %s\n", mark, upper.String(exit.Direction), exit.Name)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// StatusResult summarizes progress.
type StatusResult struct {
	Player   string
	Location string // Display name
	Visited  int
	Puzzles  int
	Items    int
	Turns    int
	Message  string
}

// Status summarizes the playthrough.
func (e *Engine) Status() (*StatusResult, error) {
	here, err := e.currentLocation()
	if err != nil {
		return nil, err
	}
	r := &StatusResult{
		Player:   e.player.Name,
		Location: here.Name,
		Visited:  e.player.Visited.Len(),
		Puzzles:  e.player.CompletedPuzzles.Len(),
		Items:    len(e.player.Inventory),
		Turns:    e.player.Turns,
	}
	r.Message = fmt.Sprintf("[STATUS] %s\nLocation: %s\nLocations visited: %d\nPuzzles solved: %d\nItems: %d",
		r.Player, r.Location, r.Visited, r.Puzzles, r.Items)
	return r, nil
}
