package content

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrContentIntegrity is matched by every IntegrityError.
var ErrContentIntegrity = errors.New("content integrity error")

// IntegrityError lists every broken reference found in a package.
type IntegrityError struct {
	Package  string
	Problems []string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("content package %q is invalid:\n  - %s", e.Package, strings.Join(e.Problems, "\n  - "))
}

func (e *IntegrityError) Is(target error) bool {
	return target == ErrContentIntegrity
}

type validator struct {
	pkg      *Package
	problems []string
}

func (v *validator) addf(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *validator) location(field, id string) {
	if _, ok := v.pkg.Locations[id]; !ok {
		v.addf("%s references unknown location %q", field, id)
	}
}

func (v *validator) item(field, id string) {
	if _, ok := v.pkg.Items[id]; !ok {
		v.addf("%s references unknown item %q", field, id)
	}
}

// Validate checks that every identifier referenced in the package resolves and
// that no item starts in two places. It returns an *IntegrityError listing all
// problems, or nil.
func (p *Package) Validate() error {
	v := &validator{pkg: p}

	if p.Name == "" {
		v.addf("package name is empty")
	}
	if p.StartLocation == "" {
		v.addf("start_location is empty")
	} else {
		v.location("start_location", p.StartLocation)
	}
	if p.SecondLocation != "" {
		v.location("second_location", p.SecondLocation)
	}

	for _, id := range sortedKeys(p.Items) {
		if item := p.Items[id]; item.ID != id {
			v.addf("item key %q does not match id %q", id, item.ID)
		}
	}

	owner := make(map[string]string)
	npcOwner := make(map[string]string)
	for _, id := range sortedKeys(p.Locations) {
		loc := p.Locations[id]
		if loc == nil {
			v.addf("location %q is empty", id)
			continue
		}
		if loc.ID != id {
			v.addf("location key %q does not match id %q", id, loc.ID)
		}
		for _, dir := range SortedExits(loc) {
			v.location(fmt.Sprintf("location %q exit %q", id, dir), loc.Exits[dir])
		}
		for _, itemID := range loc.Items {
			v.item(fmt.Sprintf("location %q", id), itemID)
			if prev, dup := owner[itemID]; dup {
				v.addf("item %q is placed in both %q and %q", itemID, prev, id)
				continue
			}
			owner[itemID] = id
		}
		for _, npcID := range loc.NPCs {
			npc, ok := p.NPCs[npcID]
			if !ok {
				v.addf("location %q references unknown npc %q", id, npcID)
				continue
			}
			if prev, dup := npcOwner[npcID]; dup {
				v.addf("npc %q is placed in both %q and %q", npcID, prev, id)
				continue
			}
			npcOwner[npcID] = id
			if npc == nil || npc.LocationID == id {
				continue
			}
			// An unknown home is reported with the NPC itself.
			if _, known := p.Locations[npc.LocationID]; known {
				v.addf("location %q lists npc %q whose home is %q", id, npcID, npc.LocationID)
			}
		}
		if loc.Puzzle != "" {
			if pz, ok := p.Puzzles[loc.Puzzle]; !ok {
				v.addf("location %q references unknown puzzle %q", id, loc.Puzzle)
			} else if pz.LocationID != id {
				v.addf("location %q holds puzzle %q owned by %q", id, loc.Puzzle, pz.LocationID)
			}
		}
		if loc.Requirement != "" {
			_, isPuzzle := p.Puzzles[loc.Requirement]
			_, isLocation := p.Locations[loc.Requirement]
			if !isPuzzle && !isLocation {
				v.addf("location %q unlock requirement %q is neither a puzzle nor a location", id, loc.Requirement)
			}
		}
	}

	for _, id := range sortedKeys(p.NPCs) {
		npc := p.NPCs[id]
		if npc == nil {
			v.addf("npc %q is empty", id)
			continue
		}
		if npc.ID != id {
			v.addf("npc key %q does not match id %q", id, npc.ID)
		}
		v.location(fmt.Sprintf("npc %q home", id), npc.LocationID)
		for i, d := range npc.Dialogues {
			if d.RequiresItem != "" {
				v.item(fmt.Sprintf("npc %q dialogue %d", id, i), d.RequiresItem)
			}
			if d.UnlocksLocation != "" {
				v.location(fmt.Sprintf("npc %q dialogue %d", id, i), d.UnlocksLocation)
			}
		}
	}

	for _, id := range sortedKeys(p.Puzzles) {
		pz := p.Puzzles[id]
		if pz == nil {
			v.addf("puzzle %q is empty", id)
			continue
		}
		if pz.ID != id {
			v.addf("puzzle key %q does not match id %q", id, pz.ID)
		}
		if pz.Answer == "" {
			v.addf("puzzle %q has no answer", id)
		}
		v.location(fmt.Sprintf("puzzle %q", id), pz.LocationID)
		if pz.Reward != "" {
			v.location(fmt.Sprintf("puzzle %q reward", id), pz.Reward)
		}
	}

	e := p.Endings
	if e.SecretLocation != "" {
		v.location("endings.secret_location", e.SecretLocation)
		v.item("endings.secret_item", e.SecretItem)
	}
	if e.GoodLocation != "" {
		v.location("endings.good_location", e.GoodLocation)
	}
	if e.BadMaxVisited > 0 && e.BadFlag == "" {
		v.addf("endings.bad_flag is empty while bad_max_visited is set")
	}
	if e.WanderLimit < 0 {
		v.addf("endings.wander_limit is negative")
	}

	if len(v.problems) > 0 {
		return &IntegrityError{Package: p.Name, Problems: v.problems}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
