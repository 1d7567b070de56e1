package content

// Location is a place in the world with exits, contents and entry rules.
type Location struct {
	ID          string            `json:"id" yaml:"id"`
	Name        string            `json:"name" yaml:"name"`                                                 // Display name
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`               // Scene description
	Locked      bool              `json:"locked,omitempty" yaml:"locked,omitempty"`                         // Entry needs an unlock
	Visited     bool              `json:"visited,omitempty" yaml:"visited,omitempty"`                       // Set on first entry; no rule reads it
	Items       []string          `json:"items,omitempty" yaml:"items,omitempty"`                           // Item IDs present, in display order
	NPCs        []string          `json:"npcs,omitempty" yaml:"npcs,omitempty"`                             // NPC IDs present
	Exits       map[string]string `json:"exits,omitempty" yaml:"exits,omitempty"`                           // Direction → Location ID
	Puzzle      string            `json:"puzzle,omitempty" yaml:"puzzle,omitempty"`                         // Attached puzzle ID
	Requirement string            `json:"unlock_requirement,omitempty" yaml:"unlock_requirement,omitempty"` // Puzzle or location ID that opens a locked location
}

// HasItem reports whether the item ID is present in the location.
func (l *Location) HasItem(itemID string) bool {
	for _, id := range l.Items {
		if id == itemID {
			return true
		}
	}
	return false
}

// RemoveItem drops the first occurrence of itemID and reports whether it was there.
func (l *Location) RemoveItem(itemID string) bool {
	for i, id := range l.Items {
		if id == itemID {
			l.Items = append(l.Items[:i:i], l.Items[i+1:]...)
			return true
		}
	}
	return false
}
