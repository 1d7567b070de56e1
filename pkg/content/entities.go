package content

// Item is an object the player can carry. Items are compared by ID.
type Item struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

func (i Item) String() string {
	return i.Name
}

// Dialogue is one exchange an NPC can offer.
type Dialogue struct {
	Text            string `json:"text" yaml:"text"`                                             // What the NPC says first
	Response        string `json:"response" yaml:"response"`                                     // Narration that follows
	NextAction      string `json:"next_action,omitempty" yaml:"next_action,omitempty"`           // Follow-up action tag
	RequiresItem    string `json:"requires_item,omitempty" yaml:"requires_item,omitempty"`       // Item ID needed for this line
	UnlocksLocation string `json:"unlocks_location,omitempty" yaml:"unlocks_location,omitempty"` // Location ID this line opens
}

// NPC is a non-player character.
type NPC struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	LocationID  string     `json:"location" yaml:"location"` // Home location
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Dialogues   []Dialogue `json:"dialogues,omitempty" yaml:"dialogues,omitempty"`
	Met         bool       `json:"met,omitempty" yaml:"met,omitempty"`
}

// Greeting returns the line shown when the player talks to the NPC.
// Only the first line is ever used; later lines are reserved for branching dialogue.
func (n *NPC) Greeting() (Dialogue, bool) {
	if len(n.Dialogues) == 0 {
		return Dialogue{}, false
	}
	return n.Dialogues[0], true
}
