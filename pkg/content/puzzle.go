package content

import "golang.org/x/text/cases"

// Puzzle is a question attached to a location. Solving it may unlock a reward location.
type Puzzle struct {
	ID         string   `json:"id" yaml:"id"`
	LocationID string   `json:"location" yaml:"location"`
	Question   string   `json:"question" yaml:"question"`
	Answer     string   `json:"answer" yaml:"answer"`
	Hints      []string `json:"hints,omitempty" yaml:"hints,omitempty"`
	Reward     string   `json:"reward,omitempty" yaml:"reward,omitempty"` // Location ID unlocked on success
	Solved     bool     `json:"solved,omitempty" yaml:"solved,omitempty"`
	HintCursor int      `json:"hint_cursor,omitempty" yaml:"hint_cursor,omitempty"` // Index of the next hint to reveal
}

// Matches reports whether answer equals the stored answer, ignoring case only.
// Whitespace and punctuation are significant.
func (p *Puzzle) Matches(answer string) bool {
	return Fold(answer) == Fold(p.Answer)
}

// NextHint returns the hint at the cursor and advances it.
// ok is false once every hint has been revealed; the cursor never moves past the end.
func (p *Puzzle) NextHint() (hint string, ok bool) {
	if p.HintCursor >= len(p.Hints) {
		p.HintCursor = len(p.Hints)
		return "", false
	}
	hint = p.Hints[p.HintCursor]
	p.HintCursor++
	return hint, true
}

// Fold case-folds s for case-insensitive comparison.
func Fold(s string) string {
	return cases.Fold().String(s)
}
