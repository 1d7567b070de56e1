package engine

import "fmt"

// PuzzleView is the puzzle attached to the current location, if any.
type PuzzleView struct {
	HasPuzzle bool
	PuzzleID  string
	Question  string
	Solved    bool
	Message   string
}

// ViewPuzzle returns the question of the current location's puzzle. A location
// without a puzzle is a normal state, reported with HasPuzzle false.
func (e *Engine) ViewPuzzle() (*PuzzleView, error) {
	here, err := e.currentLocation()
	if err != nil {
		return nil, err
	}
	if here.Puzzle == "" {
		return &PuzzleView{Message: "There is no puzzle here."}, nil
	}
	pz := e.world.Puzzles[here.Puzzle]
	view := &PuzzleView{
		HasPuzzle: true,
		PuzzleID:  pz.ID,
		Question:  pz.Question,
		Solved:    pz.Solved,
		Message:   "PUZZLE:\n" + pz.Question,
	}
	if pz.Solved {
		view.Message += "\n\n(solved)"
	}
	return view, nil
}

// SolveResult describes a solved puzzle.
type SolveResult struct {
	PuzzleID   string
	RewardID   string // Location unlocked by the puzzle, if any
	RewardName string
	Message    string
}

// Solve checks answer against a puzzle. Comparison ignores case and nothing
// else. A solved puzzle rejects every later attempt, right or wrong.
func (e *Engine) Solve(puzzleID, answer string) (*SolveResult, error) {
	if err := e.playing(); err != nil {
		return nil, err
	}
	pz, ok := e.world.Puzzles[puzzleID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPuzzleNotFound, puzzleID)
	}
	if pz.Solved {
		return nil, ErrPuzzleAlreadySolved
	}
	if !pz.Matches(answer) {
		e.Logger().Debug("Wrong answer", "puzzle", puzzleID)
		return nil, ErrWrongAnswer
	}

	pz.Solved = true
	e.player.CompletedPuzzles.Add(puzzleID)
	result := &SolveResult{PuzzleID: puzzleID, Message: "Correct! The puzzle is solved."}
	if pz.Reward != "" {
		e.player.UnlockedLocations.Add(pz.Reward)
		result.RewardID = pz.Reward
		result.RewardName = e.world.Locations[pz.Reward].Name
		result.Message = fmt.Sprintf("Correct! A new location is open: %s", result.RewardName)
	}
	e.Logger().Info("Puzzle solved", "puzzle", puzzleID, "reward", pz.Reward)
	return result, nil
}

// HintStatus tells what a hint request produced.
type HintStatus int

const (
	HintRevealed HintStatus = iota
	NoHintsAvailable
	AllHintsExhausted
)

func (s HintStatus) String() string {
	switch s {
	case HintRevealed:
		return "revealed"
	case NoHintsAvailable:
		return "no_hints_available"
	case AllHintsExhausted:
		return "all_hints_exhausted"
	default:
		return "unknown"
	}
}

// HintResult is the outcome of a hint request.
type HintResult struct {
	PuzzleID string
	Status   HintStatus
	Hint     string
	Number   int // 1-based position of Hint
	Total    int
	Message  string
}

// Hint reveals the next hint for a puzzle. Hints are revealed in order, once
// each; after the last one every request reports AllHintsExhausted.
func (e *Engine) Hint(puzzleID string) (*HintResult, error) {
	if err := e.playing(); err != nil {
		return nil, err
	}
	pz, ok := e.world.Puzzles[puzzleID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPuzzleNotFound, puzzleID)
	}

	result := &HintResult{PuzzleID: puzzleID, Total: len(pz.Hints)}
	if len(pz.Hints) == 0 {
		result.Status = NoHintsAvailable
		result.Message = "There are no hints for this puzzle."
		return result, nil
	}
	hint, ok := pz.NextHint()
	if !ok {
		result.Status = AllHintsExhausted
		result.Message = "You have already seen every hint for this puzzle."
		return result, nil
	}
	result.Status = HintRevealed
	result.Hint = hint
	result.Number = pz.HintCursor
	result.Message = fmt.Sprintf("Hint %d/%d: %s", result.Number, result.Total, hint)
	e.Logger().Debug("Hint revealed", "puzzle", puzzleID, "cursor", pz.HintCursor)
	return result, nil
}
