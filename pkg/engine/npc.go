package engine

import "fmt"

// TalkResult is the exchange shown when talking to an NPC.
type TalkResult struct {
	NPC          string // NPC ID
	Name         string
	Text         string // What the NPC says
	Response     string // Narration that follows
	FirstMeeting bool
	Message      string
}

// TalkTo speaks with the first NPC in the current location whose name or ID
// contains query, ignoring case. The NPC is marked as met and its greeting is
// returned; later dialogue lines are never shown.
func (e *Engine) TalkTo(query string) (*TalkResult, error) {
	if err := e.playing(); err != nil {
		return nil, err
	}
	here, err := e.currentLocation()
	if err != nil {
		return nil, err
	}

	for _, npcID := range here.NPCs {
		npc := e.world.NPCs[npcID]
		if !matches(query, npc.Name, npc.ID) {
			continue
		}
		first := !npc.Met
		npc.Met = true

		result := &TalkResult{NPC: npc.ID, Name: npc.Name, FirstMeeting: first}
		if line, ok := npc.Greeting(); ok {
			result.Text = line.Text
			result.Response = line.Response
			result.Message = fmt.Sprintf("[%s]\n\"%s\"\n\n%s", npc.Name, line.Text, line.Response)
		} else {
			result.Message = fmt.Sprintf("[%s]\n%s has nothing to say.", npc.Name, npc.Name)
		}
		e.Logger().Debug("Talked to NPC", "npc", npc.ID, "first_meeting", first)
		return result, nil
	}
	return nil, fmt.Errorf("%w here: %q", ErrNPCNotFound, query)
}
