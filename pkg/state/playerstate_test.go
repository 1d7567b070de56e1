package state

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/ranasykuri/mysteryadvanturebot/pkg/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlayerState(t *testing.T) {
	tests := []struct {
		name         string
		playerName   string
		second       string
		wantName     string
		wantUnlocked []string
	}{
		{
			name:         "named player with second location",
			playerName:   "Ada",
			second:       "hallway",
			wantName:     "Ada",
			wantUnlocked: []string{"hallway", "start"},
		},
		{
			name:         "default name",
			wantName:     DefaultPlayerName,
			wantUnlocked: []string{"start"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := NewPlayerState(tt.playerName, "start", tt.second)
			assert.NotEqual(t, uuid.Nil, ps.ID)
			assert.Equal(t, tt.wantName, ps.Name)
			assert.Equal(t, "start", ps.Location)
			assert.Equal(t, tt.wantUnlocked, ps.UnlockedLocations.Sorted())
			assert.Empty(t, ps.Inventory)
			assert.Equal(t, 0, ps.Visited.Len())
			assert.Equal(t, 0, ps.CompletedPuzzles.Len())
			assert.Equal(t, 0, ps.Turns)
		})
	}
}

func TestNewPlayerState_UniqueIDs(t *testing.T) {
	a := NewPlayerState("", "start", "")
	b := NewPlayerState("", "start", "")
	assert.NotEqual(t, a.ID, b.ID)
}

func TestPlayerState_Inventory(t *testing.T) {
	ps := NewPlayerState("", "start", "")
	key := content.Item{ID: "key", Name: "Key"}
	map_ := content.Item{ID: "map", Name: "Map"}

	assert.False(t, ps.HasItem("key"))
	assert.True(t, ps.AddItem(key))
	assert.True(t, ps.AddItem(map_))
	assert.False(t, ps.AddItem(key), "duplicates are ignored")

	require.Len(t, ps.Inventory, 2)
	assert.Equal(t, "key", ps.Inventory[0].ID)
	assert.Equal(t, "map", ps.Inventory[1].ID)
	assert.True(t, ps.HasItem("map"))
}

func TestPlayerState_Flags(t *testing.T) {
	ps := &PlayerState{}
	assert.False(t, ps.Flag("lost"))

	ps.SetFlag("lost", true)
	assert.True(t, ps.Flag("lost"))
	ps.SetFlag("lost", false)
	assert.False(t, ps.Flag("lost"))
}

func TestPlayerState_JSON(t *testing.T) {
	ps := NewPlayerState("Ada", "start", "hallway")
	ps.Visited.Add("hallway")
	ps.SetFlag("lost", true)

	raw, err := json.Marshal(ps)
	require.NoError(t, err)

	var decoded PlayerState
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, ps.ID, decoded.ID)
	assert.True(t, decoded.Visited.Has("hallway"))
	assert.True(t, decoded.UnlockedLocations.Has("start"))
	assert.True(t, decoded.Flag("lost"))
}

func TestPlayerState_Normalize(t *testing.T) {
	var ps PlayerState
	ps.Normalize("start", "hallway")

	require.NotNil(t, ps.Visited)
	require.NotNil(t, ps.CompletedPuzzles)
	require.NotNil(t, ps.Flags)
	assert.NotNil(t, ps.Inventory)
	assert.Equal(t, []string{"hallway", "start"}, ps.UnlockedLocations.Sorted())

	assert.True(t, ps.Visited.Add("hallway"))
	assert.True(t, ps.CompletedPuzzles.Add("riddle"))

	// Existing progress is kept.
	ps.Normalize("start", "")
	assert.True(t, ps.Visited.Has("hallway"))
	assert.True(t, ps.CompletedPuzzles.Has("riddle"))
}

func TestSet(t *testing.T) {
	s := NewSet("b", "a")
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("c"))

	assert.True(t, s.Add("c"))
	assert.False(t, s.Add("c"))
	assert.Equal(t, []string{"a", "b", "c"}, s.Sorted())
}
