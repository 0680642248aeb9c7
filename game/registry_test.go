package game

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var roomCodePattern = regexp.MustCompile(`^\d{6}$`)

func TestCreateRoom(t *testing.T) {
	reg := NewRegistry()

	room, err := reg.CreateRoom("Alice", 3)
	require.NoError(t, err)

	assert.Regexp(t, roomCodePattern, room.Code)
	assert.Equal(t, PhaseLobby, room.Phase)
	assert.Equal(t, 3, room.SongCount)
	assert.Equal(t, 0, room.CurrentSongIndex)

	require.Len(t, room.Players, 1)
	host := room.Players[0]
	assert.Equal(t, room.HostID, host.ID)
	assert.Equal(t, "Alice", host.Name)
	assert.Equal(t, 0, host.Score)
	assert.False(t, host.Submitted)
	assert.Equal(t, VerdictUnset, host.TitleCorrect)
	assert.Equal(t, VerdictUnset, host.ArtistCorrect)
}

func TestCreateRoomValidation(t *testing.T) {
	reg := NewRegistry()

	tests := []struct {
		name      string
		hostName  string
		songCount int
	}{
		{"empty name", "", 3},
		{"whitespace name", "   ", 3},
		{"zero songs", "Alice", 0},
		{"negative songs", "Alice", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reg.CreateRoom(tt.hostName, tt.songCount)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	assert.Equal(t, 0, reg.Len())
}

func TestRoomCodesUnique(t *testing.T) {
	reg := NewRegistry()
	seen := make(map[string]bool)

	for i := 0; i < 200; i++ {
		room, err := reg.CreateRoom("Alice", 1)
		require.NoError(t, err)
		require.Regexp(t, roomCodePattern, room.Code)
		require.False(t, seen[room.Code], "duplicate code %s", room.Code)
		seen[room.Code] = true
	}

	// Deleting frees codes for reuse without breaking uniqueness among
	// live rooms.
	summaries := reg.Summaries()
	for _, s := range summaries[:100] {
		reg.Delete(s.Code)
	}
	for i := 0; i < 100; i++ {
		room, err := reg.CreateRoom("Bob", 1)
		require.NoError(t, err)
		_, exists := reg.Get(room.Code)
		require.True(t, exists)
	}
	assert.Equal(t, 200, reg.Len())
}

func TestGetAndDelete(t *testing.T) {
	reg := NewRegistry()

	room, err := reg.CreateRoom("Alice", 2)
	require.NoError(t, err)

	got, ok := reg.Get(room.Code)
	require.True(t, ok)
	assert.Same(t, room, got)

	reg.Delete(room.Code)
	_, ok = reg.Get(room.Code)
	assert.False(t, ok)

	// Deleting an unknown code is harmless.
	reg.Delete("000000")
}

func TestSummariesOmitRosters(t *testing.T) {
	reg := NewRegistry()

	a, err := reg.CreateRoom("Alice", 3)
	require.NoError(t, err)
	b, err := reg.CreateRoom("Bob", 5)
	require.NoError(t, err)
	b.Resolve("Carol", "")

	summaries := reg.Summaries()
	require.Len(t, summaries, 2)

	byCode := make(map[string]Summary, len(summaries))
	for _, s := range summaries {
		byCode[s.Code] = s
	}

	assert.Equal(t, 1, byCode[a.Code].PlayerCount)
	assert.Equal(t, 3, byCode[a.Code].SongCount)

	assert.Equal(t, PhaseLobby, byCode[b.Code].Phase)
	assert.Equal(t, 2, byCode[b.Code].PlayerCount)
	assert.Equal(t, 0, byCode[b.Code].CurrentSongIndex)
	assert.False(t, byCode[b.Code].CreatedAt.IsZero())
}
