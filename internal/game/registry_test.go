package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnsureCreatesLobbyOpenRoom(t *testing.T) {
	reg, _ := newTestRegistry()

	room := reg.Ensure("r1")
	assert.Equal(t, "r1", room.Key)
	assert.True(t, room.LobbyOpen)
	assert.False(t, room.GameStarted)
	assert.Empty(t, room.Players)
	assert.NotNil(t, room.Results)
	assert.NotNil(t, room.Progress)
}

func TestEnsureReturnsSameRoomForSameKey(t *testing.T) {
	reg, _ := newTestRegistry()

	r1 := reg.Ensure("r1")
	r2 := reg.Ensure("r2")
	assert.Same(t, r1, reg.Ensure("r1"))
	assert.NotSame(t, r1, r2)
}
