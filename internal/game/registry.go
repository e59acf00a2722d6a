package game

import (
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/scythe504/typerace-backend/internal"
)

// Registry is the process-wide room lookup. Rooms are created lazily on
// first reference and live for the process lifetime; there is no
// deletion path.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*internal.Room
	clock clockwork.Clock
}

func NewRegistry(clock clockwork.Clock) *Registry {
	return &Registry{
		rooms: make(map[string]*internal.Room),
		clock: clock,
	}
}

// Ensure returns the room for key, creating a fresh lobby-open room if
// none exists yet.
func (reg *Registry) Ensure(key string) *internal.Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if room, exists := reg.rooms[key]; exists {
		return room
	}

	room := &internal.Room{
		Key:       key,
		Players:   make([]*internal.Player, 0),
		LobbyOpen: true,
		Results:   make(map[string]internal.Result),
		Progress:  make(map[string]float64),
	}
	reg.rooms[key] = room

	log.Info().Str("room", key).Msg("created room")
	return room
}
