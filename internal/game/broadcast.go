package game

import (
	"github.com/rs/zerolog/log"

	"github.com/scythe504/typerace-backend/internal"
)

// broadcastToRoom delivers msg to every current member. Fire-and-forget:
// a failed write means the peer is on its way out and the read loop will
// notice; no retry, no backpressure.
//
// Callers must NOT hold the room lock; the member list is snapshotted
// under it here.
func broadcastToRoom[T any](room *internal.Room, msg internal.Message[T]) {
	room.Mu.Lock()
	players := make([]*internal.Player, len(room.Players))
	copy(players, room.Players)
	room.Mu.Unlock()

	for _, p := range players {
		if err := p.SafeWriteJSON(msg); err != nil {
			log.Debug().
				Str("room", room.Key).
				Str("username", p.Username).
				Str("event", msg.Type).
				Err(err).
				Msg("dropped broadcast to unreachable peer")
		}
	}
}

// sendToPlayer delivers msg to a single connection, for sender-only
// signals like name-taken and lobby-locked.
func sendToPlayer[T any](p *internal.Player, msg internal.Message[T]) {
	if err := p.SafeWriteJSON(msg); err != nil {
		log.Debug().
			Str("username", p.Username).
			Str("event", msg.Type).
			Err(err).
			Msg("failed to write to player")
	}
}
