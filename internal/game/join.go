package game

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/scythe504/typerace-backend/internal"
)

// Join runs the join protocol for player against the room at key.
//
// Rejections (duplicate name, locked lobby) are reported both as a
// sender-only event on the player's connection and as a returned error
// so the transport layer can drop the connection. A successful join
// appends the player in join order, announces it to the room, and arms
// the lobby countdown once quorum is reached.
func (reg *Registry) Join(key string, player *internal.Player) error {
	room := reg.Ensure(key)

	room.Mu.Lock()

	if room.HasPlayer(player.Username) {
		room.Mu.Unlock()
		log.Info().
			Str("room", room.Key).
			Str("username", player.Username).
			Msg("join rejected: name taken")
		sendToPlayer(player, internal.Message[any]{Type: internal.EventNameTaken})
		return ErrNameTaken
	}

	if !room.LobbyOpen {
		room.Mu.Unlock()
		log.Info().
			Str("room", room.Key).
			Str("username", player.Username).
			Msg("join rejected: lobby locked")
		sendToPlayer(player, internal.Message[any]{Type: internal.EventLobbyLocked})
		return ErrLobbyLocked
	}

	player.Room = room
	room.Players = append(room.Players, player)

	notice := fmt.Sprintf("%s joined %s", player.Username, room.Key)
	playerList := room.PlayerNames()

	// Arm the countdown inside the same critical section so two
	// concurrent joins cannot both start one.
	startCountdown := len(room.Players) >= internal.MinPlayersToStart &&
		room.Countdown == nil && !room.GameStarted
	var countdown *countdownRun
	if startCountdown {
		countdown = reg.armCountdown(room)
	}

	room.Mu.Unlock()

	log.Info().
		Str("room", room.Key).
		Str("username", player.Username).
		Int("players", len(playerList)).
		Bool("countdown_started", startCountdown).
		Msg("player joined")

	broadcastToRoom(room, internal.Message[string]{
		Type: internal.EventSystemMessage,
		Data: notice,
	})
	broadcastToRoom(room, internal.Message[[]string]{
		Type: internal.EventPlayerList,
		Data: playerList,
	})

	if countdown != nil {
		go reg.runCountdown(room, countdown)
	}
	return nil
}
