package game

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/scythe504/typerace-backend/internal"
)

const tickInterval = time.Second

// countdownRun carries the cancellation context of one armed countdown
// from the critical section that armed it to the goroutine that ticks it.
type countdownRun struct {
	ctx context.Context
}

// armCountdown stores the countdown handle on the room. Caller must hold
// the room lock and have checked that no countdown or race is active.
func (reg *Registry) armCountdown(room *internal.Room) *countdownRun {
	ctx, cancel := context.WithCancel(context.Background())
	room.Countdown = &internal.TimerHandle{Cancel: cancel}
	return &countdownRun{ctx: ctx}
}

// runCountdown ticks once per second, broadcasting the counter from 10
// down to 0. At the zero tick the ticker stops and the room transitions
// to the race phase. Cancellation via the room's countdown handle stops
// it without a transition.
func (reg *Registry) runCountdown(room *internal.Room, run *countdownRun) {
	ticker := reg.clock.NewTicker(tickInterval)
	defer ticker.Stop()

	counter := internal.CountdownSeconds
	for {
		select {
		case <-ticker.Chan():
			broadcastToRoom(room, internal.Message[int]{
				Type: internal.EventLobbyCountdown,
				Data: counter,
			})
			if counter == 0 {
				log.Info().Str("room", room.Key).Msg("countdown complete, starting race")
				reg.beginRace(room)
				return
			}
			counter--

		case <-run.ctx.Done():
			log.Info().Str("room", room.Key).Msg("countdown cancelled")
			return
		}
	}
}

// stopCountdown cancels a pending countdown and clears its handle.
// Caller must hold the room lock. Safe on a room with no countdown.
func stopCountdown(room *internal.Room) {
	if room.Countdown == nil {
		return
	}
	if room.Countdown.Cancel != nil {
		room.Countdown.Cancel()
	}
	room.Countdown = nil
}
