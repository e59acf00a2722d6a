package game

import (
	"context"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/scythe504/typerace-backend/internal"
)

// deadlineRun carries the cancellation context of one armed race
// deadline to the goroutine waiting on it.
type deadlineRun struct {
	ctx context.Context
}

// beginRace flips the room from lobby to race phase: locks the lobby,
// snapshots the racer set, picks a passage and arms the 30s deadline.
// Later joins and leaves never alter the snapshot.
func (reg *Registry) beginRace(room *internal.Room) {
	room.Mu.Lock()

	if room.GameStarted || !room.LobbyOpen {
		room.Mu.Unlock()
		return
	}

	room.LobbyOpen = false
	room.GameStarted = true
	stopCountdown(room)

	room.Racers = room.PlayerNames()
	room.Results = make(map[string]internal.Result)
	room.Progress = make(map[string]float64)
	room.ActivePassage = choosePassage()
	room.WordCount = countWords(room.ActivePassage)

	passage := room.ActivePassage
	racerCount := len(room.Racers)
	deadline := reg.armRaceDeadline(room)

	room.Mu.Unlock()

	log.Info().
		Str("room", room.Key).
		Int("racers", racerCount).
		Int("word_count", countWords(passage)).
		Msg("race started")

	broadcastToRoom(room, internal.Message[internal.StartGameData]{
		Type: internal.EventStartGame,
		Data: internal.StartGameData{Passage: passage},
	})
	broadcastToRoom(room, internal.Message[any]{Type: internal.EventProgressReset})

	go reg.runRaceDeadline(room, deadline)
}

// armRaceDeadline stores the deadline handle on the room. Caller must
// hold the room lock; the presence check on RaceDeadline is the
// at-most-one guard.
func (reg *Registry) armRaceDeadline(room *internal.Room) *deadlineRun {
	ctx, cancel := context.WithCancel(context.Background())
	room.RaceDeadline = &internal.TimerHandle{Cancel: cancel}
	return &deadlineRun{ctx: ctx}
}

func (reg *Registry) runRaceDeadline(room *internal.Room, run *deadlineRun) {
	timer := reg.clock.NewTimer(internal.RaceDuration)
	defer timer.Stop()

	select {
	case <-timer.Chan():
		log.Info().Str("room", room.Key).Msg("race deadline reached")
		reg.ConcludeRace(room, internal.ReasonTimer)
	case <-run.ctx.Done():
	}
}

// HandleProgress records a fractional progress report and echoes it to
// the room. Reports outside the race phase or from non-members are
// dropped silently; out-of-range values are clamped, not rejected.
func (reg *Registry) HandleProgress(player *internal.Player, progress float64) {
	room := player.Room
	if room == nil {
		return
	}

	room.Mu.Lock()
	if !room.GameStarted || !room.HasPlayer(player.Username) {
		room.Mu.Unlock()
		return
	}
	clamped := clampProgress(progress)
	room.Progress[player.Username] = clamped
	room.Mu.Unlock()

	broadcastToRoom(room, internal.Message[internal.ProgressUpdateData]{
		Type: internal.EventProgressUpdate,
		Data: internal.ProgressUpdateData{Username: player.Username, Progress: clamped},
	})
}

// HandleFinish records a racer's first finish report. Duplicate reports
// for the same username are ignored, guarding duplicate delivery.
// Acceptance forces progress to 1, rebroadcasts the scoreboard and runs
// the completion check.
func (reg *Registry) HandleFinish(player *internal.Player, data internal.PlayerFinishedData) {
	room := player.Room
	if room == nil {
		return
	}
	username := player.Username

	room.Mu.Lock()
	if !room.GameStarted || !room.IsRacer(username) {
		room.Mu.Unlock()
		return
	}
	if _, already := room.Results[username]; already {
		room.Mu.Unlock()
		log.Debug().
			Str("room", room.Key).
			Str("username", username).
			Msg("ignoring duplicate finish report")
		return
	}

	room.Results[username] = internal.Result{
		Username:     username,
		CorrectWords: max(data.CorrectWords, 0),
		WPM:          max(data.WPM, 0),
		Status:       internal.ParseStatus(data.Status),
	}
	room.Progress[username] = 1

	board := RankScoreboard(room.Racers, room.Results)
	complete := len(room.Results) == len(room.Racers)
	room.Mu.Unlock()

	log.Info().
		Str("room", room.Key).
		Str("username", username).
		Int("wpm", max(data.WPM, 0)).
		Msg("racer finished")

	broadcastToRoom(room, internal.Message[internal.ProgressUpdateData]{
		Type: internal.EventProgressUpdate,
		Data: internal.ProgressUpdateData{Username: username, Progress: 1},
	})

	// When this report completes the racer set the conclusion broadcasts
	// the board itself; an interim broadcast would only duplicate it.
	if complete {
		reg.ConcludeRace(room, internal.ReasonComplete)
		return
	}
	broadcastToRoom(room, internal.Message[internal.RaceResultsData]{
		Type: internal.EventRaceResults,
		Data: internal.RaceResultsData{Scoreboard: board, Reason: internal.ReasonProgress},
	})
}

// Disconnect handles a transport-level disconnect for a joined player:
// the username leaves the member list, and if a race is running and the
// racer has no recorded result a disconnected one is synthesized.
//
// A lobby leave that drops the room under the start quorum does not
// cancel an armed countdown; the race starts regardless and the
// remaining racers run it.
func (reg *Registry) Disconnect(player *internal.Player) {
	room := player.Room
	if room == nil {
		return
	}
	username := player.Username

	room.Mu.Lock()

	removed := false
	for i, p := range room.Players {
		if p == player {
			room.Players = append(room.Players[:i], room.Players[i+1:]...)
			removed = true
			break
		}
	}
	playerList := room.PlayerNames()

	synthesized := false
	var board []internal.Result
	complete := false
	if room.GameStarted && room.IsRacer(username) {
		if _, has := room.Results[username]; !has {
			room.Results[username] = internal.Result{
				Username: username,
				Status:   internal.StatusDisconnected,
			}
			synthesized = true
			board = RankScoreboard(room.Racers, room.Results)
			complete = len(room.Results) == len(room.Racers)
		}
	}

	room.Mu.Unlock()

	log.Info().
		Str("room", room.Key).
		Str("username", username).
		Bool("was_member", removed).
		Bool("mid_race", synthesized).
		Msg("player disconnected")

	if removed {
		broadcastToRoom(room, internal.Message[[]string]{
			Type: internal.EventPlayerList,
			Data: playerList,
		})
	}
	if synthesized {
		if complete {
			reg.ConcludeRace(room, internal.ReasonDisconnect)
			return
		}
		broadcastToRoom(room, internal.Message[internal.RaceResultsData]{
			Type: internal.EventRaceResults,
			Data: internal.RaceResultsData{Scoreboard: board, Reason: internal.ReasonDisconnect},
		})
	}
}

// ConcludeRace ends the race phase. No-op if the race is not active, so
// the deadline firing and a simultaneous completion cannot double-run
// it. Racers without a recorded result get one synthesized from the
// conclusion reason, the final scoreboard is broadcast, and the room
// resets to an open lobby ready for the next cycle.
func (reg *Registry) ConcludeRace(room *internal.Room, reason internal.ConclusionReason) {
	room.Mu.Lock()

	if !room.GameStarted {
		room.Mu.Unlock()
		return
	}
	room.GameStarted = false

	if room.RaceDeadline != nil {
		room.RaceDeadline.Cancel()
		room.RaceDeadline = nil
	}

	for _, username := range room.Racers {
		if _, has := room.Results[username]; has {
			continue
		}
		room.Results[username] = reg.synthesizeResult(room, username, reason)
	}

	board := RankScoreboard(room.Racers, room.Results)
	final := reason == internal.ReasonComplete

	// Back to lobby: the room is immediately joinable again.
	room.LobbyOpen = true
	stopCountdown(room)
	room.Racers = nil
	room.Results = make(map[string]internal.Result)
	room.Progress = make(map[string]float64)
	room.ActivePassage = ""
	room.WordCount = 0

	room.Mu.Unlock()

	log.Info().
		Str("room", room.Key).
		Str("reason", string(reason)).
		Bool("final", final).
		Msg("race concluded")

	broadcastToRoom(room, internal.Message[internal.RaceResultsData]{
		Type: internal.EventRaceResults,
		Data: internal.RaceResultsData{Scoreboard: board, Final: final, Reason: reason},
	})
}

// synthesizeResult fills in a missing result at conclusion. A timer
// expiry credits the racer with their last known progress; any other
// reason records a bare disconnection. Caller must hold the room lock.
func (reg *Registry) synthesizeResult(room *internal.Room, username string, reason internal.ConclusionReason) internal.Result {
	if reason != internal.ReasonTimer {
		return internal.Result{Username: username, Status: internal.StatusDisconnected}
	}

	correctWords := int(math.Round(room.Progress[username] * float64(room.WordCount)))
	wpm := int(math.Round(float64(correctWords) / internal.RaceDuration.Seconds() * 60))
	return internal.Result{
		Username:     username,
		CorrectWords: correctWords,
		WPM:          wpm,
		Status:       internal.StatusTimedOut,
	}
}

func clampProgress(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}
