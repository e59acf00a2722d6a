package internal

import (
	"context"
	"sync"
	"time"
)

const (
	CountdownSeconds  = 10
	RaceDuration      = 30 * time.Second
	MinPlayersToStart = 2
)

// RaceStatus is a closed set; anything a client sends outside it is
// defaulted to StatusFinished rather than stored raw.
type RaceStatus string

const (
	StatusFinished     RaceStatus = "finished"
	StatusTimedOut     RaceStatus = "timed out"
	StatusDisconnected RaceStatus = "disconnected"
	StatusRacing       RaceStatus = "racing"
)

// Rank orders statuses for the scoreboard: finished places above timed
// out, timed out above disconnected, disconnected above still racing.
func (s RaceStatus) Rank() int {
	switch s {
	case StatusFinished:
		return 0
	case StatusTimedOut:
		return 1
	case StatusDisconnected:
		return 2
	default:
		return 3
	}
}

func ParseStatus(s string) RaceStatus {
	switch RaceStatus(s) {
	case StatusFinished, StatusTimedOut, StatusDisconnected, StatusRacing:
		return RaceStatus(s)
	default:
		return StatusFinished
	}
}

type ConclusionReason string

const (
	ReasonProgress   ConclusionReason = "progress"
	ReasonTimer      ConclusionReason = "timer"
	ReasonComplete   ConclusionReason = "complete"
	ReasonDisconnect ConclusionReason = "disconnect"
)

type Result struct {
	Username     string     `json:"username"`
	CorrectWords int        `json:"correctWords"`
	WPM          int        `json:"wpm"`
	Status       RaceStatus `json:"status"`
}

// TimerHandle is the cancellable half of a scheduled callback. Presence
// on the room doubles as the "already armed" guard.
type TimerHandle struct {
	Cancel context.CancelFunc
}

type Room struct {
	Key string

	// Lobby state
	Players   []*Player // join order
	LobbyOpen bool
	Countdown *TimerHandle

	// Race state
	GameStarted   bool
	Racers        []string // snapshot at race start, never mutated mid-race
	Results       map[string]Result
	Progress      map[string]float64
	ActivePassage string
	WordCount     int
	RaceDeadline  *TimerHandle

	// Concurrency control: every mutation of the room happens under Mu,
	// whether it comes from an inbound event or a timer callback.
	Mu sync.Mutex
}

func (r *Room) HasPlayer(username string) bool {
	for _, p := range r.Players {
		if p.Username == username {
			return true
		}
	}
	return false
}

func (r *Room) IsRacer(username string) bool {
	for _, u := range r.Racers {
		if u == username {
			return true
		}
	}
	return false
}

func (r *Room) PlayerNames() []string {
	names := make([]string, 0, len(r.Players))
	for _, p := range r.Players {
		names = append(names, p.Username)
	}
	return names
}
