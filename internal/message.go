package internal

type Message[T any] struct {
	Type string `json:"type"`
	Data T      `json:"data"`
}

// Outbound event types.
const (
	EventNameTaken      = "name-taken"
	EventLobbyLocked    = "lobby-locked"
	EventSystemMessage  = "system-message"
	EventPlayerList     = "player-list"
	EventLobbyCountdown = "lobby-countdown"
	EventStartGame      = "start-game"
	EventProgressReset  = "progress-reset"
	EventProgressUpdate = "progress-update"
	EventRaceResults    = "race-results"
)

// Inbound event types. Joining is bound at the connection handshake and
// disconnects arrive as transport errors, so only progress reports
// (EventProgressUpdate, shared with the outbound echo) and finish reports
// travel in-band.
const (
	EventPlayerFinished = "player-finished"
)

type StartGameData struct {
	Passage string `json:"passage"`
}

type ProgressReportData struct {
	Progress float64 `json:"progress"`
}

type ProgressUpdateData struct {
	Username string  `json:"username"`
	Progress float64 `json:"progress"`
}

type PlayerFinishedData struct {
	CorrectWords int    `json:"correctWords"`
	WPM          int    `json:"wpm"`
	Status       string `json:"status"`
}

type RaceResultsData struct {
	Scoreboard []Result         `json:"scoreboard"`
	Final      bool             `json:"final"`
	Reason     ConclusionReason `json:"reason"`
}
