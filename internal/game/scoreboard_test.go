package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scythe504/typerace-backend/internal"
)

func TestRankScoreboardOrdersByStatusThenStats(t *testing.T) {
	racers := []string{"slow", "gone", "fast", "idle"}
	results := map[string]internal.Result{
		"fast": {Username: "fast", CorrectWords: 38, WPM: 76, Status: internal.StatusFinished},
		"slow": {Username: "slow", CorrectWords: 12, WPM: 24, Status: internal.StatusTimedOut},
		"gone": {Username: "gone", Status: internal.StatusDisconnected},
	}

	board := RankScoreboard(racers, results)

	order := make([]string, 0, len(board))
	for _, r := range board {
		order = append(order, r.Username)
	}
	assert.Equal(t, []string{"fast", "slow", "gone", "idle"}, order)
	assert.Equal(t, internal.StatusRacing, board[3].Status, "unreported racer gets a racing placeholder")
}

func TestRankScoreboardWPMBeforeWords(t *testing.T) {
	racers := []string{"a", "b"}
	results := map[string]internal.Result{
		"a": {Username: "a", CorrectWords: 40, WPM: 60, Status: internal.StatusFinished},
		"b": {Username: "b", CorrectWords: 30, WPM: 70, Status: internal.StatusFinished},
	}

	board := RankScoreboard(racers, results)
	assert.Equal(t, "b", board[0].Username)
	assert.Equal(t, "a", board[1].Username)
}

func TestRankScoreboardTieBreaksOnUsername(t *testing.T) {
	racers := []string{"bob", "alice"}
	results := map[string]internal.Result{
		"bob":   {Username: "bob", CorrectWords: 40, WPM: 80, Status: internal.StatusFinished},
		"alice": {Username: "alice", CorrectWords: 40, WPM: 80, Status: internal.StatusFinished},
	}

	board := RankScoreboard(racers, results)
	assert.Equal(t, "alice", board[0].Username)
	assert.Equal(t, "bob", board[1].Username)
}

// Any two distinct racers must order the same way regardless of their
// position in the input, so the board is a strict total order.
func TestRankScoreboardIsDeterministic(t *testing.T) {
	racers := []string{"d", "c", "b", "a"}
	results := map[string]internal.Result{
		"a": {Username: "a", CorrectWords: 10, WPM: 20, Status: internal.StatusFinished},
		"b": {Username: "b", CorrectWords: 10, WPM: 20, Status: internal.StatusFinished},
		"c": {Username: "c", CorrectWords: 10, WPM: 20, Status: internal.StatusTimedOut},
	}

	first := RankScoreboard(racers, results)

	reversed := []string{"a", "b", "c", "d"}
	second := RankScoreboard(reversed, results)

	assert.Equal(t, first, second)

	for i := 0; i < len(first)-1; i++ {
		a, b := first[i], first[i+1]
		less := a.Status.Rank() < b.Status.Rank() ||
			(a.Status.Rank() == b.Status.Rank() && a.WPM > b.WPM) ||
			(a.Status.Rank() == b.Status.Rank() && a.WPM == b.WPM && a.CorrectWords > b.CorrectWords) ||
			(a.Status.Rank() == b.Status.Rank() && a.WPM == b.WPM && a.CorrectWords == b.CorrectWords && a.Username < b.Username)
		assert.True(t, less, "%s must strictly precede %s", a.Username, b.Username)
	}
}
