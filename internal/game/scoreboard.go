package game

import (
	"slices"
	"strings"

	"github.com/scythe504/typerace-backend/internal"
)

// RankScoreboard builds the ranked scoreboard for the given racer set.
// Racers without a recorded result get a still-racing placeholder. The
// order is a strict total order: status rank, then wpm descending, then
// correct words descending, then username ascending, so no two distinct
// racers ever tie.
func RankScoreboard(racers []string, results map[string]internal.Result) []internal.Result {
	board := make([]internal.Result, 0, len(racers))
	for _, username := range racers {
		if res, ok := results[username]; ok {
			board = append(board, res)
		} else {
			board = append(board, internal.Result{
				Username: username,
				Status:   internal.StatusRacing,
			})
		}
	}

	slices.SortFunc(board, func(a, b internal.Result) int {
		if d := a.Status.Rank() - b.Status.Rank(); d != 0 {
			return d
		}
		if d := b.WPM - a.WPM; d != 0 {
			return d
		}
		if d := b.CorrectWords - a.CorrectWords; d != 0 {
			return d
		}
		return strings.Compare(a.Username, b.Username)
	})
	return board
}
