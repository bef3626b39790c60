package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchFavorites Phase = iota
	FetchGames
	SportDone
	SportFailed
)

func (p Phase) String() string {
	switch p {
	case FetchFavorites:
		return "fetch_favorites"
	case FetchGames:
		return "fetch_games"
	case SportDone:
		return "sport_done"
	case SportFailed:
		return "sport_failed"
	default:
		return ""
	}
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func fetchGamesUpdate(step, total int, sport string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchGames,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching live %s games...", sport),
	}
}

func sportDoneUpdate(step, total int, result SportGames) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SportDone,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("%s: %d live", result.Sport, len(result.Games)),
		Data:    result,
	}
}

func sportFailedUpdate(step, total int, sport string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SportFailed,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("%s: %v", sport, err),
	}
}
