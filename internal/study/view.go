package study

import (
	"fmt"
	"strings"
)

type DisplayOptions struct {
	ShowTransliteration bool
	// Reverse shows the translation on the front of the card.
	Reverse bool
}

// ViewModel is everything a front end needs to draw the session.
type ViewModel struct {
	Header             string
	Counter            string
	Stats              string
	Front              string
	Back               []string
	Revealed           bool
	Result             []string
	CanRestartInfinite bool
}

// Render converts a snapshot into display text. It has no side effects.
func Render(snapshot Snapshot, opts DisplayOptions) ViewModel {
	vm := ViewModel{
		Header:             snapshot.Lesson,
		Stats:              fmt.Sprintf("Remembered: %d | Not remembered: %d", snapshot.Remembered, snapshot.NotRemembered),
		Revealed:           snapshot.Phase == PhaseRevealed,
		CanRestartInfinite: snapshot.CanRestartInfinite,
	}
	if snapshot.PartLabel != "" {
		vm.Header += " - " + snapshot.PartLabel
	}

	position := min(snapshot.Position+1, snapshot.Total)
	vm.Counter = fmt.Sprintf("%d/%d%s", position, snapshot.Total, modeSuffix(snapshot.Mode))

	if snapshot.HasCurrent {
		entry := snapshot.Current
		vm.Front = entry.Source
		if opts.Reverse {
			vm.Front = entry.Translation
		}
		vm.Back = []string{entry.Source}
		if opts.ShowTransliteration {
			vm.Back = append(vm.Back, entry.Transliteration)
		}
		vm.Back = append(vm.Back, entry.Translation)
	}

	switch snapshot.Phase {
	case PhaseReviewComplete:
		vm.Result = []string{
			fmt.Sprintf("Review complete for lesson %s", snapshot.Lesson),
			scoreLine(snapshot),
		}
	case PhaseSessionComplete:
		vm.Result = sessionResult(snapshot)
	}
	return vm
}

func modeSuffix(mode Mode) string {
	switch mode {
	case ModeInfinite:
		return " (Infinite Mode)"
	case ModeReview:
		return " (Review)"
	default:
		return ""
	}
}

func sessionResult(snapshot Snapshot) []string {
	var result []string
	switch {
	case snapshot.Mode == ModeInfinite:
		result = append(result, "Infinite mode session complete")
	case snapshot.CanRestartInfinite:
		result = append(result, "Excellent! You remembered every word")
	default:
		result = append(result, "Lesson complete")
	}
	result = append(result, scoreLine(snapshot))
	if snapshot.NewReviewEntries > 0 {
		result = append(result, fmt.Sprintf("Added %d new word(s) to the review deck", snapshot.NewReviewEntries))
	}
	if snapshot.CanRestartInfinite {
		result = append(result, "Continue in infinite mode?")
	}
	return result
}

func scoreLine(snapshot Snapshot) string {
	return strings.Join([]string{
		fmt.Sprintf("Correct: %d", snapshot.Correct),
		fmt.Sprintf("Wrong: %d", snapshot.Wrong),
		fmt.Sprintf("Accuracy: %d%%", accuracy(snapshot.Correct, snapshot.Wrong)),
	}, " | ")
}
