package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/at-ishikawa/shokyuu/internal/study"
	"github.com/at-ishikawa/shokyuu/internal/vocabulary"
)

// StudyCLI drives a study session from the terminal
type StudyCLI struct {
	*InteractiveCLI
	session *study.Session
	display study.DisplayOptions
	speaker Speaker
	logger  *zap.Logger
}

func NewStudyCLI(
	session *study.Session,
	display study.DisplayOptions,
	speaker Speaker,
	logger *zap.Logger,
) *StudyCLI {
	if speaker == nil {
		speaker = NopSpeaker{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudyCLI{
		InteractiveCLI: newInteractiveCLI(nil, nil),
		session:        session,
		display:        display,
		speaker:        speaker,
		logger:         logger,
	}
}

func (r *StudyCLI) Session(ctx context.Context) error {
	snapshot := r.session.Snapshot()
	view := study.Render(snapshot, r.display)
	if snapshot.Phase.Terminal() {
		return r.finish(view)
	}

	r.printCard(view)
	_, _ = fmt.Fprint(r.stdoutWriter, "[f]lip [y]got it [n]missed [p]lay [q]uit: ")
	command, err := r.readCommand()
	if err != nil {
		return err
	}

	switch command {
	case "", "f":
		if err := r.session.Flip(); err != nil {
			return fmt.Errorf("session.Flip() > %w", err)
		}
	case "y", "n":
		event, err := r.session.Judge(ctx, command == "y")
		if err != nil {
			return fmt.Errorf("session.Judge() > %w", err)
		}
		if event == study.EventRoundRequeued {
			next := r.session.Snapshot()
			_, _ = color.New(color.FgYellow).Fprintf(r.stdoutWriter,
				"Round %d: %d word(s) to try again\n", next.Round, next.Total)
		}
	case "p":
		if snapshot.HasCurrent {
			r.play(ctx, snapshot.Current)
		}
	case "q":
		return errEnd
	default:
		_, _ = fmt.Fprintf(r.stdoutWriter, "Unknown command: %s\n", command)
	}
	return nil
}

func (r *StudyCLI) printCard(view study.ViewModel) {
	w := r.stdoutWriter
	_, _ = fmt.Fprintln(w)
	_, _ = r.bold.Fprintf(w, "%s", view.Header)
	_, _ = fmt.Fprintf(w, "  %s\n", view.Counter)
	_, _ = r.faint.Fprintf(w, "%s\n", view.Stats)
	_, _ = fmt.Fprintln(w)
	_, _ = r.bold.Fprintf(w, "  %s\n", view.Front)
	if view.Revealed {
		for _, line := range view.Back {
			if line == "" {
				continue
			}
			_, _ = r.italic.Fprintf(w, "  %s\n", line)
		}
	}
	_, _ = fmt.Fprintln(w)
}

// finish prints the result and offers infinite mode when the session allows it.
func (r *StudyCLI) finish(view study.ViewModel) error {
	w := r.stdoutWriter
	_, _ = fmt.Fprintln(w)
	for i, line := range view.Result {
		if i == 0 {
			_, _ = color.New(color.FgGreen, color.Bold).Fprintf(w, "%s\n", line)
			continue
		}
		_, _ = fmt.Fprintln(w, line)
	}
	if misses := r.session.Summary().Misses; len(misses) > 0 {
		_, _ = fmt.Fprintf(w, "Missed: %s\n", joinSources(misses))
	}

	if !view.CanRestartInfinite {
		return errEnd
	}
	_, _ = fmt.Fprint(w, "[y/N]: ")
	command, err := r.readCommand()
	if err != nil {
		return err
	}
	if command != "y" && command != "yes" {
		return errEnd
	}
	if err := r.session.RestartInfinite(); err != nil {
		return fmt.Errorf("session.RestartInfinite() > %w", err)
	}
	return nil
}

// play speaks the entry in the background. Failures are only logged.
func (r *StudyCLI) play(ctx context.Context, entry vocabulary.Entry) {
	go func() {
		if err := r.speaker.Speak(ctx, entry); err != nil {
			r.logger.Warn("failed to play audio",
				zap.String("source", entry.Source),
				zap.Error(err),
			)
		}
	}()
}

func joinSources(entries []vocabulary.Entry) string {
	sources := make([]string, 0, len(entries))
	for _, e := range entries {
		sources = append(sources, e.Source)
	}
	return strings.Join(sources, ", ")
}
