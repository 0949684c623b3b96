package cli

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/at-ishikawa/shokyuu/internal/vocabulary"
)

// Speaker pronounces an entry.
type Speaker interface {
	Speak(ctx context.Context, entry vocabulary.Entry) error
}

// NopSpeaker is used when no audio command is configured.
type NopSpeaker struct{}

func (NopSpeaker) Speak(context.Context, vocabulary.Entry) error {
	return nil
}

// CommandSpeaker runs an external command such as "say -v Kyoko" with the source text as the last argument.
type CommandSpeaker struct {
	name string
	args []string
}

// NewSpeaker returns a CommandSpeaker for the command line, or a NopSpeaker when it is blank.
func NewSpeaker(command string) Speaker {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return NopSpeaker{}
	}
	return &CommandSpeaker{
		name: fields[0],
		args: fields[1:],
	}
}

func (s *CommandSpeaker) Speak(ctx context.Context, entry vocabulary.Entry) error {
	args := append(append([]string{}, s.args...), entry.Source)
	output, err := exec.CommandContext(ctx, s.name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s > %w: %s", s.name, err, strings.TrimSpace(string(output)))
	}
	return nil
}
