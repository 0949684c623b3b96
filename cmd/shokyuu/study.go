package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/shokyuu/internal/cli"
	"github.com/at-ishikawa/shokyuu/internal/config"
	"github.com/at-ishikawa/shokyuu/internal/review"
	"github.com/at-ishikawa/shokyuu/internal/study"
	"github.com/at-ishikawa/shokyuu/internal/vocabulary"
)

type studyOptions struct {
	part              PartFlag
	includeOptional   bool
	noShuffle         bool
	reverse           bool
	noTransliteration bool
}

func newStudyCommand() *cobra.Command {
	var opts studyOptions
	command := &cobra.Command{
		Use:   "study <lesson>",
		Short: "Study a lesson with flashcards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfigAndLogger()
			if err != nil {
				return err
			}
			defer syncLogger(logger)
			applyStudyFlags(cmd, cfg, &opts)

			catalog, err := newCatalog(cfg)
			if err != nil {
				return err
			}
			lesson, err := catalog.Lesson(args[0])
			if err != nil {
				return fmt.Errorf("catalog.Lesson() > %w", err)
			}
			deckConfig, err := newDeckConfig(lesson, cfg.Study, opts.part.value)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, closeStore, err := openReviewStore(ctx, cfg, cfg.Review.Backend)
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()
			ledger := review.Open(ctx, store, logger)

			session, err := study.NewSession(lesson.ID, lesson.Entries, deckConfig,
				study.WithLedger(ledger),
				study.WithLogger(logger),
			)
			if err != nil {
				return fmt.Errorf("study.NewSession() > %w", err)
			}

			studyCLI := cli.NewStudyCLI(session, displayOptions(cfg.Study), cli.NewSpeaker(cfg.Study.AudioCommand), logger)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Starting %s with %d cards\n", lesson.Name(), session.Deck().Len())
			return studyCLI.Run(ctx, studyCLI)
		},
	}

	command.Flags().Var(&opts.part, "part", "Part of the lesson to study: all, part-N or optional-only")
	command.Flags().BoolVar(&opts.includeOptional, "include-optional", false, "Include optional words")
	command.Flags().BoolVar(&opts.noShuffle, "no-shuffle", false, "Keep the lesson order")
	command.Flags().BoolVar(&opts.reverse, "reverse", false, "Show the meaning first")
	command.Flags().BoolVar(&opts.noTransliteration, "no-transliteration", false, "Hide transliterations")
	return command
}

// applyStudyFlags overrides the study config with flags given on the command line.
func applyStudyFlags(cmd *cobra.Command, cfg *config.Config, opts *studyOptions) {
	flags := cmd.Flags()
	if flags.Changed("include-optional") {
		cfg.Study.IncludeOptional = opts.includeOptional
	}
	if flags.Changed("no-shuffle") {
		cfg.Study.Shuffle = !opts.noShuffle
	}
	if flags.Changed("reverse") {
		cfg.Study.Reverse = opts.reverse
	}
	if flags.Changed("no-transliteration") {
		cfg.Study.ShowTransliteration = !opts.noTransliteration
	}
}

// newDeckConfig resolves the part against the lesson. Custom decks are never split into parts.
func newDeckConfig(lesson vocabulary.Lesson, studyCfg config.StudyConfig, part string) (study.DeckConfig, error) {
	deckConfig := study.DeckConfig{
		IncludeOptional: studyCfg.IncludeOptional,
		Shuffle:         studyCfg.Shuffle,
	}
	if vocabulary.IsCustomDeck(lesson.ID) {
		deckConfig.IncludeOptional = true
		return deckConfig, nil
	}
	partition, err := study.ParsePartition(part, lesson.Entries)
	if err != nil {
		return study.DeckConfig{}, fmt.Errorf("study.ParsePartition() > %w", err)
	}
	deckConfig.Partition = partition
	return deckConfig, nil
}

func displayOptions(studyCfg config.StudyConfig) study.DisplayOptions {
	return study.DisplayOptions{
		ShowTransliteration: studyCfg.ShowTransliteration,
		Reverse:             studyCfg.Reverse,
	}
}
