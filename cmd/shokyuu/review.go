package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/shokyuu/internal/cli"
	"github.com/at-ishikawa/shokyuu/internal/datasync"
	"github.com/at-ishikawa/shokyuu/internal/review"
	"github.com/at-ishikawa/shokyuu/internal/study"
)

var errNothingToReview = errors.New("no words to review")

func newReviewCommand() *cobra.Command {
	reviewCommand := &cobra.Command{
		Use:   "review",
		Short: "Review the words you missed",
	}

	reviewCommand.AddCommand(newReviewListCommand())
	reviewCommand.AddCommand(newReviewStartCommand())
	reviewCommand.AddCommand(newReviewSyncCommand())

	return reviewCommand
}

func newReviewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List lessons with words to review",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfigAndLogger()
			if err != nil {
				return err
			}
			defer syncLogger(logger)

			ctx := cmd.Context()
			store, closeStore, err := openReviewStore(ctx, cfg, cfg.Review.Backend)
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			ledger := review.Open(ctx, store, logger)
			return writeLessonReviews(cmd.OutOrStdout(), ledger.ListLessonsWithReview())
		},
	}
}

func writeLessonReviews(output io.Writer, lessons []review.LessonReview) error {
	if len(lessons) == 0 {
		_, err := fmt.Fprintln(output, "No words to review")
		return err
	}
	for _, lesson := range lessons {
		if _, err := fmt.Fprintf(output, "%s\t%d word(s)\n", lesson.Lesson, lesson.Count); err != nil {
			return err
		}
	}
	return nil
}

func newReviewStartCommand() *cobra.Command {
	var noShuffle bool
	command := &cobra.Command{
		Use:   "start <lesson>",
		Short: "Study the missed words of a lesson",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfigAndLogger()
			if err != nil {
				return err
			}
			defer syncLogger(logger)

			ctx := cmd.Context()
			store, closeStore, err := openReviewStore(ctx, cfg, cfg.Review.Backend)
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			lesson := args[0]
			ledger := review.Open(ctx, store, logger)
			entries := ledger.Entries(lesson)
			if len(entries) == 0 {
				return fmt.Errorf("%s: %w", lesson, errNothingToReview)
			}

			shuffle := cfg.Study.Shuffle && !noShuffle
			session, err := study.NewReviewSession(lesson, entries, shuffle,
				study.WithLedger(ledger),
				study.WithLogger(logger),
			)
			if err != nil {
				return fmt.Errorf("study.NewReviewSession() > %w", err)
			}

			studyCLI := cli.NewStudyCLI(session, displayOptions(cfg.Study), cli.NewSpeaker(cfg.Study.AudioCommand), logger)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Reviewing %d word(s) of %s\n", len(entries), lesson)
			return studyCLI.Run(ctx, studyCLI)
		},
	}
	command.Flags().BoolVar(&noShuffle, "no-shuffle", false, "Keep the order the words were missed in")
	return command
}

func newReviewSyncCommand() *cobra.Command {
	var from, to BackendFlag
	var dryRun bool

	command := &cobra.Command{
		Use:   "sync",
		Short: "Copy missed words from one review backend to another",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if from.value == to.value {
				return fmt.Errorf("--from and --to must be different backends")
			}
			cfg, logger, err := loadConfigAndLogger()
			if err != nil {
				return err
			}
			defer syncLogger(logger)

			ctx := cmd.Context()
			source, closeSource, err := openReviewStore(ctx, cfg, from.value)
			if err != nil {
				return fmt.Errorf("open %s > %w", from.value, err)
			}
			defer func() { _ = closeSource() }()
			target, closeTarget, err := openReviewStore(ctx, cfg, to.value)
			if err != nil {
				return fmt.Errorf("open %s > %w", to.value, err)
			}
			defer func() { _ = closeTarget() }()

			output := cmd.OutOrStdout()
			result, err := datasync.NewSyncer(source, target, output).Sync(ctx, datasync.SyncOptions{DryRun: dryRun})
			if err != nil {
				return fmt.Errorf("sync: %w", err)
			}

			_, _ = fmt.Fprintln(output, "\nSync Summary:")
			if dryRun {
				_, _ = fmt.Fprintln(output, "  (dry-run mode, no changes made)")
			}
			_, _ = fmt.Fprintf(output, "  Lessons:  %d new\n", result.LessonsNew)
			_, _ = fmt.Fprintf(output, "  Words:    %d new, %d skipped\n", result.EntriesNew, result.EntriesSkipped)
			return nil
		},
	}

	command.Flags().Var(&from, "from", "Backend to read from: file, sqlite or remote")
	command.Flags().Var(&to, "to", "Backend to write to: file, sqlite or remote")
	command.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be copied without writing")
	_ = command.MarkFlagRequired("from")
	_ = command.MarkFlagRequired("to")
	return command
}
