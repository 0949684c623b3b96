package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/shokyuu/internal/vocabulary"
)

func newDeckCommand() *cobra.Command {
	deckCommand := &cobra.Command{
		Use:   "deck",
		Short: "Manage custom decks",
	}

	deckCommand.AddCommand(newDeckAddCommand())
	deckCommand.AddCommand(newDeckListCommand())
	deckCommand.AddCommand(newDeckDeleteCommand())

	return deckCommand
}

func newDeckAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <deck> <lesson> [word...]",
		Short: "Add words of a lesson to a custom deck (every word when none is given)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			catalog, err := newCatalog(cfg)
			if err != nil {
				return err
			}
			lesson, err := catalog.Lesson(args[1])
			if err != nil {
				return fmt.Errorf("catalog.Lesson() > %w", err)
			}
			entries, err := selectWords(lesson, args[2:])
			if err != nil {
				return err
			}

			added, err := vocabulary.NewCustomDeckStore(cfg.Lessons.CustomDecksFile).Add(args[0], entries)
			if err != nil {
				return fmt.Errorf("add to deck %s > %w", args[0], err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %d word(s) to %s%s\n", added, vocabulary.CustomDeckPrefix, args[0])
			return nil
		},
	}
}

// selectWords returns the lesson entries whose source is in words, in lesson order.
func selectWords(lesson vocabulary.Lesson, words []string) ([]vocabulary.Entry, error) {
	if len(words) == 0 {
		return lesson.Entries, nil
	}
	wanted := make(map[string]bool, len(words))
	for _, word := range words {
		wanted[word] = true
	}
	var entries []vocabulary.Entry
	for _, entry := range lesson.Entries {
		if wanted[entry.Source] {
			entries = append(entries, entry)
			delete(wanted, entry.Source)
		}
	}
	for _, word := range words {
		if wanted[word] {
			return nil, fmt.Errorf("word %q is not in lesson %s", word, lesson.ID)
		}
	}
	return entries, nil
}

func newDeckListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List custom decks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			decks, err := vocabulary.NewCustomDeckStore(cfg.Lessons.CustomDecksFile).Load()
			if err != nil {
				return fmt.Errorf("load custom decks > %w", err)
			}
			names := slices.Sorted(maps.Keys(decks))

			output := cmd.OutOrStdout()
			if len(names) == 0 {
				_, _ = fmt.Fprintln(output, "No custom decks")
				return nil
			}
			for _, name := range names {
				_, _ = fmt.Fprintf(output, "%s%s\t%d word(s)\n", vocabulary.CustomDeckPrefix, name, len(decks[name]))
			}
			return nil
		},
	}
}

func newDeckDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <deck>",
		Short: "Delete a custom deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := vocabulary.NewCustomDeckStore(cfg.Lessons.CustomDecksFile).Delete(args[0]); err != nil {
				return fmt.Errorf("delete deck %s > %w", args[0], err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s%s\n", vocabulary.CustomDeckPrefix, args[0])
			return nil
		},
	}
}
