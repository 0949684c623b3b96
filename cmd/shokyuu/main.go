package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile string
	debugMode  bool
)

func main() {
	rootCommand := newRootCommand()
	if err := rootCommand.Execute(); err != nil {
		if _, fprintfErr := fmt.Fprintf(os.Stderr, "failed to execute a command: %+v\n", err); fprintfErr != nil {
			panic(fmt.Errorf("failed to output an error: %w. Reason: %w", err, fprintfErr))
		}
		os.Exit(1)
	}
	os.Exit(0)
}

func newRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:           "shokyuu",
		Short:         "Flashcards for beginner vocabulary lessons",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCommand.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCommand.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode")

	rootCommand.AddCommand(
		newStudyCommand(),
		newReviewCommand(),
		newLessonsCommand(),
		newDeckCommand(),
		newPrintCommand(),
		newAccountCommand(),
		newAdminCommand(),
	)
	return rootCommand
}

// syncLogger flushes the logger. Sync fails on terminals, so the error is dropped.
func syncLogger(logger *zap.Logger) {
	_ = logger.Sync()
}
