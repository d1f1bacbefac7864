package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/bundlescope/internal/adapters/filesystem"
	"github.com/felixgeelhaar/bundlescope/internal/adapters/logging"
	"github.com/felixgeelhaar/bundlescope/internal/app"
	"github.com/felixgeelhaar/bundlescope/internal/ports"
)

var (
	// Global flags
	settingsFile string
	verbose      bool
	logFormat    string
)

var rootCmd = &cobra.Command{
	Use:   "bundlescope",
	Short: "Inspect bundle states, fetch status and display schemas",
	Long: `Bundlescope works with the client-side vocabulary of a bundle service.

It classifies bundle lifecycle states, replays resource fetch status
events and renders bundle metadata through inheritable display schemas:
  schema document -> resolve -> extract -> post-process -> fields`,
	SilenceErrors: true, // We handle error formatting ourselves
	SilenceUsage:  true, // Don't show usage on error
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&settingsFile, "settings", "", "settings file (INI)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text, json)")

	_ = rootCmd.RegisterFlagCompletionFunc("log-format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{app.LogFormatText, app.LogFormatJSON}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("settings", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"ini"}, cobra.ShellCompDirectiveFilterFileExt
	})
}

// loadSettings reads --settings when given and applies the global flags.
func loadSettings() (app.Settings, error) {
	s := app.DefaultSettings()
	if settingsFile != "" {
		loaded, err := app.LoadSettings(filesystem.NewRealFileSystem(), settingsFile)
		if err != nil {
			return s, err
		}
		s = loaded
	}
	if verbose {
		s.LogLevel = ports.LevelDebug
	}
	if logFormat != "" {
		s.LogFormat = logFormat
	}
	return s, s.Validate()
}

// newApp builds the application for one command run. Logs go to the
// command's error stream so stdout stays parseable.
func newApp(cmd *cobra.Command) (*app.Bundlescope, app.Settings, error) {
	s, err := loadSettings()
	if err != nil {
		return nil, s, err
	}

	logger := logging.NewConsoleLogger(
		logging.WithOutput(cmd.ErrOrStderr()),
		logging.WithLevel(s.LogLevel),
		logging.WithJSONFormat(s.LogFormat == app.LogFormatJSON),
	)

	b := app.New(
		app.WithFileSystem(filesystem.NewRealFileSystem()),
		app.WithLogger(logger),
		app.WithSettings(s),
	)
	return b, s, nil
}

// formatError returns a user-friendly error message.
// With verbose=false: shows only the user message and suggestion.
// With verbose=true: also shows the underlying technical error.
func formatError(err error) string {
	var userErr *UserError
	if !errors.As(err, &userErr) {
		userErr = toUserError(err)
	}
	if userErr == nil {
		return err.Error()
	}

	msg := userErr.Message
	if userErr.Context != "" {
		msg += fmt.Sprintf(" (at %s)", userErr.Context)
	}
	if userErr.Suggestion != "" {
		msg += fmt.Sprintf("\n\nSuggestion: %s", userErr.Suggestion)
	}
	if verbose && userErr.Underlying != nil {
		msg += fmt.Sprintf("\n\nTechnical details: %v", userErr.Underlying)
	}
	return msg
}

// printError prints an error message to stderr with proper formatting.
func printError(err error) {
	printErrorTo(os.Stderr, err)
}

// printErrorTo prints an error message to the given writer.
func printErrorTo(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %s\n", formatError(err))
}
