package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/bundlescope/internal/domain/fetch"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Work with resource fetch status",
}

var fetchReplayCmd = &cobra.Command{
	Use:   "replay EVENT...",
	Short: "Replay fetch events against a fresh resource",
	Long: `Replay drives one resource's fetch status through the given events and
prints each transition. An event that does not apply stops the replay.

Events: fetch_started, data_arrived, display_timeout,
        not_found_response, permission_denied

Examples:
  bundlescope fetch replay fetch_started data_arrived display_timeout
  bundlescope fetch replay --resource 0x3f2a fetch_started permission_denied`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFetchReplay,
}

var fetchResource string

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.AddCommand(fetchReplayCmd)

	fetchReplayCmd.Flags().StringVarP(&fetchResource, "resource", "r", "resource", "Resource key")
	_ = fetchReplayCmd.RegisterFlagCompletionFunc("resource", cobra.NoFileCompletions)
	fetchReplayCmd.ValidArgsFunction = func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		events := fetch.Events()
		names := make([]string, len(events))
		for i, e := range events {
			names[i] = string(e)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	}
}

func runFetchReplay(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	b, _, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer b.Close()

	st := defaultStyles()
	out := cmd.OutOrStdout()

	transitions, replayErr := b.ReplayFetch(ctx, fetchResource, args)
	for _, tr := range transitions {
		to := string(tr.To)
		if tr.To.Settled() {
			to = st.Success.Render(to)
		}
		fmt.Fprintf(out, "%s --%s--> %s\n", tr.From, tr.Event, to)
	}
	if replayErr != nil {
		return replayErr
	}

	fmt.Fprintf(out, "%s %s is %s\n", st.Muted.Render("="), fetchResource, b.Board().Status(fetchResource))
	return nil
}
