package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/bundlescope/internal/app"
)

var statesCmd = &cobra.Command{
	Use:   "states [state...]",
	Short: "Classify bundle lifecycle states",
	Long: `States shows whether each bundle state is final, offline, which
lineages it belongs to and whether a bundle in it can be killed.

Without arguments every state is listed in lifecycle order.

Examples:
  bundlescope states
  bundlescope states running worker_offline
  bundlescope states --json ready`,
	RunE: runStates,
}

var statesJSON bool

func init() {
	rootCmd.AddCommand(statesCmd)

	statesCmd.Flags().BoolVar(&statesJSON, "json", false, "Output results as JSON")
}

func runStates(cmd *cobra.Command, args []string) error {
	var reports []app.StateReport
	if len(args) == 0 {
		reports = app.ClassifyAll()
	} else {
		for _, arg := range args {
			report, err := app.ClassifyState(arg)
			if err != nil {
				return err
			}
			reports = append(reports, report)
		}
	}

	out := cmd.OutOrStdout()
	if statesJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	st := defaultStyles()
	t := newTable("STATE", "LABEL", "FINAL", "OFFLINE", "KILLABLE", "LINEAGES")
	for _, r := range reports {
		lineages := make([]string, len(r.Lineages))
		for i, l := range r.Lineages {
			lineages[i] = string(l)
		}
		lineageCell := strings.Join(lineages, ",")
		if lineageCell == "" {
			lineageCell = st.Muted.Render("-")
		}
		t.add(string(r.State), r.Label, yesNo(st, r.Final), yesNo(st, r.Offline), yesNo(st, r.CanKill), lineageCell)
	}
	_, err := fmt.Fprint(out, t.render(st))
	return err
}
