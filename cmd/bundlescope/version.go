package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/bundlescope/internal/domain/version"
)

// Version information set by build flags.
var (
	buildVersion = "dev"
	commit       = "none"
	buildDate    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Version prints build information and the server release whose bundle
vocabulary this client tracks. With --server (or [server] version in the
settings file) it also checks that server for compatibility.`,
	RunE: runVersion,
}

var versionServer string

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().StringVar(&versionServer, "server", "", "Server version to check against")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "bundlescope %s\n", buildVersion)
	fmt.Fprintf(out, "  commit: %s\n", commit)
	fmt.Fprintf(out, "  built:  %s\n", buildDate)
	fmt.Fprintf(out, "  client: %s\n", version.ClientVersion)

	b, s, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer b.Close()

	if versionServer == "" && s.ServerVersion == "" {
		return nil
	}

	check, err := b.CheckServerVersion(versionServer)
	if err != nil {
		return err
	}

	st := defaultStyles()
	mark := st.Success.Render("✓")
	if !check.Compatibility.OK() {
		mark = st.Error.Render("✗")
	}
	fmt.Fprintf(out, "  server: %s %s %s\n", check.Server, mark, check.Compatibility)

	if !check.Compatibility.OK() {
		return &UserError{
			Code:       ErrCodeVersionMismatch,
			Message:    fmt.Sprintf("server %s is not compatible with client %s (%s)", check.Server, check.Client, check.Compatibility),
			Suggestion: "upgrade bundlescope or point it at a matching server",
		}
	}
	return nil
}
