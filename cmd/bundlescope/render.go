package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/bundlescope/internal/app"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render bundle metadata through a schema",
	Long: `Render evaluates a schema against one bundle's metadata file (YAML,
TOML or JSON) and prints each field in schema order.

Missing values render empty. A field that cannot be evaluated on this
bundle is reported next to the field; the others still render.

Examples:
  bundlescope render --bundle bundle.json
  bundlescope render --schemas schemas.yaml --name run --bundle bundle.yaml
  bundlescope render --bundle bundle.json --json`,
	RunE: runRender,
}

var (
	renderSchemaFile string
	renderName       string
	renderBundle     string
	renderJSON       bool
)

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderSchemaFile, "schemas", "s", "", "Path to a schema document")
	renderCmd.Flags().StringVarP(&renderName, "name", "n", "", "Schema name (default from settings)")
	renderCmd.Flags().StringVarP(&renderBundle, "bundle", "b", "", "Path to a bundle metadata file")
	renderCmd.Flags().BoolVar(&renderJSON, "json", false, "Output results as JSON")
	_ = renderCmd.MarkFlagRequired("bundle")
}

type renderedFieldJSON struct {
	Field     string `json:"field"`
	Value     string `json:"value"`
	WasAbsent bool   `json:"was_absent"`
	Error     string `json:"error,omitempty"`
}

type renderedJSON struct {
	Schema     string              `json:"schema"`
	Snapshot   string              `json:"snapshot"`
	Fields     []renderedFieldJSON `json:"fields"`
	State      *app.StateReport    `json:"state,omitempty"`
	StateError string              `json:"state_error,omitempty"`
}

func runRender(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	b, _, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer b.Close()

	if renderSchemaFile != "" {
		if _, err := b.LoadSchemas(ctx, renderSchemaFile); err != nil {
			return err
		}
	}

	rendered, err := b.RenderFile(ctx, renderName, renderBundle)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if renderJSON {
		doc := renderedJSON{
			Schema:   rendered.Schema,
			Snapshot: rendered.Snapshot.String(),
			Fields:   make([]renderedFieldJSON, len(rendered.Fields.Fields)),
			State:    rendered.State,
		}
		if rendered.StateErr != nil {
			doc.StateError = rendered.StateErr.Error()
		}
		for i, f := range rendered.Fields.Fields {
			doc.Fields[i] = renderedFieldJSON{Field: f.Field, Value: f.Value, WasAbsent: f.WasAbsent}
			if f.Err != nil {
				doc.Fields[i].Error = f.Err.Error()
			}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}

	st := defaultStyles()
	t := newTable("FIELD", "VALUE")
	for _, f := range rendered.Fields.Fields {
		value := f.Value
		switch {
		case f.Err != nil:
			value = st.Error.Render("error: " + f.Err.Error())
		case f.WasAbsent:
			value = st.Muted.Render("-")
		}
		t.add(st.Key.Render(f.Field), value)
	}
	if rendered.StateErr != nil {
		t.add(st.Key.Render("state_error"), st.Error.Render("error: "+rendered.StateErr.Error()))
	}
	if _, err := fmt.Fprint(out, t.render(st)); err != nil {
		return err
	}

	if rendered.State != nil && rendered.State.CanKill {
		_, err = fmt.Fprintf(out, "\n%s bundle is %s and can be killed\n", st.Warning.Render("!"), rendered.State.State)
	}
	return err
}
