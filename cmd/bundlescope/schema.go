package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/bundlescope/internal/app"
	"github.com/felixgeelhaar/bundlescope/internal/domain/schema"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Work with display schema documents",
	Long: `Schema documents list named schemas, each an ordered set of rows:

  schemas:
    - name: run
      rows:
        - field: uuid
          from_schema_name: default
        - field: time
          generalized-path: metadata.time
          post-processor: duration

YAML, TOML and JSON documents are accepted, chosen by file extension.
The built-in "default" schema is available to every document.`,
}

var schemaResolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Show the effective rows of a schema",
	Long: `Resolve follows from_schema_name references and prints each row with
the path and post-processor it ends up using.

Examples:
  bundlescope schema resolve
  bundlescope schema resolve --schemas schemas.yaml --name run`,
	RunE: runSchemaResolve,
}

var schemaValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a schema document",
	Long: `Validate loads a schema document and resolves every schema in it.

Exit codes:
  0 - Valid document
  1 - Invalid document`,
	RunE: runSchemaValidate,
}

var schemaDefaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the built-in default schema as a document",
	RunE:  runSchemaDefaults,
}

var schemaWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload a schema document whenever it changes",
	Long: `Watch polls a schema document and republishes it on every change.
A document that fails to load is reported and the previous one is kept.`,
	RunE: runSchemaWatch,
}

var (
	schemaFile     string
	schemaName     string
	schemaJSON     bool
	schemaFormat   string
	schemaInterval time.Duration
)

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.AddCommand(schemaResolveCmd, schemaValidateCmd, schemaDefaultsCmd, schemaWatchCmd)

	for _, c := range []*cobra.Command{schemaResolveCmd, schemaValidateCmd, schemaWatchCmd} {
		c.Flags().StringVarP(&schemaFile, "schemas", "s", "", "Path to a schema document")
	}
	_ = schemaValidateCmd.MarkFlagRequired("schemas")
	_ = schemaWatchCmd.MarkFlagRequired("schemas")

	schemaResolveCmd.Flags().StringVarP(&schemaName, "name", "n", "", "Schema name (default from settings)")
	schemaResolveCmd.Flags().BoolVar(&schemaJSON, "json", false, "Output results as JSON")
	schemaDefaultsCmd.Flags().StringVar(&schemaFormat, "format", string(schema.FormatYAML), "Document format (yaml, toml, json)")
	schemaWatchCmd.Flags().DurationVar(&schemaInterval, "interval", app.DefaultWatchInterval, "Polling interval")
}

// loadSchemaFile loads --schemas into b when it was given.
func loadSchemaFile(ctx context.Context, b *app.Bundlescope) error {
	if schemaFile == "" {
		return nil
	}
	_, err := b.LoadSchemas(ctx, schemaFile)
	return err
}

type resolvedRowJSON struct {
	Field         string `json:"field"`
	Path          string `json:"generalized-path"`
	PostProcessor string `json:"post-processor,omitempty"`
	Source        string `json:"source"`
}

func runSchemaResolve(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	b, _, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer b.Close()

	if err := loadSchemaFile(ctx, b); err != nil {
		return err
	}
	rows, err := b.Resolve(ctx, schemaName)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if schemaJSON {
		list := make([]resolvedRowJSON, len(rows))
		for i, r := range rows {
			list[i] = resolvedRowJSON{
				Field:         r.Field,
				Path:          r.Path.String(),
				PostProcessor: r.Processor.String(),
				Source:        r.Source,
			}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}

	st := defaultStyles()
	t := newTable("FIELD", "PATH", "POST-PROCESSOR", "FROM")
	for _, r := range rows {
		pp := r.Processor.String()
		if pp == "" {
			pp = st.Muted.Render("-")
		}
		t.add(st.Key.Render(r.Field), r.Path.String(), pp, r.Source)
	}
	_, err = fmt.Fprint(out, t.render(st))
	return err
}

func runSchemaValidate(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	b, _, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer b.Close()

	reg, err := b.ValidateSchemas(ctx, schemaFile)
	if err != nil {
		return err
	}

	st := defaultStyles()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s: %d schema(s)\n", st.Success.Render("✓"), schemaFile, reg.Len())
	for _, name := range reg.SortedNames() {
		s, _ := reg.Schema(name)
		fmt.Fprintf(out, "  %s %s\n", st.Key.Render(name), st.Muted.Render(fmt.Sprintf("(%d rows)", len(s.Rows))))
	}
	return nil
}

func runSchemaDefaults(cmd *cobra.Command, _ []string) error {
	doc := &schema.Document{Schemas: []schema.Schema{schema.DefaultSchema()}}
	data, err := schema.EncodeDocument(doc, schema.Format(schemaFormat))
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runSchemaWatch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b, _, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer b.Close()

	if _, err := b.LoadSchemas(ctx, schemaFile); err != nil {
		return err
	}

	w := b.NewSchemaWatcher(app.WatchOptions{Path: schemaFile, Interval: schemaInterval})
	if err := w.Start(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
