package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/bundlescope/internal/app"
	"github.com/felixgeelhaar/bundlescope/internal/domain/bundle"
	"github.com/felixgeelhaar/bundlescope/internal/domain/fetch"
	"github.com/felixgeelhaar/bundlescope/internal/domain/schema"
	"github.com/felixgeelhaar/bundlescope/internal/testutil"
)

func writeRunSchemas(t *testing.T) string {
	t.Helper()
	doc := testutil.NewSchemaDocBuilder().
		WithSchema("run",
			map[string]string{"field": "uuid", "from_schema_name": "default"},
			map[string]string{"field": "state", "from_schema_name": "default"},
			map[string]string{"field": "time", "generalized-path": "metadata.time", "post-processor": "duration"},
		).
		YAML()
	return testutil.WriteTempFile(t, t.TempDir(), "schemas.yaml", doc)
}

func TestStatesCmd_All(t *testing.T) {
	out, _, err := executeCommand(t, "states")
	require.NoError(t, err)

	assert.Contains(t, out, "STATE")
	for _, s := range bundle.AllStates() {
		assert.Contains(t, out, string(s))
	}
}

func TestStatesCmd_JSON(t *testing.T) {
	out, _, err := executeCommand(t, "states", "--json", "running", "ready")
	require.NoError(t, err)

	var reports []app.StateReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 2)
	assert.True(t, reports[0].CanKill)
	assert.True(t, reports[1].Final)
}

func TestStatesCmd_Unknown(t *testing.T) {
	_, _, err := executeCommand(t, "states", "exploded")
	require.ErrorIs(t, err, bundle.ErrUnknownState)
}

func TestSchemaResolveCmd_Default(t *testing.T) {
	out, _, err := executeCommand(t, "schema", "resolve")
	require.NoError(t, err)
	assert.Contains(t, out, "summary[0:1024]")
	assert.Contains(t, out, "[0:8]")
}

func TestSchemaResolveCmd_JSON(t *testing.T) {
	path := writeRunSchemas(t)

	out, _, err := executeCommand(t, "schema", "resolve", "--schemas", path, "--name", "run", "--json")
	require.NoError(t, err)

	var rows []resolvedRowJSON
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, resolvedRowJSON{Field: "uuid", Path: "uuid", PostProcessor: "[0:8]", Source: "default"}, rows[0])
	assert.Equal(t, "run", rows[2].Source)
}

func TestSchemaResolveCmd_UnknownName(t *testing.T) {
	_, _, err := executeCommand(t, "schema", "resolve", "--name", "nope")
	require.ErrorIs(t, err, schema.ErrSchemaNotFound)
}

func TestSchemaValidateCmd(t *testing.T) {
	path := writeRunSchemas(t)

	out, _, err := executeCommand(t, "schema", "validate", "--schemas", path)
	require.NoError(t, err)
	assert.Contains(t, out, "2 schema(s)")
	assert.Contains(t, out, "run")
}

func TestSchemaValidateCmd_Cycle(t *testing.T) {
	doc := testutil.NewSchemaDocBuilder().
		WithSchema("a", map[string]string{"field": "x", "from_schema_name": "b"}).
		WithSchema("b", map[string]string{"field": "x", "from_schema_name": "a"}).
		YAML()
	path := testutil.WriteTempFile(t, t.TempDir(), "cycle.yaml", doc)

	_, _, err := executeCommand(t, "schema", "validate", "--schemas", path)
	require.ErrorIs(t, err, schema.ErrCyclicSchema)
	assert.Equal(t, ErrCodeSchemaInheritance, toUserError(err).Code)
}

func TestSchemaValidateCmd_RequiresSchemas(t *testing.T) {
	_, _, err := executeCommand(t, "schema", "validate")
	require.Error(t, err)
}

func TestSchemaDefaultsCmd(t *testing.T) {
	out, _, err := executeCommand(t, "schema", "defaults", "--format", "json")
	require.NoError(t, err)

	reg, err := schema.LoadRegistry([]byte(out), schema.FormatJSON, "stdout")
	require.NoError(t, err)
	s, ok := reg.Schema(schema.DefaultSchemaName)
	require.True(t, ok)
	assert.Equal(t, schema.DefaultRows(), s.Rows)
}

func TestSchemaDefaultsCmd_TOML(t *testing.T) {
	out, _, err := executeCommand(t, "schema", "defaults", "--format", "toml")
	require.NoError(t, err)

	_, err = schema.LoadRegistry([]byte(out), schema.FormatTOML, "stdout")
	require.NoError(t, err)
}

func TestRenderCmd(t *testing.T) {
	schemas := writeRunSchemas(t)
	bundlePath := testutil.WriteTempFile(t, t.TempDir(), "bundle.json",
		testutil.NewBundleBuilder().With("state", "running").With("metadata.time", 3725).JSON())

	out, _, err := executeCommand(t, "render", "--schemas", schemas, "--name", "run", "--bundle", bundlePath)
	require.NoError(t, err)
	assert.Contains(t, out, "0x012345")
	assert.Contains(t, out, "1h2m")
	assert.Contains(t, out, "can be killed")
}

func TestRenderCmd_JSON(t *testing.T) {
	bundlePath := testutil.WriteTempFile(t, t.TempDir(), "bundle.yaml",
		"uuid: \"0xfeedface00\"\nname: demo\nstate: ready\nsummary: {nested: true}\n")

	out, _, err := executeCommand(t, "render", "--bundle", bundlePath, "--json")
	require.NoError(t, err)

	var doc renderedJSON
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, schema.DefaultSchemaName, doc.Schema)
	require.Len(t, doc.Fields, len(schema.DefaultRows()))
	assert.Equal(t, renderedFieldJSON{Field: "uuid", Value: "0xfeedfa"}, doc.Fields[0])
	assert.NotEmpty(t, doc.Fields[2].Error, "slicing a map is a field error")
	assert.True(t, doc.Fields[5].WasAbsent)
	require.NotNil(t, doc.State)
	assert.True(t, doc.State.Final)
}

func TestRenderCmd_UnknownState(t *testing.T) {
	bundlePath := testutil.WriteTempFile(t, t.TempDir(), "bundle.json",
		testutil.NewBundleBuilder().With("state", "exploded").JSON())

	out, _, err := executeCommand(t, "render", "--bundle", bundlePath)
	require.NoError(t, err)
	assert.Contains(t, out, "state_error")
	assert.Contains(t, out, `unknown bundle state "exploded"`)
}

func TestRenderCmd_UnknownStateJSON(t *testing.T) {
	bundlePath := testutil.WriteTempFile(t, t.TempDir(), "bundle.json",
		testutil.NewBundleBuilder().With("state", "exploded").JSON())

	out, _, err := executeCommand(t, "render", "--bundle", bundlePath, "--json")
	require.NoError(t, err)

	var doc renderedJSON
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Nil(t, doc.State)
	assert.Equal(t, `unknown bundle state "exploded"`, doc.StateError)
}

func TestRenderCmd_MissingBundle(t *testing.T) {
	_, _, err := executeCommand(t, "render", "--bundle", "/nonexistent/bundle.json")
	require.Error(t, err)
	assert.Equal(t, ErrCodeFileNotFound, toUserError(err).Code)
}

func TestFetchReplayCmd(t *testing.T) {
	out, _, err := executeCommand(t, "fetch", "replay", "--resource", "0xabc", "fetch_started", "data_arrived", "display_timeout")
	require.NoError(t, err)
	assert.Contains(t, out, "unknown --fetch_started--> pending")
	assert.Contains(t, out, "briefly_loaded --display_timeout--> ready")
	assert.Contains(t, out, "0xabc is ready")
}

func TestFetchReplayCmd_InvalidTransition(t *testing.T) {
	out, _, err := executeCommand(t, "fetch", "replay", "fetch_started", "display_timeout")
	require.ErrorIs(t, err, fetch.ErrInvalidTransition)
	assert.Contains(t, out, "unknown --fetch_started--> pending")
	assert.Contains(t, formatError(err), "does not apply while the resource is pending")
}

func TestFetchReplayCmd_RequiresEvents(t *testing.T) {
	_, _, err := executeCommand(t, "fetch", "replay")
	require.Error(t, err)
}

func TestVersionCmd(t *testing.T) {
	out, _, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "bundlescope dev")
	assert.Contains(t, out, "client: 1.7.0")
	assert.NotContains(t, out, "server:")
}

func TestVersionCmd_Server(t *testing.T) {
	out, _, err := executeCommand(t, "version", "--server", "1.7.4")
	require.NoError(t, err)
	assert.Contains(t, out, "server: 1.7.4")

	_, _, err = executeCommand(t, "version", "--server", "2.0.0")
	require.ErrorIs(t, err, &UserError{Code: ErrCodeVersionMismatch})

	_, _, err = executeCommand(t, "version", "--server", "nightly")
	require.Error(t, err)
	assert.Equal(t, ErrCodeInvalidVersion, toUserError(err).Code)
}
