package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveDefault(t *testing.T) []ResolvedRow {
	t.Helper()
	reg, err := NewRegistry(DefaultSchema())
	require.NoError(t, err)
	rows, err := reg.Resolve(DefaultSchemaName)
	require.NoError(t, err)
	return rows
}

func TestExtract_DefaultSchema(t *testing.T) {
	md := map[string]any{
		"uuid":        "0x0123456789abcdef",
		"name":        "train-run",
		"summary":     "ok",
		"data_size":   4096.0,
		"state":       "ready",
		"description": "baseline",
	}

	x := Extract(resolveDefault(t), md)
	require.Len(t, x.Fields, 6)
	assert.False(t, x.HasErrors())

	want := []FieldValue{
		{Field: "uuid", Value: "0x012345"},
		{Field: "name", Value: "train-run"},
		{Field: "summary[0:1024]", Value: "ok"},
		{Field: "data_size", Value: "4096"},
		{Field: "state", Value: "ready"},
		{Field: "description", Value: "baseline"},
	}
	assert.Equal(t, want, x.Fields)
}

func TestExtract_AbsentField(t *testing.T) {
	reg, err := NewRegistry(Schema{Name: "s", Rows: []Row{
		{Field: "summary", Path: "summary", PostProcessor: "[0:1024]"},
	}})
	require.NoError(t, err)
	rows, err := reg.Resolve("s")
	require.NoError(t, err)

	x := Extract(rows, map[string]any{"uuid": "abc123"})
	require.Len(t, x.Fields, 1)
	assert.Equal(t, FieldValue{Field: "summary", Value: "", WasAbsent: true}, x.Fields[0])
	assert.NoError(t, x.Fields[0].Err)
}

func TestExtract_FieldErrorsAreIsolated(t *testing.T) {
	reg, err := NewRegistry(Schema{Name: "s", Rows: []Row{
		{Field: "first", Path: "name.first"},
		{Field: "size", Path: "data_size", PostProcessor: "size"},
		{Field: "name", Path: "name"},
		{Field: "uuid", Path: "uuid", PostProcessor: "[0:8]"},
	}})
	require.NoError(t, err)
	rows, err := reg.Resolve("s")
	require.NoError(t, err)

	md := map[string]any{"name": "bundle", "data_size": "lots", "uuid": 17.0}
	x := Extract(rows, md)
	require.Len(t, x.Fields, 4)

	assert.True(t, x.HasErrors())
	errs := x.Errors()
	require.Len(t, errs, 3)
	assert.Equal(t, "first", errs[0].Field)
	assert.Equal(t, "size", errs[1].Field)
	assert.Equal(t, "uuid", errs[2].Field)

	var notIndexable *NotIndexableError
	assert.ErrorAs(t, x.Fields[0].Err, &notIndexable)
	var perr *ProcessError
	assert.ErrorAs(t, x.Fields[1].Err, &perr)
	var notSliceable *NotSliceableError
	assert.ErrorAs(t, x.Fields[3].Err, &notSliceable)

	name, ok := x.Get("name")
	require.True(t, ok)
	assert.Equal(t, "bundle", name.Value)
	assert.NoError(t, name.Err)
}

func TestExtract_NilMetadata(t *testing.T) {
	x := Extract(resolveDefault(t), nil)
	for _, f := range x.Fields {
		assert.True(t, f.WasAbsent, f.Field)
		assert.Empty(t, f.Value)
	}
}

func TestExtract_InheritedPostProcessor(t *testing.T) {
	reg, err := NewRegistry(
		DefaultSchema(),
		Schema{Name: "mine", Rows: []Row{
			{Field: "uuid", FromSchema: DefaultSchemaName},
			{Field: "elapsed", Path: "metadata.time", PostProcessor: "duration"},
		}},
	)
	require.NoError(t, err)
	rows, err := reg.Resolve("mine")
	require.NoError(t, err)

	x := Extract(rows, map[string]any{
		"uuid":     "0xaaaabbbbcccc",
		"metadata": map[string]any{"time": 75.0},
	})
	assert.Equal(t, []FieldValue{
		{Field: "uuid", Value: "0xaaaabb"},
		{Field: "elapsed", Value: "1m15s"},
	}, x.Fields)
}
