package schema

// DefaultSchemaName is the schema every worksheet table starts from.
const DefaultSchemaName = "default"

// DefaultRows returns the rows of the default bundle table.
func DefaultRows() []Row {
	return []Row{
		{Field: "uuid", Path: "uuid", PostProcessor: "[0:8]"},
		{Field: "name", Path: "name"},
		{Field: "summary[0:1024]", Path: "summary", PostProcessor: "[0:1024]"},
		{Field: "data_size", Path: "data_size"},
		{Field: "state", Path: "state"},
		{Field: "description", Path: "description"},
	}
}

// DefaultSchema returns the default schema.
func DefaultSchema() Schema {
	return Schema{Name: DefaultSchemaName, Rows: DefaultRows()}
}

// defaultPostProcessors autofills a post-processor from a well-known field name.
var defaultPostProcessors = map[string]string{
	"time": ProcessorDuration,
	"size": ProcessorSize,
	"date": ProcessorDate,
}

// DefaultPostProcessorFor returns the autofill post-processor for field.
func DefaultPostProcessorFor(field string) (string, bool) {
	pp, ok := defaultPostProcessors[field]
	return pp, ok
}

// NewRow builds a native row, filling the post-processor from the field name
// when one is known.
func NewRow(field, path string) Row {
	row := Row{Field: field, Path: path}
	if pp, ok := DefaultPostProcessorFor(row.BaseField()); ok {
		row.PostProcessor = pp
	}
	return row
}
