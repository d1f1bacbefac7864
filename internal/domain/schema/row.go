// Package schema projects bundle metadata into display fields.
//
// A schema is an ordered list of rows. Each row names a display field, a
// generalized path into the metadata and an optional post-processor. A row
// may instead point at a row of another schema with from_schema_name, in
// which case it borrows that row's path and post-processor but keeps its own
// name and position.
package schema

import "strings"

// Row is one field definition of a schema.
type Row struct {
	Field         string `json:"field" yaml:"field" toml:"field"`
	Path          string `json:"generalized-path,omitempty" yaml:"generalized-path,omitempty" toml:"generalized-path,omitempty"`
	PostProcessor string `json:"post-processor,omitempty" yaml:"post-processor,omitempty" toml:"post-processor,omitempty"`
	FromSchema    string `json:"from_schema_name,omitempty" yaml:"from_schema_name,omitempty" toml:"from_schema_name,omitempty"`
}

// Inherited reports whether the row borrows its definition from another schema.
func (r Row) Inherited() bool {
	return r.FromSchema != ""
}

// BaseField returns the field name without an inline slice annotation,
// so "summary[0:1024]" becomes "summary".
func (r Row) BaseField() string {
	if i := strings.IndexByte(r.Field, '['); i > 0 && strings.HasSuffix(r.Field, "]") {
		return r.Field[:i]
	}
	return r.Field
}

// Schema is a named, ordered list of rows.
type Schema struct {
	Name string `json:"name" yaml:"name" toml:"name"`
	Rows []Row  `json:"rows" yaml:"rows" toml:"rows"`
}

// clone returns a deep copy so registries never share row storage with callers.
func (s Schema) clone() Schema {
	rows := make([]Row, len(s.Rows))
	copy(rows, s.Rows)
	return Schema{Name: s.Name, Rows: rows}
}

// rowFor returns the first row whose field matches.
func (s Schema) rowFor(field string) (int, Row, bool) {
	for i, r := range s.Rows {
		if r.Field == field {
			return i, r, true
		}
	}
	return -1, Row{}, false
}
