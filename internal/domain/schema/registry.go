package schema

import (
	"fmt"
	"sort"
)

// Registry is an immutable index of schemas by name. Build it once with
// NewRegistry; replace it wholesale to reload.
type Registry struct {
	schemas map[string]Schema
	order   []string
	// processors and paths of native rows, compiled at construction.
	compiled map[rowKey]compiledRow
}

type rowKey struct {
	schema string
	index  int
}

type compiledRow struct {
	path      Path
	processor PostProcessor
}

// NewRegistry validates and indexes schemas. Every native row must have a
// parseable path, and every post-processor must be known, so a malformed
// schema is rejected before any bundle data is touched.
func NewRegistry(schemas ...Schema) (*Registry, error) {
	r := &Registry{
		schemas:  make(map[string]Schema, len(schemas)),
		compiled: make(map[rowKey]compiledRow),
	}

	for _, s := range schemas {
		if s.Name == "" {
			return nil, fmt.Errorf("schema name cannot be empty")
		}
		if _, dup := r.schemas[s.Name]; dup {
			return nil, &DuplicateSchemaError{Name: s.Name}
		}

		s = s.clone()
		for i, row := range s.Rows {
			if row.Field == "" {
				return nil, fmt.Errorf("schema %q row %d: field cannot be empty", s.Name, i)
			}

			var pp PostProcessor
			if row.PostProcessor != "" {
				compiled, err := ParsePostProcessor(row.PostProcessor)
				if err != nil {
					return nil, &UnknownPostProcessorError{Schema: s.Name, Field: row.Field, Name: row.PostProcessor}
				}
				pp = compiled
			}

			if row.Inherited() {
				continue
			}

			path, err := ParsePath(row.Path)
			if err != nil {
				return nil, &InvalidPathError{Schema: s.Name, Field: row.Field, Path: row.Path, Err: err}
			}
			r.compiled[rowKey{s.Name, i}] = compiledRow{path: path, processor: pp}
		}

		r.schemas[s.Name] = s
		r.order = append(r.order, s.Name)
	}

	return r, nil
}

// Len returns the number of schemas.
func (r *Registry) Len() int {
	return len(r.order)
}

// Names returns schema names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// SortedNames returns schema names alphabetically.
func (r *Registry) SortedNames() []string {
	out := r.Names()
	sort.Strings(out)
	return out
}

// Schema returns a copy of the named schema.
func (r *Registry) Schema(name string) (Schema, bool) {
	s, ok := r.schemas[name]
	if !ok {
		return Schema{}, false
	}
	return s.clone(), true
}

// ResolveAll resolves every schema, returning the first error.
func (r *Registry) ResolveAll() (map[string][]ResolvedRow, error) {
	out := make(map[string][]ResolvedRow, len(r.order))
	for _, name := range r.order {
		rows, err := r.Resolve(name)
		if err != nil {
			return nil, err
		}
		out[name] = rows
	}
	return out, nil
}
