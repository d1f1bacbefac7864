package schema

// ResolvedRow is an effective row: the including schema's field name with
// the path and post-processor of the row that defines it.
type ResolvedRow struct {
	Field     string
	Path      Path
	Processor PostProcessor
	// Source is the schema whose native row supplied Path and Processor.
	Source string
}

// Resolve returns the effective rows of the named schema in display order.
func (r *Registry) Resolve(name string) ([]ResolvedRow, error) {
	s, ok := r.schemas[name]
	if !ok {
		return nil, &SchemaNotFoundError{Name: name}
	}

	rows := make([]ResolvedRow, 0, len(s.Rows))
	for i, row := range s.Rows {
		resolved, err := r.resolveRow(name, i, row)
		if err != nil {
			return nil, err
		}
		rows = append(rows, resolved)
	}
	return rows, nil
}

// resolveRow follows from_schema_name references until it reaches a native
// row. A chain longer than the registry, or one that revisits a
// (schema, field) pair, is cyclic.
func (r *Registry) resolveRow(schemaName string, index int, row Row) (ResolvedRow, error) {
	owner, ownerIndex, cur := schemaName, index, row
	chain := []string{schemaName}
	visited := map[string]bool{schemaName + "\x00" + row.Field: true}

	for hops := 0; cur.Inherited(); hops++ {
		if hops >= r.Len() {
			return ResolvedRow{}, &CyclicSchemaError{Field: row.Field, Chain: chain}
		}

		parent, ok := r.schemas[cur.FromSchema]
		if !ok {
			return ResolvedRow{}, &MissingParentSchemaError{Schema: owner, Field: cur.Field, Parent: cur.FromSchema}
		}

		i, parentRow, ok := parent.rowFor(cur.Field)
		if !ok {
			return ResolvedRow{}, &MissingParentFieldError{Schema: owner, Field: cur.Field, Parent: parent.Name}
		}

		chain = append(chain, parent.Name)
		key := parent.Name + "\x00" + parentRow.Field
		if visited[key] {
			return ResolvedRow{}, &CyclicSchemaError{Field: row.Field, Chain: chain}
		}
		visited[key] = true

		owner, ownerIndex, cur = parent.Name, i, parentRow
	}

	c := r.compiled[rowKey{owner, ownerIndex}]
	return ResolvedRow{
		Field:     row.Field,
		Path:      c.path,
		Processor: c.processor,
		Source:    owner,
	}, nil
}
