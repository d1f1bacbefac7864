package schema

// FieldValue is one rendered field. Absent fields have an empty Value and
// WasAbsent set. Err is set when the row failed on this bundle's data.
type FieldValue struct {
	Field     string `json:"field"`
	Value     string `json:"value"`
	WasAbsent bool   `json:"was_absent"`
	Err       error  `json:"-"`
}

// Extraction is the ordered result of evaluating a schema against one bundle.
type Extraction struct {
	Fields []FieldValue
}

// Errors returns the per-field errors in field order.
func (x Extraction) Errors() []*FieldError {
	var out []*FieldError
	for _, f := range x.Fields {
		if fe, ok := f.Err.(*FieldError); ok {
			out = append(out, fe)
		}
	}
	return out
}

// HasErrors reports whether any field failed.
func (x Extraction) HasErrors() bool {
	for _, f := range x.Fields {
		if f.Err != nil {
			return true
		}
	}
	return false
}

// Get returns the first field with the given name.
func (x Extraction) Get(field string) (FieldValue, bool) {
	for _, f := range x.Fields {
		if f.Field == field {
			return f, true
		}
	}
	return FieldValue{}, false
}

// Extractor evaluates resolved rows against bundle metadata.
type Extractor struct {
	formatter Formatter
}

// NewExtractor creates an extractor using f for locale-dependent formatting.
func NewExtractor(f Formatter) *Extractor {
	return &Extractor{formatter: f}
}

// Extract evaluates rows against metadata. It never fails as a whole: a row
// that cannot be evaluated carries its error and the other rows still render.
func (e *Extractor) Extract(rows []ResolvedRow, metadata any) Extraction {
	out := Extraction{Fields: make([]FieldValue, 0, len(rows))}
	for _, row := range rows {
		out.Fields = append(out.Fields, e.extractRow(row, metadata))
	}
	return out
}

func (e *Extractor) extractRow(row ResolvedRow, metadata any) FieldValue {
	fv := FieldValue{Field: row.Field}

	raw, absent, err := row.Path.Lookup(metadata)
	if err != nil {
		fv.Err = &FieldError{Field: row.Field, Path: row.Path.String(), Err: err}
		return fv
	}
	if absent {
		fv.WasAbsent = true
		return fv
	}

	value, err := row.Processor.Apply(raw, e.formatter)
	if err != nil {
		fv.Err = &FieldError{Field: row.Field, Path: row.Path.String(), Err: err}
		return fv
	}
	fv.Value = value
	return fv
}

// Extract evaluates rows with the default formatter.
func Extract(rows []ResolvedRow, metadata any) Extraction {
	return NewExtractor(DefaultFormatter()).Extract(rows, metadata)
}
