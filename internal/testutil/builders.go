package testutil

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// BundleBuilder builds bundle metadata records for tests.
type BundleBuilder struct {
	record map[string]interface{}
}

// NewBundleBuilder creates a builder pre-filled with a uuid, name and state.
func NewBundleBuilder() *BundleBuilder {
	return &BundleBuilder{
		record: map[string]interface{}{
			"uuid":  "0x0123456789abcdef0123456789abcdef",
			"name":  "test-bundle",
			"state": "ready",
		},
	}
}

// With sets a value at a dot-separated key, creating nested maps as needed.
func (b *BundleBuilder) With(key string, value interface{}) *BundleBuilder {
	parts := strings.Split(key, ".")
	node := b.record
	for _, p := range parts[:len(parts)-1] {
		child, ok := node[p].(map[string]interface{})
		if !ok {
			child = make(map[string]interface{})
			node[p] = child
		}
		node = child
	}
	node[parts[len(parts)-1]] = value
	return b
}

// Without removes a top-level key.
func (b *BundleBuilder) Without(key string) *BundleBuilder {
	delete(b.record, key)
	return b
}

// Build returns the record.
func (b *BundleBuilder) Build() map[string]interface{} {
	return b.record
}

// JSON returns the record encoded as JSON.
func (b *BundleBuilder) JSON() string {
	data, err := json.Marshal(b.record)
	if err != nil {
		panic(fmt.Sprintf("testutil: encode bundle: %v", err))
	}
	return string(data)
}

// SchemaDocBuilder builds YAML schema registry documents.
type SchemaDocBuilder struct {
	schemas []map[string]interface{}
}

// NewSchemaDocBuilder creates an empty document builder.
func NewSchemaDocBuilder() *SchemaDocBuilder {
	return &SchemaDocBuilder{}
}

// WithSchema adds a schema. Each row is a map of row keys, e.g.
// {"field": "uuid", "generalized-path": "uuid"}.
func (b *SchemaDocBuilder) WithSchema(name string, rows ...map[string]string) *SchemaDocBuilder {
	list := make([]map[string]string, len(rows))
	copy(list, rows)
	b.schemas = append(b.schemas, map[string]interface{}{"name": name, "rows": list})
	return b
}

// YAML returns the document.
func (b *SchemaDocBuilder) YAML() string {
	data, err := yaml.Marshal(map[string]interface{}{"schemas": b.schemas})
	if err != nil {
		panic(fmt.Sprintf("testutil: encode schema document: %v", err))
	}
	return string(data)
}
