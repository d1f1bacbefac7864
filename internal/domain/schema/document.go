package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// Format is a document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported document extension %q (want .yaml, .yml, .toml or .json)", filepath.Ext(path))
	}
}

// Document is the on-disk form of a schema registry.
type Document struct {
	Schemas []Schema `json:"schemas" yaml:"schemas" toml:"schemas"`
}

// documentSchema constrains the shape of a registry document. Rows without
// a parent must carry a path.
const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["schemas"],
  "additionalProperties": false,
  "properties": {
    "schemas": {
      "type": "array",
      "items": {"$ref": "#/definitions/schema"}
    }
  },
  "definitions": {
    "schema": {
      "type": "object",
      "required": ["name", "rows"],
      "additionalProperties": false,
      "properties": {
        "name": {"type": "string", "minLength": 1},
        "rows": {"type": "array", "items": {"$ref": "#/definitions/row"}}
      }
    },
    "row": {
      "type": "object",
      "required": ["field"],
      "additionalProperties": false,
      "properties": {
        "field": {"type": "string", "minLength": 1},
        "generalized-path": {"type": "string"},
        "post-processor": {"type": "string"},
        "from_schema_name": {"type": "string"}
      },
      "anyOf": [
        {"required": ["generalized-path"]},
        {"required": ["from_schema_name"], "properties": {"from_schema_name": {"minLength": 1}}}
      ]
    }
  }
}`

const documentSchemaURL = "schema-registry.json"

func compileDocumentSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(documentSchemaURL, strings.NewReader(documentSchema)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	return compiler.Compile(documentSchemaURL)
}

// decodeAny decodes data into generic values and re-encodes it as JSON so
// every format reaches validation with the same value types.
func decodeAny(data []byte, format Format) ([]byte, error) {
	var v any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, err
		}
	case FormatTOML:
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		v = m
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}

	out, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	return out, nil
}

// ParseDocument decodes and validates a registry document. source names
// the document in error messages.
func ParseDocument(data []byte, format Format, source string) (*Document, error) {
	normalized, err := decodeAny(data, format)
	if err != nil {
		return nil, &DocumentError{Source: source, Err: err}
	}

	var generic any
	if err := json.Unmarshal(normalized, &generic); err != nil {
		return nil, &DocumentError{Source: source, Err: err}
	}

	validator, err := compileDocumentSchema()
	if err != nil {
		return nil, fmt.Errorf("compile document schema: %w", err)
	}
	if err := validator.Validate(generic); err != nil {
		return nil, &DocumentError{Source: source, Err: err}
	}

	var doc Document
	if err := json.Unmarshal(normalized, &doc); err != nil {
		return nil, &DocumentError{Source: source, Err: err}
	}
	return &doc, nil
}

// LoadRegistry parses a document and builds its registry.
func LoadRegistry(data []byte, format Format, source string) (*Registry, error) {
	doc, err := ParseDocument(data, format, source)
	if err != nil {
		return nil, err
	}
	return NewRegistry(doc.Schemas...)
}

// DecodeMetadata decodes one bundle's metadata record. Numbers are kept as
// json.Number so large byte counts survive intact.
func DecodeMetadata(data []byte, format Format) (any, error) {
	normalized, err := decodeAny(data, format)
	if err != nil {
		return nil, fmt.Errorf("decode bundle metadata: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(normalized))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode bundle metadata: %w", err)
	}
	return v, nil
}

// EncodeDocument writes a registry document in the given format.
func EncodeDocument(doc *Document, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(doc)
	case FormatTOML:
		return toml.Marshal(doc)
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}
