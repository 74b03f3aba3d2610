package emitter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Encoding selects the serialization of structured targets.
type Encoding string

const (
	EncodingYAML Encoding = "yaml"
	EncodingJSON Encoding = "json"
)

// ParseEncoding accepts yaml, yml and json. Empty means YAML.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "yaml", "yml":
		return EncodingYAML, nil
	case "json":
		return EncodingJSON, nil
	default:
		return "", fmt.Errorf("unknown encoding %q (allowed: yaml, json)", s)
	}
}

// EncodeJSON renders v as indented JSON with a trailing newline.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeYAML renders v as block-style YAML with two-space indentation.
func EncodeYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// JSONToYAML converts a JSON document to block-style YAML, keeping the key
// order of the input. It serves types that only define MarshalJSON.
func JSONToYAML(doc []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(doc, &node); err != nil {
		return nil, fmt.Errorf("reparse json: %w", err)
	}
	blockStyle(&node)
	return EncodeYAML(&node)
}

// blockStyle clears the flow and quoting styles yaml.v3 records for JSON
// input. Strings that would read back as another type stay quoted.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

// Encode renders v with enc. When v only knows how to marshal itself to
// JSON, set viaJSON so YAML output is derived from the JSON form.
func Encode(v any, enc Encoding, viaJSON bool) ([]byte, error) {
	switch enc {
	case EncodingJSON:
		return EncodeJSON(v)
	default:
		if !viaJSON {
			return EncodeYAML(v)
		}
		doc, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return JSONToYAML(doc)
	}
}
