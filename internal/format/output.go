package format

import (
	"fmt"

	"github.com/tdewolff/minify/v2"
	mjson "github.com/tdewolff/minify/v2/json"
	"gopkg.in/yaml.v3"
)

// Output encodings for GeoJSON documents.
const (
	EncodingJSON = "json"
	EncodingYAML = "yaml"
)

var minifier = func() *minify.M {
	m := minify.New()
	m.AddFunc("application/json", mjson.Minify)
	m.AddFunc("application/geo+json", mjson.Minify)

	return m
}()

// Minify strips insignificant whitespace and number padding from a JSON document.
func Minify(doc []byte) ([]byte, error) {
	out, err := minifier.Bytes("application/geo+json", doc)
	if err != nil {
		return nil, fmt.Errorf("minify geojson: %w", err)
	}

	return out, nil
}

// ToYAML re-encodes a JSON document as YAML, keeping key order.
func ToYAML(doc []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(doc, &node); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	// flow-style JSON input would otherwise be written back as flow style
	clearStyle(&node)

	out, err := yaml.Marshal(&node)
	if err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}

	return out, nil
}

func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		clearStyle(c)
	}
}

// Encode renders a JSON document in the requested encoding.
func Encode(doc []byte, encoding string, minified bool) ([]byte, error) {
	switch encoding {
	case EncodingYAML:
		return ToYAML(doc)
	case EncodingJSON, "":
		if minified {
			return Minify(doc)
		}
		return doc, nil
	default:
		return nil, fmt.Errorf("unknown encoding %q", encoding)
	}
}
