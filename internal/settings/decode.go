// internal/settings/decode.go
package settings

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/tamzrod/tic-settings/internal/intparse"
	"github.com/tamzrod/tic-settings/internal/variant"
)

// MaxScalarLength bounds every key and value in a settings file.
const MaxScalarLength = 255

var (
	// ErrUnrecognizedValue is a bool or named-mode value outside its name set.
	ErrUnrecognizedValue = errors.New("settings: unrecognized value")

	// ErrInvalidValue is a coded value (pin config, step mode, ...) that
	// does not parse.
	ErrInvalidValue = errors.New("settings: invalid value")
)

// Structural errors.
var (
	ErrRootNotMapping = errors.New("YAML root node is not a mapping.")
	ErrNoProduct      = errors.New("No product was specified in the settings file.")
	ErrUnknownProduct = errors.New("Unrecognized product name.")
)

// ParseError reports a value that could not be read for a key.
type ParseError struct {
	Key string
	Err error
}

func (e *ParseError) Error() string {
	switch {
	case errors.Is(e.Err, intparse.ErrTooSmall), errors.Is(e.Err, intparse.ErrTooLarge):
		return fmt.Sprintf("The %s value is out of range.", e.Key)
	case errors.Is(e.Err, ErrUnrecognizedValue):
		return fmt.Sprintf("Unrecognized %s value.", e.Key)
	default:
		return fmt.Sprintf("Invalid %s value.", e.Key)
	}
}

func (e *ParseError) Unwrap() error { return e.Err }

// Decode reads a settings file into a Partial.
//
// The product is read first so that a file without one fails the same way
// regardless of key order. Any failure aborts the whole decode.
func Decode(data []byte) (Partial, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Partial{}, fmt.Errorf("Failed to load document: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return Partial{}, ErrRootNotMapping
	}

	product, err := decodeProduct(root)
	if err != nil {
		return Partial{}, err
	}

	p := Partial{Product: product}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]

		if key.Kind != yaml.ScalarNode {
			return Partial{}, fmt.Errorf("YAML key is not a scalar on line %d.", key.Line)
		}
		if len(key.Value) > MaxScalarLength {
			return Partial{}, fmt.Errorf("YAML key is too long on line %d.", key.Line)
		}
		if value.Kind != yaml.ScalarNode {
			return Partial{}, fmt.Errorf("YAML value is not a scalar on line %d.", value.Line)
		}
		if len(value.Value) > MaxScalarLength {
			return Partial{}, fmt.Errorf("YAML value is too long on line %d.", value.Line)
		}

		if key.Value == "product" {
			continue
		}

		f, ok := fieldsByKey[key.Value]
		if !ok {
			return Partial{}, fmt.Errorf("Unrecognized key on line %d: \"%s\".", key.Line, key.Value)
		}
		if err := f.decode(&p, value.Value); err != nil {
			return Partial{}, err
		}
	}

	return p, nil
}

func decodeProduct(root *yaml.Node) (variant.Product, error) {
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if key.Kind != yaml.ScalarNode || key.Value != "product" {
			continue
		}
		if value.Kind != yaml.ScalarNode {
			return 0, fmt.Errorf("YAML product value is not a scalar on line %d.", value.Line)
		}
		if len(value.Value) > MaxScalarLength {
			return 0, fmt.Errorf("YAML product value is too long on line %d.", value.Line)
		}
		v, ok := variant.ByName(value.Value)
		if !ok {
			return 0, ErrUnknownProduct
		}
		return v.Product, nil
	}
	return 0, ErrNoProduct
}

// DecodeSettings decodes data and applies the product defaults.
func DecodeSettings(data []byte) (Settings, error) {
	p, err := Decode(data)
	if err != nil {
		return Settings{}, err
	}
	return p.Resolve(), nil
}
