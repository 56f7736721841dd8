// internal/settings/encode.go
package settings

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/tamzrod/tic-settings/internal/variant"
)

// DocumentationURL is the user's guide referenced by settings files and
// firmware warnings.
const DocumentationURL = "https://www.pololu.com/docs/0J71"

// FileHeader opens every settings file written by Encode.
const FileHeader = "# Pololu Tic USB Stepper Controller settings file.\n" +
	"# " + DocumentationURL + "\n"

// Encode writes s as a settings file.
//
// Keys appear in a fixed order. Hidden settings and settings that do not
// apply to the product are omitted.
func Encode(s Settings) ([]byte, error) {
	v, ok := variant.Lookup(s.Product)
	if !ok {
		return nil, fmt.Errorf("encode settings: unknown product %d", s.Product)
	}

	root := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key, value string) {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Value: value},
		)
	}

	add("product", s.Product.String())
	for _, f := range fields {
		if f.visible(v) {
			add(f.key, f.encode(&s, v))
		}
	}

	body, err := yaml.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}

	var buf bytes.Buffer
	buf.Grow(len(FileHeader) + len(body))
	buf.WriteString(FileHeader)
	buf.Write(body)
	return buf.Bytes(), nil
}
