package lang

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed en.yaml
var enYAML []byte

// Strings resolves language string identifiers to display text.
type Strings struct {
	values map[string]string
}

// Load parses a YAML document of identifier: text pairs.
func Load(data []byte) (*Strings, error) {
	values := make(map[string]string)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse language strings: %w", err)
	}
	return &Strings{values: values}, nil
}

// English returns the bundled English strings.
func English() *Strings {
	s, err := Load(enYAML)
	if err != nil {
		panic(err)
	}
	return s
}

// Get returns the string for key with {$a} replaced by arg. Unknown
// identifiers come back as [[key]] so they stand out on the page.
func (s *Strings) Get(key string, arg ...interface{}) string {
	v, ok := s.values[key]
	if !ok {
		return "[[" + key + "]]"
	}
	if len(arg) > 0 {
		v = strings.ReplaceAll(v, "{$a}", fmt.Sprint(arg[0]))
	}
	return v
}

// Has reports whether key is defined.
func (s *Strings) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}
