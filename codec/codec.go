// Package codec encodes the structured reports printed by the jdx command,
// such as header summaries and label statistics.
package codec

import "fmt"

// Codec encodes and decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	MarshalIndent(v any, prefix, indent string) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json", "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// Default is the codec used for machine-readable output.
var Default Codec = GoJSON{}

// MustMarshal is a helper for tests.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
