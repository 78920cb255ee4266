package format

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Validate decodes text with a TOML reader and reports whether it is
// accepted. The language allows repeated section names and keys, which
// TOML rejects; strict mode uses this to refuse such output.
func Validate(text string) error {
	if _, err := Decode(text); err != nil {
		return fmt.Errorf("output is not valid TOML: %w", err)
	}
	return nil
}

// Decode parses emitted TOML into generic maps.
func Decode(text string) (map[string]any, error) {
	var out map[string]any
	if _, err := toml.Decode(text, &out); err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}
	return out, nil
}
