package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/salon-sim/salon-sim/sim"
)

// LoadConfigFile reads a YAML shop configuration from path and lays it over base.
// Keys missing from the file keep their base value. Unknown keys are rejected so
// a typo cannot silently fall back to a default.
// The result is not validated; callers run Config.Validate.
func LoadConfigFile(path string, base sim.Config) (sim.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return sim.Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return parseConfig(data, base)
}

func parseConfig(data []byte, base sim.Config) (sim.Config, error) {
	cfg := base
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		// an empty document leaves base untouched
		if errors.Is(err, io.EOF) {
			return base, nil
		}
		return sim.Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// marshalConfig renders cfg as YAML, in the format LoadConfigFile reads back.
func marshalConfig(cfg sim.Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
