// Package yaml loads run configuration from YAML files.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/storyindex"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read from the working directory when no config file
// is named explicitly.
const DefaultConfigFile = "storyindex.yaml"

// LoadConfig reads the YAML file at path over base and returns the result.
// Keys absent from the file keep base's values. Unknown keys are rejected.
// Returns ENOTFOUND if the file does not exist.
func LoadConfig(path string, base storyindex.Config) (storyindex.Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return base, storyindex.Errorf(storyindex.ENOTFOUND, "config file not found: %s", path)
	} else if err != nil {
		return base, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data, base)
}

// LoadConfigIfExists is like LoadConfig but returns base unchanged when the
// file does not exist.
func LoadConfigIfExists(path string, base storyindex.Config) (storyindex.Config, error) {
	cfg, err := LoadConfig(path, base)
	if storyindex.ErrorCode(err) == storyindex.ENOTFOUND {
		return base, nil
	}
	return cfg, err
}

// ParseConfig decodes YAML data over base. An empty document leaves base
// unchanged.
func ParseConfig(data []byte, base storyindex.Config) (storyindex.Config, error) {
	cfg := base

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return base, storyindex.Errorf(storyindex.EINVALID, "failed to parse config file: %v", err)
	}
	return cfg, nil
}
