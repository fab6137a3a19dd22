package cascadecheck

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config lists functions checked in addition to the cascade adapters.
// Names are fully qualified: "import/path.Func".
type Config struct {
	// Discard lists functions whose result must not be dropped.
	Discard []string `yaml:"discard"`
	// Consume lists functions taking ownership of their first argument.
	Consume []string `yaml:"consume"`
}

// LoadConfig reads a YAML config. An empty file is an empty config.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &c, nil
}

func (c *Config) validate() error {
	for _, names := range [][]string{c.Discard, c.Consume} {
		for _, name := range names {
			if !validName(name) {
				return fmt.Errorf("function name %q must be of the form import/path.Func", name)
			}
		}
	}
	return nil
}

func validName(name string) bool {
	slash := strings.LastIndex(name, "/")
	dot := strings.LastIndex(name, ".")
	return dot > slash+1 && dot < len(name)-1
}
