package catalog

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Load returns the built-in catalog, or the contents of the YAML file
// at path when one is configured. A file replaces the tables wholesale;
// partial overrides are not supported.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	v := validator.New()
	if err := v.Struct(&c); err != nil {
		return nil, fmt.Errorf("invalid catalog file: %w", err)
	}

	return &c, nil
}
