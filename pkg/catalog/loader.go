package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var builtinCatalogYAML []byte

// catalogFile is the YAML document shape for a template catalog.
type catalogFile struct {
	Templates []NoteTemplate `yaml:"templates"`
}

// Load reads the YAML catalog file at path and returns a validated [Catalog].
// It is a convenience wrapper around [LoadFromReader].
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %q: %w", path, err)
	}
	defer f.Close()

	c, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("catalog: parse %q: %w", path, err)
	}
	return c, nil
}

// LoadFromReader decodes a YAML catalog from r and validates the result.
// Unknown YAML fields are rejected so configuration typos fail loudly.
func LoadFromReader(r io.Reader) (*Catalog, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("catalog: decode yaml: %w", err)
	}
	if err := Validate(file.Templates); err != nil {
		return nil, err
	}
	return New(file.Templates), nil
}

// Validate checks that templates form a coherent catalog. It returns a
// joined error listing every failure found, so a clinic fixing its catalog
// sees all problems at once.
func Validate(templates []NoteTemplate) error {
	var errs []error

	idsSeen := make(map[string]int, len(templates))
	for i, t := range templates {
		prefix := fmt.Sprintf("templates[%d]", i)
		if t.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else {
			if prev, ok := idsSeen[t.ID]; ok {
				errs = append(errs, fmt.Errorf("%s.id %q is a duplicate of templates[%d]", prefix, t.ID, prev))
			}
			idsSeen[t.ID] = i
		}
		if t.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if t.Specialty == "" {
			errs = append(errs, fmt.Errorf("%s.specialty is required", prefix))
		}
		if strings.TrimSpace(t.InstructionText) == "" {
			slog.Warn("note template has no instruction text; it will add nothing to compiled instructions",
				"id", t.ID,
				"name", t.Name,
			)
		}
	}

	return errors.Join(errs...)
}

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
)

// Default returns the built-in specialty catalog embedded in the binary.
// The catalog is built on first call and shared afterwards; it is
// immutable, so sharing is safe.
func Default() *Catalog {
	defaultCatalogOnce.Do(func() {
		var file catalogFile
		if err := yaml.Unmarshal(builtinCatalogYAML, &file); err != nil {
			// The embedded catalog is covered by tests; failing to parse it
			// means a broken binary.
			panic(fmt.Sprintf("catalog: embedded catalog.yaml: %v", err))
		}
		defaultCatalog = New(file.Templates)
	})
	return defaultCatalog
}
