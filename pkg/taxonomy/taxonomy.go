// Package taxonomy loads the capability taxonomy with its weighted keyword
// rules. The taxonomy is static configuration: loaded once, immutable for the
// lifetime of the process, shared by the tagger and the repository seeder.
package taxonomy

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/umputun/radar/pkg/domain"
)

//go:embed taxonomy.yml
var embeddedTaxonomy []byte

// entryYAML mirrors one capability entry in the YAML file
type entryYAML struct {
	Slug             string `yaml:"slug"`
	Name             string `yaml:"name"`
	Icon             string `yaml:"icon"`
	DescriptionTech  string `yaml:"description_tech"`
	DescriptionPlain string `yaml:"description_plain"`
	Active           bool   `yaml:"active"`
	Keywords         []struct {
		Term   string  `yaml:"term"`
		Weight float64 `yaml:"weight"`
	} `yaml:"keywords"`
}

type fileYAML struct {
	Capabilities []entryYAML `yaml:"capabilities"`
}

// Load returns the embedded default taxonomy
func Load() ([]domain.CapabilityEntry, error) {
	return parse(embeddedTaxonomy)
}

// LoadFile reads a taxonomy override from the given YAML file
func LoadFile(path string) ([]domain.CapabilityEntry, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from config
	if err != nil {
		return nil, fmt.Errorf("read taxonomy file: %w", err)
	}
	return parse(data)
}

func parse(data []byte) ([]domain.CapabilityEntry, error) {
	var f fileYAML
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse taxonomy: %w", err)
	}
	if len(f.Capabilities) == 0 {
		return nil, fmt.Errorf("taxonomy has no capabilities")
	}

	seen := make(map[string]struct{}, len(f.Capabilities))
	entries := make([]domain.CapabilityEntry, 0, len(f.Capabilities))
	for _, e := range f.Capabilities {
		if e.Slug == "" {
			return nil, fmt.Errorf("taxonomy entry without slug")
		}
		if _, ok := seen[e.Slug]; ok {
			return nil, fmt.Errorf("duplicate taxonomy slug %q", e.Slug)
		}
		seen[e.Slug] = struct{}{}

		entry := domain.CapabilityEntry{
			Slug:             e.Slug,
			Name:             e.Name,
			Icon:             e.Icon,
			DescriptionTech:  e.DescriptionTech,
			DescriptionPlain: e.DescriptionPlain,
			Active:           e.Active,
			Keywords:         make([]domain.KeywordRule, 0, len(e.Keywords)),
		}
		for _, k := range e.Keywords {
			if k.Term == "" {
				return nil, fmt.Errorf("taxonomy entry %q has keyword without term", e.Slug)
			}
			if k.Weight <= 0 || k.Weight > 1 {
				return nil, fmt.Errorf("taxonomy entry %q keyword %q has weight %v, must be in (0,1]", e.Slug, k.Term, k.Weight)
			}
			entry.Keywords = append(entry.Keywords, domain.KeywordRule{Term: k.Term, Weight: k.Weight})
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
