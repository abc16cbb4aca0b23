package catalog

import (
	_ "embed"

	"buddy-backend/internal/progress/domain"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed badges.yaml
var defaultCatalog []byte

type file struct {
	Badges []domain.Badge `yaml:"badges"`
}

// Default returns the built-in badge catalog.
func Default() ([]domain.Badge, error) {
	return Parse(defaultCatalog)
}

// Parse decodes a YAML badge catalog and checks every entry.
func Parse(data []byte) ([]domain.Badge, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "decoding badge catalog")
	}

	seen := make(map[string]bool, len(f.Badges))
	for i, b := range f.Badges {
		if b.Name == "" {
			return nil, errors.Errorf("badge %d has no name", i)
		}
		if seen[b.Name] {
			return nil, errors.Errorf("duplicate badge %q", b.Name)
		}
		seen[b.Name] = true

		switch b.RequirementType {
		case domain.RequirementTotalXP, domain.RequirementLevel,
			domain.RequirementCurrentStreak, domain.RequirementLongestStreak:
		default:
			return nil, errors.Errorf("badge %q: unknown requirement type %q", b.Name, b.RequirementType)
		}
		if b.RequirementValue < 1 {
			return nil, errors.Errorf("badge %q: requirement value must be positive", b.Name)
		}
	}
	return f.Badges, nil
}
