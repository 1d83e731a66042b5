package badges

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	apperrors "github.com/pushp314/tradeacademy-backend/pkg/errors"
)

type yamlCatalog struct {
	Badges []yamlBadge `yaml:"badges"`
}

type yamlBadge struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Image       string     `yaml:"image"`
	Category    string     `yaml:"category"`
	Rarity      string     `yaml:"rarity"`
	Order       int        `yaml:"order"`
	Unlock      yamlUnlock `yaml:"unlock"`
}

type yamlUnlock struct {
	Type  string `yaml:"type"`
	Value int64  `yaml:"value"`
}

// DecodeYAML parses a catalog document of the form
//
//	badges:
//	  - id: xp-100
//	    name: Chart Reader
//	    category: Milestone
//	    rarity: common
//	    order: 20
//	    unlock: {type: xp, value: 100}
//
// and validates it exactly like NewCatalog does.
func DecodeYAML(r io.Reader) ([]Badge, error) {
	var doc yamlCatalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, apperrors.Configuration("decode badge catalog", err)
	}

	defs := make([]Badge, 0, len(doc.Badges))
	var problems []error
	for i, yb := range doc.Badges {
		pred, err := NewPredicate(Kind(yb.Unlock.Type), yb.Unlock.Value)
		if err != nil {
			problems = append(problems, fmt.Errorf("entry %d (%s): %w", i, yb.ID, err))
			continue
		}
		defs = append(defs, Badge{
			ID:           yb.ID,
			Name:         yb.Name,
			Description:  yb.Description,
			ImageURL:     yb.Image,
			Category:     Category(yb.Category),
			Rarity:       Rarity(yb.Rarity),
			Unlock:       pred,
			DisplayOrder: yb.Order,
		})
	}
	if len(problems) > 0 {
		return nil, apperrors.Configuration("decode badge catalog", errors.Join(problems...))
	}

	cat, err := NewCatalog(defs)
	if err != nil {
		return nil, err
	}
	return cat.All(), nil
}

// LoadFile reads a YAML catalog from disk.
func LoadFile(path string) ([]Badge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open badge catalog: %w", err)
	}
	defer f.Close()
	return DecodeYAML(f)
}
