package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/julianstephens/chorewheel/internal/errors"
	"github.com/julianstephens/chorewheel/internal/models"
)

// LoadRoster reads the ordered roster from a YAML or JSON file.
func LoadRoster(path string) ([]models.Person, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}
	return ParseRoster(data)
}

func ParseRoster(data []byte) ([]models.Person, error) {
	var people []models.Person
	if err := yaml.Unmarshal(data, &people); err != nil {
		return nil, apperrors.Configf("invalid roster: %v", err)
	}
	if len(people) == 0 {
		return nil, apperrors.Configf("roster cannot be empty")
	}
	seen := make(map[int64]bool, len(people))
	for i, p := range people {
		if strings.TrimSpace(p.Name) == "" {
			return nil, apperrors.Configf("roster entry %d has no name", i+1)
		}
		// id 0 keys household-wide notifications
		if p.ID <= 0 {
			return nil, apperrors.Configf("roster entry %d (%s) needs a positive id, got %d", i+1, p.Name, p.ID)
		}
		if seen[p.ID] {
			return nil, apperrors.Configf("duplicate person id %d in roster", p.ID)
		}
		seen[p.ID] = true
	}
	return people, nil
}

// LoadCatalog reads room -> level -> tasks from a YAML or JSON file.
func LoadCatalog(path string) (*models.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read task catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog walks the document node by node so that the room order of the
// file survives; a plain map would lose it.
func ParseCatalog(data []byte) (*models.Catalog, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.Configf("invalid task catalog: %v", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, apperrors.Configf("task catalog is empty")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, apperrors.Configf("task catalog must be a mapping of rooms")
	}

	catalog := models.NewCatalog()
	for i := 0; i+1 < len(root.Content); i += 2 {
		room := root.Content[i].Value
		levels := root.Content[i+1]
		if catalog.HasRoom(room) {
			return nil, apperrors.Configf("room %q is defined twice (line %d)", room, root.Content[i].Line)
		}
		catalog.AddRoom(room)
		if levels.Kind != yaml.MappingNode {
			return nil, apperrors.Configf("room %q (line %d) must map levels to task lists", room, levels.Line)
		}
		for j := 0; j+1 < len(levels.Content); j += 2 {
			level, err := models.ParseLevel(levels.Content[j].Value)
			if err != nil {
				return nil, apperrors.Configf("room %q: %v", room, err)
			}
			// aliases such as "daily minimum" count as the same level
			if catalog.HasLevel(room, level) {
				return nil, apperrors.Configf("room %q defines level %q twice (line %d)", room, level, levels.Content[j].Line)
			}
			var tasks []string
			if err := levels.Content[j+1].Decode(&tasks); err != nil {
				return nil, apperrors.Configf("room %q level %q (line %d): %v", room, level, levels.Content[j+1].Line, err)
			}
			catalog.Set(room, level, tasks)
		}
	}
	if len(catalog.Rooms()) == 0 {
		return nil, apperrors.Configf("task catalog has no rooms")
	}
	return catalog, nil
}
