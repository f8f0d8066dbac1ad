// Package menufile loads the seeded stall menu from TOML.
package menufile

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/chaatgpt/till/internal/domain/entity"
)

//go:embed default_menu.toml
var defaultMenu string

type menuDoc struct {
	Items []menuEntry `toml:"item"`
}

type menuEntry struct {
	Name  string `toml:"name"`
	Price int64  `toml:"price"`
}

// Default returns the built-in menu
func Default() []entity.MenuItem {
	items, err := Parse(defaultMenu)
	if err != nil {
		panic(fmt.Sprintf("menufile: built-in menu is invalid: %v", err))
	}
	return items
}

// Load reads the menu at path, falling back to the built-in menu when the
// file does not exist.
func Load(path string) ([]entity.MenuItem, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("Warning: menu file %s not found, using built-in menu", path)
			return Default(), nil
		}
		return nil, fmt.Errorf("read menu file: %w", err)
	}

	items, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse menu file %s: %w", path, err)
	}
	return items, nil
}

// Parse decodes a TOML menu. Names must be unique and non-empty;
// negative prices are rejected.
func Parse(data string) ([]entity.MenuItem, error) {
	var doc menuDoc
	if _, err := toml.Decode(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Items) == 0 {
		return nil, errors.New("menu has no items")
	}

	seen := make(map[string]bool, len(doc.Items))
	items := make([]entity.MenuItem, 0, len(doc.Items))
	for i, e := range doc.Items {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, fmt.Errorf("item %d has no name", i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate item %q", name)
		}
		if e.Price < 0 {
			return nil, fmt.Errorf("item %q has a negative price", name)
		}
		seen[name] = true
		items = append(items, entity.NewSeedMenuItem(i, name, entity.Rupees(e.Price)))
	}
	return items, nil
}
