package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/samber/mo"
	"gopkg.in/yaml.v3"

	"rolebot/models"
)

// DefaultColor is used for categories that do not declare a color
const DefaultColor = 0x808080

//go:embed default.yaml
var defaultCatalog []byte

// Category is a named group of roles offered through one selection message
type Category struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Color int    `yaml:"color"`
	// UseRoleColors makes new roles take their color from the role color table
	UseRoleColors bool                 `yaml:"use_role_colors"`
	Roles         []models.RoleMapping `yaml:"roles"`
}

// Catalog is the read-only, ordered set of role categories
type Catalog struct {
	categories []Category
	byID       map[string]int
	byTitle    map[string]int
	roleColors map[string]int
}

type catalogFile struct {
	Categories []Category     `yaml:"categories"`
	RoleColors map[string]int `yaml:"role_colors"`
}

// Default returns the catalog compiled into the binary
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog from a YAML file
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return New(file.Categories, file.RoleColors)
}

// New builds a catalog from categories in display order
func New(categories []Category, roleColors map[string]int) (*Catalog, error) {
	if len(categories) == 0 {
		return nil, errors.New("catalog has no categories")
	}

	c := &Catalog{
		categories: make([]Category, 0, len(categories)),
		byID:       make(map[string]int, len(categories)),
		byTitle:    make(map[string]int, len(categories)),
		roleColors: make(map[string]int, len(roleColors)),
	}
	for name, color := range roleColors {
		c.roleColors[name] = color
	}

	for i, category := range categories {
		if err := validateCategory(category); err != nil {
			return nil, fmt.Errorf("category #%d: %w", i+1, err)
		}
		if _, exists := c.byID[category.ID]; exists {
			return nil, fmt.Errorf("duplicate category id %q", category.ID)
		}
		if _, exists := c.byTitle[category.Title]; exists {
			return nil, fmt.Errorf("duplicate category title %q", category.Title)
		}
		if category.Color == 0 {
			category.Color = DefaultColor
		}
		roles := make([]models.RoleMapping, len(category.Roles))
		copy(roles, category.Roles)
		category.Roles = roles

		c.byID[category.ID] = len(c.categories)
		c.byTitle[category.Title] = len(c.categories)
		c.categories = append(c.categories, category)
	}

	return c, nil
}

func validateCategory(category Category) error {
	if strings.TrimSpace(category.ID) == "" {
		return errors.New("id cannot be empty")
	}
	if strings.TrimSpace(category.Title) == "" {
		return fmt.Errorf("category %q: title cannot be empty", category.ID)
	}
	if len(category.Roles) == 0 {
		return fmt.Errorf("category %q: no roles defined", category.ID)
	}

	symbols := make(map[string]bool, len(category.Roles))
	for _, mapping := range category.Roles {
		if mapping.Symbol == "" {
			return fmt.Errorf("category %q: role %q has no symbol", category.ID, mapping.RoleName)
		}
		if strings.TrimSpace(mapping.RoleName) == "" {
			return fmt.Errorf("category %q: symbol %s has no role name", category.ID, mapping.Symbol)
		}
		if symbols[mapping.Symbol] {
			return fmt.Errorf("category %q: symbol %s used twice", category.ID, mapping.Symbol)
		}
		symbols[mapping.Symbol] = true
	}
	return nil
}

// Categories returns all categories in catalog order
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// IDs returns the category ids in catalog order
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.categories))
	for _, category := range c.categories {
		ids = append(ids, category.ID)
	}
	return ids
}

// Lookup finds a category by id
func (c *Catalog) Lookup(id string) mo.Option[Category] {
	if idx, ok := c.byID[id]; ok {
		return mo.Some(c.categories[idx])
	}
	return mo.None[Category]()
}

// LookupByTitle finds a category by its exact display title
func (c *Catalog) LookupByTitle(title string) mo.Option[Category] {
	if idx, ok := c.byTitle[title]; ok {
		return mo.Some(c.categories[idx])
	}
	return mo.None[Category]()
}

// RoleColor returns the color a newly created role should get
func (c *Catalog) RoleColor(category Category, roleName string) int {
	if category.UseRoleColors {
		if color, ok := c.roleColors[roleName]; ok {
			return color
		}
	}
	if category.Color == 0 {
		return DefaultColor
	}
	return category.Color
}
