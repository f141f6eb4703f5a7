package templates

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed catalog.toml
var defaultCatalog []byte

// Catalog maps language tag to message key to text.
type Catalog map[string]map[string]string

// DefaultCatalog returns a fresh copy of the embedded catalog.
func DefaultCatalog() (Catalog, error) {
	return parseCatalog(defaultCatalog, "embedded catalog")
}

// LoadCatalog returns the embedded catalog with the override file merged on
// top. An empty path returns the embedded catalog unchanged.
func LoadCatalog(overridePath string) (Catalog, error) {
	catalog, err := DefaultCatalog()
	if err != nil {
		return nil, err
	}
	overridePath = strings.TrimSpace(overridePath)
	if overridePath == "" {
		return catalog, nil
	}
	data, err := os.ReadFile(overridePath)
	if err != nil {
		return nil, fmt.Errorf("read template catalog: %w", err)
	}
	override, err := parseCatalog(data, overridePath)
	if err != nil {
		return nil, err
	}
	catalog.Merge(override)
	return catalog, nil
}

func parseCatalog(data []byte, source string) (Catalog, error) {
	raw := map[string]map[string]string{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse template catalog %s: %w", source, err)
	}
	catalog := make(Catalog, len(raw))
	for tag, messages := range raw {
		parsed, err := language.Parse(tag)
		if err != nil {
			return nil, fmt.Errorf("template catalog %s: invalid language %q: %w", source, tag, err)
		}
		catalog[parsed.String()] = messages
	}
	return catalog, nil
}

// Merge copies every message of other into c, replacing existing texts.
func (c Catalog) Merge(other Catalog) {
	for tag, messages := range other {
		target, ok := c[tag]
		if !ok {
			target = make(map[string]string, len(messages))
			c[tag] = target
		}
		for key, text := range messages {
			target[key] = text
		}
	}
}

// Languages lists the catalog's tags with preferred first, the rest sorted.
func (c Catalog) Languages(preferred language.Tag) []language.Tag {
	names := make([]string, 0, len(c))
	for tag := range c {
		if tag == preferred.String() {
			continue
		}
		names = append(names, tag)
	}
	sort.Strings(names)

	tags := make([]language.Tag, 0, len(c))
	if _, ok := c[preferred.String()]; ok {
		tags = append(tags, preferred)
	}
	for _, name := range names {
		tags = append(tags, language.Make(name))
	}
	return tags
}
