// Package translate provides localized descriptions of benchmark tests.
package translate

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk layout:
//
//	default_language: en
//	tests:
//	  Passmark:
//	    en: "Synthetic benchmark ..."
//	    de: "Synthetischer Benchmark ..."
type catalogFile struct {
	DefaultLanguage string                       `yaml:"default_language"`
	Tests           map[string]map[string]string `yaml:"tests"`
}

// Catalog serves benchmark descriptions from a YAML file loaded once at startup.
// It is read-only after Load and safe for concurrent use.
type Catalog struct {
	defaultLang string
	tests       map[string]map[string]string
}

// Empty returns a catalog without descriptions, used when no catalog file is
// configured. Every lookup returns "".
func Empty(defaultLang string) *Catalog {
	return &Catalog{defaultLang: strings.ToLower(defaultLang), tests: map[string]map[string]string{}}
}

// Load reads the catalog at path. defaultLang is used when the file does not
// set default_language.
func Load(path, defaultLang string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("translation catalog: %w", err)
	}
	defer f.Close()

	var file catalogFile
	if err := yaml.NewDecoder(f).Decode(&file); err != nil {
		return nil, fmt.Errorf("translation catalog: decode %s: %w", path, err)
	}

	c := &Catalog{
		defaultLang: strings.ToLower(defaultLang),
		tests:       make(map[string]map[string]string, len(file.Tests)),
	}
	if file.DefaultLanguage != "" {
		c.defaultLang = strings.ToLower(file.DefaultLanguage)
	}
	for name, byLang := range file.Tests {
		normalized := make(map[string]string, len(byLang))
		for lang, text := range byLang {
			normalized[strings.ToLower(lang)] = text
		}
		c.tests[name] = normalized
	}

	return c, nil
}

// TestDescription returns the description of testName in lang, falling back
// to the default language. Returns "" when the test is unknown.
func (c *Catalog) TestDescription(ctx context.Context, testName, lang string) string {
	byLang, ok := c.tests[testName]
	if !ok {
		return ""
	}
	if text, ok := byLang[strings.ToLower(lang)]; ok {
		return text
	}
	return byLang[c.defaultLang]
}

// Len returns the number of described tests.
func (c *Catalog) Len() int { return len(c.tests) }
