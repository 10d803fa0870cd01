// Package config loads the lsxtool configuration file.
//
// The file is HCL:
//
//	output {
//	  format = "yaml"
//	  color  = false
//	}
//
//	stream {
//	  strict = false
//	}
//
//	profile "template" {
//	  section = "Templates"
//	  key     = "MapKey"
//	}
//
//	type_ordinal {
//	  ordinal = 34
//	  name    = "FixedString"
//	}
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/jacoelho/lsx/pkg/lsxtype"
)

type hclFile struct {
	Output   *hclOutput    `hcl:"output,block"`
	Stream   *hclStream    `hcl:"stream,block"`
	Profiles []*hclProfile `hcl:"profile,block"`
	Ordinals []*hclOrdinal `hcl:"type_ordinal,block"`
}

type hclOutput struct {
	Format *string `hcl:"format,optional"`
	Color  *bool   `hcl:"color,optional"`
}

type hclStream struct {
	Strict *bool `hcl:"strict,optional"`
}

type hclProfile struct {
	Name    string `hcl:"name,label"`
	Section string `hcl:"section"`
	Key     string `hcl:"key"`
}

type hclOrdinal struct {
	Name    string `hcl:"name"`
	Ordinal int    `hcl:"ordinal"`
}

// Profile names a section and key attribute pair for lookups.
type Profile struct {
	Name    string
	Section string
	Key     string
}

// Config is the resolved configuration.
type Config struct {
	// Color is nil when the file leaves color detection to the terminal.
	Color    *bool
	Profiles map[string]Profile
	Ordinals map[int]lsxtype.Name
	Format   string
	Strict   bool
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Format:   "text",
		Strict:   true,
		Profiles: map[string]Profile{},
		Ordinals: map[int]lsxtype.Name{},
	}
}

// Load reads and decodes the file at path.
func Load(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(src, path)
}

// Parse decodes HCL source; filename is used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config %s: %w", filename, diags)
	}

	var parsed hclFile
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config %s: %w", filename, diags)
	}

	cfg := Default()
	if out := parsed.Output; out != nil {
		if out.Format != nil {
			cfg.Format = *out.Format
		}
		cfg.Color = out.Color
	}
	if parsed.Stream != nil && parsed.Stream.Strict != nil {
		cfg.Strict = *parsed.Stream.Strict
	}
	for _, p := range parsed.Profiles {
		if _, dup := cfg.Profiles[p.Name]; dup {
			return nil, fmt.Errorf("config %s: duplicate profile %q", filename, p.Name)
		}
		if p.Section == "" || p.Key == "" {
			return nil, fmt.Errorf("config %s: profile %q needs section and key", filename, p.Name)
		}
		cfg.Profiles[p.Name] = Profile{Name: p.Name, Section: p.Section, Key: p.Key}
	}
	for _, o := range parsed.Ordinals {
		if _, dup := cfg.Ordinals[o.Ordinal]; dup {
			return nil, fmt.Errorf("config %s: duplicate type ordinal %d", filename, o.Ordinal)
		}
		cfg.Ordinals[o.Ordinal] = lsxtype.Name(o.Name)
	}
	if _, err := cfg.Resolver(); err != nil {
		return nil, fmt.Errorf("config %s: %w", filename, err)
	}
	return cfg, nil
}

// Resolver builds the type resolver including configured ordinals.
func (c *Config) Resolver() (*lsxtype.Resolver, error) {
	if len(c.Ordinals) == 0 {
		return lsxtype.Default(), nil
	}
	return lsxtype.NewResolver(c.Ordinals)
}

// Profile returns the named profile.
func (c *Config) Profile(name string) (Profile, bool) {
	p, ok := c.Profiles[name]
	return p, ok
}
