// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔄 Replacement represents a single literal substitution
type Replacement struct {
	Old  string  `json:"old" yaml:"old" toml:"old"`                                  // Exact text to find
	New  string  `json:"new" yaml:"new" toml:"new"`                                  // Text to substitute
	File *string `json:"file,omitempty" yaml:"file,omitempty" toml:"file,omitempty"` // Optional glob narrowing which targets this rule touches
}

// 🎯 Target represents one file to patch
type Target struct {
	Path         string        `json:"path" yaml:"path" toml:"path"`                                                       // File to patch, relative to the working directory
	Replacements []Replacement `json:"replacements,omitempty" yaml:"replacements,omitempty" toml:"replacements,omitempty"` // Target-local rules, applied after the shared ones
}

// 🔧 FlagsBlock holds optional behavior toggles
type FlagsBlock struct {
	Strict bool `json:"strict,omitempty" yaml:"strict,omitempty" toml:"strict,omitempty"` // Fail when a rule matched nothing in any target
	Atomic bool `json:"atomic,omitempty" yaml:"atomic,omitempty" toml:"atomic,omitempty"` // Write through a temp file and rename
	Backup bool `json:"backup,omitempty" yaml:"backup,omitempty" toml:"backup,omitempty"` // Keep a .bak copy of the original before writing
	Async  bool `json:"async,omitempty" yaml:"async,omitempty" toml:"async,omitempty"`    // Patch targets concurrently
}

// 📚 Config represents the complete patch configuration
type Config struct {
	Targets      []Target      `json:"targets" yaml:"targets" toml:"targets"`
	Replacements []Replacement `json:"replacements,omitempty" yaml:"replacements,omitempty" toml:"replacements,omitempty"`
	Flags        *FlagsBlock   `json:"flags,omitempty" yaml:"flags,omitempty" toml:"flags,omitempty"`
	Message      string        `json:"message,omitempty" yaml:"message,omitempty" toml:"message,omitempty"` // Confirmation line printed after a successful run

	// location is the file the config was loaded from, empty for the builtin ruleset
	location string
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	var cfg *Config

	// A bare .patchrc may be written in either YAML or HCL
	if filepath.Base(path) == ".patchrc" {
		cfg, err = parseEither(ctx, data)
		if err != nil {
			return nil, errors.Errorf("parsing %s: %w", path, err)
		}
	} else {
		p := GetParser(path)
		if p == nil {
			return nil, errors.Errorf("no parser found for file: %s", path)
		}
		cfg, err = p.Parse(ctx, data)
		if err != nil {
			return nil, errors.Errorf("parsing config: %w", err)
		}
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	cfg.location = path
	return cfg, nil
}

// parseEither tries YAML first, then HCL
func parseEither(ctx context.Context, data []byte) (*Config, error) {
	cfg, yamlErr := (&YAMLParser{}).Parse(ctx, data)
	if yamlErr == nil {
		return cfg, nil
	}
	cfg, hclErr := (&HCLParser{}).Parse(ctx, data)
	if hclErr == nil {
		return cfg, nil
	}
	return nil, errors.Errorf("not valid YAML (%v) or HCL: %w", yamlErr, hclErr)
}

// candidatePaths are probed in order when no config path is given
var candidatePaths = []string{
	".patchrc.yaml",
	".patchrc.yml",
	".patchrc.json",
	".patchrc.toml",
	".patchrc.hcl",
	".patchrc",
}

// 🎯 LoadOrDefault loads the config at path, or probes the working directory
// for a .patchrc file when path is empty. When nothing is found the builtin
// ruleset is used.
func LoadOrDefault(ctx context.Context, path string) (*Config, error) {
	if path != "" {
		return Load(ctx, path)
	}

	for _, candidate := range candidatePaths {
		if _, err := os.Stat(candidate); err == nil {
			return Load(ctx, candidate)
		}
	}

	zerolog.Ctx(ctx).Debug().Msg("no config file found, using builtin ruleset")
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating builtin config: %w", err)
	}
	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	// Check required fields
	if len(cfg.Targets) == 0 {
		return errors.Errorf("at least one target is required")
	}

	seen := make(map[string]bool, len(cfg.Targets))
	for i := range cfg.Targets {
		t := &cfg.Targets[i]
		if t.Path == "" {
			return errors.Errorf("target %d: path is required", i)
		}

		// Clean up paths
		t.Path = filepath.Clean(t.Path)
		if seen[t.Path] {
			return errors.Errorf("target %d: duplicate path %s", i, t.Path)
		}
		seen[t.Path] = true

		for j, r := range t.Replacements {
			if err := r.validate(); err != nil {
				return errors.Errorf("target %d: replacement %d: %w", i, j, err)
			}
		}
	}

	for i, r := range cfg.Replacements {
		if err := r.validate(); err != nil {
			return errors.Errorf("replacement %d: %w", i, err)
		}
	}

	// Set defaults
	if cfg.Message == "" {
		cfg.Message = DefaultMessage
	}

	return nil
}

// validate checks a single replacement rule
func (r Replacement) validate() error {
	if r.Old == "" {
		return errors.Errorf("old is required")
	}
	if r.File != nil && !doublestar.ValidatePattern(*r.File) {
		return errors.Errorf("invalid file glob %q", *r.File)
	}
	return nil
}

// 🔧 FlagsOrDefault returns the flags block, nil-safe
func (cfg *Config) FlagsOrDefault() FlagsBlock {
	if cfg.Flags == nil {
		return FlagsBlock{}
	}
	return *cfg.Flags
}

// 📍 Location returns where the config came from
func (cfg *Config) Location() string {
	if cfg.location == "" {
		return "builtin"
	}
	return cfg.location
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s: %d target(s), %d shared rule(s)", cfg.Location(), len(cfg.Targets), len(cfg.Replacements))
}
