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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// HCL schema. Targets are labeled blocks, replacements plain blocks:
//
//	target "src/app.tsx" {
//	  replacement {
//	    old = "debug"
//	    new = "release"
//	  }
//	}
type hclConfig struct {
	Message      *string          `hcl:"message,optional"`
	Flags        *hclFlags        `hcl:"flags,block"`
	Replacements []hclReplacement `hcl:"replacement,block"`
	Targets      []hclTarget      `hcl:"target,block"`
}

type hclTarget struct {
	Path         string           `hcl:"path,label"`
	Replacements []hclReplacement `hcl:"replacement,block"`
}

type hclReplacement struct {
	Old  string  `hcl:"old"`
	New  string  `hcl:"new"`
	File *string `hcl:"file,optional"`
}

type hclFlags struct {
	Strict bool `hcl:"strict,optional"`
	Atomic bool `hcl:"atomic,optional"`
	Backup bool `hcl:"backup,optional"`
	Async  bool `hcl:"async,optional"`
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{
		Replacements: convertReplacements(hclCfg.Replacements),
	}
	if hclCfg.Message != nil {
		cfg.Message = *hclCfg.Message
	}
	if hclCfg.Flags != nil {
		cfg.Flags = &FlagsBlock{
			Strict: hclCfg.Flags.Strict,
			Atomic: hclCfg.Flags.Atomic,
			Backup: hclCfg.Flags.Backup,
			Async:  hclCfg.Flags.Async,
		}
	}
	for _, t := range hclCfg.Targets {
		cfg.Targets = append(cfg.Targets, Target{
			Path:         t.Path,
			Replacements: convertReplacements(t.Replacements),
		})
	}

	return cfg, nil
}

func convertReplacements(rules []hclReplacement) []Replacement {
	var out []Replacement
	for _, r := range rules {
		out = append(out, Replacement{
			Old:  r.Old,
			New:  r.New,
			File: r.File,
		})
	}
	return out
}
