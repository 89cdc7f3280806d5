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

package config_test

import (
	"context"
	"fmt"

	"github.com/walteh/patchrc/pkg/config"
)

func ExampleDefaultConfig() {
	cfg := config.DefaultConfig()

	fmt.Println(cfg.Targets[0].Path)
	fmt.Printf("%d rules\n", len(cfg.Replacements))
	fmt.Println(cfg.Message)
	// Output:
	// src/components/AuthenticatedApp.tsx
	// 8 rules
	// Fixed all authService calls for admin access
}

func ExampleYAMLParser_Parse() {
	input := `
targets:
  - path: src/app.ts
replacements:
  - old: debugMode
    new: releaseMode
`

	p := &config.YAMLParser{}
	cfg, err := p.Parse(context.Background(), []byte(input))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(cfg.Targets[0].Path)
	fmt.Printf("%s -> %s\n", cfg.Replacements[0].Old, cfg.Replacements[0].New)
	// Output:
	// src/app.ts
	// debugMode -> releaseMode
}
