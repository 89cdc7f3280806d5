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

// 🎯 BuiltinTargetPath is the file the stock ruleset patches
const BuiltinTargetPath = "src/components/AuthenticatedApp.tsx"

const (
	// 📝 BuiltinMessage is printed after a successful run of the stock ruleset
	BuiltinMessage = "Fixed all authService calls for admin access"

	// 📝 DefaultMessage is printed for configs that don't set their own message
	DefaultMessage = "All patch rules applied"
)

// 🔧 DefaultConfig returns the builtin ruleset. Every authService call in the
// authenticated app shell gets pinned to its system-administrator answer.
func DefaultConfig() *Config {
	return &Config{
		Targets: []Target{{Path: BuiltinTargetPath}},
		Replacements: []Replacement{
			{Old: "authService.getUserDisplayName()", New: `"System Administrator"`},
			{Old: "authService.getUserRoleDisplayName()", New: `"System Administrator"`},
			{Old: "authService.hasPermission('citizen.create')", New: "true"},
			{Old: "authService.hasRole('system_administrator')", New: "true"},
			{Old: "authService.hasRole('registration_officer')", New: "true"},
			{Old: "authService.hasRole('field_enumerator')", New: "true"},
			{Old: "authService.hasRole('electoral_commissioner')", New: "true"},
			{Old: "authService.hasRole('admin')", New: "true"},
		},
		Message: BuiltinMessage,
	}
}
