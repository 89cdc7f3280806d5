/*
Package config manages configuration parsing and validation for patchrc.

	             +-------------+
	             |   Config    |
	             | (Ruleset)   |
	             +------+------+
	                    |
	   +--------+-------+-------+--------+
	   |        |               |        |
	+--+--+  +--+--+         +--+--+  +--+---+
	| YAML |  | JSON |        | HCL |  | TOML |
	+------+  +------+        +-----+  +------+

🎯 Purpose:
- Manages ruleset loading and parsing
- Validates targets, replacement rules and flags
- Carries the builtin ruleset used when no config file exists
- Supports multiple config formats

🔄 Flow:
1. Probes the working directory for a .patchrc file (or uses --config)
2. Parses format-specific syntax into the shared model
3. Validates targets and rules, filling in defaults
4. Hands the validated config to the operation package

⚡ Key Responsibilities:
- Ruleset parsing
- Rule validation (non-empty old text, valid file globs)
- Default value management (confirmation message, builtin ruleset)
- Format abstraction behind the Parser interface

🤝 Interfaces:
- Parser: format-specific parsing, self-selected via CanParse
- Config: the validated, format-independent ruleset

📝 Design Philosophy:
The config package is the source of truth for what gets patched. It:
- Keeps rule order exactly as written, since later rules see earlier output
- Rejects unknown keys in every format rather than silently dropping them
- Treats the builtin auth ruleset as just another Config, not a special case

🔍 Example:

	// Explicit file
	cfg, err := config.Load(ctx, ".patchrc.yaml")
	if err != nil {
		return err
	}

	// Or probe, falling back to the builtin ruleset
	cfg, err = config.LoadOrDefault(ctx, "")
	if err != nil {
		return err
	}
	fmt.Println(cfg.String())
*/
package config
