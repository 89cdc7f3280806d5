/*
Package operation implements the core business logic for patching files.

	+-------------+
	|  Operation  |
	| (Core Logic)|
	+------+------+
	       |
	+------+------+
	|   Patch     |
	| (Transform) |
	+------+------+

🎯 Purpose:
- Orchestrates patching of every configured target
- Resolves which rules apply to which file (shared, target-local, globs)
- Coordinates between the patch engine and the status package
- Enforces strict mode across the whole run

🔄 Flow:
1. Resolves the ruleset for each target
2. Reads the target through the status package
3. Applies rules via the patch engine
4. Writes back (plain, atomic or with backup) only when content changed
5. Reports outcomes and progress

⚡ Key Responsibilities:
- Rule resolution and glob filtering
- Coordinating async runs over multiple targets
- Zero-match bookkeeping for strict mode
- Error handling per target

🤝 Interfaces:
- Operator: Patch and Check entry points
- status.Manager: Handles file storage and outcome tracking
- patch.Replacer: Applies the actual substitutions

📝 Design Philosophy:
The operation package is the heart of patchrc, but it stays focused on
orchestration. It delegates file I/O to the status package and the string
work to the patch package. Reads always precede writes, so a target that
cannot be read is never created or truncated. A run that changes nothing
writes nothing.

🔍 Example:

	op, err := operation.New(operation.Options{
		Config:    cfg,
		StatusMgr: mgr,
		Console:   console,
	})
	if err != nil {
		return err
	}
	if err := op.Patch(ctx); err != nil {
		return err
	}

The operation package should be like a pure function:
Input (config + files) -> Transform -> Output (status)
*/
package operation
