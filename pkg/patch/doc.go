/*
Package patch implements ordered literal string replacement over document
content.

	+-------------+
	|    Rules    |
	| (Old → New) |
	+------+------+
	       |
	+------+------+
	|  Replacer   |
	| (Transform) |
	+------+------+
	       |
	+------+------+
	|   Result    |
	| (Patched)   |
	+-------------+

🎯 Purpose:
- Applies an ordered list of exact substring replacements to content
- Tracks per-rule match counts and whether anything changed
- Stays deliberately dumb: no regexp, no tokens, no AST awareness

🔄 Flow:
1. Read the full document into memory
2. Apply each rule once, in list order, over the whole document
3. Report the patched content plus match accounting

📝 Design Philosophy:
The engine is a pure transformation: bytes in, bytes out. File I/O lives in
the status package and orchestration in the operation package, so this
package can be tested with nothing but strings. Rule order is significant:
later rules operate on text already transformed by earlier rules, and a
rule is never re-applied to its own output (single forward pass, no fixpoint
iteration).
*/
package patch
