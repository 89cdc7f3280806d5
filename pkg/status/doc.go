/*
Package status manages file storage and outcome tracking for patchrc.

	            +-------------+
	            |   Status    |
	            |  (Storage)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+-----+
	|   Files   |           | Outcomes |
	| (Storage) |           | (Report) |
	+-----------+           +----------+

🎯 Purpose:
- Owns every read and write of patch targets
- Tracks per-file outcomes (patched, unchanged, failed)
- Provides progress reporting for multi-target runs
- Offers plain, atomic and backup write strategies

🔄 Flow:
1. Receives patched content from the operation package
2. Writes it back with the strategy the flags ask for
3. Tracks the outcome with size, checksum and replacement count
4. Reports outcomes in a user-friendly format

⚡ Key Responsibilities:
- File system operations
- Outcome tracking
- Progress reporting
- Error handling for I/O
- Backup management

🤝 Interfaces:
- FileManager: Handles file operations
- StatusReporter: Reports outcome changes
- FileFormatter: Formats outcome messages

📝 Design Philosophy:
The status package is responsible for all file system operations and outcome
tracking. The default write is a plain truncating overwrite, matching what a
hand-run patch would do; atomic and backup writes are opt-in strategies on
top. Reads always happen before writes, so a failed read can never create or
truncate a target.

🚧 Current Issues & TODOs:
1. File Management:
  - FileManager interface ✅
  - Safe atomic writes ✅
  - Backup/restore capability ✅

2. Outcome Tracking:
  - Clear file states ✅
  - File metadata (size, checksum, replacement count) ✅

3. Progress Reporting:
  - Live updates ✅
  - Progress bar for large rulesets

🔍 Example:

	mgr := status.New(".", &logger)

	// File operations
	content, err := mgr.ReadFile(ctx, path)
	if err != nil {
		return err
	}
	err = mgr.WriteFile(ctx, path, patched)

	// Outcome tracking
	mgr.TrackFile(ctx, path, status.FileInfo{
		Path:   path,
		Status: status.StatusPatched,
	})
*/
package status
