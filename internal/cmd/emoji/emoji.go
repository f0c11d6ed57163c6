// Package emoji provides symbol constants for CLI output.
package emoji

// Status symbols shared by every command.
const (
	// Success marks a finished build or a clean check.
	Success = "✓"

	// Error marks a failed stage.
	Error = "✗"

	// Warning marks something the operator should look at, such as a
	// restored source file or a group that lost all its services.
	Warning = "!"

	// Info marks neutral notes like "nothing written" in a dry run.
	Info = "i"

	// Added, Updated and Removed prefix changeset lines.
	Added   = "+"
	Updated = "~"
	Removed = "-"
)
