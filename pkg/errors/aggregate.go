package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Issue is a single problem found for one record.
type Issue struct {
	RecordID string
	Message  string
}

// String renders the issue as "id: message".
func (i Issue) String() string {
	return i.RecordID + ": " + i.Message
}

// FileIssue is a single problem found for one source file.
type FileIssue struct {
	File   string
	Reason string
}

// block renders a header followed by one tab-indented line per entry.
func block(header string, lines []string) string {
	if len(lines) == 0 {
		return header
	}
	return header + "\n\t" + strings.Join(lines, "\n\t")
}

// InputShapeError reports a collection that is not a sequence of records
// keyed by a non-empty id.
type InputShapeError struct {
	Collection string
	Indexes    []int
	Message    string
}

// Error implements the error interface
func (e *InputShapeError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "expected a sequence of records with an id"
	}
	if len(e.Indexes) == 0 {
		return fmt.Sprintf("invalid %s: %s", e.Collection, msg)
	}
	idx := make([]string, len(e.Indexes))
	for i, n := range e.Indexes {
		idx[i] = strconv.Itoa(n)
	}
	return fmt.Sprintf("invalid %s: %s (entries %s)", e.Collection, msg, strings.Join(idx, ", "))
}

// Is implements errors.Is support
func (e *InputShapeError) Is(target error) bool {
	return target == ErrInvalidInput
}

// SourceFilesError aggregates every source file that could not be read,
// parsed or validated.
type SourceFilesError struct {
	Dir   string
	Files []FileIssue
}

// Error implements the error interface
func (e *SourceFilesError) Error() string {
	lines := make([]string, len(e.Files))
	for i, f := range e.Files {
		lines[i] = f.File + ": " + f.Reason
	}
	return block(fmt.Sprintf("invalid source files in %s (%d):", e.Dir, len(e.Files)), lines)
}

// Is implements errors.Is support
func (e *SourceFilesError) Is(target error) bool {
	return target == ErrInvalidInput
}

// FileNames returns the names of the offending files.
func (e *SourceFilesError) FileNames() []string {
	names := make([]string, len(e.Files))
	for i, f := range e.Files {
		names[i] = f.File
	}
	return names
}

// RecoveryError reports a failed restore of missing source files.
// The whole batch is considered failed.
type RecoveryError struct {
	Dir string
	ID  string
	Err error
}

// Error implements the error interface
func (e *RecoveryError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("restoring removed services into %s failed at %s: %v", e.Dir, e.ID, e.Err)
	}
	return fmt.Sprintf("restoring removed services into %s failed: %v", e.Dir, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *RecoveryError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support. A batch rejected because a record
// was malformed is not a write failure.
func (e *RecoveryError) Is(target error) bool {
	return target == ErrWriteFailed && !IsValidationError(e.Err)
}

// GroupIssue pairs a service id with the group value it carries.
type GroupIssue struct {
	ID    string
	Group string
}

// GroupValidationError aggregates every service with an empty or unknown group.
type GroupValidationError struct {
	Reason    string
	Offenders []GroupIssue
}

// Error implements the error interface
func (e *GroupValidationError) Error() string {
	lines := make([]string, len(e.Offenders))
	for i, o := range e.Offenders {
		lines[i] = fmt.Sprintf("%s: %q", o.ID, o.Group)
	}
	return block(fmt.Sprintf("group validation failed, %s (%d):", e.Reason, len(e.Offenders)), lines)
}

// Is implements errors.Is support
func (e *GroupValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// IDs returns the ids of the offending services.
func (e *GroupValidationError) IDs() []string {
	ids := make([]string, len(e.Offenders))
	for i, o := range e.Offenders {
		ids[i] = o.ID
	}
	return ids
}

// SvgValidationError aggregates every icon violation across a registry.
type SvgValidationError struct {
	Issues []Issue
}

// Error implements the error interface
func (e *SvgValidationError) Error() string {
	lines := make([]string, len(e.Issues))
	for i, is := range e.Issues {
		lines[i] = is.String()
	}
	return block(fmt.Sprintf("invalid SVG icons (%d):", len(e.Issues)), lines)
}

// Is implements errors.Is support
func (e *SvgValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// RecordIDs returns the distinct offending record ids in first-seen order.
func (e *SvgValidationError) RecordIDs() []string {
	seen := make(map[string]bool, len(e.Issues))
	var ids []string
	for _, is := range e.Issues {
		if !seen[is.RecordID] {
			seen[is.RecordID] = true
			ids = append(ids, is.RecordID)
		}
	}
	return ids
}

// DestinationError reports a missing or malformed destination artifact.
type DestinationError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *DestinationError) Error() string {
	return fmt.Sprintf("destination artifact %s is unreadable: %v", e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *DestinationError) Unwrap() error {
	return e.Err
}

// ArtifactWriteError reports a failed write of the final artifact.
// The previous artifact is left untouched.
type ArtifactWriteError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *ArtifactWriteError) Error() string {
	return fmt.Sprintf("writing artifact %s failed: %v", e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ArtifactWriteError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ArtifactWriteError) Is(target error) bool {
	return target == ErrWriteFailed
}

// LocalizationError aggregates every invalid translation entry.
type LocalizationError struct {
	Dir    string
	Issues []Issue
}

// Error implements the error interface
func (e *LocalizationError) Error() string {
	lines := make([]string, len(e.Issues))
	for i, is := range e.Issues {
		lines[i] = is.String()
	}
	return block(fmt.Sprintf("invalid localizations in %s (%d):", e.Dir, len(e.Issues)), lines)
}

// Is implements errors.Is support
func (e *LocalizationError) Is(target error) bool {
	return target == ErrInvalidInput
}
