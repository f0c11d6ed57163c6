// Package fsutil holds small filesystem helpers shared by the writers.
package fsutil

import (
	"os"
	"path/filepath"

	"github.com/agentstation/hostlists/pkg/constants"
)

// WriteFileAtomic writes content to path by writing to a temp file in the
// same directory and then renaming it over the destination. The parent
// directory is created when missing. On failure the destination is left
// untouched.
func WriteFileAtomic(path string, content []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+constants.TempFileSuffix)
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
