package helpman

import (
	"os"
	"path/filepath"

	"github.com/agentstation/helpman/pkg/constants"
	"github.com/agentstation/helpman/pkg/errors"
)

// writeAtomic writes content to path via a temporary file and rename, so a
// failed run never leaves a partial manual page behind.
func writeAtomic(path, content string) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".helpman-*")
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return errors.WrapIO("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("close", path, err)
	}
	// CreateTemp files are 0600; manual pages are world-readable.
	if err := os.Chmod(tmpPath, constants.FilePermissions); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("chmod", path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("rename", path, err)
	}
	return nil
}
