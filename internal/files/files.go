// Package files implements the write side of a clean run: backup copies and
// in-place overwrites that keep the original file mode.
package files

import (
	"fmt"
	"io/fs"
	"os"
)

// DefaultBackupSuffix is appended to a file name when --backup is requested.
const DefaultBackupSuffix = ".bak"

// CreateBackup copies path to path+suffix, preserving the file mode, and
// returns the backup path.
func CreateBackup(path, suffix string) (string, error) {
	if suffix == "" {
		suffix = DefaultBackupSuffix
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	mode := fileMode(path)
	backup := path + suffix
	if err := os.WriteFile(backup, data, mode); err != nil {
		return "", fmt.Errorf("write backup %s: %w", backup, err)
	}
	return backup, nil
}

// Overwrite replaces the contents of path, keeping its existing mode.
func Overwrite(path string, data []byte) error {
	if err := os.WriteFile(path, data, fileMode(path)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func fileMode(path string) fs.FileMode {
	if st, err := os.Stat(path); err == nil {
		return st.Mode().Perm()
	}
	return 0o644
}
