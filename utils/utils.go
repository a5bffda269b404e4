// package utils contains file helpers for the tools that write structured
// reference strings
package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ShouldRegenerate returns true if sourcePath is more recent than any of the
// files in targetPaths or if it encounters any error
func ShouldRegenerate(sourcePath string, targetPaths ...string) bool {
	sourceFile, err := os.Stat(sourcePath)
	if err != nil {
		return true
	}
	sourceModTime := sourceFile.ModTime()

	for _, targetPath := range targetPaths {
		outputFile, err := os.Stat(targetPath)
		if err != nil {
			return true
		}
		outputModTime := outputFile.ModTime()
		if sourceModTime.After(outputModTime) {
			return true
		}
	}
	return false
}

// CreateDirectoryIfNeeded creates dir, and its parents, if it does not exist
func CreateDirectoryIfNeeded(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		err = os.MkdirAll(dir, 0755)
		if err != nil {
			return fmt.Errorf("error creating folder: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("error accessing %s: %w", dir, err)
	} else if !info.IsDir() {
		return fmt.Errorf("file %s exists but is not a directory", dir)
	}
	return nil
}

// WriteFileAtomic calls write with a buffered writer to a temporary file in
// the directory of filename, then renames it to filename. On error the
// temporary file is removed and filename is left untouched.
func WriteFileAtomic(filename string, write func(w io.Writer) error) (err error) {
	dir := filepath.Dir(filename)
	if err := CreateDirectoryIfNeeded(dir); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filename)+".*.tmp")
	if err != nil {
		return fmt.Errorf("error creating temporary file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriterSize(tmp, 1<<20)
	if err = write(bw); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return fmt.Errorf("error writing %s: %w", filename, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("error syncing %s: %w", filename, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("error closing %s: %w", filename, err)
	}
	if err = os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("error renaming to %s: %w", filename, err)
	}
	return nil
}
