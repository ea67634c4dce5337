package envfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// DefaultFileMode is the mode of a newly created file when WriteFile gets perm 0.
const DefaultFileMode os.FileMode = 0o600

var rename = os.Rename

// WriteFile replaces path with content. The text is written to a temporary
// file in the same directory and renamed over path, so readers see either the
// old file or the complete new one. The temporary file is removed on failure.
//
// A perm of 0 keeps the mode of an existing file (DefaultFileMode for a new
// one). A symlink at path is followed and its target is replaced. When the
// target cannot be replaced by rename (EBUSY for a bind-mounted file, EXDEV),
// it is truncated and written in place instead, without the atomicity.
func WriteFile(path, content string, perm os.FileMode) (err error) {
	target := path
	if resolved, evalErr := filepath.EvalSymlinks(path); evalErr == nil {
		target = resolved
	}
	if perm == 0 {
		perm = DefaultFileMode
		if info, statErr := os.Stat(target); statErr == nil {
			perm = info.Mode().Perm()
		}
	}

	dir, base := filepath.Split(target)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.WriteString(content); err != nil {
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err = tmp.Chmod(perm); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}

	err = rename(tmpName, target)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EBUSY) && !errors.Is(err, syscall.EXDEV) {
		return fmt.Errorf("rename %s to %s: %w", tmpName, target, err)
	}

	_ = os.Remove(tmpName)
	if err = writeInPlace(target, content, perm); err != nil {
		return fmt.Errorf("write %s in place: %w", target, err)
	}
	return nil
}

func writeInPlace(path, content string, perm os.FileMode) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
