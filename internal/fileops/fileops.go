// Package fileops implements recursive copy, delete and move-to-trash over an
// afero filesystem.
//
// All operations are synchronous and fail fast: the first failing child
// aborts the call and its error is returned. Work already done is not rolled
// back, so a failed call may leave a partially copied or partially removed
// tree on disk.
package fileops

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// DefaultDirPermissions is used for directories created by CopyRecursive
const DefaultDirPermissions = 0755

// ErrCopyIntoSelf is returned when the copy target lies inside its source
var ErrCopyIntoSelf = errors.New("cannot copy a directory into itself")

// Ops runs recursive file operations on a filesystem
type Ops struct {
	fs    afero.Fs
	trash Trasher
}

// New creates file operations over fs using the platform trash
func New(fs afero.Fs) *Ops {
	return &Ops{fs: fs, trash: DefaultTrash(fs)}
}

// NewWithTrash creates file operations over fs using trash for
// MoveToTrashRecursive
func NewWithTrash(fs afero.Fs, trash Trasher) *Ops {
	return &Ops{fs: fs, trash: trash}
}

// Fs returns the underlying filesystem
func (o *Ops) Fs() afero.Fs {
	return o.fs
}

// RemoveRecursive deletes path and everything below it. Subdirectories are
// handled first, then files, then path itself.
func (o *Ops) RemoveRecursive(path string) error {
	return o.removeTree(path, o.fs.Remove)
}

// MoveToTrashRecursive moves every file below path to the trash and removes
// the emptied directories, using the same order as RemoveRecursive.
func (o *Ops) MoveToTrashRecursive(path string) error {
	return o.removeTree(path, o.trash.Trash)
}

func (o *Ops) removeTree(path string, removeFile func(string) error) error {
	dirs, files, err := o.listChildren(path)
	if err != nil {
		return err
	}

	for _, child := range dirs {
		if err := o.removeTree(filepath.Join(path, child), removeFile); err != nil {
			return err
		}
	}

	for _, child := range files {
		if err := removeFile(filepath.Join(path, child)); err != nil {
			return fmt.Errorf("failed to remove %s: %w", filepath.Join(path, child), err)
		}
	}

	if err := o.fs.Remove(path); err != nil {
		return fmt.Errorf("failed to remove directory %s: %w", path, err)
	}
	return nil
}

// CopyRecursive copies the directory source into destination, creating
// destination/<base of source> and any missing parents. Subdirectories are
// copied first, then files. Existing destination files are not overwritten.
// A destination at or below source fails with ErrCopyIntoSelf.
func (o *Ops) CopyRecursive(source, destination string) error {
	destPath := filepath.Join(destination, filepath.Base(source))
	inside, err := isWithin(source, destPath)
	if err != nil {
		return err
	}
	if inside {
		return fmt.Errorf("%s to %s: %w", source, destPath, ErrCopyIntoSelf)
	}
	if err := o.fs.MkdirAll(destPath, DefaultDirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", destPath, err)
	}

	dirs, files, err := o.listChildren(source)
	if err != nil {
		return err
	}

	for _, child := range dirs {
		src := filepath.Join(source, child)
		if err := o.CopyRecursive(src, destPath); err != nil {
			log.Printf("Failed to copy dir %s to %s", src, destPath)
			return err
		}
	}

	for _, child := range files {
		src := filepath.Join(source, child)
		if err := o.CopyFile(src, filepath.Join(destPath, child)); err != nil {
			log.Printf("Failed to copy file %s to %s", src, destPath)
			return err
		}
	}

	return nil
}

// isWithin reports whether path is dir or lies below it
func isWithin(dir, path string) (bool, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false, fmt.Errorf("failed to get absolute path: %w", err)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("failed to get absolute path: %w", err)
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false, nil
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))), nil
}

// CopyFile copies a single file, keeping its permission bits. It fails if
// destination already exists.
func (o *Ops) CopyFile(source, destination string) error {
	in, err := o.fs.Open(source)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", source, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", source, err)
	}

	out, err := o.fs.OpenFile(destination, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", destination, err)
	}

	if err := CopyStream(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s to %s: %w", source, destination, err)
	}
	return out.Close()
}

// ReadFile returns the whole content of path. A failure is logged and an
// empty slice returned.
func (o *Ops) ReadFile(path string) []byte {
	data, err := afero.ReadFile(o.fs, path)
	if err != nil {
		log.Printf("Failed to open file %s for reading: %v", path, err)
		return []byte{}
	}
	return data
}

// CopyStream copies src to dst in fixed-size chunks
func CopyStream(dst io.Writer, src io.Reader) error {
	_, err := io.Copy(dst, src)
	return err
}

// listChildren returns the names of subdirectories and other entries of dir
// in the order the filesystem lists them. Hidden entries are included and
// symlinks count as files, so they are never followed.
func (o *Ops) listChildren(dir string) (dirs, files []string, err error) {
	f, err := o.fs.Open(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open directory %s: %w", dir, err)
	}
	defer f.Close()

	infos, err := f.Readdir(-1)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, info := range infos {
		name := info.Name()
		if name == "." || name == ".." {
			continue
		}
		if info.IsDir() {
			dirs = append(dirs, name)
		} else {
			files = append(files, name)
		}
	}
	return dirs, files, nil
}
