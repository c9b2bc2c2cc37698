package fileops

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"gopkg.in/ini.v1"
)

// ErrTrashUnsupported is returned where no trash implementation exists
var ErrTrashUnsupported = errors.New("move to trash is not supported on this platform")

// Trash layout constants (freedesktop.org Trash specification)
const (
	TrashFilesDir      = "files"
	TrashInfoDir       = "info"
	TrashInfoExt       = ".trashinfo"
	TrashInfoSection   = "Trash Info"
	TrashDateLayout    = "2006-01-02T15:04:05"
	TrashDirPermission = 0700
)

// Trasher moves a single file to a recoverable trash location
type Trasher interface {
	Trash(path string) error
}

type unsupportedTrash struct{}

func (unsupportedTrash) Trash(path string) error {
	return fmt.Errorf("%s: %w", path, ErrTrashUnsupported)
}

// DefaultTrash returns the home trash of the current user on freedesktop
// systems, and a trash that always fails elsewhere.
func DefaultTrash(fs afero.Fs) Trasher {
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		dir, err := HomeTrashDir()
		if err != nil {
			return unsupportedTrash{}
		}
		return NewFreedesktopTrash(fs, dir)
	default:
		return unsupportedTrash{}
	}
}

// HomeTrashDir returns $XDG_DATA_HOME/Trash, defaulting to
// ~/.local/share/Trash
func HomeTrashDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "Trash"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "Trash"), nil
}

// FreedesktopTrash implements the freedesktop.org home trash: the file goes
// to <dir>/files and a .trashinfo record with its original path and deletion
// date goes to <dir>/info.
type FreedesktopTrash struct {
	fs  afero.Fs
	dir string
	now func() time.Time
}

// NewFreedesktopTrash creates a trash rooted at dir
func NewFreedesktopTrash(fs afero.Fs, dir string) *FreedesktopTrash {
	return &FreedesktopTrash{fs: fs, dir: dir, now: time.Now}
}

// Dir returns the trash root directory
func (t *FreedesktopTrash) Dir() string {
	return t.dir
}

// Trash moves path into the trash. The info record is written first and
// removed again if the move fails. The move is a rename, so path must be on
// the same filesystem as the trash.
func (t *FreedesktopTrash) Trash(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	filesDir := filepath.Join(t.dir, TrashFilesDir)
	infoDir := filepath.Join(t.dir, TrashInfoDir)
	for _, dir := range []string{filesDir, infoDir} {
		if err := t.fs.MkdirAll(dir, TrashDirPermission); err != nil {
			return fmt.Errorf("failed to create trash directory %s: %w", dir, err)
		}
	}

	name := t.uniqueName(filepath.Base(absPath))
	infoPath := filepath.Join(infoDir, name+TrashInfoExt)
	if err := t.writeInfo(infoPath, absPath); err != nil {
		return err
	}

	if err := t.fs.Rename(absPath, filepath.Join(filesDir, name)); err != nil {
		t.fs.Remove(infoPath)
		return fmt.Errorf("failed to move %s to trash: %w", absPath, err)
	}
	return nil
}

// uniqueName returns name, or name with a random suffix before its extension
// when the trash already holds an entry with that name.
func (t *FreedesktopTrash) uniqueName(name string) string {
	if !t.taken(name) {
		return name
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for {
		candidate := stem + "." + uuid.NewString()[:8] + ext
		if !t.taken(candidate) {
			return candidate
		}
	}
}

func (t *FreedesktopTrash) taken(name string) bool {
	for _, p := range []string{
		filepath.Join(t.dir, TrashFilesDir, name),
		filepath.Join(t.dir, TrashInfoDir, name+TrashInfoExt),
	} {
		if _, err := t.fs.Stat(p); err == nil {
			return true
		}
	}
	return false
}

func (t *FreedesktopTrash) writeInfo(infoPath, originalPath string) error {
	cfg := ini.Empty()
	section, err := cfg.NewSection(TrashInfoSection)
	if err != nil {
		return err
	}
	section.NewKey("Path", (&url.URL{Path: originalPath}).EscapedPath())
	section.NewKey("DeletionDate", t.now().Format(TrashDateLayout))

	f, err := t.fs.OpenFile(infoPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("failed to create trash info %s: %w", infoPath, err)
	}
	if err := writeSection(f, section); err != nil {
		f.Close()
		t.fs.Remove(infoPath)
		return fmt.Errorf("failed to write trash info %s: %w", infoPath, err)
	}
	return f.Close()
}

// writeSection writes section as plain key=value lines, which .trashinfo
// readers expect, without touching the ini package's global formatting
func writeSection(w io.Writer, section *ini.Section) error {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]\n", section.Name())
	for _, key := range section.Keys() {
		fmt.Fprintf(&b, "%s=%s\n", key.Name(), key.Value())
	}
	_, err := io.WriteString(w, b.String())
	return err
}
