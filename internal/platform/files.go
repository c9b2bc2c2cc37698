package platform

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"go.uber.org/multierr"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
	OSAndroid = "android"
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
	CmdCommand      = "cmd"
	StartCommand    = "start"
	AndroidCommand  = "am"
)

// Command parameters
const (
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
	WindowsCmdFlag     = "/c"
)

// Directory count thresholds for OpenInFileBrowser
const (
	MaxBrowserDirectories     = 50
	ConfirmBrowserDirectories = 5
)

// ErrTooManyDirectories is returned when the selection spans more than
// MaxBrowserDirectories directories
var ErrTooManyDirectories = errors.New("too many directories selected")

// ConfirmFunc is asked before opening more than ConfirmBrowserDirectories
// windows. It receives the number of selected files and distinct
// directories and returns true to proceed.
type ConfirmFunc func(files, directories int) bool

// FileBrowser reveals files in the platform file manager. The zero value is
// not usable; create one with NewFileBrowser.
type FileBrowser struct {
	goos         string
	getenv       func(string) string
	exists       func(string) bool
	queryDefault func() (string, error)
	start        func(name string, args ...string) error
	run          func(name string, args ...string) error
	showItems    func(uris []string) error
	openURL      func(u *url.URL) error
}

// NewFileBrowser creates a file browser for the running system
func NewFileBrowser() *FileBrowser {
	return &FileBrowser{
		goos:         runtime.GOOS,
		getenv:       os.Getenv,
		exists:       fileExists,
		queryDefault: queryDefaultFileManager,
		start:        startDetached,
		run:          runCommand,
		showItems:    ShowItemsDBus,
		openURL:      openURLWithDefaultApp,
	}
}

// UseApp makes the file browser open directories through app instead of
// spawning the platform opener
func (b *FileBrowser) UseApp(app fyne.App) {
	b.openURL = app.OpenURL
}

// OpenInFileBrowser shows every existing file of paths in the file manager,
// one window per distinct parent directory. Missing files are skipped.
func (b *FileBrowser) OpenInFileBrowser(paths []string, confirm ConfirmFunc) error {
	dirs := map[string]string{}
	for _, p := range paths {
		if !b.exists(p) {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			log.Printf("Failed to get absolute path of %s: %v", p, err)
			continue
		}
		dir := filepath.Dir(abs)
		if _, ok := dirs[dir]; ok {
			continue
		}
		dirs[dir] = abs
	}

	if len(dirs) > MaxBrowserDirectories {
		return fmt.Errorf("%d directories: %w", len(dirs), ErrTooManyDirectories)
	}

	if len(dirs) > ConfirmBrowserDirectories {
		if confirm == nil || !confirm(len(paths), len(dirs)) {
			return nil
		}
	}

	keys := make([]string, 0, len(dirs))
	for dir := range dirs {
		keys = append(keys, dir)
	}
	sort.Strings(keys)

	var errs error
	for _, dir := range keys {
		errs = multierr.Append(errs, b.Reveal(dir, dirs[dir]))
	}
	return errs
}

// Reveal opens dir in the file manager and selects file where the platform
// supports it
func (b *FileBrowser) Reveal(dir, file string) error {
	switch b.goos {
	case OSDarwin:
		return b.run(OpenCommand, MacOSSelectFlag, file)
	case OSWindows:
		return b.run(ExplorerCommand, WindowsSelectParam, filepath.FromSlash(file))
	case OSAndroid:
		return b.openDirectory(dir)
	default:
		return b.openInFileManager(dir, file)
	}
}

// OpenWithDefaultApp opens path with the application registered for it
func (b *FileBrowser) OpenWithDefaultApp(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}
	if !b.exists(abs) {
		return fmt.Errorf("file does not exist: %s", abs)
	}
	return b.openDirectory(abs)
}

func (b *FileBrowser) openDirectory(path string) error {
	if err := b.openURL(fileURL(path)); err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	return nil
}

// openURLWithDefaultApp hands a URL to the system opener
func openURLWithDefaultApp(u *url.URL) error {
	target := u.String()
	if u.Scheme == "file" {
		target = localPath(u)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case OSDarwin:
		cmd = exec.Command(OpenCommand, target)
	case OSWindows:
		cmd = exec.Command(CmdCommand, WindowsCmdFlag, StartCommand, "", target)
	case OSAndroid:
		cmd = exec.Command(AndroidCommand, "start", "-a", "android.intent.action.VIEW", "-d", u.String())
	default:
		cmd = exec.Command(XDGOpenCommand, target)
	}
	return cmd.Run()
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			log.Printf("%s exited: %v", name, err)
		}
	}()
	return nil
}

func runCommand(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func fileURL(path string) *url.URL {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return &url.URL{Scheme: "file", Path: p}
}

// localPath converts a file URL back to a native path
func localPath(u *url.URL) string {
	p := u.Path
	if len(p) > 2 && p[0] == '/' && p[2] == ':' {
		// /C:/Music
		p = p[1:]
	}
	return filepath.FromSlash(p)
}
