package platform

import (
	"fmt"
	"log"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/ini.v1"
)

// FileManager identifies a file manager family by its command line
// conventions
type FileManager int

const (
	// FileManagerDefault means no usable file manager; the directory is
	// handed to the default opener
	FileManagerDefault FileManager = iota
	FileManagerNautilus
	FileManagerKDE
	FileManagerCaja
	FileManagerDirectoryOnly
	FileManagerOther
)

// Desktop entry constants
const (
	XDGMimeCommand      = "xdg-mime"
	DirectoryMimeType   = "inode/directory"
	DesktopEntrySection = "Desktop Entry"
	DesktopExecKey      = "Exec"
	DefaultXDGDataDirs  = "/usr/local/share:/usr/share"
	UsrBinPrefix        = "/usr/bin/"
	ExoOpenCommand      = "exo-open"
)

// fieldCodePattern matches desktop entry field codes such as %U or %f
var fieldCodePattern = regexp.MustCompile(`(?i)[%][a-z]*( |$)`)

var fileManagerPrefixes = []struct {
	prefix  string
	manager FileManager
}{
	{"nautilus", FileManagerNautilus},
	{"dolphin", FileManagerKDE},
	{"konqueror", FileManagerKDE},
	{"kfmclient", FileManagerKDE},
	{"caja", FileManagerCaja},
	{"pcmanfm", FileManagerDirectoryOnly},
	{"thunar", FileManagerDirectoryOnly},
}

var fileManagerArgs = map[FileManager]func(dir, file string) []string{
	FileManagerNautilus: func(dir, file string) []string {
		return []string{"--select", file}
	},
	FileManagerKDE: func(dir, file string) []string {
		return []string{"--select", "--new-window", file}
	},
	FileManagerCaja: func(dir, file string) []string {
		return []string{"--no-desktop", dir}
	},
	FileManagerDirectoryOnly: func(dir, file string) []string {
		return []string{dir}
	},
	FileManagerOther: func(dir, file string) []string {
		return []string{file}
	},
}

// DetectFileManager classifies command, the program name from a desktop
// entry Exec line
func DetectFileManager(command string) FileManager {
	if command == "" || command == ExoOpenCommand {
		return FileManagerDefault
	}
	for _, fm := range fileManagerPrefixes {
		if strings.HasPrefix(command, fm.prefix) {
			return fm.manager
		}
	}
	return FileManagerOther
}

// FileManagerArgs returns the arguments that open dir with file selected,
// appended to the params taken from the Exec line. It returns nil for
// FileManagerDefault.
func FileManagerArgs(manager FileManager, params []string, dir, file string) []string {
	build, ok := fileManagerArgs[manager]
	if !ok {
		return nil
	}
	args := make([]string, 0, len(params)+3)
	args = append(args, params...)
	return append(args, build(dir, file)...)
}

// ParseExec splits a desktop entry Exec value into a command and its
// parameters, dropping field codes
func ParseExec(execLine string) (string, []string) {
	fields := strings.Fields(fieldCodePattern.ReplaceAllString(execLine, ""))
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}

// FileManagerCommand looks up the default handler of inode/directory and
// returns the command and parameters of its Exec line. /usr/bin/ is
// stripped from the command.
func (b *FileBrowser) FileManagerCommand() (string, []string) {
	desktopFile, err := b.queryDefault()
	if err != nil {
		log.Printf("Failed to query default file manager: %v", err)
		return "", nil
	}
	if desktopFile == "" {
		return "", nil
	}

	dataDirs := b.getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = DefaultXDGDataDirs
	}

	var command string
	var params []string
	for _, dataDir := range strings.Split(dataDirs, ":") {
		if dataDir == "" {
			continue
		}
		entryPath := filepath.Join(dataDir, "applications", desktopFile)
		if !b.exists(entryPath) {
			continue
		}
		execLine, found, err := readDesktopKey(entryPath, DesktopExecKey)
		if err != nil {
			log.Printf("Failed to read %s: %v", entryPath, err)
			continue
		}
		if found {
			if execLine == "" {
				break
			}
			command, params = ParseExec(execLine)
		}
		if command != "" {
			break
		}
	}

	if strings.HasPrefix(command, UsrBinPrefix) {
		command = command[strings.LastIndex(command, "/")+1:]
	}
	return command, params
}

// openInFileManager starts the configured file manager with file selected.
// Without one, or when it fails to start, the FileManager1 D-Bus service is
// asked to show the file and as a last resort the directory goes to the
// default opener.
func (b *FileBrowser) openInFileManager(dir, file string) error {
	command, params := b.FileManagerCommand()
	manager := DetectFileManager(command)

	if manager != FileManagerDefault {
		err := b.start(command, FileManagerArgs(manager, params, dir, file)...)
		if err == nil {
			return nil
		}
		log.Printf("Failed to start file manager %s: %v", command, err)
	}

	err := b.showItems([]string{fileURL(file).String()})
	if err == nil {
		return nil
	}
	log.Printf("FileManager1.ShowItems failed: %v", err)

	return b.openDirectory(dir)
}

// readDesktopKey reads key from the [Desktop Entry] group of a .desktop
// file
func readDesktopKey(path, key string) (string, bool, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		KeyValueDelimiters:      "=",
		SkipUnrecognizableLines: true,
	}, path)
	if err != nil {
		return "", false, err
	}
	section, err := cfg.GetSection(DesktopEntrySection)
	if err != nil {
		return "", false, nil
	}
	if !section.HasKey(key) {
		return "", false, nil
	}
	return strings.TrimSpace(section.Key(key).String()), true, nil
}

func queryDefaultFileManager() (string, error) {
	out, err := exec.Command(XDGMimeCommand, "query", "default", DirectoryMimeType).Output()
	if err != nil {
		return "", fmt.Errorf("%s query default %s: %w", XDGMimeCommand, DirectoryMimeType, err)
	}
	line, _, _ := strings.Cut(string(out), "\n")
	return strings.Join(strings.Fields(line), " "), nil
}
