package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"fyne.io/fyne/v2"
	"github.com/spf13/pflag"

	"github.com/ytget/playerutil/internal/config"
	"github.com/ytget/playerutil/internal/i18n"
	"github.com/ytget/playerutil/internal/platform"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.playerutil"
	AppName = "playerutil"
)

// env carries what every command needs
type env struct {
	cfg    *config.Config
	loc    *i18n.Localizer
	stdin  io.Reader
	stdout io.Writer

	// created on first use by prefs
	app      fyne.App
	settings *config.Settings
}

type command struct {
	usage string
	run   func(e *env, args []string) error
}

var commands = map[string]command{
	"render":   {"render [--html] [--newline S] [--file SONG] [--title T ...] TEMPLATE", runRender},
	"tags":     {"tags [--ascii] FILE", runTags},
	"cover":    {"cover [-o DIR | --beside] FILE", runCover},
	"copy":     {"copy SOURCE [DESTINATION]", runCopy},
	"rm":       {"rm [--trash=false] PATH...  (moves to trash unless move_to_trash is off)", runRemove},
	"trash":    {"trash PATH...", runTrash},
	"hmac":     {"hmac [--alg sha256|sha1|md5] [--hex-key] --key KEY DATA", runHMAC},
	"date":     {"date RFC822-DATE", runDate},
	"size":     {"size BYTES|WIDTHxHEIGHT", runSize},
	"time":     {"time [--wordy|--delta|--ago|--until] [--nanos] VALUE", runTime},
	"random":   {"random [--chars alpha|alnum|url] LENGTH", runRandom},
	"desktop":  {"desktop", runDesktop},
	"reveal":   {"reveal FILE...", runReveal},
	"open":     {"open FILE", runOpen},
	"mime":     {"mime FILE...", runMime},
	"df":       {"df PATH", runDiskFree},
	"mac":      {"mac", runMac},
	"feed":     {"feed URL|FILE", runFeed},
	"fetch":    {"fetch [--user-agent UA] [--timeout S] [-o FILE] URL", runFetch},
	"settings": {"settings [--accent #rrggbb]", runSettings},
	"notify":   {"notify [--osd-title T] [--osd-body B] [--title T ...] [SONG]", runNotify},
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", AppName, err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	global := pflag.NewFlagSet(AppName, pflag.ContinueOnError)
	global.SetInterspersed(false)
	configPath := global.String("config", "", "configuration file (default: search $HOME/.config/playerutil and .)")
	global.String("language", "", "interface language: system, en, ru or pt")
	global.Bool("html", false, "escape template values for HTML")
	global.String("trash-dir", "", "trash directory (default: the user's home trash)")
	global.String("user-agent", "", "User-Agent for network requests")
	global.Int("timeout", 0, "network timeout in seconds")
	showVersion := global.Bool("version", false, "print version and exit")
	global.Usage = func() { printUsage(stdout, global) }
	if err := global.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "%s %s\n", AppName, version)
		return nil
	}

	rest := global.Args()
	if len(rest) == 0 {
		printUsage(stdout, global)
		return fmt.Errorf("no command given")
	}
	cmd, ok := commands[rest[0]]
	if !ok {
		printUsage(stdout, global)
		return fmt.Errorf("unknown command %q", rest[0])
	}

	if _, err := platform.IncreaseFDLimit(); err != nil {
		log.Printf("Failed to raise file descriptor limit: %v", err)
	}

	cfg, err := config.Load(*configPath, global)
	if err != nil {
		return err
	}

	loc := i18n.NewLocalizer()
	loc.SetLanguage(cfg.General.Language)

	e := &env{cfg: cfg, loc: loc, stdin: stdin, stdout: stdout}
	if err := cmd.run(e, rest[1:]); err != nil {
		if errors.Is(err, errUsage) {
			return fmt.Errorf("%w; usage: %s %s", err, AppName, cmd.usage)
		}
		return err
	}
	return nil
}

func printUsage(w io.Writer, global *pflag.FlagSet) {
	fmt.Fprintf(w, "Usage: %s [global flags] COMMAND [flags] [args]\n\nCommands:\n", AppName)
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", commands[name].usage)
	}
	fmt.Fprintf(w, "\nGlobal flags:\n%s", global.FlagUsages())
}
