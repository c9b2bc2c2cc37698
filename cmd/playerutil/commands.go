package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"

	"github.com/ytget/playerutil/internal/config"
	"github.com/ytget/playerutil/internal/feed"
	"github.com/ytget/playerutil/internal/fileops"
	"github.com/ytget/playerutil/internal/format"
	"github.com/ytget/playerutil/internal/hashutil"
	"github.com/ytget/playerutil/internal/i18n"
	"github.com/ytget/playerutil/internal/media"
	"github.com/ytget/playerutil/internal/message"
	"github.com/ytget/playerutil/internal/model"
	"github.com/ytget/playerutil/internal/netaccess"
	"github.com/ytget/playerutil/internal/osd"
	"github.com/ytget/playerutil/internal/platform"
	"github.com/ytget/playerutil/internal/textutil"
	"github.com/ytget/playerutil/internal/ui"
)

// NotifyLinger is how long the notify command keeps the app alive so the
// notification gets delivered
const NotifyLinger = 2 * time.Second

// DefaultCoverExtension names covers whose image type has no known extension
const DefaultCoverExtension = "jpg"

// errUsage reports wrong positional arguments; run adds the command usage
var errUsage = errors.New("wrong number of arguments")

// newApp creates the application whose preferences back the settings
var newApp = func() fyne.App { return app.NewWithID(AppID) }

// prefs returns the saved user preferences
func (e *env) prefs() *config.Settings {
	if e.settings == nil {
		e.app = newApp()
		e.settings = config.NewSettings(e.app)
	}
	return e.settings
}

var escapes = strings.NewReplacer(`\n`, "\n", `\t`, "\t")

func newFlagSet(name string) *pflag.FlagSet {
	return pflag.NewFlagSet(name, pflag.ContinueOnError)
}

// expectArgs parses args and checks the number of positional arguments
func expectArgs(fs *pflag.FlagSet, args []string, min, max int) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	rest := fs.Args()
	if len(rest) < min || (max >= 0 && len(rest) > max) {
		return nil, errUsage
	}
	return rest, nil
}

// songFlags registers the flags that fill in song fields
type songFlags struct {
	fs     *pflag.FlagSet
	file   *string
	title  *string
	artist *string
	album  *string
	albumA *string
	genre  *string
	year   *int
	track  *int
	disc   *int
	length *time.Duration
}

func addSongFlags(fs *pflag.FlagSet) *songFlags {
	return &songFlags{
		fs:     fs,
		file:   fs.String("file", "", "read song tags from this audio file"),
		title:  fs.String("title", "", "song title"),
		artist: fs.String("artist", "", "song artist"),
		album:  fs.String("album", "", "song album"),
		albumA: fs.String("albumartist", "", "album artist"),
		genre:  fs.String("genre", "", "song genre"),
		year:   fs.Int("year", 0, "release year"),
		track:  fs.Int("track", 0, "track number"),
		disc:   fs.Int("disc", 0, "disc number"),
		length: fs.Duration("length", 0, "song length, e.g. 4m21s"),
	}
}

// song builds a song from --file, then applies the explicitly set fields
func (f *songFlags) song() (*model.Song, error) {
	song := &model.Song{Rating: model.RatingUnset}
	if *f.file != "" {
		var err error
		song, err = media.ReadSong(afero.NewOsFs(), *f.file)
		if err != nil {
			return nil, err
		}
	}

	setters := map[string]func(){
		"title":       func() { song.Title = *f.title },
		"artist":      func() { song.Artist = *f.artist },
		"album":       func() { song.Album = *f.album },
		"albumartist": func() { song.AlbumArtist = *f.albumA },
		"genre":       func() { song.Genre = *f.genre },
		"year":        func() { song.Year = *f.year },
		"track":       func() { song.Track = *f.track },
		"disc":        func() { song.Disc = *f.disc },
		"length":      func() { song.Length = *f.length },
	}
	for name, set := range setters {
		if f.fs.Changed(name) {
			set()
		}
	}
	return song, nil
}

func runRender(e *env, args []string) error {
	fs := newFlagSet("render")
	html := fs.Bool("html", e.cfg.Notify.HTML, "escape substituted values for HTML")
	newline := fs.String("newline", `\n`, "replacement for %newline%")
	sf := addSongFlags(fs)
	rest, err := expectArgs(fs, args, 1, 1)
	if err != nil {
		return err
	}

	song, err := sf.song()
	if err != nil {
		return err
	}
	fmt.Fprintln(e.stdout, message.Render(rest[0], song, escapes.Replace(*newline), *html))
	return nil
}

func runTags(e *env, args []string) error {
	fs := newFlagSet("tags")
	ascii := fs.Bool("ascii", false, "transliterate values to ASCII")
	rest, err := expectArgs(fs, args, 1, 1)
	if err != nil {
		return err
	}

	song, err := media.ReadSong(afero.NewOsFs(), rest[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
	fields := []struct{ name, value string }{
		{"title", song.PrettyTitle()},
		{"artist", song.Artist},
		{"album", song.Album},
		{"albumartist", song.EffectiveAlbumArtist()},
		{"genre", song.Genre},
		{"composer", song.Composer},
		{"year", song.PrettyYear()},
		{"track", strconv.Itoa(song.Track)},
		{"disc", strconv.Itoa(song.Disc)},
		{"url", song.URL},
	}
	for _, field := range fields {
		value := field.value
		if *ascii {
			value = textutil.UnicodeToASCII(value)
		}
		fmt.Fprintf(w, "%s:\t%s\n", field.name, value)
	}
	return w.Flush()
}

func runCover(e *env, args []string) error {
	fs := newFlagSet("cover")
	dir := fs.StringP("output", "o", ".", "directory for the cover file")
	beside := fs.Bool("beside", false, "save next to the song, named after it")
	rest, err := expectArgs(fs, args, 1, 1)
	if err != nil {
		return err
	}

	osFs := afero.NewOsFs()
	song, err := media.ReadSong(osFs, rest[0])
	if err != nil {
		return err
	}
	data, mimeType, err := media.ReadCover(osFs, rest[0])
	if err != nil {
		return err
	}

	name := media.CoverFilename(song.EffectiveAlbumArtist(), song.Album, mimeType)
	if *beside {
		ext := strings.TrimPrefix(filepath.Ext(name), ".")
		if ext == "" {
			ext = DefaultCoverExtension
		}
		name = textutil.FiddleFileExtension(rest[0], ext)
	} else {
		name = filepath.Join(*dir, name)
	}

	if err := afero.WriteFile(osFs, name, data, 0644); err != nil {
		return fmt.Errorf("failed to write cover: %w", err)
	}
	fmt.Fprintf(e.stdout, "%s (%s, %s)\n", name, mimeType, format.PrettySize(uint64(len(data))))
	return nil
}

// lowerIOPriority moves the calling thread to the idle I/O class for bulk
// file work
func lowerIOPriority() func() {
	runtime.LockOSThread()
	if err := platform.SetThreadIOPriority(platform.IOPriorityIdle); err != nil {
		log.Printf("Failed to set I/O priority of thread %d: %v", platform.ThreadID(), err)
	}
	return runtime.UnlockOSThread
}

func runCopy(e *env, args []string) error {
	rest, err := expectArgs(newFlagSet("copy"), args, 1, 2)
	if err != nil {
		return err
	}
	source := rest[0]
	var destination string
	if len(rest) == 2 {
		destination = rest[1]
	} else if destination = e.prefs().GetCopyDestination(); destination == "" {
		return fmt.Errorf("no destination given and no copy destination saved in settings: %w", errUsage)
	}
	defer lowerIOPriority()()

	ops := fileops.New(afero.NewOsFs())
	info, err := ops.Fs().Stat(source)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", source, err)
	}
	if !info.IsDir() {
		return ops.CopyFile(source, filepath.Join(destination, filepath.Base(source)))
	}
	return ops.CopyRecursive(source, destination)
}

// trasher returns the trash configured in the files section, or the user's
// default one
func (e *env) trasher(fs afero.Fs) fileops.Trasher {
	if e.cfg.Files.TrashDir != "" {
		return fileops.NewFreedesktopTrash(fs, e.cfg.Files.TrashDir)
	}
	return fileops.DefaultTrash(fs)
}

// moveToTrash reports whether rm trashes by default: the configuration file
// when it says so, the saved preference otherwise
func (e *env) moveToTrash() bool {
	if e.cfg.IsSet(config.ConfigMoveToTrash) {
		return e.cfg.Files.MoveToTrash
	}
	return e.prefs().GetMoveToTrash()
}

func runRemove(e *env, args []string) error {
	fs := newFlagSet("rm")
	trash := fs.Bool("trash", config.DefaultMoveToTrash,
		"move to trash instead of deleting (default: the move_to_trash setting, on unless turned off)")
	rest, err := expectArgs(fs, args, 1, -1)
	if err != nil {
		return err
	}
	if !fs.Changed("trash") {
		*trash = e.moveToTrash()
	}
	return e.remove(rest, *trash)
}

func runTrash(e *env, args []string) error {
	rest, err := expectArgs(newFlagSet("trash"), args, 1, -1)
	if err != nil {
		return err
	}
	return e.remove(rest, true)
}

func (e *env) remove(paths []string, trash bool) error {
	defer lowerIOPriority()()

	osFs := afero.NewOsFs()
	trasher := e.trasher(osFs)
	ops := fileops.NewWithTrash(osFs, trasher)

	for _, path := range paths {
		info, err := osFs.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", path, err)
		}
		switch {
		case info.IsDir() && trash:
			err = ops.MoveToTrashRecursive(path)
		case info.IsDir():
			err = ops.RemoveRecursive(path)
		case trash:
			err = trasher.Trash(path)
		default:
			err = osFs.Remove(path)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func runHMAC(e *env, args []string) error {
	fs := newFlagSet("hmac")
	algName := fs.String("alg", "sha256", "hash function: sha256, sha1 or md5")
	key := fs.String("key", "", "secret key")
	hexKey := fs.Bool("hex-key", false, "the key is hex encoded")
	rest, err := expectArgs(fs, args, 1, 1)
	if err != nil {
		return err
	}

	alg, err := hashutil.ParseAlgorithm(*algName)
	if err != nil {
		return err
	}
	keyBytes := []byte(*key)
	if *hexKey {
		if keyBytes, err = hex.DecodeString(*key); err != nil {
			return fmt.Errorf("invalid hex key: %w", err)
		}
	}

	mac, err := hashutil.HMAC(keyBytes, []byte(rest[0]), alg)
	if err != nil {
		return err
	}
	fmt.Fprintln(e.stdout, hex.EncodeToString(mac))
	return nil
}

func runDate(e *env, args []string) error {
	rest, err := expectArgs(newFlagSet("date"), args, 1, -1)
	if err != nil {
		return err
	}

	text := strings.Join(rest, " ")
	t, ok := format.ParseRFC822DateTime(text)
	if !ok {
		return fmt.Errorf("not an RFC 822 date: %q", text)
	}
	fmt.Fprintln(e.stdout, t.Format(time.RFC3339))
	return nil
}

func runSize(e *env, args []string) error {
	rest, err := expectArgs(newFlagSet("size"), args, 1, 1)
	if err != nil {
		return err
	}

	if width, height, ok := strings.Cut(rest[0], "x"); ok {
		w, errW := strconv.Atoi(width)
		h, errH := strconv.Atoi(height)
		if errW != nil || errH != nil {
			return fmt.Errorf("invalid image size %q", rest[0])
		}
		fmt.Fprintln(e.stdout, format.PrettyImageSize(w, h))
		return nil
	}

	size, err := strconv.ParseUint(rest[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid byte count %q: %w", rest[0], err)
	}
	fmt.Fprintln(e.stdout, format.PrettySize(size))
	return nil
}

func runTime(e *env, args []string) error {
	fs := newFlagSet("time")
	wordy := fs.Bool("wordy", false, "spell out days, hours and minutes")
	delta := fs.Bool("delta", false, "always show the sign, e.g. +1:05")
	nanos := fs.Bool("nanos", false, "VALUE counts nanoseconds instead of seconds")
	ago := fs.Bool("ago", false, "treat VALUE as a Unix timestamp and describe how long ago it was")
	until := fs.Bool("until", false, "treat VALUE as a Unix timestamp and describe the date relative to today")
	rest, err := expectArgs(fs, args, 1, 1)
	if err != nil {
		return err
	}

	value, err := strconv.ParseInt(rest[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid value %q: %w", rest[0], err)
	}

	formatter := format.NewFormatter(e.loc)
	switch {
	case *ago:
		fmt.Fprintln(e.stdout, formatter.Ago(value))
	case *until:
		when := formatter.PrettyFutureDate(time.Unix(value, 0))
		if when == "" {
			return fmt.Errorf("%s is in the past", time.Unix(value, 0).Format(time.DateOnly))
		}
		fmt.Fprintln(e.stdout, when)
	case *wordy:
		if value < 0 {
			return fmt.Errorf("negative duration %d", value)
		}
		if *nanos {
			fmt.Fprintln(e.stdout, formatter.WordyTimeNanosec(uint64(value)))
		} else {
			fmt.Fprintln(e.stdout, formatter.WordyTime(uint64(value)))
		}
	case *delta:
		if *nanos {
			value /= int64(time.Second)
		}
		fmt.Fprintln(e.stdout, format.PrettyTimeDelta(int(value)))
	case *nanos:
		fmt.Fprintln(e.stdout, format.PrettyTimeNanosec(value))
	default:
		fmt.Fprintln(e.stdout, format.PrettyTime(int(value)))
	}
	return nil
}

// randomCharsets maps --chars values to generators
var randomCharsets = map[string]func(int) string{
	"alpha": hashutil.RandomAlphaString,
	"alnum": hashutil.RandomAlphanumericString,
	"url":   hashutil.CryptographicRandomString,
}

func runRandom(e *env, args []string) error {
	fs := newFlagSet("random")
	chars := fs.String("chars", "url", "character set: alpha, alnum or url")
	rest, err := expectArgs(fs, args, 1, 1)
	if err != nil {
		return err
	}

	generate, ok := randomCharsets[*chars]
	if !ok {
		return fmt.Errorf("unknown character set %q", *chars)
	}
	n, err := strconv.Atoi(rest[0])
	if err != nil || n <= 0 {
		return fmt.Errorf("invalid length %q", rest[0])
	}
	fmt.Fprintln(e.stdout, generate(n))
	return nil
}

func runDesktop(e *env, args []string) error {
	if _, err := expectArgs(newFlagSet("desktop"), args, 0, 0); err != nil {
		return err
	}
	fmt.Fprintln(e.stdout, platform.DesktopEnvironment())
	return nil
}

// confirm asks on stdin whether to open many directories at once
func (e *env) confirm(files, directories int) bool {
	question := e.loc.PluralWith(i18n.KeyConfirmOpenDirectories, directories, map[string]any{"Songs": files})
	fmt.Fprintf(e.stdout, "%s: %s [y/N] ", e.loc.Text(i18n.KeyShowInFileBrowser), question)

	answer, err := bufio.NewReader(e.stdin).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func runReveal(e *env, args []string) error {
	rest, err := expectArgs(newFlagSet("reveal"), args, 1, -1)
	if err != nil {
		return err
	}

	err = platform.NewFileBrowser().OpenInFileBrowser(rest, e.confirm)
	if errors.Is(err, platform.ErrTooManyDirectories) {
		return fmt.Errorf("%s: %w", e.loc.Text(i18n.KeyTooManySongs), err)
	}
	return err
}

func runOpen(e *env, args []string) error {
	rest, err := expectArgs(newFlagSet("open"), args, 1, 1)
	if err != nil {
		return err
	}
	return platform.NewFileBrowser().OpenWithDefaultApp(rest[0])
}

func runMime(e *env, args []string) error {
	rest, err := expectArgs(newFlagSet("mime"), args, 1, -1)
	if err != nil {
		return err
	}

	osFs := afero.NewOsFs()
	for _, path := range rest {
		mime, err := media.FileMimeType(osFs, path)
		if err != nil {
			return err
		}
		fmt.Fprintf(e.stdout, "%s: %s\n", path, mime)
	}
	return nil
}

func runDiskFree(e *env, args []string) error {
	rest, err := expectArgs(newFlagSet("df"), args, 1, 1)
	if err != nil {
		return err
	}

	capacity := platform.FileSystemCapacity(rest[0])
	if capacity == 0 {
		return fmt.Errorf("no file system information for %s", rest[0])
	}
	fmt.Fprintf(e.stdout, "capacity: %s\nfree: %s\n",
		format.PrettySize(capacity), format.PrettySize(platform.FileSystemFreeSpace(rest[0])))
	return nil
}

func runMac(e *env, args []string) error {
	if _, err := expectArgs(newFlagSet("mac"), args, 0, 0); err != nil {
		return err
	}
	fmt.Fprintln(e.stdout, platform.MacAddress())
	return nil
}

// client returns an HTTP client for the network section of the configuration
func (e *env) client() *netaccess.Client {
	ua := e.cfg.Network.UserAgent
	if ua == "" {
		ua = netaccess.UserAgent(AppName, version)
	}
	return netaccess.NewClient(ua, e.cfg.Network.GetTimeout())
}

func runFetch(e *env, args []string) error {
	fs := newFlagSet("fetch")
	userAgent := fs.String("user-agent", e.cfg.Network.UserAgent, "User-Agent header")
	timeout := fs.Int("timeout", e.cfg.Network.Timeout, "request timeout in seconds")
	output := fs.StringP("output", "o", "", "write the body to this file")
	rest, err := expectArgs(fs, args, 1, 1)
	if err != nil {
		return err
	}

	e.cfg.Network.UserAgent = *userAgent
	e.cfg.Network.Timeout = *timeout
	body, err := e.client().Get(context.Background(), rest[0])
	if err != nil {
		return err
	}

	if *output != "" {
		if err := afero.WriteFile(afero.NewOsFs(), *output, body, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", *output, err)
		}
	}
	fmt.Fprintf(e.stdout, "%s, %s\n", format.PrettySize(uint64(len(body))), media.MimeTypeFromData(body))
	return nil
}

// notifyTemplates returns the saved templates, replaced by non-empty
// --osd-title and --osd-body values for this notification only
func notifyTemplates(fs *pflag.FlagSet, settings *config.Settings) (title, body string) {
	title, body = settings.GetNotificationTitle(), settings.GetNotificationBody()
	if t, _ := fs.GetString("osd-title"); t != "" {
		title = t
	}
	if b, _ := fs.GetString("osd-body"); b != "" {
		body = b
	}
	return title, body
}

func runNotify(e *env, args []string) error {
	fs := newFlagSet("notify")
	fs.String("osd-title", "", "title template for this notification (default: the saved one)")
	fs.String("osd-body", "", "body template for this notification (default: the saved one)")
	sf := addSongFlags(fs)
	rest, err := expectArgs(fs, args, 0, 1)
	if err != nil {
		return err
	}
	if len(rest) == 1 {
		*sf.file = rest[0]
	}

	song, err := sf.song()
	if err != nil {
		return err
	}

	settings := e.prefs()
	settings.Apply(e.cfg)
	title, body := notifyTemplates(fs, settings)

	a := e.app
	notifier := osd.NewNotifier(a, settings)
	sent := false
	a.Lifecycle().SetOnStarted(func() {
		sent = notifier.SongChangedWith(title, body, song)
		time.AfterFunc(NotifyLinger, func() { fyne.Do(a.Quit) })
	})
	a.Run()

	if !sent {
		fmt.Fprintln(e.stdout, "notifications are disabled")
	}
	return nil
}

func runSettings(e *env, args []string) error {
	fs := newFlagSet("settings")
	accent := fs.String("accent", ui.DefaultAccentColor, "accent colour as #rrggbb")
	if _, err := expectArgs(fs, args, 0, 0); err != nil {
		return err
	}

	settings := e.prefs()
	a := e.app
	a.Settings().SetTheme(ui.NewPlayerTheme(*accent))
	e.loc.SetLanguage(settings.GetLanguage())

	w := a.NewWindow(e.loc.Text(i18n.KeySettings))
	w.Resize(fyne.NewSize(ui.SettingsDialogWidth, ui.SettingsDialogHeight))
	ui.NewSettingsDialog(settings, osd.NewNotifier(a, settings), e.loc, w).Show()
	w.ShowAndRun()
	return nil
}

func runFeed(e *env, args []string) error {
	rest, err := expectArgs(newFlagSet("feed"), args, 1, 1)
	if err != nil {
		return err
	}

	var data []byte
	source := rest[0]
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		data, err = e.client().Get(context.Background(), source)
	} else {
		data, err = afero.ReadFile(afero.NewOsFs(), source)
	}
	if err != nil {
		return err
	}

	items, err := feed.ParseItems(bytes.NewReader(data))
	if err != nil {
		return err
	}

	formatter := format.NewFormatter(e.loc)
	w := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
	for _, item := range items {
		published := ""
		if !item.Published.IsZero() {
			published = formatter.Ago(item.Published.Unix())
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", published, item.Title, item.Enclosure)
	}
	return w.Flush()
}
