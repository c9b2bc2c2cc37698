package main

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"

	"github.com/ytget/playerutil/internal/config"
)

// runCLI runs the command line with an isolated home directory
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	var out bytes.Buffer
	err := run(args, strings.NewReader(""), &out)
	return out.String(), err
}

// useTestApp backs the saved preferences with an in-memory test app
func useTestApp(t *testing.T) *config.Settings {
	t.Helper()
	a := test.NewTempApp(t)
	saved := newApp
	newApp = func() fyne.App { return a }
	t.Cleanup(func() { newApp = saved })
	return config.NewSettings(a)
}

func TestRun_Version(t *testing.T) {
	out, err := runCLI(t, "--version")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out != "playerutil dev\n" {
		t.Errorf("Unexpected version output %q", out)
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	out, err := runCLI(t, "frobnicate")
	if err == nil {
		t.Fatal("Expected error for unknown command")
	}
	if !strings.Contains(out, "Commands:") {
		t.Errorf("Expected usage to be printed, got %q", out)
	}
}

func TestRun_UsageError(t *testing.T) {
	_, err := runCLI(t, "size")
	if !errors.Is(err, errUsage) {
		t.Fatalf("Expected errUsage, got %v", err)
	}
	if !strings.Contains(err.Error(), "size BYTES") {
		t.Errorf("Expected command usage in error, got %v", err)
	}
}

func TestRun_Render(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name:     "plain",
			args:     []string{"render", "--title", "Karma Police", "--artist", "Radiohead", "%artist% - %title%"},
			expected: "Radiohead - Karma Police\n",
		},
		{
			name:     "html",
			args:     []string{"render", "--html", "--title", "<b>&</b>", "%title%"},
			expected: "&lt;b&gt;&amp;&lt;/b&gt;\n",
		},
		{
			name:     "html from config flag",
			args:     []string{"--html", "render", "--title", "a<b", "%title%"},
			expected: "a&lt;b\n",
		},
		{
			name:     "newline",
			args:     []string{"render", "--newline", "<br/>", "--title", "T", "--album", "A", "%title%%newline%%album%"},
			expected: "T<br/>A\n",
		},
		{
			name:     "missing album drops separator",
			args:     []string{"render", "--title", "Karma Police", "%title% - %album%"},
			expected: "Karma Police\n",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			out, err := runCLI(t, test.args...)
			if err != nil {
				t.Fatalf("run failed: %v", err)
			}
			if out != test.expected {
				t.Errorf("Expected %q, got %q", test.expected, out)
			}
		})
	}
}

func TestRun_HMAC(t *testing.T) {
	const data = "The quick brown fox jumps over the lazy dog"
	tests := []struct {
		alg      string
		expected string
	}{
		{"sha256", "f7bc83f430538424b13298e6aa6fb143ef4d59a14946175997479dbc2d1a3cd8"},
		{"sha1", "de7c9b85b8b78aa6bc8a7a36f70a90701c9db4d9"},
		{"md5", "80070713463e7749b90c2dc24911e275"},
	}

	for _, test := range tests {
		out, err := runCLI(t, "hmac", "--alg", test.alg, "--key", "key", data)
		if err != nil {
			t.Fatalf("hmac %s failed: %v", test.alg, err)
		}
		if out != test.expected+"\n" {
			t.Errorf("hmac %s: expected %s, got %q", test.alg, test.expected, out)
		}
	}

	out, err := runCLI(t, "hmac", "--hex-key", "--key", "6b6579", data)
	if err != nil {
		t.Fatalf("hmac with hex key failed: %v", err)
	}
	if out != tests[0].expected+"\n" {
		t.Errorf("hex key: expected %s, got %q", tests[0].expected, out)
	}

	if _, err := runCLI(t, "hmac", "--alg", "sha512", "--key", "key", data); err == nil {
		t.Error("Expected error for unknown algorithm")
	}
}

func TestRun_Date(t *testing.T) {
	out, err := runCLI(t, "date", "Sat, 04 May 2024 13:37:00 +0000")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	expected := time.Date(2024, time.May, 4, 13, 37, 0, 0, time.Local).Format(time.RFC3339) + "\n"
	if out != expected {
		t.Errorf("Expected %q, got %q", expected, out)
	}

	if _, err := runCLI(t, "date", "yesterday"); err == nil {
		t.Error("Expected error for a non-date")
	}
}

func TestRun_Size(t *testing.T) {
	tests := []struct {
		arg      string
		expected string
	}{
		{"1500", "1.5 KB\n"},
		{"2500000", "2.5 MB\n"},
		{"640x480", "640x480\n"},
	}

	for _, test := range tests {
		out, err := runCLI(t, "size", test.arg)
		if err != nil {
			t.Fatalf("size %s failed: %v", test.arg, err)
		}
		if out != test.expected {
			t.Errorf("size %s: expected %q, got %q", test.arg, test.expected, out)
		}
	}

	if _, err := runCLI(t, "size", "-5"); err == nil {
		t.Error("Expected error for a negative size")
	}
}

func TestRun_Time(t *testing.T) {
	out, err := runCLI(t, "time", "3661")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out != "1:01:01\n" {
		t.Errorf("Expected 1:01:01, got %q", out)
	}

	if _, err := runCLI(t, "time", "--wordy", "-1"); err == nil {
		t.Error("Expected error for a negative wordy time")
	}
}

func TestRun_TimeVariants(t *testing.T) {
	tomorrow := time.Now().AddDate(0, 0, 1).Unix()
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"nanos", []string{"time", "--nanos", "61500000000"}, "1:01\n"},
		{"delta", []string{"time", "--delta", "--", "-65"}, "-1:05\n"},
		{"delta nanos", []string{"time", "--delta", "--nanos", "65000000000"}, "+1:05\n"},
		{"wordy nanos", []string{"--language", "en", "time", "--wordy", "--nanos", "90061000000000"}, "1 day 1:01:01\n"},
		{"until", []string{"--language", "en", "time", "--until", strconv.FormatInt(tomorrow, 10)}, "Tomorrow\n"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			out, err := runCLI(t, test.args...)
			if err != nil {
				t.Fatalf("run failed: %v", err)
			}
			if out != test.expected {
				t.Errorf("Expected %q, got %q", test.expected, out)
			}
		})
	}

	lastWeek := time.Now().AddDate(0, 0, -7).Unix()
	if _, err := runCLI(t, "time", "--until", strconv.FormatInt(lastWeek, 10)); err == nil {
		t.Error("Expected error for a past date")
	}
}

func TestRun_Random(t *testing.T) {
	tests := []struct {
		chars   string
		allowed string
	}{
		{"alpha", "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"},
		{"alnum", "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"},
		{"url", "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-._~"},
	}

	for _, test := range tests {
		out, err := runCLI(t, "random", "--chars", test.chars, "32")
		if err != nil {
			t.Fatalf("random %s failed: %v", test.chars, err)
		}
		value := strings.TrimSuffix(out, "\n")
		if len(value) != 32 {
			t.Errorf("random %s: expected 32 characters, got %q", test.chars, value)
		}
		if strings.Trim(value, test.allowed) != "" {
			t.Errorf("random %s: unexpected characters in %q", test.chars, value)
		}
	}

	if _, err := runCLI(t, "random", "--chars", "hex", "8"); err == nil {
		t.Error("Expected error for an unknown character set")
	}
	if _, err := runCLI(t, "random", "0"); err == nil {
		t.Error("Expected error for a zero length")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
}

func TestRun_Copy(t *testing.T) {
	src := filepath.Join(t.TempDir(), "album")
	writeFile(t, filepath.Join(src, "01.mp3"), "one")
	writeFile(t, filepath.Join(src, "cd2", "02.mp3"), "two")
	dst := filepath.Join(t.TempDir(), "copy")

	if _, err := runCLI(t, "copy", src, dst); err != nil {
		t.Fatalf("copy failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dst, "cd2", "02.mp3"))
	if err != nil {
		t.Fatalf("Copied file missing: %v", err)
	}
	if string(data) != "two" {
		t.Errorf("Expected copied content two, got %q", data)
	}
}

func TestRun_Remove(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "album")
	writeFile(t, filepath.Join(dir, "cd1", "01.mp3"), "one")

	if _, err := runCLI(t, "rm", "--trash=false", dir); err != nil {
		t.Fatalf("rm failed: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("Expected %s to be removed, stat returned %v", dir, err)
	}
}

func TestRun_RemoveTrashesByDefault(t *testing.T) {
	useTestApp(t)
	root := t.TempDir()
	trashDir := filepath.Join(root, "Trash")
	song := filepath.Join(root, "music", "01.mp3")
	writeFile(t, song, "one")

	if _, err := runCLI(t, "--trash-dir", trashDir, "rm", song); err != nil {
		t.Fatalf("rm failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(trashDir, "files", "01.mp3")); err != nil {
		t.Errorf("Expected rm to move the file to trash: %v", err)
	}
}

func TestRun_RemoveFollowsPreference(t *testing.T) {
	settings := useTestApp(t)
	settings.SetMoveToTrash(false)
	root := t.TempDir()
	trashDir := filepath.Join(root, "Trash")
	song := filepath.Join(root, "music", "01.mp3")
	writeFile(t, song, "one")

	if _, err := runCLI(t, "--trash-dir", trashDir, "rm", song); err != nil {
		t.Fatalf("rm failed: %v", err)
	}
	if _, err := os.Stat(song); !os.IsNotExist(err) {
		t.Errorf("Expected %s to be removed, stat returned %v", song, err)
	}
	if _, err := os.Stat(trashDir); !os.IsNotExist(err) {
		t.Errorf("Expected no trash to be used, stat returned %v", err)
	}
}

func TestRun_RemoveConfigOverridesPreference(t *testing.T) {
	settings := useTestApp(t)
	settings.SetMoveToTrash(false)
	root := t.TempDir()
	trashDir := filepath.Join(root, "Trash")
	configPath := filepath.Join(root, "config.toml")
	writeFile(t, configPath, "[files]\nmove_to_trash = true\n")
	song := filepath.Join(root, "music", "01.mp3")
	writeFile(t, song, "one")

	if _, err := runCLI(t, "--config", configPath, "--trash-dir", trashDir, "rm", song); err != nil {
		t.Fatalf("rm failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(trashDir, "files", "01.mp3")); err != nil {
		t.Errorf("Expected the configuration file to win over the preference: %v", err)
	}
	if settings.GetMoveToTrash() {
		t.Error("rm must not change the saved preference")
	}
}

func TestRun_CopyToSavedDestination(t *testing.T) {
	settings := useTestApp(t)
	src := filepath.Join(t.TempDir(), "album")
	writeFile(t, filepath.Join(src, "01.mp3"), "one")
	dst := t.TempDir()
	settings.SetCopyDestination(dst)

	if _, err := runCLI(t, "copy", src); err != nil {
		t.Fatalf("copy failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, "album", "01.mp3")); err != nil {
		t.Errorf("Expected copy in the saved destination: %v", err)
	}
}

func TestRun_CopyWithoutDestination(t *testing.T) {
	useTestApp(t)
	src := filepath.Join(t.TempDir(), "01.mp3")
	writeFile(t, src, "one")

	_, err := runCLI(t, "copy", src)
	if !errors.Is(err, errUsage) {
		t.Fatalf("Expected errUsage without a saved destination, got %v", err)
	}
}

func TestRun_NotifyKeepsSavedPreferences(t *testing.T) {
	settings := useTestApp(t)
	settings.SetNotificationTitle("%title% (%year%)")
	settings.SetNotificationBody("%genre%")
	settings.SetMoveToTrash(false)
	settings.SetLanguage("ru")

	if _, err := runCLI(t, "notify", "--osd-title", "%artist%", "--title", "Karma Police"); err != nil {
		t.Fatalf("notify failed: %v", err)
	}

	if settings.GetNotificationTitle() != "%title% (%year%)" {
		t.Errorf("notify changed the saved title to %s", settings.GetNotificationTitle())
	}
	if settings.GetNotificationBody() != "%genre%" {
		t.Errorf("notify changed the saved body to %s", settings.GetNotificationBody())
	}
	if settings.GetMoveToTrash() {
		t.Error("notify re-enabled move to trash")
	}
	if settings.GetLanguage() != "ru" {
		t.Errorf("notify changed the saved language to %s", settings.GetLanguage())
	}
}

func TestNotifyTemplates(t *testing.T) {
	settings := useTestApp(t)
	settings.SetNotificationTitle("%title%")
	settings.SetNotificationBody("%album%")

	tests := []struct {
		args          []string
		expectedTitle string
		expectedBody  string
	}{
		{nil, "%title%", "%album%"},
		{[]string{"--osd-title", "%artist%"}, "%artist%", "%album%"},
		{[]string{"--osd-body", "%year%"}, "%title%", "%year%"},
		{[]string{"--osd-title", ""}, "%title%", "%album%"},
	}

	for _, tt := range tests {
		fs := newFlagSet("notify")
		fs.String("osd-title", "", "")
		fs.String("osd-body", "", "")
		if err := fs.Parse(tt.args); err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		title, body := notifyTemplates(fs, settings)
		if title != tt.expectedTitle || body != tt.expectedBody {
			t.Errorf("%v: expected %q/%q, got %q/%q", tt.args, tt.expectedTitle, tt.expectedBody, title, body)
		}
	}
}

func TestRun_Trash(t *testing.T) {
	root := t.TempDir()
	trashDir := filepath.Join(root, "Trash")
	song := filepath.Join(root, "music", "01.mp3")
	writeFile(t, song, "one")

	if _, err := runCLI(t, "--trash-dir", trashDir, "trash", song); err != nil {
		t.Fatalf("trash failed: %v", err)
	}
	if _, err := os.Stat(song); !os.IsNotExist(err) {
		t.Errorf("Expected %s to be moved, stat returned %v", song, err)
	}
	if _, err := os.Stat(filepath.Join(trashDir, "files", "01.mp3")); err != nil {
		t.Errorf("Expected file in trash: %v", err)
	}
	if _, err := os.Stat(filepath.Join(trashDir, "info", "01.mp3.trashinfo")); err != nil {
		t.Errorf("Expected trash info: %v", err)
	}
}

func TestRun_Mime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	writeFile(t, path, "plain words\n")

	out, err := runCLI(t, "mime", path)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out, "text/plain") {
		t.Errorf("Expected text/plain, got %q", out)
	}
}

func TestRun_Feed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.xml")
	writeFile(t, path, `<rss><channel>
<item><title>Episode 1</title><enclosure url="https://example.com/1.mp3"/></item>
<item><title>Episode 2</title></item>
</channel></rss>`)

	out, err := runCLI(t, "feed", path)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 items, got %q", out)
	}
	if !strings.Contains(lines[0], "Episode 1") || !strings.Contains(lines[0], "https://example.com/1.mp3") {
		t.Errorf("Unexpected first item %q", lines[0])
	}
}

// taggedMP3 builds an ID3v2.3 tag with text frames and a PNG picture,
// followed by an MPEG frame header
func taggedMP3(texts map[string]string, png []byte) []byte {
	frame := func(id string, payload []byte) []byte {
		b := binary.BigEndian.AppendUint32([]byte(id), uint32(len(payload)))
		return append(append(b, 0, 0), payload...)
	}

	var body []byte
	for id, text := range texts {
		body = append(body, frame(id, append([]byte{0}, text...))...)
	}
	apic := append([]byte{0}, "image/png"...)
	apic = append(apic, 0, 3, 0)
	body = append(body, frame("APIC", append(apic, png...))...)
	body = append(body, make([]byte, 32)...)

	size := len(body)
	out := []byte{'I', 'D', '3', 3, 0, 0,
		byte(size >> 21 & 0x7f), byte(size >> 14 & 0x7f), byte(size >> 7 & 0x7f), byte(size & 0x7f)}
	out = append(out, body...)
	return append(out, 0xff, 0xfb, 0x90, 0x00)
}

func TestRun_TagsAndCover(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
	dir := t.TempDir()
	song := filepath.Join(dir, "karma.mp3")
	writeFile(t, song, string(taggedMP3(map[string]string{
		"TIT2": "Karma Police",
		"TPE1": "Radioh\xe9ad", // ISO-8859-1
		"TALB": "OK Computer",
	}, png)))

	out, err := runCLI(t, "tags", "--ascii", song)
	if err != nil {
		t.Fatalf("tags failed: %v", err)
	}
	if !strings.Contains(out, "Karma Police") || !strings.Contains(out, "Radiohead") {
		t.Errorf("Unexpected tags output %q", out)
	}

	out, err = runCLI(t, "render", "--file", song, "--album", "Override", "%artist% / %album%")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if out != "Radiohéad / Override\n" {
		t.Errorf("Unexpected render output %q", out)
	}

	if _, err := runCLI(t, "cover", "--beside", song); err != nil {
		t.Fatalf("cover failed: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "karma.png"))
	if err != nil {
		t.Fatalf("Cover missing: %v", err)
	}
	if !bytes.Equal(data, png) {
		t.Errorf("Cover content differs")
	}
}
