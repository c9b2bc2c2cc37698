package message

import (
	"strings"
	"testing"
	"time"

	"github.com/ytget/playerutil/internal/model"
)

func newTestSong() *model.Song {
	return &model.Song{
		Title:        "Paranoid Android",
		Album:        "OK Computer",
		Artist:       "Radiohead",
		Track:        2,
		Disc:         1,
		Year:         1997,
		OriginalYear: 0,
		Genre:        "Rock",
		Composer:     "Radiohead",
		Length:       6*time.Minute + 27*time.Second,
		URL:          "file:///music/Radiohead/02%20Paranoid%20Android.flac",
		PlayCount:    42,
		SkipCount:    1,
		Rating:       0.8,
	}
}

func TestRender(t *testing.T) {
	song := newTestSong()

	tests := []struct {
		name     string
		tmpl     string
		expected string
	}{
		{"plain text", "Now playing", "Now playing"},
		{"artist and title", "%artist% - %title%", "Radiohead - Paranoid Android"},
		{"album artist fallback", "%albumartist%", "Radiohead"},
		{"numbers", "%disc%.%track% (%year%)", "1.2 (1997)"},
		{"length and counts", "%length% %playcount%/%skipcount%", "6:27 42/1"},
		{"rating", "%rating% stars", "4 stars"},
		{"filename", "%filename%", "02 Paranoid Android.flac"},
		{"url", "%url%", "file:///music/Radiohead/02%20Paranoid%20Android.flac"},
		{"unknown placeholder", "x%bogus%y", "x%bogus%y"},
		{"uppercase is not a placeholder", "%ARTIST%", "%ARTIST%"},
		{"repeated placeholder", "%artist%/%artist%", "Radiohead/Radiohead"},
		{"unterminated", "%artist", "%artist"},
		{"empty original year", "[%originalyear%]", "[]"},
		{"newline", "%artist%%newline%%album%", "Radiohead\nOK Computer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Render(tt.tmpl, song, "\n", false); result != tt.expected {
				t.Errorf("Render(%q) = %q, expected %q", tt.tmpl, result, tt.expected)
			}
		})
	}
}

func TestRender_NewlineBypassesEscaping(t *testing.T) {
	song := newTestSong()

	if got := Render("%newline%", song, "\n", true); got != "\n" {
		t.Errorf("Render(%%newline%%) = %q, expected %q", got, "\n")
	}
	if got := Render("%title%%newline%%album%", song, "<br/>", true); got != "Paranoid Android<br/>OK Computer" {
		t.Errorf("Render() = %q", got)
	}
}

func TestRender_EscapesOnlySubstitutedValues(t *testing.T) {
	song := &model.Song{Artist: `Simon & "Garfunkel"`, Title: "<b>Title</b>"}

	got := Render("<i>%artist%</i> & %title%", song, "\n", true)
	expected := "<i>Simon &amp; &quot;Garfunkel&quot;</i> & &lt;b&gt;Title&lt;/b&gt;"
	if got != expected {
		t.Errorf("Render() = %q, expected %q", got, expected)
	}

	got = Render("%artist%", song, "\n", false)
	if got != song.Artist {
		t.Errorf("Render() without escaping = %q, expected %q", got, song.Artist)
	}
}

func TestRender_StripsDanglingSeparator(t *testing.T) {
	song := &model.Song{Artist: "Artist", Title: "Title"}

	tests := []struct {
		tmpl     string
		expected string
	}{
		{"%artist% - %album%", "Artist"},
		{"<b>%artist% - %album%</b>", "<b>Artist - </b>"},
		{"%artist% - %album%>", "Artist>"},
		{"%artist% - %title%", "Artist - Title"},
		// Only the first dangling separator is removed
		{"%album% - >%album% - ", "> - "},
	}

	for _, test := range tests {
		if result := Render(test.tmpl, song, "\n", false); result != test.expected {
			t.Errorf("Render(%q) = %q, expected %q", test.tmpl, result, test.expected)
		}
	}
}

func TestRender_Deterministic(t *testing.T) {
	song := newTestSong()
	tmpl := "%artist% - %album%%newline%%title% (%length%) %bogus%"

	first := Render(tmpl, song, "<br/>", true)
	for i := 0; i < 10; i++ {
		if got := Render(tmpl, song, "<br/>", true); got != first {
			t.Fatalf("Render is not deterministic: %q != %q", got, first)
		}
	}
}

func TestVariables(t *testing.T) {
	vars := Variables()

	if len(vars) != len(placeholders)+1 {
		t.Fatalf("Expected %d variables, got %d", len(placeholders)+1, len(vars))
	}
	for _, v := range vars {
		if v == Newline {
			continue
		}
		if _, ok := placeholders[v]; !ok {
			t.Errorf("Variable %s has no value function", v)
		}
		if !strings.HasPrefix(v, "%") || !strings.HasSuffix(v, "%") {
			t.Errorf("Variable %s is not a placeholder", v)
		}
	}

	// Callers get their own copy
	vars[0] = "changed"
	if Variables()[0] != "%title%" {
		t.Error("Variables() should return a copy")
	}
}
