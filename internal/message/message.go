// Package message renders notification text templates such as
// "%artist% - %title%" against a song.
package message

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ytget/playerutil/internal/model"
)

// Newline is the placeholder replaced by the caller-supplied line break
const Newline = "%newline%"

var (
	placeholderPattern   = regexp.MustCompile(`%[a-z]+%`)
	danglingSeparator    = regexp.MustCompile(` - (>|$)`)
	danglingSeparatorLen = len(" - ")
)

// htmlEscaper matches the characters escaped for rich-text notifications.
// Single quotes are left alone.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

type valueFunc func(s *model.Song) string

// placeholders maps each supported placeholder to its song value
var placeholders = map[string]valueFunc{
	"%title%":        (*model.Song).PrettyTitle,
	"%album%":        func(s *model.Song) string { return s.Album },
	"%artist%":       func(s *model.Song) string { return s.Artist },
	"%albumartist%":  (*model.Song).EffectiveAlbumArtist,
	"%track%":        func(s *model.Song) string { return strconv.Itoa(s.Track) },
	"%disc%":         func(s *model.Song) string { return strconv.Itoa(s.Disc) },
	"%year%":         (*model.Song).PrettyYear,
	"%originalyear%": (*model.Song).PrettyOriginalYear,
	"%genre%":        func(s *model.Song) string { return s.Genre },
	"%composer%":     func(s *model.Song) string { return s.Composer },
	"%performer%":    func(s *model.Song) string { return s.Performer },
	"%grouping%":     func(s *model.Song) string { return s.Grouping },
	"%length%":       (*model.Song).PrettyLength,
	"%filename%":     (*model.Song).BaseFilename,
	"%url%":          func(s *model.Song) string { return s.URL },
	"%playcount%":    func(s *model.Song) string { return strconv.Itoa(s.PlayCount) },
	"%skipcount%":    func(s *model.Song) string { return strconv.Itoa(s.SkipCount) },
	"%rating%":       (*model.Song).PrettyRating,
}

// variableOrder lists placeholders the way they are presented to users
var variableOrder = []string{
	"%title%", "%album%", "%artist%", "%albumartist%", "%track%", "%disc%",
	"%year%", "%originalyear%", "%genre%", "%composer%", "%performer%",
	"%grouping%", "%length%", "%filename%", "%url%", "%playcount%",
	"%skipcount%", "%rating%", Newline,
}

// Render replaces every %name% placeholder in tmpl with the song's value.
//
// Unknown placeholders are left as they are. %newline% becomes newline and is
// never escaped. With htmlEscape set, substituted values are HTML-escaped
// while the literal template text is kept verbatim. Finally the first " - "
// left dangling before ">" or the end of the text is removed, so
// "%artist% - %album%" renders as just the artist when the album is empty.
func Render(tmpl string, song *model.Song, newline string, htmlEscape bool) string {
	out := placeholderPattern.ReplaceAllStringFunc(tmpl, func(variable string) string {
		return replaceVariable(variable, song, newline, htmlEscape)
	})

	if loc := danglingSeparator.FindStringIndex(out); loc != nil {
		out = out[:loc[0]] + out[loc[0]+danglingSeparatorLen:]
	}
	return out
}

func replaceVariable(variable string, song *model.Song, newline string, htmlEscape bool) string {
	if variable == Newline {
		return newline
	}

	value := variable
	if fn, ok := placeholders[variable]; ok {
		value = fn(song)
	}

	if htmlEscape {
		value = htmlEscaper.Replace(value)
	}
	return value
}

// Variables returns the supported placeholders, including %newline%
func Variables() []string {
	vars := make([]string, len(variableOrder))
	copy(vars, variableOrder)
	return vars
}
