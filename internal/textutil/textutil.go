// Package textutil contains small string helpers for tags, file names and
// SQL statement building.
package textutil

import (
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// htmlEntities are decoded one after another in this order, so an entity
// exposed by decoding "&amp;" is decoded too
var htmlEntities = [][2]string{
	{"&amp;", "&"},
	{"&#38;", "&"},
	{"&quot;", `"`},
	{"&#34;", `"`},
	{"&apos;", "'"},
	{"&#39;", "'"},
	{"&lt;", "<"},
	{"&#60;", "<"},
	{"&gt;", ">"},
	{"&#62;", ">"},
	{"&#x27;", "'"},
}

// asciiSubstitutes covers letters that do not decompose into a base letter
var asciiSubstitutes = map[rune]string{
	'Æ': "AE", 'æ': "ae",
	'Ø': "O", 'ø': "o",
	'Œ': "OE", 'œ': "oe",
	'ß': "ss",
	'Đ': "D", 'đ': "d",
	'Ł': "L", 'ł': "l",
	'Þ': "TH", 'þ': "th",
	'‘': "'", '’': "'",
	'“': `"`, '”': `"`,
	'–': "-", '—': "-",
}

// DecodeHTMLEntities decodes the handful of entities web services put in
// tag values. Other entities are left alone.
func DecodeHTMLEntities(text string) string {
	for _, entity := range htmlEntities {
		text = strings.ReplaceAll(text, entity[0], entity[1])
	}
	return text
}

// UnicodeToASCII transliterates text to ASCII. Accents are stripped, a few
// ligatures are spelled out, and anything left over becomes '_'.
func UnicodeToASCII(text string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, text)
	if err != nil {
		stripped = text
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		switch {
		case r <= unicode.MaxASCII:
			b.WriteRune(r)
		case asciiSubstitutes[r] != "":
			b.WriteString(asciiSubstitutes[r])
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Prepend returns a copy of list with text prepended to every element
func Prepend(text string, list []string) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = text + s
	}
	return out
}

// Updateify turns column names into "col = :col" assignments for UPDATE
// statements.
func Updateify(list []string) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s + " = :" + s
	}
	return out
}

// PathWithoutFilenameExtension strips the extension of the last path
// element, if it has one.
func PathWithoutFilenameExtension(filename string) string {
	if ext := path.Ext(filename); ext != "" {
		return strings.TrimSuffix(filename, ext)
	}
	return filename
}

// FiddleFileExtension replaces the extension of filename with newExtension
func FiddleFileExtension(filename, newExtension string) string {
	return PathWithoutFilenameExtension(filename) + "." + newExtension
}
