package model

import (
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/ytget/playerutil/internal/format"
)

// RatingUnset marks a song that was never rated
const RatingUnset float32 = -1

// Song is a snapshot of song metadata. Values are copied in by the caller and
// never mutated by this module.
type Song struct {
	Title        string
	Album        string
	Artist       string
	AlbumArtist  string
	Track        int
	Disc         int
	Year         int
	OriginalYear int
	Genre        string
	Composer     string
	Performer    string
	Grouping     string
	Length       time.Duration
	URL          string // file:// URL for local files
	PlayCount    int
	SkipCount    int
	Rating       float32 // 0.0 to 1.0, RatingUnset if never rated
}

// PrettyTitle returns title, filename, or URL in order of preference
func (s *Song) PrettyTitle() string {
	if s.Title != "" {
		return s.Title
	}
	if name := s.BaseFilename(); name != "" {
		return name
	}
	return s.URL
}

// EffectiveAlbumArtist returns the album artist, falling back to the artist
func (s *Song) EffectiveAlbumArtist() string {
	if s.AlbumArtist != "" {
		return s.AlbumArtist
	}
	return s.Artist
}

// PrettyYear returns the year, or "" when unknown
func (s *Song) PrettyYear() string {
	return prettyYear(s.Year)
}

// PrettyOriginalYear returns the original release year, or "" when unknown
func (s *Song) PrettyOriginalYear() string {
	return prettyYear(s.OriginalYear)
}

// PrettyLength returns the length formatted as m:ss or h:mm:ss
func (s *Song) PrettyLength() string {
	if s.Length <= 0 {
		return ""
	}
	return format.PrettyDuration(s.Length)
}

// BaseFilename returns the last path element of the song URL
func (s *Song) BaseFilename() string {
	if s.URL == "" {
		return ""
	}
	p := s.URL
	if u, err := url.Parse(s.URL); err == nil && u.Path != "" {
		p = u.Path
	}
	base := path.Base(p)
	if base == "/" || base == "." {
		return ""
	}
	return base
}

// PrettyRating returns the rating in stars (0 to 5)
func (s *Song) PrettyRating() string {
	if s.Rating < 0 {
		return "0"
	}
	return strconv.Itoa(int(s.Rating * 5))
}

func prettyYear(year int) string {
	if year <= 0 {
		return ""
	}
	return strconv.Itoa(year)
}
