// Package media reads song metadata and detects content types of media
// files.
package media

import (
	"encoding/hex"
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/dhowden/tag"
	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"

	"github.com/ytget/playerutil/internal/hashutil"
	"github.com/ytget/playerutil/internal/model"
)

// DefaultCoverMimeType is assumed for embedded pictures without a type
const DefaultCoverMimeType = "image/jpeg"

// MimeTypeFromData returns the MIME type of data, or "" for empty data
func MimeTypeFromData(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	return mimetype.Detect(data).String()
}

// FileMimeType detects the MIME type of the file at path from its content
func FileMimeType(fs afero.Fs, path string) (string, error) {
	f, err := fs.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return "", fmt.Errorf("failed to detect type of %s: %w", path, err)
	}
	return mtype.String(), nil
}

// ReadSong reads the tags of the audio file at path into a song. The URL is
// the file:// URL of the absolute path. Length, counters and rating are left
// unset since tags do not carry them.
func ReadSong(fs afero.Fs, path string) (*model.Song, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	f, err := fs.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read tags: %w", err)
	}

	track, _ := m.Track()
	disc, _ := m.Disc()
	return &model.Song{
		Title:       m.Title(),
		Album:       m.Album(),
		Artist:      m.Artist(),
		AlbumArtist: m.AlbumArtist(),
		Track:       track,
		Disc:        disc,
		Year:        m.Year(),
		Genre:       m.Genre(),
		Composer:    m.Composer(),
		URL:         (&url.URL{Scheme: "file", Path: filepath.ToSlash(absPath)}).String(),
		Rating:      model.RatingUnset,
	}, nil
}

// ReadCover returns the embedded picture of the audio file at path and its
// MIME type. The type is sniffed from the data when the tag does not name
// one.
func ReadCover(fs afero.Fs, path string) ([]byte, string, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read tags: %w", err)
	}

	pic := m.Picture()
	if pic == nil || len(pic.Data) == 0 {
		return nil, "", fmt.Errorf("no picture in tags of %s", path)
	}

	contentType := pic.MIMEType
	if contentType == "" {
		contentType = MimeTypeFromData(pic.Data)
	}
	if contentType == "" {
		contentType = DefaultCoverMimeType
	}
	return pic.Data, contentType, nil
}

// CoverFilename names the cache file of an album cover: the hex SHA-1 of the
// lowercased artist and album plus the extension of mimeType
func CoverFilename(artist, album, mimeType string) string {
	name := hex.EncodeToString(hashutil.SHA1CoverHash(artist, album))
	if mtype := mimetype.Lookup(mimeType); mtype != nil {
		return name + mtype.Extension()
	}
	return name
}
