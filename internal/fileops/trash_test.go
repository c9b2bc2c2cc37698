package fileops

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/ini.v1"
)

func newTestTrash(fs afero.Fs) *FreedesktopTrash {
	trash := NewFreedesktopTrash(fs, "/home/user/.local/share/Trash")
	trash.now = func() time.Time { return time.Date(2024, time.May, 4, 13, 37, 0, 0, time.Local) }
	return trash
}

func TestFreedesktopTrash_Trash(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/music/My Song #1.mp3", []byte("data"), 0644))
	trash := newTestTrash(fs)

	require.NoError(t, trash.Trash("/music/My Song #1.mp3"))

	exists, _ := afero.Exists(fs, "/music/My Song #1.mp3")
	assert.False(t, exists)

	data, err := afero.ReadFile(fs, filepath.Join(trash.Dir(), TrashFilesDir, "My Song #1.mp3"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))

	raw, err := afero.ReadFile(fs, filepath.Join(trash.Dir(), TrashInfoDir, "My Song #1.mp3"+TrashInfoExt))
	require.NoError(t, err)
	assert.Equal(t, "[Trash Info]\nPath=/music/My%20Song%20%231.mp3\nDeletionDate=2024-05-04T13:37:00\n", string(raw))
	assert.True(t, ini.PrettyFormat, "ini formatting globals must stay untouched")

	cfg, err := ini.Load(raw)
	require.NoError(t, err)
	section := cfg.Section(TrashInfoSection)
	assert.Equal(t, "/music/My%20Song%20%231.mp3", section.Key("Path").String())
	assert.Equal(t, "2024-05-04T13:37:00", section.Key("DeletionDate").String())
}

func TestFreedesktopTrash_NameCollision(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/a/song.mp3", []byte("a"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/b/song.mp3", []byte("b"), 0644))
	trash := newTestTrash(fs)

	require.NoError(t, trash.Trash("/a/song.mp3"))
	require.NoError(t, trash.Trash("/b/song.mp3"))

	entries, err := afero.ReadDir(fs, filepath.Join(trash.Dir(), TrashFilesDir))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	for _, e := range entries {
		assert.True(t, strings.HasPrefix(e.Name(), "song"), "unexpected name %s", e.Name())
		assert.True(t, strings.HasSuffix(e.Name(), ".mp3"), "extension must be kept: %s", e.Name())
		info := filepath.Join(trash.Dir(), TrashInfoDir, e.Name()+TrashInfoExt)
		exists, _ := afero.Exists(fs, info)
		assert.True(t, exists, "missing info file %s", info)
	}
}

func TestFreedesktopTrash_MissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	trash := newTestTrash(fs)

	require.Error(t, trash.Trash("/nothing/here.mp3"))

	infos, err := afero.ReadDir(fs, filepath.Join(trash.Dir(), TrashInfoDir))
	require.NoError(t, err)
	assert.Empty(t, infos, "info file must be removed when the move fails")
}

func TestHomeTrashDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/custom/data")
	dir, err := HomeTrashDir()
	require.NoError(t, err)
	assert.Equal(t, "/custom/data/Trash", dir)
}
