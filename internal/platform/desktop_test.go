package platform

import (
	"path/filepath"
	"testing"
)

func TestDesktopEnvironment(t *testing.T) {
	sessions := t.TempDir()
	writeFile(t, filepath.Join(sessions, "plasma.desktop"), "[Desktop Entry]\nName=Plasma\nDesktopNames=KDE\n")
	writeFile(t, filepath.Join(sessions, "gnome.desktop"), "[Desktop Entry]\nName=GNOME\n")

	tests := []struct {
		name     string
		env      map[string]string
		expected string
	}{
		{"xdg current desktop", map[string]string{"XDG_CURRENT_DESKTOP": "X-Cinnamon", "KDE_FULL_SESSION": "true"}, "X-Cinnamon"},
		{"kde full session", map[string]string{"KDE_FULL_SESSION": "true", "GNOME_DESKTOP_SESSION_ID": "this-is-deprecated"}, DesktopKDE},
		{"gnome session id", map[string]string{"GNOME_DESKTOP_SESSION_ID": "this-is-deprecated"}, DesktopGnome},
		{"session kde", map[string]string{"DESKTOP_SESSION": "kde"}, DesktopKDE},
		{"session gnome", map[string]string{"DESKTOP_SESSION": "gnome"}, DesktopGnome},
		{"session xfce", map[string]string{"DESKTOP_SESSION": "xfce"}, DesktopXFCE},
		{"session file names", map[string]string{"DESKTOP_SESSION": filepath.Join(sessions, "plasma")}, "KDE"},
		{"session file without names", map[string]string{"DESKTOP_SESSION": filepath.Join(sessions, "gnome")}, DesktopGnome},
		{"missing session file", map[string]string{"DESKTOP_SESSION": filepath.Join(sessions, "xfce")}, DesktopXFCE},
		{"unknown session", map[string]string{"DESKTOP_SESSION": "i3"}, DesktopUnknown},
		{"nothing set", map[string]string{}, DesktopUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectDesktopEnvironment(func(key string) string { return tt.env[key] })
			if got != tt.expected {
				t.Errorf("DesktopEnvironment(%v) = %q, expected %q", tt.env, got, tt.expected)
			}
		})
	}
}
