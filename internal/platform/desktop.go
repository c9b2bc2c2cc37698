package platform

import (
	"log"
	"os"
	"strings"
)

// Desktop environment names
const (
	DesktopKDE     = "KDE"
	DesktopGnome   = "Gnome"
	DesktopXFCE    = "XFCE"
	DesktopUnknown = "Unknown"
)

// DesktopNamesKey holds the desktop names in a session .desktop file
const DesktopNamesKey = "DesktopNames"

// DesktopEnvironment guesses the running desktop environment from the
// session environment variables
func DesktopEnvironment() string {
	return detectDesktopEnvironment(os.Getenv)
}

func detectDesktopEnvironment(getenv func(string) string) string {
	if de := getenv("XDG_CURRENT_DESKTOP"); de != "" {
		return de
	}

	if getenv("KDE_FULL_SESSION") != "" {
		return DesktopKDE
	}
	if getenv("GNOME_DESKTOP_SESSION_ID") != "" {
		return DesktopGnome
	}

	session := getenv("DESKTOP_SESSION")
	if slash := strings.LastIndex(session, "/"); slash != -1 {
		name, _, err := readDesktopKey(session+".desktop", DesktopNamesKey)
		if err != nil {
			log.Printf("Failed to read session file %s.desktop: %v", session, err)
		}
		if name != "" {
			return name
		}
		session = session[slash+1:]
	}

	switch session {
	case "kde":
		return DesktopKDE
	case "gnome":
		return DesktopGnome
	case "xfce":
		return DesktopXFCE
	}
	return DesktopUnknown
}
