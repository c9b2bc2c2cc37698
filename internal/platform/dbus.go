package platform

import (
	"context"
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"
)

// FileManager1 D-Bus interface
const (
	FileManager1Name      = "org.freedesktop.FileManager1"
	FileManager1Path      = "/org/freedesktop/FileManager1"
	FileManager1ShowItems = FileManager1Name + ".ShowItems"
	DBusCallTimeout       = 5 * time.Second
)

// ShowItemsDBus asks the session's FileManager1 service to open the parent
// folders of uris with the items selected
func ShowItemsDBus(uris []string) error {
	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), DBusCallTimeout)
	defer cancel()

	obj := conn.Object(FileManager1Name, dbus.ObjectPath(FileManager1Path))
	if call := obj.CallWithContext(ctx, FileManager1ShowItems, 0, uris, ""); call.Err != nil {
		return fmt.Errorf("%s: %w", FileManager1ShowItems, call.Err)
	}
	return nil
}
