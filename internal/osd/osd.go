// Package osd shows desktop notifications for the playing song.
package osd

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/playerutil/internal/config"
	"github.com/ytget/playerutil/internal/message"
	"github.com/ytget/playerutil/internal/model"
)

// NotificationNewline separates lines in a plain text notification
const NotificationNewline = "\n"

// Notifier sends song notifications through a Fyne app
type Notifier struct {
	app      fyne.App
	settings *config.Settings
}

// NewNotifier creates a notifier reading its templates from settings
func NewNotifier(app fyne.App, settings *config.Settings) *Notifier {
	return &Notifier{app: app, settings: settings}
}

// Notification renders the title and body templates for song
func (n *Notifier) Notification(song *model.Song) *fyne.Notification {
	return render(n.settings.GetNotificationTitle(), n.settings.GetNotificationBody(), song)
}

func render(titleTemplate, bodyTemplate string, song *model.Song) *fyne.Notification {
	title := message.Render(titleTemplate, song, NotificationNewline, false)
	body := message.Render(bodyTemplate, song, NotificationNewline, false)
	return fyne.NewNotification(title, body)
}

// SongChanged shows a notification for song unless notifications are
// disabled. It reports whether one was sent.
func (n *Notifier) SongChanged(song *model.Song) bool {
	return n.SongChangedWith(n.settings.GetNotificationTitle(), n.settings.GetNotificationBody(), song)
}

// SongChangedWith is SongChanged with one-off templates in place of the
// saved ones
func (n *Notifier) SongChangedWith(titleTemplate, bodyTemplate string, song *model.Song) bool {
	if song == nil || !n.settings.GetNotificationsEnabled() {
		return false
	}
	n.app.SendNotification(render(titleTemplate, bodyTemplate, song))
	return true
}

// Preview always shows the notification for song, so templates can be tried
// out while notifications are disabled
func (n *Notifier) Preview(song *model.Song) {
	n.app.SendNotification(n.Notification(song))
}

// PreviewTemplates shows song rendered with templates that are not saved yet
func (n *Notifier) PreviewTemplates(titleTemplate, bodyTemplate string, song *model.Song) {
	n.app.SendNotification(render(titleTemplate, bodyTemplate, song))
}
