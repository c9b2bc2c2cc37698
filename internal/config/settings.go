package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/playerutil/internal/i18n"
)

// Settings keys for Fyne preferences
const (
	KeyNotificationsEnabled = "osd_enabled"
	KeyNotificationTitle    = "osd_title_template"
	KeyNotificationBody     = "osd_body_template"
	KeyLanguage             = "app_language"
	KeyMoveToTrash          = "move_to_trash"
	KeyCopyDestination      = "copy_destination"
)

// Default values
const (
	DefaultNotificationsEnabled = true
	DefaultNotificationTitle    = "%artist% - %title%"
	DefaultNotificationBody     = "%album%"
	DefaultLanguage             = i18n.LanguageSystem
	DefaultMoveToTrash          = true
)

// Settings manages persistent user preferences
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetNotificationsEnabled returns whether song notifications are shown
func (s *Settings) GetNotificationsEnabled() bool {
	return s.app.Preferences().BoolWithFallback(KeyNotificationsEnabled, DefaultNotificationsEnabled)
}

// SetNotificationsEnabled enables or disables song notifications
func (s *Settings) SetNotificationsEnabled(enabled bool) {
	s.app.Preferences().SetBool(KeyNotificationsEnabled, enabled)
}

// GetNotificationTitle returns the notification title template
func (s *Settings) GetNotificationTitle() string {
	return s.getTemplate(KeyNotificationTitle, DefaultNotificationTitle)
}

// SetNotificationTitle sets the notification title template. An empty
// template restores the default.
func (s *Settings) SetNotificationTitle(template string) {
	s.setTemplate(KeyNotificationTitle, template, DefaultNotificationTitle)
}

// GetNotificationBody returns the notification body template
func (s *Settings) GetNotificationBody() string {
	return s.getTemplate(KeyNotificationBody, DefaultNotificationBody)
}

// SetNotificationBody sets the notification body template. An empty
// template restores the default.
func (s *Settings) SetNotificationBody(template string) {
	s.setTemplate(KeyNotificationBody, template, DefaultNotificationBody)
}

func (s *Settings) getTemplate(key, fallback string) string {
	template := s.app.Preferences().String(key)
	if template == "" {
		s.setTemplate(key, fallback, fallback)
		return fallback
	}
	return template
}

func (s *Settings) setTemplate(key, template, fallback string) {
	if template == "" {
		template = fallback
	}
	s.app.Preferences().SetString(key, template)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetMoveToTrash returns whether deleting songs moves them to the trash
func (s *Settings) GetMoveToTrash() bool {
	return s.app.Preferences().BoolWithFallback(KeyMoveToTrash, DefaultMoveToTrash)
}

// SetMoveToTrash sets whether deleting songs moves them to the trash
func (s *Settings) SetMoveToTrash(trash bool) {
	s.app.Preferences().SetBool(KeyMoveToTrash, trash)
}

// GetCopyDestination returns the last directory songs were copied to
func (s *Settings) GetCopyDestination() string {
	return s.app.Preferences().String(KeyCopyDestination)
}

// SetCopyDestination remembers the directory songs were copied to
func (s *Settings) SetCopyDestination(dir string) {
	s.app.Preferences().SetString(KeyCopyDestination, dir)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	options := map[string]string{
		i18n.LanguageSystem: "System Default",
	}
	for code, name := range i18n.AvailableLanguages() {
		options[code] = name
	}
	return options
}

// Apply stores the explicitly set values of a loaded configuration as
// preferences. Defaulted values leave the saved preferences alone.
func (s *Settings) Apply(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.IsSet(ConfigLanguage) {
		s.SetLanguage(cfg.General.Language)
	}
	if cfg.IsSet(ConfigNotifyEnabled) {
		s.SetNotificationsEnabled(cfg.Notify.Enabled)
	}
	if cfg.IsSet(ConfigNotifyTitle) {
		s.SetNotificationTitle(cfg.Notify.Title)
	}
	if cfg.IsSet(ConfigNotifyBody) {
		s.SetNotificationBody(cfg.Notify.Body)
	}
	if cfg.IsSet(ConfigMoveToTrash) {
		s.SetMoveToTrash(cfg.Files.MoveToTrash)
	}
}
