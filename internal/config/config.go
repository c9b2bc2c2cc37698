package config

import "time"

// Configuration keys
const (
	ConfigLanguage      = "general.language"
	ConfigNotifyEnabled = "notify.enabled"
	ConfigNotifyTitle   = "notify.title"
	ConfigNotifyBody    = "notify.body"
	ConfigNotifyHTML    = "notify.html"
	ConfigMoveToTrash   = "files.move_to_trash"
	ConfigTrashDir      = "files.trash_dir"
	ConfigUserAgent     = "network.user_agent"
	ConfigTimeout       = "network.timeout"
)

// Config represents the command line configuration file
type Config struct {
	General GeneralConfig `mapstructure:"general"`
	Notify  NotifyConfig  `mapstructure:"notify"`
	Files   FilesConfig   `mapstructure:"files"`
	Network NetworkConfig `mapstructure:"network"`

	// keys given in the file or on the command line
	set map[string]bool
}

// IsSet reports whether key was given explicitly rather than defaulted
func (c *Config) IsSet(key string) bool {
	return c.set[key]
}

// MarkSet records keys as explicitly given
func (c *Config) MarkSet(keys ...string) {
	if c.set == nil {
		c.set = make(map[string]bool)
	}
	for _, key := range keys {
		c.set[key] = true
	}
}

// GeneralConfig contains language settings
type GeneralConfig struct {
	Language string `mapstructure:"language"`
}

// NotifyConfig contains song notification settings
type NotifyConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Title   string `mapstructure:"title"`
	Body    string `mapstructure:"body"`
	HTML    bool   `mapstructure:"html"`
}

// FilesConfig contains file operation settings
type FilesConfig struct {
	MoveToTrash bool   `mapstructure:"move_to_trash"`
	TrashDir    string `mapstructure:"trash_dir"`
}

// NetworkConfig contains HTTP client settings
type NetworkConfig struct {
	UserAgent string `mapstructure:"user_agent"`
	Timeout   int    `mapstructure:"timeout"` // in seconds
}

// GetTimeout returns the HTTP timeout as a time.Duration
func (n *NetworkConfig) GetTimeout() time.Duration {
	return time.Duration(n.Timeout) * time.Second
}

// DefaultConfig returns a Config with the same defaults as Settings
func DefaultConfig() *Config {
	return &Config{
		General: GeneralConfig{
			Language: DefaultLanguage,
		},
		Notify: NotifyConfig{
			Enabled: DefaultNotificationsEnabled,
			Title:   DefaultNotificationTitle,
			Body:    DefaultNotificationBody,
		},
		Files: FilesConfig{
			MoveToTrash: DefaultMoveToTrash,
		},
		Network: NetworkConfig{
			Timeout: 30,
		},
	}
}
