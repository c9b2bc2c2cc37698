package config

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config file lookup
const (
	ConfigName = "config"
	ConfigType = "toml"
	ConfigDir  = "$HOME/.config/playerutil"
)

// flagKeys maps command line flags to configuration keys
var flagKeys = map[string]string{
	"language":   ConfigLanguage,
	"osd-title":  ConfigNotifyTitle,
	"osd-body":   ConfigNotifyBody,
	"html":       ConfigNotifyHTML,
	"trash-dir":  ConfigTrashDir,
	"user-agent": ConfigUserAgent,
	"timeout":    ConfigTimeout,
}

var configKeys = []string{
	ConfigLanguage,
	ConfigNotifyEnabled,
	ConfigNotifyTitle,
	ConfigNotifyBody,
	ConfigNotifyHTML,
	ConfigMoveToTrash,
	ConfigTrashDir,
	ConfigUserAgent,
	ConfigTimeout,
}

// Load reads config.toml from path, or from the default search paths when
// path is empty. A missing file in the search paths is not an error. Flags
// that are set on the command line override file values. Keys taken from
// the file or from a changed flag are reported by Config.IsSet.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType(ConfigType)
		v.AddConfigPath(ConfigDir)
		v.AddConfigPath(".")
	}

	// Set defaults from DefaultConfig
	defaults := DefaultConfig()
	v.SetDefault(ConfigLanguage, defaults.General.Language)
	v.SetDefault(ConfigNotifyEnabled, defaults.Notify.Enabled)
	v.SetDefault(ConfigNotifyTitle, defaults.Notify.Title)
	v.SetDefault(ConfigNotifyBody, defaults.Notify.Body)
	v.SetDefault(ConfigNotifyHTML, defaults.Notify.HTML)
	v.SetDefault(ConfigMoveToTrash, defaults.Files.MoveToTrash)
	v.SetDefault(ConfigTrashDir, defaults.Files.TrashDir)
	v.SetDefault(ConfigUserAgent, defaults.Network.UserAgent)
	v.SetDefault(ConfigTimeout, defaults.Network.Timeout)

	if flags != nil {
		for name, key := range flagKeys {
			if flag := flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		log.Printf("No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// viper.IsSet also counts defaults, so look at the sources directly
	for _, key := range configKeys {
		if v.InConfig(key) {
			cfg.MarkSet(key)
		}
	}
	if flags != nil {
		for name, key := range flagKeys {
			if flags.Changed(name) {
				cfg.MarkSet(key)
			}
		}
	}
	return &cfg, nil
}
