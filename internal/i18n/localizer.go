// Package i18n provides translated user-facing strings and system locale
// detection.
package i18n

import (
	"embed"
	"log"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/jeandeaual/go-locale"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// Message IDs
const (
	KeyToday                  = "Today"
	KeyYesterday              = "Yesterday"
	KeyTomorrow               = "Tomorrow"
	KeyNextWeek               = "NextWeek"
	KeyDayCount               = "DayCount"
	KeyDaysAgo                = "DaysAgo"
	KeyInDays                 = "InDays"
	KeyInWeeks                = "InWeeks"
	KeyShortTimeLayout        = "ShortTimeLayout"
	KeyShortDateLayout        = "ShortDateLayout"
	KeyShowInFileBrowser      = "ShowInFileBrowser"
	KeyTooManySongs           = "TooManySongs"
	KeyConfirmOpenDirectories = "ConfirmOpenDirectories"
)

// Settings dialog message IDs
const (
	KeySettings           = "Settings"
	KeyNotifications      = "Notifications"
	KeyShowNotifications  = "ShowNotifications"
	KeyTitleTemplate      = "TitleTemplate"
	KeyBodyTemplate       = "BodyTemplate"
	KeyAvailableVariables = "AvailableVariables"
	KeyLanguage           = "Language"
	KeyMoveToTrash        = "MoveToTrash"
	KeyCopyDestination    = "CopyDestination"
	KeyBrowse             = "Browse"
	KeyPreview            = "Preview"
	KeySave               = "Save"
	KeyCancel             = "Cancel"
	KeySettingsSaved      = "SettingsSaved"
)

// Language codes
const (
	LanguageSystem  = "system"
	LanguageEnglish = "en"
)

//go:embed locales/*.toml
var localeFS embed.FS

var localeFiles = []string{
	"locales/active.en.toml",
	"locales/active.ru.toml",
	"locales/active.pt.toml",
}

// Localizer manages UI text translations
type Localizer struct {
	bundle          *goi18n.Bundle
	localizer       *goi18n.Localizer
	currentLanguage string
}

// NewLocalizer creates a localizer with English selected
func NewLocalizer() *Localizer {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	for _, name := range localeFiles {
		if _, err := bundle.LoadMessageFileFS(localeFS, name); err != nil {
			log.Printf("Failed to load message file %s: %v", name, err)
		}
	}

	l := &Localizer{bundle: bundle}
	l.use(LanguageEnglish)
	return l
}

// SetLanguage sets the current language. "system" resolves the OS locale.
// Unsupported languages leave the current one unchanged.
func (l *Localizer) SetLanguage(lang string) {
	if lang == LanguageSystem {
		lang = SystemLanguage()
	}

	if _, exists := AvailableLanguages()[lang]; exists {
		l.use(lang)
	}
}

// Language returns the current language code
func (l *Localizer) Language() string {
	return l.currentLanguage
}

// Text returns localized text for the given key
func (l *Localizer) Text(key string) string {
	return l.localize(&goi18n.LocalizeConfig{MessageID: key})
}

// Plural returns the plural form of key for count. The message template
// receives the count as {{.Count}}.
func (l *Localizer) Plural(key string, count int) string {
	return l.PluralWith(key, count, nil)
}

// PluralWith is Plural with extra template data.
func (l *Localizer) PluralWith(key string, count int, data map[string]any) string {
	templateData := map[string]any{"Count": count}
	for k, v := range data {
		templateData[k] = v
	}
	return l.localize(&goi18n.LocalizeConfig{
		MessageID:    key,
		PluralCount:  count,
		TemplateData: templateData,
	})
}

func (l *Localizer) localize(cfg *goi18n.LocalizeConfig) string {
	// A message missing from the current language still comes back in
	// English together with a not-found error.
	text, _ := l.localizer.Localize(cfg)
	if text == "" {
		// Final fallback - return key itself
		return cfg.MessageID
	}
	return text
}

func (l *Localizer) use(lang string) {
	l.currentLanguage = lang
	l.localizer = goi18n.NewLocalizer(l.bundle, lang, LanguageEnglish)
}

// AvailableLanguages returns map of available languages with their display names
func AvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// SystemLanguage returns the base language of the OS locale, or English when
// it cannot be determined or is not translated.
func SystemLanguage() string {
	tag, err := locale.GetLocale()
	if err != nil || tag == "" {
		return LanguageEnglish
	}
	return BaseLanguage(tag)
}

// BaseLanguage reduces a locale such as "pt_BR.UTF-8" or "ru-RU" to a
// supported base language code, defaulting to English.
func BaseLanguage(tag string) string {
	if i := strings.IndexAny(tag, ".@"); i >= 0 {
		tag = tag[:i]
	}
	parsed, err := language.Parse(strings.ReplaceAll(tag, "_", "-"))
	if err != nil {
		return LanguageEnglish
	}
	base, _ := parsed.Base()
	if _, ok := AvailableLanguages()[base.String()]; !ok {
		return LanguageEnglish
	}
	return base.String()
}
