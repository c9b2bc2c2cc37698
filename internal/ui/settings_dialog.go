package ui

import (
	"sort"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/playerutil/internal/config"
	"github.com/ytget/playerutil/internal/i18n"
	"github.com/ytget/playerutil/internal/message"
	"github.com/ytget/playerutil/internal/model"
	"github.com/ytget/playerutil/internal/osd"
)

// PreviewSong is rendered by the preview button
var PreviewSong = &model.Song{
	Title:       "Karma Police",
	Artist:      "Radiohead",
	Album:       "OK Computer",
	AlbumArtist: "Radiohead",
	Track:       6,
	Disc:        1,
	Year:        1997,
	Genre:       "Alternative",
	Length:      4*time.Minute + 21*time.Second,
	URL:         "file:///music/Radiohead/OK%20Computer/06%20Karma%20Police.flac",
	Rating:      0.8,
}

// SettingsDialog edits the notification and file preferences
type SettingsDialog struct {
	settings *config.Settings
	notifier *osd.Notifier
	loc      *i18n.Localizer
	window   fyne.Window
	dialog   *dialog.ConfirmDialog

	// UI components
	enabledCheck     *widget.Check
	titleEntry       *widget.Entry
	bodyEntry        *widget.Entry
	languageSelect   *widget.Select
	trashCheck       *widget.Check
	copyDestEntry    *widget.Entry
	languageCodes    map[string]string
	languageLabelFor map[string]string
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, notifier *osd.Notifier, loc *i18n.Localizer, window fyne.Window) *SettingsDialog {
	sd := &SettingsDialog{
		settings: settings,
		notifier: notifier,
		loc:      loc,
		window:   window,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) createUI() {
	sd.enabledCheck = widget.NewCheck(sd.loc.Text(i18n.KeyShowNotifications), nil)

	sd.titleEntry = widget.NewEntry()
	sd.titleEntry.SetPlaceHolder(config.DefaultNotificationTitle)
	sd.bodyEntry = widget.NewMultiLineEntry()
	sd.bodyEntry.SetPlaceHolder(config.DefaultNotificationBody)
	sd.bodyEntry.SetMinRowsVisible(BodyTemplateRows)

	variables := widget.NewLabel(strings.Join(message.Variables(), " "))
	variables.Wrapping = fyne.TextWrapWord

	previewBtn := widget.NewButton(sd.loc.Text(i18n.KeyPreview), sd.onPreview)

	// Language selection, shown by label
	sd.languageCodes = make(map[string]string)
	sd.languageLabelFor = make(map[string]string)
	labels := []string{}
	for code, label := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[label] = code
		sd.languageLabelFor[code] = label
		labels = append(labels, label)
	}
	sort.Strings(labels)
	sd.languageSelect = widget.NewSelect(labels, nil)

	sd.trashCheck = widget.NewCheck(sd.loc.Text(i18n.KeyMoveToTrash), nil)

	sd.copyDestEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(sd.loc.Text(i18n.KeyBrowse), sd.onBrowseDirectory)
	copyDestRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.copyDestEntry)

	form := container.NewVBox(
		widget.NewLabel(sd.loc.Text(i18n.KeyNotifications)),
		widget.NewSeparator(),
		sd.enabledCheck,

		widget.NewLabel(sd.loc.Text(i18n.KeyTitleTemplate)+":"),
		sd.titleEntry,

		widget.NewLabel(sd.loc.Text(i18n.KeyBodyTemplate)+":"),
		sd.bodyEntry,

		widget.NewLabel(sd.loc.Text(i18n.KeyAvailableVariables)+":"),
		variables,
		previewBtn,

		widget.NewSeparator(),
		widget.NewLabel(sd.loc.Text(i18n.KeyLanguage)+":"),
		sd.languageSelect,

		widget.NewSeparator(),
		sd.trashCheck,
		widget.NewLabel(sd.loc.Text(i18n.KeyCopyDestination)+":"),
		copyDestRow,
	)

	sd.dialog = dialog.NewCustomConfirm(
		sd.loc.Text(i18n.KeySettings),
		sd.loc.Text(i18n.KeySave),
		sd.loc.Text(i18n.KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

func (sd *SettingsDialog) loadCurrentSettings() {
	sd.enabledCheck.SetChecked(sd.settings.GetNotificationsEnabled())
	sd.titleEntry.SetText(sd.settings.GetNotificationTitle())
	sd.bodyEntry.SetText(sd.settings.GetNotificationBody())
	sd.languageSelect.SetSelected(sd.languageLabelFor[sd.settings.GetLanguage()])
	sd.trashCheck.SetChecked(sd.settings.GetMoveToTrash())
	sd.copyDestEntry.SetText(sd.settings.GetCopyDestination())
}

func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.copyDestEntry.SetText(uri.Path())
	}, sd.window)
}

// onPreview shows the templates as currently typed, saved or not
func (sd *SettingsDialog) onPreview() {
	title := sd.titleEntry.Text
	if title == "" {
		title = config.DefaultNotificationTitle
	}
	body := sd.bodyEntry.Text
	if body == "" {
		body = config.DefaultNotificationBody
	}
	sd.notifier.PreviewTemplates(title, body, PreviewSong)
}

func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	sd.settings.SetNotificationsEnabled(sd.enabledCheck.Checked)
	// Empty templates restore the defaults
	sd.settings.SetNotificationTitle(sd.titleEntry.Text)
	sd.settings.SetNotificationBody(sd.bodyEntry.Text)

	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
		sd.loc.SetLanguage(code)
	}

	sd.settings.SetMoveToTrash(sd.trashCheck.Checked)
	sd.settings.SetCopyDestination(strings.TrimSpace(sd.copyDestEntry.Text))

	dialog.ShowInformation(sd.loc.Text(i18n.KeySettings), sd.loc.Text(i18n.KeySettingsSaved), sd.window)
}
