package ui

// Layout sizing
const (
	SettingsDialogWidth  float32 = 500
	SettingsDialogHeight float32 = 560
	BodyTemplateRows             = 3
)
