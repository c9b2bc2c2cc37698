// Package ui holds colour helpers, the Fyne theme and the settings dialog
// for notification templates and file handling.
package ui
