package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

// Notifier shows modal messages to the user
type Notifier interface {
	Warning(title, message string)
	Error(err error)
	Info(title, message string)
	Confirm(title, message string, callback func(bool))
}

// dialogNotifier shows Fyne dialogs on a window
type dialogNotifier struct {
	window fyne.Window
}

// NewDialogNotifier creates a Notifier backed by Fyne dialogs
func NewDialogNotifier(window fyne.Window) Notifier {
	return &dialogNotifier{window: window}
}

func (n *dialogNotifier) Warning(title, message string) {
	dialog.ShowInformation(title, message, n.window)
}

func (n *dialogNotifier) Error(err error) {
	dialog.ShowError(err, n.window)
}

func (n *dialogNotifier) Info(title, message string) {
	dialog.ShowInformation(title, message, n.window)
}

func (n *dialogNotifier) Confirm(title, message string, callback func(bool)) {
	dialog.ShowConfirm(title, message, callback, n.window)
}
