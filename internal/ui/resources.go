package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	log "github.com/sirupsen/logrus"
)

// LoadImageResource loads an image from path, falling back to the theme's
// broken-image icon when the file cannot be read
func LoadImageResource(path string) fyne.Resource {
	res, err := fyne.LoadResourceFromPath(path)
	if err != nil {
		log.WithError(err).WithField("path", path).Warn("Failed to load image")
		return theme.BrokenImageIcon()
	}
	return res
}
