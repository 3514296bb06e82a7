package platform

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Placeholder image geometry
const (
	LogoSize     = 256
	IconSize     = 64
	LogoText     = "FlatLauncher"
	LogoTextX    = 10
	LogoTextY    = 10
	IconInsetMin = 16
	IconInsetMax = 48
)

// PlaceholderBackground is the fill color of generated images
var PlaceholderBackground = color.RGBA{R: 73, G: 109, B: 137, A: 255}

// EnsurePlaceholderAssets creates dir and writes logoName and iconName into it
// when they are missing. Existing files are never touched. It returns the
// paths it created.
func EnsurePlaceholderAssets(dir, logoName, iconName string) ([]string, error) {
	if err := CreateDirectoryIfNotExists(dir); err != nil {
		return nil, fmt.Errorf("failed to create assets directory: %w", err)
	}

	var created []string
	for _, asset := range []struct {
		name   string
		render func() image.Image
	}{
		{logoName, PlaceholderLogo},
		{iconName, PlaceholderIcon},
	} {
		path := filepath.Join(dir, asset.name)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := writePNG(path, asset.render()); err != nil {
			return created, err
		}
		log.WithField("path", path).Info("Created placeholder image")
		created = append(created, path)
	}
	return created, nil
}

// PlaceholderLogo renders the square logo with the launcher name in white
func PlaceholderLogo() image.Image {
	img := filled(LogoSize)
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
		// Dot is the baseline, so shift down by the ascent to put the text's top at LogoTextY
		Dot: fixed.P(LogoTextX, LogoTextY+basicfont.Face7x13.Ascent),
	}
	d.DrawString(LogoText)
	return img
}

// PlaceholderIcon renders the window icon: a white square on the background color
func PlaceholderIcon() image.Image {
	img := filled(IconSize)
	square := image.Rect(IconInsetMin, IconInsetMin, IconInsetMax+1, IconInsetMax+1)
	draw.Draw(img, square, image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}

func filled(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(PlaceholderBackground), image.Point{}, draw.Src)
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, DefaultFilePermissions)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
