// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Package appicon generates iOS app icon sets.

# Output Layout

Generate reads a single source image and writes into the destination
directory one PNG for every entry of the icon table, plus a Contents.json
manifest that Xcode reads when the directory is placed into an asset catalog
as AppIcon.appiconset:

	ios_app_icons/
	  Contents.json
	  icon-20x20@2x.png
	  icon-20x20@3x.png
	  ...
	  icon-1024x1024.png

The source should be square and at least 1024x1024 pixels. It can be in
any format registered with the image package: PNG, JPEG, GIF, BMP, TIFF
and WebP are supported out of the box.
*/
package appicon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"go.astrophena.name/base/logger"

	"github.com/disintegration/imaging"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	mjson "github.com/tdewolff/minify/v2/json"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrSourceMissing is returned by Generate when the source image does not
// exist.
var ErrSourceMissing = errors.New("source image not found")

// ManifestName is the name of the manifest file written to the destination
// directory.
const ManifestName = "Contents.json"

// Config represents a generation configuration.
type Config struct {
	// Src is the path to the source image. If empty, uses
	// assets/appstorelogo.png.
	Src string
	// Dst is the directory where to write icons and the manifest. If empty,
	// uses ios_app_icons.
	Dst string
	// Minify determines if the manifest should be written without
	// indentation.
	Minify bool
	// Preview is the path of an HTML page that displays all generated icons.
	// If empty, no page is written.
	Preview string
}

func (c *Config) setDefaults() {
	if c.Src == "" {
		c.Src = filepath.Join("assets", "appstorelogo.png")
	}
	if c.Dst == "" {
		c.Dst = "ios_app_icons"
	}
}

// Contents is the manifest of an icon set.
type Contents struct {
	Images []Image `json:"images"`
	Info   Info    `json:"info"`
}

// Image describes a single icon in the manifest.
type Image struct {
	Size     string `json:"size"`     // nominal size in points, e.g. 83.5x83.5
	Idiom    string `json:"idiom"`    // device class, e.g. iphone
	Filename string `json:"filename"` // file name relative to the icon set
	Scale    string `json:"scale"`    // display density, e.g. 2x

	width, height int // in pixels
}

// Info holds the manifest metadata.
type Info struct {
	Version int    `json:"version"`
	Author  string `json:"author"`
}

// iconSpec is one row of the icon table: a nominal size rendered at one or
// more scales for a device class.
type iconSpec struct {
	points float64
	scales []int
	idiom  string
}

var icons = []iconSpec{
	// iPhone.
	{20, []int{2, 3}, "iphone"},
	{29, []int{2, 3}, "iphone"},
	{40, []int{2, 3}, "iphone"},
	{60, []int{2, 3}, "iphone"},
	// iPad.
	{20, []int{1, 2}, "ipad"},
	{29, []int{1, 2}, "ipad"},
	{40, []int{1, 2}, "ipad"},
	{76, []int{1, 2}, "ipad"},
	{83.5, []int{2}, "ipad"},
	// App Store.
	{1024, []int{1}, "ios-marketing"},
}

// images expands the icon table into manifest entries in table order.
func images() []Image {
	var imgs []Image
	for _, spec := range icons {
		pt := strconv.FormatFloat(spec.points, 'f', -1, 64)
		size := pt + "x" + pt
		for _, scale := range spec.scales {
			px := int(spec.points * float64(scale))
			filename := "icon-" + size + ".png"
			if scale != 1 {
				filename = fmt.Sprintf("icon-%s@%dx.png", size, scale)
			}
			imgs = append(imgs, Image{
				Size:     size,
				Idiom:    spec.idiom,
				Filename: filename,
				Scale:    strconv.Itoa(scale) + "x",
				width:    px,
				height:   px,
			})
		}
	}
	return imgs
}

// Generate generates an icon set based on the provided [Config].
func Generate(ctx context.Context, c *Config) error {
	c.setDefaults()

	if _, err := os.Stat(c.Src); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrSourceMissing, c.Src)
	} else if err != nil {
		return err
	}

	if err := os.MkdirAll(c.Dst, 0o755); err != nil {
		return err
	}

	logger.Info(ctx, "generating icons", slog.String("src", c.Src))

	src, err := imaging.Open(c.Src, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("%s: failed to decode: %w", c.Src, err)
	}

	contents := &Contents{
		Info: Info{Version: 1, Author: "xcode"},
	}
	for _, img := range images() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeIcon(src, img, filepath.Join(c.Dst, img.Filename)); err != nil {
			return err
		}
		logger.Info(ctx, "generated icon",
			slog.String("file", img.Filename),
			slog.Int("width", img.width),
			slog.Int("height", img.height),
		)
		contents.Images = append(contents.Images, img)
	}

	if err := writeManifest(contents, filepath.Join(c.Dst, ManifestName), c.Minify); err != nil {
		return err
	}
	if c.Preview != "" {
		if err := writePreview(contents, c.Dst, c.Preview); err != nil {
			return err
		}
	}

	logger.Info(ctx, "generated icon set",
		slog.Int("count", len(contents.Images)),
		slog.String("dir", c.Dst),
	)
	return nil
}

func writeIcon(src image.Image, img Image, path string) error {
	resized := imaging.Resize(src, img.width, img.height, imaging.Lanczos)
	if err := imaging.Save(resized, path); err != nil {
		return fmt.Errorf("%s: failed to write %dx%d icon: %w", path, img.width, img.height, err)
	}
	return nil
}

func writeManifest(contents *Contents, path string, minified bool) error {
	b, err := json.MarshalIndent(contents, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	if minified {
		if b, err = newMin().Bytes("application/json", b); err != nil {
			return err
		}
	}
	return os.WriteFile(path, b, 0o644)
}

type min struct {
	m *minify.M
}

func newMin() *min {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.Add("text/html", &html.Minifier{
		KeepDocumentTags:    true,
		KeepDefaultAttrVals: true,
		KeepEndTags:         true,
	})
	m.AddFunc("application/json", mjson.Minify)

	return &min{m: m}
}

func (m *min) Bytes(mediaType string, b []byte) ([]byte, error) {
	return m.m.Bytes(mediaType, b)
}
