// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package appicon

import (
	"bytes"
	"embed"
	"html/template"
	"os"
	"path/filepath"
)

//go:embed templates/*.html
var tplFS embed.FS

var previewTpl = template.Must(template.ParseFS(tplFS, "templates/preview.html"))

type previewIcon struct {
	Image
	Src           string // relative to the preview page
	Width, Height int
}

// writePreview renders an HTML page at path that displays every icon of
// contents, which were written to dir.
func writePreview(contents *Contents, dir, path string) error {
	base := filepath.Dir(path)
	// Rel needs both paths to be either absolute or relative.
	absBase, err := filepath.Abs(base)
	if err != nil {
		return err
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	data := struct {
		Dir   string
		Icons []previewIcon
	}{Dir: dir}
	for _, img := range contents.Images {
		rel, err := filepath.Rel(absBase, filepath.Join(absDir, img.Filename))
		if err != nil {
			return err
		}
		data.Icons = append(data.Icons, previewIcon{
			Image:  img,
			Src:    filepath.ToSlash(rel),
			Width:  img.width,
			Height: img.height,
		})
	}

	var buf bytes.Buffer
	if err := previewTpl.ExecuteTemplate(&buf, "preview.html", data); err != nil {
		return err
	}
	minified, err := newMin().Bytes("text/html", buf.Bytes())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(base, 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, minified, 0o644)
}
