// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Appicon generates the iOS app icon set.

# Usage

	$ go tool appicon [flags] [src [dst]]

This tool resizes the source image src (default "assets/appstorelogo.png")
to every size required by an iOS app and saves them as PNG images, together
with the Contents.json manifest, in the dst directory (default
"ios_app_icons"). The defaults are relative to the repository root, so the
tool can be run from any directory inside it.

Copy the resulting directory into the Xcode asset catalog as
AppIcon.appiconset.

# Flags

	-minify
	    Write Contents.json without indentation.
	-preview file
	    Also write an HTML page that displays every generated icon.
	-watch
	    Regenerate the icons every time the source image changes.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/base/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
