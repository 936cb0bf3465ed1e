// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"

	"go.astrophena.name/appicon/internal/appicon"
	"go.astrophena.name/appicon/internal/devtools"
	"go.astrophena.name/base/cli"
)

func main() { cli.Main(new(app)) }

type app struct {
	minify  bool
	preview string
	watch   bool

	root func() (string, error) // finds the repository root; devtools.Root if nil
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.BoolVar(&a.minify, "minify", false, "Write Contents.json without indentation.")
	fs.StringVar(&a.preview, "preview", "", "Also write an HTML preview page to `file`.")
	fs.BoolVar(&a.watch, "watch", false, "Regenerate the icons every time the source image changes.")
}

func (a *app) Run(ctx context.Context) error {
	args := cli.GetEnv(ctx).Args
	if len(args) > 2 {
		return fmt.Errorf("%w: want at most source image and output directory", cli.ErrInvalidArgs)
	}

	c := &appicon.Config{
		Minify:  a.minify,
		Preview: a.preview,
	}
	if len(args) > 0 {
		c.Src = args[0]
	}
	if len(args) > 1 {
		c.Dst = args[1]
	}

	// Defaults live at the repository root, so only look for it when a path
	// is missing.
	if len(args) < 2 {
		findRoot := a.root
		if findRoot == nil {
			findRoot = devtools.Root
		}
		root, err := findRoot()
		if err != nil {
			return err
		}
		if c.Src == "" {
			c.Src = filepath.Join(root, "assets", "appstorelogo.png")
		}
		c.Dst = filepath.Join(root, "ios_app_icons")
	}

	if a.watch {
		return appicon.Watch(ctx, c)
	}
	return appicon.Generate(ctx, c)
}
