// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"go.astrophena.name/appicon/internal/appicon"
	"go.astrophena.name/appicon/internal/devtools"
	"go.astrophena.name/base/cli"
	"go.astrophena.name/base/cli/clitest"
	"go.astrophena.name/base/testutil"
)

func writeSource(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 64, 64))); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func checkManifest(dir string) func(*testing.T, *app) {
	return func(t *testing.T, _ *app) {
		b, err := os.ReadFile(filepath.Join(dir, appicon.ManifestName))
		if err != nil {
			t.Fatal(err)
		}
		contents := testutil.UnmarshalJSON[appicon.Contents](t, b)
		testutil.AssertEqual(t, len(contents.Images), 18)
	}
}

func TestRunOutsideRepo(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	writeSource(t, src)
	dst := filepath.Join(dir, "out")

	clitest.Run(t, func(t *testing.T) *app {
		return &app{root: func() (string, error) { return "", devtools.ErrNoRoot }}
	}, map[string]clitest.Case[*app]{
		"too many arguments": {
			Args:    []string{src, dst, "extra"},
			WantErr: cli.ErrInvalidArgs,
		},
		"explicit paths": {
			Args:      []string{src, dst},
			CheckFunc: checkManifest(dst),
		},
		"default destination needs root": {
			Args:    []string{src},
			WantErr: devtools.ErrNoRoot,
		},
	})
}

func TestRunDefaults(t *testing.T) {
	root := t.TempDir()
	writeSource(t, filepath.Join(root, "assets", "appstorelogo.png"))
	custom := filepath.Join(root, "custom.png")
	writeSource(t, custom)

	clitest.Run(t, func(t *testing.T) *app {
		return &app{root: func() (string, error) { return root, nil }}
	}, map[string]clitest.Case[*app]{
		"default paths": {
			CheckFunc: checkManifest(filepath.Join(root, "ios_app_icons")),
		},
	})

	// A separate root, so the runs don't write into the same directory.
	other := t.TempDir()
	clitest.Run(t, func(t *testing.T) *app {
		return &app{root: func() (string, error) { return other, nil }}
	}, map[string]clitest.Case[*app]{
		"explicit source, default destination": {
			Args:      []string{"-minify", custom},
			CheckFunc: checkManifest(filepath.Join(other, "ios_app_icons")),
		},
	})
}

func TestRunMissingDefaultSource(t *testing.T) {
	root := t.TempDir()

	clitest.Run(t, func(t *testing.T) *app {
		return &app{root: func() (string, error) { return root, nil }}
	}, map[string]clitest.Case[*app]{
		"missing source": {
			WantErr: appicon.ErrSourceMissing,
			CheckFunc: func(t *testing.T, _ *app) {
				if _, err := os.Stat(filepath.Join(root, "ios_app_icons")); !os.IsNotExist(err) {
					t.Fatalf("output directory must not be created, stat returned %v", err)
				}
			},
		},
	})
}
