// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package devtools

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.astrophena.name/base/testutil"
)

func TestFindRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "assets", "icons")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cases := map[string]string{
		"at root": root,
		"nested":  nested,
	}
	for name, dir := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := findRoot(dir)
			if err != nil {
				t.Fatal(err)
			}
			testutil.AssertEqual(t, got, root)
		})
	}
}

func TestFindRootGoMod(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/app\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := findRoot(filepath.Join(root))
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, got, root)
}

func TestFindRootMissing(t *testing.T) {
	// The filesystem root is assumed to be neither a Git repository nor a Go
	// module.
	if _, err := findRoot(string(filepath.Separator)); !errors.Is(err, ErrNoRoot) {
		t.Fatalf("want %v, got %v", ErrNoRoot, err)
	}
}
