// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package devtools contains common functionality for development tools.
package devtools

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.astrophena.name/base/unwrap"
)

// ErrNoRoot is returned by Root when no repository root was found.
var ErrNoRoot = errors.New("not inside a repository (no .git or go.mod found)")

// Root returns the repository root that contains the current working
// directory. The root is the closest directory, going up from the working
// directory, that has a .git entry or a go.mod file.
func Root() (string, error) {
	return findRoot(unwrap.Value(os.Getwd()))
}

func findRoot(dir string) (string, error) {
	for {
		for _, marker := range []string{".git", "go.mod"} {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			} else if !errors.Is(err, fs.ErrNotExist) {
				return "", err
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoRoot
		}
		dir = parent
	}
}
