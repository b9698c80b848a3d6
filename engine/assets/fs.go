package assets

import (
	"fmt"
	"os"
	"slices"

	"github.com/db47h/ofs"
)

// NewFS overlays the given directories into a single read-only file system.
// Directories that do not exist are skipped. Earlier directories win.
func NewFS(dirs ...string) (ofs.FileSystem, error) {
	var found []string
	for _, d := range dirs {
		if fi, err := os.Stat(d); err == nil && fi.IsDir() {
			found = append(found, d)
		}
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("none of the asset dirs %q exist", dirs)
	}
	var ovl ofs.Overlay
	// The overlay searches the most recently added directory first.
	slices.Reverse(found)
	if err := ovl.Add(false, found...); err != nil {
		return nil, fmt.Errorf("asset dirs %q: %w", found, err)
	}
	return &ovl, nil
}
