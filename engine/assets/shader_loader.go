package assets

import (
	"fmt"
	"io"

	"github.com/db47h/ofs"
)

// LoadShader reads a WGSL source file. It is called on every pipeline build,
// so edits on disk are picked up by a reload.
func LoadShader(fsys ofs.FileSystem, name string) (string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return "", fmt.Errorf("load shader %q: %w", name, err)
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("read shader %q: %w", name, err)
	}
	return string(b), nil
}
