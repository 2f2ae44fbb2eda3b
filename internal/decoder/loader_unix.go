//go:build unix

package decoder

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/sys/unix"
)

// Loader reads binary images from disk.
type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

// Load returns the full contents of path. Regular files are mapped read-only
// and copied out, so the returned slice outlives the mapping.
func (l *Loader) Load(path string) ([]byte, error) {
	slog.Debug("Loading binary image", "path", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !st.Mode().IsRegular() || st.Size() == 0 {
		return readAll(f, path)
	}

	mapped, err := unix.Mmap(int(f.Fd()), 0, int(st.Size()), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		slog.Debug("mmap failed, falling back to read", "path", path, "error", err)
		return readAll(f, path)
	}
	defer unix.Munmap(mapped)

	data := make([]byte, len(mapped))
	copy(data, mapped)
	return data, nil
}

func readAll(r io.Reader, path string) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
