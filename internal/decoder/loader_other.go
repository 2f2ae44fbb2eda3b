//go:build !unix

package decoder

import (
	"fmt"
	"log/slog"
	"os"
)

type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

func (l *Loader) Load(path string) ([]byte, error) {
	slog.Debug("Loading binary image", "path", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
