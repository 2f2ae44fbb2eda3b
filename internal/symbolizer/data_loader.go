package symbolizer

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
)

// DataLoader reads a text file line by line.
type DataLoader struct {
	Path string
}

func NewDataLoader(path string) *DataLoader {
	return &DataLoader{Path: path}
}

func (d *DataLoader) ReadLines() ([]string, error) {
	slog.Debug("Loading lines from file", "path", d.Path)
	f, err := os.Open(d.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.Path, err)
	}
	defer f.Close()

	var lines []string
	s := bufio.NewScanner(f)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", d.Path, err)
	}
	return lines, nil
}
