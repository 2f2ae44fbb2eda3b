package addrmap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/VladMinzatu/bootloader-symgen/internal/symbols"
)

// Parse reads assignment lines back into symbols. Blank lines and linker
// command file comments are skipped.
func Parse(lines []string) ([]symbols.Accepted, error) {
	var out []symbols.Accepted
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "/*") || strings.HasPrefix(line, "//") {
			continue
		}
		a, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		out = append(out, a)
	}
	return out, nil
}

func parseLine(line string) (symbols.Accepted, error) {
	// example: boot_init=0x4400;
	body, ok := strings.CutSuffix(line, ";")
	if !ok {
		return symbols.Accepted{}, fmt.Errorf("missing ';' terminator in %q", line)
	}
	name, addr, ok := strings.Cut(body, "=")
	name = strings.TrimSpace(name)
	addr = strings.TrimSpace(addr)
	if !ok || name == "" {
		return symbols.Accepted{}, fmt.Errorf("expected NAME=ADDR in %q", line)
	}
	hex, ok := strings.CutPrefix(addr, "0x")
	if !ok {
		hex, ok = strings.CutPrefix(addr, "0X")
	}
	if !ok {
		return symbols.Accepted{}, fmt.Errorf("address %q is not hexadecimal", addr)
	}
	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return symbols.Accepted{}, fmt.Errorf("invalid address %q: %w", addr, err)
	}
	return symbols.Accepted{Name: name, Value: v}, nil
}
