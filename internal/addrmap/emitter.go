package addrmap

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/VladMinzatu/bootloader-symgen/internal/symbols"
)

// Line renders one linker symbol assignment: NAME=0xHEX;
func Line(a symbols.Accepted) string {
	return a.Name + "=0x" + strings.ToUpper(strconv.FormatUint(a.Value, 16)) + ";"
}

// Emit renders the accepted symbols in order, one line each, without
// trailing newlines.
func Emit(accepted []symbols.Accepted) []string {
	lines := make([]string, 0, len(accepted))
	for _, a := range accepted {
		lines = append(lines, Line(a))
	}
	return lines
}

func Write(w io.Writer, accepted []symbols.Accepted) error {
	bw := bufio.NewWriter(w)
	for _, line := range Emit(accepted) {
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func WriteFile(filename string, accepted []symbols.Accepted) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return Write(f, accepted)
}
