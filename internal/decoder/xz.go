package decoder

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/ulikunitz/xz"
)

var xzMagic = []byte{0xFD, '7', 'z', 'X', 'Z', 0x00}

// maybeDecompress unpacks xz compressed images and passes anything else through.
func maybeDecompress(data []byte) ([]byte, error) {
	if !bytes.HasPrefix(data, xzMagic) {
		return data, nil
	}
	r, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open xz stream: %w", err)
	}
	var out bytes.Buffer
	if _, err := io.Copy(&out, r); err != nil {
		return nil, fmt.Errorf("decompress xz stream: %w", err)
	}
	slog.Debug("Decompressed xz input", "compressed", len(data), "size", out.Len())
	return out.Bytes(), nil
}
