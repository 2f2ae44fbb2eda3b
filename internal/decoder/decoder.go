package decoder

import (
	"bytes"
	"debug/elf"
	"errors"
	"fmt"
	"log/slog"

	"github.com/VladMinzatu/bootloader-symgen/internal/symbols"
)

// ErrNotELF is returned when the input does not decode as an ELF container.
var ErrNotELF = errors.New("input was not an elf file")

// Decoder turns the raw bytes of a binary container into its symbol records,
// in symbol table order.
type Decoder interface {
	Decode(data []byte) ([]symbols.Record, error)
}

type ELFDecoder struct{}

func NewELFDecoder() *ELFDecoder {
	return &ELFDecoder{}
}

func (d *ELFDecoder) Decode(data []byte) ([]symbols.Record, error) {
	data, err := maybeDecompress(data)
	if err != nil {
		return nil, err
	}
	ef, err := elf.NewFile(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotELF, err)
	}
	defer ef.Close()

	syms, err := ef.Symbols()
	if errors.Is(err, elf.ErrNoSymbols) {
		slog.Debug("ELF has no symbol table", "machine", ef.Machine)
		return []symbols.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read .symtab: %w", err)
	}

	records := make([]symbols.Record, 0, len(syms))
	for _, s := range syms {
		records = append(records, symbols.Record{
			Name:    s.Name,
			Binding: bindingOf(elf.ST_BIND(s.Info)),
			Kind:    kindOf(elf.ST_TYPE(s.Info)),
			Value:   s.Value,
		})
	}
	slog.Debug("Decoded ELF symbol table", "machine", ef.Machine, "class", ef.Class, "symbols", len(records))
	return records, nil
}

func bindingOf(b elf.SymBind) symbols.Binding {
	switch b {
	case elf.STB_LOCAL:
		return symbols.BindLocal
	case elf.STB_GLOBAL:
		return symbols.BindGlobal
	case elf.STB_WEAK:
		return symbols.BindWeak
	default:
		return symbols.BindOther
	}
}

func kindOf(t elf.SymType) symbols.Kind {
	switch t {
	case elf.STT_NOTYPE:
		return symbols.KindNoType
	case elf.STT_FUNC:
		return symbols.KindFunc
	case elf.STT_OBJECT:
		return symbols.KindObject
	case elf.STT_COMMON:
		return symbols.KindCommon
	case elf.STT_SECTION:
		return symbols.KindSection
	case elf.STT_FILE:
		return symbols.KindFile
	default:
		return symbols.KindOther
	}
}
