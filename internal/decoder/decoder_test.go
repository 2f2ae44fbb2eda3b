package decoder

import (
	"debug/elf"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/VladMinzatu/bootloader-symgen/internal/decoder/elftest"
	"github.com/VladMinzatu/bootloader-symgen/internal/symbols"
)

var fixtureSymbols = []elftest.Symbol{
	{Name: "boot.c", Bind: elf.STB_LOCAL, Type: elf.STT_FILE},
	{Name: "helper", Bind: elf.STB_LOCAL, Type: elf.STT_FUNC, Value: 0x4500},
	{Name: "boot_init", Bind: elf.STB_GLOBAL, Type: elf.STT_FUNC, Value: 0x4400},
	{Name: "boot_state", Bind: elf.STB_GLOBAL, Type: elf.STT_OBJECT, Value: 0x1C00},
	{Name: "rx_buf", Bind: elf.STB_GLOBAL, Type: elf.STT_COMMON, Value: 0x1C40},
	{Name: "isr_default", Bind: elf.STB_WEAK, Type: elf.STT_FUNC, Value: 0x4600},
	{Name: ".text", Bind: elf.STB_LOCAL, Type: elf.STT_SECTION, Value: 0x4400},
	{Name: "label", Bind: elf.STB_GLOBAL, Type: elf.STT_NOTYPE, Value: 0x4700},
}

func TestELFDecoder_Decode(t *testing.T) {
	records, err := NewELFDecoder().Decode(elftest.Build(fixtureSymbols))
	require.NoError(t, err)

	want := []symbols.Record{
		{Name: "boot.c", Binding: symbols.BindLocal, Kind: symbols.KindFile},
		{Name: "helper", Binding: symbols.BindLocal, Kind: symbols.KindFunc, Value: 0x4500},
		{Name: "boot_init", Binding: symbols.BindGlobal, Kind: symbols.KindFunc, Value: 0x4400},
		{Name: "boot_state", Binding: symbols.BindGlobal, Kind: symbols.KindObject, Value: 0x1C00},
		{Name: "rx_buf", Binding: symbols.BindGlobal, Kind: symbols.KindCommon, Value: 0x1C40},
		{Name: "isr_default", Binding: symbols.BindWeak, Kind: symbols.KindFunc, Value: 0x4600},
		{Name: ".text", Binding: symbols.BindLocal, Kind: symbols.KindSection, Value: 0x4400},
		{Name: "label", Binding: symbols.BindGlobal, Kind: symbols.KindNoType, Value: 0x4700},
	}
	require.Equal(t, want, records)
}

func TestELFDecoder_NoSymbolTable(t *testing.T) {
	records, err := NewELFDecoder().Decode(elftest.BuildWithoutSymtab())
	require.NoError(t, err)
	require.NotNil(t, records)
	require.Empty(t, records)
}

func TestELFDecoder_NotELF(t *testing.T) {
	for name, data := range map[string][]byte{
		"empty":     nil,
		"text":      []byte("boot_init=0x4400;\n"),
		"truncated": elftest.Build(fixtureSymbols)[:20],
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewELFDecoder().Decode(data)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrNotELF), "got %v", err)
		})
	}
}

func TestELFDecoder_XZCompressed(t *testing.T) {
	raw := elftest.Build(fixtureSymbols)
	plain, err := NewELFDecoder().Decode(raw)
	require.NoError(t, err)

	compressed, err := NewELFDecoder().Decode(elftest.Compress(raw))
	require.NoError(t, err)
	require.Equal(t, plain, compressed)
}

func TestELFDecoder_CorruptXZ(t *testing.T) {
	data := elftest.Compress(elftest.Build(fixtureSymbols))
	_, err := NewELFDecoder().Decode(data[:len(xzMagic)+4])
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrNotELF))
}

func TestBindingAndKindMapping(t *testing.T) {
	require.Equal(t, symbols.BindOther, bindingOf(elf.STB_LOOS))
	require.Equal(t, symbols.KindOther, kindOf(elf.STT_TLS))
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	image := elftest.Build(fixtureSymbols)
	path := filepath.Join(dir, "boot.out")
	require.NoError(t, os.WriteFile(path, image, 0o644))

	data, err := NewLoader().Load(path)
	require.NoError(t, err)
	require.Equal(t, image, data)

	empty := filepath.Join(dir, "empty.out")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	data, err = NewLoader().Load(empty)
	require.NoError(t, err)
	require.Empty(t, data)
}

func TestLoader_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.out")
	_, err := NewLoader().Load(path)
	require.Error(t, err)
	require.True(t, errors.Is(err, os.ErrNotExist))
	require.Contains(t, err.Error(), path)
}
