package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/VladMinzatu/bootloader-symgen/internal/symbols"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, symbols.DefaultClassifierConfig(), cfg.ClassifierConfig())
	require.False(t, cfg.AllowDuplicates)
	require.Equal(t, FormatLD, cfg.Format)
}

func TestParse(t *testing.T) {
	cfg, err := Parse(strings.NewReader(`
exclude: [main, C$$EXIT, abort, _c_int00, isr_trap]
reserved_prefix: "__"
allow_duplicates: true
format: pprof
`))
	require.NoError(t, err)
	require.Equal(t, []string{"main", "C$$EXIT", "abort", "_c_int00", "isr_trap"}, cfg.Exclude)
	require.Equal(t, "__", cfg.ReservedPrefix)
	require.True(t, cfg.AllowDuplicates)
	require.Equal(t, FormatPprof, cfg.Format)

	cc := cfg.ClassifierConfig()
	require.True(t, cc.Excluded["isr_trap"])
	require.False(t, cc.Excluded["boot_init"])
}

func TestParse_PartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader("allow_duplicates: true\n"))
	require.NoError(t, err)
	require.Equal(t, Default().Exclude, cfg.Exclude)
	require.Equal(t, "_", cfg.ReservedPrefix)
	require.Equal(t, FormatLD, cfg.Format)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestParse_EmptyExcludeList(t *testing.T) {
	cfg, err := Parse(strings.NewReader("exclude: []\n"))
	require.NoError(t, err)
	require.Empty(t, cfg.Exclude)
	require.Empty(t, cfg.ClassifierConfig().Excluded)
}

func TestParse_Errors(t *testing.T) {
	for name, input := range map[string]string{
		"unknown_key":    "exclude: [main]\nexcludes: [abort]\n",
		"unknown_format": "format: elf\n",
		"bad_yaml":       "exclude: [main\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(input))
			require.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: otlp\n"), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, FormatOtlp, cfg.Format)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
