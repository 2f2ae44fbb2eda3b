package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/VladMinzatu/bootloader-symgen/internal/symbols"
)

const (
	FormatLD          = "ld"
	FormatPprof       = "pprof"
	FormatOtlp        = "otlp"
	FormatOtlpRequest = "otlp-request"
)

var Formats = []string{FormatLD, FormatPprof, FormatOtlp, FormatOtlpRequest}

type Config struct {
	// Exclude lists C runtime symbols that must never get a fixed address.
	Exclude         []string `yaml:"exclude"`
	ReservedPrefix  string   `yaml:"reserved_prefix"`
	AllowDuplicates bool     `yaml:"allow_duplicates"`
	Format          string   `yaml:"format"`
}

func Default() Config {
	return Config{
		Exclude:        symbols.DefaultExcluded(),
		ReservedPrefix: symbols.DefaultReservedPrefix,
		Format:         FormatLD,
	}
}

// Load reads a YAML file on top of the defaults. Keys missing from the file
// keep their default value.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func Parse(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	for _, f := range Formats {
		if c.Format == f {
			return nil
		}
	}
	return fmt.Errorf("unknown output format %q", c.Format)
}

func (c Config) ClassifierConfig() symbols.ClassifierConfig {
	excluded := make(map[string]bool, len(c.Exclude))
	for _, name := range c.Exclude {
		excluded[name] = true
	}
	return symbols.ClassifierConfig{Excluded: excluded, ReservedPrefix: c.ReservedPrefix}
}
