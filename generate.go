package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/VladMinzatu/bootloader-symgen/internal/addrmap"
	"github.com/VladMinzatu/bootloader-symgen/internal/config"
	"github.com/VladMinzatu/bootloader-symgen/internal/decoder"
	"github.com/VladMinzatu/bootloader-symgen/internal/exporter"
	"github.com/VladMinzatu/bootloader-symgen/internal/pprof"
	"github.com/VladMinzatu/bootloader-symgen/internal/symbols"
)

type generateParams struct {
	input           string
	output          string
	configPath      string
	format          string
	exclude         []string
	allowDuplicates bool
}

func addGenerateParams(cmd *kingpin.CmdClause) *generateParams {
	p := &generateParams{}
	cmd.Flag("input", "Bootloader ELF image.").Short('i').Default("../wisp5-bootloader/Debug/wisp5-bootloader.out").StringVar(&p.input)
	cmd.Flag("output", "Where to write the address map.").Short('o').Default("./bootloader_symbols.cmd").StringVar(&p.output)
	cmd.Flag("config", "YAML configuration file.").StringVar(&p.configPath)
	cmd.Flag("format", "Output format, overrides the config file.").EnumVar(&p.format, config.Formats...)
	cmd.Flag("exclude", "Additional symbol name to leave out of the map. Repeatable.").StringsVar(&p.exclude)
	cmd.Flag("allow-duplicates", "Warn instead of failing when accepted symbols share a name.").BoolVar(&p.allowDuplicates)
	return p
}

// Flags take precedence over the config file, which takes precedence over the defaults.
func (p *generateParams) resolveConfig() (config.Config, error) {
	cfg := config.Default()
	if p.configPath != "" {
		var err error
		if cfg, err = config.Load(p.configPath); err != nil {
			return config.Config{}, err
		}
	}
	if p.format != "" {
		cfg.Format = p.format
	}
	cfg.Exclude = append(cfg.Exclude, p.exclude...)
	if p.allowDuplicates {
		cfg.AllowDuplicates = true
	}
	return cfg, cfg.Validate()
}

type imageLoader interface {
	Load(path string) ([]byte, error)
}

func generate(p *generateParams, loader imageLoader, dec decoder.Decoder) error {
	cfg, err := p.resolveConfig()
	if err != nil {
		return err
	}

	data, err := loader.Load(p.input)
	if err != nil {
		return err
	}
	records, err := dec.Decode(data)
	if err != nil {
		return fmt.Errorf("decode %s: %w", p.input, err)
	}

	accepted := symbols.NewClassifier(cfg.ClassifierConfig()).Filter(records)
	if err := symbols.ValidateUnique(accepted); err != nil {
		if !cfg.AllowDuplicates {
			return fmt.Errorf("conflicting symbol assignments: %w", err)
		}
		slog.Warn("Conflicting symbol assignments", "error", err)
	}

	if err := writeOutput(cfg.Format, p.output, filepath.Base(p.input), accepted); err != nil {
		return fmt.Errorf("write %s: %w", p.output, err)
	}
	slog.Info("Wrote bootloader symbols", "output", p.output, "format", cfg.Format, "symbols", len(accepted), "decoded", len(records))
	return nil
}

func writeOutput(format, path, image string, accepted []symbols.Accepted) error {
	switch format {
	case config.FormatLD:
		return addrmap.WriteFile(path, accepted)
	case config.FormatPprof:
		return createAndWrite(path, func(w io.Writer) error {
			return pprof.WriteProfileGzip(pprof.BuildSymbolProfile(accepted, image), w)
		})
	case config.FormatOtlp, config.FormatOtlpRequest:
		data := exporter.BuildOltpDictionary(accepted, image, func() uint64 { return uint64(time.Now().UnixNano()) })
		return createAndWrite(path, func(w io.Writer) error {
			if format == config.FormatOtlpRequest {
				return exporter.WriteProto(exporter.NewExportRequest(data), w)
			}
			return exporter.WriteProto(data, w)
		})
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func createAndWrite(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return write(f)
}
