package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/VladMinzatu/bootloader-symgen/internal/symbolizer"
)

type lookupParams struct {
	mapPath string
	addrs   []string
}

func addLookupParams(cmd *kingpin.CmdClause) *lookupParams {
	p := &lookupParams{}
	cmd.Arg("map", "Address map produced by generate.").Required().ExistingFileVar(&p.mapPath)
	cmd.Arg("addr", "Hexadecimal addresses to resolve.").Required().StringsVar(&p.addrs)
	return p
}

func lookup(p *lookupParams, out io.Writer) error {
	pcs := make([]uint64, 0, len(p.addrs))
	for _, a := range p.addrs {
		pc, err := parseAddr(a)
		if err != nil {
			return err
		}
		pcs = append(pcs, pc)
	}

	resolver, err := symbolizer.InitMapResolver(symbolizer.NewMapFileReader(p.mapPath))
	if err != nil {
		return err
	}
	for _, pc := range pcs {
		sym, err := resolver.Resolve(pc)
		if err != nil {
			slog.Warn("Failed to resolve address", "pc", fmt.Sprintf("0x%X", pc), "error", err)
			fmt.Fprintf(out, "0x%X ??\n", pc)
			continue
		}
		fmt.Fprintf(out, "0x%X %s+0x%X\n", pc, sym.Demangled(), sym.Offset)
	}
	return nil
}

func parseAddr(s string) (uint64, error) {
	h := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	pc, err := strconv.ParseUint(h, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return pc, nil
}
