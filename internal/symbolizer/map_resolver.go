package symbolizer

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/VladMinzatu/bootloader-symgen/internal/addrmap"
)

type MapFileReader struct {
	loader *DataLoader
}

func NewMapFileReader(path string) *MapFileReader {
	return &MapFileReader{loader: NewDataLoader(path)}
}

func (r *MapFileReader) ReadLines() ([]string, error) {
	return r.loader.ReadLines()
}

type mapEntry struct {
	addr uint64
	name string
}

// MapResolver resolves addresses against a previously generated address map.
type MapResolver struct {
	entries []mapEntry
}

func InitMapResolver(loader MapLoader) (*MapResolver, error) {
	lines, err := loader.ReadLines()
	if err != nil {
		return nil, err
	}
	accepted, err := addrmap.Parse(lines)
	if err != nil {
		return nil, fmt.Errorf("parse address map: %w", err)
	}
	entries := make([]mapEntry, 0, len(accepted))
	for _, a := range accepted {
		entries = append(entries, mapEntry{addr: a.Value, name: a.Name})
	}
	slog.Debug("Loaded address map for symbolization", "entries", len(entries))

	// Stable keeps map order among symbols sharing an address
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].addr < entries[j].addr })
	return &MapResolver{entries: entries}, nil
}

func (r *MapResolver) Len() int {
	return len(r.entries)
}

func (r *MapResolver) Resolve(pc uint64) (*Symbol, error) {
	if len(r.entries) == 0 {
		return nil, fmt.Errorf("empty address map")
	}
	// Find greatest entry.addr <= pc
	i := sort.Search(len(r.entries), func(i int) bool { return r.entries[i].addr > pc })
	if i == 0 {
		return nil, fmt.Errorf("no exported symbol <= pc: 0x%x", pc)
	}
	entry := r.entries[i-1]
	// with aliases at one address, report the first one listed in the map
	for i > 1 && r.entries[i-2].addr == entry.addr {
		i--
		entry = r.entries[i-1]
	}
	return &Symbol{Name: entry.name, Addr: entry.addr, Offset: pc - entry.addr}, nil
}
