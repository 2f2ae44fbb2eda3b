package symbolizer

import "github.com/ianlancetaylor/demangle"

type Symbol struct {
	Name   string
	Addr   uint64 // start address of the symbol
	Offset uint64 // offset of the resolved pc from Addr
}

// Demangled returns the demangled C++ name, or Name if it is not mangled.
func (s Symbol) Demangled() string {
	return demangle.Filter(s.Name, demangle.NoParams)
}

type MapLoader interface {
	ReadLines() ([]string, error)
}
