package symbols

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// DuplicateSymbolError is reported when more than one accepted symbol
// carries the same name. The linker would see conflicting assignments.
type DuplicateSymbolError struct {
	Name   string
	Values []uint64
}

func (e *DuplicateSymbolError) Error() string {
	addrs := make([]string, 0, len(e.Values))
	for _, v := range e.Values {
		addrs = append(addrs, fmt.Sprintf("0x%X", v))
	}
	return fmt.Sprintf("symbol %q defined %d times (%s)", e.Name, len(e.Values), strings.Join(addrs, ", "))
}

// ValidateUnique checks that every accepted name appears once. All collisions
// are returned together, in order of first appearance.
func ValidateUnique(accepted []Accepted) error {
	seen := make(map[string]*DuplicateSymbolError, len(accepted))
	var order []string
	for _, a := range accepted {
		if d, ok := seen[a.Name]; ok {
			d.Values = append(d.Values, a.Value)
			continue
		}
		seen[a.Name] = &DuplicateSymbolError{Name: a.Name, Values: []uint64{a.Value}}
		order = append(order, a.Name)
	}

	var result *multierror.Error
	for _, name := range order {
		if d := seen[name]; len(d.Values) > 1 {
			result = multierror.Append(result, d)
		}
	}
	return result.ErrorOrNil()
}

// IsDuplicate reports whether err carries a DuplicateSymbolError.
func IsDuplicate(err error) bool {
	var d *DuplicateSymbolError
	return errors.As(err, &d)
}
