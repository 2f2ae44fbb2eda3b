package symbols

import "fmt"

// Binding is the visibility scope of a symbol table entry.
type Binding int

const (
	BindOther Binding = iota
	BindLocal
	BindGlobal
	BindWeak
)

func (b Binding) String() string {
	switch b {
	case BindLocal:
		return "LOCAL"
	case BindGlobal:
		return "GLOBAL"
	case BindWeak:
		return "WEAK"
	default:
		return "OTHER"
	}
}

// Kind is the category of entity a symbol names.
type Kind int

const (
	KindOther Kind = iota
	KindNoType
	KindFunc
	KindObject
	KindCommon
	KindSection
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindNoType:
		return "NOTYPE"
	case KindFunc:
		return "FUNC"
	case KindObject:
		return "OBJECT"
	case KindCommon:
		return "COMMON"
	case KindSection:
		return "SECTION"
	case KindFile:
		return "FILE"
	default:
		return "OTHER"
	}
}

// Record is one decoded symbol table entry. Records are read-only once decoded.
type Record struct {
	Name    string
	Binding Binding
	Kind    Kind
	Value   uint64
}

func (r Record) String() string {
	return fmt.Sprintf("%s %s %s 0x%x", r.Name, r.Binding, r.Kind, r.Value)
}

// Accepted is a record that passed classification. Only the name and the
// address are needed past this point.
type Accepted struct {
	Name  string
	Value uint64
}
