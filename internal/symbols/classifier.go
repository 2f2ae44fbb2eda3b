package symbols

import (
	"slices"
	"strings"
)

// C runtime symbols that are provided on both sides of the link and must
// never be pinned to a bootloader address.
var defaultExcluded = []string{"main", "C$$EXIT", "abort"}

// DefaultReservedPrefix marks compiler generated and intrinsic symbols.
const DefaultReservedPrefix = "_"

func DefaultExcluded() []string {
	return slices.Clone(defaultExcluded)
}

type ClassifierConfig struct {
	Excluded       map[string]bool
	ReservedPrefix string
}

func DefaultClassifierConfig() ClassifierConfig {
	excluded := make(map[string]bool, len(defaultExcluded))
	for _, name := range defaultExcluded {
		excluded[name] = true
	}
	return ClassifierConfig{Excluded: excluded, ReservedPrefix: DefaultReservedPrefix}
}

// Classifier decides which symbol records are bootloader exports.
type Classifier struct {
	excluded       map[string]bool
	reservedPrefix string
}

func NewClassifier(cfg ClassifierConfig) *Classifier {
	excluded := make(map[string]bool, len(cfg.Excluded))
	for name, ex := range cfg.Excluded {
		if ex {
			excluded[name] = true
		}
	}
	return &Classifier{excluded: excluded, reservedPrefix: cfg.ReservedPrefix}
}

// Classify reports whether r should be visible to a downstream link step.
func (c *Classifier) Classify(r Record) bool {
	if r.Binding != BindGlobal {
		return false
	}
	if c.excluded[r.Name] {
		return false
	}
	// an empty prefix would match every name
	if c.reservedPrefix != "" && strings.HasPrefix(r.Name, c.reservedPrefix) {
		return false
	}
	switch r.Kind {
	case KindFunc, KindObject, KindCommon:
		return true
	default:
		return false
	}
}

// Filter returns the accepted records in input order.
func (c *Classifier) Filter(records []Record) []Accepted {
	accepted := make([]Accepted, 0, len(records))
	for _, r := range records {
		if c.Classify(r) {
			accepted = append(accepted, Accepted{Name: r.Name, Value: r.Value})
		}
	}
	return accepted
}
