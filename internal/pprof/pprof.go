package pprof

import (
	"compress/gzip"
	"io"

	"github.com/google/pprof/profile"
	"github.com/ianlancetaylor/demangle"

	"github.com/VladMinzatu/bootloader-symgen/internal/symbols"
)

// BuildSymbolProfile renders the exported symbols as a sample-free profile.
// Tools that collect raw bootloader PCs can merge it to get symbolized locations.
func BuildSymbolProfile(accepted []symbols.Accepted, image string) *profile.Profile {
	p := &profile.Profile{
		SampleType: []*profile.ValueType{{Type: "samples", Unit: "count"}},
		PeriodType: &profile.ValueType{Type: "cpu", Unit: "count"},
	}
	if len(accepted) == 0 {
		return p
	}

	low, high := accepted[0].Value, accepted[0].Value
	for _, a := range accepted[1:] {
		low = min(low, a.Value)
		high = max(high, a.Value)
	}
	if high != ^uint64(0) {
		high++
	}
	mapping := &profile.Mapping{
		ID:              1,
		Start:           low,
		Limit:           high,
		File:            image,
		HasFunctions:    true,
		HasFilenames:    false,
		HasLineNumbers:  false,
		HasInlineFrames: false,
	}
	p.Mapping = []*profile.Mapping{mapping}

	locMap := map[uint64]*profile.Location{}
	nextLocID := uint64(1)
	for i, a := range accepted {
		fn := &profile.Function{
			ID:         uint64(i + 1),
			Name:       demangle.Filter(a.Name),
			SystemName: a.Name,
		}
		p.Function = append(p.Function, fn)

		// aliases share the location of the first symbol at that address
		if loc, ok := locMap[a.Value]; ok {
			loc.Line = append(loc.Line, profile.Line{Function: fn})
			continue
		}
		loc := &profile.Location{
			ID:      nextLocID,
			Mapping: mapping,
			Address: a.Value,
			Line:    []profile.Line{{Function: fn}},
		}
		nextLocID++
		locMap[a.Value] = loc
		p.Location = append(p.Location, loc)
	}
	return p
}

func WriteProfileGzip(p *profile.Profile, w io.Writer) error {
	gw := gzip.NewWriter(w)
	if err := p.WriteUncompressed(gw); err != nil {
		gw.Close()
		return err
	}
	return gw.Close()
}
