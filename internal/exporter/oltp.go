package exporter

import (
	"io"

	"github.com/ianlancetaylor/demangle"
	collectorpb "go.opentelemetry.io/proto/otlp/collector/profiles/v1development"
	v1 "go.opentelemetry.io/proto/otlp/common/v1"
	profilespb "go.opentelemetry.io/proto/otlp/profiles/v1development"
	resourceV1 "go.opentelemetry.io/proto/otlp/resource/v1"
	"google.golang.org/protobuf/proto"

	"github.com/VladMinzatu/bootloader-symgen/internal/symbols"
)

type NowFunc func() uint64 // produces unix nsec

// BuildOltpDictionary carries the exported symbols in the dictionary of an
// otherwise empty profile. Every table starts with its zero entry.
func BuildOltpDictionary(accepted []symbols.Accepted, image string, now NowFunc) *profilespb.ProfilesData {
	stringTable := []string{""}
	mappingTable := []*profilespb.Mapping{{}}
	locationTable := []*profilespb.Location{{}}
	functionTable := []*profilespb.Function{{}}

	sampleType := &profilespb.ValueType{
		TypeStrindex: strIndex(&stringTable, "samples"),
		UnitStrindex: strIndex(&stringTable, "count"),
	}

	var mappingIdx int32
	if len(accepted) > 0 {
		low, high := accepted[0].Value, accepted[0].Value
		for _, a := range accepted[1:] {
			low = min(low, a.Value)
			high = max(high, a.Value)
		}
		if high != ^uint64(0) {
			high++
		}
		mappingTable = append(mappingTable, &profilespb.Mapping{
			MemoryStart:      low,
			MemoryLimit:      high,
			FilenameStrindex: strIndex(&stringTable, image),
		})
		mappingIdx = int32(len(mappingTable) - 1)
	}

	for _, a := range accepted {
		fn := &profilespb.Function{
			NameStrindex:       strIndex(&stringTable, demangle.Filter(a.Name)),
			SystemNameStrindex: strIndex(&stringTable, a.Name),
		}
		functionTable = append(functionTable, fn)
		fnIdx := int32(len(functionTable) - 1)

		locationTable = append(locationTable, &profilespb.Location{
			Address:      a.Value,
			MappingIndex: mappingIdx,
			Lines: []*profilespb.Line{
				{
					FunctionIndex: fnIdx,
					Line:          0,
				},
			},
		})
	}

	profile := &profilespb.Profile{
		TimeUnixNano: now(),
		DurationNano: uint64(0),
		SampleType:   sampleType,
	}

	resource := &resourceV1.Resource{
		Attributes: []*v1.KeyValue{
			{
				Key:   "process.executable.name",
				Value: &v1.AnyValue{Value: &v1.AnyValue_StringValue{StringValue: image}},
			},
		},
	}
	resourceProfiles := &profilespb.ResourceProfiles{
		Resource: resource,
		ScopeProfiles: []*profilespb.ScopeProfiles{
			{
				Scope: &v1.InstrumentationScope{
					Name:    "bootloader-symgen",
					Version: "v1",
				},
				Profiles: []*profilespb.Profile{profile},
			},
		},
	}

	dictionary := &profilespb.ProfilesDictionary{
		MappingTable:  mappingTable,
		LocationTable: locationTable,
		FunctionTable: functionTable,
		StackTable:    []*profilespb.Stack{{}},
		StringTable:   stringTable,
	}

	return &profilespb.ProfilesData{
		ResourceProfiles: []*profilespb.ResourceProfiles{resourceProfiles},
		Dictionary:       dictionary,
	}
}

// NewExportRequest wraps the data for delivery to an OTLP collector.
func NewExportRequest(data *profilespb.ProfilesData) *collectorpb.ExportProfilesServiceRequest {
	return &collectorpb.ExportProfilesServiceRequest{
		ResourceProfiles: data.ResourceProfiles,
		Dictionary:       data.Dictionary,
	}
}

func WriteProto(m proto.Message, w io.Writer) error {
	b, err := proto.Marshal(m)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func strIndex(table *[]string, s string) int32 {
	for i, v := range *table {
		if v == s {
			return int32(i)
		}
	}
	*table = append(*table, s)
	return int32(len(*table) - 1)
}
