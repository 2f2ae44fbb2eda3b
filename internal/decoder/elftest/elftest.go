// Package elftest builds minimal ELF32 images for tests.
package elftest

import (
	"bytes"
	"debug/elf"
	"encoding/binary"

	"github.com/ulikunitz/xz"
)

type Symbol struct {
	Name  string
	Bind  elf.SymBind
	Type  elf.SymType
	Value uint32
}

// Build returns a little-endian MSP430 executable whose .symtab holds syms in
// the given order, after the mandatory null entry.
func Build(syms []Symbol) []byte {
	return build(syms, true)
}

// BuildWithoutSymtab returns a valid ELF image that has no symbol table.
func BuildWithoutSymtab() []byte {
	return build(nil, false)
}

// Compress wraps data in an xz stream.
func Compress(data []byte) []byte {
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		panic(err)
	}
	if _, err := w.Write(data); err != nil {
		panic(err)
	}
	if err := w.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

const (
	ehdrSize = 52
	shdrSize = 40
	symSize  = 16
)

func build(syms []Symbol, withSymtab bool) []byte {
	shstrtab := []byte("\x00.symtab\x00.strtab\x00.shstrtab\x00")
	const (
		nameSymtab   = 1
		nameStrtab   = 9
		nameShstrtab = 17
	)

	strtab := []byte{0}
	var symtab bytes.Buffer
	binary.Write(&symtab, binary.LittleEndian, elf.Sym32{})
	for _, s := range syms {
		off := uint32(len(strtab))
		strtab = append(strtab, s.Name...)
		strtab = append(strtab, 0)
		binary.Write(&symtab, binary.LittleEndian, elf.Sym32{
			Name:  off,
			Value: s.Value,
			Info:  elf.ST_INFO(s.Bind, s.Type),
			Shndx: uint16(elf.SHN_ABS),
		})
	}

	var body bytes.Buffer
	sections := []elf.Section32{{}}
	add := func(name uint32, typ elf.SectionType, data []byte, link, info, align, entsize uint32) {
		sections = append(sections, elf.Section32{
			Name:      name,
			Type:      uint32(typ),
			Off:       uint32(ehdrSize + body.Len()),
			Size:      uint32(len(data)),
			Link:      link,
			Info:      info,
			Addralign: align,
			Entsize:   entsize,
		})
		body.Write(data)
		for body.Len()%4 != 0 {
			body.WriteByte(0)
		}
	}

	if withSymtab {
		add(nameSymtab, elf.SHT_SYMTAB, symtab.Bytes(), 2, 1, 4, symSize)
		add(nameStrtab, elf.SHT_STRTAB, strtab, 0, 0, 1, 0)
	}
	add(nameShstrtab, elf.SHT_STRTAB, shstrtab, 0, 0, 1, 0)

	hdr := elf.Header32{
		Type:      uint16(elf.ET_EXEC),
		Machine:   uint16(elf.EM_MSP430),
		Version:   uint32(elf.EV_CURRENT),
		Entry:     0x4400,
		Shoff:     uint32(ehdrSize + body.Len()),
		Ehsize:    ehdrSize,
		Shentsize: shdrSize,
		Shnum:     uint16(len(sections)),
		Shstrndx:  uint16(len(sections) - 1),
	}
	copy(hdr.Ident[:], elf.ELFMAG)
	hdr.Ident[elf.EI_CLASS] = byte(elf.ELFCLASS32)
	hdr.Ident[elf.EI_DATA] = byte(elf.ELFDATA2LSB)
	hdr.Ident[elf.EI_VERSION] = byte(elf.EV_CURRENT)

	var out bytes.Buffer
	binary.Write(&out, binary.LittleEndian, hdr)
	out.Write(body.Bytes())
	for _, s := range sections {
		binary.Write(&out, binary.LittleEndian, s)
	}
	return out.Bytes()
}
