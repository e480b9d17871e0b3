// Package dispatch maps a variate's instruction selector to one of the
// twelve x86 port-I/O instructions and issues it on the host CPU. This is
// the engineering crux named in the spec: the dispatch table maps six of
// the seven variate slots onto concrete registers and emits exactly one
// machine instruction per call. Each leaf loads only the registers its
// own instruction reads; the other bound slots are not loaded.
package dispatch

import "fmt"

// Mnemonic identifies one of the twelve instructions by its position in
// the canonical order the selector slot indexes into.
type Mnemonic int

const (
	Inb Mnemonic = iota
	Inw
	Inl
	Insb
	Insw
	Insl
	Outb
	Outw
	Outl
	Outsb
	Outsw
	Outsl

	numMnemonics = Outsl + 1
)

var names = [numMnemonics]string{
	Inb: "inb", Inw: "inw", Inl: "inl",
	Insb: "insb", Insw: "insw", Insl: "insl",
	Outb: "outb", Outw: "outw", Outl: "outl",
	Outsb: "outsb", Outsw: "outsw", Outsl: "outsl",
}

// String returns the lowercase mnemonic name, as used in the CSV log.
func (m Mnemonic) String() string {
	if m < 0 || m >= numMnemonics {
		return "invalid"
	}
	return names[m]
}

// FromSelector maps variate slot 0 (an integer in [0,11]) to a Mnemonic.
func FromSelector(selector uint64) (Mnemonic, error) {
	if selector >= uint64(numMnemonics) {
		return 0, fmt.Errorf("instruction selector %d out of range [0,%d]", selector, numMnemonics-1)
	}
	return Mnemonic(selector), nil
}

// IsString reports whether m is one of the REP-prefixed string variants.
func (m Mnemonic) IsString() bool {
	return (m >= Insb && m <= Insl) || m >= Outsb
}

// IsOutput reports whether m writes to the port (an "out" family member)
// rather than reading from it (an "in" family member).
func (m Mnemonic) IsOutput() bool {
	return m >= Outb
}

// Dispatch issues exactly one of the twelve instructions, binding the
// variate slots to registers per the spec's register-binding table:
// v1->A, v2->B, v3->C (REP count), v4->D (port), v5->SI (outs* source),
// v6->DI (ins* destination). Each leaf receives only the operands its own
// instruction reads: SI and DI are loaded only by the string variants, C
// only by the string variants, and A only by outb/outw/outl. Operand-width
// truncation for the A register happens implicitly through which leaf
// function is called.
func Dispatch(m Mnemonic, v1, v2, v3, v4, v5, v6 uint64) error {
	port := uint16(v4)
	count := uint32(v3)
	_ = v2 // B per the register table; no instruction in this set reads it, so it is never loaded

	switch m {
	case Inb:
		inb(port)
	case Inw:
		inw(port)
	case Inl:
		inl(port)
	case Insb:
		insb(port, uintptr(v6), count)
	case Insw:
		insw(port, uintptr(v6), count)
	case Insl:
		insl(port, uintptr(v6), count)
	case Outb:
		outb(port, uint8(v1))
	case Outw:
		outw(port, uint16(v1))
	case Outl:
		outl(port, uint32(v1))
	case Outsb:
		outsb(port, uintptr(v5), count)
	case Outsw:
		outsw(port, uintptr(v5), count)
	case Outsl:
		outsl(port, uintptr(v5), count)
	default:
		return fmt.Errorf("dispatch: unknown mnemonic %d", m)
	}
	return nil
}
