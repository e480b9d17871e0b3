//go:build linux && amd64

package dispatch

// The twelve leaf functions below are implemented in asm_amd64.s. Go's
// assembler has no mnemonics for IN/OUT family instructions (they are
// privileged and never appear in ordinary user code), so the .s file
// emits the literal opcode bytes via BYTE directives — the same trick
// golang.org/x/sys/cpu uses for instructions (CPUID, XGETBV on older Go
// versions) that predate assembler support for them.
//
// The caller must have raised its I/O privilege level (see
// internal/privilege) before any of these are safe to call; otherwise
// the process receives SIGSEGV on the privileged instruction.

func inb(port uint16)
func inw(port uint16)
func inl(port uint16)

func outb(port uint16, val uint8)
func outw(port uint16, val uint16)
func outl(port uint16, val uint32)

func insb(port uint16, dst uintptr, count uint32)
func insw(port uint16, dst uintptr, count uint32)
func insl(port uint16, dst uintptr, count uint32)

func outsb(port uint16, src uintptr, count uint32)
func outsw(port uint16, src uintptr, count uint32)
func outsl(port uint16, src uintptr, count uint32)
