//go:build !(linux && amd64)

package dispatch

// On platforms other than linux/amd64 the privilege package refuses to
// acquire I/O privilege at startup, so these bodies are never reached in
// practice. They exist only so the package builds on every GOOS/GOARCH
// the rest of the module supports.

func inb(port uint16)                             {}
func inw(port uint16)                             {}
func inl(port uint16)                             {}
func outb(port uint16, val uint8)                 {}
func outw(port uint16, val uint16)                {}
func outl(port uint16, val uint32)                {}
func insb(port uint16, dst uintptr, count uint32)  {}
func insw(port uint16, dst uintptr, count uint32)  {}
func insl(port uint16, dst uintptr, count uint32)  {}
func outsb(port uint16, src uintptr, count uint32) {}
func outsw(port uint16, src uintptr, count uint32) {}
func outsl(port uint16, src uintptr, count uint32) {}
