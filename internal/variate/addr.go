package variate

import "unsafe"

// bufAddr returns the address of a fixed-size scratch buffer as an
// integer. The buffer is embedded in Buffers and never reallocated, so
// the address remains valid for the Buffers' entire lifetime — storing
// it as a plain integer is safe only because of that invariant.
func bufAddr(buf *[256]byte) uint64 {
	return uint64(uintptr(unsafe.Pointer(buf)))
}
