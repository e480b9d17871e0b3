//go:build !(linux && amd64)

package privilege

import (
	"fmt"
	"runtime"
)

// Acquire always fails outside linux/amd64: this fuzzer's twelve
// instructions, and the iopl(2) handshake that authorizes them, are an
// x86/Linux-specific contract (spec.md §6, "Environment").
func Acquire() error {
	return fmt.Errorf("privilege: port I/O is only supported on linux/amd64, not %s/%s", runtime.GOOS, runtime.GOARCH)
}
