//go:build linux && amd64

// Package privilege performs the handshake with the host kernel that
// raises the calling process's I/O-port privilege level, the
// precondition for every instruction internal/dispatch issues.
package privilege

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// fullIOPL grants unrestricted access to the entire 16-bit port space,
// unlike ioperm(2) which is limited to the first 1024 ports.
const fullIOPL = 3

// Acquire asks the kernel to raise this process's I/O privilege level to
// permit user-mode execution of all twelve port instructions across the
// full port space. It must be called once, before any worker is spawned.
func Acquire() error {
	_, _, errno := unix.Syscall(unix.SYS_IOPL, fullIOPL, 0, 0)
	if errno != 0 {
		return fmt.Errorf("raising I/O privilege level (iopl): %w (run as root or grant CAP_SYS_RAWIO)", errno)
	}
	return nil
}
