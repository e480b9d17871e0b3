// Package sink implements the shared CSV log sink the worker harness
// writes one line to per iteration. Lines are made atomic across workers
// (and across any other process appending to the same file) by an
// advisory file-granularity lock, acquired for the write+flush+fsync and
// released only after the dispatcher has run — see internal/worker for
// why the release happens that late.
package sink

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/natefinch/atomic"
	"golang.org/x/sys/unix"
)

// Sink is a shared, lockable destination for CSV log lines.
type Sink struct {
	mu        sync.Mutex // serializes goroutines within this process
	f         *os.File   // nil when writing to stdout
	bw        *bufio.Writer
	flockable bool
	statePath string // "" when there is nowhere useful to mirror last state
}

// Open opens the shared log sink. An empty path (or "-") means stdout;
// otherwise the named file is opened for append, created if missing.
func Open(path string) (*Sink, error) {
	if path == "" || path == "-" {
		return &Sink{bw: bufio.NewWriter(os.Stdout)}, nil
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log sink %s: %w", path, err)
	}
	return &Sink{f: f, bw: bufio.NewWriter(f), flockable: true, statePath: path + ".state"}, nil
}

// Close closes the underlying file, if any.
func (s *Sink) Close() error {
	if s.f == nil {
		return nil
	}
	return s.f.Close()
}

// Lock acquires the file-granularity lock (advisory flock for a real
// file, an in-process mutex for stdout). The worker harness holds it
// across WriteAndFlush and the subsequent dispatch, releasing only via
// Unlock afterwards — see internal/worker for why the release happens
// that late.
func (s *Sink) Lock() error {
	s.mu.Lock()
	if s.flockable {
		if err := unix.Flock(int(s.f.Fd()), unix.LOCK_EX); err != nil {
			s.mu.Unlock()
			return fmt.Errorf("locking log sink: %w", err)
		}
	}
	return nil
}

// Unlock releases the lock acquired by Lock.
func (s *Sink) Unlock() {
	if s.flockable {
		unix.Flock(int(s.f.Fd()), unix.LOCK_UN)
	}
	s.mu.Unlock()
}

// WriteAndFlush writes line, then flushes and fsyncs it durably to disk.
// The caller must hold the lock (via Lock) for the duration spanning this
// call and the subsequent dispatch, per the log-before-execute ordering
// in spec.md §4.F.
func (s *Sink) WriteAndFlush(line string, stateHex string) error {
	if _, err := io.WriteString(s.bw, line); err != nil {
		return fmt.Errorf("writing log line: %w", err)
	}
	if err := s.bw.Flush(); err != nil {
		return fmt.Errorf("flushing log line: %w", err)
	}
	if s.f != nil {
		if err := s.f.Sync(); err != nil {
			return fmt.Errorf("fsyncing log sink: %w", err)
		}
		if s.statePath != "" {
			if err := atomic.WriteFile(s.statePath, strings.NewReader(stateHex+"\n")); err != nil {
				return fmt.Errorf("mirroring last-good state: %w", err)
			}
		}
	}
	return nil
}
