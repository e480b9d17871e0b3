// Package worker implements the multi-worker harness: privilege
// acquisition, the destructive-operation grace banner, the shared RNG and
// port list construction, thread spawning, and the per-worker
// {generate, log, dispatch} loop against the shared log sink.
package worker

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/dsmmcken/iofuzz/internal/dispatch"
	"github.com/dsmmcken/iofuzz/internal/dynarray"
	"github.com/dsmmcken/iofuzz/internal/fuzzer"
	"github.com/dsmmcken/iofuzz/internal/privilege"
	"github.com/dsmmcken/iofuzz/internal/rng"
	"github.com/dsmmcken/iofuzz/internal/sink"
	"github.com/dsmmcken/iofuzz/internal/variate"
)

// Config collects the resolved CLI settings the harness needs.
type Config struct {
	NumThreads int
	Output     string
	Ports      []uint32
	Quiet      bool
	Seed       uint64

	// StackSize is accepted for CLI compatibility with the original
	// interface (spec.md §6 --stack-size) but has no effect: Go goroutine
	// stacks start small and grow on demand, there is no per-goroutine
	// fixed-size knob to set.
	StackSize uint64
}

// Run acquires I/O privilege, prints the grace banner, builds the shared
// RNG and port list, spawns NumThreads-1 detached workers, and runs
// worker 0 in the calling goroutine. It returns early if privilege
// acquisition or opening the log sink fails, and otherwise only when
// worker 0 stops on an error (a fatal log I/O error, for example); the
// program otherwise runs until killed.
func Run(cfg Config, stderr io.Writer, logger *log.Logger) error {
	if err := privilege.Acquire(); err != nil {
		return fmt.Errorf("acquiring I/O privilege: %w", err)
	}
	logger.Info("I/O privilege acquired")

	if !cfg.Quiet {
		PrintGraceBanner(stderr)
	}

	sharedRNG := rng.New(cfg.Seed)

	var ports *dynarray.Array[uint32]
	if len(cfg.Ports) > 0 {
		ports = dynarray.FromSlice(cfg.Ports)
	}

	s, err := sink.Open(cfg.Output)
	if err != nil {
		return fmt.Errorf("opening log sink: %w", err)
	}
	defer s.Close()

	numThreads := cfg.NumThreads
	if numThreads < 1 {
		numThreads = 1
	}

	for ordinal := 1; ordinal < numThreads; ordinal++ {
		ordinal := ordinal
		go func() {
			if err := runWorker(ordinal, sharedRNG, ports, s); err != nil {
				logger.WithField("worker", ordinal).WithError(err).Error("worker exited")
			}
		}()
	}

	return runWorker(0, sharedRNG, ports, s)
}

// PrintGraceBanner prints the destructive-operation warning and a 3-2-1
// countdown to w. Shared by the run and replay commands.
func PrintGraceBanner(w io.Writer) {
	fmt.Fprintln(w, "WARNING: this program issues raw x86 port-I/O instructions against live")
	fmt.Fprintln(w, "hardware. It can hang or damage attached peripherals. Ctrl-C now to abort.")
	for n := 3; n >= 1; n-- {
		fmt.Fprintf(w, "Starting in %d...\n", n)
		time.Sleep(1 * time.Second)
	}
}

// runWorker constructs a Fuzzer sharing r and ports, then loops forever:
// lock the sink, format and flush one CSV line for the *current* variate
// tuple, dispatch that tuple (which also generates the next one), unlock.
func runWorker(ordinal int, r *rng.RNG, ports *dynarray.Array[uint32], s *sink.Sink) error {
	f, err := fuzzer.New(r)
	if err != nil {
		return fmt.Errorf("constructing fuzzer: %w", err)
	}
	if ports != nil {
		if err := f.SetPorts(ports.Retain()); err != nil {
			return fmt.Errorf("installing port list: %w", err)
		}
	}

	for {
		state := f.State()
		tuple := f.Variates()
		mnemonic, err := dispatch.FromSelector(tuple[variate.SlotSelector])
		if err != nil {
			return fmt.Errorf("worker %d: %w", ordinal, err)
		}

		line := FormatLine(ordinal, state, mnemonic, tuple)

		if err := s.Lock(); err != nil {
			return fmt.Errorf("worker %d: %w", ordinal, err)
		}
		err = s.WriteAndFlush(line, FormatStateHex(state))
		if err == nil {
			err = f.Iterate()
		}
		s.Unlock()
		if err != nil {
			return fmt.Errorf("worker %d: %w", ordinal, err)
		}
	}
}

// FormatStateHex renders state as the 0x-prefixed little-endian hex word
// used for both the CSV state field and the sidecar state file.
func FormatStateHex(state rng.State) string {
	return fmt.Sprintf("0x%016x", binary.LittleEndian.Uint64(state[:]))
}

// FormatLine renders one CSV line per spec.md §4.F:
// <unix_seconds>,<worker_ordinal>,<state>,<mnemonic>,<v1>,<v2>,<v3>,<v4>,<v5>,<v6>
// v1..v6 print only the low 32 bits of each (machine-word-sized) slot —
// an intentional, preserved quirk of the original log format. Shared by
// the worker loop and the replay command.
func FormatLine(ordinal int, state rng.State, mnemonic dispatch.Mnemonic, tuple variate.Tuple) string {
	return fmt.Sprintf("%d,%d,%s,%s,0x%08x,0x%08x,0x%08x,0x%08x,0x%08x,0x%08x\n",
		time.Now().Unix(), ordinal, FormatStateHex(state), mnemonic,
		uint32(tuple[variate.SlotA]), uint32(tuple[variate.SlotB]),
		uint32(tuple[variate.SlotCount]), uint32(tuple[variate.SlotPort]),
		uint32(tuple[variate.SlotSI]), uint32(tuple[variate.SlotDI]),
	)
}
