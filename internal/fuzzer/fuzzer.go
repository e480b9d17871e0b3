// Package fuzzer implements the central Fuzzer entity: it owns an RNG
// handle, an optional port list, the reproducibility-anchoring state
// snapshot, and the current 7-slot variate tuple, and exposes the single
// iteration step the worker harness drives.
package fuzzer

import (
	"errors"
	"sync"

	"github.com/dsmmcken/iofuzz/internal/dispatch"
	"github.com/dsmmcken/iofuzz/internal/dynarray"
	"github.com/dsmmcken/iofuzz/internal/rng"
	"github.com/dsmmcken/iofuzz/internal/variate"
)

// ErrNilArgument is returned when a setter is given a nil handle.
var ErrNilArgument = errors.New("fuzzer: argument must not be nil")

// Fuzzer is the per-worker engine. All exported methods are safe for
// concurrent use; accessors never hand out state that aliases the locked
// fields beyond the call.
type Fuzzer struct {
	mu       sync.Mutex
	refcount int32

	rng   *rng.RNG
	ports *dynarray.Array[uint32]

	state    rng.State
	variates variate.Tuple
	bufs     *variate.Buffers

	// dispatch issues the current tuple as one machine instruction. It
	// defaults to dispatch.Dispatch (the real asm leaves); tests replace
	// it with a stub so iteration bookkeeping can be exercised without
	// ever executing a privileged IN/OUT instruction.
	dispatch func(m dispatch.Mnemonic, v1, v2, v3, v4, v5, v6 uint64) error
}

// New constructs a Fuzzer sharing r, with no port list (the full 16-bit
// port space is used), and immediately runs one variate-generation step
// so the object is iterable without a prior call to Iterate.
func New(r *rng.RNG) (*Fuzzer, error) {
	if r == nil {
		return nil, ErrNilArgument
	}
	f := &Fuzzer{
		refcount: 1,
		rng:      r,
		bufs:     variate.NewBuffers(),
		dispatch: dispatch.Dispatch,
	}
	f.regenerateLocked()
	return f, nil
}

// NewWithState is like New, but restores r to s before the initial
// variate-generation step — used to deterministically resume a fuzzer
// from a logged seed.
func NewWithState(r *rng.RNG, s rng.State) (*Fuzzer, error) {
	if r == nil {
		return nil, ErrNilArgument
	}
	r.Restore(s)
	return New(r)
}

// Retain increments the reference count and returns the same Fuzzer.
func (f *Fuzzer) Retain() *Fuzzer {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refcount++
	return f
}

// Release decrements the reference count, dropping the port list
// reference once it reaches zero. The RNG is externally owned and is
// never released here.
func (f *Fuzzer) Release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refcount--
	if f.refcount <= 0 {
		f.ports.Release()
		f.ports = nil
	}
}

// regenerateLocked snapshots the RNG and fills the variate tuple. Callers
// must hold f.mu.
func (f *Fuzzer) regenerateLocked() {
	f.state, f.variates = variate.Generate(f.rng, f.ports, f.bufs)
}

// Ports returns a copy of the configured port list, or nil if the port
// slot is drawn uniformly over the full 16-bit space.
func (f *Fuzzer) Ports() []uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ports == nil {
		return nil
	}
	return f.ports.Slice()
}

// SetPorts atomically replaces the port list with p (which may be nil)
// and re-runs the variate generator so no observer sees a stale tuple
// drawn against the old port list.
func (f *Fuzzer) SetPorts(p *dynarray.Array[uint32]) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	old := f.ports
	f.ports = p
	old.Release()
	f.regenerateLocked()
	return nil
}

// RNG returns the shared RNG handle.
func (f *Fuzzer) RNG() *rng.RNG {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rng
}

// SetRNG atomically replaces the RNG handle and re-runs the variate
// generator against the new one.
func (f *Fuzzer) SetRNG(r *rng.RNG) error {
	if r == nil {
		return ErrNilArgument
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rng = r
	f.regenerateLocked()
	return nil
}

// State returns the state snapshot that produced the current variate
// tuple.
func (f *Fuzzer) State() rng.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// SetState restores the RNG to s and re-runs the variate generator.
func (f *Fuzzer) SetState(s rng.State) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rng.Restore(s)
	f.regenerateLocked()
	return nil
}

// Variates returns the current variate tuple.
func (f *Fuzzer) Variates() variate.Tuple {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.variates
}

// Iterate dispatches the current variate tuple as one machine instruction,
// then generates the tuple for the next call. The caller (the worker
// harness) must have already durably logged the current tuple before
// calling Iterate, since the dispatched instruction may never return.
func (f *Fuzzer) Iterate() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.iterateLocked()
}

func (f *Fuzzer) iterateLocked() error {
	t := f.variates
	mnemonic, err := dispatch.FromSelector(t[variate.SlotSelector])
	if err != nil {
		return err
	}
	if err := f.dispatch(mnemonic, t[variate.SlotA], t[variate.SlotB],
		t[variate.SlotCount], t[variate.SlotPort], t[variate.SlotSI], t[variate.SlotDI]); err != nil {
		return err
	}
	f.regenerateLocked()
	return nil
}

// IterateWithState restores the RNG from s, then behaves as Iterate. Used
// for deterministic replay of a specific logged seed.
func (f *Fuzzer) IterateWithState(s rng.State) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rng.Restore(s)
	return f.iterateLocked()
}
