// Package variate derives the fixed 7-slot operand tuple from an RNG
// service and snapshots the RNG's pre-generation state alongside it, so a
// later replay from that state reproduces the RNG-drawn slots (selector
// through port) and the buffer contents exactly. SlotSI and SlotDI hold
// the addresses of the Buffers passed in, so they match only when the
// same Buffers are used.
package variate

import (
	"github.com/dsmmcken/iofuzz/internal/dynarray"
	"github.com/dsmmcken/iofuzz/internal/rng"
)

// Slot indices into Tuple, named for clarity at call sites.
const (
	SlotSelector = iota
	SlotA
	SlotB
	SlotCount
	SlotPort
	SlotSI
	SlotDI

	numSlots
)

// Tuple is the fixed 7-slot operand layout. Slots are machine-word sized;
// the CSV log format intentionally prints only their low 32 bits (see
// internal/worker), truncating the upper bits on 64-bit hosts.
type Tuple [numSlots]uint64

// Buffers holds the two owned 256-byte scratch buffers whose addresses
// are installed into SlotSI and SlotDI. They are never reallocated after
// construction; only their contents are refreshed each generation.
type Buffers struct {
	five [256]byte
	six  [256]byte
}

// NewBuffers allocates a fresh pair of scratch buffers.
func NewBuffers() *Buffers {
	return &Buffers{}
}

// FivePtr returns the address of the outs* source buffer as an integer,
// the representation Tuple and the dispatcher expect for SlotSI.
func (b *Buffers) FivePtr() uint64 { return bufAddr(&b.five) }

// SixPtr returns the address of the ins* destination buffer as an integer.
func (b *Buffers) SixPtr() uint64 { return bufAddr(&b.six) }

// mixture selects one of the three operand sources for SlotA/SlotB.
type mixture int

const (
	mixtureUniform mixture = iota
	mixtureFermat
	mixtureMersenne
)

func drawMixed(r *rng.RNG) uint64 {
	switch mixture(r.UniformRange(0, 2)) {
	case mixtureFermat:
		return r.Fermat()
	case mixtureMersenne:
		return r.Mersenne()
	default:
		return uint64(r.UniformU32())
	}
}

// Generate snapshots r's state, then fills all seven variate slots in
// slot order using r and ports (nil or empty meaning "draw the port
// slot uniformly over the full 16-bit space"). bufs is refilled with
// fresh random printable strings as a side effect.
func Generate(r *rng.RNG, ports *dynarray.Array[uint32], bufs *Buffers) (rng.State, Tuple) {
	state := r.Snapshot()

	var t Tuple
	t[SlotSelector] = uint64(r.UniformRange(0, 11))
	t[SlotA] = drawMixed(r)
	t[SlotB] = drawMixed(r)
	t[SlotCount] = uint64(r.UniformRange(1, 64))

	if ports != nil && ports.Len() > 0 {
		idx := r.UniformRange(0, uint32(ports.Len()-1))
		t[SlotPort] = uint64(ports.At(int(idx)))
	} else {
		t[SlotPort] = uint64(r.UniformRange(0, 0xFFFF))
	}

	r.RandomString(bufs.five[:])
	r.RandomString(bufs.six[:])
	t[SlotSI] = bufs.FivePtr()
	t[SlotDI] = bufs.SixPtr()

	return state, t
}
