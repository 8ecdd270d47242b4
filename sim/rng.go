package sim

import (
	"hash/fnv"
	"math/rand/v2"
)

// === CellKey ===

// Upper bounds that keep CellKey packing collision-free.
const (
	MaxLoadPoints = 1 << 24
	MaxTrials     = 1 << 32
)

// CellKey identifies one trial of one variant at one load point.
// Two runs with the same CellKey and seed base MUST draw bit-for-bit
// identical duration sequences.
type CellKey struct {
	Variant   Variant
	LoadIndex int
	Trial     int
}

// Validate checks that the key is inside the packable range.
func (k CellKey) Validate() error {
	if !k.Variant.Valid() {
		return configErrorf("cell key: unknown variant %d", int(k.Variant))
	}
	if k.LoadIndex < 0 || k.LoadIndex >= MaxLoadPoints {
		return configErrorf("cell key: load index must be in [0, %d), got %d", MaxLoadPoints, k.LoadIndex)
	}
	if k.Trial < 0 || uint64(k.Trial) >= MaxTrials {
		return configErrorf("cell key: trial must be in [0, %d), got %d", uint64(MaxTrials), k.Trial)
	}
	return nil
}

// pack lays the key out as variant+1 (8 bits) | load index (24 bits) |
// trial (32 bits). Each variant owns a disjoint top-byte range.
func (k CellKey) pack() uint64 {
	return uint64(k.Variant+1)<<56 |
		(uint64(k.LoadIndex)&(MaxLoadPoints-1))<<32 |
		uint64(uint32(k.Trial))
}

// === Stream names ===

const (
	// StreamArrival feeds inter-arrival durations.
	StreamArrival = "arrival"
	// StreamService feeds service durations.
	StreamService = "service"
)

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated random streams for one cell.
//
// Derivation: each named stream is a PCG seeded with
// (cellKey.pack(), seedBase XOR fnv1a64(streamName)). Distinct cells differ in
// the first seed word, so no two cells ever share a stream.
//
// Thread-safety: NOT thread-safe. Each cell owns its own PartitionedRNG.
type PartitionedRNG struct {
	seedBase int64
	key      CellKey
	streams  map[string]*rand.PCG
}

// NewPartitionedRNG creates a PartitionedRNG for key under seedBase.
func NewPartitionedRNG(seedBase int64, key CellKey) *PartitionedRNG {
	return &PartitionedRNG{
		seedBase: seedBase,
		key:      key,
		streams:  make(map[string]*rand.PCG),
	}
}

// ForStream returns the source for the named stream.
// The same name always returns the same source (cached). Never returns nil.
func (p *PartitionedRNG) ForStream(name string) rand.Source {
	if src, ok := p.streams[name]; ok {
		return src
	}
	src := rand.NewPCG(p.key.pack(), uint64(p.seedBase)^uint64(fnv1a64(name)))
	p.streams[name] = src
	return src
}

// Key returns the cell this RNG was derived for.
func (p *PartitionedRNG) Key() CellKey {
	return p.key
}

// SeedBase returns the run-wide seed base.
func (p *PartitionedRNG) SeedBase() int64 {
	return p.seedBase
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
