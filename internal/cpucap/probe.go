package cpucap

import "pmemio/internal/pmemenv"

// defaultMovntThreshold is the byte count at or above which the
// streaming-store transfer variant is used (spec.md 3, 6).
const defaultMovntThreshold uintptr = 256

// Probe runs the one-shot capability probe of spec.md 4.1. It starts
// from the most pessimistic defaults and upgrades them step by step as
// CPU features and environment overrides allow, exactly in the order
// spec.md lists.
func Probe() *Record {
	r := &Record{
		FlushKind:      FlushCLFlush,
		FenceKind:      FenceNone,
		IsPmemKind:     IsPmemNever,
		MovntThreshold: defaultMovntThreshold,
	}

	// Step 1: clflush unlocks the registry-backed is_pmem probe.
	if hasCLFlush() {
		r.IsPmemKind = IsPmemRegistryProbe
	}

	// Step 2: clflushopt, unless disabled.
	if hasCLFlushOpt() && !pmemenv.NoCLFlushOpt() {
		r.FlushKind = FlushCLFlushOpt
		r.FenceKind = FenceSFence
	}

	// Step 3: clwb takes priority over clflushopt, unless disabled.
	if hasCLWB() && !pmemenv.NoCLWB() {
		r.FlushKind = FlushCLWB
		r.FenceKind = FenceSFence
	}

	// Step 4: PMEM_NO_FLUSH forces a no-op flush but still fences.
	if pmemenv.NoFlush() {
		r.FlushKind = FlushNone
		r.FenceKind = FenceSFence
	}

	// Step 5: movnt threshold override.
	r.MovntThreshold = pmemenv.MovntThreshold(defaultMovntThreshold)

	// Step 6: streaming-store variants, unless disabled or unsupported.
	r.StreamingStores = hasStreamingStores() && !pmemenv.NoMovnt()

	return r
}
