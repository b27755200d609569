// Package cpucap implements the one-shot CPU capability probe described
// in spec.md 4.1: it runs exactly once per process and publishes an
// immutable dispatch record that every public durability and transfer
// call reads without further synchronization.
//
// This replaces the C library's mutable function pointers with a single
// tagged record (spec.md 9, "Function-pointer dispatch -> tagged
// capability record"): callers switch on the tag instead of indirecting
// through a pointer, which is both safer and just as fast once the Go
// compiler inlines the switch.
package cpucap

import (
	"sync"

	"pmemio/internal/pmemenv"
)

// FlushKind selects which cache-line writeback instruction flush calls use.
type FlushKind int

const (
	FlushNone FlushKind = iota
	FlushCLFlush
	FlushCLFlushOpt
	FlushCLWB
)

// FenceKind selects the fence issued by drain before returning.
type FenceKind int

const (
	FenceNone FenceKind = iota
	FenceSFence
)

// IsPmemKind selects how IsPmem answers in the absence of a forced override.
type IsPmemKind int

const (
	IsPmemAlways IsPmemKind = iota
	IsPmemNever
	IsPmemRegistryProbe
)

// Record is the immutable-after-publish dispatch record of spec.md 3
// ("Dispatch state"). Once Probe publishes a Record, every field is
// fixed for the remainder of the process lifetime; readers need no
// synchronization beyond the happens-before edge established by the
// sync.Once that published it.
type Record struct {
	FlushKind       FlushKind
	FenceKind       FenceKind
	IsPmemKind      IsPmemKind
	StreamingStores bool
	MovntThreshold  uintptr

	// forceOnce and forceAnswer implement spec.md 4.1 step 7: the
	// PMEM_IS_PMEM_FORCE override is evaluated lazily, on the first
	// call to IsPmem, not at Probe time, and the evaluation happens
	// exactly once. spec.md 9's Open Questions flag the original C
	// library's flag-plus-atomic-increment pattern as racy and
	// recommend a single Once primitive instead; this is that fix.
	forceOnce   sync.Once
	forceSet    bool
	forceAnswer bool
}

// IsPmemForce lazily evaluates the PMEM_IS_PMEM_FORCE override on first
// call and returns (set, answer). Every subsequent call, from any
// goroutine, observes the same latched result.
func (r *Record) IsPmemForce() (set bool, answer bool) {
	r.forceOnce.Do(func() {
		r.forceSet, r.forceAnswer = pmemenv.IsPmemForce()
	})
	return r.forceSet, r.forceAnswer
}

var (
	defaultOnce   sync.Once
	defaultRecord *Record
)

// Default returns the process-wide Record, running Probe exactly once.
func Default() *Record {
	defaultOnce.Do(func() {
		defaultRecord = Probe()
	})
	return defaultRecord
}
