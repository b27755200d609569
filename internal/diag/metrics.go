package diag

import "sync/atomic"

// Counter is an atomic operation counter, incremented unconditionally:
// unlike the teacher's Counter_t (gated behind a compile-time const so
// disabled counters cost nothing), there is no switch to turn these
// off. Every call to a counted operation, including the per-call
// Flush and Drain entry points of the root package, pays one atomic
// add.
type Counter struct{ n atomic.Int64 }

func (c *Counter) Inc()          { c.n.Add(1) }
func (c *Counter) Value() int64  { return c.n.Load() }

// OpCounters tracks how many times each registry and durability
// operation has run, for tests and for operators debugging a stuck
// process via a debugger or core dump.
var OpCounters = struct {
	Flushes      Counter
	Drains       Counter
	Registers    Counter
	Unregisters  Counter
	DeepFlushes  Counter
	IsPmemCalls  Counter
}{}
