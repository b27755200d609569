// Package pmemio provides durable store primitives over byte-
// addressable persistent memory mapped directly into the process
// address space: cache-line flush dispatch chosen once at first use,
// streaming-store bulk transfers, and a mapping registry that lets
// is_pmem-style probes and deep_flush tell "real" persistent memory
// apart from an ordinary file-backed mapping.
//
// Nothing in this package allocates on top of persistent memory,
// provides transactions, or builds crash-consistent data structures:
// it is the flush/transfer/registry substrate those things would be
// built on, not the structures themselves.
package pmemio
