// Package diag holds the library's ambient debug-logging and call-path
// diagnostics, gated behind PMEM_DEBUG so a production process pays
// nothing for them. It deliberately does not pull in a logging
// framework: the teacher repo's own debug facilities are a gated
// fmt.Printf and a hand-rolled call-stack dump, and this keeps the same
// shape for the same reason — these are development aids for a library
// with no framework of its own to plug into, not application logging.
package diag

import (
	"fmt"
	"runtime"

	"pmemio/internal/pmemenv"
)

// Logf prints a formatted debug line when PMEM_DEBUG=1. The env var is
// read on every call rather than latched once: debug logging is a
// development aid, not a perf-sensitive dispatch path, so there is no
// reason to pay cpucap's one-shot-latch complexity here.
func Logf(format string, args ...any) {
	if !pmemenv.Debug() {
		return
	}
	fmt.Printf("pmemio: "+format+"\n", args...)
}

// CallStack renders the call stack starting at the given skip depth,
// for attaching to diagnostics on the rarer error paths (lock
// contention, allocation failure) where the caller benefits from
// knowing how it got there.
func CallStack(skip int) string {
	s := ""
	for i := skip; ; i++ {
		_, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		if s == "" {
			s = fmt.Sprintf("%s:%d", file, line)
		} else {
			s += fmt.Sprintf("\n\t<-%s:%d", file, line)
		}
	}
	return s
}
