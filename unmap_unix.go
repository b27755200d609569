//go:build unix

package pmemio

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

func osUnmap(addr unsafe.Pointer, length uintptr) error {
	b := unsafe.Slice((*byte)(addr), length)
	return unix.Munmap(b)
}
