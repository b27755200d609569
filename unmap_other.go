//go:build !unix

package pmemio

import "unsafe"

func osUnmap(addr unsafe.Pointer, length uintptr) error {
	return nil
}
