//go:build !amd64

package xfer

import "unsafe"

// cpucap never reports StreamingStores true on non-amd64 platforms, so
// these are unreachable; they exist only so the package links.
func movntStore16(dst, src unsafe.Pointer)  {}
func movntStore4(dst unsafe.Pointer, v uint32) {}
func movntFill16(dst unsafe.Pointer, w uint32) {}
