// Package mapfile is a convenience wrapper around opening a file,
// sizing it, and mapping it into the process address space, then
// registering the resulting range with the root package's mapping
// registry. spec.md's core three components treat this file-opening
// step as an external collaborator supplied by the caller; this
// package is the supplemental, PMDK-style convenience helper real
// callers of a pmem library expect to find next to it (see DESIGN.md),
// not a required part of the flush/transfer/registry core.
package mapfile

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"pmemio"
	"pmemio/internal/diag"
	"pmemio/internal/pmerr"
)

// Mapping is an open, mapped file and the metadata needed to unmap and
// unregister it later.
type Mapping struct {
	Data   []byte
	IsPmem bool
	file   *os.File
}

// Options controls how MapFile opens and sizes the backing file.
type Options struct {
	// Create creates the file if it does not exist.
	Create bool
	// Length, when non-zero and Create is set, truncates the file to
	// this size before mapping.
	Length int64
	// ReadOnly maps the file PROT_READ instead of PROT_READ|PROT_WRITE.
	ReadOnly bool
}

// MapFile opens path per opts, maps it in full, and returns the
// mapping. The caller is responsible for calling Unmap.
func MapFile(path string, opts Options) (*Mapping, error) {
	flags := os.O_RDWR
	if opts.ReadOnly {
		flags = os.O_RDONLY
	}
	if opts.Create {
		flags |= os.O_CREATE
	}

	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return nil, pmerr.Wrap(pmerr.OsIoFailure, "map_file", err)
	}

	if opts.Create && opts.Length > 0 {
		if err := f.Truncate(opts.Length); err != nil {
			f.Close()
			return nil, pmerr.Wrap(pmerr.OsIoFailure, "map_file", err)
		}
	}

	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, pmerr.Wrap(pmerr.OsIoFailure, "map_file", err)
	}
	size := st.Size()
	if size == 0 {
		f.Close()
		return nil, pmerr.New(pmerr.InvalidArgument, "map_file", "cannot map an empty file")
	}

	prot := unix.PROT_READ
	if !opts.ReadOnly {
		prot |= unix.PROT_WRITE
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), prot, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, pmerr.Wrap(pmerr.OsIoFailure, "map_file", err)
	}

	isPmem := isDeviceDAX(f) || isDAXMount(path)
	diag.Logf("map_file %s: %d bytes, pmem=%v", path, size, isPmem)

	deviceID, regionID := deviceIdentity(f, isPmem)
	if err := pmemio.RegisterMapping(unsafe.Pointer(&data[0]), uintptr(len(data)), isPmem, deviceID, regionID); err != nil {
		unix.Munmap(data)
		f.Close()
		return nil, err
	}

	return &Mapping{Data: data, IsPmem: isPmem, file: f}, nil
}

// Unmap unregisters and releases the OS mapping via the root package's
// Unmap (spec.md 4.7's registry-then-munmap order), then closes the
// backing file descriptor, which pmemio.Unmap has no knowledge of.
func (m *Mapping) Unmap() error {
	err := pmemio.Unmap(unsafe.Pointer(&m.Data[0]), uintptr(len(m.Data)))
	closeErr := m.file.Close()
	if err != nil {
		return err
	}
	if closeErr != nil {
		return pmerr.Wrap(pmerr.OsIoFailure, "unmap", closeErr)
	}
	return nil
}
