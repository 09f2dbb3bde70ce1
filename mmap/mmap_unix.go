//go:build unix

package mmap

import "golang.org/x/sys/unix"

// Open maps length bytes of fd starting at offset 0, shared with the
// underlying file so writes are visible to other mappings of the same
// file and persist on Sync.
func Open(fd int, length int, writable bool) (*Region, error) {
	if length <= 0 {
		return nil, ErrInvalidSize
	}

	prot := unix.PROT_READ
	if writable {
		prot |= unix.PROT_WRITE
	}

	data, err := unix.Mmap(fd, 0, length, prot, unix.MAP_SHARED)
	if err != nil {
		return nil, &Error{Op: "mmap", Err: err}
	}

	return &Region{data: data, fd: fd, size: int64(length), writable: writable}, nil
}

// Sync flushes the mapping to disk synchronously.
func (r *Region) Sync() error {
	if r.data == nil {
		return ErrNotMapped
	}
	return unix.Msync(r.data, unix.MS_SYNC)
}

// Close releases the mapping. Safe to call more than once.
func (r *Region) Close() error {
	if r.data == nil {
		return nil
	}
	err := unix.Munmap(r.data)
	r.data = nil
	r.size = 0
	return err
}

// Remap grows (or shrinks) the mapping to newSize, preferring mremap
// where the platform supports one and falling back to unmap-then-remap
// otherwise. Either way the mapping may end up at a new address.
func (r *Region) Remap(newSize int64) error {
	if r.data == nil {
		return ErrNotMapped
	}
	if newSize <= 0 {
		return ErrInvalidSize
	}
	if newSize == r.size {
		return nil
	}

	if newData, err := r.tryMremap(int(newSize)); err == nil {
		r.data = newData
		r.size = newSize
		return nil
	}

	prot := unix.PROT_READ
	if r.writable {
		prot |= unix.PROT_WRITE
	}
	if err := unix.Munmap(r.data); err != nil {
		return &Error{Op: "munmap for remap", Err: err}
	}
	newData, err := unix.Mmap(r.fd, 0, int(newSize), prot, unix.MAP_SHARED)
	if err != nil {
		r.data = nil
		r.size = 0
		return &Error{Op: "mmap for remap", Err: err}
	}
	r.data = newData
	r.size = newSize
	return nil
}
