//go:build linux

package mmap

import (
	"syscall"
	"unsafe"
)

// tryMremap resizes the mapping with Linux's mremap(2), avoiding the
// unmap/remap fallback's brief window with no mapping at all. It passes
// MREMAP_MAYMOVE, so the kernel may move the mapping to a new address.
func (r *Region) tryMremap(newSize int) ([]byte, error) {
	const mremapMaymove = 1

	newAddr, _, errno := syscall.Syscall6(
		syscall.SYS_MREMAP,
		uintptr(unsafe.Pointer(&r.data[0])),
		uintptr(r.size),
		uintptr(newSize),
		mremapMaymove,
		0, 0)
	if errno != 0 {
		return nil, errno
	}

	var newData []byte
	sh := (*struct {
		Data uintptr
		Len  int
		Cap  int
	})(unsafe.Pointer(&newData))
	sh.Data = newAddr
	sh.Len = newSize
	sh.Cap = newSize
	return newData, nil
}
