//go:build windows

package mmap

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// Open maps length bytes of fd via CreateFileMapping/MapViewOfFile.
func Open(fd int, length int, writable bool) (*Region, error) {
	if length <= 0 {
		return nil, ErrInvalidSize
	}

	handle := windows.Handle(fd)
	prot := uint32(windows.PAGE_READONLY)
	access := uint32(windows.FILE_MAP_READ)
	if writable {
		prot = windows.PAGE_READWRITE
		access = windows.FILE_MAP_WRITE
	}

	mapping, err := windows.CreateFileMapping(handle, nil, prot, uint32(uint64(length)>>32), uint32(length), nil)
	if err != nil {
		return nil, &Error{Op: "CreateFileMapping", Err: err}
	}

	addr, err := windows.MapViewOfFile(mapping, access, 0, 0, uintptr(length))
	if err != nil {
		windows.CloseHandle(mapping)
		return nil, &Error{Op: "MapViewOfFile", Err: err}
	}

	var data []byte
	sh := (*struct {
		Data uintptr
		Len  int
		Cap  int
	})(unsafe.Pointer(&data))
	sh.Data = addr
	sh.Len = length
	sh.Cap = length

	return &Region{data: data, fd: fd, size: int64(length), writable: writable, mapping: uintptr(mapping)}, nil
}

// Sync flushes the mapped view to disk.
func (r *Region) Sync() error {
	if r.data == nil {
		return ErrNotMapped
	}
	return windows.FlushViewOfFile(uintptr(unsafe.Pointer(&r.data[0])), uintptr(r.size))
}

// Close releases the mapped view and its file-mapping handle. Safe to
// call more than once.
func (r *Region) Close() error {
	if r.data == nil {
		return nil
	}
	addr := uintptr(unsafe.Pointer(&r.data[0]))
	if err := windows.UnmapViewOfFile(addr); err != nil {
		return &Error{Op: "UnmapViewOfFile", Err: err}
	}
	if r.mapping != 0 {
		windows.CloseHandle(windows.Handle(r.mapping))
		r.mapping = 0
	}
	r.data = nil
	r.size = 0
	return nil
}

// Remap grows (or shrinks) the mapping to newSize. Windows has no
// in-place mremap, so this always tears down the view and file mapping
// and recreates both.
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

	addr := uintptr(unsafe.Pointer(&r.data[0]))
	if err := windows.UnmapViewOfFile(addr); err != nil {
		return &Error{Op: "UnmapViewOfFile for remap", Err: err}
	}
	if r.mapping != 0 {
		windows.CloseHandle(windows.Handle(r.mapping))
	}

	prot := uint32(windows.PAGE_READONLY)
	access := uint32(windows.FILE_MAP_READ)
	if r.writable {
		prot = windows.PAGE_READWRITE
		access = windows.FILE_MAP_WRITE
	}

	mapping, err := windows.CreateFileMapping(windows.Handle(r.fd), nil, prot, uint32(uint64(newSize)>>32), uint32(newSize), nil)
	if err != nil {
		r.data = nil
		r.size = 0
		r.mapping = 0
		return &Error{Op: "CreateFileMapping for remap", Err: err}
	}

	newAddr, err := windows.MapViewOfFile(mapping, access, 0, 0, uintptr(newSize))
	if err != nil {
		windows.CloseHandle(mapping)
		r.data = nil
		r.size = 0
		r.mapping = 0
		return &Error{Op: "MapViewOfFile for remap", Err: err}
	}

	var newData []byte
	sh := (*struct {
		Data uintptr
		Len  int
		Cap  int
	})(unsafe.Pointer(&newData))
	sh.Data = newAddr
	sh.Len = int(newSize)
	sh.Cap = int(newSize)

	r.data = newData
	r.size = newSize
	r.mapping = uintptr(mapping)
	return nil
}
