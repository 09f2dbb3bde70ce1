//go:build darwin

package mmap

import "errors"

// tryMremap has no darwin equivalent; Remap always falls back to
// unmap-then-remap on this platform.
func (r *Region) tryMremap(newSize int) ([]byte, error) {
	return nil, errors.New("mremap not available on darwin")
}
