package relq

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	mmappkg "github.com/relq/relq/mmap"
)

// StorageFile is a growing, mmap-backed file of fixed-size pages. It
// knows nothing about table chains or MVCC — it only allocates and hands
// back raw page-sized byte slices addressed by page id. TableHeap and
// BufferPool are layered on top of it.
type StorageFile struct {
	mu       sync.Mutex
	f        *os.File
	m        *mmappkg.Region
	pageSize int
	numPages uint32
	log      zerolog.Logger
}

// OpenStorageFile opens (creating if necessary) the data file at path,
// mapping it read-write and growing it to fit at least one page.
func OpenStorageFile(path string, pageSize int, log zerolog.Logger) (*StorageFile, error) {
	if pageSize < MinPageSize || pageSize > MaxPageSize {
		return nil, WrapError(ErrIoError, invalidPageSizeError(pageSize))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, WrapError(ErrIoError, err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, WrapError(ErrIoError, err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, WrapError(ErrIoError, err)
	}
	sf := &StorageFile{f: f, pageSize: pageSize, log: log}
	numPages := uint32(fi.Size() / int64(pageSize))
	if numPages == 0 {
		numPages = 1
	}
	if err := sf.growTo(numPages); err != nil {
		f.Close()
		return nil, err
	}
	sf.numPages = numPages
	return sf, nil
}

func (sf *StorageFile) growTo(numPages uint32) error {
	newSize := int64(numPages) * int64(sf.pageSize)
	if err := sf.f.Truncate(newSize); err != nil {
		return WrapError(ErrIoError, err)
	}
	if sf.m == nil {
		m, err := mmappkg.Open(int(sf.f.Fd()), int(newSize), true)
		if err != nil {
			return WrapError(ErrIoError, err)
		}
		sf.m = m
		return nil
	}
	if err := sf.m.Remap(newSize); err != nil {
		return WrapError(ErrIoError, err)
	}
	return nil
}

// PageSize returns the fixed page size of this storage file.
func (sf *StorageFile) PageSize() int {
	return sf.pageSize
}

// NumPages returns the number of pages currently allocated.
func (sf *StorageFile) NumPages() uint32 {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	return sf.numPages
}

// AllocatePage grows the file by one page and returns its new page id.
func (sf *StorageFile) AllocatePage() (uint32, error) {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	if sf.numPages >= MaxPageID {
		return 0, WrapError(ErrIoError, fileAtCapacityError())
	}
	id := sf.numPages
	if err := sf.growTo(sf.numPages + 1); err != nil {
		return 0, err
	}
	sf.numPages++
	sf.log.Debug().Uint32("page_id", id).Msg("allocated page")
	return id, nil
}

// PageBytes returns the raw byte slice backing pageID. The slice aliases
// the mapping directly; writes through it are visible immediately and
// must be synced before they are durable.
func (sf *StorageFile) PageBytes(pageID uint32) ([]byte, error) {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	if pageID >= sf.numPages {
		return nil, NewError(ErrPageNotFound)
	}
	start := int64(pageID) * int64(sf.pageSize)
	return sf.m.Data()[start : start+int64(sf.pageSize)], nil
}

// Sync flushes all dirty pages to disk.
func (sf *StorageFile) Sync() error {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	if sf.m == nil {
		return nil
	}
	if err := sf.m.Sync(); err != nil {
		return WrapError(ErrIoError, err)
	}
	return nil
}

// Close unmaps and closes the underlying file.
func (sf *StorageFile) Close() error {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	if sf.m != nil {
		if err := sf.m.Close(); err != nil {
			return WrapError(ErrIoError, err)
		}
		sf.m = nil
	}
	return sf.f.Close()
}
