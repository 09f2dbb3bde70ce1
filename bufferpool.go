package relq

import (
	"container/list"
	"sync"

	"github.com/rs/zerolog"
)

// frame is one buffer pool slot: a pinned or evictable page plus its
// bookkeeping.
type frame struct {
	pageID uint32
	data   []byte
	pinCount int
	dirty  bool
	elem   *list.Element // position in the LRU list, nil while pinned
}

// BufferPool is a pin-counted page cache over a StorageFile, evicting the
// least-recently-used unpinned frame with container/list when capacity is
// exceeded. Every page handed to a caller must eventually be returned
// through Unpin.
type BufferPool struct {
	mu       sync.Mutex
	sf       *StorageFile
	capacity int
	frames   map[uint32]*frame
	lru      *list.List
	log      zerolog.Logger
}

// NewBufferPool creates a buffer pool over sf holding at most capacity
// pages in memory at once.
func NewBufferPool(sf *StorageFile, capacity int, log zerolog.Logger) *BufferPool {
	if capacity < 1 {
		capacity = 1
	}
	return &BufferPool{
		sf:       sf,
		capacity: capacity,
		frames:   make(map[uint32]*frame),
		lru:      list.New(),
		log:      log,
	}
}

// FetchPage pins and returns the bytes for pageID, loading it from the
// storage file if it is not already cached.
func (bp *BufferPool) FetchPage(pageID uint32) (TablePage, error) {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if fr, ok := bp.frames[pageID]; ok {
		if fr.elem != nil {
			bp.lru.Remove(fr.elem)
			fr.elem = nil
		}
		fr.pinCount++
		return TablePageFromData(fr.data), nil
	}

	if err := bp.evictIfNeededLocked(); err != nil {
		return TablePage{}, err
	}

	data, err := bp.sf.PageBytes(pageID)
	if err != nil {
		return TablePage{}, err
	}
	fr := &frame{pageID: pageID, data: data, pinCount: 1}
	bp.frames[pageID] = fr
	return TablePageFromData(fr.data), nil
}

// NewPage allocates a fresh page from the storage file, formats it as a
// TablePage of the given type, and returns it pinned.
func (bp *BufferPool) NewPage(pageType PageType) (TablePage, uint32, error) {
	id, err := bp.sf.AllocatePage()
	if err != nil {
		return TablePage{}, 0, err
	}
	page, err := bp.FetchPage(id)
	if err != nil {
		return TablePage{}, 0, err
	}
	NewTablePage(page.Data, pageType, id)
	bp.markDirty(id)
	return page, id, nil
}

// Unpin releases one pin on pageID. If dirty is true, the frame is
// flagged for write-back; dirty is sticky — once true it stays true until
// the page is evicted or Flush syncs it. When the last pin is released
// the frame joins the LRU list and becomes evictable.
func (bp *BufferPool) Unpin(pageID uint32, dirty bool) {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	fr, ok := bp.frames[pageID]
	if !ok {
		return
	}
	if dirty {
		fr.dirty = true
	}
	if fr.pinCount > 0 {
		fr.pinCount--
	}
	if fr.pinCount == 0 && fr.elem == nil {
		fr.elem = bp.lru.PushBack(fr)
	}
}

func (bp *BufferPool) markDirty(pageID uint32) {
	if fr, ok := bp.frames[pageID]; ok {
		fr.dirty = true
	}
}

// evictIfNeededLocked evicts the least-recently-used unpinned frame when
// the pool is at capacity. Must be called with bp.mu held.
func (bp *BufferPool) evictIfNeededLocked() error {
	if len(bp.frames) < bp.capacity {
		return nil
	}
	elem := bp.lru.Front()
	if elem == nil {
		return WrapError(ErrIoError, bufferPoolExhaustedError())
	}
	victim := elem.Value.(*frame)
	bp.lru.Remove(elem)
	if victim.dirty {
		if err := bp.sf.Sync(); err != nil {
			return err
		}
	}
	delete(bp.frames, victim.pageID)
	bp.log.Debug().Uint32("page_id", victim.pageID).Msg("evicted page")
	return nil
}

// Flush synchronizes every dirty frame to disk without evicting them.
func (bp *BufferPool) Flush() error {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	for _, fr := range bp.frames {
		if fr.dirty {
			if err := bp.sf.Sync(); err != nil {
				return err
			}
			fr.dirty = false
		}
	}
	return nil
}
