package relq

// TableHeap stitches a chain of TablePages, threaded through
// next_page_id, into one table's storage. It does not load pages
// eagerly: it only captures the shared buffer pool, lock manager, and
// transaction identity it needs to walk the chain on demand.
type TableHeap struct {
	table       string
	firstPageID uint32
	bufferPool  *BufferPool
	lockMgr     *LockManager
	txnID       TxnID
}

// NewTableHeap builds a TableHeap over an existing chain starting at
// firstPageID.
func NewTableHeap(table string, firstPageID uint32, bp *BufferPool, lm *LockManager, txnID TxnID) *TableHeap {
	return &TableHeap{table: table, firstPageID: firstPageID, bufferPool: bp, lockMgr: lm, txnID: txnID}
}

// CreateTableHeap allocates the first page of a brand-new table's chain
// and returns a TableHeap positioned over it, alongside the page id the
// catalog should record.
func CreateTableHeap(table string, bp *BufferPool, lm *LockManager, txnID TxnID) (*TableHeap, uint32, error) {
	_, id, err := bp.NewPage(PageTypeHeap)
	if err != nil {
		return nil, 0, err
	}
	bp.Unpin(id, true)
	return NewTableHeap(table, id, bp, lm, txnID), id, nil
}

// Insert stores tuple bytes (already schema-encoded columns, without the
// MVCC header) into the heap, walking the chain for a page with enough
// free space and allocating a new tail page if none is found. It stamps
// xmin = txnID and returns the RID the row was stored at.
func (h *TableHeap) Insert(columns []byte) (RID, error) {
	if err := h.lockMgr.LockTable(h.txnID, h.table, LockShared); err != nil {
		return RID{}, err
	}
	defer h.lockMgr.UnlockTable(h.txnID, h.table)

	tuple := NewTuple(h.txnID, columns)
	currID := h.firstPageID

	for {
		page, err := h.bufferPool.FetchPage(currID)
		if err != nil {
			return RID{}, err
		}

		slot, err := page.Insert(tuple.Data)
		if err == nil {
			h.bufferPool.Unpin(currID, true)
			return RID{PageID: currID, Slot: uint32(slot)}, nil
		}
		if Code(err) != ErrPageFull {
			h.bufferPool.Unpin(currID, false)
			return RID{}, err
		}

		next := page.NextPageID()
		if next != InvalidPageID {
			h.bufferPool.Unpin(currID, false)
			currID = next
			continue
		}

		newPage, newID, err := h.bufferPool.NewPage(PageTypeHeap)
		if err != nil {
			h.bufferPool.Unpin(currID, false)
			return RID{}, err
		}
		page.SetNextPageID(newID)
		h.bufferPool.Unpin(currID, true)

		slot, err = newPage.Insert(tuple.Data)
		if err != nil {
			h.bufferPool.Unpin(newID, false)
			return RID{}, err
		}
		h.bufferPool.Unpin(newID, true)
		return RID{PageID: newID, Slot: uint32(slot)}, nil
	}
}

// Get fetches the tuple at rid without acquiring a row lock, for reads
// that rely on MVCC visibility rather than locking.
func (h *TableHeap) Get(rid RID) (Tuple, error) {
	page, err := h.bufferPool.FetchPage(rid.PageID)
	if err != nil {
		return Tuple{}, err
	}
	defer h.bufferPool.Unpin(rid.PageID, false)

	raw, err := page.GetTuple(int(rid.Slot))
	if err != nil {
		return Tuple{}, err
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return TupleFromBytes(rid, out), nil
}

// Delete logically removes rid by stamping its xmax with the heap's
// transaction id. It acquires the row's exclusive lock first.
func (h *TableHeap) Delete(rid RID) error {
	if err := h.lockMgr.LockRow(h.txnID, h.table, rid, LockExclusive); err != nil {
		return err
	}
	defer h.lockMgr.UnlockRow(h.txnID, h.table, rid)

	page, err := h.bufferPool.FetchPage(rid.PageID)
	if err != nil {
		return err
	}
	defer h.bufferPool.Unpin(rid.PageID, true)

	return page.Delete(int(rid.Slot), h.txnID)
}

// Update logically deletes rid and inserts newColumns as a new version:
// the old version keeps its xmin but gets xmax = txnID, and the new
// version starts with xmin = txnID. The new version may land on a
// different page than the old one.
func (h *TableHeap) Update(rid RID, newColumns []byte) (RID, error) {
	if err := h.Delete(rid); err != nil {
		return RID{}, err
	}
	return h.Insert(newColumns)
}

// TableIterator walks every slot of every page in a heap's chain, in
// page then slot order, regardless of MVCC visibility — no visibility
// filtering is applied here or by the SeqScan executor.
type TableIterator struct {
	heap               *TableHeap
	currPageID         uint32
	currPageIDForSlots uint32
	slots              []PageSlot
	slotIdx            int
}

// Scan returns an iterator positioned before the heap's first tuple.
func (h *TableHeap) Scan() *TableIterator {
	return &TableIterator{heap: h, currPageID: h.firstPageID}
}

// Next returns the next tuple and its RID, or ok=false once the chain is
// exhausted.
func (it *TableIterator) Next() (Tuple, bool, error) {
	for {
		if it.slotIdx < len(it.slots) {
			s := it.slots[it.slotIdx]
			rid := RID{PageID: it.currPageIDForSlots, Slot: uint32(s.SlotIndex)}
			it.slotIdx++
			out := make([]byte, len(s.Bytes))
			copy(out, s.Bytes)
			return TupleFromBytes(rid, out), true, nil
		}
		if it.currPageID == InvalidPageID {
			return Tuple{}, false, nil
		}
		page, err := it.heap.bufferPool.FetchPage(it.currPageID)
		if err != nil {
			return Tuple{}, false, err
		}
		it.slots = page.GetTuples()
		it.slotIdx = 0
		it.currPageIDForSlots = it.currPageID
		next := page.NextPageID()
		it.heap.bufferPool.Unpin(it.currPageID, false)
		it.currPageID = next
	}
}
