package relq

// TablePage is a fixed-size slotted page holding a run of MVCC tuples
// belonging to one table's heap chain.
//
// Byte layout (little-endian, fixed PAGE_SIZE):
//
//	[0:2)   page_type   u16
//	[2:6)   page_id     u32
//	[6:14)  lsn         u64
//	[14:18) next_page_id u32
//	[18:22) lower_offset u32   -- end of the slot array, grows up
//	[22:26) upper_offset u32   -- start of the tuple heap, grows down
//	[26:lower_offset)   slot directory, 8 bytes each: {offset:u32, size:u32}
//	[upper_offset:PAGE_SIZE) tuple payloads, packed from the tail backward
//
// Free space is upper_offset - lower_offset. Deletes never reclaim a
// slot or its bytes; they only stamp xmax in place, so a page's slot
// count and byte usage only ever grow until the page is full.
type TablePage struct {
	Data []byte
}

const (
	offPageType    = 0
	offPageID      = 2
	offLSN         = 6
	offNextPageID  = 14
	offLowerOffset = 18
	offUpperOffset = 22
)

// NewTablePage formats buf (len(buf) == page size) as an empty TablePage.
func NewTablePage(buf []byte, pageType PageType, pageID uint32) TablePage {
	p := TablePage{Data: buf}
	for i := range buf {
		buf[i] = 0
	}
	putUint16LE(buf[offPageType:], uint16(pageType))
	putUint32LE(buf[offPageID:], pageID)
	putUint64LE(buf[offLSN:], 0)
	putUint32LE(buf[offNextPageID:], InvalidPageID)
	putUint32LE(buf[offLowerOffset:], PageHeaderSize)
	putUint32LE(buf[offUpperOffset:], uint32(len(buf)))
	return p
}

// TablePageFromData wraps already-formatted page bytes, read from the
// buffer pool, without reinitializing them.
func TablePageFromData(buf []byte) TablePage {
	return TablePage{Data: buf}
}

func (p TablePage) PageType() PageType {
	return PageType(getUint16LE(p.Data[offPageType:]))
}

func (p TablePage) PageID() uint32 {
	return getUint32LE(p.Data[offPageID:])
}

func (p TablePage) LSN() uint64 {
	return getUint64LE(p.Data[offLSN:])
}

func (p TablePage) SetLSN(lsn uint64) {
	putUint64LE(p.Data[offLSN:], lsn)
}

func (p TablePage) NextPageID() uint32 {
	return getUint32LE(p.Data[offNextPageID:])
}

func (p TablePage) SetNextPageID(id uint32) {
	putUint32LE(p.Data[offNextPageID:], id)
}

func (p TablePage) lowerOffset() uint32 {
	return getUint32LE(p.Data[offLowerOffset:])
}

func (p TablePage) setLowerOffset(v uint32) {
	putUint32LE(p.Data[offLowerOffset:], v)
}

func (p TablePage) upperOffset() uint32 {
	return getUint32LE(p.Data[offUpperOffset:])
}

func (p TablePage) setUpperOffset(v uint32) {
	putUint32LE(p.Data[offUpperOffset:], v)
}

// FreeSpace returns the number of bytes available between the slot array
// and the tuple heap.
func (p TablePage) FreeSpace() int {
	return int(p.upperOffset()) - int(p.lowerOffset())
}

// NumSlots returns the number of slot directory entries.
func (p TablePage) NumSlots() int {
	return (int(p.lowerOffset()) - PageHeaderSize) / SlotSize
}

func (p TablePage) slotOffset(i int) int {
	return PageHeaderSize + i*SlotSize
}

func (p TablePage) getSlot(i int) (offset, size uint32) {
	o := p.slotOffset(i)
	return getUint32LE(p.Data[o:]), getUint32LE(p.Data[o+4:])
}

func (p TablePage) putSlot(i int, offset, size uint32) {
	o := p.slotOffset(i)
	putUint32LE(p.Data[o:], offset)
	putUint32LE(p.Data[o+4:], size)
}

// Insert appends a new tuple's bytes to the page, returning the slot
// index it was stored at. It returns ErrPageFull if there is not enough
// contiguous free space for the payload plus a new slot entry.
func (p TablePage) Insert(tuple []byte) (slotIndex int, err error) {
	needed := len(tuple) + SlotSize
	if p.FreeSpace() < needed {
		return 0, NewError(ErrPageFull)
	}
	newUpper := p.upperOffset() - uint32(len(tuple))
	copy(p.Data[newUpper:], tuple)
	p.setUpperOffset(newUpper)
	idx := p.NumSlots()
	p.putSlot(idx, newUpper, uint32(len(tuple)))
	p.setLowerOffset(p.lowerOffset() + SlotSize)
	return idx, nil
}

// GetTuple returns the raw bytes stored at slotIndex, or ErrNotFound if
// the slot is out of range.
func (p TablePage) GetTuple(slotIndex int) ([]byte, error) {
	if slotIndex < 0 || slotIndex >= p.NumSlots() {
		return nil, NewError(ErrNotFound)
	}
	offset, size := p.getSlot(slotIndex)
	return p.Data[offset : offset+size], nil
}

// PageSlot pairs a slot's index with its stored bytes, as returned by
// GetTuples.
type PageSlot struct {
	SlotIndex int
	Bytes     []byte
}

// GetTuples returns every slot's bytes alongside its slot index, in slot
// order.
func (p TablePage) GetTuples() []PageSlot {
	n := p.NumSlots()
	out := make([]PageSlot, 0, n)
	for i := 0; i < n; i++ {
		offset, size := p.getSlot(i)
		out = append(out, PageSlot{SlotIndex: i, Bytes: p.Data[offset : offset+size]})
	}
	return out
}

// Delete locates the tuple at slotIndex and overwrites its xmax field in
// place with txnID. The slot and payload remain; this call never frees
// space. Idempotent: deleting an already-deleted slot simply re-stamps
// xmax (last writer wins within a transaction's own view).
func (p TablePage) Delete(slotIndex int, txnID TxnID) error {
	raw, err := p.GetTuple(slotIndex)
	if err != nil {
		return err
	}
	if len(raw) < TupleHeaderSize {
		return NewError(ErrCorrupted)
	}
	TupleFromBytes(RID{}, raw).SetXmax(txnID)
	return nil
}
