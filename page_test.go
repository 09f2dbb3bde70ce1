package relq

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestPage(t *testing.T) TablePage {
	t.Helper()
	buf := make([]byte, DefaultPageSize)
	return NewTablePage(buf, PageTypeHeap, 0)
}

func TestTablePageEmptyLayout(t *testing.T) {
	p := newTestPage(t)
	require.Equal(t, PageHeaderSize, p.lowerOffsetForTest())
	require.Equal(t, DefaultPageSize, p.upperOffsetForTest())
	require.Equal(t, 0, p.NumSlots())
}

func TestTablePageInsertRoundTrip(t *testing.T) {
	p := newTestPage(t)
	payloadA := make([]byte, 12)
	copy(payloadA, "hello-world!")
	tupleA := NewTuple(1, payloadA)

	slot, err := p.Insert(tupleA.Data)
	require.NoError(t, err)
	require.Equal(t, 0, slot)

	got, err := p.GetTuple(0)
	require.NoError(t, err)
	require.Equal(t, tupleA.Data, got)
	require.Equal(t, DefaultPageSize-len(tupleA.Data), p.upperOffsetForTest())
}

func TestTablePageTwoInserts(t *testing.T) {
	p := newTestPage(t)
	tupleA := NewTuple(1, make([]byte, 12)) // 20-byte tuple
	tupleB := NewTuple(1, make([]byte, 22)) // 30-byte tuple

	_, err := p.Insert(tupleA.Data)
	require.NoError(t, err)
	_, err = p.Insert(tupleB.Data)
	require.NoError(t, err)

	offA, szA := p.getSlot(0)
	offB, szB := p.getSlot(1)
	require.Equal(t, uint32(DefaultPageSize-20), offA)
	require.Equal(t, uint32(20), szA)
	require.Equal(t, uint32(DefaultPageSize-50), offB)
	require.Equal(t, uint32(30), szB)
	require.Equal(t, PageHeaderSize+2*SlotSize, p.lowerOffsetForTest())
	require.Equal(t, DefaultPageSize-50, p.upperOffsetForTest())
}

func TestTablePageDeletePreservesBytesExceptXmax(t *testing.T) {
	p := newTestPage(t)
	tupleA := NewTuple(1, make([]byte, 12))
	tupleB := NewTuple(1, make([]byte, 22))
	_, err := p.Insert(tupleA.Data)
	require.NoError(t, err)
	_, err = p.Insert(tupleB.Data)
	require.NoError(t, err)

	before, err := p.GetTuple(0)
	require.NoError(t, err)
	beforeCopy := append([]byte(nil), before...)

	require.NoError(t, p.Delete(0, 7))

	after, err := p.GetTuple(0)
	require.NoError(t, err)
	require.Equal(t, beforeCopy[:4], after[:4], "xmin untouched")
	require.Equal(t, beforeCopy[8:], after[8:], "column bytes untouched")
	require.Equal(t, TxnID(7), TupleFromBytes(RID{}, after).Xmax())

	off1, sz1 := p.getSlot(1)
	require.Equal(t, uint32(DefaultPageSize-50), off1)
	require.Equal(t, uint32(30), sz1)
}

func TestTablePageFreeSpaceMonotonic(t *testing.T) {
	p := newTestPage(t)
	prev := p.FreeSpace()
	for i := 0; i < 5; i++ {
		_, err := p.Insert(NewTuple(1, make([]byte, 12)).Data)
		require.NoError(t, err)
		require.LessOrEqual(t, p.FreeSpace(), prev)
		prev = p.FreeSpace()
	}
	free := p.FreeSpace()
	require.NoError(t, p.Delete(0, 9))
	require.Equal(t, free, p.FreeSpace())
}

func TestTablePageOffsetsNeverCross(t *testing.T) {
	p := newTestPage(t)
	for {
		_, err := p.Insert(NewTuple(1, make([]byte, 40)).Data)
		if err != nil {
			require.True(t, IsPageFull(err))
			break
		}
		require.GreaterOrEqual(t, p.lowerOffsetForTest(), PageHeaderSize)
		require.LessOrEqual(t, p.lowerOffsetForTest(), p.upperOffsetForTest())
		require.LessOrEqual(t, p.upperOffsetForTest(), DefaultPageSize)
	}
}

func TestTablePagePageFull(t *testing.T) {
	buf := make([]byte, MinPageSize)
	p := NewTablePage(buf, PageTypeHeap, 0)
	big := make([]byte, MinPageSize)
	_, err := p.Insert(big)
	require.Error(t, err)
	require.True(t, IsPageFull(err))
}

// lowerOffsetForTest/upperOffsetForTest expose the page's private offset
// accessors to this package's own tests.
func (p TablePage) lowerOffsetForTest() int { return int(p.lowerOffset()) }
func (p TablePage) upperOffsetForTest() int { return int(p.upperOffset()) }
