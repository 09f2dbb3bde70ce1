package relq

// Page size constraints.
const (
	// MinPageSize is the minimum allowed page size.
	MinPageSize = 256

	// MaxPageSize is the maximum allowed page size.
	MaxPageSize = 65536

	// DefaultPageSize is the default page size (4KB).
	DefaultPageSize = 4096
)

// PageHeaderSize is the fixed TablePage header size in bytes:
// pageType(2) + pageID(4) + lsn(8) + nextPageID(4) + lower(4) + upper(4).
const PageHeaderSize = 26

// SlotSize is the fixed size of one slot directory entry: offset(4) + size(4).
const SlotSize = 8

// TupleHeaderSize is the fixed MVCC header prefix on every stored tuple:
// xmin(4) + xmax(4).
const TupleHeaderSize = 8

// PageType identifies the kind of page a TablePage holds.
type PageType uint16

const (
	// PageTypeInvalid marks an unused or zeroed page slot.
	PageTypeInvalid PageType = 0

	// PageTypeHeap marks a page belonging to a table's heap chain.
	PageTypeHeap PageType = 1
)

// InvalidPageID represents "no page" (end of chain, unallocated).
const InvalidPageID uint32 = 0xFFFFFFFF

// MaxPageID is the largest page id the storage file will allocate.
const MaxPageID uint32 = 0x7FFFFFFF

// TxnID is a transaction identifier, stored in every tuple's xmin/xmax
// header fields.
type TxnID uint32

// Transaction id sentinels.
const (
	// MinTxnID is the first transaction id ever allocated.
	MinTxnID TxnID = 1

	// InvalidTxnID marks a tuple slot as never deleted (xmax), meaning
	// the tuple version is live.
	InvalidTxnID TxnID = 0xFFFFFFFF
)

// DataFileName is the default data file name inside an environment directory.
const DataFileName = "relq.dat"

// MaxTables is the default maximum number of tables a catalog will track.
const MaxTables = 4096
