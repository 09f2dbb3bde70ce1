package relq

// Tuple is a byte buffer carrying row data preceded by MVCC headers: the
// creating transaction id (xmin) and the deleting transaction id (xmax).
// Layout: [xmin:u32][xmax:u32][columns...], columns encoded schema-driven
// by codec.go. A Tuple read from storage also carries the RID it was read
// from; a freshly built Tuple destined for insert may omit it.
type Tuple struct {
	Data []byte
	Rid  RID
	HasRid bool
}

// NewTuple builds a fresh tuple around already-encoded column bytes,
// stamping xmin and leaving xmax live (InvalidTxnID).
func NewTuple(xmin TxnID, columns []byte) Tuple {
	buf := make([]byte, TupleHeaderSize+len(columns))
	putUint32LE(buf[0:4], uint32(xmin))
	putUint32LE(buf[4:8], uint32(InvalidTxnID))
	copy(buf[TupleHeaderSize:], columns)
	return Tuple{Data: buf}
}

// TupleFromBytes wraps storage bytes (header + columns) as a Tuple
// attached to rid, without copying.
func TupleFromBytes(rid RID, data []byte) Tuple {
	return Tuple{Data: data, Rid: rid, HasRid: true}
}

// Xmin returns the creating transaction id.
func (t Tuple) Xmin() TxnID {
	return TxnID(getUint32LE(t.Data[0:4]))
}

// Xmax returns the deleting transaction id, or InvalidTxnID if live.
func (t Tuple) Xmax() TxnID {
	return TxnID(getUint32LE(t.Data[4:8]))
}

// SetXmax overwrites only the xmax field with txnID, leaving every other
// byte untouched.
func (t Tuple) SetXmax(txnID TxnID) {
	putUint32LE(t.Data[4:8], uint32(txnID))
}

// IsLive reports whether the tuple has not been logically deleted.
func (t Tuple) IsLive() bool {
	return t.Xmax() == InvalidTxnID
}

// Columns returns the tuple's column bytes, excluding the MVCC header.
func (t Tuple) Columns() []byte {
	return t.Data[TupleHeaderSize:]
}
