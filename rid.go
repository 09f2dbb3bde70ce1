package relq

import "fmt"

// RID is a tuple's stable logical identity: the page it lives on and its
// slot index within that page's slot directory. The slot index never
// moves once assigned; it stops being valid once the page itself is
// freed.
type RID struct {
	PageID uint32
	Slot   uint32
}

// InvalidRID is the all-ones sentinel for "no row"; it is not the zero
// value of RID.
var InvalidRID = RID{PageID: InvalidPageID, Slot: 0xFFFFFFFF}

func (r RID) String() string {
	return fmt.Sprintf("(%d,%d)", r.PageID, r.Slot)
}

// Valid reports whether r names a real page.
func (r RID) Valid() bool {
	return r.PageID != InvalidPageID
}
