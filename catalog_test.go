package relq

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatalogCreateLookupDrop(t *testing.T) {
	c := NewCatalog(0)
	schema := NewSchema(ColumnDef{Name: "x", Type: TypeInt})

	require.NoError(t, c.CreateTable("widgets", 3, schema))
	require.Error(t, c.CreateTable("widgets", 3, schema), "duplicate name must fail")

	info, err := c.Lookup("widgets")
	require.NoError(t, err)
	require.Equal(t, uint32(3), info.FirstPageID)

	require.NoError(t, c.DropTable("widgets"))
	_, err = c.Lookup("widgets")
	require.Equal(t, ErrTableNotFound, Code(err))
}

func TestLockManagerSharedAndExclusive(t *testing.T) {
	lm := NewLockManager()
	rid := RID{PageID: 1, Slot: 0}

	require.NoError(t, lm.LockRow(1, "t", rid, LockShared))
	require.NoError(t, lm.LockRow(2, "t", rid, LockShared))

	err := lm.LockRow(3, "t", rid, LockExclusive)
	require.Error(t, err)
	require.True(t, IsBusy(err))

	lm.ReleaseAll(1)
	lm.ReleaseAll(2)
	require.NoError(t, lm.LockRow(3, "t", rid, LockExclusive))
}
