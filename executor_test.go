package relq

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func setupXTable(t *testing.T) (*Env, *Txn, *Schema) {
	t.Helper()
	env := newTestEnv(t)
	txn, err := env.Begin(false)
	require.NoError(t, err)
	schema := widgetsSchema()
	require.NoError(t, txn.CreateTable("t", schema))
	return env, txn, schema
}

func drain(t *testing.T, exec Executor) []*Row {
	t.Helper()
	require.NoError(t, exec.Init())
	var rows []*Row
	for {
		row, err := exec.Next()
		require.NoError(t, err)
		if row == nil {
			break
		}
		rows = append(rows, row)
	}
	return rows
}

func TestExecutorInsertThenScan(t *testing.T) {
	env, txn, schema := setupXTable(t)
	table, err := env.Catalog().Lookup("t")
	require.NoError(t, err)

	insertPlan := &InsertPlan{
		Table:       "t",
		FirstPageID: table.FirstPageID,
		Schema:      schema,
		Rows: [][]Expr{
			{Literal{Value: IntValue(1)}},
			{Literal{Value: IntValue(2)}},
			{Literal{Value: IntValue(1)}},
		},
		CountColumn: "__insert_count",
	}
	rows := drain(t, Build(insertPlan, txn.ExecContext()))
	require.Len(t, rows, 1)
	require.Equal(t, int64(3), rows[0].Values["__insert_count"].I)

	scanPlan := &SeqScanPlan{Table: "t", FirstPageID: table.FirstPageID, Schema: schema}
	scanned := drain(t, Build(scanPlan, txn.ExecContext()))
	require.Len(t, scanned, 3)
	for _, r := range scanned {
		require.True(t, r.HasRid)
	}
}

func TestExecutorDeleteMatchesE6(t *testing.T) {
	env, txn, schema := setupXTable(t)
	table, err := env.Catalog().Lookup("t")
	require.NoError(t, err)

	insertPlan := &InsertPlan{
		Table:       "t",
		FirstPageID: table.FirstPageID,
		Schema:      schema,
		Rows: [][]Expr{
			{Literal{Value: IntValue(1)}},
			{Literal{Value: IntValue(2)}},
			{Literal{Value: IntValue(1)}},
		},
		CountColumn: "__insert_count",
	}
	_ = drain(t, Build(insertPlan, txn.ExecContext()))

	planner := NewPlanner(env.Catalog())
	plan, err := planner.Plan(DeleteStmt{
		Table:     "t",
		Predicate: Compare{Left: ColumnRef{Name: "x"}, Op: CmpEq, Right: Literal{Value: IntValue(1)}},
	})
	require.NoError(t, err)

	rows := drain(t, Build(plan, txn.ExecContext()))
	require.Len(t, rows, 1)
	require.Equal(t, int64(2), rows[0].Values["__delete_count"].I)

	scanPlan := &SeqScanPlan{Table: "t", FirstPageID: table.FirstPageID, Schema: schema}
	scanned := drain(t, Build(scanPlan, txn.ExecContext()))
	require.Len(t, scanned, 3, "deleted tuples remain present in a raw scan")

	liveCount := 0
	for _, r := range scanned {
		tup, err := NewTableHeap("t", table.FirstPageID, env.bufferPool, env.lockMgr, txn.id).Get(r.Rid)
		require.NoError(t, err)
		if tup.IsLive() {
			liveCount++
		}
	}
	require.Equal(t, 1, liveCount)

	_, err = txn.Commit()
	require.NoError(t, err)
}

func TestExecutorUpdate(t *testing.T) {
	env, txn, schema := setupXTable(t)
	table, err := env.Catalog().Lookup("t")
	require.NoError(t, err)

	_ = drain(t, Build(&InsertPlan{
		Table:       "t",
		FirstPageID: table.FirstPageID,
		Schema:      schema,
		Rows:        [][]Expr{{Literal{Value: IntValue(1)}}},
		CountColumn: "__insert_count",
	}, txn.ExecContext()))

	planner := NewPlanner(env.Catalog())
	plan, err := planner.Plan(UpdateStmt{
		Table:       "t",
		Assignments: map[string]Expr{"x": Literal{Value: IntValue(99)}},
	})
	require.NoError(t, err)

	rows := drain(t, Build(plan, txn.ExecContext()))
	require.Equal(t, int64(1), rows[0].Values["__update_count"].I)

	scanned := drain(t, Build(&SeqScanPlan{Table: "t", FirstPageID: table.FirstPageID, Schema: schema}, txn.ExecContext()))
	found99 := false
	for _, r := range scanned {
		if r.Values["x"].Valid && r.Values["x"].I == 99 {
			found99 = true
		}
	}
	require.True(t, found99)
}

func TestExecutorDeleteMissingRid(t *testing.T) {
	env, txn, _ := setupXTable(t)
	table, err := env.Catalog().Lookup("t")
	require.NoError(t, err)

	del := &DeletePlan{
		Table:       "t",
		FirstPageID: table.FirstPageID,
		CountColumn: "__delete_count",
	}
	exec := &deleteExec{
		plan:  del,
		ctx:   txn.ExecContext(),
		child: &literalRowExec{row: &Row{Values: map[string]Value{}}},
	}
	require.NoError(t, exec.Init())
	_, err = exec.Next()
	require.Error(t, err)
	require.Equal(t, ErrMissingRid, Code(err))
}

// literalRowExec is a test-only Executor producing one row with no RID,
// used to exercise the ErrMissingRid path without a real SeqScan.
type literalRowExec struct {
	row  *Row
	done bool
}

func (e *literalRowExec) Init() error { return nil }
func (e *literalRowExec) Next() (*Row, error) {
	if e.done {
		return nil, nil
	}
	e.done = true
	return e.row, nil
}
