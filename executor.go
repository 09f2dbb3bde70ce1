package relq

// ExecContext bundles the shared handles an executor tree needs to touch
// storage: the buffer pool and lock manager a TableHeap is built over,
// and the id of the transaction the plan is running under.
type ExecContext struct {
	BufferPool *BufferPool
	LockMgr    *LockManager
	TxnID      TxnID
}

// Executor is the pull-based protocol every plan node lowers to: Init
// prepares the node (and its children) to be pulled, Next returns the
// next row or nil once the node is exhausted.
type Executor interface {
	Init() error
	Next() (*Row, error)
}

// Build lowers a Plan tree into its corresponding Executor tree.
func Build(plan Plan, ctx *ExecContext) Executor {
	switch p := plan.(type) {
	case *SeqScanPlan:
		return &seqScanExec{plan: p, ctx: ctx}
	case *FilterPlan:
		return &filterExec{plan: p, child: Build(p.Child, ctx)}
	case *ProjectPlan:
		return &projectExec{plan: p, child: Build(p.Child, ctx)}
	case *InsertPlan:
		return &insertExec{plan: p, ctx: ctx}
	case *DeletePlan:
		return &deleteExec{plan: p, ctx: ctx, child: Build(p.Child, ctx)}
	case *UpdatePlan:
		return &updateExec{plan: p, ctx: ctx, child: Build(p.Child, ctx)}
	default:
		return &errExec{err: WrapError(ErrCorrupted, unknownPlanNodeError(plan))}
	}
}

// errExec is returned by Build for a plan node type it does not
// recognize, surfacing the error on the first Init call instead of
// panicking deep in a type switch.
type errExec struct{ err error }

func (e *errExec) Init() error         { return e.err }
func (e *errExec) Next() (*Row, error) { return nil, e.err }

// seqScanExec reads every tuple of a table's heap chain in chain order,
// decoding it against the plan's schema. It performs no MVCC visibility
// filtering: that predicate is external to this core.
type seqScanExec struct {
	plan *SeqScanPlan
	ctx  *ExecContext
	it   *TableIterator
	init bool
}

func (e *seqScanExec) Init() error {
	heap := NewTableHeap(e.plan.Table, e.plan.FirstPageID, e.ctx.BufferPool, e.ctx.LockMgr, e.ctx.TxnID)
	e.it = heap.Scan()
	e.init = true
	return nil
}

func (e *seqScanExec) Next() (*Row, error) {
	if !e.init {
		return nil, NewError(ErrNotInitialized)
	}
	tuple, ok, err := e.it.Next()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	values, err := DecodeColumns(e.plan.Schema, tuple.Columns())
	if err != nil {
		return nil, err
	}
	return &Row{Values: values, Rid: tuple.Rid, HasRid: true}, nil
}

// filterExec keeps only rows for which Predicate evaluates truthy.
type filterExec struct {
	plan  *FilterPlan
	child Executor
	init  bool
}

func (e *filterExec) Init() error {
	e.init = true
	return e.child.Init()
}

func (e *filterExec) Next() (*Row, error) {
	if !e.init {
		return nil, NewError(ErrNotInitialized)
	}
	for {
		row, err := e.child.Next()
		if err != nil || row == nil {
			return row, err
		}
		v, err := e.plan.Predicate.Eval(*row)
		if err != nil {
			return nil, err
		}
		if Truthy(v) {
			return row, nil
		}
	}
}

// projectExec narrows rows down to the plan's named columns, preserving
// each row's RID so a Delete/Update plan can still be layered above it.
type projectExec struct {
	plan  *ProjectPlan
	child Executor
	init  bool
}

func (e *projectExec) Init() error {
	e.init = true
	return e.child.Init()
}

func (e *projectExec) Next() (*Row, error) {
	if !e.init {
		return nil, NewError(ErrNotInitialized)
	}
	row, err := e.child.Next()
	if err != nil || row == nil {
		return row, err
	}
	out := make(map[string]Value, len(e.plan.Columns))
	for _, col := range e.plan.Columns {
		v, ok := row.Values[col]
		if !ok {
			return nil, WrapError(ErrTypeError, columnNotFoundError(col))
		}
		out[col] = v
	}
	return &Row{Values: out, Rid: row.Rid, HasRid: row.HasRid}, nil
}

// insertExec evaluates each of the plan's row expressions once against
// an empty input row, inserts the resulting tuples, and produces a
// single summary row counting them.
type insertExec struct {
	plan *InsertPlan
	ctx  *ExecContext
	init bool
	done bool
}

func (e *insertExec) Init() error {
	e.init = true
	return nil
}

func (e *insertExec) Next() (*Row, error) {
	if !e.init {
		return nil, NewError(ErrNotInitialized)
	}
	if e.done {
		return nil, nil
	}
	e.done = true

	heap := NewTableHeap(e.plan.Table, e.plan.FirstPageID, e.ctx.BufferPool, e.ctx.LockMgr, e.ctx.TxnID)
	empty := Row{Values: map[string]Value{}}
	count := int64(0)
	for _, rowExprs := range e.plan.Rows {
		values := make([]Value, len(rowExprs))
		for i, expr := range rowExprs {
			v, err := expr.Eval(empty)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		columns, err := EncodeColumns(e.plan.Schema, values)
		if err != nil {
			return nil, err
		}
		if _, err := heap.Insert(columns); err != nil {
			return nil, err
		}
		count++
	}
	return &Row{Values: map[string]Value{e.plan.CountColumn: IntValue(count)}}, nil
}

// deleteExec pulls every row from its child (expected to carry a RID from
// a SeqScan over the same table) and deletes it, producing a single
// summary row counting the deletions.
type deleteExec struct {
	plan  *DeletePlan
	ctx   *ExecContext
	child Executor
	init  bool
	done  bool
}

func (e *deleteExec) Init() error {
	e.init = true
	return e.child.Init()
}

func (e *deleteExec) Next() (*Row, error) {
	if !e.init {
		return nil, NewError(ErrNotInitialized)
	}
	if e.done {
		return nil, nil
	}
	e.done = true

	heap := NewTableHeap(e.plan.Table, e.plan.FirstPageID, e.ctx.BufferPool, e.ctx.LockMgr, e.ctx.TxnID)
	count := int64(0)
	for {
		row, err := e.child.Next()
		if err != nil {
			return nil, err
		}
		if row == nil {
			break
		}
		if !row.HasRid {
			return nil, NewError(ErrMissingRid)
		}
		if err := heap.Delete(row.Rid); err != nil {
			return nil, err
		}
		count++
	}
	return &Row{Values: map[string]Value{e.plan.CountColumn: IntValue(count)}}, nil
}

// updateExec pulls every row from its child (expected to carry a RID
// from a SeqScan over the same table), applies the plan's assignment
// expressions, and writes the new version, producing a single summary
// row counting the updates.
type updateExec struct {
	plan  *UpdatePlan
	ctx   *ExecContext
	child Executor
	init  bool
	done  bool
}

func (e *updateExec) Init() error {
	e.init = true
	return e.child.Init()
}

func (e *updateExec) Next() (*Row, error) {
	if !e.init {
		return nil, NewError(ErrNotInitialized)
	}
	if e.done {
		return nil, nil
	}
	e.done = true

	heap := NewTableHeap(e.plan.Table, e.plan.FirstPageID, e.ctx.BufferPool, e.ctx.LockMgr, e.ctx.TxnID)
	count := int64(0)
	for {
		row, err := e.child.Next()
		if err != nil {
			return nil, err
		}
		if row == nil {
			break
		}
		if !row.HasRid {
			return nil, NewError(ErrMissingRid)
		}

		newValues := make([]Value, len(e.plan.Schema.Columns))
		for i, col := range e.plan.Schema.Columns {
			if assign, ok := e.plan.Assignments[col.Name]; ok {
				v, err := assign.Eval(*row)
				if err != nil {
					return nil, err
				}
				newValues[i] = v
				continue
			}
			v, ok := row.Values[col.Name]
			if !ok {
				return nil, WrapError(ErrTypeError, columnNotFoundError(col.Name))
			}
			newValues[i] = v
		}
		columns, err := EncodeColumns(e.plan.Schema, newValues)
		if err != nil {
			return nil, err
		}
		if _, err := heap.Update(row.Rid, columns); err != nil {
			return nil, err
		}
		count++
	}
	return &Row{Values: map[string]Value{e.plan.CountColumn: IntValue(count)}}, nil
}
