package relq

import "sync"

// Txn is one transaction's handle onto an Env: a transaction id, a
// read-only flag, and the commit/abort lifecycle. It owns no pages of
// its own — mutations flow straight through the TableHeap an executor
// builds from the shared buffer pool and lock manager, stamped with this
// Txn's id.
type Txn struct {
	mu       sync.Mutex
	env      *Env
	id       TxnID
	readOnly bool
	finished bool
}

// ID returns the transaction's allocated id.
func (t *Txn) ID() TxnID {
	return t.id
}

// ReadOnly reports whether this transaction may perform mutations.
func (t *Txn) ReadOnly() bool {
	return t.readOnly
}

// CreateTable registers a new table in the environment's catalog,
// allocating its first heap page. It fails on a read-only transaction.
func (t *Txn) CreateTable(name string, schema *Schema) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.finished {
		return NewError(ErrBadTxn)
	}
	if t.readOnly {
		return WrapError(ErrBadTxn, readOnlyTxnError())
	}
	_, firstPageID, err := CreateTableHeap(name, t.env.bufferPool, t.env.lockMgr, t.id)
	if err != nil {
		return err
	}
	return t.env.catalog.CreateTable(name, firstPageID, schema)
}

// ExecContext builds the ExecContext an executor tree needs to run under
// this transaction.
func (t *Txn) ExecContext() *ExecContext {
	return &ExecContext{BufferPool: t.env.bufferPool, LockMgr: t.env.lockMgr, TxnID: t.id}
}

// Commit releases every lock this transaction holds and flushes dirty
// pages to disk. It returns the transaction's id, matching the commit
// surface a caller uses to log or assert against.
func (t *Txn) Commit() (TxnID, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.finished {
		return t.id, NewError(ErrBadTxn)
	}
	t.finished = true
	t.env.lockMgr.ReleaseAll(t.id)
	t.env.txnMgr.Finish(t.id)
	if !t.readOnly {
		if err := t.env.bufferPool.Flush(); err != nil {
			return t.id, err
		}
	}
	return t.id, nil
}

// Abort releases every lock this transaction holds without flushing. A
// page already written in place by a mutation executor is not rolled
// back by this minimal core — recovery/undo is an external collaborator.
func (t *Txn) Abort() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.finished {
		return NewError(ErrBadTxn)
	}
	t.finished = true
	t.env.lockMgr.ReleaseAll(t.id)
	t.env.txnMgr.Finish(t.id)
	return nil
}
