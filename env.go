package relq

import "path/filepath"

// Env is the top-level handle onto one on-disk database directory: the
// storage file, buffer pool, lock manager, transaction manager, and
// catalog that an executor tree needs, wired together.
type Env struct {
	sf         *StorageFile
	bufferPool *BufferPool
	lockMgr    *LockManager
	txnMgr     *TxnManager
	catalog    *Catalog
	opts       Options
}

// OpenEnv opens (creating if necessary) the database directory at path
// with the given options.
func OpenEnv(path string, opts Options) (*Env, error) {
	if opts.PageSize == 0 {
		opts = DefaultOptions()
	}
	sf, err := OpenStorageFile(filepath.Join(path, DataFileName), opts.PageSize, opts.Logger)
	if err != nil {
		return nil, err
	}
	return &Env{
		sf:         sf,
		bufferPool: NewBufferPool(sf, opts.BufferPoolPages, opts.Logger),
		lockMgr:    NewLockManager(),
		txnMgr:     NewTxnManager(),
		catalog:    NewCatalog(opts.MaxTables),
		opts:       opts,
	}, nil
}

// Catalog returns the environment's table registry.
func (e *Env) Catalog() *Catalog {
	return e.catalog
}

// Begin starts a new transaction, read-only if readOnly is true.
func (e *Env) Begin(readOnly bool) (*Txn, error) {
	id := e.txnMgr.Begin()
	return &Txn{env: e, id: id, readOnly: readOnly}, nil
}

// Close flushes dirty pages and closes the underlying storage file. The
// caller must ensure no transactions are still open.
func (e *Env) Close() error {
	if err := e.bufferPool.Flush(); err != nil {
		return err
	}
	return e.sf.Close()
}
