// Package relq is a small disk-backed relational storage and execution
// core: a slotted heap page format with MVCC visibility fields, a
// TableHeap abstraction stitching pages into a table, a pull-based
// executor tree (SeqScan/Filter/Project/Insert/Delete/Update), and a
// planner lowering bound statements into that executor tree.
//
// relq does not parse SQL, optimize queries, or maintain indexes — it
// is the storage-and-execution layer a query planner/parser sits on
// top of. The SQL lexer/parser/binder, catalog persistence, and
// recovery/WAL subsystem are external collaborators.
//
// Basic usage:
//
//	env, err := relq.OpenEnv("/path/to/db", relq.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer env.Close()
//
//	txn, err := env.Begin(false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := txn.CreateTable("widgets", schema); err != nil {
//	    txn.Abort()
//	    log.Fatal(err)
//	}
//
//	plan, err := relq.NewPlanner(env.Catalog()).Plan(stmt)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	exec := relq.Build(plan, txn.ExecContext())
//	if err := exec.Init(); err != nil {
//	    txn.Abort()
//	    log.Fatal(err)
//	}
//	for {
//	    row, err := exec.Next()
//	    if err != nil {
//	        txn.Abort()
//	        log.Fatal(err)
//	    }
//	    if row == nil {
//	        break
//	    }
//	}
//
//	if _, err := txn.Commit(); err != nil {
//	    log.Fatal(err)
//	}
package relq
