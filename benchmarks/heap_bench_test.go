// Package benchmarks compares relq's page-oriented heap against a
// B+tree embedded store (bbolt) for simple insert workloads, as a
// sanity check that the slotted-page design isn't paying an unreasonable
// tax relative to a mature on-disk structure doing a similar job.
package benchmarks

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/relq/relq"
	bolt "go.etcd.io/bbolt"
)

func schema() *relq.Schema {
	return relq.NewSchema(
		relq.ColumnDef{Name: "id", Type: relq.TypeInt},
		relq.ColumnDef{Name: "name", Type: relq.TypeString},
	)
}

func rowBytes(b *testing.B, s *relq.Schema, id int64) []byte {
	b.Helper()
	data, err := relq.EncodeColumns(s, []relq.Value{
		relq.IntValue(id),
		relq.StringValue(fmt.Sprintf("row-%d", id)),
	})
	if err != nil {
		b.Fatal(err)
	}
	return data
}

func BenchmarkRelqHeapInsert(b *testing.B) {
	opts := relq.DefaultOptions()
	env, err := relq.OpenEnv(b.TempDir(), opts)
	if err != nil {
		b.Fatal(err)
	}
	defer env.Close()

	s := schema()
	txn, err := env.Begin(false)
	if err != nil {
		b.Fatal(err)
	}
	if err := txn.CreateTable("widgets", s); err != nil {
		b.Fatal(err)
	}
	table, err := env.Catalog().Lookup("widgets")
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		plan := &relq.InsertPlan{
			Table:       "widgets",
			FirstPageID: table.FirstPageID,
			Schema:      s,
			Rows: [][]relq.Expr{{
				relq.Literal{Value: relq.IntValue(int64(i))},
				relq.Literal{Value: relq.StringValue(fmt.Sprintf("row-%d", i))},
			}},
			CountColumn: "__insert_count",
		}
		exec := relq.Build(plan, txn.ExecContext())
		if err := exec.Init(); err != nil {
			b.Fatal(err)
		}
		if _, err := exec.Next(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBboltInsert(b *testing.B) {
	path := filepath.Join(b.TempDir(), "bench.bolt")
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		b.Fatal(err)
	}
	defer db.Close()

	s := schema()
	bucket := []byte("widgets")
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	}); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := []byte(fmt.Sprintf("%08d", i))
		val := rowBytes(b, s, int64(i))
		if err := db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket(bucket).Put(key, val)
		}); err != nil {
			b.Fatal(err)
		}
	}
}
