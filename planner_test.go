package relq

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func widgetsSchema() *Schema {
	return NewSchema(
		ColumnDef{Name: "x", Type: TypeInt},
	)
}

func TestPlannerDeleteShape(t *testing.T) {
	cat := NewCatalog(0)
	require.NoError(t, cat.CreateTable("t", 5, widgetsSchema()))
	p := NewPlanner(cat)

	plan, err := p.Plan(DeleteStmt{
		Table:     "t",
		Predicate: Compare{Left: ColumnRef{Name: "x"}, Op: CmpEq, Right: Literal{Value: IntValue(1)}},
	})
	require.NoError(t, err)

	del, ok := plan.(*DeletePlan)
	require.True(t, ok, "top-level node must be Delete")
	require.Equal(t, uint32(5), del.FirstPageID)
	require.Equal(t, "__delete_count", del.CountColumn)
	require.Len(t, del.OutputSchema().Columns, 1)
	require.Equal(t, "__delete_count", del.OutputSchema().Columns[0].Name)
	require.Equal(t, TypeInt, del.OutputSchema().Columns[0].Type)

	filter, ok := del.Child.(*FilterPlan)
	require.True(t, ok)
	scan, ok := filter.Child.(*SeqScanPlan)
	require.True(t, ok)
	require.Equal(t, uint32(5), scan.FirstPageID)
}

func TestPlannerUpdateShape(t *testing.T) {
	cat := NewCatalog(0)
	require.NoError(t, cat.CreateTable("t", 9, widgetsSchema()))
	p := NewPlanner(cat)

	plan, err := p.Plan(UpdateStmt{
		Table:       "t",
		Assignments: map[string]Expr{"x": Literal{Value: IntValue(9)}},
	})
	require.NoError(t, err)

	upd, ok := plan.(*UpdatePlan)
	require.True(t, ok)
	require.Equal(t, uint32(9), upd.FirstPageID)
	require.Equal(t, "__update_count", upd.CountColumn)
}

func TestPlannerSelectWithFilterAndProject(t *testing.T) {
	cat := NewCatalog(0)
	require.NoError(t, cat.CreateTable("t", 2, widgetsSchema()))
	p := NewPlanner(cat)

	plan, err := p.Plan(SelectStmt{
		Table:     "t",
		Predicate: Compare{Left: ColumnRef{Name: "x"}, Op: CmpGt, Right: Literal{Value: IntValue(0)}},
		Columns:   []string{"x"},
	})
	require.NoError(t, err)

	proj, ok := plan.(*ProjectPlan)
	require.True(t, ok)
	_, ok = proj.Child.(*FilterPlan)
	require.True(t, ok)
}
