package relq

// Statement is the minimal bound-statement shape this package's planner
// lowers into a Plan tree. It stands in for the external SQL
// parser/binder: by the time a Statement reaches Plan, table names have
// already been resolved and expressions already bound to columns.
type Statement interface {
	statement()
}

// SelectStmt reads rows from Table, optionally filtering with Predicate
// and narrowing to Columns (nil means all columns in schema order).
type SelectStmt struct {
	Table     string
	Predicate Expr
	Columns   []string
}

func (SelectStmt) statement() {}

// InsertStmt appends Rows (each a list of value expressions in schema
// column order) to Table.
type InsertStmt struct {
	Table string
	Rows  [][]Expr
}

func (InsertStmt) statement() {}

// DeleteStmt removes every row of Table matching Predicate (nil matches
// every row).
type DeleteStmt struct {
	Table     string
	Predicate Expr
}

func (DeleteStmt) statement() {}

// UpdateStmt applies Assignments to every row of Table matching
// Predicate (nil matches every row).
type UpdateStmt struct {
	Table       string
	Predicate   Expr
	Assignments map[string]Expr
}

func (UpdateStmt) statement() {}

// Planner lowers bound Statements to Plan trees, resolving table names
// against a Catalog.
type Planner struct {
	catalog *Catalog
}

// NewPlanner creates a Planner resolving table names against catalog.
func NewPlanner(catalog *Catalog) *Planner {
	return &Planner{catalog: catalog}
}

// Plan lowers stmt into its Plan tree.
func (p *Planner) Plan(stmt Statement) (Plan, error) {
	switch s := stmt.(type) {
	case SelectStmt:
		return p.planSelect(s)
	case InsertStmt:
		return p.planInsert(s)
	case DeleteStmt:
		return p.planDelete(s)
	case UpdateStmt:
		return p.planUpdate(s)
	default:
		return nil, WrapError(ErrCorrupted, unknownStatementError(stmt))
	}
}

func (p *Planner) planSelect(s SelectStmt) (Plan, error) {
	table, err := p.catalog.Lookup(s.Table)
	if err != nil {
		return nil, err
	}
	var plan Plan = &SeqScanPlan{Table: s.Table, FirstPageID: table.FirstPageID, Schema: table.Schema}
	if s.Predicate != nil {
		plan = &FilterPlan{Child: plan, Predicate: s.Predicate}
	}
	if s.Columns != nil {
		plan = &ProjectPlan{Child: plan, Columns: s.Columns, Schema: projectedSchema(table.Schema, s.Columns)}
	}
	return plan, nil
}

func (p *Planner) planInsert(s InsertStmt) (Plan, error) {
	table, err := p.catalog.Lookup(s.Table)
	if err != nil {
		return nil, err
	}
	return &InsertPlan{
		Table:       s.Table,
		FirstPageID: table.FirstPageID,
		Schema:      table.Schema,
		Rows:        s.Rows,
		CountColumn: "__insert_count",
	}, nil
}

func (p *Planner) planDelete(s DeleteStmt) (Plan, error) {
	table, err := p.catalog.Lookup(s.Table)
	if err != nil {
		return nil, err
	}
	var child Plan = &SeqScanPlan{Table: s.Table, FirstPageID: table.FirstPageID, Schema: table.Schema}
	if s.Predicate != nil {
		child = &FilterPlan{Child: child, Predicate: s.Predicate}
	}
	return &DeletePlan{
		Child:       child,
		Table:       s.Table,
		FirstPageID: table.FirstPageID,
		CountColumn: "__delete_count",
	}, nil
}

func (p *Planner) planUpdate(s UpdateStmt) (Plan, error) {
	table, err := p.catalog.Lookup(s.Table)
	if err != nil {
		return nil, err
	}
	var child Plan = &SeqScanPlan{Table: s.Table, FirstPageID: table.FirstPageID, Schema: table.Schema}
	if s.Predicate != nil {
		child = &FilterPlan{Child: child, Predicate: s.Predicate}
	}
	return &UpdatePlan{
		Child:       child,
		Table:       s.Table,
		FirstPageID: table.FirstPageID,
		Schema:      table.Schema,
		Assignments: s.Assignments,
		CountColumn: "__update_count",
	}, nil
}

func projectedSchema(full *Schema, columns []string) *Schema {
	cols := make([]ColumnDef, 0, len(columns))
	for _, name := range columns {
		if i := full.IndexOf(name); i >= 0 {
			cols = append(cols, full.Columns[i])
		}
	}
	return &Schema{Columns: cols}
}
