package relq

// Plan is one immutable node of a plan tree: SeqScan, Filter, Project,
// Insert, Delete, or Update. Plans describe what to run; Build turns a
// Plan into an executor that actually runs it.
type Plan interface {
	// OutputSchema is the schema of rows this plan node produces.
	OutputSchema() *Schema
}

// SeqScanPlan reads every tuple of a table's heap chain, in chain order,
// without regard to MVCC visibility: neither the plan nor its executor
// filters out tuples whose xmax is set.
type SeqScanPlan struct {
	Table       string
	FirstPageID uint32
	Schema      *Schema
}

func (p *SeqScanPlan) OutputSchema() *Schema { return p.Schema }

// FilterPlan keeps only the rows from Child for which Predicate is
// truthy.
type FilterPlan struct {
	Child     Plan
	Predicate Expr
}

func (p *FilterPlan) OutputSchema() *Schema { return p.Child.OutputSchema() }

// ProjectPlan narrows and reorders Child's rows to the named Columns.
type ProjectPlan struct {
	Child   Plan
	Columns []string
	Schema  *Schema
}

func (p *ProjectPlan) OutputSchema() *Schema { return p.Schema }

// InsertPlan evaluates Rows once each against an empty input row and
// inserts the resulting tuples into Table's heap. Its output is a single
// summary row counting the rows inserted.
type InsertPlan struct {
	Table       string
	FirstPageID uint32
	Schema      *Schema
	Rows        [][]Expr
	CountColumn string
}

func (p *InsertPlan) OutputSchema() *Schema { return MutationSummarySchema(p.CountColumn) }

// DeletePlan pulls rows from Child (expected to originate in a SeqScan
// over Table, carrying RIDs) and deletes each one from Table's heap. Its
// output is a single summary row counting the rows deleted.
type DeletePlan struct {
	Child       Plan
	Table       string
	FirstPageID uint32
	CountColumn string
}

func (p *DeletePlan) OutputSchema() *Schema { return MutationSummarySchema(p.CountColumn) }

// UpdatePlan pulls rows from Child (expected to originate in a SeqScan
// over Table, carrying RIDs), applies Assignments to each, and updates
// Table's heap. Its output is a single summary row counting the rows
// updated.
type UpdatePlan struct {
	Child       Plan
	Table       string
	FirstPageID uint32
	Schema      *Schema
	Assignments map[string]Expr
	CountColumn string
}

func (p *UpdatePlan) OutputSchema() *Schema { return MutationSummarySchema(p.CountColumn) }
