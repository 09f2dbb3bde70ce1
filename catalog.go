package relq

import "sync"

// TableInfo is a catalog entry: a table's heap chain head and the schema
// its tuples decode against.
type TableInfo struct {
	Name        string
	FirstPageID uint32
	Schema      *Schema
}

// Catalog is the table-name registry the planner and executor consult to
// turn a table name into a heap chain and schema. spec.md treats table
// first_page_ids as an external input; this package owns that mapping so
// CreateTable/Begin/Plan have somewhere concrete to look it up from.
type Catalog struct {
	mu      sync.RWMutex
	tables  map[string]*TableInfo
	maxSize int
}

// NewCatalog creates an empty catalog bounded at maxTables entries.
func NewCatalog(maxTables int) *Catalog {
	if maxTables <= 0 {
		maxTables = MaxTables
	}
	return &Catalog{tables: make(map[string]*TableInfo), maxSize: maxTables}
}

// CreateTable registers a new table with its heap chain head and schema.
func (c *Catalog) CreateTable(name string, firstPageID uint32, schema *Schema) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.tables[name]; ok {
		return NewError(ErrTableExists)
	}
	if len(c.tables) >= c.maxSize {
		return WrapError(ErrIoError, catalogFullError())
	}
	c.tables[name] = &TableInfo{Name: name, FirstPageID: firstPageID, Schema: schema}
	return nil
}

// Lookup returns the registered TableInfo for name.
func (c *Catalog) Lookup(name string) (*TableInfo, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.tables[name]
	if !ok {
		return nil, NewError(ErrTableNotFound)
	}
	return t, nil
}

// DropTable removes a table from the catalog. It does not reclaim the
// table's pages from the storage file.
func (c *Catalog) DropTable(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.tables[name]; !ok {
		return NewError(ErrTableNotFound)
	}
	delete(c.tables, name)
	return nil
}

// Tables returns the names of every registered table.
func (c *Catalog) Tables() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.tables))
	for name := range c.tables {
		out = append(out, name)
	}
	return out
}
