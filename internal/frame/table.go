package frame

// Table is a named, typed columnar record carried through the
// pipeline opaquely (copied, never interpreted by the core).
type Table struct {
	Name    string
	Columns []Column
}

// Column is one typed column of a Table.
type Column struct {
	Name     string
	Unit     string
	ElemType string // container element type code, e.g. "D", "J", "A"
	Width    int    // element width in bytes
	Repeat   int    // number of rows
	Contents []byte
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{Name: t.Name, Columns: make([]Column, len(t.Columns))}
	for i, c := range t.Columns {
		cc := c
		cc.Contents = append([]byte(nil), c.Contents...)
		out.Columns[i] = cc
	}
	return out
}
