package key

// denseLimit bounds the codes stored in the slice part of a Table.
const denseLimit = 1024

// Table maps native key codes to Key ids. Codes below 1024 are held in a
// dense slice and larger codes (X11 keysyms) in a map.
//
// A Table is not safe for concurrent mutation. The static platform tables
// are populated once and only read afterwards.
type Table struct {
	dense  []Key
	sparse map[uint32]Key
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{}
}

// TableFrom builds a table from a code to key map.
func TableFrom(m map[uint32]Key) *Table {
	t := NewTable()
	for code, k := range m {
		t.Set(code, k)
	}
	return t
}

// Set maps code to k.
func (t *Table) Set(code uint32, k Key) {
	if code < denseLimit {
		if int(code) >= len(t.dense) {
			grown := make([]Key, code+1)
			copy(grown, t.dense)
			t.dense = grown
		}
		t.dense[code] = k
		return
	}
	if t.sparse == nil {
		t.sparse = make(map[uint32]Key)
	}
	t.sparse[code] = k
}

// Lookup returns the key for code, or KeyUnknown when the code is unmapped.
func (t *Table) Lookup(code uint32) Key {
	if t == nil {
		return KeyUnknown
	}
	if code < denseLimit {
		if int(code) < len(t.dense) && t.dense[code] != 0 {
			return t.dense[code]
		}
		return KeyUnknown
	}
	if k, ok := t.sparse[code]; ok {
		return k
	}
	return KeyUnknown
}

// Has reports whether code has a mapping.
func (t *Table) Has(code uint32) bool {
	return t.Lookup(code) != KeyUnknown
}

// Len returns the number of mapped codes.
func (t *Table) Len() int {
	n := len(t.sparse)
	for _, k := range t.dense {
		if k != 0 {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the table.
func (t *Table) Clone() *Table {
	c := &Table{dense: append([]Key(nil), t.dense...)}
	if t.sparse != nil {
		c.sparse = make(map[uint32]Key, len(t.sparse))
		for code, k := range t.sparse {
			c.sparse[code] = k
		}
	}
	return c
}
