package asciifile

import "iter"

// Table is an insertion-ordered, name-indexed set of decoded objects.
// Setting an existing name replaces its object and keeps its position.
type Table struct {
	names   []string
	objects map[string]Object
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{objects: make(map[string]Object)}
}

// Len returns the number of objects.
func (t *Table) Len() int {
	return len(t.names)
}

// Set stores obj under name.
func (t *Table) Set(name string, obj Object) {
	if _, ok := t.objects[name]; !ok {
		t.names = append(t.names, name)
	}
	t.objects[name] = obj
}

// Get returns the object stored under name.
func (t *Table) Get(name string) (Object, bool) {
	obj, ok := t.objects[name]
	return obj, ok
}

// Has reports whether name is present.
func (t *Table) Has(name string) bool {
	_, ok := t.objects[name]
	return ok
}

// Names returns the object names in insertion order.
func (t *Table) Names() []string {
	return append([]string(nil), t.names...)
}

// All returns an iterator over (name, object) pairs in insertion order.
func (t *Table) All() iter.Seq2[string, Object] {
	return func(yield func(string, Object) bool) {
		for _, name := range t.names {
			if !yield(name, t.objects[name]) {
				return
			}
		}
	}
}

// Reset removes all objects.
func (t *Table) Reset() {
	t.names = nil
	clear(t.objects)
}

// replace swaps the table contents for other's.
func (t *Table) replace(other *Table) {
	t.names = other.names
	t.objects = other.objects
}
