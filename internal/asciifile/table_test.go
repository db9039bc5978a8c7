package asciifile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/latan/internal/tensor"
)

func TestTableOrderAndSupersede(t *testing.T) {
	table := NewTable()
	a := MatrixObject(tensor.MustMatrix(1, 1))
	b := MatrixObject(tensor.MustMatrix(2, 2))
	c := MatrixObject(tensor.MustMatrix(3, 3))

	table.Set("b", a)
	table.Set("a", b)
	table.Set("b", c)

	assert.Equal(t, 2, table.Len())
	assert.Equal(t, []string{"b", "a"}, table.Names())

	got, ok := table.Get("b")
	assert.True(t, ok)
	assert.Equal(t, tensor.Shape{3, 3}, got.Matrix.Shape(), "later Set supersedes")

	var seen []string
	for name := range table.All() {
		seen = append(seen, name)
	}
	assert.Equal(t, []string{"b", "a"}, seen)
}

func TestTableReset(t *testing.T) {
	table := NewTable()
	table.Set("x", MatrixObject(tensor.MustMatrix(1, 1)))
	table.Reset()
	assert.Equal(t, 0, table.Len())
	assert.False(t, table.Has("x"))

	table.Set("y", MatrixObject(tensor.MustMatrix(1, 1)))
	assert.Equal(t, []string{"y"}, table.Names())
}

func TestTableAllStopsEarly(t *testing.T) {
	table := NewTable()
	for _, name := range []string{"a", "b", "c"} {
		table.Set(name, MatrixObject(tensor.MustMatrix(1, 1)))
	}
	count := 0
	for range table.All() {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}
