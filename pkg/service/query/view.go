package query

import "github.com/crashlens/crashlens/pkg/domain/model"

// View is a read-only window over a dataset: either every row or an
// ordered list of row positions. Filtering a view never copies records.
type View struct {
	ds      *model.Dataset
	indices []int
	all     bool
}

// NewView returns a view over every row of ds
func NewView(ds *model.Dataset) View {
	return View{ds: ds, all: true}
}

// Len returns the number of rows in the view
func (v View) Len() int {
	if v.ds == nil {
		return 0
	}
	if v.all {
		return v.ds.Len()
	}
	return len(v.indices)
}

// Record returns the i-th row of the view
func (v View) Record(i int) *model.Record {
	return v.ds.Record(v.rowOf(i))
}

// Schema returns the schema of the underlying dataset
func (v View) Schema() model.Schema {
	if v.ds == nil {
		return model.NewSchema()
	}
	return v.ds.Schema()
}

// Rows returns the dataset row positions covered by the view, in order
func (v View) Rows() []int {
	rows := make([]int, v.Len())
	for i := range rows {
		rows[i] = v.rowOf(i)
	}
	return rows
}

func (v View) rowOf(i int) int {
	if v.all {
		return i
	}
	return v.indices[i]
}

// subView keeps the given positions of v, which must be ascending
func (v View) subView(positions []int) View {
	rows := make([]int, len(positions))
	for i, p := range positions {
		rows[i] = v.rowOf(p)
	}
	return View{ds: v.ds, indices: rows}
}
