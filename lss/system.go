package lss

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"github.com/juju/errors"
	"github.com/juju/loggo"
	"gonum.org/v1/gonum/mat"
)

var logger = loggo.GetLogger("gocfdbc.lss")

// ErrAssemblyPhase marks writes and reads that break the add / set phasing
// of a system matrix
const ErrAssemblyPhase = errors.ConstError("assembly phase violation")

// Matrix is the access contract of the global system matrix. Writes are
// buffered until the next fence, AddValue accumulates and SetValue
// overwrites, and the two may not be mixed inside one fence interval.
// Reads only see values committed by a fence.
type Matrix interface {
	Dims() (r, c int)
	SetValue(row, col int, val float64)
	AddValue(row, col int, val float64)
	GetValue(row, col int) (float64, error)
	// GetValues reads the block rows x cols into out, row major
	GetValues(rows, cols []int, out []float64) error
	SetValues(rows, cols []int, vals []float64)
	// FlushAssembly commits buffered writes and returns any phasing error
	// recorded since the previous fence
	FlushAssembly() error
	// FinalAssembly is the full barrier required before block reads
	FinalAssembly() error
}

type insertMode uint8

const (
	modeNone insertMode = iota
	modeAdd
	modeSet
)

func (im insertMode) String() string {
	switch im {
	case modeAdd:
		return "add"
	case modeSet:
		return "set"
	}
	return "none"
}

type pendingOp struct {
	i, j int
	v    float64
}

// DOKSystem is a single rank Matrix backed by a dictionary of keys sparse
// matrix. Row and column ids are scalar global ids.
type DOKSystem struct {
	M       *sparse.DOK
	name    string
	pending []pendingOp
	mode    insertMode
	err     error
	// Flushes and Finals count the fences, for diagnostics
	Flushes, Finals int
}

func NewDOKSystem(nr, nc int, name string) (ds *DOKSystem) {
	ds = &DOKSystem{
		M:    sparse.NewDOK(nr, nc),
		name: name,
	}
	return
}

func (ds *DOKSystem) Dims() (r, c int) { return ds.M.Dims() }

func (ds *DOKSystem) Name() string { return ds.name }

func (ds *DOKSystem) SetValue(row, col int, val float64) {
	ds.push(modeSet, row, col, val)
}

func (ds *DOKSystem) AddValue(row, col int, val float64) {
	ds.push(modeAdd, row, col, val)
}

func (ds *DOKSystem) SetValues(rows, cols []int, vals []float64) {
	if len(vals) != len(rows)*len(cols) {
		ds.record(errors.NotValidf("block of %d values for %dx%d indices",
			len(vals), len(rows), len(cols)))
		return
	}
	for ii, i := range rows {
		for jj, j := range cols {
			ds.push(modeSet, i, j, vals[ii*len(cols)+jj])
		}
	}
}

func (ds *DOKSystem) AddValues(rows, cols []int, vals []float64) {
	if len(vals) != len(rows)*len(cols) {
		ds.record(errors.NotValidf("block of %d values for %dx%d indices",
			len(vals), len(rows), len(cols)))
		return
	}
	for ii, i := range rows {
		for jj, j := range cols {
			ds.push(modeAdd, i, j, vals[ii*len(cols)+jj])
		}
	}
}

func (ds *DOKSystem) push(mode insertMode, i, j int, v float64) {
	nr, nc := ds.M.Dims()
	if i < 0 || i >= nr || j < 0 || j >= nc {
		ds.record(errors.NotValidf("entry (%d,%d) of %dx%d matrix %q", i, j, nr, nc, ds.name))
		return
	}
	if ds.mode != modeNone && ds.mode != mode {
		ds.record(errors.Annotatef(ErrAssemblyPhase,
			"%s after %s on matrix %q without a flush", mode, ds.mode, ds.name))
		return
	}
	ds.mode = mode
	ds.pending = append(ds.pending, pendingOp{i, j, v})
}

func (ds *DOKSystem) record(err error) {
	if ds.err == nil {
		ds.err = err
	}
}

func (ds *DOKSystem) checkReadable() error {
	if len(ds.pending) != 0 {
		return errors.Annotatef(ErrAssemblyPhase,
			"read of matrix %q with %d buffered %s writes", ds.name, len(ds.pending), ds.mode)
	}
	return nil
}

func (ds *DOKSystem) GetValue(row, col int) (val float64, err error) {
	if err = ds.checkReadable(); err != nil {
		return
	}
	val = ds.M.At(row, col)
	return
}

func (ds *DOKSystem) GetValues(rows, cols []int, out []float64) (err error) {
	if err = ds.checkReadable(); err != nil {
		return
	}
	if len(out) < len(rows)*len(cols) {
		return errors.NotValidf("output buffer of %d for %dx%d block", len(out), len(rows), len(cols))
	}
	for ii, i := range rows {
		for jj, j := range cols {
			out[ii*len(cols)+jj] = ds.M.At(i, j)
		}
	}
	return
}

func (ds *DOKSystem) FlushAssembly() (err error) {
	for _, op := range ds.pending {
		switch ds.mode {
		case modeAdd:
			ds.M.Set(op.i, op.j, ds.M.At(op.i, op.j)+op.v)
		case modeSet:
			ds.M.Set(op.i, op.j, op.v)
		}
	}
	ds.Flushes++
	logger.Tracef("flush %d of %q committed %d %s writes", ds.Flushes, ds.name, len(ds.pending), ds.mode)
	ds.pending = ds.pending[:0]
	ds.mode = modeNone
	err, ds.err = ds.err, nil
	return
}

func (ds *DOKSystem) FinalAssembly() (err error) {
	err = ds.FlushAssembly()
	ds.Finals++
	return
}

// ZeroRows overwrites every stored entry of the given rows with zero and
// places diag on their diagonal. The writes are buffered like SetValue.
func (ds *DOKSystem) ZeroRows(rows []int, diag float64) (err error) {
	if err = ds.checkReadable(); err != nil {
		return
	}
	target := make(map[int]bool, len(rows))
	for _, r := range rows {
		target[r] = true
	}
	var cols [][2]int
	ds.M.DoNonZero(func(i, j int, v float64) {
		if target[i] && i != j {
			cols = append(cols, [2]int{i, j})
		}
	})
	for _, ij := range cols {
		ds.SetValue(ij[0], ij[1], 0)
	}
	for _, r := range rows {
		ds.SetValue(r, r, diag)
	}
	return
}

// Dense copies the committed matrix, used by small direct solves
func (ds *DOKSystem) Dense() (A *mat.Dense, err error) {
	if err = ds.checkReadable(); err != nil {
		return
	}
	A = mat.DenseCopyOf(ds.M)
	return
}

// MulVec computes A*x through a compressed copy of the committed matrix
func (ds *DOKSystem) MulVec(x []float64) (y []float64, err error) {
	if err = ds.checkReadable(); err != nil {
		return
	}
	nr, nc := ds.M.Dims()
	if len(x) != nc {
		err = errors.NotValidf("vector of length %d for %dx%d matrix", len(x), nr, nc)
		return
	}
	var yv mat.VecDense
	yv.MulVec(ds.M.ToCSR(), mat.NewVecDense(nc, x))
	y = make([]float64, nr)
	for i := range y {
		y[i] = yv.AtVec(i)
	}
	return
}

// Solve solves A x = b with a dense LU factorization of the committed matrix
func (ds *DOKSystem) Solve(b []float64) (x []float64, err error) {
	var A *mat.Dense
	if A, err = ds.Dense(); err != nil {
		return
	}
	nr, _ := A.Dims()
	if len(b) != nr {
		err = errors.NotValidf("rhs of length %d for %d rows", len(b), nr)
		return
	}
	var xv mat.VecDense
	bb := append([]float64(nil), b...)
	if err = xv.SolveVec(A, mat.NewVecDense(nr, bb)); err != nil {
		// rows constrained with ScaleDiagonal leave a large condition number,
		// the solution is still usable
		var cond mat.Condition
		if !errors.As(err, &cond) {
			err = errors.Annotatef(err, "solving %q", ds.name)
			return
		}
		logger.Debugf("solving %q: condition number %g", ds.name, float64(cond))
		err = nil
	}
	x = make([]float64, nr)
	for i := range x {
		x[i] = xv.AtVec(i)
	}
	return
}

func (ds *DOKSystem) String() string {
	nr, nc := ds.M.Dims()
	return fmt.Sprintf("%s: %dx%d, %d stored entries, %d buffered %s writes",
		ds.name, nr, nc, ds.M.NNZ(), len(ds.pending), ds.mode)
}
