package lss

import (
	"math"

	"github.com/juju/errors"
	"gonum.org/v1/gonum/floats"
)

// JacobiPreconditioner is the diagonal of the system with the rows fixed by
// strong boundary conditions marked as trivial. Trivial rows only carry a
// diagonal entry that matters, their unknown is rhs/diag.
type JacobiPreconditioner struct {
	invDiag []float64
	trivial []bool
}

// NewJacobiPreconditioner reads the diagonal of the committed matrix.
// trivial holds one flag per scalar row.
func NewJacobiPreconditioner(ds *DOKSystem, trivial []bool) (jp *JacobiPreconditioner, err error) {
	if err = ds.checkReadable(); err != nil {
		return
	}
	nr, _ := ds.Dims()
	if trivial != nil && len(trivial) != nr {
		err = errors.NotValidf("%d trivial row flags for %d rows", len(trivial), nr)
		return
	}
	jp = &JacobiPreconditioner{
		invDiag: make([]float64, nr),
		trivial: make([]bool, nr),
	}
	copy(jp.trivial, trivial)
	for i := 0; i < nr; i++ {
		d := ds.M.At(i, i)
		if d == 0 {
			err = errors.NotValidf("zero diagonal in row %d of %q", i, ds.name)
			return
		}
		jp.invDiag[i] = 1. / d
	}
	return
}

func (jp *JacobiPreconditioner) Apply(r, z []float64) {
	for i := range r {
		z[i] = r[i] * jp.invDiag[i]
	}
}

func (jp *JacobiPreconditioner) IsTrivial(row int) bool { return jp.trivial[row] }

// SolveJacobi runs damped Jacobi sweeps on A x = b starting from x. Trivial
// rows are solved once and left out of the sweeps.
func SolveJacobi(ds *DOKSystem, jp *JacobiPreconditioner, b, x []float64, omega, tol float64,
	maxIter int) (iter int, resNorm float64, err error) {
	var (
		nr, _ = ds.Dims()
		csr   = ds.M.ToCSR()
		ax    = make([]float64, nr)
		r     = make([]float64, nr)
		z     = make([]float64, nr)
		bNorm = floats.Norm(b, 2)
	)
	if len(b) != nr || len(x) != nr {
		err = errors.NotValidf("vectors of length %d and %d for %d rows", len(b), len(x), nr)
		return
	}
	if bNorm == 0 {
		bNorm = 1
	}
	for i := 0; i < nr; i++ {
		if jp.trivial[i] {
			x[i] = b[i] * jp.invDiag[i]
		}
	}
	raw := csr.RawMatrix()
	for iter = 0; iter < maxIter; iter++ {
		for i := 0; i < nr; i++ {
			var sum float64
			for p := raw.Indptr[i]; p < raw.Indptr[i+1]; p++ {
				sum += raw.Data[p] * x[raw.Ind[p]]
			}
			ax[i] = sum
		}
		floats.SubTo(r, b, ax)
		for i := range r {
			if jp.trivial[i] {
				r[i] = 0
			}
		}
		resNorm = floats.Norm(r, 2) / bNorm
		if resNorm < tol {
			return
		}
		if math.IsNaN(resNorm) || math.IsInf(resNorm, 0) {
			err = errors.Errorf("jacobi iteration diverged on %q at sweep %d", ds.name, iter)
			return
		}
		jp.Apply(r, z)
		floats.AddScaled(x, omega, z)
	}
	err = errors.Errorf("jacobi iteration on %q did not converge in %d sweeps, residual %g",
		ds.name, maxIter, resNorm)
	return
}
