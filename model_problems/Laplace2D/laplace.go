package Laplace2D

import (
	"fmt"
	"math"

	"github.com/juju/errors"
	"github.com/juju/loggo"
	"github.com/notargets/gocfdbc/bc"
	"github.com/notargets/gocfdbc/lss"
	"github.com/notargets/gocfdbc/mesh"
	"github.com/notargets/gocfdbc/physics"
	"github.com/notargets/gocfdbc/utils"
	"github.com/notargets/gocfdbc/vfunc"
)

var logger = loggo.GetLogger("gocfdbc.laplace2d")

// Laplace2D solves -div(grad u) = f with P1 finite elements on a
// structured triangulation, boundary values imposed strongly
type Laplace2D struct {
	Grid    *mesh.TriGrid
	Model   physics.ModelConfig
	System  *lss.DOKSystem
	RHS     []float64
	Flags   *bc.FlagRegistry
	Mapping *lss.LocalToGlobal
	Strong  []bc.StrongCommand
	Source  *vfunc.VectorialFunction
	Solver  string // "direct" or "jacobi"
	MaxIter int
	Tol     float64
}

func NewLaplace2D(nx, ny int, xmin, xmax, ymin, ymax float64) (lp *Laplace2D, err error) {
	lp = &Laplace2D{Solver: "direct", MaxIter: 10000, Tol: 1.e-10}
	if lp.Grid, err = mesh.NewTriGrid(nx, ny, xmin, xmax, ymin, ymax, 1, nil, 0); err != nil {
		return nil, errors.Trace(err)
	}
	if lp.Model, err = physics.NewModelConfig("Laplace2D", 2, 1, "u"); err != nil {
		return nil, errors.Trace(err)
	}
	n := lp.Grid.States.Len()
	lp.Flags = bc.NewFlagRegistry(n, 1)
	lp.Mapping = lss.NewIdentityMapping(n)
	return
}

// Partition restricts the solve to the states owned by rank. The rows of
// the other states are frozen at their current values.
func (lp *Laplace2D) Partition(pm *utils.PartitionMap, rank int) (err error) {
	var m *lss.LocalToGlobal
	if m, err = lss.NewLocalToGlobal(lp.Grid.States.GlobalIDs, pm, rank); err != nil {
		return errors.Trace(err)
	}
	lp.Mapping = m
	lp.Grid.States.SetOwnership(m)
	return
}

// SetSource sets f from an expression of x and y
func (lp *Laplace2D) SetSource(def string) (err error) {
	lp.Source, err = vfunc.New([]string{"x", "y"}, []string{def})
	return
}

// AddDirichlet attaches a strong condition to the named boundary regions
func (lp *Laplace2D) AddDirichlet(name string, opts bc.DirichletOptions, trsNames ...string) (err error) {
	var trsList []*mesh.TRS
	for _, tn := range trsNames {
		trs := mesh.FindTRS(lp.Grid.TRS, tn)
		if trs == nil {
			return errors.NotFoundf("boundary region %q", tn)
		}
		trsList = append(trsList, trs)
	}
	cmd := bc.NewDirichletBC(name)
	if err = cmd.Configure(opts); err != nil {
		return
	}
	if err = cmd.Setup(lp.Model, lp.Flags, trsList); err != nil {
		return
	}
	lp.Strong = append(lp.Strong, cmd)
	return
}

// Assemble builds the system of one pass: element contributions are added,
// then every strong command overwrites its rows
func (lp *Laplace2D) Assemble() (err error) {
	var (
		st  = lp.Grid.States
		n   = st.Len()
		ke  = make([]float64, 9)
		fv  = make([]float64, 1)
		xy  = make([]float64, 2)
		ids []int
	)
	lp.Flags.Reset()
	lp.System = lss.NewDOKSystem(n, n, lp.Model.Name)
	lp.RHS = make([]float64, n)
	for k, elem := range lp.Grid.Elements {
		var (
			x0, x1, x2 = st.Coordinates(elem[0]), st.Coordinates(elem[1]), st.Coordinates(elem[2])
			b          = [3]float64{x1[1] - x2[1], x2[1] - x0[1], x0[1] - x1[1]}
			c          = [3]float64{x2[0] - x1[0], x0[0] - x2[0], x1[0] - x0[0]}
			area       = 0.5 * (b[0]*c[1] - b[1]*c[0])
		)
		if area <= 0 {
			return errors.Errorf("element %d has area %g", k, area)
		}
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				ke[i*3+j] = (b[i]*b[j] + c[i]*c[j]) / (4 * area)
			}
		}
		ids = append(ids[:0], elem...)
		lp.System.AddValues(ids, ids, ke)
		if lp.Source != nil {
			xy[0] = (x0[0] + x1[0] + x2[0]) / 3
			xy[1] = (x0[1] + x1[1] + x2[1]) / 3
			if err = lp.Source.Evaluate(xy, fv); err != nil {
				return errors.Trace(err)
			}
			for _, id := range elem {
				lp.RHS[id] += fv[0] * area / 3
			}
		}
	}
	s := &bc.Sockets{
		Model:     lp.Model,
		States:    st,
		Adjacency: lp.Grid.Adj,
		RHS:       lp.RHS,
		System:    lp.System,
		Mapping:   lp.Mapping,
		Flags:     lp.Flags,
	}
	for _, cmd := range lp.Strong {
		if err = bc.ExecuteStrong(cmd, s); err != nil {
			return errors.Annotatef(err, "boundary %s", cmd.Name())
		}
	}
	var foreign []int
	for id := 0; id < n; id++ {
		if !st.IsParUpdatable(id) {
			row := lp.Mapping.RowID(id)
			foreign = append(foreign, row)
			lp.RHS[row] = st.State(id)[0]
		}
	}
	if len(foreign) > 0 {
		if err = lp.System.FlushAssembly(); err != nil {
			return errors.Trace(err)
		}
		if err = lp.System.ZeroRows(foreign, 1); err != nil {
			return errors.Trace(err)
		}
	}
	if err = lp.System.FinalAssembly(); err != nil {
		return errors.Trace(err)
	}
	logger.Debugf("assembled %s", lp.System)
	return
}

// Solve solves the assembled system and stores the solution in the states
func (lp *Laplace2D) Solve() (err error) {
	var x []float64
	switch lp.Solver {
	case "direct", "":
		if x, err = lp.System.Solve(lp.RHS); err != nil {
			return errors.Trace(err)
		}
	case "jacobi":
		var (
			jp   *lss.JacobiPreconditioner
			n    = len(lp.RHS)
			iter int
			res  float64
		)
		if jp, err = lss.NewJacobiPreconditioner(lp.System, lp.Flags.TrivialRows(lp.Mapping, n)); err != nil {
			return errors.Trace(err)
		}
		x = make([]float64, n)
		if iter, res, err = lss.SolveJacobi(lp.System, jp, lp.RHS, x, 1, lp.Tol, lp.MaxIter); err != nil {
			return errors.Trace(err)
		}
		logger.Infof("jacobi converged in %d sweeps, residual %g", iter, res)
	default:
		return errors.NotValidf("solver %q", lp.Solver)
	}
	copy(lp.Grid.States.Values, x)
	return
}

// Run assembles and solves once
func (lp *Laplace2D) Run() (err error) {
	if err = lp.Assemble(); err != nil {
		return
	}
	return lp.Solve()
}

// MaxError is the largest nodal deviation from exact
func (lp *Laplace2D) MaxError(exact func(x, y float64) float64) (maxErr float64) {
	st := lp.Grid.States
	for id := 0; id < st.Len(); id++ {
		x := st.Coordinates(id)
		maxErr = math.Max(maxErr, math.Abs(st.State(id)[0]-exact(x[0], x[1])))
	}
	return
}

func (lp *Laplace2D) Print() {
	st := lp.Grid.States
	fmt.Printf("Laplace2D on %dx%d cells, %d states, %d boundary commands\n",
		lp.Grid.Nx, lp.Grid.Ny, st.Len(), len(lp.Strong))
	for j := lp.Grid.Ny; j >= 0; j-- {
		for i := 0; i <= lp.Grid.Nx; i++ {
			fmt.Printf("%10.5f ", st.State(i + j*(lp.Grid.Nx+1))[0])
		}
		fmt.Printf("\n")
	}
}
