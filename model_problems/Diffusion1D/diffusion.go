package Diffusion1D

import (
	"fmt"
	"math"

	"github.com/juju/errors"
	"github.com/juju/loggo"
	"github.com/notargets/gocfdbc/bc"
	"github.com/notargets/gocfdbc/mesh"
	"github.com/notargets/gocfdbc/physics"
	"gonum.org/v1/gonum/floats"
)

var logger = loggo.GetLogger("gocfdbc.diffusion1d")

// Diffusion1D marches u_t = nu u_xx to steady state with a cell centered
// finite volume scheme. Boundary faces see the ghost states set by the
// inlet commands before every step.
type Diffusion1D struct {
	Grid   *mesh.Line1D
	Model  physics.ModelConfig
	VarSet physics.VarSet
	Nu     float64
	CFL    float64
	Ghost  []bc.GhostCommand
	Time   float64
	resid  []float64
}

func NewDiffusion1D(n int, xmin, xmax, nu, cfl float64) (d *Diffusion1D, err error) {
	if nu <= 0 || cfl <= 0 {
		return nil, errors.NotValidf("diffusivity %g and CFL %g", nu, cfl)
	}
	d = &Diffusion1D{Nu: nu, CFL: cfl, VarSet: physics.NewIdentityVarSet(1)}
	if d.Grid, err = mesh.NewLine1D(n, xmin, xmax, 1); err != nil {
		return nil, errors.Trace(err)
	}
	if d.Model, err = physics.NewModelConfig("Diffusion1D", 1, 1, "u"); err != nil {
		return nil, errors.Trace(err)
	}
	d.resid = make([]float64, n)
	return
}

// AddInlet attaches a ghost state command to the named boundary regions
func (d *Diffusion1D) AddInlet(name string, opts bc.ProjectionOptions, trsNames ...string) (err error) {
	var trsList []*mesh.TRS
	for _, tn := range trsNames {
		trs := mesh.FindTRS(d.Grid.TRS, tn)
		if trs == nil {
			return errors.NotFoundf("boundary region %q", tn)
		}
		trsList = append(trsList, trs)
	}
	cmd := bc.NewSuperInletProjection(name)
	if err = cmd.Configure(opts); err != nil {
		return
	}
	if err = cmd.Setup(d.Model, d.VarSet, trsList); err != nil {
		return
	}
	d.Ghost = append(d.Ghost, cmd)
	return
}

func (d *Diffusion1D) sockets() *bc.Sockets {
	return &bc.Sockets{
		Model:  d.Model.AtTime(d.Time),
		States: d.Grid.States,
		Ghosts: d.Grid.Ghosts,
	}
}

// Step advances one explicit step of size dt and returns the max norm of
// the update rate
func (d *Diffusion1D) Step(dt float64) (rate float64, err error) {
	var (
		g = d.Grid
		u = g.States.Values
		s = d.sockets()
	)
	for _, cmd := range d.Ghost {
		if err = bc.ExecuteGhost(cmd, s); err != nil {
			return 0, errors.Annotatef(err, "boundary %s", cmd.Name())
		}
	}
	left, right := g.Ghosts.State(0)[0], g.Ghosts.State(1)[0]
	ih2 := d.Nu / (g.H * g.H)
	for k := 0; k < g.N; k++ {
		um, up := left, right
		if k > 0 {
			um = u[k-1]
		}
		if k < g.N-1 {
			up = u[k+1]
		}
		d.resid[k] = ih2 * (um - 2*u[k] + up)
	}
	floats.AddScaled(u, dt, d.resid)
	d.Time += dt
	rate = floats.Norm(d.resid, math.Inf(1))
	return
}

// Run steps until the update rate falls below tol or finalTime is reached
func (d *Diffusion1D) Run(finalTime, tol float64) (steps int, rate float64, err error) {
	dt := d.CFL * d.Grid.H * d.Grid.H / d.Nu
	for d.Time < finalTime {
		if rate, err = d.Step(math.Min(dt, finalTime-d.Time)); err != nil {
			return
		}
		steps++
		if steps%1000 == 0 {
			logger.Debugf("step %d, t = %g, rate %g", steps, d.Time, rate)
		}
		if rate < tol {
			break
		}
	}
	logger.Infof("%d steps to t = %g, rate %g", steps, d.Time, rate)
	return
}

func (d *Diffusion1D) Print() {
	g := d.Grid
	fmt.Printf("Diffusion1D, %d cells, t = %8.5f\n", g.N, d.Time)
	for k := 0; k < g.N; k++ {
		fmt.Printf("x = %8.5f, u = %12.8f\n", g.States.Coordinates(k)[0], g.States.State(k)[0])
	}
}
