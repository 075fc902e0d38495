package cmd

import (
	"testing"

	"github.com/juju/errors"
	"github.com/notargets/gocfdbc/InputParameters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseCase(t *testing.T, text string) *InputParameters.CaseParameters {
	cp := &InputParameters.CaseParameters{}
	require.NoError(t, cp.Parse([]byte(text)))
	return cp
}

func TestRunFE(t *testing.T) {
	cp := parseCase(t, `
Title: bilinear walls
Problem: Laplace2D
Nx: 4
Ny: 4
BCs:
  Left:
    Type: Dirichlet
    Options: {Symmetry: AdjustColumn, Vars: [x, y], Def: ["2 - y"]}
  Right:
    Type: Dirichlet
    Options: {Symmetry: AdjustColumn, Vars: [x, y], Def: ["2 - y"]}
  Bottom:
    Type: Dirichlet
    Options: {Symmetry: ScaleDiagonal, Def: ["2"]}
  Top:
    Type: Dirichlet
    Options: {Def: ["1"]}
`)
	lp, err := BuildFE(cp)
	require.NoError(t, err)
	assert.Equal(t, 4, len(lp.Strong))
	require.NoError(t, lp.Run())
	assert.Less(t, lp.MaxError(func(x, y float64) float64 { return 2 - y }), 1.e-8)
}

func TestExampleCase(t *testing.T) {
	cp := parseCase(t, exampleFE)
	opts, err := cp.BCs["Left"].Dirichlet()
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, opts.Vars)
	lp, err := BuildFE(cp)
	require.NoError(t, err)
	require.NoError(t, lp.Run())
	// Left carries 1 + 0*y, the other walls are natural
	assert.Less(t, lp.MaxError(func(x, y float64) float64 { return 1 }), 1.e-8)
}

func TestRunFV(t *testing.T) {
	cp := parseCase(t, `
Problem: Diffusion1D
Nx: 8
BCs:
  Left:
    Type: SuperInlet
    Options: {Def: ["-1"], InputAdimensionalValues: true}
  Right:
    Type: projection
    Options: {Def: ["1"]}
`)
	d, err := BuildFV(cp)
	require.NoError(t, err)
	_, _, err = d.Run(20, 1.e-12)
	require.NoError(t, err)
	for k := 0; k < d.Grid.N; k++ {
		x := d.Grid.States.Coordinates(k)[0]
		assert.InDelta(t, 2*x-1, d.Grid.States.State(k)[0], 1.e-10)
	}
}

func TestBuildCase(t *testing.T) {
	{ // strong commands have no meaning on the finite volume problem
		cp := parseCase(t, `
Problem: Diffusion1D
Nx: 4
BCs:
  Left: {Type: Dirichlet, Options: {Def: ["1"]}}
`)
		assert.True(t, errors.Is(BuildCase(cp), errors.NotImplemented))
	}
	{ // the coronal inlet needs a 3D MHD model
		cp := parseCase(t, `
Problem: Diffusion1D
Nx: 4
BCs:
  Left:
    Type: Coronal
    Options:
      VarIDs: [0]
      Coronal: {BField: Jens, Velocity: Jens, Pressure: Neumann, Phi: Zero}
`)
		assert.True(t, errors.Is(BuildCase(cp), errors.NotImplemented))
	}
	{
		cp := parseCase(t, `
Problem: Laplace2D
Nx: 2
Ny: 2
BCs:
  Left: {Type: Dirichlet, Options: {Def: ["1"], ApplyEqs: [2]}}
`)
		assert.True(t, errors.Is(BuildCase(cp), errors.NotValid))
		cp.Problem = "Euler3D"
		assert.True(t, errors.Is(BuildCase(cp), errors.NotValid))
	}
	{
		cp := parseCase(t, `
Nx: 2
Ny: 2
BCs:
  Inlet: {Type: Dirichlet, Options: {Def: ["1"]}}
`)
		assert.True(t, errors.Is(BuildCase(cp), errors.NotFound))
	}
}
