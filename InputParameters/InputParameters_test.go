package InputParameters

import (
	"testing"

	"github.com/juju/errors"
	"github.com/notargets/gocfdbc/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaseParameters(t *testing.T) {
	fileInput := []byte(`
Title: Test Case
Problem: Laplace2D
Nx: 4
Ny: 2
Solver: jacobi
BCs:
  Left:
    Type: Dirichlet
    Options:
      Symmetry: AdjustColumn
      Vars: [x, y]
      Def: ["1 + x*y"]
      ApplyEqs: [0]
  Right:
    Type: Dirichlet
    Options:
      Symmetry: ScaleDiagonal
      ScaleDiagonal: 1.0e12
      Def: ["2"]
      Implicit: true
  Coronal-Inlet:
    Options:
      InletCoronalBC: true
      InitialSolutionIDs: [4, 5, 6]
      VarIDs: [0]
      Coronal:
        JensBfieldBC: 1
        Velocity: Jens
        pressure_Neumann: 1
        Phi: Zero
`)
	var cp CaseParameters
	require.NoError(t, cp.Parse(fileInput))
	assert.Equal(t, "Laplace2D", cp.Problem)
	assert.Equal(t, 4, cp.Nx)
	assert.Equal(t, 1., cp.XMax)
	assert.Equal(t, []string{"Coronal-Inlet", "Left", "Right"}, cp.Regions())
	{
		left := cp.BCs["Left"]
		assert.Equal(t, types.BC_Dirichlet, left.Flag("Left"))
		opts, err := left.Dirichlet()
		require.NoError(t, err)
		assert.Equal(t, "AdjustColumn", opts.Symmetry)
		assert.Equal(t, []string{"x", "y"}, opts.Vars)
		assert.Equal(t, []string{"1 + x*y"}, opts.Def)
		assert.Equal(t, []int{0}, opts.ApplyEqs)
		assert.False(t, opts.Implicit)
	}
	{
		opts, err := cp.BCs["Right"].Dirichlet()
		require.NoError(t, err)
		assert.Equal(t, 1.e12, opts.ScaleDiagonal)
		assert.True(t, opts.Implicit)
	}
	{
		inlet := cp.BCs["Coronal-Inlet"]
		assert.Equal(t, types.BC_SuperInletCoronal, inlet.Flag("Coronal-Inlet"))
		opts, err := inlet.Projection()
		require.NoError(t, err)
		assert.True(t, opts.InletCoronalBC)
		assert.Equal(t, []int{4, 5, 6}, opts.InitialSolutionIDs)
		assert.Equal(t, 1, opts.Coronal.JensBfieldBC)
		assert.Equal(t, 1, opts.Coronal.PressureNeumann)
		assert.Equal(t, "Jens", opts.Coronal.Velocity)
	}
	cp.Print()

	{ // bare scalars that YAML 1.1 reads as booleans stay names
		var cp CaseParameters
		require.NoError(t, cp.Parse([]byte(`
BCs:
  Left:
    Options: {Vars: [x, y, n, on, off, yes], Def: ["y"], Implicit: true}
`)))
		opts, err := cp.BCs["Left"].Dirichlet()
		require.NoError(t, err)
		assert.Equal(t, []string{"x", "y", "n", "on", "off", "yes"}, opts.Vars)
		assert.Equal(t, []string{"y"}, opts.Def)
		assert.True(t, opts.Implicit)
	}
	{ // non string mapping keys
		var cp CaseParameters
		require.NoError(t, cp.Parse([]byte("Title: keys\n1: one\n")))
		assert.Equal(t, "keys", cp.Title)
	}

	var bad CaseParameters
	assert.True(t, errors.Is(bad.Parse([]byte("Nx: [1, 2]")), errors.NotValid))
	_, err := ReadCaseParameters("/nonexistent/case.yaml")
	assert.Error(t, err)
}
