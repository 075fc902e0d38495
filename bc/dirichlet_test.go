package bc

import (
	"testing"

	"github.com/juju/errors"
	"github.com/notargets/gocfdbc/lss"
	"github.com/notargets/gocfdbc/mesh"
	"github.com/notargets/gocfdbc/physics"
	"github.com/notargets/gocfdbc/types"
	"github.com/notargets/gocfdbc/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// strongSockets builds a 1D partition with states at x = id
func strongSockets(t *testing.T, nStates, nbEqs int, elements [][]int) (s *Sockets, ds *lss.DOKSystem) {
	model, err := physics.NewModelConfig("test", 1, nbEqs)
	require.NoError(t, err)
	states := mesh.NewStates(1, nbEqs, nStates)
	for i := 0; i < nStates; i++ {
		states.Coordinates(i)[0] = float64(i)
	}
	ds = lss.NewDOKSystem(nStates*nbEqs, nStates*nbEqs, "test")
	s = &Sockets{
		Model:     model,
		States:    states,
		Adjacency: mesh.BuildAdjacency(nStates, elements),
		RHS:       make([]float64, nStates*nbEqs),
		System:    ds,
		Mapping:   lss.NewIdentityMapping(nStates),
		Flags:     NewFlagRegistry(nStates, nbEqs),
	}
	return
}

func newDirichlet(t *testing.T, opts DirichletOptions, s *Sockets, trs ...*mesh.TRS) *DirichletBC {
	bc := NewDirichletBC("dirichlet")
	require.NoError(t, bc.Configure(opts))
	require.NoError(t, bc.Setup(s.Model, s.Flags, trs))
	return bc
}

func row(t *testing.T, ds *lss.DOKSystem, r int) []float64 {
	_, nc := ds.Dims()
	out := make([]float64, nc)
	require.NoError(t, ds.GetValues([]int{r}, utils.NewUnitRange(nc), out))
	return out
}

func col(t *testing.T, ds *lss.DOKSystem, c int) []float64 {
	nr, _ := ds.Dims()
	out := make([]float64, nr)
	require.NoError(t, ds.GetValues(utils.NewUnitRange(nr), []int{c}, out))
	return out
}

func TestDirichletSetup(t *testing.T) {
	s, _ := strongSockets(t, 2, 3, [][]int{{0, 1}})
	trs := mesh.NewTRS("Dirichlet-left", []int{0})
	{ // empty ApplyEqs is every equation
		bc := newDirichlet(t, DirichletOptions{Def: []string{"1", "2", "3"}}, s, trs)
		assert.Equal(t, utils.Index{0, 1, 2}, bc.ApplyEqs())
		assert.Equal(t, types.SymmetryNone, bc.Symmetry())
		assert.Equal(t, 1., bc.Scale())
		assert.Equal(t, [][]bool{{true, true, true}, {false, false, false}}, s.Flags.AppliedStrongBC())
	}
	{ // only the listed equations are marked
		fr := NewFlagRegistry(2, 3)
		bc := NewDirichletBC("eq1")
		require.NoError(t, bc.Configure(DirichletOptions{Def: []string{"7"}, ApplyEqs: []int{1}}))
		require.NoError(t, bc.Setup(s.Model, fr, []*mesh.TRS{trs}))
		assert.True(t, fr.IsApplied(0, 1))
		assert.False(t, fr.IsApplied(0, 0))
		assert.False(t, fr.IsApplied(0, 2))
		// a second command on the same state merges its marks
		bc2 := NewDirichletBC("eq2")
		require.NoError(t, bc2.Configure(DirichletOptions{Def: []string{"7"}, ApplyEqs: []int{2}}))
		require.NoError(t, bc2.Setup(s.Model, fr, []*mesh.TRS{trs}))
		assert.Equal(t, []bool{false, true, true}, fr.AppliedStrongBC()[0])
	}
	{ // scale is only honored with ScaleDiagonal
		bc := NewDirichletBC("scale")
		require.NoError(t, bc.Configure(DirichletOptions{Def: []string{"0"}, Symmetry: "AdjustColumn", ScaleDiagonal: 1.e8}))
		assert.Equal(t, 1., bc.Scale())
		require.NoError(t, bc.Configure(DirichletOptions{Def: []string{"0"}, Symmetry: "ScaleDiagonal"}))
		assert.Equal(t, DefaultScaleDiagonal, bc.Scale())
		require.NoError(t, bc.Configure(DirichletOptions{Def: []string{"0"}, Symmetry: "ScaleDiagonal", ScaleDiagonal: 1.e8}))
		assert.Equal(t, 1.e8, bc.Scale())
	}
	isNotValid := func(opts DirichletOptions) {
		bc := NewDirichletBC("bad")
		err := bc.Configure(opts)
		if err == nil {
			err = bc.Setup(s.Model, NewFlagRegistry(2, 3), []*mesh.TRS{trs})
		}
		assert.True(t, errors.Is(err, errors.NotValid), "%v: %v", opts, err)
	}
	isNotValid(DirichletOptions{Def: []string{"1", "2", "3"}, ApplyEqs: []int{3}})
	isNotValid(DirichletOptions{Def: []string{"1", "2", "3"}, ApplyEqs: []int{-1}})
	isNotValid(DirichletOptions{Def: []string{"1", "2"}, ApplyEqs: []int{1, 1}})
	isNotValid(DirichletOptions{Def: []string{"1", "2"}})
	isNotValid(DirichletOptions{Def: []string{"1", "2"}, ApplyEqs: []int{0}})
	isNotValid(DirichletOptions{Def: []string{"1 +"}})
	isNotValid(DirichletOptions{})
	isNotValid(DirichletOptions{
		Vars: []string{"x", "t", "u", "v", "w", "extra"},
		Def:  []string{"1", "2", "3"},
	})
	{
		bc := NewDirichletBC("unsetup")
		require.NoError(t, bc.Configure(DirichletOptions{Def: []string{"1", "2", "3"}}))
		assert.True(t, errors.Is(bc.ExecuteOnTrs(s, trs), errors.NotValid))
	}
}

// assemble writes the interior matrix in add mode without flushing
func assemble(ds *lss.DOKSystem, n int, vals []float64) {
	ds.AddValues(utils.NewUnitRange(n), utils.NewUnitRange(n), vals)
}

func TestDirichletAdjustColumnEndToEnd(t *testing.T) {
	// state 0 carries the condition and couples with states 1 and 2
	s, ds := strongSockets(t, 3, 1, [][]int{{0, 1}, {0, 2}})
	assemble(ds, 3, []float64{
		4, -1, -1,
		-1, 4, 0,
		-1, 0, 4,
	})
	copy(s.RHS, []float64{1, 2, 3})
	trs := mesh.NewTRS("Dirichlet", []int{0})
	bc := newDirichlet(t, DirichletOptions{Symmetry: "AdjustColumn", Def: []string{"5.0"}}, s, trs)
	require.NoError(t, ExecuteStrong(bc, s))

	assert.Equal(t, []float64{1, 0, 0}, row(t, ds, 0))
	assert.Equal(t, []float64{1, 0, 0}, col(t, ds, 0))
	assert.Equal(t, []float64{0, 4, 0}, row(t, ds, 1))
	assert.InDeltaSlice(t, []float64{5, 7, 8}, s.RHS, 1.e-14)
	assert.True(t, s.Flags.IsLocked(0))
	assert.False(t, s.Flags.IsLocked(1))
	// FinalAssembly was used before the column read
	assert.Equal(t, 1, ds.Finals)

	x, err := ds.Solve(s.RHS)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{5, 7. / 4., 2}, x, 1.e-12)
}

func TestDirichletAdjustColumnConservation(t *testing.T) {
	var (
		k, v, aOld, rb = -2.5, 3., 1.2, 0.7
	)
	for _, implicit := range []bool{false, true} {
		s, ds := strongSockets(t, 2, 1, [][]int{{0, 1}})
		assemble(ds, 2, []float64{
			3, k,
			k, 5,
		})
		s.States.State(0)[0] = aOld
		s.RHS[1] = rb
		bc := newDirichlet(t, DirichletOptions{
			Symmetry: "AdjustColumn",
			Def:      []string{"3."},
			Implicit: implicit,
		}, s, mesh.NewTRS("A", []int{0}))
		require.NoError(t, ExecuteStrong(bc, s))
		eff := v
		if implicit {
			eff = v - aOld
		}
		assert.InDelta(t, rb-k*eff, s.RHS[1], 1.e-14)
		assert.InDelta(t, eff, s.RHS[0], 1.e-14)
		ab, err := ds.GetValue(0, 1)
		require.NoError(t, err)
		ba, err := ds.GetValue(1, 0)
		require.NoError(t, err)
		assert.Zero(t, ab)
		assert.Zero(t, ba)
	}
}

func TestDirichletScaleDiagonal(t *testing.T) {
	s, ds := strongSockets(t, 2, 1, [][]int{{0, 1}})
	assemble(ds, 2, []float64{
		3, -1,
		-1, 5,
	})
	s.RHS[1] = 0.5
	bc := newDirichlet(t, DirichletOptions{Symmetry: "ScaleDiagonal", ScaleDiagonal: 1.e10, Def: []string{"2"}},
		s, mesh.NewTRS("A", []int{0}))
	require.NoError(t, ExecuteStrong(bc, s))
	assert.Equal(t, []float64{1.e10, -1}, row(t, ds, 0))
	assert.Equal(t, []float64{-1, 5}, row(t, ds, 1))
	assert.Equal(t, []float64{2.e10, 0.5}, s.RHS)
	x, err := ds.Solve(s.RHS)
	require.NoError(t, err)
	assert.InDelta(t, 2., x[0], 1.e-8)
}

func TestDirichletIdempotence(t *testing.T) {
	s, ds := strongSockets(t, 3, 2, [][]int{{0, 1}, {1, 2}})
	vals := make([]float64, 36)
	for i := 0; i < 6; i++ {
		vals[i*6+i] = 2
		if i > 0 {
			vals[i*6+i-1] = -1
		}
	}
	assemble(ds, 6, vals)
	// the two regions share state 1
	left, right := mesh.NewTRS("Left", []int{0, 1}), mesh.NewTRS("Right", []int{1, 2})
	first := newDirichlet(t, DirichletOptions{Def: []string{"x", "10"}, Vars: []string{"x"}}, s, left)
	second := newDirichlet(t, DirichletOptions{Def: []string{"-x"}, Vars: []string{"x"}, ApplyEqs: []int{0}}, s, right)

	require.NoError(t, first.ExecuteOnTrs(s, left))
	require.NoError(t, second.ExecuteOnTrs(s, right))
	rhs := append([]float64(nil), s.RHS...)
	before, err := ds.Dense()
	require.NoError(t, err)
	// state 1 keeps the values of the first command
	assert.Equal(t, []float64{0, 10, 1, 10, -2, 0}, rhs)
	// running again in the same pass changes nothing
	require.NoError(t, first.ExecuteOnTrs(s, left))
	require.NoError(t, second.ExecuteOnTrs(s, right))
	after, err := ds.Dense()
	require.NoError(t, err)
	assert.Equal(t, rhs, s.RHS)
	assert.Equal(t, before.RawMatrix().Data, after.RawMatrix().Data)
	assert.Equal(t, []bool{true, true, true}, s.Flags.IsUpdated())

	s.Flags.Reset()
	assert.Equal(t, []bool{false, false, false}, s.Flags.IsUpdated())
}

func TestDirichletSkipsAndPreconditions(t *testing.T) {
	{ // states owned by another rank are left alone
		s, ds := strongSockets(t, 2, 1, [][]int{{0, 1}})
		assemble(ds, 2, []float64{2, -1, -1, 2})
		s.States.ParUpdatable[0] = false
		bc := newDirichlet(t, DirichletOptions{Def: []string{"1"}}, s, mesh.NewTRS("A", []int{0}))
		require.NoError(t, ExecuteStrong(bc, s))
		assert.Equal(t, []float64{2, -1}, row(t, ds, 0))
		assert.False(t, s.Flags.IsLocked(0))
	}
	{ // a boundary state must couple with something
		s, _ := strongSockets(t, 3, 1, [][]int{{0, 1}})
		bc := newDirichlet(t, DirichletOptions{Def: []string{"1"}}, s, mesh.NewTRS("A", []int{2}))
		err := ExecuteStrong(bc, s)
		assert.True(t, errors.Is(err, PreconditionViolated), "%v", err)
	}
	{ // time and state feed the function
		s, ds := strongSockets(t, 2, 1, [][]int{{0, 1}})
		assemble(ds, 2, []float64{2, -1, -1, 2})
		s.Model = s.Model.AtTime(0.25)
		s.States.State(1)[0] = 3
		bc := newDirichlet(t, DirichletOptions{Def: []string{"x + t + u"}, Vars: []string{"x", "t", "u"}},
			s, mesh.NewTRS("A", []int{1}))
		require.NoError(t, ExecuteStrong(bc, s))
		assert.InDelta(t, 4.25, s.RHS[1], 1.e-15)
	}
	{ // incomplete sockets
		s, _ := strongSockets(t, 2, 1, [][]int{{0, 1}})
		bc := newDirichlet(t, DirichletOptions{Def: []string{"1"}}, s, mesh.NewTRS("A", []int{0}))
		s.System = nil
		assert.True(t, errors.Is(ExecuteStrong(bc, s), PreconditionViolated))
	}
}

func TestTrivialRowsFeedJacobi(t *testing.T) {
	s, ds := strongSockets(t, 3, 1, [][]int{{0, 1}, {1, 2}})
	assemble(ds, 3, []float64{
		2, -1, 0,
		-1, 2, -1,
		0, -1, 2,
	})
	trs := mesh.NewTRS("Ends", []int{0, 2})
	bc := newDirichlet(t, DirichletOptions{Symmetry: "AdjustColumn", Def: []string{"x"}, Vars: []string{"x"}}, s, trs)
	require.NoError(t, ExecuteStrong(bc, s))
	trivial := s.Flags.TrivialRows(s.Mapping, 3)
	assert.Equal(t, []bool{true, false, true}, trivial)
	jp, err := lss.NewJacobiPreconditioner(ds, trivial)
	require.NoError(t, err)
	x := make([]float64, 3)
	_, _, err = lss.SolveJacobi(ds, jp, s.RHS, x, 1, 1.e-12, 100)
	require.NoError(t, err)
	// linear data is reproduced
	assert.InDeltaSlice(t, []float64{0, 1, 2}, x, 1.e-10)

	s.Flags.Reset()
	assert.Equal(t, []bool{false, false, false}, s.Flags.TrivialRows(s.Mapping, 3))
}

func TestTrivialRowsOnlyEnforcedIdentities(t *testing.T) {
	{ // ScaleDiagonal rows keep their coupling
		s, ds := strongSockets(t, 3, 1, [][]int{{0, 1}, {1, 2}})
		assemble(ds, 3, []float64{
			2, -1, 0,
			-1, 2, -1,
			0, -1, 2,
		})
		bc := newDirichlet(t, DirichletOptions{Symmetry: "ScaleDiagonal", Def: []string{"1"}}, s,
			mesh.NewTRS("Ends", []int{0, 2}))
		require.NoError(t, ExecuteStrong(bc, s))
		assert.Equal(t, -1., row(t, ds, 0)[1])
		assert.Equal(t, []bool{false, false, false}, s.Flags.TrivialRows(s.Mapping, 3))
	}
	{ // marked states that are not owned stay untouched
		s, ds := strongSockets(t, 3, 1, [][]int{{0, 1}, {1, 2}})
		assemble(ds, 3, []float64{
			2, -1, 0,
			-1, 2, -1,
			0, -1, 2,
		})
		s.States.ParUpdatable[2] = false
		bc := newDirichlet(t, DirichletOptions{Def: []string{"1"}}, s, mesh.NewTRS("Ends", []int{0, 2}))
		require.NoError(t, ExecuteStrong(bc, s))
		assert.True(t, s.Flags.IsApplied(2, 0))
		assert.Equal(t, []bool{true, false, false}, s.Flags.TrivialRows(s.Mapping, 3))
	}
}
