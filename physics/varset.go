package physics

import (
	"github.com/juju/errors"
)

// VarSet converts between the solution variables stored in a state and the
// physical data a boundary condition reasons about. One implementation
// exists per physical model, it is resolved once at setup.
type VarSet interface {
	NbEqs() int
	// SetAdimensionalValues converts a dimensional state into solution variables
	SetAdimensionalValues(dimState, state []float64)
	// SetDimensionalValues is the inverse of SetAdimensionalValues
	SetDimensionalValues(state, dimState []float64)
	ComputePhysicalData(state, data []float64)
	ComputeStateFromPhysicalData(data, state []float64)
}

// IdentityVarSet is used when the stored variables are already the
// physical, dimensional ones
type IdentityVarSet struct {
	nbEqs int
}

func NewIdentityVarSet(nbEqs int) *IdentityVarSet {
	return &IdentityVarSet{nbEqs: nbEqs}
}

func (vs *IdentityVarSet) NbEqs() int { return vs.nbEqs }

func (vs *IdentityVarSet) SetAdimensionalValues(dimState, state []float64) {
	copy(state[:vs.nbEqs], dimState)
}

func (vs *IdentityVarSet) SetDimensionalValues(state, dimState []float64) {
	copy(dimState[:vs.nbEqs], state)
}

func (vs *IdentityVarSet) ComputePhysicalData(state, data []float64) {
	copy(data[:vs.nbEqs], state)
}

func (vs *IdentityVarSet) ComputeStateFromPhysicalData(data, state []float64) {
	copy(state[:vs.nbEqs], data)
}

// ReferenceVarSet stores every variable divided by a reference value
type ReferenceVarSet struct {
	Ref []float64
}

func NewReferenceVarSet(ref ...float64) (vs *ReferenceVarSet, err error) {
	for i, r := range ref {
		if r == 0 {
			err = errors.NotValidf("zero reference value for variable %d", i)
			return
		}
	}
	vs = &ReferenceVarSet{Ref: append([]float64(nil), ref...)}
	return
}

func (vs *ReferenceVarSet) NbEqs() int { return len(vs.Ref) }

func (vs *ReferenceVarSet) SetAdimensionalValues(dimState, state []float64) {
	for i, r := range vs.Ref {
		state[i] = dimState[i] / r
	}
}

func (vs *ReferenceVarSet) SetDimensionalValues(state, dimState []float64) {
	for i, r := range vs.Ref {
		dimState[i] = state[i] * r
	}
}

func (vs *ReferenceVarSet) ComputePhysicalData(state, data []float64) {
	vs.SetDimensionalValues(state, data)
}

func (vs *ReferenceVarSet) ComputeStateFromPhysicalData(data, state []float64) {
	vs.SetAdimensionalValues(data, state)
}
