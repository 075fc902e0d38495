package physics

import (
	"github.com/juju/errors"
)

// ModelConfig is the single source of truth for the active physical model
// during one assembly pass. It is passed by value, a new pass takes a new
// copy through AtTime.
type ModelConfig struct {
	Name     string
	Dim      int
	NbEqs    int
	Time     float64 // current dimensional simulation time
	VarNames []string
}

func NewModelConfig(name string, dim, nbEqs int, varNames ...string) (mc ModelConfig, err error) {
	switch {
	case dim < 1 || dim > 3:
		err = errors.NotValidf("dimension %d of model %q", dim, name)
		return
	case nbEqs < 1:
		err = errors.NotValidf("equation count %d of model %q", nbEqs, name)
		return
	case len(varNames) != 0 && len(varNames) != nbEqs:
		err = errors.NotValidf("%d variable names for %d equations of model %q",
			len(varNames), nbEqs, name)
		return
	}
	mc = ModelConfig{
		Name:     name,
		Dim:      dim,
		NbEqs:    nbEqs,
		VarNames: append([]string(nil), varNames...),
	}
	return
}

func (mc ModelConfig) AtTime(t float64) ModelConfig {
	mc.Time = t
	return mc
}

// NbVariables is the length of the independent variable vector handed to
// boundary functions: coordinates, time, then the state components
func (mc ModelConfig) NbVariables() int {
	return mc.Dim + 1 + mc.NbEqs
}

// LoadVariables fills vars as [coords..., time, state...]
func (mc ModelConfig) LoadVariables(vars, coords, state []float64) {
	copy(vars[:mc.Dim], coords)
	vars[mc.Dim] = mc.Time
	copy(vars[mc.Dim+1:], state[:mc.NbEqs])
}
