package physics

import (
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelConfig(t *testing.T) {
	{
		mc, err := NewModelConfig("Heat", 2, 1, "T")
		require.NoError(t, err)
		assert.Equal(t, 4, mc.NbVariables())
		later := mc.AtTime(2.5)
		assert.Equal(t, 0., mc.Time)
		assert.Equal(t, 2.5, later.Time)

		vars := make([]float64, later.NbVariables())
		later.LoadVariables(vars, []float64{1, 2}, []float64{7})
		assert.Equal(t, []float64{1, 2, 2.5, 7}, vars)
	}
	{
		_, err := NewModelConfig("Bad", 4, 1)
		assert.True(t, errors.Is(err, errors.NotValid))
		_, err = NewModelConfig("Bad", 2, 0)
		assert.True(t, errors.Is(err, errors.NotValid))
		_, err = NewModelConfig("Bad", 2, 2, "u")
		assert.True(t, errors.Is(err, errors.NotValid))
	}
}

func TestVarSets(t *testing.T) {
	{
		vs := NewIdentityVarSet(2)
		state := make([]float64, 2)
		vs.SetAdimensionalValues([]float64{3, 4}, state)
		assert.Equal(t, []float64{3, 4}, state)
		assert.Equal(t, 2, vs.NbEqs())
	}
	{
		vs, err := NewReferenceVarSet(2, 10)
		require.NoError(t, err)
		state := make([]float64, 2)
		vs.SetAdimensionalValues([]float64{3, 40}, state)
		assert.InDeltaSlice(t, []float64{1.5, 4}, state, 1.e-14)
		data := make([]float64, 2)
		vs.ComputePhysicalData(state, data)
		assert.InDeltaSlice(t, []float64{3, 40}, data, 1.e-14)

		_, err = NewReferenceVarSet(1, 0)
		assert.True(t, errors.Is(err, errors.NotValid))
	}
}
