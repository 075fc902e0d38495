package mesh

import (
	"fmt"
)

// States stores the degrees of freedom of one partition as flat arrays,
// Dim coordinates and NbEqs components per state. Boundary commands only
// hold state ids into it.
type States struct {
	Dim, NbEqs   int
	Coords       []float64
	Values       []float64
	GlobalIDs    []int
	ParUpdatable []bool
}

func NewStates(dim, nbEqs, n int) (s *States) {
	s = &States{
		Dim:          dim,
		NbEqs:        nbEqs,
		Coords:       make([]float64, dim*n),
		Values:       make([]float64, nbEqs*n),
		GlobalIDs:    make([]int, n),
		ParUpdatable: make([]bool, n),
	}
	for i := range s.GlobalIDs {
		s.GlobalIDs[i] = i
		s.ParUpdatable[i] = true
	}
	return
}

func (s *States) Len() int { return len(s.GlobalIDs) }

// Coordinates returns a view, writes go through to the storage
func (s *States) Coordinates(id int) []float64 {
	return s.Coords[id*s.Dim : (id+1)*s.Dim]
}

// State returns a view, writes go through to the storage
func (s *States) State(id int) []float64 {
	return s.Values[id*s.NbEqs : (id+1)*s.NbEqs]
}

func (s *States) IsParUpdatable(id int) bool { return s.ParUpdatable[id] }

// SetOwnership marks as updatable the states the owner is responsible for
func (s *States) SetOwnership(owner interface{ IsOwned(localID int) bool }) {
	for id := range s.ParUpdatable {
		s.ParUpdatable[id] = owner.IsOwned(id)
	}
}

// Fill sets every state from its coordinates
func (s *States) Fill(f func(x, q []float64)) {
	for id := 0; id < s.Len(); id++ {
		f(s.Coordinates(id), s.State(id))
	}
}

func (s *States) String() string {
	var owned int
	for _, up := range s.ParUpdatable {
		if up {
			owned++
		}
	}
	return fmt.Sprintf("%d states (%d updatable), dim %d, %d equations",
		s.Len(), owned, s.Dim, s.NbEqs)
}
