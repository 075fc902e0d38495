package bc

import (
	"github.com/juju/errors"
	"github.com/notargets/gocfdbc/lss"
	"github.com/notargets/gocfdbc/mesh"
	"github.com/notargets/gocfdbc/physics"
)

// Sockets is the data a boundary command reads and mutates during one
// pass. RHS is indexed by local state, RHS[local*nbEqs+eq]; System rows and
// columns by global scalar id through Mapping.
type Sockets struct {
	Model     physics.ModelConfig
	States    *mesh.States
	Ghosts    *mesh.States
	Adjacency *mesh.Adjacency
	RHS       []float64
	System    lss.Matrix
	Mapping   lss.IndexMapping
	Flags     *FlagRegistry
}

// checkStrong validates the sockets used by strong commands
func (s *Sockets) checkStrong() (err error) {
	switch {
	case s.States == nil || s.Adjacency == nil || s.System == nil || s.Mapping == nil || s.Flags == nil:
		err = errors.Annotatef(PreconditionViolated, "strong boundary sockets are incomplete")
	case len(s.RHS) < s.States.Len()*s.Model.NbEqs:
		err = errors.Annotatef(PreconditionViolated, "rhs of length %d for %d states", len(s.RHS),
			s.States.Len())
	case s.States.NbEqs != s.Model.NbEqs:
		err = errors.Annotatef(PreconditionViolated, "states carry %d equations, model %q has %d",
			s.States.NbEqs, s.Model.Name, s.Model.NbEqs)
	}
	return
}

// checkGhost validates the sockets used by ghost commands
func (s *Sockets) checkGhost() (err error) {
	switch {
	case s.States == nil || s.Ghosts == nil:
		err = errors.Annotatef(PreconditionViolated, "ghost sockets are incomplete")
	case s.States.NbEqs != s.Model.NbEqs || s.Ghosts.NbEqs != s.Model.NbEqs:
		err = errors.Annotatef(PreconditionViolated, "states carry %d/%d equations, model %q has %d",
			s.States.NbEqs, s.Ghosts.NbEqs, s.Model.Name, s.Model.NbEqs)
	}
	return
}
