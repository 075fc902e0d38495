package bc

import (
	"github.com/notargets/gocfdbc/mesh"
)

// StrongCommand mutates rows of the system matrix and the right hand side
// for the states of its regions
type StrongCommand interface {
	Name() string
	ExecuteOnTrs(s *Sockets, trs *mesh.TRS) error
	TrsList() []*mesh.TRS
}

// GhostCommand computes the ghost state of a boundary face
type GhostCommand interface {
	Name() string
	SetGhostState(s *Sockets, trs *mesh.TRS, face mesh.Face) error
	TrsList() []*mesh.TRS
}

// ExecuteStrong runs a strong command on its regions in order
func ExecuteStrong(cmd StrongCommand, s *Sockets) (err error) {
	for _, trs := range cmd.TrsList() {
		if err = cmd.ExecuteOnTrs(s, trs); err != nil {
			return
		}
	}
	return
}

// ExecuteGhost updates the ghost states of every face of the command regions
func ExecuteGhost(cmd GhostCommand, s *Sockets) (err error) {
	for _, trs := range cmd.TrsList() {
		for _, face := range trs.Faces {
			if err = cmd.SetGhostState(s, trs, face); err != nil {
				return
			}
		}
	}
	return
}
