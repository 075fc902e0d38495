package mesh

import (
	"github.com/notargets/gocfdbc/types"
)

// Face is a boundary face of a cell centered discretization. Inner and
// Ghost are state ids, Ghost indexes the ghost States of the partition.
type Face struct {
	ID       int
	IdxInTrs int
	Inner    int
	Ghost    int
	Nodes    []int
}

// TRS is a named boundary region, the unit a boundary command is applied to
type TRS struct {
	Name     string
	Tag      types.BCFLAG
	StateIDs []int
	Faces    []Face
}

func NewTRS(name string, stateIDs []int) (trs *TRS) {
	trs = &TRS{
		Name:     name,
		Tag:      types.NewBCFLAG(name),
		StateIDs: stateIDs,
	}
	return
}

// AddFace appends a face and numbers it inside the region
func (trs *TRS) AddFace(f Face) {
	f.IdxInTrs = len(trs.Faces)
	trs.Faces = append(trs.Faces, f)
}

func (trs *TRS) NbFaces() int { return len(trs.Faces) }

// FindTRS returns the region with the given name, nil when absent
func FindTRS(trsList []*TRS, name string) *TRS {
	for _, trs := range trsList {
		if trs.Name == name {
			return trs
		}
	}
	return nil
}
