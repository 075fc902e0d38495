package lss

import (
	"github.com/juju/errors"
	"github.com/notargets/gocfdbc/utils"
)

// IndexMapping translates the local id of a state into the global block
// row / column of the distributed system. A block spans nbEqs scalar rows.
type IndexMapping interface {
	ColID(localID int) int
	RowID(localID int) int
}

// LocalToGlobal is the mapping of one rank. Ownership of a global id is
// decided by a PartitionMap shared by all ranks.
type LocalToGlobal struct {
	global []int
	pm     *utils.PartitionMap
	rank   int
}

func NewLocalToGlobal(globalIDs []int, pm *utils.PartitionMap, rank int) (m *LocalToGlobal, err error) {
	if pm != nil && (rank < 0 || rank >= pm.ParallelDegree) {
		err = errors.NotValidf("rank %d for a partition of degree %d", rank, pm.ParallelDegree)
		return
	}
	seen := make(map[int]struct{}, len(globalIDs))
	for localID, g := range globalIDs {
		if _, dup := seen[g]; dup {
			err = errors.NotValidf("duplicate global id %d at local id %d", g, localID)
			return
		}
		if pm != nil && pm.Owner(g) < 0 {
			err = errors.NotValidf("global id %d outside partition of %d states", g, pm.MaxIndex)
			return
		}
		seen[g] = struct{}{}
	}
	m = &LocalToGlobal{
		global: append([]int(nil), globalIDs...),
		pm:     pm,
		rank:   rank,
	}
	return
}

// NewIdentityMapping is the mapping of a single rank run
func NewIdentityMapping(nStates int) *LocalToGlobal {
	m, _ := NewLocalToGlobal(utils.NewUnitRange(nStates), nil, 0)
	return m
}

func (m *LocalToGlobal) ColID(localID int) int { return m.global[localID] }

func (m *LocalToGlobal) RowID(localID int) int { return m.global[localID] }

func (m *LocalToGlobal) Len() int { return len(m.global) }

// IsOwned is true when this rank is responsible for updating the state
func (m *LocalToGlobal) IsOwned(localID int) bool {
	if m.pm == nil {
		return true
	}
	return m.pm.Owner(m.global[localID]) == m.rank
}

// ScalarRows expands the block row of a state into its scalar rows for
// the equations in eqs
func ScalarRows(m IndexMapping, localID, nbEqs int, eqs utils.Index) (rows utils.Index) {
	return eqs.Add(m.RowID(localID) * nbEqs)
}
