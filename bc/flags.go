package bc

import (
	"github.com/notargets/gocfdbc/lss"
	"github.com/notargets/gocfdbc/utils"
)

// FlagRegistry tracks, per state, which equations carry a strong boundary
// condition and whether the state row was already enforced in the current
// assembly pass. It is shared by all boundary commands of a partition.
type FlagRegistry struct {
	nbEqs    int
	applied  []bool // state*nbEqs + eq
	identity []bool // state*nbEqs + eq, rows left as identity rows this pass
	updated  []bool
}

func NewFlagRegistry(nStates, nbEqs int) *FlagRegistry {
	return &FlagRegistry{
		nbEqs:    nbEqs,
		applied:  make([]bool, nStates*nbEqs),
		identity: make([]bool, nStates*nbEqs),
		updated:  make([]bool, nStates),
	}
}

func (fr *FlagRegistry) NbStates() int { return len(fr.updated) }

// MarkApplicable flags the equations eqs of state as strongly constrained.
// Marks from several commands accumulate.
func (fr *FlagRegistry) MarkApplicable(state int, eqs utils.Index) {
	for _, eq := range eqs {
		fr.applied[state*fr.nbEqs+eq] = true
	}
}

func (fr *FlagRegistry) IsApplied(state, eq int) bool {
	return fr.applied[state*fr.nbEqs+eq]
}

func (fr *FlagRegistry) IsLocked(state int) bool { return fr.updated[state] }

func (fr *FlagRegistry) Lock(state int) { fr.updated[state] = true }

// MarkIdentityRow records that row eq of state holds only its unit diagonal
func (fr *FlagRegistry) MarkIdentityRow(state, eq int) {
	fr.identity[state*fr.nbEqs+eq] = true
}

// Reset unlocks every state, the driver calls it at the start of a pass
func (fr *FlagRegistry) Reset() {
	for i := range fr.updated {
		fr.updated[i] = false
	}
	for i := range fr.identity {
		fr.identity[i] = false
	}
}

// IsUpdated returns a copy of the per state lock flags
func (fr *FlagRegistry) IsUpdated() []bool {
	return append([]bool(nil), fr.updated...)
}

// AppliedStrongBC returns a copy of the per state, per equation marks
func (fr *FlagRegistry) AppliedStrongBC() (applied [][]bool) {
	applied = make([][]bool, len(fr.updated))
	for s := range applied {
		applied[s] = append([]bool(nil), fr.applied[s*fr.nbEqs:(s+1)*fr.nbEqs]...)
	}
	return
}

// TrivialRows flags, per scalar row of the global system, the rows that
// were reduced to identity rows in this pass. Rows of states not enforced
// yet and ScaleDiagonal rows, which keep their coupling, are not trivial.
// The layout is the one consumed by lss.NewJacobiPreconditioner.
func (fr *FlagRegistry) TrivialRows(m lss.IndexMapping, nRows int) (trivial []bool) {
	trivial = make([]bool, nRows)
	for s, locked := range fr.updated {
		if !locked {
			continue
		}
		base := m.RowID(s) * fr.nbEqs
		for eq := 0; eq < fr.nbEqs; eq++ {
			k := s*fr.nbEqs + eq
			if fr.applied[k] && fr.identity[k] && base+eq < nRows {
				trivial[base+eq] = true
			}
		}
	}
	return
}
