package types

import (
	"fmt"
	"strings"
)

// BCFLAG identifies the boundary command family attached to a region
type BCFLAG uint8

const (
	BC_None BCFLAG = iota
	BC_Dirichlet
	BC_SuperInlet
	BC_SuperInletCoronal
	BC_Neuman
	BC_Wall
)

var BCNameMap = map[string]BCFLAG{
	"dirichlet":  BC_Dirichlet,
	"strong":     BC_Dirichlet,
	"superinlet": BC_SuperInlet,
	"projection": BC_SuperInlet,
	"coronal":    BC_SuperInletCoronal,
	"neuman":     BC_Neuman,
	"neumann":    BC_Neuman,
	"wall":       BC_Wall,
	"noslip":     BC_Wall,
}

func (bf BCFLAG) String() string {
	switch bf {
	case BC_None:
		return "None"
	case BC_Dirichlet:
		return "Dirichlet"
	case BC_SuperInlet:
		return "SuperInlet"
	case BC_SuperInletCoronal:
		return "SuperInletCoronal"
	case BC_Neuman:
		return "Neuman"
	case BC_Wall:
		return "Wall"
	}
	return fmt.Sprintf("BCFLAG(%d)", uint8(bf))
}

// IsStrong is true for the command families that mutate the system matrix
func (bf BCFLAG) IsStrong() bool {
	return bf == BC_Dirichlet
}

// NewBCFLAG parses a region tag like "Dirichlet-inlet" or "coronal" into its flag
func NewBCFLAG(tag string) (bf BCFLAG) {
	name := strings.ToLower(strings.TrimSpace(tag))
	if i := strings.Index(name, "-"); i >= 0 {
		name = name[:i]
	}
	var ok bool
	if bf, ok = BCNameMap[name]; !ok {
		bf = BC_None
	}
	return
}

// SymmetryStrategy selects how the off-diagonal coupling of a strongly
// constrained row is treated
type SymmetryStrategy uint8

const (
	SymmetryNone SymmetryStrategy = iota
	AdjustColumn
	ScaleDiagonal
)

// NewSymmetryStrategy maps the "Symmetry" option. Anything that is not
// "AdjustColumn" or "ScaleDiagonal" selects SymmetryNone.
func NewSymmetryStrategy(label string) SymmetryStrategy {
	switch strings.TrimSpace(label) {
	case "AdjustColumn":
		return AdjustColumn
	case "ScaleDiagonal":
		return ScaleDiagonal
	}
	return SymmetryNone
}

func (ss SymmetryStrategy) String() string {
	switch ss {
	case AdjustColumn:
		return "AdjustColumn"
	case ScaleDiagonal:
		return "ScaleDiagonal"
	}
	return "None"
}
