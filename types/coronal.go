package types

import (
	"fmt"
	"strings"
)

// Per field ghost strategies of the coronal inlet. Each field of the MHD
// state [rho, Vx, Vy, Vz, Bx, By, Bz, p, phi] selects exactly one.

type DensityStrategy uint8

const (
	DensityUnset DensityStrategy = iota
	DensityFixed
	DensityJensRhoIni
)

type BFieldStrategy uint8

const (
	BFieldUnset BFieldStrategy = iota
	BFieldPFSSFreeze
	BFieldJens
	BFieldDana
)

type VelocityStrategy uint8

const (
	VelocityUnset VelocityStrategy = iota
	VelocityJens
	VelocityBarbara
	VelocityBarbaraHydrodynamicLimit
	VelocityDana
	VelocityDanaDifferentialRotation
)

type PressureStrategy uint8

const (
	PressureUnset PressureStrategy = iota
	PressureFixed
	PressureJensPIni
	PressureNeumann
)

type PhiStrategy uint8

const (
	PhiUnset PhiStrategy = iota
	PhiZero
	PhiExtrapolated
)

var (
	densityNames  = []string{"Unset", "Fixed", "JensRhoIni"}
	bFieldNames   = []string{"Unset", "PFSSFreeze", "Jens", "Dana"}
	velocityNames = []string{"Unset", "Jens", "Barbara", "BarbaraHydrodynamicLimit", "Dana",
		"DanaDifferentialRotation"}
	pressureNames = []string{"Unset", "Fixed", "JensPIni", "Neumann"}
	phiNames      = []string{"Unset", "Zero", "Extrapolated"}
)

func nameOf(names []string, i uint8) string {
	if int(i) < len(names) {
		return names[i]
	}
	return fmt.Sprintf("Strategy(%d)", i)
}

// parseStrategy is case insensitive, the empty label is Unset
func parseStrategy(names []string, label string) (i uint8, ok bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return 0, true
	}
	for j, name := range names[1:] {
		if strings.EqualFold(name, label) {
			return uint8(j + 1), true
		}
	}
	return 0, false
}

func (s DensityStrategy) String() string  { return nameOf(densityNames, uint8(s)) }
func (s BFieldStrategy) String() string   { return nameOf(bFieldNames, uint8(s)) }
func (s VelocityStrategy) String() string { return nameOf(velocityNames, uint8(s)) }
func (s PressureStrategy) String() string { return nameOf(pressureNames, uint8(s)) }
func (s PhiStrategy) String() string      { return nameOf(phiNames, uint8(s)) }

func NewDensityStrategy(label string) (DensityStrategy, bool) {
	i, ok := parseStrategy(densityNames, label)
	return DensityStrategy(i), ok
}

func NewBFieldStrategy(label string) (BFieldStrategy, bool) {
	i, ok := parseStrategy(bFieldNames, label)
	return BFieldStrategy(i), ok
}

func NewVelocityStrategy(label string) (VelocityStrategy, bool) {
	i, ok := parseStrategy(velocityNames, label)
	return VelocityStrategy(i), ok
}

func NewPressureStrategy(label string) (PressureStrategy, bool) {
	i, ok := parseStrategy(pressureNames, label)
	return PressureStrategy(i), ok
}

func NewPhiStrategy(label string) (PhiStrategy, bool) {
	i, ok := parseStrategy(phiNames, label)
	return PhiStrategy(i), ok
}

// NeedsPFSS is true when the strategy reads the frozen initial field
func (s VelocityStrategy) NeedsPFSS() bool { return s == VelocityBarbara }

// NeedsBrFromFile is true for the strategies imposing the radial field of
// a magnetogram
func (s BFieldStrategy) NeedsBrFromFile() bool { return s != BFieldUnset }
