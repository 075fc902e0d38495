package bc

import (
	"fmt"
	"math"

	"github.com/juju/errors"
	"github.com/notargets/gocfdbc/types"
	"gonum.org/v1/gonum/spatial/r3"
)

// Reference scales of the adimensional coronal MHD state
const (
	RSun   = 6.9551e8  // m
	BRef   = 2.2e-4    // T
	Mu0    = 1.2566e-6 // H/m
	RhoRef = 1.67e-13  // kg/m^3
)

var (
	vRef = BRef / math.Sqrt(Mu0*RhoRef)
	pRef = BRef * BRef / Mu0
	// the rotation profile was fitted with a rounded permeability
	rotationVRef = BRef / math.Sqrt(1.25e-6*RhoRef)

	jensRho      = 4.03679312e-13 / RhoRef
	fixedP       = 0.0032549425343197064 / pRef
	jensP        = 8.01260207e-03 / pRef
	barbaraVr    = 848.15 / vRef
	rotationDeg  = [3]float64{14.713, -2.396, -1.787} // deg/day, A + B sin^2 + C sin^4 of latitude
	secondsInDay = 24. * 60. * 60.
)

// state layout [rho, Vx, Vy, Vz, Bx, By, Bz, p, phi]
const (
	iRho = 0
	iV   = 1
	iB   = 4
	iP   = 7
	iPhi = 8
)

type coronalInlet struct {
	density  types.DensityStrategy
	bField   types.BFieldStrategy
	velocity types.VelocityStrategy
	pressure types.PressureStrategy
	phi      types.PhiStrategy
}

func (ci coronalInlet) String() string {
	return fmt.Sprintf("rho:%s B:%s V:%s p:%s phi:%s", ci.density, ci.bField, ci.velocity, ci.pressure, ci.phi)
}

func (ci coronalInlet) needsPFSS() bool {
	return ci.bField == types.BFieldPFSSFreeze || ci.velocity.NeedsPFSS()
}

type choice struct {
	s      uint8
	source string
}

// choose merges the named strategy of a field with the switches turned on,
// they must agree on a single strategy
func choose(field string, choices ...choice) (s uint8, err error) {
	var source string
	for _, c := range choices {
		if c.s == 0 {
			continue
		}
		if s != 0 && s != c.s {
			return 0, errors.NotValidf("coronal inlet %s: %s conflicts with %s", field, c.source, source)
		}
		s, source = c.s, c.source
	}
	if s == 0 {
		err = errors.NotValidf("coronal inlet %s: no strategy selected", field)
	}
	return
}

func on(sw int, s uint8, source string) choice {
	if sw == 0 {
		return choice{}
	}
	return choice{s: s, source: source}
}

func named(label string, s uint8, ok bool, field string) (c choice, err error) {
	if !ok {
		return c, errors.NotValidf("coronal inlet %s strategy %q", field, label)
	}
	return choice{s: s, source: label}, nil
}

func newCoronalInlet(o CoronalOptions) (ci coronalInlet, err error) {
	var (
		c  choice
		s  uint8
		ok bool
	)
	{
		var d types.DensityStrategy
		d, ok = types.NewDensityStrategy(o.Density)
		if c, err = named(o.Density, uint8(d), ok, "density"); err != nil {
			return
		}
		if o.Density == "" && o.JensRhoIni == 0 {
			c = choice{s: uint8(types.DensityFixed), source: "default"}
		}
		if s, err = choose("density", c, on(o.JensRhoIni, uint8(types.DensityJensRhoIni), "JensRhoIni")); err != nil {
			return
		}
		ci.density = types.DensityStrategy(s)
	}
	{
		var b types.BFieldStrategy
		b, ok = types.NewBFieldStrategy(o.BField)
		if c, err = named(o.BField, uint8(b), ok, "B field"); err != nil {
			return
		}
		if s, err = choose("B field", c,
			on(o.JonLinkersBfieldSuggestion, uint8(types.BFieldPFSSFreeze), "JonLinkersBfieldSuggestion"),
			on(o.JensBfieldBC, uint8(types.BFieldJens), "JensBfieldBC"),
			on(o.DanasBfieldBC, uint8(types.BFieldDana), "DanasBfieldBC")); err != nil {
			return
		}
		ci.bField = types.BFieldStrategy(s)
	}
	{
		var v types.VelocityStrategy
		v, ok = types.NewVelocityStrategy(o.Velocity)
		if c, err = named(o.Velocity, uint8(v), ok, "velocity"); err != nil {
			return
		}
		if s, err = choose("velocity", c,
			on(o.JensVelocityBC, uint8(types.VelocityJens), "JensVelocityBC"),
			on(o.BarbarasVelocityBC, uint8(types.VelocityBarbara), "BarbarasVelocityBC"),
			on(o.DanasVelocityBC, uint8(types.VelocityDana), "DanasVelocityBC")); err != nil {
			return
		}
		ci.velocity = types.VelocityStrategy(s)
		if o.HydrodynamicLimit != 0 {
			switch ci.velocity {
			case types.VelocityBarbara, types.VelocityBarbaraHydrodynamicLimit:
				ci.velocity = types.VelocityBarbaraHydrodynamicLimit
			default:
				return ci, errors.NotValidf("coronal inlet velocity: hydrodynamic_limit with %s", ci.velocity)
			}
		}
		if o.DifferentialRotation != 0 {
			switch ci.velocity {
			case types.VelocityDana, types.VelocityDanaDifferentialRotation:
				ci.velocity = types.VelocityDanaDifferentialRotation
			default:
				return ci, errors.NotValidf("coronal inlet velocity: DifferentialRotation with %s", ci.velocity)
			}
		}
	}
	{
		var p types.PressureStrategy
		p, ok = types.NewPressureStrategy(o.Pressure)
		if c, err = named(o.Pressure, uint8(p), ok, "pressure"); err != nil {
			return
		}
		if s, err = choose("pressure", c,
			on(o.PressureFixed, uint8(types.PressureFixed), "pressure_fixed"),
			on(o.JensPIni, uint8(types.PressureJensPIni), "JensPIni"),
			on(o.PressureNeumann, uint8(types.PressureNeumann), "pressure_Neumann")); err != nil {
			return
		}
		ci.pressure = types.PressureStrategy(s)
	}
	{
		var p types.PhiStrategy
		p, ok = types.NewPhiStrategy(o.Phi)
		if c, err = named(o.Phi, uint8(p), ok, "phi"); err != nil {
			return
		}
		if s, err = choose("phi", c,
			on(o.PhiDivBZero, uint8(types.PhiZero), "Phi_divB_zero"),
			on(o.PhiDivBExtrapolated, uint8(types.PhiExtrapolated), "Phi_divB_extrapolated")); err != nil {
			return
		}
		ci.phi = types.PhiStrategy(s)
	}
	return
}

// apply writes the ghost state from the adimensional inner and ghost cell
// centers, the frozen initial field pfss and the radial field br read from
// the magnetogram
func (ci coronalInlet) apply(xi, xg r3.Vec, inner, ghost []float64, pfss r3.Vec, br float64) (err error) {
	var (
		xb   = midpoint(xi, xg)
		sbB  = NewSphericalBasis(xb)
		sbI  = NewSphericalBasis(xi)
		sbG  = NewSphericalBasis(xg)
		rhoI = inner[iRho]
	)
	for _, sb := range []SphericalBasis{sbB, sbI, sbG} {
		if sb.Rho == 0 {
			return errors.Annotatef(PreconditionViolated, "face on the polar axis at %v", xb)
		}
	}
	// density
	rhoB := 1.
	if ci.density == types.DensityJensRhoIni {
		rhoB = jensRho
	}
	ghost[iRho] = reflect(rhoB, rhoI)
	rhoG := ghost[iRho]

	// magnetic field
	bI := vecOf(inner[iB:])
	var bG r3.Vec
	switch ci.bField {
	case types.BFieldPFSSFreeze:
		_, bt, bp := sbB.ToSpherical(pfss)
		bB := sbB.ToCartesian(br, bt, bp)
		bG = r3.Sub(r3.Scale(2, bB), bI)
	case types.BFieldJens, types.BFieldDana:
		brI, btI, bpI := sbI.ToSpherical(bI)
		if ci.bField == types.BFieldDana {
			btI *= math.Pow(sbI.R/sbG.R, 5)
		}
		bG = sbG.ToCartesian(reflect(br, brI), btI, bpI)
	}
	ghost[iB], ghost[iB+1], ghost[iB+2] = bG.X, bG.Y, bG.Z

	// velocity
	vI := vecOf(inner[iV:])
	vrI, vtI, vpI := sbI.ToSpherical(vI)
	var vG r3.Vec
	switch ci.velocity {
	case types.VelocityJens:
		f := rhoI / rhoG
		vG = sbG.ToCartesian(vrI*f, vtI*f, vpI*f)
	case types.VelocityBarbara:
		bNorm := r3.Norm(pfss)
		if bNorm == 0 {
			return errors.Annotatef(PreconditionViolated,
				"frozen field vanishes at the face, use %s", types.VelocityBarbaraHydrodynamicLimit)
		}
		bHat := r3.Scale(1/bNorm, pfss)
		vPar := r3.Dot(r3.Scale(barbaraVr, sbB.Er), bHat)
		vG = r3.Sub(r3.Scale(2*vPar, bHat), vI)
	case types.VelocityBarbaraHydrodynamicLimit:
		vG = r3.Sub(r3.Scale(2*barbaraVr, sbB.Er), vI)
	case types.VelocityDana, types.VelocityDanaDifferentialRotation:
		vrG := rhoI * vrI * sbI.R * sbI.R / (rhoG * sbG.R * sbG.R)
		vpG := -vpI
		if ci.velocity == types.VelocityDanaDifferentialRotation {
			vpG = reflect(rotationSpeed(sbB, sbG.Latitude()), vpI)
		}
		vG = sbG.ToCartesian(vrG, -vtI, vpG)
	}
	ghost[iV], ghost[iV+1], ghost[iV+2] = vG.X, vG.Y, vG.Z

	// pressure
	switch ci.pressure {
	case types.PressureFixed:
		ghost[iP] = reflect(fixedP, inner[iP])
	case types.PressureJensPIni:
		ghost[iP] = reflect(jensP, inner[iP])
	case types.PressureNeumann:
		ghost[iP] = inner[iP]
	}

	// divergence cleaning potential
	switch ci.phi {
	case types.PhiZero:
		ghost[iPhi] = -inner[iPhi]
	case types.PhiExtrapolated:
		ghost[iPhi] = inner[iPhi]
	}
	return
}

// rotationSpeed is the adimensional azimuthal speed of the solar surface at
// the face, for the latitude lat
func rotationSpeed(sbB SphericalBasis, lat float64) float64 {
	s2 := math.Sin(lat) * math.Sin(lat)
	omegaDeg := rotationDeg[0] + rotationDeg[1]*s2 + rotationDeg[2]*s2*s2
	omega := omegaDeg * math.Pi / (180 * secondsInDay)
	return omega * sbB.R * RSun * math.Sin(sbB.Theta) / rotationVRef
}
