package bc

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// SphericalBasis is the local (r, theta, phi) frame at a point, theta
// measured from the +z axis
type SphericalBasis struct {
	R, Rho, Theta, Phi float64
	Er, Etheta, Ephi   r3.Vec
}

// NewSphericalBasis is undefined on the z axis, where Rho is zero
func NewSphericalBasis(x r3.Vec) (sb SphericalBasis) {
	sb.R = r3.Norm(x)
	sb.Rho = math.Hypot(x.X, x.Y)
	sb.Theta = math.Atan2(sb.Rho, x.Z)
	sb.Phi = math.Atan2(x.Y, x.X)
	sb.Er = r3.Scale(1/sb.R, x)
	sb.Etheta = r3.Vec{
		X: x.X * x.Z / (sb.Rho * sb.R),
		Y: x.Y * x.Z / (sb.Rho * sb.R),
		Z: -sb.Rho / sb.R,
	}
	sb.Ephi = r3.Vec{X: -x.Y / sb.Rho, Y: x.X / sb.Rho}
	return
}

func (sb SphericalBasis) ToSpherical(v r3.Vec) (vr, vtheta, vphi float64) {
	return r3.Dot(sb.Er, v), r3.Dot(sb.Etheta, v), r3.Dot(sb.Ephi, v)
}

func (sb SphericalBasis) ToCartesian(vr, vtheta, vphi float64) r3.Vec {
	return r3.Add(r3.Add(r3.Scale(vr, sb.Er), r3.Scale(vtheta, sb.Etheta)), r3.Scale(vphi, sb.Ephi))
}

// Latitude is the angular distance from the equatorial plane, in [0, pi/2]
func (sb SphericalBasis) Latitude() float64 {
	return math.Abs(0.5*math.Pi - sb.Theta)
}

func vecOf(x []float64) r3.Vec { return r3.Vec{X: x[0], Y: x[1], Z: x[2]} }

func midpoint(a, b r3.Vec) r3.Vec { return r3.Scale(0.5, r3.Add(a, b)) }

// reflect returns 2*b - inner, the ghost value placing b on the face
func reflect(b, inner float64) float64 { return 2*b - inner }
