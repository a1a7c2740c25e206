package compass

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// north is the compass-face up direction.
	north = mgl64.Vec3{0, 1, 0}
	// faceNormal is the axis the needle turns about.
	faceNormal = mgl64.Vec3{0, 0, 1}
)

const degenerateEpsilon = 1e-9

// Visible is the per-frame visibility rule: the compass shows whenever the
// culling reference is shown, and always when there is no reference.
func Visible(reference Node) bool {
	return !valid(reference) || reference.ActiveInHierarchy()
}

// SignedAngle returns the angle in degrees from `from` to `to`, in
// (-180, 180]. The sign is positive when from×to points along axis.
func SignedAngle(from, to, axis mgl64.Vec3) float64 {
	denom := from.Len() * to.Len()
	if denom < degenerateEpsilon {
		return 0
	}
	cos := mgl64.Clamp(from.Dot(to)/denom, -1, 1)
	angle := mgl64.RadToDeg(math.Acos(cos))
	if axis.Dot(from.Cross(to)) < 0 {
		angle = -angle
	}
	return angle
}

// Heading projects a world forward vector onto the compass face: x stays x
// and world z becomes face y. ok is false when the projection has no length
// (looking straight up or down).
func Heading(forward mgl64.Vec3) (mgl64.Vec3, bool) {
	p := mgl64.Vec3{forward.X(), forward.Z(), 0}
	l := p.Len()
	if math.IsNaN(l) || math.IsInf(l, 0) || l < degenerateEpsilon {
		return mgl64.Vec3{}, false
	}
	return p.Mul(1 / l), true
}

// NeedleAngle converts a player forward vector into the needle angle in
// degrees.
func NeedleAngle(forward mgl64.Vec3, invert bool) (float64, bool) {
	p, ok := Heading(forward)
	if !ok {
		return 0, false
	}
	angle := SignedAngle(p, north, faceNormal)
	if invert {
		angle = -angle
	}
	return angle, true
}

// NeedleRotation is a rotation of angle degrees about the face normal only.
func NeedleRotation(angle float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(angle), faceNormal)
}

func (m *Mod) align(s *Session) {
	angle, ok := NeedleAngle(s.Player.Forward(), m.preferences().InvertCompassRotation)
	if !ok {
		angle = s.angle
	}
	s.angle = angle
	s.Needle.SetLocalRotation(NeedleRotation(angle))
}
