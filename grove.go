package grove

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// Transform is an externally driven anchor: a world-space position,
// orientation, and uniform scale supplied to the simulation once per tick.
// A Tree mirrors its anchor at the root; a Ring orbits bodies around its
// anchor's position and up axis.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    float32
}

// IdentityTransform returns a Transform at the origin with no rotation and
// unit scale.
func IdentityTransform() Transform {
	return Transform{Rotation: mgl32.QuatIdent(), Scale: 1}
}

// Up returns the transform's local +Y axis in world space.
func (t Transform) Up() mgl32.Vec3 {
	return t.Rotation.Rotate(mgl32.Vec3{0, 1, 0})
}

// Range is a general-purpose min/max range.
// Used by RingConfig for per-tick speed draws.
type Range struct {
	Min, Max float32
}

// random draws a value in [Min, Max] from rng. When Min == Max the value is
// returned exactly, with no rng draw consumed.
func (r Range) random(rng *rand.Rand) float32 {
	if r.Min == r.Max {
		return r.Min
	}
	return lerp32(r.Min, r.Max, rng.Float32())
}

// lerp32 linearly interpolates between a and b by t.
func lerp32(a, b, t float32) float32 {
	return a + (b-a)*t
}
