package grove

import "github.com/go-gl/mathgl/mgl32"

// Mat3x4 is a row-major 3x4 transform matrix: a 3x3 rotation-scale block
// with the translation in the fourth column. This is the packed per-node
// layout handed to instanced renderers.
//
//	| m0 m1 m2  m3  |
//	| m4 m5 m6  m7  |
//	| m8 m9 m10 m11 |
type Mat3x4 [12]float32

// composeTRS packs a world position, orientation, and uniform scale into a
// Mat3x4. mgl32 matrices are column-major, so rotation columns land at
// strides of 4 in the source Mat4.
func composeTRS(pos mgl32.Vec3, rot mgl32.Quat, scale float32) Mat3x4 {
	r := rot.Mat4()
	return Mat3x4{
		r[0] * scale, r[4] * scale, r[8] * scale, pos[0],
		r[1] * scale, r[5] * scale, r[9] * scale, pos[1],
		r[2] * scale, r[6] * scale, r[10] * scale, pos[2],
	}
}

// Position returns the translation column.
func (m Mat3x4) Position() mgl32.Vec3 {
	return mgl32.Vec3{m[3], m[7], m[11]}
}

// TransformPoint applies the matrix to a point (rotation-scale then
// translation). Handy for renderers that expand instance geometry on the
// CPU, and for tests.
func (m Mat3x4) TransformPoint(p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		m[0]*p[0] + m[1]*p[1] + m[2]*p[2] + m[3],
		m[4]*p[0] + m[5]*p[1] + m[6]*p[2] + m[7],
		m[8]*p[0] + m[9]*p[1] + m[10]*p[2] + m[11],
	}
}
