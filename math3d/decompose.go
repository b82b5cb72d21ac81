package math3d

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DecomposeMatrixToComponents splits an affine matrix into translation,
// Euler rotation in degrees and per-axis scale. The rotation angles are
// the ones RecomposeMatrixFromComponents expects: M = T * Rz * Ry * Rx * S.
//
// The bottom row of m must be [0 0 0 1]; other matrices give undefined
// results.
func DecomposeMatrixToComponents(m mgl32.Mat4) (translation, rotation, scale mgl32.Vec3) {
	translation = m.Col(3).Vec3()

	var basis [3]mgl32.Vec3
	for i := 0; i < 3; i++ {
		basis[i] = m.Col(i).Vec3()
		scale[i] = basis[i].Len()
		if scale[i] != 0 {
			basis[i] = basis[i].Mul(1 / scale[i])
		}
	}

	// r(row, col) on the normalized basis; column i is basis[i].
	r := func(row, col int) float32 { return basis[col][row] }

	rotation[0] = math32.Atan2(r(2, 1), r(2, 2))
	rotation[1] = math32.Atan2(-r(2, 0), math32.Sqrt(r(2, 1)*r(2, 1)+r(2, 2)*r(2, 2)))
	rotation[2] = math32.Atan2(r(1, 0), r(0, 0))
	for i := range rotation {
		rotation[i] = mgl32.RadToDeg(rotation[i])
	}
	return translation, rotation, scale
}

// RecomposeMatrixFromComponents is the inverse of DecomposeMatrixToComponents.
func RecomposeMatrixFromComponents(translation, rotation, scale mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(translation[0], translation[1], translation[2]).
		Mul4(RotationMatrix(rotation)).
		Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
}

// RotationMatrix returns Rz * Ry * Rx for Euler angles in degrees.
func RotationMatrix(rotation mgl32.Vec3) mgl32.Mat4 {
	return mgl32.HomogRotate3DZ(mgl32.DegToRad(rotation[2])).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(rotation[1]))).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(rotation[0])))
}

// Orthonormalize returns the normalized basis columns of m and their
// lengths. A collapsed column falls back to the matching unit axis so the
// basis stays usable for drawing.
func Orthonormalize(m mgl32.Mat4) (basis [3]mgl32.Vec3, scale mgl32.Vec3) {
	units := [3]mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	for i := 0; i < 3; i++ {
		c := m.Col(i).Vec3()
		scale[i] = c.Len()
		if scale[i] < Epsilon {
			basis[i] = units[i]
			continue
		}
		basis[i] = c.Mul(1 / scale[i])
	}
	return basis, scale
}

// BasisMatrix builds a matrix with the given basis columns and origin.
func BasisMatrix(basis [3]mgl32.Vec3, origin mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Mat4{
		basis[0][0], basis[0][1], basis[0][2], 0,
		basis[1][0], basis[1][1], basis[1][2], 0,
		basis[2][0], basis[2][1], basis[2][2], 0,
		origin[0], origin[1], origin[2], 1,
	}
}
