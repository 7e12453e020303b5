// Package vector implements the 3D vector and bounded-plane geometry the
// simulation kernel needs for marker visibility and occlusion tests.
package vector

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vector3 is a point or direction in 3D space.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// New returns a Vector3 with the given components.
func New(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

func (v Vector3) vec() r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

func fromVec(u r3.Vec) Vector3 {
	return Vector3{X: u.X, Y: u.Y, Z: u.Z}
}

// Add returns v + other.
func (v Vector3) Add(other Vector3) Vector3 {
	return fromVec(r3.Add(v.vec(), other.vec()))
}

// Sub returns v - other.
func (v Vector3) Sub(other Vector3) Vector3 {
	return fromVec(r3.Sub(v.vec(), other.vec()))
}

// Neg returns the vector scaled by -1.
func (v Vector3) Neg() Vector3 {
	return fromVec(r3.Scale(-1, v.vec()))
}

// Scale returns the vector scaled by a constant.
func (v Vector3) Scale(c float64) Vector3 {
	return fromVec(r3.Scale(c, v.vec()))
}

// Magnitude returns the Euclidean length of the vector.
func (v Vector3) Magnitude() float64 {
	return r3.Norm(v.vec())
}

// Unit returns the unit vector in the same direction as v.
// Panics if v is the zero vector.
func (v Vector3) Unit() Vector3 {
	if v.Magnitude() == 0 {
		panic("vector: attempted to get the direction of a null vector")
	}
	return fromVec(r3.Unit(v.vec()))
}

// Dot returns the dot product of v and other.
func (v Vector3) Dot(other Vector3) float64 {
	return r3.Dot(v.vec(), other.vec())
}

// Cross returns the cross product of v and other.
func (v Vector3) Cross(other Vector3) Vector3 {
	return fromVec(r3.Cross(v.vec(), other.vec()))
}

// AngleBetween returns the angle in radians between v and other.
func (v Vector3) AngleBetween(other Vector3) float64 {
	cos := v.Dot(other) / (v.Magnitude() * other.Magnitude())
	// Clamp for numerical safety before acos.
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)
}

// RotateAroundZ rotates v by angle radians about the Z axis.
func (v Vector3) RotateAroundZ(angle float64) Vector3 {
	return fromVec(r3.NewRotation(angle, r3.Vec{Z: 1}).Rotate(v.vec()))
}

// Dict is the wire representation of a Vector3, the
// {"x":..,"y":..,"z":..} dictionary the RPC surface carries.
type Dict struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// ToDict converts the vector to its wire representation.
func (v Vector3) ToDict() Dict {
	return Dict{X: v.X, Y: v.Y, Z: v.Z}
}

// FromDict constructs a Vector3 from its wire representation.
func FromDict(d Dict) Vector3 {
	return Vector3{X: d.X, Y: d.Y, Z: d.Z}
}
