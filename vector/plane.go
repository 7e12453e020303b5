package vector

// Plane is a bounded plane in 3D space, spanned by two vectors from a
// corner point. PointJ is the bottom-left corner; VectorU runs to the
// bottom-right corner, VectorV runs to the top-left corner.
type Plane struct {
	PointJ  Vector3
	VectorU Vector3
	VectorV Vector3
}

// NewPlane builds a Plane from three corners: bottomLeft, bottomRight,
// topLeft.
func NewPlane(bottomLeft, bottomRight, topLeft Vector3) Plane {
	return Plane{
		PointJ:  bottomLeft,
		VectorU: bottomRight.Sub(bottomLeft),
		VectorV: topLeft.Sub(bottomLeft),
	}
}

// Normal returns the normal to the plane. Because of the winding order
// used by NewPlane's callers, this normal points out of the solid the
// plane bounds.
func (p Plane) Normal() Vector3 {
	return p.VectorU.Cross(p.VectorV)
}

func (p Plane) cartesianD() float64 {
	return p.PointJ.Dot(p.Normal())
}

// IsFacingCamera reports whether the plane's outward normal points
// towards cameraPosition.
func (p Plane) IsFacingCamera(cameraPosition Vector3) bool {
	return cameraPosition.Sub(p.PointJ).Dot(p.Normal()) > 0
}

// IsObstructingPoint reports whether the bounded plane obstructs the
// line segment between cameraPosition and point. A point lying on the
// plane itself is not obstructed by it, even when rounding puts lambda
// a hair below 1.
func (p Plane) IsObstructingPoint(point, cameraPosition Vector3) bool {
	const onPlaneTolerance = 1e-9
	direction := point.Sub(cameraPosition)
	normal := p.Normal()
	denom := normal.Dot(direction)
	if denom == 0 {
		// Parallel to the plane: never obstructs.
		return false
	}

	lambda := (p.cartesianD() - normal.Dot(cameraPosition)) / denom
	if lambda <= 0 || lambda >= 1-onPlaneTolerance {
		return false
	}

	intersection := cameraPosition.Add(direction.Scale(lambda)).Sub(p.PointJ)
	mu := intersection.Dot(p.VectorU) / (p.VectorU.Magnitude() * p.VectorU.Magnitude())
	if mu <= 0 || mu >= 1 {
		return false
	}
	nu := intersection.Dot(p.VectorV) / (p.VectorV.Magnitude() * p.VectorV.Magnitude())
	return nu > 0 && nu < 1
}
