package vision

import (
	"math"

	"github.com/roboarena/simulator/vector"
)

// localCorners returns the four local-frame corners of a halfX x halfY
// rectangle, in the winding order the cuboid-face construction relies
// on: (-x,-y), (x,-y), (x,y), (-x,y).
func localCorners(halfX, halfY float64) [4][2]float64 {
	return [4][2]float64{
		{-halfX, -halfY},
		{halfX, -halfY},
		{halfX, halfY},
		{-halfX, halfY},
	}
}

// cuboidFaces computes the visible faces (those facing cameraPosition)
// of a cuboid footprint at position/angle with the given half-extents
// and height: the four vertical sides plus the roof. The floor is
// never tested, since it can never face a camera positioned above
// ground.
func cuboidFaces(position vector.Vector3, angle, halfX, halfY, height float64, cameraPosition vector.Vector3) []vector.Plane {
	local := localCorners(halfX, halfY)

	var ground, raised [4]vector.Vector3
	for i, c := range local {
		wx, wy := rotate2D(c[0], c[1], angle)
		x, y := position.X+wx, position.Y+wy
		ground[i] = vector.New(x, y, 0)
		raised[i] = vector.New(x, y, height)
	}

	candidates := []vector.Plane{
		vector.NewPlane(ground[0], raised[0], ground[3]), // front-left
		vector.NewPlane(ground[1], raised[1], ground[0]), // front-right
		vector.NewPlane(ground[2], ground[3], raised[2]), // back-left
		vector.NewPlane(ground[1], ground[2], raised[1]), // back-right
		vector.NewPlane(raised[0], raised[1], raised[3]), // roof
	}

	var visible []vector.Plane
	for _, plane := range candidates {
		if plane.IsFacingCamera(cameraPosition) {
			visible = append(visible, plane)
		}
	}
	return visible
}

func rotate2D(x, y, angle float64) (float64, float64) {
	sin, cos := math.Sin(angle), math.Cos(angle)
	return x*cos - y*sin, x*sin + y*cos
}

// markerCornersFromWall builds the single marker attached to a wall
// segment: a 0.25m square centred on the segment's inner face.
func markerCornersFromWall(body markedBody) [4]vector.Vector3 {
	centre := vector.New(body.position.X, body.position.Y, 0.175)
	radius := vector.New(0, 0.125, 0).RotateAroundZ(body.angle)
	up := vector.New(0, 0, 0.125)

	return [4]vector.Vector3{
		centre.Sub(radius).Sub(up),
		centre.Add(radius).Sub(up),
		centre.Add(radius).Add(up),
		centre.Sub(radius).Add(up),
	}
}

// markerCornersFromToken builds up to three markers, one per visible
// face of the token's cuboid, inset 5mm from the face's edges.
func markerCornersFromToken(body markedBody, cameraPosition vector.Vector3) [][4]vector.Vector3 {
	faces := cuboidFaces(body.position, body.angle, body.halfSize, body.halfSize, tokenHeight, cameraPosition)

	const border = 5.0 / 110.0
	var sets [][4]vector.Vector3
	for _, face := range faces {
		uOff := face.VectorU.Scale(border)
		vOff := face.VectorV.Scale(border)
		sets = append(sets, [4]vector.Vector3{
			face.PointJ.Add(uOff).Add(vOff),
			face.PointJ.Add(face.VectorV).Add(uOff).Sub(vOff),
			face.PointJ.Add(face.VectorU).Add(face.VectorV).Sub(uOff).Sub(vOff),
			face.PointJ.Add(face.VectorU).Sub(uOff).Add(vOff),
		})
	}
	return sets
}

// isResolvable reports whether a marker's corners subtend enough
// angle, given the camera's resolution, FoV and pixel threshold, to be
// distinguishable at all. Two adjacent edges must both subtend at
// least the minimum angular width.
func isResolvable(corners [4]vector.Vector3, cameraPosition vector.Vector3, fov float64, resolution [2]int, pixelThreshold float64) bool {
	if resolution[0] == 0 || fov == 0 {
		return false
	}
	pixelsPerRadian := float64(resolution[0]) / fov
	minAngle := pixelThreshold / pixelsPerRadian

	a := corners[0].Sub(cameraPosition)
	b := corners[1].Sub(cameraPosition)
	c := corners[3].Sub(cameraPosition)

	return a.AngleBetween(b) > minAngle && a.AngleBetween(c) > minAngle
}

// isVisible reports whether at least one corner of the marker both
// lies within the camera's field of view and is unobstructed by any
// occluding plane. Every corner is checked independently for both
// conditions.
func isVisible(corners [4]vector.Vector3, cameraPosition, cameraNormal vector.Vector3, fov float64, occluders []vector.Plane) bool {
	for _, corner := range corners {
		if cameraNormal.AngleBetween(corner.Sub(cameraPosition)) > fov {
			continue
		}
		obstructed := false
		for _, plane := range occluders {
			if plane.IsObstructingPoint(corner, cameraPosition) {
				obstructed = true
				break
			}
		}
		if !obstructed {
			return true
		}
	}
	return false
}
