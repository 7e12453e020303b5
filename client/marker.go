// Package client synthesises the marker objects the real-robot API
// presents from the wire payload a see() call returns: per-marker
// classification plus the centre and corner points re-expressed in the
// camera's frame, in polar form, and as image-pixel positions. It runs
// on the robot-program side of the RPC boundary, for parity with the
// hardware robot's client library.
package client

import (
	"math"

	"github.com/roboarena/simulator/simworld"
	"github.com/roboarena/simulator/vector"
	"github.com/roboarena/simulator/vision"
)

// CameraPoint is a world-space point re-expressed in the camera's
// coordinate frame: Z runs along the camera normal, Y points straight
// down, X is perpendicular to both.
type CameraPoint struct {
	X, Y, Z float64
}

func cameraPoint(cameraPosition, cameraNormal, point vector.Vector3) CameraPoint {
	toPoint := point.Sub(cameraPosition)
	zAxis := cameraNormal
	yAxis := vector.New(0, 0, -1)
	xAxis := yAxis.Cross(zAxis)
	return CameraPoint{
		X: xAxis.Dot(toPoint),
		Y: yAxis.Dot(toPoint),
		Z: zAxis.Dot(toPoint),
	}
}

// Polar is a camera-frame point in polar form: straight-line distance
// plus the two rotations away from the camera axis, in degrees.
type Polar struct {
	Length float64
	RotX   float64
	RotY   float64
}

func toPolar(p CameraPoint) Polar {
	return Polar{
		Length: vector.New(p.X, p.Y, p.Z).Magnitude(),
		RotX:   math.Atan2(p.Y, p.Z) / math.Pi * 180,
		RotY:   math.Atan2(p.X, p.Z) / math.Pi * 180,
	}
}

// Image is the pixel position of a point on the rendered image. The
// image is approximated as a circle rather than a rectangle, so the X
// resolution scales both axes.
type Image struct {
	X, Y float64
}

func toImage(resolution [2]int, fov float64, p Polar) Image {
	fovDegrees := fov * 180 / math.Pi
	return Image{
		X: float64(resolution[0])/2 + float64(resolution[0])*p.RotY/fovDegrees,
		Y: float64(resolution[1])/2 + float64(resolution[0])*p.RotX/fovDegrees,
	}
}

// Point bundles the three representations of one world-space point.
type Point struct {
	World CameraPoint
	Polar Polar
	Image Image
}

func newPoint(payload *vision.Payload, point vector.Vector3) Point {
	world := cameraPoint(payload.CameraPosition, payload.CameraNormal, point)
	polar := toPolar(world)
	return Point{
		World: world,
		Polar: polar,
		Image: toImage(payload.Resolution, payload.FieldOfView, polar),
	}
}

// Orientation is the marker plane's rotation away from facing the
// camera head-on, in degrees. Only RotY carries information; RotX and
// RotZ are kept for API parity.
type Orientation struct {
	RotX, RotY, RotZ float64
}

func newOrientation(corners [4]vector.Vector3, cameraNormal vector.Vector3) Orientation {
	markerPlane := vector.NewPlane(corners[0], corners[1], corners[3])
	markerNormal := markerPlane.Normal()
	return Orientation{
		RotY: cameraNormal.AngleBetween(markerNormal.Neg()) / math.Pi * 180,
	}
}

// Marker is one detected fiducial as the robot program's API presents
// it: classification info, centre point, the four corner vertices and
// the marker plane's orientation.
type Marker struct {
	Info        simworld.MarkerInfo
	Centre      Point
	Vertices    [4]Point
	Orientation Orientation
	Timestamp   float64
}

// Dist is the straight-line distance to the marker's centre in metres.
func (m Marker) Dist() float64 {
	return m.Centre.Polar.Length
}

// RotY is the marker centre's horizontal rotation away from the camera
// axis, in degrees.
func (m Marker) RotY() float64 {
	return m.Centre.Polar.RotY
}

// Markers builds the marker objects for one see() payload, classified
// from the point of view of the observing team.
func Markers(payload *vision.Payload, team int) []Marker {
	out := make([]Marker, 0, len(payload.Markers))
	for _, wire := range payload.Markers {
		centre := wire.Corners[0].Add(wire.Corners[2]).Scale(0.5)
		m := Marker{
			Info:        simworld.ClassifyMarker(wire.ID, team),
			Centre:      newPoint(payload, centre),
			Orientation: newOrientation(wire.Corners, payload.CameraNormal),
			Timestamp:   payload.Timestamp,
		}
		for i, corner := range wire.Corners {
			m.Vertices[i] = newPoint(payload, corner)
		}
		out = append(out, m)
	}
	return out
}
