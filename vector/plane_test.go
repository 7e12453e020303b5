package vector_test

import (
	"testing"

	"github.com/roboarena/simulator/vector"
)

// A unit square in the X=0 plane, normal pointing in +X (out of a
// solid that occupies X<0), built the same way cuboidFaces builds
// faces: bottomLeft, bottomRight, topLeft.
func testPlane() vector.Plane {
	bottomLeft := vector.New(0, 0, 0)
	bottomRight := vector.New(0, 1, 0)
	topLeft := vector.New(0, 0, 1)
	return vector.NewPlane(bottomLeft, bottomRight, topLeft)
}

func TestPlaneIsFacingCamera(t *testing.T) {
	p := testPlane()

	// Normal = U x V = (0,1,0) x (0,0,1) = (1,0,0), so the plane faces
	// +X; a camera at positive X should see it as facing.
	facing := vector.New(5, 0.5, 0.5)
	if !p.IsFacingCamera(facing) {
		t.Error("expected plane to face a camera on the +normal side")
	}

	away := vector.New(-5, 0.5, 0.5)
	if p.IsFacingCamera(away) {
		t.Error("expected plane to not face a camera on the -normal side")
	}
}

func TestPlaneObstructsPointThroughItsCentre(t *testing.T) {
	p := testPlane()

	camera := vector.New(-5, 0.5, 0.5)
	pointBehindPlane := vector.New(5, 0.5, 0.5)

	if !p.IsObstructingPoint(pointBehindPlane, camera) {
		t.Error("expected the plane to obstruct a point directly behind its centre")
	}
}

func TestPlaneDoesNotObstructOutsideItsBounds(t *testing.T) {
	p := testPlane()

	camera := vector.New(-5, 0.5, 0.5)
	// The ray to this point crosses the plane's X=0 surface well outside
	// the unit square spanned by VectorU/VectorV.
	pointOutsideBounds := vector.New(5, 10, 10)

	if p.IsObstructingPoint(pointOutsideBounds, camera) {
		t.Error("expected the plane to not obstruct a point outside its bounds")
	}
}

func TestPlaneDoesNotObstructParallelRay(t *testing.T) {
	p := testPlane()

	camera := vector.New(-5, 0.5, 0.5)
	// Moving only in Y/Z never crosses the X=0 plane.
	pointInSamePlaneOfTravel := vector.New(-5, 2, 2)

	if p.IsObstructingPoint(pointInSamePlaneOfTravel, camera) {
		t.Error("expected a ray parallel to the plane to never obstruct")
	}
}
