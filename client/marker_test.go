package client

import (
	"math"
	"testing"

	"github.com/roboarena/simulator/simworld"
	"github.com/roboarena/simulator/vector"
	"github.com/roboarena/simulator/vision"
)

// headOnPayload builds a payload with a single 0.1m marker whose
// centre sits on the camera normal at distance d.
func headOnPayload(d float64) *vision.Payload {
	return &vision.Payload{
		Resolution:     [2]int{640, 480},
		FieldOfView:    math.Pi / 8,
		CameraPosition: vector.New(0, 0, 0),
		CameraNormal:   vector.New(1, 0, 0),
		Timestamp:      2.5,
		Markers: []vision.Marker{{
			Corners: [4]vector.Vector3{
				vector.New(d, 0.05, -0.05),
				vector.New(d, -0.05, -0.05),
				vector.New(d, -0.05, 0.05),
				vector.New(d, 0.05, 0.05),
			},
			ID:   32,
			Size: 0.1,
		}},
	}
}

// A marker centred on the camera normal at distance d maps to the
// image's centre pixel, with polar length d and no rotation.
func TestHeadOnMarkerRoundTrips(t *testing.T) {
	const d = 2.0
	payload := headOnPayload(d)

	markers := Markers(payload, 0)
	if len(markers) != 1 {
		t.Fatalf("got %d markers, want 1", len(markers))
	}
	m := markers[0]

	if math.Abs(m.Dist()-d) > 1e-9 {
		t.Errorf("got dist %v, want %v", m.Dist(), d)
	}
	if math.Abs(m.RotY()) > 1e-9 {
		t.Errorf("got rot_y %v, want 0", m.RotY())
	}
	if math.Abs(m.Centre.Image.X-320) > 1e-9 {
		t.Errorf("got image.x %v, want 320", m.Centre.Image.X)
	}
	if math.Abs(m.Centre.Image.Y-240) > 1e-9 {
		t.Errorf("got image.y %v, want 240", m.Centre.Image.Y)
	}
	if m.Timestamp != 2.5 {
		t.Errorf("got timestamp %v, want 2.5", m.Timestamp)
	}
}

func TestMarkersClassifyFromObservingTeam(t *testing.T) {
	payload := headOnPayload(1)
	payload.Markers[0].ID = 42 // team 0's gold

	owner := Markers(payload, 0)[0]
	if owner.Info.TokenType != simworld.TokenGoldMarker {
		t.Errorf("expected the owning team to classify its gold as gold, got %v", owner.Info.TokenType)
	}

	rival := Markers(payload, 1)[0]
	if rival.Info.TokenType != simworld.TokenFoolsGoldMarker {
		t.Errorf("expected a rival team to classify the gold as fools_gold, got %v", rival.Info.TokenType)
	}
}

// A point left of the camera axis lands left of the image centre, and
// a point above the axis lands above it (smaller y).
func TestImagePositionFollowsRotation(t *testing.T) {
	payload := headOnPayload(2)

	left := newPoint(payload, vector.New(2, 0.5, 0))
	if left.Image.X >= 320 {
		t.Errorf("got image.x %v for a point left of the axis, want < 320", left.Image.X)
	}

	above := newPoint(payload, vector.New(2, 0, 0.5))
	if above.Image.Y >= 240 {
		t.Errorf("got image.y %v for a point above the axis, want < 240", above.Image.Y)
	}
}

// A marker facing the camera head-on has no y-rotation.
func TestOrientationOfHeadOnMarkerIsZero(t *testing.T) {
	payload := headOnPayload(2)
	m := Markers(payload, 0)[0]

	if math.Abs(m.Orientation.RotY) > 1e-6 {
		t.Errorf("got orientation rot_y %v, want 0", m.Orientation.RotY)
	}
}
