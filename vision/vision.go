// Package vision computes the set of fiducial markers visible to a
// robot's camera at the current frozen simulated instant: camera
// framing, occluder cuboid faces, per-marker resolvability, and the
// field-of-view/occlusion visibility test.
package vision

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/roboarena/simulator/simworld"
	"github.com/roboarena/simulator/vector"
)

// Marker is one visible fiducial, in world coordinates, ready to be
// serialised onto the wire.
type Marker struct {
	Corners [4]vector.Vector3 `json:"Corners"`
	ID      int               `json:"Id"`
	Size    float64           `json:"Size"`
}

// Payload is everything a call to see() returns, tagged with the wire
// payload's field names.
type Payload struct {
	Resolution     [2]int         `json:"Resolution"`
	FieldOfView    float64        `json:"Field of View"`
	CameraPosition vector.Vector3 `json:"Camera Position"`
	CameraNormal   vector.Vector3 `json:"Camera Normal"`
	Timestamp      float64        `json:"Timestamp"`
	Markers        []Marker       `json:"List of Markers"`
}

// markedBody is a candidate marker source: a wall (one marker) or a
// token (up to three markers, one per visible face).
type markedBody struct {
	id       int
	size     float64
	isToken  bool
	position vector.Vector3
	angle    float64
	halfSize float64 // token only
}

// See computes the vision payload for robot observing the world at its
// current frozen state. src supplies the per-marker pixel-threshold
// jitter.
func See(w *simworld.World, robot *simworld.RobotBody, resolution [2]int, src rand.Source) Payload {
	angle := robot.Body.GetAngle()
	cameraNormal := vector.New(math.Cos(angle), math.Sin(angle), 0)
	pos := simworld.Position2D(robot.Body)
	cameraPosition := vector.New(pos.X, pos.Y, robot.CameraHeight).
		Add(cameraNormal.Scale(robot.HalfLength))

	payload := Payload{
		Resolution:     resolution,
		FieldOfView:    robot.FieldOfView,
		CameraPosition: cameraPosition,
		CameraNormal:   cameraNormal,
		Timestamp:      w.Now,
		Markers:        []Marker{}, // serialises as an empty list, not null
	}

	isBlurred := robot.IsMoving()
	if isBlurred && !robot.IgnoreMotionBlur {
		return payload
	}

	var occluders []vector.Plane
	var candidates []markedBody

	for team, other := range w.Robots {
		if other == nil || team == robot.Team {
			continue
		}
		pos := simworld.Position2D(other.Body)
		occluders = append(occluders, cuboidFaces(pos, other.Body.GetAngle(), other.HalfLength, other.HalfWidth, other.Height, cameraPosition)...)
	}

	for _, token := range w.Tokens {
		tokPos := simworld.Position2D(token.Body)
		tokAngle := token.Body.GetAngle()
		occluders = append(occluders, cuboidFaces(tokPos, tokAngle, token.HalfSize, token.HalfSize, tokenHeight, cameraPosition)...)

		if robot.IgnoreMotionBlur || !isMovingBody(token) {
			candidates = append(candidates, markedBody{
				id: token.ID, size: 0.1, isToken: true,
				position: tokPos, angle: tokAngle, halfSize: token.HalfSize,
			})
		}
	}

	for _, wall := range w.Walls {
		candidates = append(candidates, markedBody{
			id: wall.ID, size: 0.25, isToken: false,
			position: simworld.Position2D(wall.Body), angle: wall.Body.GetAngle(),
		})
	}

	for _, body := range candidates {
		var cornerSets [][4]vector.Vector3
		if body.isToken {
			cornerSets = markerCornersFromToken(body, cameraPosition)
		} else {
			cornerSets = [][4]vector.Vector3{markerCornersFromWall(body)}
		}

		for _, corners := range cornerSets {
			threshold := float64(robot.MarkerPixelsMinimum) + jitter(src, robot.MarkerPixelsNoise)
			if !isResolvable(corners, cameraPosition, robot.FieldOfView, resolution, threshold) {
				continue
			}
			if isVisible(corners, cameraPosition, cameraNormal, robot.FieldOfView, occluders) {
				setLastSeen(w, body, robot.Team)
				payload.Markers = append(payload.Markers, Marker{Corners: corners, ID: body.id, Size: body.size})
			}
		}
	}

	return payload
}

func isMovingBody(token *simworld.Token) bool {
	v := token.Body.GetLinearVelocity()
	speed := math.Sqrt(v.X*v.X + v.Y*v.Y)
	return speed > 0.02 || math.Abs(token.Body.GetAngularVelocity()) > 0.05
}

// jitter samples a uniform integer offset in [-noise/2, noise/2].
func jitter(src rand.Source, noise int) float64 {
	if noise <= 0 {
		return 0
	}
	half := noise / 2
	u := distuv.Uniform{Min: float64(-half), Max: float64(half) + 1, Src: src}
	return math.Floor(u.Rand())
}

func setLastSeen(w *simworld.World, body markedBody, team int) {
	if body.isToken {
		w.Tokens[body.id].LastSeen[team] = w.Now
		return
	}
	w.Walls[body.id].LastSeen[team] = w.Now
}

const tokenHeight = 0.11
