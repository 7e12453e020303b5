// Package simworld owns the physics world: arena geometry, zones,
// tokens and robot bodies, and the per-tick physics update. It wraps
// github.com/ByteArena/box2d behind a small domain surface — bodies
// and fixtures built once at construction time, state read back
// through the body's position, angle and velocity each tick.
package simworld

import (
	"math"

	"github.com/ByteArena/box2d"

	"github.com/roboarena/simulator/simconfig"
	"github.com/roboarena/simulator/vector"
)

const (
	Tick      = 1.0 / 64.0
	damping   = 0.01
	arenaHalf = 3.0
)

// teamAngle is the rotation, relative to team 0, of an object built
// for the given team. Team 1 is rotated −90°, team 2 180°, team 3 +90°.
var teamAngle = [4]float64{0, -math.Pi / 2, math.Pi, math.Pi / 2}

// World owns every body in the arena and the box2d engine that steps
// them. Bodies are created only here; other packages reach them through
// the exported Body fields of WallSegment, Token and RobotBody, and a
// robot's service keeps its team's *RobotBody for the whole run.
type World struct {
	engine box2d.B2World

	Now     float64
	EndTime float64

	Walls [24]*WallSegment
	Zones [4]*Zone
	Tokens map[int]*Token
	Robots [4]*RobotBody // nil until createRobot for that team

	// ScoringCollisions[team] is the set of token ids currently
	// touching that team's robot body.
	ScoringCollisions [4]map[int]bool

	PendingOutput []string

	tokenBodies map[*box2d.B2Body]*Token
	robotBodies map[*box2d.B2Body]*RobotBody
}

// NewWorld builds the arena: walls, zones and the configured tokens.
// Robots are added later via CreateRobot as the arena service creates
// them.
func NewWorld(endTime float64, tokenPlacements []simconfig.TokenPlacement) *World {
	w := &World{
		Now:         0,
		EndTime:     endTime,
		Tokens:      make(map[int]*Token),
		tokenBodies: make(map[*box2d.B2Body]*Token),
		robotBodies: make(map[*box2d.B2Body]*RobotBody),
	}
	w.engine = box2d.MakeB2World(box2d.MakeB2Vec2(0, 0))
	w.engine.SetContactListener(&contactListener{world: w})

	w.buildWalls()
	w.buildZones()
	for _, placement := range tokenPlacements {
		w.addToken(placement)
	}

	return w
}

// IsRunning reports whether the simulation clock has not yet reached
// EndTime.
func (w *World) IsRunning() bool {
	return w.Now < w.EndTime
}

// CreateRobot builds and registers a robot body for team, returning it.
// Panics if the team already has a robot — the scheduler/arena layer is
// responsible for rejecting duplicate createRobot calls before this is
// ever reached.
func (w *World) CreateRobot(team int, cfg simconfig.RobotConfig, leftMax, rightMax float64) *RobotBody {
	if w.Robots[team] != nil {
		panic("simworld: robot already created for this team")
	}
	robot := newRobotBody(w, team, cfg, leftMax, rightMax)
	w.Robots[team] = robot
	w.robotBodies[robot.Body] = robot
	w.ScoringCollisions[team] = make(map[int]bool)
	return robot
}

// Step applies motor forces, checks zone containment, advances the
// physics engine by one tick and advances Now. This is the only place
// simulated time moves.
func (w *World) Step() {
	for _, robot := range w.Robots {
		if robot == nil {
			continue
		}
		robot.applyMotorForce()
		if !robot.HasLeftZone {
			w.checkIfLeftZone(robot)
		}
	}

	w.engine.Step(Tick, 8, 3)
	w.applyDamping()
	w.Now += Tick
}

// applyDamping scales the velocity of every dynamic body by the global
// fluid-like damping factor. The underlying engine is treated as a
// black box exposing only step(dt), so damping is applied here rather
// than through an engine-level damping coefficient.
func (w *World) applyDamping() {
	factor := math.Pow(damping, Tick)
	for _, robot := range w.Robots {
		if robot == nil {
			continue
		}
		dampVelocity(robot.Body, factor)
	}
	for _, token := range w.Tokens {
		dampVelocity(token.Body, factor)
	}
}

func dampVelocity(body *box2d.B2Body, factor float64) {
	v := body.GetLinearVelocity()
	body.SetLinearVelocity(box2d.MakeB2Vec2(v.X*factor, v.Y*factor))
	body.SetAngularVelocity(body.GetAngularVelocity() * factor)
}

// checkIfLeftZone implements the bounding-box containment check: the
// robot has left its zone once its body's axis-aligned bounding box is
// no longer fully contained (strictly) within the zone's bounding box.
func (w *World) checkIfLeftZone(robot *RobotBody) {
	zone := w.Zones[robot.Team]
	zoneBox := boundingBox(zone.Body, zone.HalfX, zone.HalfY)
	robotBox := boundingBox(robot.Body, robot.HalfLength, robot.HalfWidth)
	if !zoneBox.contains(robotBox) {
		robot.HasLeftZone = true
	}
}

// TokensInZone returns the ids of tokens fully contained within the
// given team's zone, per the bounding-box containment rule scoring
// uses.
func (w *World) TokensInZone(team int) []int {
	zone := w.Zones[team]
	zoneBox := boundingBox(zone.Body, zone.HalfX, zone.HalfY)

	var ids []int
	for id, token := range w.Tokens {
		tokenBox := boundingBox(token.Body, token.HalfSize, token.HalfSize)
		if zoneBox.contains(tokenBox) {
			ids = append(ids, id)
		}
	}
	return ids
}

type aabb struct {
	minX, minY, maxX, maxY float64
}

// contains reports whether a fully and strictly contains b — fully
// inside, not touching.
func (a aabb) contains(b aabb) bool {
	return a.minX < b.minX && b.maxX < a.maxX && a.minY < b.minY && b.maxY < a.maxY
}

// boundingBox computes the world-space axis-aligned bounding box of a
// body's rectangular footprint, given its local half-extents. Computed
// directly from the four rotated corners rather than through an engine
// query, since the engine is treated as a black box that does not
// expose an AABB accessor in this wrapper's usage.
func boundingBox(body *box2d.B2Body, halfX, halfY float64) aabb {
	corners := [4]box2d.B2Vec2{
		body.GetWorldPoint(box2d.MakeB2Vec2(-halfX, -halfY)),
		body.GetWorldPoint(box2d.MakeB2Vec2(halfX, -halfY)),
		body.GetWorldPoint(box2d.MakeB2Vec2(halfX, halfY)),
		body.GetWorldPoint(box2d.MakeB2Vec2(-halfX, halfY)),
	}
	box := aabb{minX: math.Inf(1), minY: math.Inf(1), maxX: math.Inf(-1), maxY: math.Inf(-1)}
	for _, c := range corners {
		box.minX = math.Min(box.minX, c.X)
		box.maxX = math.Max(box.maxX, c.X)
		box.minY = math.Min(box.minY, c.Y)
		box.maxY = math.Max(box.maxY, c.Y)
	}
	return box
}

// rotate2D rotates a point (x, y) by angle radians about the origin.
func rotate2D(x, y, angle float64) (float64, float64) {
	sin, cos := math.Sin(angle), math.Cos(angle)
	return x*cos - y*sin, x*sin + y*cos
}

// Position2D returns a body's position as a 2D vector.Vector3 with
// Z = 0, for use by the vision subsystem.
func Position2D(body *box2d.B2Body) vector.Vector3 {
	pos := body.GetPosition()
	return vector.New(pos.X, pos.Y, 0)
}
